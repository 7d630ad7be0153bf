// Package runtime exposes a trained solver profile for live action
// queries: given a game state, resolve the information-set key and return
// the converged strategy (or arg-max action), falling back to uniform play
// on anything a correctly trained profile shouldn't produce.
package runtime
