// Package ofc implements the Open-Face Chinese Poker (Pineapple) state
// machine: board layout, the deck, legal-action enumeration under a
// tunable abstraction, apply/undo state transitions, and information-set
// key derivation. It sits between the evaluator and the CFR traversal.
package ofc
