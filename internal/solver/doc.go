// Package solver implements Monte-Carlo counterfactual regret minimization
// (MCCFR) over the Open-Face Chinese Poker state machine in internal/ofc. It
// holds the regret/strategy-sum table, the recursive external-sampling
// traversal, the trainer driving self-play iterations, and the on-disk
// profile format used to hand a trained strategy to the runtime policy.
package solver
