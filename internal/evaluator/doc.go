// Package evaluator ranks OFC Pineapple hands: 5-card rows (middle, bottom)
// via a perfect-hash lookup over prime-coded rank products, and 3-card rows
// (top) via a fixed enumeration table. Lower Rank means a stronger hand.
//
// The 5-card tables are built once at init() and shared process-wide; see
// fivecard.go for the Cactus-Kev-style scheme and perfecthash.go for the
// CHD-backed lookup that replaces a bare map.
package evaluator
