// Package portfolio turns raw wallet balances, DeFi positions and transactions into the
// dashboard's derived figures: tokens with allocations, protocol rows, heuristic risk
// metrics and totals.
//
// Everything here is a pure function over in-memory records. Nothing blocks, nothing is
// cached, and every function is safe for concurrent use. Empty input always yields neutral
// output rather than an error.
package portfolio
