// Package analysis provides offline tools for studying a dance.
//
//   - [FindCycle]: Floyd's tortoise and hare, constant memory
//   - [Factor]: splits a move list into a positional permutation and a
//     renaming, so any round count can be reached by repeated squaring
//
// Both are independent of the history-based [sim.Simulator] and are used to
// cross-check it.
package analysis
