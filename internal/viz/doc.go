// Package viz provides a terminal view of a dance as it is danced.
//
// The view is a Bubble Tea program: each tick dances one round, colors the
// tokens that are away from their starting position, and charts the
// displacement history. Once a line-up repeats, the cycle start and length
// are shown along with the line-up the full round count would end on.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Dance one round while paused
//	R     - Reset to the starting line-up
//	Q     - Quit
package viz
