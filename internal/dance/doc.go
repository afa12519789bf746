// Package dance provides the move model of a permutation dance.
//
// A dance is a fixed list of moves applied, in order, to an ordered line of
// distinct tokens:
//
//   - [State]: the line of tokens, one per position
//   - [Move]: a Spin, Exchange or Partner move
//   - [Parse], [Moves]: the textual move syntax (s1, x3/4, pe/b)
//   - [Round]: one pass of the whole move list over a state
//
// # Example
//
//	moves, _ := dance.ParseAll(strings.Split("s1,x3/4,pe/b", ","))
//	next, _ := dance.Round(dance.Identity(5), moves)
//	fmt.Println(next) // baedc
//
// Every move is a permutation: the multiset of tokens in a state never changes.
package dance
