// Package searcher implements time-bounded Monte Carlo Tree Search over
// poker decision points, with UCT selection, progressive widening and a
// bounded transposition table. A search produces per-action visit and
// value statistics in chip-value terms; tournament equity adjustment is
// layered on top by the icm package.
package searcher

import "math"

// Hyperparameter defaults for MCTS

const DefaultExploration = math.Sqrt2

// Progressive widening: a node with n visits may have at most
// floor(DefaultWideningC * n^DefaultWideningExp) children.
const DefaultWideningC = 2.0
const DefaultWideningExp = 0.5

const DefaultTableCapacity = 100_000
