// Package game models a single no-limit poker decision point: the pot,
// stacks, board and betting state the search operates on. It knows
// betting mechanics only; hand-strength evaluation is injected.
package game

// Evaluate scores a state to a value between -1 and 1 indicating how
// favorable the position is to the player to act (for showdown leaves,
// to the player who closed the action). Implementations are supplied
// by the caller; the search core never hard-codes hand-equity math.
type Evaluate func(*GameState) float64
