package game

import "fmt"

// ActionKind represents the type of action a player can perform.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

var kindNames = map[ActionKind]string{
	Fold:  "fold",
	Check: "check",
	Call:  "call",
	Bet:   "bet",
	Raise: "raise",
	AllIn: "all-in",
}

func (k ActionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is one legal move at a decision point. Amount is the number of
// chips put in by the action: the call amount for Call, the total bet
// size for Bet/Raise, the actor's remaining stack for AllIn, and zero
// for Fold and Check. Action is comparable and usable as a map key.
type Action struct {
	Kind   ActionKind
	Amount int64
}

func (a Action) String() string {
	switch a.Kind {
	case Fold, Check:
		return a.Kind.String()
	default:
		return fmt.Sprintf("%s %d", a.Kind, a.Amount)
	}
}

// HistoryEntry records one past action in the current hand.
type HistoryEntry struct {
	Player int
	Action Action
}
