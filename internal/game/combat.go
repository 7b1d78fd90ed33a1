package game

// CanCapture reports whether att may attack def. The Rat/Elephant pair overrides rank order.
func CanCapture(att, def Piece) bool {
	if att.Kind == Rat && def.Kind == Elephant {
		return true
	}
	ok := att.Rank() >= def.Rank()
	if att.Kind == Elephant && def.Kind == Rat {
		ok = false
	}
	return ok
}

type CombatResult int

const (
	AttackerWins CombatResult = iota
	MutualElimination
)

// Resolve assumes CanCapture(att, def) holds. Equal ranks remove both pieces.
func Resolve(att, def Piece) CombatResult {
	if att.Rank() == def.Rank() {
		return MutualElimination
	}
	return AttackerWins
}
