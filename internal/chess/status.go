package chess

type Status int8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	DrawFiftyMove
	DrawInsufficientMaterial
	DrawRepetition
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawFiftyMove:
		return "draw by fifty-move rule"
	case DrawInsufficientMaterial:
		return "draw by insufficient material"
	case DrawRepetition:
		return "draw by threefold repetition"
	}
	return "unknown"
}

// Outcome Winner 只在 Checkmate 时有意义
type Outcome struct {
	Status Status
	Winner Color
}

func (o Outcome) IsOver() bool { return o.Status != Ongoing }

func (o Outcome) IsDraw() bool { return o.IsOver() && o.Status != Checkmate }

func (o Outcome) String() string {
	if o.Status == Checkmate {
		return "checkmate, " + o.Winner.String() + " wins"
	}
	return o.Status.String()
}

// Evaluate checks, in order: fifty-move rule, insufficient material,
// threefold repetition, then checkmate / stalemate for the side to move.
func (b *Board) Evaluate() Outcome {
	if b.halfmove >= 100 {
		return Outcome{Status: DrawFiftyMove}
	}
	if b.InsufficientMaterial() {
		return Outcome{Status: DrawInsufficientMaterial}
	}
	if b.RepetitionCount() >= 3 {
		return Outcome{Status: DrawRepetition}
	}
	if !b.hasLegalMove(b.active) {
		if b.IsKingInCheck(b.active) {
			return Outcome{Status: Checkmate, Winner: b.active.Opposite()}
		}
		return Outcome{Status: Stalemate}
	}
	return Outcome{Status: Ongoing}
}

// InsufficientMaterial 只剩双王；或只剩一个轻子；或双方各一个同色格的象
func (b *Board) InsufficientMaterial() bool {
	var others []*Piece
	for _, p := range b.pieces {
		if p.Kind == King {
			continue
		}
		others = append(others, p)
		if len(others) > 2 {
			return false
		}
	}
	switch len(others) {
	case 0:
		return true
	case 1:
		k := others[0].Kind
		return k == Knight || k == Bishop
	case 2:
		x, y := others[0], others[1]
		return x.Kind == Bishop && y.Kind == Bishop &&
			x.Color != y.Color && x.Pos.isLight() == y.Pos.isLight()
	}
	return false
}
