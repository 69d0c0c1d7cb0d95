package chess

import "fmt"

// Snapshot records everything Apply changed. It belongs to the caller of
// Apply and must be handed back to Undo exactly once, innermost first.
type Snapshot struct {
	board *Board
	depth int
	used  bool

	move          Move
	movedHasMoved bool

	captured    *Piece
	capturedAt  Coordinate
	capturedIdx int

	prevEP       Coordinate
	prevHasEP    bool
	prevCastling CastlingRights

	rook         *Piece
	rookHasMoved bool

	promoted *Piece
	pawnIdx  int
}

// Captured 被吃掉的子（没有则 nil）
func (s *Snapshot) Captured() *Piece { return s.captured }

// Apply makes m on the board without switching the turn, touching the
// clocks or the repetition table. m must come from this board's generator.
func (b *Board) Apply(m Move) *Snapshot {
	s := b.apply(m)
	b.open++
	s.depth = b.open
	return s
}

// Undo reverts the most recent outstanding Apply.
func (b *Board) Undo(s *Snapshot) {
	switch {
	case s == nil:
		violate("Undo", fmt.Errorf("nil snapshot: %w", ErrStaleSnapshot))
	case s.board != b:
		violate("Undo", fmt.Errorf("snapshot from another board: %w", ErrStaleSnapshot))
	case s.used:
		violate("Undo", fmt.Errorf("snapshot already undone: %w", ErrStaleSnapshot))
	case s.depth != b.open:
		violate("Undo", fmt.Errorf("snapshot depth %d, outstanding %d: %w", s.depth, b.open, ErrStaleSnapshot))
	}
	s.used = true
	b.open--
	b.undo(s)
}

func (b *Board) apply(m Move) *Snapshot {
	p := m.Piece
	if p == nil || !m.From.Valid() || !m.To.Valid() || b.grid[m.From.index()] != p {
		violate("Apply", fmt.Errorf("%s: %w", m, ErrInvalidMove))
	}

	s := &Snapshot{
		board:         b,
		move:          m,
		movedHasMoved: p.HasMoved,
		capturedIdx:   -1,
		prevEP:        b.epTarget,
		prevHasEP:     b.hasEP,
		prevCastling:  b.castling,
		pawnIdx:       -1,
	}

	// 吃子：吃过路兵时被吃的兵不在落点
	victimAt := m.To
	if m.EnPassant {
		victimAt = m.To.offset(0, -pawnDir(p.Color))
	}
	if victim := b.grid[victimAt.index()]; victim != nil && victim != p {
		s.captured = victim
		s.capturedAt = victimAt
		s.capturedIdx = b.removePiece(victim)
	}

	b.relocate(p, m.To)
	p.HasMoved = true

	if m.Castle != NoCastle {
		rook := b.grid[rookHome(p.Color, m.Castle).index()]
		if rook == nil {
			violate("Apply", fmt.Errorf("%s: castle without rook: %w", m, ErrInvalidMove))
		}
		s.rook = rook
		s.rookHasMoved = rook.HasMoved
		b.relocate(rook, castleRookTo(p.Color, m.Castle))
		rook.HasMoved = true
	}

	if m.Promotion != NoKind {
		s.pawnIdx = b.removePiece(p)
		s.promoted = &Piece{Kind: m.Promotion, Color: p.Color, Pos: m.To, HasMoved: true}
		b.insertPiece(s.pawnIdx, s.promoted)
	}

	if p.Kind == King {
		b.castling.clear(p.Color, Kingside)
		b.castling.clear(p.Color, Queenside)
	}
	// 车离开角或角上被吃，对应易位权失效
	b.clearCornerRights(m.From)
	b.clearCornerRights(m.To)

	b.hasEP = false
	if p.Kind == Pawn && (m.To.Rank-m.From.Rank == 2 || m.From.Rank-m.To.Rank == 2) {
		b.epTarget = m.From.offset(0, pawnDir(p.Color))
		b.hasEP = true
	}
	return s
}

func (b *Board) undo(s *Snapshot) {
	m := s.move
	p := m.Piece

	if s.promoted != nil {
		b.removePiece(s.promoted)
		b.insertPiece(s.pawnIdx, p)
	}
	if s.rook != nil {
		b.relocate(s.rook, rookHome(p.Color, m.Castle))
		s.rook.HasMoved = s.rookHasMoved
	}

	b.relocate(p, m.From)
	p.HasMoved = s.movedHasMoved

	if s.captured != nil {
		s.captured.Pos = s.capturedAt
		b.insertPiece(s.capturedIdx, s.captured)
	}

	b.epTarget = s.prevEP
	b.hasEP = s.prevHasEP
	b.castling = s.prevCastling
}

func (b *Board) clearCornerRights(c Coordinate) {
	for _, color := range [2]Color{White, Black} {
		for _, side := range [2]CastleSide{Kingside, Queenside} {
			if c == rookHome(color, side) {
				b.castling.clear(color, side)
			}
		}
	}
}
