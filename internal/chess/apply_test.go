package chess

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// boardState 是 Board 可观察状态的拷贝，方便 cmp.Diff
type boardState struct {
	Pieces   []Piece
	Grid     [NumSquares]string
	Active   Color
	Castling CastlingRights
	EP       Coordinate
	HasEP    bool
	Halfmove int
	Fullmove int
	History  map[uint64]int
}

func captureState(b *Board) boardState {
	s := boardState{
		Pieces:   b.Pieces(),
		Active:   b.active,
		Castling: b.castling,
		EP:       b.epTarget,
		HasEP:    b.hasEP,
		Halfmove: b.halfmove,
		Fullmove: b.fullmove,
		History:  make(map[uint64]int, len(b.history)),
	}
	for i, p := range b.grid {
		if p != nil {
			s.Grid[i] = p.String()
		}
	}
	for k, v := range b.history {
		s.History[k] = v
	}
	return s
}

func assertPiecesEqual(t *testing.T, want, got []Piece) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pieces mismatch (-want +got):\n%s", diff)
	}
}

// walkApplyUndo 对每个合法走法做 apply/undo，递归到 depth 层
func walkApplyUndo(t *testing.T, b *Board, side Color, depth int) int {
	t.Helper()
	if depth == 0 {
		return 0
	}
	n := 0
	for _, m := range b.LegalMovesFor(side) {
		before := captureState(b)
		snap := b.Apply(m)
		n += 1 + walkApplyUndo(t, b, side.Opposite(), depth-1)
		b.Undo(snap)
		if diff := cmp.Diff(before, captureState(b)); diff != "" {
			t.Fatalf("apply/undo %s changed the board (-before +after):\n%s", m, diff)
		}
	}
	return n
}

func TestApplyUndoIdentity(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			b := mustFEN(t, fen)
			if n := walkApplyUndo(t, b, b.ActiveColor(), 2); n == 0 {
				t.Fatalf("no moves walked")
			}
			if err := b.CheckInvariants(); err != nil {
				t.Fatalf("invariants: %v", err)
			}
		})
	}
}

func TestApplyDoesNotSwitchTurn(t *testing.T) {
	b := NewBoard()
	m := b.LegalMoves(Sq(4, 1))[1] // e2e4
	snap := b.Apply(m)
	if b.ActiveColor() != White || b.HalfmoveClock() != 0 || b.FullmoveNumber() != 1 {
		t.Fatalf("Apply finalized: active=%s half=%d full=%d", b.ActiveColor(), b.HalfmoveClock(), b.FullmoveNumber())
	}
	if err := b.CheckInvariants(); err == nil {
		t.Fatalf("outstanding snapshot not reported")
	}
	b.Undo(snap)
	if err := b.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func expectInvariantPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		ie, ok := r.(*InvariantError)
		if !ok {
			t.Fatalf("panic got=%v want *InvariantError", r)
		}
		if !errors.Is(ie, target) {
			t.Fatalf("panic err got=%v want %v", ie, target)
		}
	}()
	fn()
}

func TestUndoDiscipline(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		b := NewBoard()
		expectInvariantPanic(t, ErrStaleSnapshot, func() { b.Undo(nil) })
	})

	t.Run("twice", func(t *testing.T) {
		b := NewBoard()
		snap := b.Apply(b.LegalMovesFor(White)[0])
		b.Undo(snap)
		expectInvariantPanic(t, ErrStaleSnapshot, func() { b.Undo(snap) })
	})

	t.Run("out of order", func(t *testing.T) {
		b := NewBoard()
		outer := b.Apply(b.LegalMovesFor(White)[0])
		inner := b.Apply(b.LegalMovesFor(Black)[0])
		expectInvariantPanic(t, ErrStaleSnapshot, func() { b.Undo(outer) })
		b.Undo(inner)
		b.Undo(outer)
		if err := b.CheckInvariants(); err != nil {
			t.Fatalf("invariants: %v", err)
		}
	})

	t.Run("other board", func(t *testing.T) {
		a, b := NewBoard(), NewBoard()
		snap := a.Apply(a.LegalMovesFor(White)[0])
		expectInvariantPanic(t, ErrStaleSnapshot, func() { b.Undo(snap) })
	})
}

func TestKingMissingPanics(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	b.removePiece(b.findKing(Black))
	expectInvariantPanic(t, ErrKingMissing, func() { b.IsKingInCheck(Black) })
	if err := b.CheckInvariants(); !errors.Is(err, ErrKingMissing) {
		t.Fatalf("CheckInvariants got=%v want ErrKingMissing", err)
	}
}

func TestApplyForeignMovePanics(t *testing.T) {
	b := NewBoard()
	expectInvariantPanic(t, ErrInvalidMove, func() {
		b.Apply(Move{From: Sq(4, 1), To: Sq(4, 3)})
	})
}

func TestRepetitionTableUntouchedBySearchApply(t *testing.T) {
	b := NewBoard()
	before := b.RepetitionCount()
	for _, m := range b.LegalMovesFor(White) {
		b.Undo(b.Apply(m))
	}
	if b.RepetitionCount() != before || len(b.history) != 1 {
		t.Fatalf("history touched: count=%d size=%d", b.RepetitionCount(), len(b.history))
	}
}
