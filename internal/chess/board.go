package chess

import (
	"fmt"
	"strings"
)

const NumSquares = 64

// InitialFEN 标准开局
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Board owns the full game state. It is single-threaded: callers that share
// a board between goroutines must serialize access themselves.
type Board struct {
	// pieces 独占所有棋子；grid 只是按格子索引的非拥有指针
	pieces []*Piece
	grid   [NumSquares]*Piece

	active   Color
	castling CastlingRights
	epTarget Coordinate
	hasEP    bool // 上一手是否兵走两步
	halfmove int
	fullmove int

	history map[uint64]int // 局面键 -> 出现次数，只在永久走子时更新
	pending *pendingPromotion
	outcome Outcome

	open int // 尚未 Undo 的非永久 Apply 数量
}

type pendingPromotion struct {
	Promotion
	pawn *Piece
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b, err := NewBoardFromFEN(InitialFEN)
	if err != nil {
		panic("initial FEN: " + err.Error())
	}
	return b
}

func newEmptyBoard() *Board {
	return &Board{
		pieces:   make([]*Piece, 0, 32),
		fullmove: 1,
		history:  make(map[uint64]int),
	}
}

func (b *Board) ActiveColor() Color { return b.active }

func (b *Board) CastlingRights() CastlingRights { return b.castling }

func (b *Board) HalfmoveClock() int { return b.halfmove }

func (b *Board) FullmoveNumber() int { return b.fullmove }

func (b *Board) Outcome() Outcome { return b.outcome }

// PieceAt 空格返回 nil
func (b *Board) PieceAt(c Coordinate) *Piece {
	if !c.Valid() {
		return nil
	}
	return b.grid[c.index()]
}

// Pieces returns copies of every piece in collection order.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, len(b.pieces))
	for i, p := range b.pieces {
		out[i] = *p
	}
	return out
}

// ForEachPiece calls fn with a copy of every piece, in collection order.
func (b *Board) ForEachPiece(fn func(Piece)) {
	for _, p := range b.pieces {
		fn(*p)
	}
}

func (b *Board) PendingPromotion() (Promotion, bool) {
	if b.pending == nil {
		return Promotion{}, false
	}
	return b.pending.Promotion, true
}

// EnPassantTarget 只在走子方确实能合法吃过路兵时返回目标格
func (b *Board) EnPassantTarget() (Coordinate, bool) {
	if !b.effectiveEnPassant() {
		return Coordinate{}, false
	}
	return b.epTarget, true
}

// RepetitionCount 当前局面已出现的次数
func (b *Board) RepetitionCount() int {
	return b.history[b.PositionKey()]
}

func (b *Board) addPiece(p *Piece) {
	b.pieces = append(b.pieces, p)
	b.grid[p.Pos.index()] = p
}

// removePiece 从集合和网格中移除，返回它原来的下标（Undo 时按原位插回）
func (b *Board) removePiece(p *Piece) int {
	idx := -1
	for i, q := range b.pieces {
		if q == p {
			idx = i
			break
		}
	}
	if idx < 0 {
		violate("removePiece", fmt.Errorf("%v not in collection", p))
	}
	copy(b.pieces[idx:], b.pieces[idx+1:])
	b.pieces[len(b.pieces)-1] = nil
	b.pieces = b.pieces[:len(b.pieces)-1]
	if b.grid[p.Pos.index()] == p {
		b.grid[p.Pos.index()] = nil
	}
	return idx
}

func (b *Board) insertPiece(idx int, p *Piece) {
	if idx < 0 || idx > len(b.pieces) {
		idx = len(b.pieces)
	}
	b.pieces = append(b.pieces, nil)
	copy(b.pieces[idx+1:], b.pieces[idx:])
	b.pieces[idx] = p
	b.grid[p.Pos.index()] = p
}

func (b *Board) relocate(p *Piece, to Coordinate) {
	if b.grid[p.Pos.index()] == p {
		b.grid[p.Pos.index()] = nil
	}
	p.Pos = to
	b.grid[to.index()] = p
}

func (b *Board) findKing(c Color) *Piece {
	for _, p := range b.pieces {
		if p.Kind == King && p.Color == c {
			return p
		}
	}
	return nil
}

// CheckInvariants verifies that the grid and the piece collection agree and
// that each side has exactly one king.
func (b *Board) CheckInvariants() error {
	seen := make(map[*Piece]bool, len(b.pieces))
	kings := [2]int{}
	for _, p := range b.pieces {
		if p == nil {
			return fmt.Errorf("nil piece in collection")
		}
		if seen[p] {
			return fmt.Errorf("%v listed twice", p)
		}
		seen[p] = true
		if !p.Pos.Valid() {
			return fmt.Errorf("%v off board", p)
		}
		if b.grid[p.Pos.index()] != p {
			return fmt.Errorf("grid %s does not reference %v", p.Pos, p)
		}
		if p.Kind == King {
			kings[p.Color]++
		}
	}
	for idx, p := range b.grid {
		if p == nil {
			continue
		}
		if !seen[p] {
			return fmt.Errorf("grid %s references %v outside collection", coordOf(idx), p)
		}
		if p.Pos != coordOf(idx) {
			return fmt.Errorf("grid %s references %v at %s", coordOf(idx), p, p.Pos)
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("king count white=%d black=%d: %w", kings[White], kings[Black], ErrKingMissing)
	}
	if b.open != 0 {
		return fmt.Errorf("%d speculative moves not undone", b.open)
	}
	return nil
}

// String draws the board, rank 8 on top. Debug only.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		sb.WriteByte(byte('1' + r))
		sb.WriteByte(' ')
		for f := 0; f < 8; f++ {
			p := b.grid[r*8+f]
			if p == nil {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(p.Letter())
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
