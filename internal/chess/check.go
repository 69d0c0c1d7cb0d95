package chess

import "fmt"

// IsAttacked 判断 sq 是否被 by 一方攻击。
// 从目标格反查：兵的斜线即使是空格也算攻击，易位永远不算攻击。
func (b *Board) IsAttacked(sq Coordinate, by Color) bool {
	if !sq.Valid() {
		return false
	}

	// 兵：攻击方的兵在 sq 的斜后方（相对攻击方的前进方向）
	dir := pawnDir(by)
	for _, df := range [2]int{-1, 1} {
		if p := b.PieceAt(sq.offset(df, -dir)); p != nil && p.Color == by && p.Kind == Pawn {
			return true
		}
	}

	for _, d := range knightOffsets {
		if p := b.PieceAt(sq.offset(d[0], d[1])); p != nil && p.Color == by && p.Kind == Knight {
			return true
		}
	}

	for _, d := range queenDirs {
		if p := b.PieceAt(sq.offset(d[0], d[1])); p != nil && p.Color == by && p.Kind == King {
			return true
		}
	}

	for _, d := range rookDirs {
		if p := b.firstOnRay(sq, d); p != nil && p.Color == by && (p.Kind == Rook || p.Kind == Queen) {
			return true
		}
	}
	for _, d := range bishopDirs {
		if p := b.firstOnRay(sq, d); p != nil && p.Color == by && (p.Kind == Bishop || p.Kind == Queen) {
			return true
		}
	}
	return false
}

func (b *Board) firstOnRay(from Coordinate, d [2]int) *Piece {
	to := from.offset(d[0], d[1])
	for to.Valid() {
		if p := b.grid[to.index()]; p != nil {
			return p
		}
		to = to.offset(d[0], d[1])
	}
	return nil
}

// IsKingInCheck 王不在棋盘上属于调用方破坏了不变量，直接 panic
func (b *Board) IsKingInCheck(c Color) bool {
	k := b.findKing(c)
	if k == nil {
		violate("IsKingInCheck", fmt.Errorf("%s: %w", c, ErrKingMissing))
	}
	return b.IsAttacked(k.Pos, c.Opposite())
}

// legalCastle 王车都没动过，起点、经过格、落点都不被攻击
func (b *Board) legalCastle(m Move) bool {
	k := m.Piece
	if k.HasMoved {
		return false
	}
	rook := b.PieceAt(rookHome(k.Color, m.Castle))
	if rook == nil || rook.Kind != Rook || rook.Color != k.Color || rook.HasMoved {
		return false
	}
	if !b.castlePathEmpty(k.Color, m.Castle) {
		return false
	}
	enemy := k.Color.Opposite()
	step := 1
	if m.Castle == Queenside {
		step = -1
	}
	for i := 0; i <= 2; i++ {
		if b.IsAttacked(k.Pos.offset(i*step, 0), enemy) {
			return false
		}
	}
	return true
}
