package chess

func pawnDir(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// 可以吃过路兵时目标格所在横线
func epCaptureRank(c Color) int8 {
	if c == White {
		return 5
	}
	return 2
}

func promotionRank(c Color) int8 {
	if c == White {
		return 7
	}
	return 0
}

// 兵：单步、未动过时双步、斜吃（含吃过路兵）；到底线展开为四种升变
func genPawnMoves(b *Board, p *Piece, moves *[]Move) {
	dir := pawnDir(p.Color)

	one := p.Pos.offset(0, dir)
	if one.Valid() && b.grid[one.index()] == nil {
		appendPawnMove(p, Move{Piece: p, From: p.Pos, To: one}, moves)
		two := one.offset(0, dir)
		if !p.HasMoved && two.Valid() && b.grid[two.index()] == nil {
			*moves = append(*moves, Move{Piece: p, From: p.Pos, To: two})
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := p.Pos.offset(df, dir)
		if !to.Valid() {
			continue
		}
		if dst := b.grid[to.index()]; dst != nil {
			if dst.Color != p.Color {
				appendPawnMove(p, Move{Piece: p, From: p.Pos, To: to, Capture: true}, moves)
			}
			continue
		}
		if b.hasEP && to == b.epTarget && to.Rank == epCaptureRank(p.Color) {
			// 被吃的兵在目标格后面一格
			victim := b.PieceAt(to.offset(0, -dir))
			if victim != nil && victim.Kind == Pawn && victim.Color != p.Color {
				*moves = append(*moves, Move{Piece: p, From: p.Pos, To: to, Capture: true, EnPassant: true})
			}
		}
	}
}

func appendPawnMove(p *Piece, m Move, moves *[]Move) {
	if m.To.Rank != promotionRank(p.Color) {
		*moves = append(*moves, m)
		return
	}
	for _, k := range promotionKinds {
		m.Promotion = k
		*moves = append(*moves, m)
	}
}
