package chess

// 王：周围 8 格 + 易位候选
func genKingMoves(b *Board, p *Piece, moves *[]Move) {
	genStepMoves(b, p, queenDirs[:], moves)
	genCastleCandidates(b, p, moves)
}

// 易位候选只看：有易位权、车在角上、中间格子全空。
// 是否经过被攻击格由 legalCastle 过滤。
func genCastleCandidates(b *Board, k *Piece, moves *[]Move) {
	if k.Pos != kingHome(k.Color) {
		return
	}
	for _, side := range [2]CastleSide{Kingside, Queenside} {
		if !b.castling.Has(k.Color, side) {
			continue
		}
		rook := b.PieceAt(rookHome(k.Color, side))
		if rook == nil || rook.Kind != Rook || rook.Color != k.Color {
			continue
		}
		if !b.castlePathEmpty(k.Color, side) {
			continue
		}
		*moves = append(*moves, Move{Piece: k, From: k.Pos, To: castleKingTo(k.Color, side), Castle: side})
	}
}

func (b *Board) castlePathEmpty(c Color, side CastleSide) bool {
	r := int(backRank(c))
	lo, hi := 5, 6
	if side == Queenside {
		lo, hi = 1, 3
	}
	for f := lo; f <= hi; f++ {
		if b.grid[r*8+f] != nil {
			return false
		}
	}
	return true
}

func castleKingTo(c Color, side CastleSide) Coordinate {
	if side == Kingside {
		return Coordinate{File: 6, Rank: backRank(c)}
	}
	return Coordinate{File: 2, Rank: backRank(c)}
}

func castleRookTo(c Color, side CastleSide) Coordinate {
	if side == Kingside {
		return Coordinate{File: 5, Rank: backRank(c)}
	}
	return Coordinate{File: 3, Rank: backRank(c)}
}
