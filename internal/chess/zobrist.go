package chess

import "sync"

const zobristKinds = 7 // PieceKind 范围 [1..6]，0 不用

var (
	zobristOnce sync.Once

	zobristPieces [2][zobristKinds][NumSquares]uint64
	zobristSide   uint64
	zobristCastle [4]uint64
	zobristEPFile [8]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for c := 0; c < 2; c++ {
			for k := 1; k < zobristKinds; k++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[c][k][sq] = next()
				}
			}
		}
		zobristSide = next()
		for i := range zobristCastle {
			zobristCastle[i] = next()
		}
		for i := range zobristEPFile {
			zobristEPFile[i] = next()
		}
	})
}

func (b *Board) placementHash() uint64 {
	initZobrist()
	var h uint64
	for _, p := range b.pieces {
		h ^= zobristPieces[p.Color][p.Kind][p.Pos.index()]
	}
	if b.castling.WhiteKingside {
		h ^= zobristCastle[0]
	}
	if b.castling.WhiteQueenside {
		h ^= zobristCastle[1]
	}
	if b.castling.BlackKingside {
		h ^= zobristCastle[2]
	}
	if b.castling.BlackQueenside {
		h ^= zobristCastle[3]
	}
	return h
}

// PositionKey 重复局面判定用的键：棋子摆放、走子方、易位权、有效的过路兵列
func (b *Board) PositionKey() uint64 {
	h := b.placementHash()
	if b.active == Black {
		h ^= zobristSide
	}
	if b.effectiveEnPassant() {
		h ^= zobristEPFile[b.epTarget.File]
	}
	return h
}

// SearchKey hashes the position with side as the mover and the raw
// en-passant target, for the search transposition table.
func (b *Board) SearchKey(side Color) uint64 {
	h := b.placementHash()
	if side == Black {
		h ^= zobristSide
	}
	if b.hasEP {
		h ^= zobristEPFile[b.epTarget.File]
	}
	return h
}

// effectiveEnPassant 走子方是否真的有一步合法的吃过路兵
func (b *Board) effectiveEnPassant() bool {
	if !b.hasEP {
		return false
	}
	dir := pawnDir(b.active)
	for _, df := range [2]int{-1, 1} {
		p := b.PieceAt(b.epTarget.offset(df, -dir))
		if p == nil || p.Kind != Pawn || p.Color != b.active {
			continue
		}
		var moves []Move
		genPawnMoves(b, p, &moves)
		for _, m := range moves {
			if m.EnPassant && b.leavesKingSafe(m) {
				return true
			}
		}
	}
	return false
}
