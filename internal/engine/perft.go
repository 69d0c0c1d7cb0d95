package engine

import "chessgo/internal/chess"

// Perft counts leaf nodes of the legal move tree, depth plies deep, starting
// with the side to move.
func Perft(b *chess.Board, depth int) uint64 {
	return perft(b, depth, b.ActiveColor())
}

// Divide 按根节点着法拆分 perft 结果（UCI -> 节点数）
func Divide(b *chess.Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth < 1 {
		return out
	}
	side := b.ActiveColor()
	for _, mv := range b.LegalMovesFor(side) {
		out[mv.UCI()] = perftChild(b, mv, depth-1, side.Opposite())
	}
	return out
}

func perft(b *chess.Board, depth int, side chess.Color) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.LegalMovesFor(side)
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, mv := range moves {
		n += perftChild(b, mv, depth-1, side.Opposite())
	}
	return n
}

func perftChild(b *chess.Board, mv chess.Move, depth int, side chess.Color) uint64 {
	snap := b.Apply(mv)
	defer b.Undo(snap)
	return perft(b, depth, side)
}
