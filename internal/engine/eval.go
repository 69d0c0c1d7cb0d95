package engine

import "chessgo/internal/chess"

// 子力价值，王不计分
var pieceValue = [...]int{
	chess.NoKind: 0,
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
	chess.King:   0,
}

// Evaluate is the material balance from White's point of view: positive is
// good for White, negative for Black.
func Evaluate(b *chess.Board) int {
	score := 0
	b.ForEachPiece(func(p chess.Piece) {
		if p.Color == chess.White {
			score += pieceValue[p.Kind]
		} else {
			score -= pieceValue[p.Kind]
		}
	})
	return score
}

// PieceValue 对外暴露子力价值（selfplay 统计用）
func PieceValue(k chess.PieceKind) int {
	if k < 0 || int(k) >= len(pieceValue) {
		return 0
	}
	return pieceValue[k]
}
