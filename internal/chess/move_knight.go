package chess

var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

func genKnightMoves(b *Board, p *Piece, moves *[]Move) {
	genStepMoves(b, p, knightOffsets[:], moves)
}
