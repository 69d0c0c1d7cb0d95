package chess

func genPieceMoves(b *Board, p *Piece, moves *[]Move) {
	switch p.Kind {
	case Pawn:
		genPawnMoves(b, p, moves)
	case Knight:
		genKnightMoves(b, p, moves)
	case Bishop, Rook, Queen:
		genSliderMoves(b, p, moves)
	case King:
		genKingMoves(b, p, moves)
	}
}

// PseudoLegalMoves 该格棋子的伪合法走法（不管自己的王是否被将）
func (b *Board) PseudoLegalMoves(c Coordinate) []Move {
	p := b.PieceAt(c)
	if p == nil {
		return nil
	}
	var moves []Move
	genPieceMoves(b, p, &moves)
	return moves
}

// PseudoLegalMovesFor 按 a1..h8 扫描生成一方全部伪合法走法
func (b *Board) PseudoLegalMovesFor(color Color) []Move {
	moves := make([]Move, 0, 48)
	for sq := 0; sq < NumSquares; sq++ {
		p := b.grid[sq]
		if p == nil || p.Color != color {
			continue
		}
		genPieceMoves(b, p, &moves)
	}
	return moves
}

// LegalMoves returns the legal moves of the piece on c, or nil when the
// square is empty.
func (b *Board) LegalMoves(c Coordinate) []Move {
	return b.filterLegal(b.PseudoLegalMoves(c))
}

// LegalMovesFor returns every legal move of color in generation order.
func (b *Board) LegalMovesFor(color Color) []Move {
	return b.filterLegal(b.PseudoLegalMovesFor(color))
}

func (b *Board) filterLegal(pseudo []Move) []Move {
	out := pseudo[:0]
	for _, m := range pseudo {
		if b.isLegal(m) {
			out = append(out, m)
		}
	}
	return out
}

func (b *Board) isLegal(m Move) bool {
	if m.Castle != NoCastle {
		return b.legalCastle(m)
	}
	return b.leavesKingSafe(m)
}

// 试走一步，看自己的王是否仍被将军
func (b *Board) leavesKingSafe(m Move) bool {
	snap := b.Apply(m)
	defer b.Undo(snap)
	return !b.IsKingInCheck(m.Piece.Color)
}

// hasLegalMove 找到一个就返回，终局判定用
func (b *Board) hasLegalMove(color Color) bool {
	for sq := 0; sq < NumSquares; sq++ {
		p := b.grid[sq]
		if p == nil || p.Color != color {
			continue
		}
		var moves []Move
		genPieceMoves(b, p, &moves)
		for _, m := range moves {
			if b.isLegal(m) {
				return true
			}
		}
	}
	return false
}
