package chess

// Play submits m permanently. Only From, To and Promotion of m are read; the
// rest is taken from the matching legal move. A pawn reaching the last rank
// with Promotion == NoKind leaves the board waiting for Promote.
// It returns false, with nothing changed, when the move is not legal now.
func (b *Board) Play(m Move) bool {
	if b.outcome.IsOver() || b.pending != nil {
		return false
	}
	p := b.PieceAt(m.From)
	if p == nil || p.Color != b.active {
		return false
	}

	var chosen *Move
	deferPromotion := false
	for _, lm := range b.LegalMoves(m.From) {
		if lm.To != m.To {
			continue
		}
		if lm.Promotion == m.Promotion {
			chosen = &lm
			break
		}
		if m.Promotion == NoKind && lm.Promotion != NoKind {
			lm.Promotion = NoKind
			chosen = &lm
			deferPromotion = true
			break
		}
	}
	if chosen == nil {
		return false
	}

	resetClock := p.Kind == Pawn || chosen.Capture
	b.apply(*chosen)

	if deferPromotion {
		b.pending = &pendingPromotion{
			Promotion: Promotion{At: chosen.To, Color: p.Color},
			pawn:      p,
		}
		return true
	}
	b.finalize(resetClock)
	return true
}

// PlayUCI 解析 "e2e4" / "e7e8q" 后走子
func (b *Board) PlayUCI(s string) (bool, error) {
	m, err := ParseUCI(s)
	if err != nil {
		return false, err
	}
	return b.Play(m), nil
}

// Promote completes a pending promotion with one of Queen, Rook, Bishop or
// Knight.
func (b *Board) Promote(kind PieceKind) bool {
	if b.pending == nil || !isPromotionKind(kind) {
		return false
	}
	pawn := b.pending.pawn
	idx := b.removePiece(pawn)
	b.insertPiece(idx, &Piece{Kind: kind, Color: pawn.Color, Pos: pawn.Pos, HasMoved: true})
	b.pending = nil
	b.finalize(true)
	return true
}

// finalize 只在永久走子时调用：时钟、换边、重复计数、终局判定
func (b *Board) finalize(resetClock bool) {
	if resetClock {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if b.active == Black {
		b.fullmove++
	}
	b.active = b.active.Opposite()
	b.history[b.PositionKey()]++
	b.outcome = b.Evaluate()
}
