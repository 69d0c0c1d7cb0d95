package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"chessgo/internal/chess"
	"chessgo/internal/engine"
)

type gameResult struct {
	Outcome chess.Outcome
	Plies   int
	FEN     string
	Aborted bool // 达到步数上限
}

// playGame 从 fen 开始对局直到终局或 maxPlies
func playGame(log zerolog.Logger, fen string, white, black player, maxPlies int) (gameResult, error) {
	b, err := chess.NewBoardFromFEN(fen)
	if err != nil {
		return gameResult{}, err
	}

	plies := 0
	for ; plies < maxPlies && !b.Outcome().IsOver(); plies++ {
		p := white
		if b.ActiveColor() == chess.Black {
			p = black
		}
		mv, ok, err := p.BestMove(b)
		if err != nil {
			return gameResult{}, fmt.Errorf("%s: %w", p.Name(), err)
		}
		if !ok {
			break
		}
		if !b.Play(mv) {
			return gameResult{}, fmt.Errorf("%s played illegal move %s in %s", p.Name(), mv.UCI(), b.FEN())
		}
		log.Debug().Int("ply", plies+1).Str("by", p.Name()).Str("move", mv.UCI()).Msg("move")
	}

	return gameResult{
		Outcome: b.Outcome(),
		Plies:   plies,
		FEN:     b.FEN(),
		Aborted: !b.Outcome().IsOver(),
	}, nil
}

// material 双方子力总和，只算盘面
func material(fen string) (white, black int) {
	b, err := chess.NewBoardFromFEN(fen)
	if err != nil {
		return 0, 0
	}
	b.ForEachPiece(func(p chess.Piece) {
		if p.Color == chess.White {
			white += engine.PieceValue(p.Kind)
		} else {
			black += engine.PieceValue(p.Kind)
		}
	})
	return white, black
}

type tally struct {
	winsA, winsB, draws, aborted int
}

// runMatch plays games between a and b, swapping colors every game so a has
// white in the even-numbered ones.
func runMatch(log zerolog.Logger, fen string, a, b player, games, maxPlies int) (tally, error) {
	var t tally
	for g := 0; g < games; g++ {
		white, black := a, b
		if g%2 == 1 {
			white, black = b, a
		}
		fmt.Printf("\n=== Game %d: White [%s] vs Black [%s] ===\n", g+1, white.Name(), black.Name())

		res, err := playGame(log, fen, white, black, maxPlies)
		if err != nil {
			return t, err
		}
		wm, bm := material(res.FEN)
		fmt.Printf("Result: %s after %d plies, material %d-%d\nFinal: %s\n", res.Outcome, res.Plies, wm, bm, res.FEN)

		switch {
		case res.Aborted:
			t.aborted++
		case res.Outcome.IsDraw():
			t.draws++
		case (res.Outcome.Winner == chess.White) == (white == a):
			t.winsA++
		default:
			t.winsB++
		}
	}
	return t, nil
}
