package main

import (
	"testing"

	"github.com/rs/zerolog"

	"chessgo/internal/chess"
)

func TestPlayGameMate(t *testing.T) {
	log := zerolog.Nop()
	a := newEnginePlayer(2, log)
	b := newEnginePlayer(1, log)

	res, err := playGame(log, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", a, b, 10)
	if err != nil {
		t.Fatalf("playGame: %v", err)
	}
	if res.Outcome.Status != chess.Checkmate || res.Outcome.Winner != chess.White || res.Plies != 1 {
		t.Fatalf("got %s after %d plies", res.Outcome, res.Plies)
	}
	if res.Aborted {
		t.Fatalf("finished game marked aborted")
	}
}

func TestPlayGamePlyLimit(t *testing.T) {
	log := zerolog.Nop()
	p := newEnginePlayer(1, log)
	res, err := playGame(log, chess.InitialFEN, p, p, 4)
	if err != nil {
		t.Fatalf("playGame: %v", err)
	}
	if !res.Aborted || res.Plies != 4 {
		t.Fatalf("aborted=%v plies=%d", res.Aborted, res.Plies)
	}
}

func TestRunMatchSwapsColors(t *testing.T) {
	log := zerolog.Nop()
	a := newEnginePlayer(2, log)
	b := newEnginePlayer(2, log)

	// 这个局面谁执白谁一步杀
	tl, err := runMatch(log, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", a, b, 2, 10)
	if err != nil {
		t.Fatalf("runMatch: %v", err)
	}
	if tl.winsA != 1 || tl.winsB != 1 || tl.draws != 0 {
		t.Fatalf("tally got=%+v", tl)
	}
}

func TestMaterial(t *testing.T) {
	w, b := material(chess.InitialFEN)
	if w != 4000 || b != 4000 {
		t.Fatalf("material got=%d-%d want 4000-4000", w, b)
	}
	w, b = material("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	if w != 500 || b != 0 {
		t.Fatalf("material got=%d-%d", w, b)
	}
}

func TestRunMatchCountsDraws(t *testing.T) {
	log := zerolog.Nop()
	p := newEnginePlayer(1, log)
	tl, err := runMatch(log, "8/8/8/8/8/8/8/K6k w - - 0 1", p, p, 1, 10)
	if err != nil {
		t.Fatalf("runMatch: %v", err)
	}
	if tl.draws != 1 || tl.winsA != 0 || tl.winsB != 0 || tl.aborted != 0 {
		t.Fatalf("tally got=%+v", tl)
	}
}
