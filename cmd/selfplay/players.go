package main

import (
	"fmt"

	nchess "github.com/notnil/chess"
	"github.com/notnil/chess/uci"
	"github.com/rs/zerolog"

	"chessgo/internal/chess"
	"chessgo/internal/engine"
)

// player 为走子方挑一步；ok=false 表示无着可走
type player interface {
	Name() string
	BestMove(b *chess.Board) (mv chess.Move, ok bool, err error)
	Close()
}

type enginePlayer struct {
	depth int
	eng   *engine.Engine
	nodes int64
}

func newEnginePlayer(depth int, log zerolog.Logger) *enginePlayer {
	e := engine.NewEngine()
	e.SetLogger(log)
	return &enginePlayer{depth: depth, eng: e}
}

func (p *enginePlayer) Name() string { return fmt.Sprintf("alpha-beta d%d", p.depth) }

func (p *enginePlayer) BestMove(b *chess.Board) (chess.Move, bool, error) {
	res := p.eng.Search(b, engine.SearchConfig{Depth: p.depth, Side: b.ActiveColor()})
	p.nodes += res.Nodes
	return res.BestMove, res.Found, nil
}

func (p *enginePlayer) Close() {}

// uciPlayer 通过 FEN 把局面交给外部 UCI 引擎
type uciPlayer struct {
	path  string
	depth int
	eng   *uci.Engine
}

func newUCIPlayer(path string, depth int) (*uciPlayer, error) {
	eng, err := uci.New(path)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", path, err)
	}
	if err := eng.Run(uci.CmdUCI, uci.CmdIsReady, uci.CmdUCINewGame); err != nil {
		eng.Close()
		return nil, fmt.Errorf("uci handshake: %w", err)
	}
	return &uciPlayer{path: path, depth: depth, eng: eng}, nil
}

func (p *uciPlayer) Name() string { return fmt.Sprintf("uci %s d%d", p.path, p.depth) }

func (p *uciPlayer) BestMove(b *chess.Board) (chess.Move, bool, error) {
	if len(b.LegalMovesFor(b.ActiveColor())) == 0 {
		return chess.Move{}, false, nil
	}
	opt, err := nchess.FEN(b.FEN())
	if err != nil {
		return chess.Move{}, false, err
	}
	pos := nchess.NewGame(opt).Position()
	if err := p.eng.Run(uci.CmdPosition{Position: pos}, uci.CmdGo{Depth: p.depth}); err != nil {
		return chess.Move{}, false, err
	}
	best := p.eng.SearchResults().BestMove
	if best == nil {
		return chess.Move{}, false, fmt.Errorf("engine returned no move for %s", b.FEN())
	}
	mv, err := chess.ParseUCI(nchess.UCINotation{}.Encode(pos, best))
	if err != nil {
		return chess.Move{}, false, err
	}
	return mv, true, nil
}

func (p *uciPlayer) Close() { p.eng.Close() }
