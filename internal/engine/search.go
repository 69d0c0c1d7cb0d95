package engine

import (
	"math"
	"time"

	"chessgo/internal/chess"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = math.MaxInt32

	// MateScore is the score of a mated side before the remaining-depth bonus
	// that makes quicker mates score higher.
	MateScore = 1_000_000
)

// 搜索配置
type SearchConfig struct {
	Depth int         // 搜索深度（ply），<1 按 1 处理
	Side  chess.Color // 替哪一方找着法

	// DisablePruning 跑纯 minimax（不剪枝、不用置换表），用来对拍
	DisablePruning bool
}

// 搜索结果
type SearchResult struct {
	BestMove chess.Move
	Found    bool          // 该方无合法着法时为 false
	Score    int           // 白方视角：正数白方好
	Depth    int
	Nodes    int64
	TimeUsed time.Duration
}

// FindBestMove searches depth plies for side and returns its best move, or
// false when side has no legal move. Among equally scored moves the first in
// generation order wins.
func FindBestMove(b *chess.Board, depth int, side chess.Color) (chess.Move, bool) {
	res := NewEngine().Search(b, SearchConfig{Depth: depth, Side: side})
	return res.BestMove, res.Found
}

// Search runs a depth-bounded minimax with alpha-beta pruning. Moves are
// searched in generation order, so the chosen move is the same one plain
// minimax would pick. The board is returned to its original state.
func (e *Engine) Search(b *chess.Board, cfg SearchConfig) SearchResult {
	if cfg.Depth < 1 {
		cfg.Depth = 1
	}
	start := time.Now()
	e.nodes = 0
	e.resetTT()

	score, best, found := e.searchRoot(b, cfg)

	res := SearchResult{
		BestMove: best,
		Found:    found,
		Score:    score,
		Depth:    cfg.Depth,
		Nodes:    e.nodes,
		TimeUsed: time.Since(start),
	}
	e.log.Debug().
		Str("side", cfg.Side.String()).
		Int("depth", res.Depth).
		Bool("found", res.Found).
		Str("best", res.BestMove.UCI()).
		Int("score", res.Score).
		Int64("nodes", res.Nodes).
		Dur("took", res.TimeUsed).
		Msg("search done")
	return res
}

// 根节点：白方取最大、黑方取最小，只有严格更好才替换
func (e *Engine) searchRoot(b *chess.Board, cfg SearchConfig) (int, chess.Move, bool) {
	e.nodes++
	moves := b.LegalMovesFor(cfg.Side)
	if len(moves) == 0 {
		return 0, chess.Move{}, false
	}

	maximizing := cfg.Side == chess.White
	alpha, beta := -scoreInf, scoreInf
	bestIdx := -1
	bestScore := 0
	for i, mv := range moves {
		var score int
		if cfg.DisablePruning {
			score = e.child(b, mv, cfg.Depth-1, cfg.Side.Opposite(), -scoreInf, scoreInf, false)
		} else {
			score = e.child(b, mv, cfg.Depth-1, cfg.Side.Opposite(), alpha, beta, true)
		}
		if bestIdx < 0 || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestIdx = i
			bestScore = score
			if maximizing {
				alpha = score
			} else {
				beta = score
			}
		}
	}
	return bestScore, moves[bestIdx], true
}

// child 走一步、递归、撤销；Undo 放在 defer 里，任何退出路径都会执行
func (e *Engine) child(b *chess.Board, mv chess.Move, depth int, side chess.Color, alpha, beta int, prune bool) int {
	snap := b.Apply(mv)
	defer b.Undo(snap)
	return e.alphaBeta(b, depth, side, alpha, beta, prune)
}

// 内部递归：标准 alpha-beta；prune 为 false 时窗口始终全开
func (e *Engine) alphaBeta(b *chess.Board, depth int, side chess.Color, alpha, beta int, prune bool) int {
	e.nodes++

	if depth <= 0 {
		return Evaluate(b)
	}

	var key uint64
	if prune {
		key = b.SearchKey(side)
		if score, ok := e.probeTT(key, depth, alpha, beta); ok {
			return score
		}
	}

	moves := b.LegalMovesFor(side)
	if len(moves) == 0 {
		return terminalScore(b, side, depth)
	}

	alpha0, beta0 := alpha, beta
	var bestScore int
	if side == chess.White {
		// 极大层
		bestScore = -scoreInf
		for _, mv := range moves {
			score := e.child(b, mv, depth-1, chess.Black, alpha, beta, prune)
			if score > bestScore {
				bestScore = score
			}
			if prune && score > alpha {
				alpha = score
			}
			if prune && alpha >= beta {
				break
			}
		}
	} else {
		// 极小层
		bestScore = scoreInf
		for _, mv := range moves {
			score := e.child(b, mv, depth-1, chess.White, alpha, beta, prune)
			if score < bestScore {
				bestScore = score
			}
			if prune && score < beta {
				beta = score
			}
			if prune && alpha >= beta {
				break
			}
		}
	}

	if prune {
		flag := ttExact
		switch {
		case bestScore <= alpha0:
			flag = ttUpper
		case bestScore >= beta0:
			flag = ttLower
		}
		e.storeTT(key, depth, bestScore, flag)
	}
	return bestScore
}

// 无着可走：被将死按剩余深度加成，越早将死分越高；逼和为 0
func terminalScore(b *chess.Board, side chess.Color, depth int) int {
	if !b.IsKingInCheck(side) {
		return 0
	}
	if side == chess.White {
		return -(MateScore + depth)
	}
	return MateScore + depth
}
