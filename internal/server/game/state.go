package game

import (
	"sync"
	"time"

	"chessgo/internal/chess"
)

// GameState 一盘棋；棋盘本身不加锁，所有访问都经过 mu
type GameState struct {
	mu sync.Mutex

	ID        string
	board     *chess.Board
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View runs fn with the board under the game lock. fn must not keep b.
func (g *GameState) View(fn func(b *chess.Board)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.board)
}

// Update 同 View，fn 返回 true 时刷新 UpdatedAt
func (g *GameState) Update(fn func(b *chess.Board) bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	changed := fn(g.board)
	if changed {
		g.UpdatedAt = time.Now()
	}
	return changed
}

func (g *GameState) replace(b *chess.Board) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.board = b
	g.UpdatedAt = time.Now()
}
