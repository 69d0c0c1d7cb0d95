package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"chessgo/internal/chess"
)

var ErrGameNotFound = errors.New("game not found")

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

// newBoard 空串表示标准开局
func newBoard(fen string) (*chess.Board, error) {
	if fen == "" {
		return chess.NewBoard(), nil
	}
	return chess.NewBoardFromFEN(fen)
}

// NewGame starts a game from fen, or from the standard position when fen is
// empty. Decode errors wrap chess.ErrInvalidFEN.
func (m *Manager) NewGame(fen string) (*GameState, error) {
	b, err := newBoard(fen)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		board:     b,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.games[g.ID] = g
	return g, nil
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// Restart 整个换掉棋盘，ID 不变
func (m *Manager) Restart(id, fen string) (*GameState, error) {
	g, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	b, err := newBoard(fen)
	if err != nil {
		return nil, err
	}
	g.replace(b)
	return g, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
