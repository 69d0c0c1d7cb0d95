package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"chessgo/internal/chess"
	"chessgo/internal/engine"
	"chessgo/internal/server/game"
)

const (
	DefaultDepth = 3
	MaxDepth     = 6
)

type Options struct {
	Games *game.Manager
	Log   zerolog.Logger
	Depth int // /api/ai_move 未指定深度时使用
}

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games *game.Manager
	log   zerolog.Logger
	depth int
}

func NewHandler(opts Options) *Handler {
	if opts.Games == nil {
		opts.Games = game.NewManager()
	}
	if opts.Depth <= 0 {
		opts.Depth = DefaultDepth
	}
	if opts.Depth > MaxDepth {
		opts.Depth = MaxDepth
	}
	return &Handler{games: opts.Games, log: opts.Log, depth: opts.Depth}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var fn func(http.ResponseWriter, *http.Request)
	switch r.URL.Path {
	case "/api/new_game":
		fn = h.handleNewGame
	case "/api/state":
		fn = h.handleState
	case "/api/legal_moves":
		fn = h.handleLegalMoves
	case "/api/play":
		fn = h.handlePlay
	case "/api/promote":
		fn = h.handlePromote
	case "/api/ai_move":
		fn = h.handleAiMove
	case "/api/restart":
		fn = h.handleRestart
	case "/api/delete":
		fn = h.handleDelete
	default:
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fn(w, r)
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if !h.decode(w, r, &req) {
		return
	}
	g, err := h.games.NewGame(req.FEN)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.log.Info().Str("game", g.ID).Msg("game created")
	h.writeState(w, g)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !h.decode(w, r, &req) {
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeState(w, g)
}

func (h *Handler) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	var req LegalMovesRequest
	if !h.decode(w, r, &req) {
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	var sq chess.Coordinate
	if req.Square != "" {
		sq, err = chess.ParseCoordinate(req.Square)
		if err != nil {
			h.writeErr(w, err)
			return
		}
	}

	resp := LegalMovesResponse{OK: true, Square: req.Square, Moves: []string{}}
	g.View(func(b *chess.Board) {
		if _, pending := b.PendingPromotion(); pending || b.Outcome().IsOver() {
			return
		}
		if req.Square == "" {
			resp.Moves = movesToDTO(b.LegalMovesFor(b.ActiveColor()))
			return
		}
		// 只给走子方的棋子返回着法
		if p := b.PieceAt(sq); p != nil && p.Color == b.ActiveColor() {
			resp.Moves = movesToDTO(b.LegalMoves(sq))
		}
	})
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !h.decode(w, r, &req) {
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	mv, err := chess.ParseUCI(req.Move)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	var resp StateResponse
	ok := g.Update(func(b *chess.Board) bool {
		if !b.Play(mv) {
			return false
		}
		resp = stateOf(g.ID, b)
		return true
	})
	if !ok {
		h.writeJSON(w, http.StatusConflict, ErrorResponse{Error: "illegal move"})
		return
	}
	h.log.Debug().Str("game", g.ID).Str("move", req.Move).Str("status", resp.Status).Msg("move played")
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePromote(w http.ResponseWriter, r *http.Request) {
	var req PromoteRequest
	if !h.decode(w, r, &req) {
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	kind := chess.NoKind
	if len(req.Piece) == 1 {
		kind, _ = chess.PieceKindFromLetter(req.Piece[0])
	}
	switch kind {
	case chess.Queen, chess.Rook, chess.Bishop, chess.Knight:
	default:
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "piece must be one of q, r, b, n"})
		return
	}

	var resp StateResponse
	done := g.Update(func(b *chess.Board) bool {
		if !b.Promote(kind) {
			return false
		}
		resp = stateOf(g.ID, b)
		return true
	})
	if !done {
		h.writeJSON(w, http.StatusConflict, ErrorResponse{Error: "no promotion pending"})
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if !h.decode(w, r, &req) {
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	depth := req.Depth
	if depth <= 0 {
		depth = h.depth
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}

	var (
		resp     AiMoveResponse
		conflict bool
	)
	g.Update(func(b *chess.Board) bool {
		if _, pending := b.PendingPromotion(); pending || b.Outcome().IsOver() {
			conflict = true
			return false
		}
		eng := engine.NewEngine()
		eng.SetLogger(h.log.With().Str("game", g.ID).Logger())
		res := eng.Search(b, engine.SearchConfig{Depth: depth, Side: b.ActiveColor()})

		resp.Score = res.Score
		resp.Depth = res.Depth
		resp.Nodes = res.Nodes
		resp.TimeMs = res.TimeUsed.Milliseconds()
		played := res.Found && b.Play(res.BestMove)
		if played {
			resp.BestMove = res.BestMove.UCI()
		}
		resp.State = stateOf(g.ID, b)
		return played
	})
	if conflict {
		h.writeJSON(w, http.StatusConflict, ErrorResponse{Error: "game over or promotion pending"})
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req RestartRequest
	if !h.decode(w, r, &req) {
		return
	}
	g, err := h.games.Restart(req.GameID, req.FEN)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.log.Info().Str("game", g.ID).Msg("game restarted")
	h.writeState(w, g)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.games.Delete(req.GameID); err != nil {
		h.writeErr(w, err)
		return
	}
	h.log.Info().Str("game", req.GameID).Msg("game deleted")
	h.writeJSON(w, http.StatusOK, OKResponse{OK: true})
}

func (h *Handler) writeState(w http.ResponseWriter, g *game.GameState) {
	var resp StateResponse
	g.View(func(b *chess.Board) { resp = stateOf(g.ID, b) })
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad json"})
		return false
	}
	return true
}

// writeErr 把领域错误映射成状态码
func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		code = http.StatusNotFound
	case errors.Is(err, chess.ErrInvalidFEN),
		errors.Is(err, chess.ErrInvalidSquare),
		errors.Is(err, chess.ErrInvalidMove):
		code = http.StatusBadRequest
	}
	if code == http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("request failed")
	}
	h.writeJSON(w, code, ErrorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn().Err(err).Msg("writeJSON error")
	}
}
