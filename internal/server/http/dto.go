package httpserver

import (
	"chessgo/internal/chess"
)

// 请求里只带 game_id 的接口共用
type GameRequest struct {
	GameID string `json:"game_id"`
}

type NewGameRequest struct {
	FEN string `json:"fen,omitempty"` // 空表示标准开局
}

type RestartRequest struct {
	GameID string `json:"game_id"`
	FEN    string `json:"fen,omitempty"`
}

// LegalMoves 请求：square 为空时返回走子方全部合法着法
type LegalMovesRequest struct {
	GameID string `json:"game_id"`
	Square string `json:"square,omitempty"`
}

type LegalMovesResponse struct {
	OK     bool     `json:"ok"`
	Square string   `json:"square,omitempty"`
	Moves  []string `json:"moves"`
}

// Play 请求：UCI 格式，升变可以带子力（e7e8q），也可以留空再调 /api/promote
type PlayRequest struct {
	GameID string `json:"game_id"`
	Move   string `json:"move"`
}

type PromoteRequest struct {
	GameID string `json:"game_id"`
	Piece  string `json:"piece"` // q / r / b / n
}

// AiMoveRequest 让引擎替走子方走一步
type AiMoveRequest struct {
	GameID string `json:"game_id"`
	Depth  int    `json:"depth,omitempty"` // <=0 用服务器默认
}

type AiMoveResponse struct {
	BestMove string        `json:"best_move"` // 无着可走时为空
	Score    int           `json:"score"`
	Depth    int           `json:"depth"`
	Nodes    int64         `json:"nodes"`
	TimeMs   int64         `json:"time_ms"`
	State    StateResponse `json:"state"`
}

type PromotionDTO struct {
	Square string `json:"square"`
	Color  string `json:"color"`
}

// State 返回：前端刷新、走子后都用这个结构
type StateResponse struct {
	OK         bool          `json:"ok"`
	GameID     string        `json:"game_id"`
	FEN        string        `json:"fen"`
	ToMove     string        `json:"to_move"` // "w" / "b"
	Status     string        `json:"status"`
	Winner     string        `json:"winner,omitempty"`
	InCheck    bool          `json:"in_check"`
	LegalMoves []string      `json:"legal_moves"`
	Pending    *PromotionDTO `json:"pending_promotion,omitempty"`
	Halfmove   int           `json:"halfmove"`
	Fullmove   int           `json:"fullmove"`
}

// 只回 ok 的接口（/api/delete）
type OKResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func colorToString(c chess.Color) string {
	if c == chess.White {
		return "w"
	}
	return "b"
}

func movesToDTO(ms []chess.Move) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.UCI()
	}
	return out
}

// stateOf 必须在持有对局锁时调用
func stateOf(id string, b *chess.Board) StateResponse {
	out := b.Outcome()
	resp := StateResponse{
		OK:         true,
		GameID:     id,
		FEN:        b.FEN(),
		ToMove:     colorToString(b.ActiveColor()),
		Status:     statusName(out.Status),
		LegalMoves: []string{},
		Halfmove:   b.HalfmoveClock(),
		Fullmove:   b.FullmoveNumber(),
	}
	if out.Status == chess.Checkmate {
		resp.Winner = colorToString(out.Winner)
	}
	if pr, ok := b.PendingPromotion(); ok {
		resp.Pending = &PromotionDTO{Square: pr.At.String(), Color: colorToString(pr.Color)}
		return resp
	}
	resp.InCheck = b.IsKingInCheck(b.ActiveColor())
	if !out.IsOver() {
		resp.LegalMoves = movesToDTO(b.LegalMovesFor(b.ActiveColor()))
	}
	return resp
}

func statusName(s chess.Status) string {
	switch s {
	case chess.Ongoing:
		return "ongoing"
	case chess.Checkmate:
		return "checkmate"
	case chess.Stalemate:
		return "stalemate"
	case chess.DrawFiftyMove:
		return "draw_fifty_move"
	case chess.DrawInsufficientMaterial:
		return "draw_insufficient_material"
	case chess.DrawRepetition:
		return "draw_repetition"
	}
	return "unknown"
}
