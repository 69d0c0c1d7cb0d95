package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"chessgo/internal/chess"
)

func newTestServer() *Server {
	return NewServer(ServerOptions{Options: Options{Log: zerolog.Nop(), Depth: 2}})
}

func post(t *testing.T, s http.Handler, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	switch v := body.(type) {
	case string:
		buf.WriteString(v)
	default:
		if err := json.NewEncoder(&buf).Encode(v); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s: decode %q: %v", path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func newGame(t *testing.T, s http.Handler, fen string) StateResponse {
	t.Helper()
	var st StateResponse
	if code := post(t, s, "/api/new_game", NewGameRequest{FEN: fen}, &st); code != http.StatusOK {
		t.Fatalf("new_game code=%d", code)
	}
	return st
}

func TestNewGameState(t *testing.T) {
	s := newTestServer()
	st := newGame(t, s, "")
	if !st.OK || st.GameID == "" {
		t.Fatalf("bad response %+v", st)
	}
	if st.FEN != chess.InitialFEN || st.ToMove != "w" || st.Status != "ongoing" {
		t.Fatalf("got fen=%q to_move=%s status=%s", st.FEN, st.ToMove, st.Status)
	}
	if len(st.LegalMoves) != 20 {
		t.Fatalf("legal moves got=%d want=20", len(st.LegalMoves))
	}

	var again StateResponse
	if code := post(t, s, "/api/state", GameRequest{GameID: st.GameID}, &again); code != http.StatusOK {
		t.Fatalf("state code=%d", code)
	}
	if diff := cmp.Diff(st, again); diff != "" {
		t.Fatalf("state mismatch (-new +state):\n%s", diff)
	}
	if s.Games().Len() != 1 {
		t.Fatalf("games got=%d want=1", s.Games().Len())
	}
}

func TestRequestErrors(t *testing.T) {
	s := newTestServer()
	id := newGame(t, s, "").GameID

	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{"bad fen", "/api/new_game", NewGameRequest{FEN: "nonsense w"}, http.StatusBadRequest},
		{"bad json", "/api/play", `{"game_id":`, http.StatusBadRequest},
		{"unknown field", "/api/state", `{"game_id":"x","extra":1}`, http.StatusBadRequest},
		{"unknown game", "/api/state", GameRequest{GameID: "nope"}, http.StatusNotFound},
		{"bad uci", "/api/play", PlayRequest{GameID: id, Move: "zz"}, http.StatusBadRequest},
		{"bad square", "/api/legal_moves", LegalMovesRequest{GameID: id, Square: "k9"}, http.StatusBadRequest},
		{"illegal move", "/api/play", PlayRequest{GameID: id, Move: "e2e5"}, http.StatusConflict},
		{"bad promotion piece", "/api/promote", PromoteRequest{GameID: id, Piece: "k"}, http.StatusBadRequest},
		{"nothing to promote", "/api/promote", PromoteRequest{GameID: id, Piece: "q"}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ErrorResponse
			if code := post(t, s, tt.path, tt.body, &resp); code != tt.want {
				t.Fatalf("code got=%d want=%d", code, tt.want)
			}
			if resp.OK {
				t.Fatalf("ok=true on failure")
			}
		})
	}
}

func TestMethodAndPath(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET code got=%d want=405", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/nope", strings.NewReader("{}")))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown path code got=%d want=404", rec.Code)
	}
}

func TestPlayAndLegalMoves(t *testing.T) {
	s := newTestServer()
	id := newGame(t, s, "").GameID

	var lm LegalMovesResponse
	post(t, s, "/api/legal_moves", LegalMovesRequest{GameID: id, Square: "e2"}, &lm)
	if diff := cmp.Diff([]string{"e2e3", "e2e4"}, lm.Moves); diff != "" {
		t.Fatalf("e2 moves (-want +got):\n%s", diff)
	}
	post(t, s, "/api/legal_moves", LegalMovesRequest{GameID: id, Square: "e7"}, &lm)
	if len(lm.Moves) != 0 {
		t.Fatalf("moves for the side not to move: %v", lm.Moves)
	}

	var st StateResponse
	if code := post(t, s, "/api/play", PlayRequest{GameID: id, Move: "e2e4"}, &st); code != http.StatusOK {
		t.Fatalf("play code=%d", code)
	}
	if want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"; st.FEN != want {
		t.Fatalf("FEN got=%q want=%q", st.FEN, want)
	}
	if st.ToMove != "b" {
		t.Fatalf("to_move got=%s", st.ToMove)
	}
}

func TestPromotionFlow(t *testing.T) {
	s := newTestServer()
	id := newGame(t, s, "8/4P3/8/8/8/8/k7/4K3 w - - 0 1").GameID

	var st StateResponse
	if code := post(t, s, "/api/play", PlayRequest{GameID: id, Move: "e7e8"}, &st); code != http.StatusOK {
		t.Fatalf("play code=%d", code)
	}
	if diff := cmp.Diff(&PromotionDTO{Square: "e8", Color: "w"}, st.Pending); diff != "" {
		t.Fatalf("pending (-want +got):\n%s", diff)
	}
	if len(st.LegalMoves) != 0 {
		t.Fatalf("legal moves while pending: %v", st.LegalMoves)
	}

	// 升变未完成前其他着法都不行
	if code := post(t, s, "/api/play", PlayRequest{GameID: id, Move: "e1d1"}, nil); code != http.StatusConflict {
		t.Fatalf("play while pending code got=%d want=409", code)
	}
	var ai ErrorResponse
	if code := post(t, s, "/api/ai_move", AiMoveRequest{GameID: id}, &ai); code != http.StatusConflict {
		t.Fatalf("ai_move while pending code got=%d want=409", code)
	}

	// 缺省字段不会被 Unmarshal 清掉，用新的结构体接
	var promoted StateResponse
	if code := post(t, s, "/api/promote", PromoteRequest{GameID: id, Piece: "n"}, &promoted); code != http.StatusOK {
		t.Fatalf("promote code=%d", code)
	}
	if want := "4N3/8/8/8/8/8/k7/4K3 b - - 0 1"; promoted.FEN != want {
		t.Fatalf("FEN got=%q want=%q", promoted.FEN, want)
	}
	if promoted.Pending != nil {
		t.Fatalf("still pending: %+v", promoted.Pending)
	}
	// 王+马对王
	if promoted.Status != "draw_insufficient_material" || len(promoted.LegalMoves) != 0 {
		t.Fatalf("status=%s legal=%v", promoted.Status, promoted.LegalMoves)
	}
}

func TestAiMove(t *testing.T) {
	s := newTestServer()
	id := newGame(t, s, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1").GameID

	var resp AiMoveResponse
	if code := post(t, s, "/api/ai_move", AiMoveRequest{GameID: id}, &resp); code != http.StatusOK {
		t.Fatalf("ai_move code=%d", code)
	}
	if resp.BestMove != "a1a8" {
		t.Fatalf("best move got=%s want=a1a8", resp.BestMove)
	}
	if resp.Depth != 2 || resp.Nodes == 0 {
		t.Fatalf("depth=%d nodes=%d", resp.Depth, resp.Nodes)
	}
	if resp.State.Status != "checkmate" || resp.State.Winner != "w" {
		t.Fatalf("status=%s winner=%s", resp.State.Status, resp.State.Winner)
	}

	if code := post(t, s, "/api/ai_move", AiMoveRequest{GameID: id}, nil); code != http.StatusConflict {
		t.Fatalf("ai_move after mate code got=%d want=409", code)
	}
}

func TestRestart(t *testing.T) {
	s := newTestServer()
	id := newGame(t, s, "").GameID
	post(t, s, "/api/play", PlayRequest{GameID: id, Move: "g1f3"}, nil)

	var st StateResponse
	if code := post(t, s, "/api/restart", RestartRequest{GameID: id}, &st); code != http.StatusOK {
		t.Fatalf("restart code=%d", code)
	}
	if st.GameID != id || st.FEN != chess.InitialFEN {
		t.Fatalf("restart got id=%s fen=%q", st.GameID, st.FEN)
	}
	if code := post(t, s, "/api/restart", RestartRequest{GameID: id, FEN: "bad"}, nil); code != http.StatusBadRequest {
		t.Fatalf("restart bad fen code got=%d want=400", code)
	}
}

func TestDeleteGame(t *testing.T) {
	s := newTestServer()
	id := newGame(t, s, "").GameID

	var resp OKResponse
	if code := post(t, s, "/api/delete", GameRequest{GameID: id}, &resp); code != http.StatusOK || !resp.OK {
		t.Fatalf("delete code=%d ok=%v", code, resp.OK)
	}
	if s.Games().Len() != 0 {
		t.Fatalf("games got=%d want=0", s.Games().Len())
	}
	if code := post(t, s, "/api/state", GameRequest{GameID: id}, nil); code != http.StatusNotFound {
		t.Fatalf("state after delete code got=%d want=404", code)
	}
	if code := post(t, s, "/api/delete", GameRequest{GameID: id}, nil); code != http.StatusNotFound {
		t.Fatalf("second delete code got=%d want=404", code)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/new_game", strings.NewReader("{}"))
	req.Header.Set("X-Request-ID", "abc12345")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc12345" {
		t.Fatalf("X-Request-ID got=%q", got)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/new_game", strings.NewReader("{}")))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("no request id generated")
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	s := NewServer(ServerOptions{Options: Options{Log: zerolog.New(&buf)}})
	post(t, s, "/api/state", GameRequest{GameID: "missing"}, nil)

	var line struct {
		Path   string `json:"path"`
		Status int    `json:"status"`
		RID    string `json:"rid"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log %q: %v", buf.String(), err)
	}
	if line.Path != "/api/state" || line.Status != http.StatusNotFound || line.RID == "" {
		t.Fatalf("log line got=%+v", line)
	}
}

func TestStaticRedirect(t *testing.T) {
	s := NewServer(ServerOptions{Options: Options{Log: zerolog.Nop()}, WebDir: t.TempDir()})

	tests := []struct {
		name       string
		target     string
		ua         string
		cookie     string
		want       string
		wantCookie string
	}{
		{"desktop", "/", "Mozilla/5.0 (X11; Linux x86_64)", "", "/web/", ""},
		{"mobile ua", "/", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)", "", "/web_mobile/", ""},
		{"override", "/?view=pc", "Mozilla/5.0 (iPhone)", "", "/web/", "desktop"},
		{"cookie", "/", "Mozilla/5.0 (X11; Linux x86_64)", "phone", "/web_mobile/", ""},
		{"override beats cookie", "/?view=m", "", "desktop", "/web_mobile/", "mobile"},
		{"bad cookie falls back to ua", "/", "Android", "tv", "/web_mobile/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Header.Set("User-Agent", tt.ua)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: viewCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)
			if rec.Code != http.StatusFound || rec.Header().Get("Location") != tt.want {
				t.Fatalf("got code=%d location=%q want %q", rec.Code, rec.Header().Get("Location"), tt.want)
			}

			got := ""
			for _, c := range rec.Result().Cookies() {
				if c.Name == viewCookie {
					got = c.Value
				}
			}
			if got != tt.wantCookie {
				t.Fatalf("cookie got=%q want=%q", got, tt.wantCookie)
			}
		})
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown path code got=%d want=404", rec.Code)
	}
}
