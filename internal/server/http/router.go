package httpserver

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"

	"chessgo/internal/server/game"
)

// ServerOptions 组装整个 HTTP 服务
type ServerOptions struct {
	Options

	WebDir    string // 为空时不挂静态页面
	MobileDir string // 为空时与 WebDir 相同
}

// Server 是 /api/* 加静态页面，外面套 request id、访问日志和 gzip
type Server struct {
	api *Handler
	h   http.Handler
}

func NewServer(opts ServerOptions) *Server {
	api := NewHandler(opts.Options)

	mux := http.NewServeMux()
	mux.Handle("/api/", api)
	if opts.WebDir != "" {
		RegisterStaticRoutes(mux, opts.WebDir, opts.MobileDir)
	}

	return &Server{
		api: api,
		h:   RequestID(AccessLog(opts.Log, gzhttp.GzipHandler(mux))),
	}
}

// Games 返回底层的对局表
func (s *Server) Games() *game.Manager {
	return s.api.games
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.h.ServeHTTP(w, r)
}
