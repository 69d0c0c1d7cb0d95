package mobile

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"chessgo/internal/logx"
	httpserver "chessgo/internal/server/http"
)

var (
	mu  sync.Mutex
	srv *http.Server
)

// StartServer starts the local HTTP server in the background and returns at
// once so it never blocks the Android UI thread.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
// depth: default engine depth, <=0 for the server default
func StartServer(webDir string, port string, depth int) {
	mu.Lock()
	defer mu.Unlock()
	if srv != nil {
		return
	}

	logger := logx.NewLogger()
	s := &http.Server{
		Addr: "127.0.0.1:" + port,
		Handler: httpserver.NewServer(httpserver.ServerOptions{
			Options: httpserver.Options{Log: logger, Depth: depth},
			WebDir:  webDir,
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	srv = s

	go func() {
		logger.Info().Str("addr", s.Addr).Str("web", webDir).Msg("mobile server listening")
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("mobile server")
		}
	}()
}

// StopServer 关闭 StartServer 起的服务，没有在跑时什么都不做
func StopServer() {
	mu.Lock()
	s := srv
	srv = nil
	mu.Unlock()
	if s == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = s.Shutdown(ctx)
}
