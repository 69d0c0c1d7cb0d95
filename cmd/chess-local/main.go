package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"chessgo/internal/config"
	"chessgo/internal/logx"
	httpserver "chessgo/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 没有图形界面时会失败，忽略
}

func main() {
	var (
		addr      = flag.String("addr", ":2888", "listen address")
		webDir    = flag.String("web", "./web", "directory with index.html / js / svg")
		mobileDir = flag.String("web-mobile", "", "mobile assets directory (default: same as -web)")
		depth     = flag.Int("depth", httpserver.DefaultDepth, "default search depth for /api/ai_move")
		logLevel  = flag.String("log-level", "info", "zerolog level")
		open      = flag.Bool("open", true, "open the default browser after start")
	)
	flag.Parse()

	logger := logx.NewLogger()

	err := config.ApplyEnv(flag.CommandLine, map[string]string{
		"addr":      config.EnvAddr,
		"web":       config.EnvWebDir,
		"depth":     config.EnvDepth,
		"log-level": config.EnvLogLevel,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("bad environment")
	}

	lvl, err := logx.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad log level")
	}
	logger = logger.Level(lvl)

	opts := httpserver.ServerOptions{
		Options: httpserver.Options{Log: logger, Depth: *depth},
	}
	// 找不到静态目录时只提供 /api/*
	if dir, err := config.ResolvePath(*webDir, true); err != nil {
		logger.Warn().Err(err).Msg("web assets not found, serving API only")
	} else {
		opts.WebDir = dir
		if *mobileDir != "" {
			if mdir, err := config.ResolvePath(*mobileDir, true); err == nil {
				opts.MobileDir = mdir
			} else {
				logger.Warn().Err(err).Msg("mobile assets not found, using desktop assets")
			}
		}
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      httpserver.NewServer(opts),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("web", opts.WebDir).Int("depth", *depth).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	if *open && opts.WebDir != "" {
		// 稍等一下再打开浏览器，服务器可能还没起来
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser(localURL(*addr))
		}()
	}

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}
}

// ":2888" -> "http://127.0.0.1:2888"
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://127.0.0.1" + addr
	}
	return "http://" + addr
}
