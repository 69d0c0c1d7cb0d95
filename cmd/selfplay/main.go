package main

import (
	"flag"
	"fmt"
	"os"

	"chessgo/internal/chess"
	"chessgo/internal/config"
	"chessgo/internal/logx"
)

func main() {
	var (
		fen      = flag.String("fen", chess.InitialFEN, "start position")
		games    = flag.Int("games", 2, "number of games to play")
		depthA   = flag.Int("depth", 3, "search depth of the first player")
		depthB   = flag.Int("opp-depth", 2, "search depth of the second player")
		maxPlies = flag.Int("maxplies", 300, "abort a game after this many plies")
		uciPath  = flag.String("uci", "", "external UCI engine as the second player")
		uciDepth = flag.Int("uci-depth", 4, "search depth passed to the UCI engine")
		logLevel = flag.String("log-level", "info", "zerolog level (debug logs every search)")
	)
	flag.Parse()

	logger := logx.NewLogger()
	err := config.ApplyEnv(flag.CommandLine, map[string]string{
		"uci":       config.EnvUCIEngine,
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

	a := newEnginePlayer(*depthA, logger.With().Str("player", "a").Logger())
	var b player = newEnginePlayer(*depthB, logger.With().Str("player", "b").Logger())
	if *uciPath != "" {
		path, err := config.ResolvePath(*uciPath, false)
		if err != nil {
			logger.Fatal().Err(err).Msg("uci engine")
		}
		up, err := newUCIPlayer(path, *uciDepth)
		if err != nil {
			logger.Fatal().Err(err).Msg("uci engine")
		}
		b = up
	}
	defer b.Close()

	t, err := runMatch(logger, *fen, a, b, *games, *maxPlies)
	if err != nil {
		logger.Error().Err(err).Msg("match aborted")
		b.Close()
		os.Exit(1)
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", a.Name(), t.winsA)
	fmt.Printf("%s: %d\n", b.Name(), t.winsB)
	fmt.Printf("Draws: %d  Aborted: %d\n", t.draws, t.aborted)
	logger.Info().Int64("nodes", a.nodes).Msg("selfplay finished")
}
