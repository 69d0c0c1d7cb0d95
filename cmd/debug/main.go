package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"chessgo/internal/chess"
	"chessgo/internal/engine"
)

func main() {
	fen := flag.String("fen", chess.InitialFEN, "position to inspect")
	moves := flag.String("moves", "", "space separated UCI moves to play first")
	depth := flag.Int("perft", 0, "run perft to this depth (0 = skip)")
	divide := flag.Bool("divide", false, "split the perft count by root move")
	flag.Parse()

	b, err := chess.NewBoardFromFEN(*fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fen:", err)
		os.Exit(2)
	}
	for _, s := range strings.Fields(*moves) {
		ok, err := b.PlayUCI(s)
		if err != nil || !ok {
			fmt.Fprintf(os.Stderr, "move %s rejected (err=%v)\n", s, err)
			os.Exit(2)
		}
	}

	fmt.Print(b)
	fmt.Println("FEN:", b.FEN())
	fmt.Printf("Key: %016x  Outcome: %s  Repetition: %d\n", b.PositionKey(), b.Outcome(), b.RepetitionCount())
	if err := b.CheckInvariants(); err != nil {
		fmt.Println("Invariants:", err)
	}
	side := b.ActiveColor()
	fmt.Println("Pseudo legal moves:", len(b.PseudoLegalMovesFor(side)))
	legal := b.LegalMovesFor(side)
	fmt.Printf("Legal moves (%d):", len(legal))
	for _, m := range legal {
		fmt.Print(" ", m.UCI())
	}
	fmt.Println()
	fmt.Println("Material:", engine.Evaluate(b))

	if *depth <= 0 {
		return
	}
	start := time.Now()
	if *divide {
		counts := engine.Divide(b, *depth)
		keys := make([]string, 0, len(counts))
		var total uint64
		for k, n := range counts {
			keys = append(keys, k)
			total += n
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, counts[k])
		}
		fmt.Printf("perft(%d) = %d  (%v)\n", *depth, total, time.Since(start))
		return
	}
	fmt.Printf("perft(%d) = %d  (%v)\n", *depth, engine.Perft(b, *depth), time.Since(start))
}
