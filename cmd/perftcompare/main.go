// Command perftcompare cross-checks this module's legal move generator
// against github.com/dylhunn/dragontoothmg on the same FEN, printing a
// per-root-move divide from each generator when the totals disagree so a
// mismatch can be bisected by move rather than by staring at a node count.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	chess "chesscore"
	dtg "github.com/dylhunn/dragontoothmg"
)

// defaultPositions mirrors the perft suite this module's own tests check
// against, reused here so a plain `perftcompare` run with no flags still
// exercises the generator against an independent implementation.
var defaultPositions = []struct {
	fen   string
	depth int
}{
	{chess.StartFEN, 5},
	{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4},
	{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 6},
	{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 5},
}

func dtgPerft(b *dtg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += dtgPerft(b, depth-1)
		undo()
	}
	return nodes
}

func dtgDivide(b *dtg.Board, depth int) map[string]uint64 {
	div := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		key := m.String()
		undo := b.Apply(m)
		div[key] = dtgPerft(b, depth-1)
		undo()
	}
	return div
}

func printDivide(label string, div map[string]uint64) {
	keys := make([]string, 0, len(div))
	for k := range div {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Printf("  %s:\n", label)
	for _, k := range keys {
		fmt.Printf("    %s: %d\n", k, div[k])
	}
}

func compareOne(fen string, depth int) bool {
	ours, err := chess.NewBoardFromFEN(fen, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "our ParseFEN error for %q: %v\n", fen, err)
		return false
	}
	theirs := dtg.ParseFen(fen)

	ourNodes := ours.Perft(depth)
	theirNodes := dtgPerft(&theirs, depth)

	if ourNodes == theirNodes {
		fmt.Printf("OK    depth=%d nodes=%d  %s\n", depth, ourNodes, fen)
		return true
	}

	fmt.Printf("FAIL  depth=%d ours=%d dragontoothmg=%d  %s\n", depth, ourNodes, theirNodes, fen)
	if depth > 1 {
		printDivide("ours", ours.PerftDivide(depth))
		printDivide("dragontoothmg", dtgDivide(&theirs, depth))
	}
	return false
}

func main() {
	fenFlag := flag.String("fen", "", "Single FEN to compare (default: run the built-in suite)")
	depth := flag.Int("depth", 4, "Perft depth when -fen is given")
	flag.Parse()

	ok := true
	if *fenFlag != "" {
		ok = compareOne(*fenFlag, *depth)
	} else {
		for _, p := range defaultPositions {
			if !compareOne(p.fen, p.depth) {
				ok = false
			}
		}
	}
	if !ok {
		os.Exit(1)
	}
}
