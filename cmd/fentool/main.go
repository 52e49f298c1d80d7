// Command fentool normalizes and validates a FEN or EPD record: parse it,
// report any Status violations, and print the canonical re-serialization.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	chess "chesscore"
)

var statusNames = []struct {
	flag chess.Status
	name string
}{
	{chess.StatusNoWhiteKing, "no-white-king"},
	{chess.StatusNoBlackKing, "no-black-king"},
	{chess.StatusTooManyKings, "too-many-kings"},
	{chess.StatusTooManyWhitePawns, "too-many-white-pawns"},
	{chess.StatusTooManyBlackPawns, "too-many-black-pawns"},
	{chess.StatusPawnsOnBackrank, "pawns-on-backrank"},
	{chess.StatusTooManyWhitePieces, "too-many-white-pieces"},
	{chess.StatusTooManyBlackPieces, "too-many-black-pieces"},
	{chess.StatusBadCastlingRights, "bad-castling-rights"},
	{chess.StatusInvalidEPSquare, "invalid-ep-square"},
	{chess.StatusOppositeCheck, "opposite-check"},
	{chess.StatusEmpty, "empty-board"},
	{chess.StatusTooManyCheckers, "too-many-checkers"},
	{chess.StatusImpossibleCheck, "impossible-check"},
}

func describeStatus(s chess.Status) []string {
	var names []string
	for _, sn := range statusNames {
		if s&sn.flag != 0 {
			names = append(names, sn.name)
		}
	}
	sort.Strings(names)
	return names
}

func process(record string, chess960 bool, epd bool) int {
	board := chess.NewBoard()
	board.SetChess960(chess960)

	var ops map[string]interface{}
	var err error
	if epd {
		ops, err = board.SetEPD(record)
	} else {
		err = board.SetFEN(record)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		return 1
	}

	if names := describeStatus(board.Status()); len(names) > 0 {
		fmt.Printf("INVALID: %s\n", strings.Join(names, ", "))
	} else {
		fmt.Println("VALID")
	}
	fmt.Printf("fen:  %s\n", board.FEN())
	if epd {
		keys := make([]string, 0, len(ops))
		for k := range ops {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s = %v\n", k, ops[k])
		}
	}
	return 0
}

func main() {
	fenFlag := flag.String("fen", "", "FEN or EPD record to process (default: read lines from stdin)")
	chess960 := flag.Bool("chess960", false, "Interpret castling rights under Chess960/Shredder-FEN rules")
	epdFlag := flag.Bool("epd", false, "Parse the record as EPD (four fields plus opcodes) rather than plain FEN")
	flag.Parse()

	if *fenFlag != "" {
		os.Exit(process(*fenFlag, *chess960, *epdFlag))
	}

	scanner := bufio.NewScanner(os.Stdin)
	status := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if process(line, *chess960, *epdFlag) != 0 {
			status = 1
		}
	}
	os.Exit(status)
}
