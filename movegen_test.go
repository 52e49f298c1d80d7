package chess

import "testing"

func TestPerftStartingPosition(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		b := NewBoard()
		if got := b.Perft(c.depth); got != c.nodes {
			t.Errorf("perft(start, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftStartingPositionDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	cases := []struct {
		depth int
		nodes uint64
	}{
		{5, 4865609},
		{6, 119060324},
	}
	for _, c := range cases {
		b := NewBoard()
		if got := b.Perft(c.depth); got != c.nodes {
			t.Errorf("perft(start, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	b, err := NewBoardFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", false)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	if got := b.Perft(1); got != 48 {
		t.Fatalf("kiwipete perft(1) = %d, want 48", got)
	}
	if got := b.Perft(4); got != 4085603 {
		t.Fatalf("kiwipete perft(4) = %d, want 4085603", got)
	}
}

func TestPerftAdditionalPositions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	cases := []struct {
		fen   string
		depth int
		nodes uint64
	}{
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 6, 11030083},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 5, 15833292},
	}
	for _, c := range cases {
		b, err := NewBoardFromFEN(c.fen, false)
		if err != nil {
			t.Fatalf("NewBoardFromFEN(%q): %v", c.fen, err)
		}
		if got := b.Perft(c.depth); got != c.nodes {
			t.Errorf("perft(%q, %d) = %d, want %d", c.fen, c.depth, got, c.nodes)
		}
	}
}

func TestPushPopRestoresState(t *testing.T) {
	b := NewBoard()
	before := b.FEN()
	for _, m := range b.GenerateLegalMoves() {
		b.Push(m)
		b.Pop()
		if after := b.FEN(); after != before {
			t.Fatalf("push/pop of %s changed fen: %q != %q", m, after, before)
		}
	}
}

func TestUCIRoundTrip(t *testing.T) {
	b := NewBoard()
	for _, m := range b.GenerateLegalMoves() {
		s := b.UCI(m)
		got, err := moveFromUCI(s)
		if err != nil {
			t.Fatalf("moveFromUCI(%q): %v", s, err)
		}
		if !movesEqual(got, m) && !movesEqual(b.toChess960Move(got), b.toChess960Move(m)) {
			t.Errorf("uci round trip failed for %v: got %v from %q", m, got, s)
		}
	}
}

func TestMoveFromUCIDropEncoding(t *testing.T) {
	m, err := moveFromUCI("N@f3")
	if err != nil {
		t.Fatalf("moveFromUCI(N@f3): %v", err)
	}
	f3, _ := SquareFromName("f3")
	if m.From != f3 || m.To != f3 {
		t.Errorf("drop move should encode From == To == f3, got From=%v To=%v", m.From, m.To)
	}
	if m.Drop != Knight {
		t.Errorf("drop piece = %v, want Knight", m.Drop)
	}
	if m.IsNull() {
		t.Errorf("a drop move must not report itself as the null move")
	}
	if got := m.uci(); got != "N@f3" {
		t.Errorf("uci() round trip = %q, want N@f3", got)
	}
}

func TestEnPassantCapture(t *testing.T) {
	b, err := NewBoardFromFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", false)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	if err := b.PushSAN("exd6"); err != nil {
		t.Fatalf("PushSAN(exd6): %v", err)
	}
	if b.PieceAt(squareFromNameT(t, "d5")) != NoPiece {
		t.Errorf("d5 should be empty after en passant capture")
	}
	want := NewPiece(Pawn, White)
	if got := b.PieceAt(squareFromNameT(t, "d6")); got != want {
		t.Errorf("d6 should hold a white pawn after en passant, got %v", got)
	}
}

func TestCastlingRepresentationEquivalence(t *testing.T) {
	const fen = "rnbqk2r/pppp1ppp/5n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4"
	orthodox, err := NewBoardFromFEN(fen, false)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	chess960, err := NewBoardFromFEN(fen, true)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	if err := orthodox.PushUCI("e1g1"); err != nil {
		t.Fatalf("orthodox castling: %v", err)
	}
	if err := chess960.PushUCI("e1h1"); err != nil {
		t.Fatalf("chess960 castling: %v", err)
	}
	if orthodox.BoardFEN() != chess960.BoardFEN() {
		t.Errorf("castling should reach the same position: %q != %q", orthodox.BoardFEN(), chess960.BoardFEN())
	}
}

func squareFromNameT(t *testing.T, name string) Square {
	t.Helper()
	sq, err := SquareFromName(name)
	if err != nil {
		t.Fatalf("SquareFromName(%q): %v", name, err)
	}
	return sq
}
