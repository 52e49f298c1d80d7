package chess

import "testing"

func TestSANOpeningMoves(t *testing.T) {
	b := NewBoard()
	cases := []struct {
		san string
		uci string
	}{
		{"e4", "e2e4"},
		{"e5", "e7e5"},
		{"Nf3", "g1f3"},
	}
	for _, c := range cases {
		m, err := b.ParseSAN(c.san)
		if err != nil {
			t.Fatalf("ParseSAN(%q): %v", c.san, err)
		}
		if got := b.UCI(m); got != c.uci {
			t.Errorf("ParseSAN(%q).UCI() = %q, want %q", c.san, got, c.uci)
		}
		b.Push(m)
	}
}

func TestSANDisambiguation(t *testing.T) {
	b := NewBoard()
	for _, san := range []string{"Nf3", "Nf6", "Nc3", "Nc6", "d3", "e6"} {
		if err := b.PushSAN(san); err != nil {
			t.Fatalf("PushSAN(%q): %v", san, err)
		}
	}
	// White has knights on c3 and f3 and d2 is empty after d3; only the f3
	// knight can reach d2, so "Nd2" needs no disambiguation.
	m, err := b.ParseSAN("Nd2")
	if err != nil {
		t.Fatalf("ParseSAN(Nd2): %v", err)
	}
	if got := b.UCI(m); got != "f3d2" {
		t.Errorf("Nd2 = %q, want f3d2", got)
	}
}

func TestSANAmbiguousMoveRejected(t *testing.T) {
	// Rooks on a1 and a7, both able to reach a4 along the open a-file.
	rb, err := NewBoardFromFEN("4k3/R7/8/8/8/8/8/R3K3 w - - 0 1", false)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	if _, err := rb.ParseSAN("Ra4"); err == nil {
		t.Fatalf("Ra4 should be ambiguous between the a1 and a7 rooks")
	}
	m, err := rb.ParseSAN("R1a4")
	if err != nil {
		t.Fatalf("ParseSAN(R1a4): %v", err)
	}
	if got := rb.UCI(m); got != "a1a4" {
		t.Errorf("R1a4 = %q, want a1a4", got)
	}
}

func TestSANCheckAndMateSuffix(t *testing.T) {
	b, err := NewBoardFromFEN("4k3/8/8/8/8/8/4p3/4K3 b - - 0 1", false)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	m, err := b.ParseSAN("e1=Q+")
	if err != nil {
		t.Fatalf("ParseSAN(e1=Q+): %v", err)
	}
	if got := b.SAN(m); got != "e1=Q+" {
		t.Errorf("SAN() = %q, want e1=Q+", got)
	}
	if !b.GivesCheck(m) {
		t.Errorf("e1=Q should give check")
	}
}

func TestSANCastling(t *testing.T) {
	b, err := NewBoardFromFEN("rnbqk2r/pppp1ppp/5n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4", false)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	m, err := b.ParseSAN("O-O")
	if err != nil {
		t.Fatalf("ParseSAN(O-O): %v", err)
	}
	if got := b.UCI(m); got != "e1g1" {
		t.Errorf("O-O = %q, want e1g1", got)
	}
	if got := b.sanWithoutSuffix(m); got != "O-O" {
		t.Errorf("SAN of castling = %q, want O-O", got)
	}
}

func TestXBoardFormatting(t *testing.T) {
	b := NewBoard()
	m, err := b.ParseSAN("e4")
	if err != nil {
		t.Fatalf("ParseSAN(e4): %v", err)
	}
	if got := b.XBoard(m); got != "e2e4" {
		t.Errorf("XBoard(e4) = %q, want e2e4", got)
	}
	if got := b.XBoard(NullMove); got != "@@@@" {
		t.Errorf("XBoard(null) = %q, want @@@@", got)
	}
	parsed, err := b.ParseXBoard("e2e4")
	if err != nil {
		t.Fatalf("ParseXBoard(e2e4): %v", err)
	}
	if !movesEqual(parsed, m) {
		t.Errorf("ParseXBoard(e2e4) = %v, want %v", parsed, m)
	}
}

func TestXBoardChess960CastlingNotation(t *testing.T) {
	b, err := NewBoardFromFEN("rnbqk2r/pppp1ppp/5n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4", true)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	m, err := b.ParseSAN("O-O")
	if err != nil {
		t.Fatalf("ParseSAN(O-O): %v", err)
	}
	if got := b.XBoard(m); got != "O-O" {
		t.Errorf("XBoard(castling) = %q, want O-O", got)
	}
}

func TestSANNullMove(t *testing.T) {
	b := NewBoard()
	for _, alias := range []string{"--", "0000", "Z0", "@@@@"} {
		m, err := b.ParseSAN(alias)
		if err != nil {
			t.Fatalf("ParseSAN(%q): %v", alias, err)
		}
		if !m.IsNull() {
			t.Errorf("ParseSAN(%q) should be the null move", alias)
		}
	}
}
