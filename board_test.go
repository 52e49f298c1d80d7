package chess

import "testing"

func TestCopyFullStackPreservesRepetitionHistory(t *testing.T) {
	b := NewBoard()
	for _, san := range []string{"Nf3", "Nf6", "Ng1", "Ng8"} {
		if err := b.PushSAN(san); err != nil {
			t.Fatalf("PushSAN(%q): %v", san, err)
		}
	}
	full := b.Copy(-1)
	if full.Ply() != b.Ply() {
		t.Errorf("full copy Ply() = %d, want %d", full.Ply(), b.Ply())
	}
	if !full.IsRepetition(2) {
		t.Errorf("full-stack copy should retain repetition history")
	}
	if full.FEN() != b.FEN() {
		t.Errorf("full copy FEN mismatch: %q != %q", full.FEN(), b.FEN())
	}
}

func TestCopyZeroStackDropsHistory(t *testing.T) {
	b := NewBoard()
	for _, san := range []string{"Nf3", "Nf6", "Ng1", "Ng8"} {
		if err := b.PushSAN(san); err != nil {
			t.Fatalf("PushSAN(%q): %v", san, err)
		}
	}
	shallow := b.Copy(0)
	if shallow.Ply() != 0 {
		t.Errorf("zero-stack copy Ply() = %d, want 0", shallow.Ply())
	}
	if shallow.IsRepetition(2) {
		t.Errorf("zero-stack copy must not report repetitions it has no history for")
	}
	if shallow.FEN() != b.FEN() {
		t.Errorf("zero-stack copy should still match the current position: %q != %q", shallow.FEN(), b.FEN())
	}
}

func TestCopyPartialStack(t *testing.T) {
	b := NewBoard()
	for _, san := range []string{"e4", "e5", "Nf3", "Nc6"} {
		if err := b.PushSAN(san); err != nil {
			t.Fatalf("PushSAN(%q): %v", san, err)
		}
	}
	partial := b.Copy(2)
	if partial.Ply() != 2 {
		t.Errorf("partial copy Ply() = %d, want 2", partial.Ply())
	}
	partial.Pop()
	partial.Pop()
	if partial.Ply() != 0 {
		t.Errorf("expected two pops to exhaust the retained history, Ply() = %d", partial.Ply())
	}
}

func TestEqualIgnoresHistoryButNotPosition(t *testing.T) {
	a := NewBoard()
	b := NewBoard()
	if !a.Equal(b) {
		t.Errorf("two fresh boards should be equal")
	}
	if err := a.PushSAN("e4"); err != nil {
		t.Fatalf("PushSAN: %v", err)
	}
	if a.Equal(b) {
		t.Errorf("boards should differ after one side makes a move")
	}
	if err := b.PushSAN("e4"); err != nil {
		t.Fatalf("PushSAN: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("boards should match again after mirroring the move")
	}
}

func TestEqualIgnoresDeadEnPassantSquare(t *testing.T) {
	// e3 is annotated as an en passant square but no black pawn stands on d4
	// or f4 to actually make the capture, so it shouldn't affect equality.
	a, err := NewBoardFromFEN("4k3/8/8/8/4P3/8/8/4K3 b - e3 0 1", false)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	bd, err := NewBoardFromFEN("4k3/8/8/8/4P3/8/8/4K3 b - - 0 1", false)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	if !a.Equal(bd) {
		t.Errorf("a dead ep annotation should compare equal to no ep annotation")
	}
}

func TestPeekAndPopRoundTrip(t *testing.T) {
	b := NewBoard()
	m, err := b.ParseSAN("e4")
	if err != nil {
		t.Fatalf("ParseSAN: %v", err)
	}
	b.Push(m)
	if got := b.Peek(); got != m {
		t.Errorf("Peek() = %v, want %v", got, m)
	}
	popped := b.Pop()
	if popped != m {
		t.Errorf("Pop() = %v, want %v", popped, m)
	}
	if b.Peek() != NullMove {
		t.Errorf("Peek() on an empty stack should return the null move")
	}
	if b.FEN() != StartFEN {
		t.Errorf("popping the only move should restore the starting position, got %q", b.FEN())
	}
}

func TestIsIrreversibleQuietMove(t *testing.T) {
	b := NewBoard()
	m, err := b.ParseSAN("Nf3")
	if err != nil {
		t.Fatalf("ParseSAN(Nf3): %v", err)
	}
	if b.isIrreversible(m) {
		t.Errorf("a quiet knight move from the start position should be reversible")
	}
}

func TestIsIrreversibleCastlingRightsLoss(t *testing.T) {
	b, err := NewBoardFromFEN("r3k3/8/8/8/8/8/8/R3K3 w Q - 0 1", false)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	m, err := b.ParseSAN("Rb1")
	if err != nil {
		t.Fatalf("ParseSAN(Rb1): %v", err)
	}
	if !b.isIrreversible(m) {
		t.Errorf("moving the rook off its castling-rights square should be irreversible")
	}
}

func TestIsIrreversibleForfeitsEnPassant(t *testing.T) {
	b := NewBoard()
	for _, san := range []string{"e4", "h6", "e5", "d5"} {
		if err := b.PushSAN(san); err != nil {
			t.Fatalf("PushSAN(%q): %v", san, err)
		}
	}
	if !b.HasLegalEnPassant() {
		t.Fatalf("expected exd6 en passant to be legal here")
	}
	quiet, err := b.ParseSAN("Nf3")
	if err != nil {
		t.Fatalf("ParseSAN(Nf3): %v", err)
	}
	if !b.isIrreversible(quiet) {
		t.Errorf("playing anything other than the en passant capture should forfeit it irreversibly")
	}
}

func TestIsRepetitionAcrossQuietShuffle(t *testing.T) {
	b := NewBoard()
	// Knights shuffle out and back with no capture, pawn move, castling-right
	// loss, or en passant forfeiture in between: IsRepetition must walk back
	// across this quiet stretch and find the match.
	for _, san := range []string{"Nf3", "Nf6", "Ng1", "Ng8"} {
		if err := b.PushSAN(san); err != nil {
			t.Fatalf("PushSAN(%q): %v", san, err)
		}
	}
	if !b.IsRepetition(2) {
		t.Errorf("expected the starting position to have recurred after the quiet knight shuffle")
	}
	if b.Ply() != 4 {
		t.Fatalf("sanity: expected 4 plies pushed, got %d", b.Ply())
	}
}

func TestBoardMirror(t *testing.T) {
	b, err := NewBoardFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1", false)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	m := b.Mirror()
	const want = "rnbqkbnr/pppp1ppp/8/4p3/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	if got := m.FEN(); got != want {
		t.Errorf("Mirror().FEN() = %q, want %q", got, want)
	}
	// Mirroring twice restores the original position.
	if got := m.Mirror().FEN(); got != b.FEN() {
		t.Errorf("Mirror() should be its own inverse: got %q, want %q", got, b.FEN())
	}
}

func TestBoardScharnaglIndex(t *testing.T) {
	b := NewBoard()
	n, ok := b.ScharnaglIndex()
	if !ok || n != 518 {
		t.Errorf("ScharnaglIndex() of the standard setup = (%d, %v), want (518, true)", n, ok)
	}
	shuffled, err := NewBoardFromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1", true)
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	if err := shuffled.PushSAN("Nf3"); err != nil {
		t.Fatalf("PushSAN(Nf3): %v", err)
	}
	if _, ok := shuffled.ScharnaglIndex(); ok {
		t.Errorf("a position with a developed knight shouldn't match any Scharnagl index")
	}
}

func TestBoardSetPieceMapRoundTrip(t *testing.T) {
	b := NewBoard()
	original := b.PieceMap()
	if len(original) != 32 {
		t.Fatalf("expected 32 pieces on the starting position, got %d", len(original))
	}

	edited := NewBoard()
	m := edited.PieceMap()
	e4, _ := SquareFromName("e4")
	e2, _ := SquareFromName("e2")
	m[e4] = m[e2]
	delete(m, e2)
	edited.SetPieceMap(m)

	if got := edited.PieceAt(e4); got != NewPiece(Pawn, White) {
		t.Errorf("expected a white pawn on e4 after SetPieceMap, got %v", got)
	}
	if got := edited.PieceAt(e2); got != NoPiece {
		t.Errorf("expected e2 to be empty after SetPieceMap, got %v", got)
	}
	if edited.Ply() != 0 {
		t.Errorf("SetPieceMap should clear any move history, got Ply() = %d", edited.Ply())
	}
}

func TestPliesTrackedThroughPushPop(t *testing.T) {
	b := NewBoard()
	if b.Ply() != 0 {
		t.Fatalf("fresh board Ply() = %d, want 0", b.Ply())
	}
	for i, san := range []string{"e4", "e5", "Nf3"} {
		if err := b.PushSAN(san); err != nil {
			t.Fatalf("PushSAN(%q): %v", san, err)
		}
		if b.Ply() != i+1 {
			t.Errorf("after %d moves Ply() = %d, want %d", i+1, b.Ply(), i+1)
		}
	}
	b.Pop()
	if b.Ply() != 2 {
		t.Errorf("after one pop Ply() = %d, want 2", b.Ply())
	}
}
