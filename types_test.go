package chess

import "testing"

func TestSquareRoundTrip(t *testing.T) {
	for _, name := range []string{"a1", "e4", "h8", "d5"} {
		sq, err := SquareFromName(name)
		if err != nil {
			t.Fatalf("SquareFromName(%q): %v", name, err)
		}
		if got := sq.String(); got != name {
			t.Errorf("square %q round-tripped to %q", name, got)
		}
	}
}

func TestSquareFromNameInvalid(t *testing.T) {
	for _, name := range []string{"", "i1", "a9", "aa"} {
		if _, err := SquareFromName(name); err == nil {
			t.Errorf("SquareFromName(%q) should have failed", name)
		}
	}
}

func TestNewSquare(t *testing.T) {
	if got := NewSquare(0, 0); got != 0 {
		t.Errorf("a1 = %d, want 0", got)
	}
	if got := NewSquare(7, 7); got != 63 {
		t.Errorf("h8 = %d, want 63", got)
	}
	if got := NewSquare(4, 3); got.String() != "e4" {
		t.Errorf("NewSquare(e,4) = %s, want e4", got)
	}
}

func TestPieceRoundTrip(t *testing.T) {
	for _, pt := range []PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
		for _, c := range []Color{White, Black} {
			p := NewPiece(pt, c)
			if p.Type() != pt {
				t.Errorf("NewPiece(%v,%v).Type() = %v", pt, c, p.Type())
			}
			if p.Color() != c {
				t.Errorf("NewPiece(%v,%v).Color() = %v", pt, c, p.Color())
			}
			sym := p.Symbol()
			p2, ok := PieceFromSymbol(sym)
			if !ok || p2 != p {
				t.Errorf("PieceFromSymbol(%c) round trip failed for %v/%v", sym, pt, c)
			}
		}
	}
}

func TestSquareKnightDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"a1", "a1", 0},
		{"a1", "b3", 1},
		{"a1", "c2", 1},
		{"a1", "h8", 6},
		{"a1", "b2", 4},
	}
	for _, c := range cases {
		a, _ := SquareFromName(c.a)
		b, _ := SquareFromName(c.b)
		if got := a.KnightDistance(b); got != c.want {
			t.Errorf("%s.KnightDistance(%s) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSquareChebyshevAndManhattanDistance(t *testing.T) {
	cases := []struct {
		a, b      string
		chebyshev int
		l1        int
	}{
		{"a1", "a1", 0, 0},
		{"a1", "h8", 7, 14},
		{"a1", "a8", 7, 7},
		{"a1", "h1", 7, 7},
		{"e4", "g5", 2, 3},
	}
	for _, c := range cases {
		a, _ := SquareFromName(c.a)
		b, _ := SquareFromName(c.b)
		if got := a.Distance(b); got != c.chebyshev {
			t.Errorf("%s.Distance(%s) = %d, want %d", c.a, c.b, got, c.chebyshev)
		}
		if got := b.Distance(a); got != c.chebyshev {
			t.Errorf("%s.Distance(%s) = %d, want %d (symmetry)", c.b, c.a, got, c.chebyshev)
		}
		if got := a.ManhattanDistance(b); got != c.l1 {
			t.Errorf("%s.ManhattanDistance(%s) = %d, want %d", c.a, c.b, got, c.l1)
		}
	}
}
