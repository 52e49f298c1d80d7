package chess

import "testing"

func TestSetEPDBasic(t *testing.T) {
	b := NewBoard()
	ops, err := b.SetEPD(`rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - bm e4; id "starting position";`)
	if err != nil {
		t.Fatalf("SetEPD: %v", err)
	}
	bm, ok := ops["bm"].([]Move)
	if !ok || len(bm) != 1 {
		t.Fatalf("expected bm operand with one move, got %#v", ops["bm"])
	}
	if got := b.UCI(bm[0]); got != "e2e4" {
		t.Errorf("bm move = %q, want e2e4", got)
	}
	if id, ok := ops["id"].(string); !ok || id != "starting position" {
		t.Errorf("id operand = %#v, want %q", ops["id"], "starting position")
	}
}

func TestSetEPDIntOperands(t *testing.T) {
	b := NewBoard()
	ops, err := b.SetEPD("4k3/8/8/8/8/8/8/4K3 w - - acd 10; acn 12345;")
	if err != nil {
		t.Fatalf("SetEPD: %v", err)
	}
	if acd, ok := ops["acd"].(int); !ok || acd != 10 {
		t.Errorf("acd = %#v, want 10", ops["acd"])
	}
	if acn, ok := ops["acn"].(int); !ok || acn != 12345 {
		t.Errorf("acn = %#v, want 12345", ops["acn"])
	}
}

func TestEPDRoundTrip(t *testing.T) {
	b := NewBoard()
	m, err := b.ParseSAN("e4")
	if err != nil {
		t.Fatalf("ParseSAN: %v", err)
	}
	ops := map[string]interface{}{
		"bm": []Move{m},
		"id": "opening move",
	}
	out := b.EPD(ops)

	reparsed := NewBoard()
	roundTripped, err := reparsed.SetEPD(out)
	if err != nil {
		t.Fatalf("SetEPD(%q): %v", out, err)
	}
	bm, ok := roundTripped["bm"].([]Move)
	if !ok || len(bm) != 1 || !movesEqual(bm[0], m) {
		t.Errorf("round-tripped bm = %#v, want [%v]", roundTripped["bm"], m)
	}
}

func TestEPDQuotedStringWithSemicolon(t *testing.T) {
	b := NewBoard()
	ops, err := b.SetEPD(`rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - c0 "a; b \"c\""; `)
	if err != nil {
		t.Fatalf("SetEPD: %v", err)
	}
	if got, ok := ops["c0"].(string); !ok || got != `a; b "c"` {
		t.Errorf("c0 = %#v, want %q", ops["c0"], `a; b "c"`)
	}
}
