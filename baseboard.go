package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// BaseBoard holds only the piece placement: six color-blind piece-type
// bitboards whose union is occupied, plus per-color occupancy. It carries no
// turn, castling rights, or move history — that is Board's job, layered on
// top by embedding.
type BaseBoard struct {
	pawns, knights, bishops, rooks, queens, kings Bitboard
	occupiedCo                                    [2]Bitboard
	occupied                                      Bitboard
	promoted                                      Bitboard
	pieces                                        [64]Piece
}

// NewBaseBoard returns a BaseBoard in the standard chess starting position.
func NewBaseBoard() *BaseBoard {
	b := &BaseBoard{}
	b.resetBoard()
	return b
}

// NewEmptyBaseBoard returns a BaseBoard with no pieces placed.
func NewEmptyBaseBoard() *BaseBoard {
	b := &BaseBoard{}
	b.clearBoard()
	return b
}

func (b *BaseBoard) clearBoard() {
	b.pawns, b.knights, b.bishops, b.rooks, b.queens, b.kings = 0, 0, 0, 0, 0, 0
	b.occupiedCo[White], b.occupiedCo[Black] = 0, 0
	b.occupied = 0
	b.promoted = 0
	for i := range b.pieces {
		b.pieces[i] = NoPiece
	}
}

func (b *BaseBoard) resetBoard() {
	b.clearBoard()
	b.pawns = rankMasks[1] | rankMasks[6]
	b.knights = BB(1) | BB(6) | BB(57) | BB(62)
	b.bishops = BB(2) | BB(5) | BB(58) | BB(61)
	b.rooks = BB(0) | BB(7) | BB(56) | BB(63)
	b.queens = BB(3) | BB(59)
	b.kings = BB(4) | BB(60)
	b.occupiedCo[White] = rankMasks[0] | rankMasks[1]
	b.occupiedCo[Black] = rankMasks[6] | rankMasks[7]
	b.occupied = b.occupiedCo[White] | b.occupiedCo[Black]
	b.rebuildPieceCache()
}

func (b *BaseBoard) rebuildPieceCache() {
	for sq := Square(0); sq < 64; sq++ {
		b.pieces[sq] = NoPiece
	}
	for pt := Pawn; pt <= King; pt++ {
		mask := b.piecesMaskByType(pt)
		t := mask
		for t != 0 {
			sq := t.PopLSB()
			c := White
			if b.occupiedCo[Black].Contains(sq) {
				c = Black
			}
			b.pieces[sq] = NewPiece(pt, c)
		}
	}
}

func (b *BaseBoard) piecesMaskByType(pt PieceType) Bitboard {
	switch pt {
	case Pawn:
		return b.pawns
	case Knight:
		return b.knights
	case Bishop:
		return b.bishops
	case Rook:
		return b.rooks
	case Queen:
		return b.queens
	case King:
		return b.kings
	default:
		return Empty
	}
}

func (b *BaseBoard) typeBitboard(pt PieceType) *Bitboard {
	switch pt {
	case Pawn:
		return &b.pawns
	case Knight:
		return &b.knights
	case Bishop:
		return &b.bishops
	case Rook:
		return &b.rooks
	case Queen:
		return &b.queens
	case King:
		return &b.kings
	default:
		return nil
	}
}

// piecesMask returns all squares holding a piece of the given type and color.
func (b *BaseBoard) piecesMask(pt PieceType, c Color) Bitboard {
	return b.piecesMaskByType(pt) & b.occupiedCo[c]
}

// pieceAt returns the piece on sq, or NoPiece.
func (b *BaseBoard) pieceAt(sq Square) Piece { return b.pieces[sq] }

// pieceTypeAt returns the colorless type of the piece on sq, or NoPieceType.
func (b *BaseBoard) pieceTypeAt(sq Square) PieceType { return b.pieces[sq].Type() }

// colorAt returns the color of the piece on sq, and whether a piece is there.
func (b *BaseBoard) colorAt(sq Square) (Color, bool) {
	p := b.pieces[sq]
	if p == NoPiece {
		return White, false
	}
	return p.Color(), true
}

// king returns the square of color's king, or NoSquare if it has none (an
// invalid position transiently possible while a board is under construction).
func (b *BaseBoard) king(c Color) Square {
	kings := b.kings & b.occupiedCo[c] &^ b.promoted
	if kings == 0 {
		kings = b.kings & b.occupiedCo[c]
	}
	if kings == 0 {
		return NoSquare
	}
	return kings.LSB()
}

// attacksMask returns the set of squares attacked by whatever piece sits on
// sq, or Empty if sq is vacant.
func (b *BaseBoard) attacksMask(sq Square) Bitboard {
	p := b.pieces[sq]
	if p == NoPiece {
		return Empty
	}
	return attacksMask(p.Type(), p.Color(), sq, b.occupied)
}

// attackersMask returns every square holding a color piece that attacks sq,
// given occupied (usually b.occupied, but callers probing hypothetical
// occupancies for pin/x-ray analysis may pass a different mask).
func (b *BaseBoard) attackersMask(c Color, sq Square, occupied Bitboard) Bitboard {
	rankFile := rookAttacksFrom(sq, occupied)
	diag := bishopAttacksFrom(sq, occupied)

	queensAndRooks := b.queens | b.rooks
	queensAndBishops := b.queens | b.bishops

	attackers := (knightAttacks[sq] & b.knights) |
		(rankFile & queensAndRooks) |
		(diag & queensAndBishops) |
		(kingAttacks[sq] & b.kings) |
		(pawnAttacksBy[c.Other()][sq] & b.pawns)

	return attackers & b.occupiedCo[c]
}

// pinMask returns the ray along which color's piece on sq is pinned to its
// king, or the all-ones board if it is not pinned. Used to restrict a pinned
// piece's pseudo-legal destinations to squares that stay on that ray.
func (b *BaseBoard) pinMask(c Color, sq Square) Bitboard {
	king := b.king(c)
	if king == NoSquare {
		return All
	}
	squareMask := BB(sq)

	for _, candidates := range []struct {
		sliders  Bitboard
		attackFn func(Square, Bitboard) Bitboard
	}{
		{b.rooks | b.queens, rookAttacksFrom},
		{b.bishops | b.queens, bishopAttacksFrom},
	} {
		sliders := candidates.sliders & b.occupiedCo[c.Other()]
		rays := candidates.attackFn(king, b.occupied)
		if rays&squareMask == 0 {
			continue
		}
		snipers := candidates.attackFn(king, b.occupied&^squareMask) & sliders
		t := snipers
		for t != 0 {
			sniper := t.PopLSB()
			if Between(sniper, king)&squareMask != 0 {
				return Ray(king, sniper)
			}
		}
		return All
	}
	return All
}

// setPieceAt places piece on sq, replacing whatever (if anything) was there.
// promoted marks the square as holding a pawn promoted in-game, tracked
// separately so king() can disambiguate a promoted queen standing in for a
// captured king is never mistaken for the real one in malformed positions.
func (b *BaseBoard) setPieceAt(sq Square, p Piece, promoted bool) {
	b.removePieceAt(sq)
	if p == NoPiece {
		return
	}
	mask := BB(sq)
	*b.typeBitboard(p.Type()) |= mask
	b.occupiedCo[p.Color()] |= mask
	b.occupied |= mask
	b.pieces[sq] = p
	if promoted {
		b.promoted |= mask
	}
}

// removePieceAt clears sq and returns whatever piece was there, or NoPiece.
func (b *BaseBoard) removePieceAt(sq Square) Piece {
	p := b.pieces[sq]
	if p == NoPiece {
		return NoPiece
	}
	mask := BB(sq)
	*b.typeBitboard(p.Type()) &^= mask
	b.occupiedCo[p.Color()] &^= mask
	b.occupied &^= mask
	b.promoted &^= mask
	b.pieces[sq] = NoPiece
	return p
}

// pieceMap returns every occupied square mapped to its piece.
func (b *BaseBoard) pieceMap() map[Square]Piece {
	out := make(map[Square]Piece, b.occupied.PopCount())
	t := b.occupied
	for t != 0 {
		sq := t.PopLSB()
		out[sq] = b.pieces[sq]
	}
	return out
}

// setPieceMap replaces the board contents wholesale.
func (b *BaseBoard) setPieceMap(m map[Square]Piece) {
	b.clearBoard()
	for sq, p := range m {
		b.setPieceAt(sq, p, false)
	}
}

// boardFen renders the piece-placement field of a FEN string (ranks 8
// downto 1, '/'-separated, digits run-length-encoding empty squares).
// promoted, if true, suffixes promoted pieces with '~' (Crazyhouse-style
// disclosure some EPD consumers expect; most FEN readers ignore it).
func (b *BaseBoard) boardFen(promoted bool) string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			sq := NewSquare(File(f), Rank(r))
			p := b.pieces[sq]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Symbol())
			if promoted && b.promoted.Contains(sq) {
				sb.WriteByte('~')
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// setBoardFen parses the piece-placement field of a FEN string.
func (b *BaseBoard) setBoardFen(fen string) error {
	fen = strings.TrimSpace(fen)
	if strings.Contains(fen, " ") {
		return &MoveError{Kind: ValueError, Msg: fmt.Sprintf("expected position part of fen, got multiple parts: %q", fen)}
	}
	ranks := strings.Split(fen, "/")
	if len(ranks) != 8 {
		return &MoveError{Kind: ValueError, Msg: fmt.Sprintf("expected 8 rows in position part of fen: %q", fen)}
	}

	b.clearBoard()
	for i, rowFen := range ranks {
		r := 7 - i
		f := 0
		sawPiece := false
		for j := 0; j < len(rowFen); j++ {
			ch := rowFen[j]
			switch {
			case ch >= '1' && ch <= '8':
				f += int(ch - '0')
				sawPiece = false
			case ch == '~':
				if !sawPiece || f == 0 {
					return &MoveError{Kind: ValueError, Msg: fmt.Sprintf("'~' without preceding piece in fen: %q", fen)}
				}
				b.promoted |= BB(NewSquare(File(f-1), Rank(r)))
			default:
				p, ok := PieceFromSymbol(ch)
				if !ok {
					return &MoveError{Kind: ValueError, Msg: fmt.Sprintf("invalid piece symbol %q in fen: %q", string(ch), fen)}
				}
				if f >= 8 {
					return &MoveError{Kind: ValueError, Msg: fmt.Sprintf("too many squares in rank of fen: %q", fen)}
				}
				b.setPieceAt(NewSquare(File(f), Rank(r)), p, false)
				f++
				sawPiece = true
			}
		}
		if f != 8 {
			return &MoveError{Kind: ValueError, Msg: fmt.Sprintf("expected 8 columns per row in position part of fen: %q", fen)}
		}
	}
	return nil
}

// Equal compares piece placement only, ignoring promoted markers.
func (b *BaseBoard) Equal(o *BaseBoard) bool {
	return b.pawns == o.pawns && b.knights == o.knights && b.bishops == o.bishops &&
		b.rooks == o.rooks && b.queens == o.queens && b.kings == o.kings &&
		b.occupiedCo[White] == o.occupiedCo[White] && b.occupiedCo[Black] == o.occupiedCo[Black]
}

// mirrorVertical flips the board top-to-bottom and swaps the colors of every
// piece, turning White's position into Black's mirror image and vice versa.
func (b *BaseBoard) mirrorVertical() {
	promoted := b.promoted
	m := b.pieceMap()
	b.clearBoard()
	for sq, p := range m {
		dst := NewSquare(sq.File(), 7-sq.Rank())
		b.setPieceAt(dst, NewPiece(p.Type(), p.Color().Other()), promoted.Contains(sq))
	}
}

// setChess960Pos sets up one of the 960 Scharnagl starting positions.
// The back-rank piece arrangement is decoded from n (0..959) the same way
// Chess960 numbers it: bishops placed on opposite-colored squares among the
// remaining slots, then the queen, then the two knights into whatever slots
// are left, with N-Q-N ordering varying by sub-index.
func (b *BaseBoard) setChess960Pos(n int) error {
	if n < 0 || n > 959 {
		return &MoveError{Kind: ValueError, Msg: fmt.Sprintf("chess960 position index out of range: %d", n)}
	}
	backRank := scharnaglBackRank(n)

	b.clearBoard()
	for f, pt := range backRank {
		b.setPieceAt(NewSquare(File(f), 0), NewPiece(pt, White), false)
		b.setPieceAt(NewSquare(File(f), 7), NewPiece(pt, Black), false)
	}
	for f := 0; f < 8; f++ {
		b.setPieceAt(NewSquare(File(f), 1), NewPiece(Pawn, White), false)
		b.setPieceAt(NewSquare(File(f), 6), NewPiece(Pawn, Black), false)
	}
	return nil
}

// scharnaglBackRank decodes Scharnagl index n into the eight back-rank piece
// types, file a through h.
func scharnaglBackRank(n int) [8]PieceType {
	var rank [8]PieceType
	occupied := [8]bool{}

	placeOn := func(slot int, pt PieceType) int {
		count := -1
		for f := 0; f < 8; f++ {
			if occupied[f] {
				continue
			}
			count++
			if count == slot {
				rank[f] = pt
				occupied[f] = true
				return f
			}
		}
		return -1
	}

	// Bishops: light-squared bishop on odd file 2*b1+1, dark-squared bishop on
	// even file 2*b2, indexed by the classic Scharnagl (n4, n3) decomposition.
	n2 := n / 4
	b1 := n % 4
	n3 := n2 / 4
	b2 := n2 % 4
	n4 := n3 / 6
	q := n3 % 6
	rank[2*b1+1], occupied[2*b1+1] = Bishop, true
	rank[2*b2], occupied[2*b2] = Bishop, true

	// Queen: q-th remaining empty slot.
	placeOn(q, Queen)

	// Knights: n4 selects one of the 10 combinations of 2 slots out of the
	// remaining 5 empty ones (the table lives in placeKnights).
	knightTable := [5][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}, {1, 2}}
	_ = knightTable
	placeKnights(&rank, &occupied, n4)

	// Rooks and king fill the three remaining slots left-to-right as R K R.
	remaining := make([]int, 0, 3)
	for f := 0; f < 8; f++ {
		if !occupied[f] {
			remaining = append(remaining, f)
		}
	}
	if len(remaining) == 3 {
		rank[remaining[0]] = Rook
		rank[remaining[1]] = King
		rank[remaining[2]] = Rook
	}
	return rank
}

// placeKnights fills the two knight slots among the squares left empty after
// bishops and queen are placed, indexed 0..9 by the standard combination
// ordering used by the Scharnagl numbering.
func placeKnights(rank *[8]PieceType, occupied *[8]bool, idx int) {
	combos := [10][2]int{
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 2}, {1, 3}, {1, 4},
		{2, 3}, {2, 4},
		{3, 4},
	}
	if idx < 0 || idx >= len(combos) {
		idx = 0
	}
	empties := make([]int, 0, 5)
	for f := 0; f < 8; f++ {
		if !occupied[f] {
			empties = append(empties, f)
		}
	}
	combo := combos[idx]
	for _, slot := range combo {
		if slot >= len(empties) {
			continue
		}
		f := empties[slot]
		rank[f] = Knight
		occupied[f] = true
	}
}

// chess960Pos reports the Scharnagl index of the current back-rank
// arrangement if it matches a valid Chess960 setup with pawns on their home
// ranks, or ok=false if it doesn't.
func (b *BaseBoard) chess960Pos() (n int, ok bool) {
	if b.occupiedCo[White]&rankMasks[1] != rankMasks[1] || b.occupiedCo[Black]&rankMasks[6] != rankMasks[6] {
		return 0, false
	}
	if b.pawns&rankMasks[1] != rankMasks[1] || b.pawns&rankMasks[6] != rankMasks[6] {
		return 0, false
	}
	var whiteRank [8]PieceType
	for f := 0; f < 8; f++ {
		whiteRank[f] = b.pieceTypeAt(NewSquare(File(f), 0))
		if whiteRank[f] == NoPieceType || whiteRank[f] == Pawn {
			return 0, false
		}
		if b.pieceTypeAt(NewSquare(File(f), 7)) != whiteRank[f] {
			return 0, false
		}
	}
	for idx := 0; idx < 960; idx++ {
		if scharnaglBackRank(idx) == whiteRank {
			return idx, true
		}
	}
	return 0, false
}
