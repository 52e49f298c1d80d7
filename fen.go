package chess

import (
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// SetFEN replaces the board's entire state (position, turn, castling rights,
// en passant square, and move counters) from a FEN string, and clears the
// move history — same contract as python-chess's Board.set_fen.
func (b *Board) SetFEN(fen string) error { return b.setFEN(fen) }

func (b *Board) setFEN(fen string) error {
	parts := strings.Fields(strings.TrimSpace(fen))
	if len(parts) < 4 {
		return newMoveError(ValueError, "fen string should have at least 4 parts: %q", fen)
	}

	var turn Color
	switch parts[1] {
	case "w":
		turn = White
	case "b":
		turn = Black
	default:
		return newMoveError(ValueError, "expected 'w' or 'b' for turn part of fen: %q", fen)
	}

	halfmove := 0
	fullmove := 1
	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return newMoveError(ValueError, "invalid halfmove clock in fen: %q", fen)
		}
		halfmove = n
	}
	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 0 {
			return newMoveError(ValueError, "invalid fullmove number in fen: %q", fen)
		}
		fullmove = n
	}
	if fullmove == 0 {
		fullmove = 1 // a fullmove number of 0 is accepted and normalized to 1
	}

	if err := b.setBoardFen(parts[0]); err != nil {
		return err
	}

	var epSquare Square
	if parts[3] == "-" {
		epSquare = NoSquare
	} else {
		sq, err := SquareFromName(parts[3])
		if err != nil {
			return newMoveError(ValueError, "invalid en passant square in fen: %q", fen)
		}
		epSquare = sq
	}

	b.turn = turn
	b.halfmoveClock = halfmove
	b.fullmoveNumber = fullmove
	b.epSquare = epSquare
	b.moveStack = nil
	b.stack = nil

	if err := b.setCastlingFen(parts[2]); err != nil {
		return err
	}
	return nil
}

// setCastlingFen accepts both standard KQkq letters and Shredder-FEN file
// letters (A-H / a-h identifying the rook's file directly), matching the
// "X-FEN" convention most real FEN producers use for Chess960.
func (b *Board) setCastlingFen(s string) error {
	if s == "-" {
		b.castlingRights = Empty
		return nil
	}
	var rights Bitboard
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case 'K':
			rights |= b.findCastlingRook(White, true)
		case 'Q':
			rights |= b.findCastlingRook(White, false)
		case 'k':
			rights |= b.findCastlingRook(Black, true)
		case 'q':
			rights |= b.findCastlingRook(Black, false)
		default:
			color := White
			upper := ch
			if ch >= 'a' && ch <= 'z' {
				color = Black
				upper = ch - ('a' - 'A')
			}
			if upper < 'A' || upper > 'H' {
				return newMoveError(ValueError, "invalid castling part in fen: %q", s)
			}
			rank := Rank(0)
			if color == Black {
				rank = 7
			}
			rights |= BB(NewSquare(File(upper-'A'), rank))
		}
	}
	b.castlingRights = rights
	return nil
}

// findCastlingRook locates the outermost rook on the requested side of
// color's king on its back rank, the X-FEN rule for resolving a bare K/Q/k/q
// letter into a concrete rook square (needed for both standard chess and a
// Chess960 game whose FEN still uses the classic letters).
func (b *Board) findCastlingRook(c Color, kingside bool) Bitboard {
	rank := Rank(0)
	if c == Black {
		rank = 7
	}
	kingBB := b.kings & b.occupiedCo[c] & rankMasks[rank]
	if kingBB == 0 {
		return Empty
	}
	king := kingBB.LSB()
	rooks := b.rooks & b.occupiedCo[c] & rankMasks[rank]

	best := NoSquare
	t := rooks
	for t != 0 {
		sq := t.PopLSB()
		if kingside && sq > king {
			if best == NoSquare || sq > best {
				best = sq
			}
		} else if !kingside && sq < king {
			if best == NoSquare || sq < best {
				best = sq
			}
		}
	}
	if best == NoSquare {
		return Empty
	}
	return BB(best)
}

// FEN renders the board as a FEN string. The en passant field uses the
// "legal" disclosure policy: it names a square only when a capture there is
// actually legal right now, not merely structurally present from the last
// double pawn push. EPD() uses the same legal policy and takes no option to
// choose another one.
func (b *Board) FEN() string {
	var sb strings.Builder
	sb.WriteString(b.boardFen(false))
	sb.WriteByte(' ')
	if b.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(b.castlingFen())
	sb.WriteByte(' ')
	sb.WriteString(b.epFenField(epLegal))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}

// BoardFEN returns just the piece-placement field.
func (b *Board) BoardFEN() string { return b.boardFen(false) }

func (b *Board) castlingFen() string {
	rights := b.cleanCastlingRights()
	if rights == Empty {
		return "-"
	}
	var sb strings.Builder
	if !b.chess960 {
		if rights.Contains(7) {
			sb.WriteByte('K')
		}
		if rights.Contains(0) {
			sb.WriteByte('Q')
		}
		if rights.Contains(63) {
			sb.WriteByte('k')
		}
		if rights.Contains(56) {
			sb.WriteByte('q')
		}
		return sb.String()
	}
	for _, sq := range (rights & rankMasks[0]).Squares() {
		sb.WriteByte(byte('A' + sq.File()))
	}
	for _, sq := range (rights & rankMasks[7]).Squares() {
		sb.WriteByte(byte('a' + sq.File()))
	}
	return sb.String()
}

// epDisclosurePolicy selects how a serializer decides whether to name the en
// passant square at all: "fen" always shows whatever push() set regardless
// of whether a capture is possible, "pseudoLegal" shows it when a capturing
// pawn is structurally present, and "legal" (the default for FEN) shows it
// only when the capture would also be safe for the king.
type epDisclosurePolicy int

const (
	epAlways epDisclosurePolicy = iota
	epPseudoLegal
	epLegal
)

func (b *Board) epFenField(policy epDisclosurePolicy) string {
	if b.epSquare == NoSquare {
		return "-"
	}
	switch policy {
	case epAlways:
		return b.epSquare.String()
	case epPseudoLegal:
		if b.hasPseudoLegalEnPassant() {
			return b.epSquare.String()
		}
	default:
		if b.hasLegalEnPassant() {
			return b.epSquare.String()
		}
	}
	return "-"
}
