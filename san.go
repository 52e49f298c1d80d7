package chess

import (
	"strings"

	"golang.org/x/exp/slices"
)

// UCI renders m the way this board's game would notate it: king-takes-rook
// for castling in a Chess960 game, the classic two-square king hop otherwise.
func (b *Board) UCI(m Move) string {
	return b.fromChess960Move(b.toChess960Move(m)).uci()
}

// ParseUCI parses and validates a UCI move string against the current legal
// move list.
func (b *Board) ParseUCI(s string) (Move, error) {
	m, err := moveFromUCI(s)
	if err != nil {
		return Move{}, err
	}
	if !m.IsNull() && !b.isLegal(m) {
		return Move{}, newMoveError(IllegalMove, "illegal uci move %q in position %s", s, b.FEN())
	}
	return m, nil
}

// PushUCI parses s and pushes it, or returns an error without mutating the
// board if it isn't legal here.
func (b *Board) PushUCI(s string) error {
	m, err := b.ParseUCI(s)
	if err != nil {
		return err
	}
	b.push(m)
	return nil
}

// XBoard renders m the way the XBoard/WinBoard engine protocol notates it:
// identical to UCI except the null move is "@@@@" and Chess960 castling is
// shown as O-O/O-O-O rather than king-takes-rook.
func (b *Board) XBoard(m Move) string {
	if m.IsNull() {
		return "@@@@"
	}
	if b.chess960 && b.isCastling(m) {
		return boolCastlingLabel(b.isQueensideCastling(m))
	}
	return b.fromChess960Move(b.toChess960Move(m)).uci()
}

// ParseXBoard parses and validates an XBoard move string against the current
// legal move list.
func (b *Board) ParseXBoard(s string) (Move, error) {
	if s == "O-O" || s == "O-O-O" {
		return b.parseCastlingSAN(s == "O-O-O")
	}
	return b.ParseUCI(s)
}

// PushXBoard parses s and pushes it, or returns an error without mutating
// the board if it isn't legal here.
func (b *Board) PushXBoard(s string) error {
	m, err := b.ParseXBoard(s)
	if err != nil {
		return err
	}
	b.push(m)
	return nil
}

// isCapture reports whether m captures a piece, including en passant.
func (b *Board) isCapture(m Move) bool {
	return BB(m.To)&b.occupied != 0 || b.isEnPassantMove(m)
}

func upperLetter(pt PieceType) byte {
	ch := pt.Letter()
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	return ch
}

// SAN renders m in Standard Algebraic Notation, including the trailing
// '+'/'#' suffix, which requires pushing the move to see whether it gives
// check or mate.
func (b *Board) SAN(m Move) string {
	san := b.sanWithoutSuffix(m)
	if m.IsNull() {
		return san
	}
	b.push(m)
	if b.InCheck() {
		if b.hasLegalMoves() {
			san += "+"
		} else {
			san += "#"
		}
	}
	b.Pop()
	return san
}

func (b *Board) sanWithoutSuffix(m Move) string {
	if m.IsNull() {
		return "--"
	}
	if b.isCastling(m) {
		norm := b.toChess960Move(m)
		if norm.To.File() < norm.From.File() {
			return "O-O-O"
		}
		return "O-O"
	}

	pieceType := b.pieceTypeAt(m.From)
	capture := b.isCapture(m)

	var sb strings.Builder
	if pieceType != Pawn {
		sb.WriteByte(upperLetter(pieceType))
		sb.WriteString(b.disambiguate(m))
	}
	if capture {
		if pieceType == Pawn {
			sb.WriteByte(fileNames[m.From.File()])
		}
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())
	if m.Promotion != NoPieceType {
		sb.WriteByte('=')
		sb.WriteByte(upperLetter(m.Promotion))
	}
	return sb.String()
}

// disambiguate returns the file, rank, or full-square prefix needed to tell
// m's origin apart from any other legal move of the same piece type to the
// same destination, per standard SAN disambiguation rules.
func (b *Board) disambiguate(m Move) string {
	pieceType := b.pieceTypeAt(m.From)
	var others []Move
	for _, cand := range b.GenerateLegalMoves() {
		if cand.To == m.To && cand.From != m.From && b.pieceTypeAt(cand.From) == pieceType {
			others = append(others, cand)
		}
	}
	if len(others) == 0 {
		return ""
	}
	slices.SortFunc(others, func(a, c Move) bool { return a.From < c.From })

	sameFile, sameRank := false, false
	for _, o := range others {
		if o.From.File() == m.From.File() {
			sameFile = true
		}
		if o.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	if !sameFile {
		return string(fileNames[m.From.File()])
	}
	if !sameRank {
		return string(rune('1' + m.From.Rank()))
	}
	return m.From.String()
}

// ParseSAN parses a SAN move string against the current legal move list.
func (b *Board) ParseSAN(san string) (Move, error) {
	cleaned := strings.TrimRight(san, "+#!?")
	switch cleaned {
	case "--", "0000", "Z0", "@@@@":
		return NullMove, nil
	case "O-O", "0-0":
		return b.parseCastlingSAN(false)
	case "O-O-O", "0-0-0":
		return b.parseCastlingSAN(true)
	}
	return b.parseNormalSAN(cleaned)
}

func (b *Board) parseCastlingSAN(queenside bool) (Move, error) {
	for _, m := range b.GenerateLegalMoves() {
		if !b.isCastling(m) {
			continue
		}
		norm := b.toChess960Move(m)
		if (norm.To.File() < norm.From.File()) == queenside {
			return m, nil
		}
	}
	return Move{}, newMoveError(IllegalMove, "illegal san (no such castling move): %q", boolCastlingLabel(queenside))
}

func boolCastlingLabel(queenside bool) string {
	if queenside {
		return "O-O-O"
	}
	return "O-O"
}

func (b *Board) parseNormalSAN(s string) (Move, error) {
	if len(s) < 2 {
		return Move{}, newMoveError(InvalidMove, "invalid san: %q", s)
	}

	pieceType := Pawn
	i := 0
	if s[0] >= 'A' && s[0] <= 'Z' {
		pt, ok := PieceTypeFromLetter(s[0])
		if !ok || pt == Pawn {
			return Move{}, newMoveError(InvalidMove, "invalid san piece letter: %q", s)
		}
		pieceType = pt
		i++
	}

	rest := strings.ReplaceAll(s[i:], "x", "")

	promotion := NoPieceType
	if idx := strings.IndexByte(rest, '='); idx >= 0 {
		if idx+1 >= len(rest) {
			return Move{}, newMoveError(InvalidMove, "invalid san promotion: %q", s)
		}
		pt, ok := PieceTypeFromLetter(rest[idx+1])
		if !ok || pt == Pawn || pt == King {
			return Move{}, newMoveError(InvalidMove, "invalid san promotion: %q", s)
		}
		promotion = pt
		rest = rest[:idx]
	}

	if len(rest) < 2 {
		return Move{}, newMoveError(InvalidMove, "invalid san: %q", s)
	}
	to, err := SquareFromName(rest[len(rest)-2:])
	if err != nil {
		return Move{}, newMoveError(InvalidMove, "invalid san destination: %q", s)
	}
	disambig := rest[:len(rest)-2]

	fromFile := File(-1)
	fromRank := Rank(-1)
	for i := 0; i < len(disambig); i++ {
		ch := disambig[i]
		switch {
		case ch >= 'a' && ch <= 'h':
			fromFile = File(ch - 'a')
		case ch >= '1' && ch <= '8':
			fromRank = Rank(ch - '1')
		default:
			return Move{}, newMoveError(InvalidMove, "invalid san disambiguation: %q", s)
		}
	}

	var matches []Move
	for _, cand := range b.GenerateLegalMoves() {
		if cand.To != to || cand.Promotion != promotion {
			continue
		}
		if b.pieceTypeAt(cand.From) != pieceType {
			continue
		}
		if fromFile >= 0 && cand.From.File() != fromFile {
			continue
		}
		if fromRank >= 0 && cand.From.Rank() != fromRank {
			continue
		}
		matches = append(matches, cand)
	}
	switch len(matches) {
	case 0:
		return Move{}, newMoveError(IllegalMove, "illegal san: %q", s)
	case 1:
		return matches[0], nil
	default:
		return Move{}, newMoveError(AmbiguousMove, "ambiguous san: %q", s)
	}
}

// PushSAN parses san and pushes it, or returns an error without mutating the
// board if it isn't legal here.
func (b *Board) PushSAN(san string) error {
	m, err := b.ParseSAN(san)
	if err != nil {
		return err
	}
	b.push(m)
	return nil
}

// SANVariation formats a sequence of legal moves as SAN, pushing and popping
// each internally so the board's position is unchanged on return.
func (b *Board) SANVariation(moves []Move) ([]string, error) {
	out := make([]string, 0, len(moves))
	for i, m := range moves {
		if !m.IsNull() && !b.isLegal(m) {
			for range out {
				b.Pop()
			}
			return nil, newMoveError(IllegalMove, "illegal move at index %d in variation: %s", i, m)
		}
		out = append(out, b.SAN(m))
		b.push(m)
	}
	for range moves {
		b.Pop()
	}
	return out, nil
}
