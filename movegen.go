package chess

// Pseudo-legal generation, the legal filter, and check evasions. The
// pin/evasion math below follows the same king-centric algorithm spec.md
// attributes to python-chess: a single slider_blockers/is_safe pass is
// cheaper than generating every pseudo-legal move and replaying it to see if
// the king survives.

// checkersMask returns every enemy piece currently attacking color's king.
func (b *Board) checkersMask() Bitboard {
	king := b.king(b.turn)
	if king == NoSquare {
		return Empty
	}
	return b.attackersMask(b.turn.Other(), king, b.occupied)
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool { return b.checkersMask() != 0 }

// isAttackedBy reports whether any color piece attacks sq.
func (b *Board) isAttackedBy(c Color, sq Square) bool {
	return b.attackersMask(c, sq, b.occupied) != 0
}

// attackedForKing reports whether any square in path is attacked by the
// opponent, evaluated against the given hypothetical occupancy. Used while
// probing a castling king's path, where the king and/or rook have already
// been notionally lifted off the board.
func (b *Board) attackedForKing(path Bitboard, occupied Bitboard) bool {
	them := b.turn.Other()
	t := path
	for t != 0 {
		sq := t.PopLSB()
		if b.attackersMaskWithOcc(them, sq, occupied) != 0 {
			return true
		}
	}
	return false
}

// attackersMaskWithOcc is attackersMask but against a caller-supplied
// occupancy instead of the board's actual one, used for "what if this square
// were empty" castling-path probes.
func (b *Board) attackersMaskWithOcc(c Color, sq Square, occupied Bitboard) Bitboard {
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

// generatePseudoLegalMoves yields every structurally legal move (piece can
// physically move there; doesn't check whether it leaves the king in check)
// with From in fromMask and To in toMask.
func (b *Board) generatePseudoLegalMoves(fromMask, toMask Bitboard) []Move {
	var moves []Move
	us := b.turn
	ourPieces := b.occupiedCo[us]

	nonPawns := ourPieces &^ b.pawns & fromMask
	t := nonPawns
	for t != 0 {
		from := t.PopLSB()
		targets := b.attacksMask(from) &^ ourPieces & toMask
		tt := targets
		for tt != 0 {
			to := tt.PopLSB()
			moves = append(moves, Move{From: from, To: to})
		}
	}

	if b.kings&ourPieces&fromMask != 0 {
		moves = append(moves, b.generateCastlingMoves(fromMask, toMask)...)
	}

	pawns := b.pawns & ourPieces & fromMask
	if pawns != 0 {
		moves = append(moves, b.generatePawnMoves(pawns, toMask)...)
		moves = append(moves, b.generatePseudoLegalEnPassant(fromMask, toMask)...)
	}

	return moves
}

func (b *Board) generatePawnMoves(pawns Bitboard, toMask Bitboard) []Move {
	var moves []Move
	us := b.turn
	them := us.Other()

	t := pawns
	for t != 0 {
		from := t.PopLSB()

		captures := pawnAttacksBy[us][from] & b.occupiedCo[them] & toMask
		ct := captures
		for ct != 0 {
			to := ct.PopLSB()
			moves = append(moves, pawnMovesTo(from, to, us)...)
		}

		var singleTo int
		if us == White {
			singleTo = int(from) + 8
		} else {
			singleTo = int(from) - 8
		}
		if singleTo < 0 || singleTo > 63 {
			continue
		}
		single := Square(singleTo)
		if b.occupied.Contains(single) {
			continue
		}
		if toMask.Contains(single) {
			moves = append(moves, pawnMovesTo(from, single, us)...)
		}

		startRank := Rank(1)
		if us == Black {
			startRank = 6
		}
		if from.Rank() != startRank {
			continue
		}
		var doubleTo int
		if us == White {
			doubleTo = int(from) + 16
		} else {
			doubleTo = int(from) - 16
		}
		double := Square(doubleTo)
		if !b.occupied.Contains(double) && toMask.Contains(double) {
			moves = append(moves, Move{From: from, To: double})
		}
	}
	return moves
}

func pawnMovesTo(from, to Square, us Color) []Move {
	promoRank := Rank(7)
	if us == Black {
		promoRank = 0
	}
	if to.Rank() == promoRank {
		return []Move{
			{From: from, To: to, Promotion: Queen},
			{From: from, To: to, Promotion: Rook},
			{From: from, To: to, Promotion: Bishop},
			{From: from, To: to, Promotion: Knight},
		}
	}
	return []Move{{From: from, To: to}}
}

// generatePseudoLegalEnPassant yields the (at most two) en passant captures
// available, ignoring whether they leave the king in check.
func (b *Board) generatePseudoLegalEnPassant(fromMask, toMask Bitboard) []Move {
	if b.epSquare == NoSquare || !toMask.Contains(b.epSquare) {
		return nil
	}
	var moves []Move
	capturers := pawnAttacksBy[b.turn.Other()][b.epSquare] & b.pawns & b.occupiedCo[b.turn] & fromMask
	t := capturers
	for t != 0 {
		from := t.PopLSB()
		moves = append(moves, Move{From: from, To: b.epSquare})
	}
	return moves
}

// generateCastlingMoves yields legal castling moves, applying the exact
// 3-condition test: the king and rook's paths (and both endpoints) must be
// clear of every other piece, the king's current square and the squares it
// crosses must not be attacked, and its landing square (with the rook
// already relocated) must not be attacked either.
func (b *Board) generateCastlingMoves(fromMask, toMask Bitboard) []Move {
	var moves []Move
	backrank := rankMasks[0]
	if b.turn == Black {
		backrank = rankMasks[7]
	}
	kingBB := b.occupiedCo[b.turn] & b.kings &^ b.promoted & backrank & fromMask
	if kingBB == 0 {
		return nil
	}
	king := kingBB.LSB()

	bbC := fileMasks[2] & backrank
	bbD := fileMasks[3] & backrank
	bbF := fileMasks[5] & backrank
	bbG := fileMasks[6] & backrank

	candidates := b.cleanCastlingRights() & backrank & toMask
	t := candidates
	for t != 0 {
		rook := t.PopLSB()
		aSide := rook < king
		var kingToBB, rookToBB Bitboard
		if aSide {
			kingToBB, rookToBB = bbC, bbD
		} else {
			kingToBB, rookToBB = bbG, bbF
		}
		kingTo := kingToBB.LSB()
		rookTo := rookToBB.LSB()

		kingPath := Between(king, kingTo)
		rookPath := Between(rook, rookTo)

		occAfterLift := b.occupied &^ BB(king) &^ BB(rook)
		blocked := occAfterLift & (kingPath | rookPath | BB(kingTo) | BB(rookTo) | BB(rook))
		if blocked != 0 {
			continue
		}
		if b.attackedForKing(kingPath|BB(king), b.occupied&^BB(king)) {
			continue
		}
		if b.attackedForKing(BB(kingTo), b.occupied&^BB(king)&^BB(rook)&^BB(rookTo)) {
			continue
		}
		moves = append(moves, b.castlingMoveRepresentation(king, rook))
	}
	return moves
}

// castlingMoveRepresentation renders a verified-legal castling candidate as
// the move shape callers actually push: king-takes-own-rook in Chess960
// games, the classic two-square king hop otherwise.
func (b *Board) castlingMoveRepresentation(king, rook Square) Move {
	if b.chess960 {
		return Move{From: king, To: rook}
	}
	aSide := rook < king
	rank := king.Rank()
	if aSide {
		return Move{From: king, To: NewSquare(2, rank)}
	}
	return Move{From: king, To: NewSquare(6, rank)}
}

// isCastling reports whether m, issued from the current position, is a
// castling move: the king moves more than one file, or (Chess960 notation)
// lands on one of its own rooks.
func (b *Board) isCastling(m Move) bool {
	if !b.kings.Contains(m.From) {
		return false
	}
	diff := int(m.From.File()) - int(m.To.File())
	if diff > 1 || diff < -1 {
		return true
	}
	return b.rooks.Contains(m.To) && b.occupiedCo[b.turn].Contains(m.To)
}

func (b *Board) isKingsideCastling(m Move) bool {
	return b.isCastling(m) && m.To.File() > m.From.File()
}

func (b *Board) isQueensideCastling(m Move) bool {
	return b.isCastling(m) && m.To.File() < m.From.File()
}

// isEnPassantMove reports whether m is a pawn capturing on the en passant
// square: a diagonal pawn move landing on a square with no piece on it.
func (b *Board) isEnPassantMove(m Move) bool {
	return b.epSquare != NoSquare && m.To == b.epSquare &&
		b.pawns.Contains(m.From) && m.From.File() != m.To.File()
}

// sliderBlockers returns every one of color's own pieces that is the sole
// blocker between king and an enemy slider — i.e. a piece pinned (fully or
// partially) to its own king.
func (b *Board) sliderBlockers(king Square) Bitboard {
	rooksAndQueens := b.rooks | b.queens
	bishopsAndQueens := b.bishops | b.queens
	snipers := (rookAttacksFrom(king, Empty) & rooksAndQueens) |
		(bishopAttacksFrom(king, Empty) & bishopsAndQueens)

	var blockers Bitboard
	them := b.turn.Other()
	t := snipers & b.occupiedCo[them]
	for t != 0 {
		sniper := t.PopLSB()
		between := Between(king, sniper) & b.occupied
		if between != 0 && between&(between-1) == 0 {
			blockers |= between
		}
	}
	return blockers & b.occupiedCo[b.turn]
}

// epSkewered handles the rare case where an en passant capture would remove
// both the capturing pawn and the captured pawn from the same rank the king
// sits on, exposing it to a rook or queen that neither piece was blocking
// individually.
func (b *Board) epSkewered(king, capturer Square) bool {
	var lastDouble Square
	if b.turn == White {
		lastDouble = b.epSquare - 8
	} else {
		lastDouble = b.epSquare + 8
	}
	occupancy := (b.occupied &^ BB(lastDouble) &^ BB(capturer)) | BB(b.epSquare)
	them := b.turn.Other()

	rankPieces := b.occupiedCo[them] & (b.rooks | b.queens)
	if rookAttacksFrom(king, occupancy)&rankPieces != 0 {
		return true
	}
	diagPieces := b.occupiedCo[them] & (b.bishops | b.queens)
	if bishopAttacksFrom(king, occupancy)&diagPieces != 0 {
		return true
	}
	return false
}

// isSafe reports whether making m would leave the mover's own king attacked,
// given blockers (the precomputed sliderBlockers(king) set) — the single
// check this function needs to save the generator from replaying every move
// on a scratch board.
func (b *Board) isSafe(king Square, blockers Bitboard, m Move) bool {
	if m.From == king {
		if b.isCastling(m) {
			return true
		}
		return !b.isAttackedBy(b.turn.Other(), m.To)
	}
	if b.isEnPassantMove(m) {
		return b.pinMask(b.turn, m.From).Contains(m.To) && !b.epSkewered(king, m.From)
	}
	if blockers&BB(m.From) == 0 {
		return true
	}
	return Ray(m.From, m.To).Contains(king)
}

// generateEvasions yields candidate moves while in check: king steps off
// every square the checking slider(s) rake through, plus (for a single
// checker) any move that captures it or blocks its line, plus the special
// case of capturing a checking pawn en passant.
func (b *Board) generateEvasions(king Square, checkers Bitboard, fromMask, toMask Bitboard) []Move {
	var moves []Move
	sliders := checkers & (b.bishops | b.rooks | b.queens)
	var attacked Bitboard
	t := sliders
	for t != 0 {
		checker := t.PopLSB()
		attacked |= Ray(king, checker) &^ BB(checker)
	}

	if BB(king)&fromMask != 0 {
		targets := kingAttacks[king] &^ b.occupiedCo[b.turn] &^ attacked & toMask
		tt := targets
		for tt != 0 {
			to := tt.PopLSB()
			moves = append(moves, Move{From: king, To: to})
		}
	}

	if checkers.PopCount() == 1 {
		checker := checkers.LSB()
		target := (Between(king, checker) | checkers) & toMask
		moves = append(moves, b.generatePseudoLegalMoves(fromMask&^b.kings, target)...)

		if b.epSquare != NoSquare && BB(b.epSquare)&target == 0 {
			var lastDouble Square
			if b.turn == White {
				lastDouble = b.epSquare - 8
			} else {
				lastDouble = b.epSquare + 8
			}
			if lastDouble == checker {
				moves = append(moves, b.generatePseudoLegalEnPassant(fromMask, toMask)...)
			}
		}
	}

	return moves
}

// generateLegalMoves is the full legal-move generator: find the king, decide
// whether it's already in check, and run either the evasion path or the
// plain pseudo-legal path through the isSafe filter.
func (b *Board) generateLegalMoves(fromMask, toMask Bitboard) []Move {
	kingMask := b.kings & b.occupiedCo[b.turn]
	if kingMask == 0 {
		return b.generatePseudoLegalMoves(fromMask, toMask)
	}
	king := kingMask.LSB()
	blockers := b.sliderBlockers(king)
	checkers := b.attackersMask(b.turn.Other(), king, b.occupied)

	var candidates []Move
	if checkers != 0 {
		candidates = b.generateEvasions(king, checkers, fromMask, toMask)
	} else {
		candidates = b.generatePseudoLegalMoves(fromMask, toMask)
	}

	moves := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		if b.isSafe(king, blockers, m) {
			moves = append(moves, m)
		}
	}
	return moves
}

func movesEqual(a, c Move) bool {
	return a.From == c.From && a.To == c.To && a.Promotion == c.Promotion && a.Drop == c.Drop
}

// GenerateLegalMoves returns every legal move in the current position.
func (b *Board) GenerateLegalMoves() []Move { return b.generateLegalMoves(All, All) }

// GeneratePseudoLegalMoves returns every structurally-legal move, without
// filtering out ones that leave the mover's own king in check.
func (b *Board) GeneratePseudoLegalMoves() []Move { return b.generatePseudoLegalMoves(All, All) }

// GenerateLegalCaptures returns the legal moves that land on an occupied
// square or are en passant captures.
func (b *Board) GenerateLegalCaptures() []Move {
	captureTargets := b.occupiedCo[b.turn.Other()]
	if b.epSquare != NoSquare {
		captureTargets |= BB(b.epSquare)
	}
	return b.generateLegalMoves(All, captureTargets)
}

// isPseudoLegal reports whether m appears in the pseudo-legal move set.
func (b *Board) isPseudoLegal(m Move) bool {
	if m.IsNull() {
		return false
	}
	// Castling candidates are generated with the rook square as destination,
	// so the destination mask must not exclude them.
	toMask := BB(m.To)
	if b.isCastling(m) {
		toMask = All
	}
	for _, cand := range b.generatePseudoLegalMoves(BB(m.From), toMask) {
		if movesEqual(cand, m) {
			return true
		}
	}
	return false
}

// isLegal reports whether m appears in the legal move set.
func (b *Board) isLegal(m Move) bool {
	if m.IsNull() {
		return false
	}
	toMask := BB(m.To)
	if b.isCastling(m) {
		toMask = All
	}
	for _, cand := range b.generateLegalMoves(BB(m.From), toMask) {
		if movesEqual(cand, m) {
			return true
		}
	}
	return false
}

// hasLegalMoves reports whether the side to move has any legal move at all.
func (b *Board) hasLegalMoves() bool {
	return len(b.generateLegalMoves(All, All)) > 0
}

// LegalMoveCount returns the number of legal moves in the current position.
func (b *Board) LegalMoveCount() int { return len(b.GenerateLegalMoves()) }

// GivesCheck reports whether making m would put the opponent in check. It
// pushes m, checks, and pops — correct by construction rather than a
// from-scratch discovered-check simulation.
func (b *Board) GivesCheck(m Move) bool {
	b.push(m)
	check := b.InCheck()
	b.Pop()
	return check
}

// hasPseudoLegalEnPassant reports whether an en passant capture is
// structurally available (a pawn of the side to move attacks the ep square),
// without checking whether making it is safe for the king.
func (b *Board) hasPseudoLegalEnPassant() bool {
	if b.epSquare == NoSquare {
		return false
	}
	return pawnAttacksBy[b.turn.Other()][b.epSquare]&b.pawns&b.occupiedCo[b.turn] != 0
}

// hasLegalEnPassant reports whether an en passant capture is both
// structurally available and legal right now.
func (b *Board) hasLegalEnPassant() bool {
	if !b.hasPseudoLegalEnPassant() {
		return false
	}
	for _, m := range b.generatePseudoLegalEnPassant(All, All) {
		if b.isLegal(m) {
			return true
		}
	}
	return false
}
