package chess

// darkSquares/lightSquares partition the board by square color, needed for
// the same-colored-bishops insufficient-material check.
var darkSquares, lightSquares Bitboard

func init() {
	for sq := Square(0); sq < 64; sq++ {
		if squareColor(sq) == Black {
			darkSquares = darkSquares.Set(sq)
		} else {
			lightSquares = lightSquares.Set(sq)
		}
	}
}

// TranspositionKey exposes the Zobrist key repetition detection keys off of.
func (b *Board) TranspositionKey() uint64 { return b.transpositionKey() }

// IsRepetition reports whether the current position has occurred at least
// count times (including now) since the board's root FEN, comparing full
// transposition keys (piece placement, turn, castling rights, and en
// passant only when a capture there is legal).
//
// Matching the occupied bitboard is a cheap necessary condition for a
// transposition-key match, so it's used as an upper bound before doing any
// real work. The replay then walks the move stack backward and stops as
// soon as it undoes an irreversible move: no position beyond that boundary
// can ever transpose back to here.
func (b *Board) IsRepetition(count int) bool {
	if count < 1 {
		count = 1
	}
	maybeRepetitions := 1
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].occupied == b.occupied {
			maybeRepetitions++
			if maybeRepetitions >= count {
				break
			}
		}
	}
	if maybeRepetitions < count {
		return false
	}

	target := b.transpositionKey()
	var switchyard []Move
	defer func() {
		for i := len(switchyard) - 1; i >= 0; i-- {
			b.push(switchyard[i])
		}
	}()
	for {
		if count <= 1 {
			return true
		}
		if len(b.moveStack) < count-1 {
			break
		}
		m := b.Pop()
		switchyard = append(switchyard, m)
		if b.isIrreversible(m) {
			break
		}
		if b.transpositionKey() == target {
			count--
		}
	}
	return false
}

// CanClaimThreefoldRepetition reports whether the current position has
// occurred three times.
func (b *Board) CanClaimThreefoldRepetition() bool { return b.IsRepetition(3) }

// IsFivefoldRepetition reports whether the current position has occurred
// five times, an automatic draw under FIDE rules (no claim needed).
func (b *Board) IsFivefoldRepetition() bool { return b.IsRepetition(5) }

// CanClaimFiftyMoves reports whether either player may claim a draw under
// the fifty-move rule: the clock has already reached 100 halfmoves, or it's
// at 99 and at least one legal move wouldn't reset it.
func (b *Board) CanClaimFiftyMoves() bool {
	if b.halfmoveClock >= 100 {
		return true
	}
	if b.halfmoveClock == 99 {
		for _, m := range b.GenerateLegalMoves() {
			if !b.isZeroing(m) {
				return true
			}
		}
	}
	return false
}

// IsSeventyFiveMoves reports whether the seventy-five-move rule applies: an
// automatic draw (no claim needed) once 150 halfmoves have passed without a
// capture or pawn move, provided the side to move still has a legal move.
func (b *Board) IsSeventyFiveMoves() bool {
	return b.halfmoveClock >= 150 && b.hasLegalMoves()
}

// CanClaimDraw reports whether the fifty-move rule or threefold repetition
// give the side to move grounds to claim a draw.
func (b *Board) CanClaimDraw() bool {
	return b.CanClaimFiftyMoves() || b.CanClaimThreefoldRepetition()
}

// HasInsufficientMaterial reports whether color alone could never deliver
// checkmate with the material currently on the board: a lone king; a king and
// a single knight while the opponent has nothing but king and queens; or
// bishops all on one square colour while no pawns or knights are on the board.
// Only the knight and bishop cases look at the opponent's pieces; see
// IsInsufficientMaterial for the combined draw condition.
func (b *Board) HasInsufficientMaterial(c Color) bool {
	occ := b.occupiedCo[c]
	if occ&(b.pawns|b.rooks|b.queens) != 0 {
		return false
	}
	if occ&b.knights != 0 {
		theirNonKingNonQueen := b.occupiedCo[c.Other()] &^ b.kings &^ b.queens
		return occ.PopCount() <= 2 && theirNonKingNonQueen == 0
	}
	if occ&b.bishops != 0 {
		sameColor := b.bishops&darkSquares == 0 || b.bishops&lightSquares == 0
		return sameColor && b.pawns == 0 && b.knights == 0
	}
	return true
}

// IsInsufficientMaterial reports whether neither side has enough material to
// checkmate, an automatic draw.
func (b *Board) IsInsufficientMaterial() bool {
	return b.HasInsufficientMaterial(White) && b.HasInsufficientMaterial(Black)
}

// IsCheckmate reports whether the side to move is checkmated.
func (b *Board) IsCheckmate() bool { return b.InCheck() && !b.hasLegalMoves() }

// IsStalemate reports whether the side to move has no legal move but is not
// in check.
func (b *Board) IsStalemate() bool { return !b.InCheck() && !b.hasLegalMoves() }

// Termination names why a game ended.
type Termination int

const (
	Checkmate Termination = iota
	Stalemate
	InsufficientMaterial
	SeventyFiveMoves
	FivefoldRepetition
	FiftyMoves
	ThreefoldRepetition
)

func (t Termination) String() string {
	switch t {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case SeventyFiveMoves:
		return "seventy-five move rule"
	case FivefoldRepetition:
		return "fivefold repetition"
	case FiftyMoves:
		return "fifty move rule (claimed)"
	case ThreefoldRepetition:
		return "threefold repetition (claimed)"
	default:
		return "unknown"
	}
}

// Outcome describes how and to whom a finished game ended. Winner is nil for
// a draw.
type Outcome struct {
	Termination Termination
	Winner      *Color
}

// Result renders the outcome in PGN's "1-0"/"0-1"/"1/2-1/2" convention.
func (o Outcome) Result() string {
	if o.Winner == nil {
		return "1/2-1/2"
	}
	if *o.Winner == White {
		return "1-0"
	}
	return "0-1"
}

// Outcome reports why the game is over, or nil if it isn't. claimDraw
// controls whether the fifty-move rule and threefold repetition end the game
// (as if a player claimed the draw) or only the automatic seventy-five-move
// and fivefold-repetition rules apply.
func (b *Board) Outcome(claimDraw bool) *Outcome {
	if b.IsCheckmate() {
		winner := b.turn.Other()
		return &Outcome{Termination: Checkmate, Winner: &winner}
	}
	if b.IsInsufficientMaterial() {
		return &Outcome{Termination: InsufficientMaterial}
	}
	if b.IsStalemate() {
		return &Outcome{Termination: Stalemate}
	}
	if b.IsSeventyFiveMoves() {
		return &Outcome{Termination: SeventyFiveMoves}
	}
	if b.IsFivefoldRepetition() {
		return &Outcome{Termination: FivefoldRepetition}
	}
	if claimDraw {
		if b.CanClaimFiftyMoves() {
			return &Outcome{Termination: FiftyMoves}
		}
		if b.CanClaimThreefoldRepetition() {
			return &Outcome{Termination: ThreefoldRepetition}
		}
	}
	return nil
}

// IsGameOver reports whether Outcome(claimDraw) is non-nil.
func (b *Board) IsGameOver(claimDraw bool) bool { return b.Outcome(claimDraw) != nil }

// Result returns the PGN result string for the current position, "*" if the
// game isn't over.
func (b *Board) Result(claimDraw bool) string {
	if o := b.Outcome(claimDraw); o != nil {
		return o.Result()
	}
	return "*"
}
