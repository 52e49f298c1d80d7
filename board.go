package chess

// Board layers turn, castling rights, en passant state, and move-count
// bookkeeping on top of a BaseBoard, plus the push/pop history stack that
// makes a Board a reversible state machine rather than a single snapshot.
type Board struct {
	BaseBoard
	turn           Color
	castlingRights Bitboard // rook home squares that still carry castling rights
	epSquare       Square
	halfmoveClock  int
	fullmoveNumber int
	chess960       bool

	moveStack []Move
	stack     []boardState
}

// boardState is a full, fixed-size copy of everything push needs to undo: no
// part of it is proportional to how deep the move stack already is, so
// snapshot/restore is O(1) regardless of game length.
type boardState struct {
	pawns, knights, bishops, rooks, queens, kings Bitboard
	occupiedCo                                    [2]Bitboard
	occupied                                      Bitboard
	promoted                                      Bitboard
	pieces                                        [64]Piece
	turn                                          Color
	castlingRights                                Bitboard
	epSquare                                      Square
	halfmoveClock                                 int
	fullmoveNumber                                int
}

func (b *Board) snapshot() boardState {
	return boardState{
		pawns: b.pawns, knights: b.knights, bishops: b.bishops,
		rooks: b.rooks, queens: b.queens, kings: b.kings,
		occupiedCo: b.occupiedCo, occupied: b.occupied, promoted: b.promoted,
		pieces:         b.pieces,
		turn:           b.turn,
		castlingRights: b.castlingRights,
		epSquare:       b.epSquare,
		halfmoveClock:  b.halfmoveClock,
		fullmoveNumber: b.fullmoveNumber,
	}
}

func (b *Board) restore(s boardState) {
	b.pawns, b.knights, b.bishops = s.pawns, s.knights, s.bishops
	b.rooks, b.queens, b.kings = s.rooks, s.queens, s.kings
	b.occupiedCo = s.occupiedCo
	b.occupied = s.occupied
	b.promoted = s.promoted
	b.pieces = s.pieces
	b.turn = s.turn
	b.castlingRights = s.castlingRights
	b.epSquare = s.epSquare
	b.halfmoveClock = s.halfmoveClock
	b.fullmoveNumber = s.fullmoveNumber
}

// NewBoard returns a Board in the standard starting position.
func NewBoard() *Board {
	b, err := NewBoardFromFEN(StartFEN, false)
	if err != nil {
		panic(err) // StartFEN is a package constant; this can never fail
	}
	return b
}

// NewBoardFromFEN parses fen (an empty string means the standard starting
// position) into a new Board. chess960 selects Shredder-FEN castling-letter
// semantics and king-takes-rook castling notation.
func NewBoardFromFEN(fen string, chess960 bool) (*Board, error) {
	b := &Board{chess960: chess960, fullmoveNumber: 1, epSquare: NoSquare}
	if fen == "" {
		fen = StartFEN
	}
	if err := b.setFEN(fen); err != nil {
		return nil, err
	}
	return b, nil
}

// Turn returns the side to move.
func (b *Board) Turn() Color { return b.turn }

// EPSquare returns the square set by the last double pawn push, or NoSquare.
// Its presence doesn't guarantee a capture there is legal; see
// HasLegalEnPassant.
func (b *Board) EPSquare() Square { return b.epSquare }

// CastlingRights returns the set of rook home squares that still carry
// castling rights (a BB_CORNERS-style mask in standard chess, arbitrary
// back-rank squares in Chess960).
func (b *Board) CastlingRights() Bitboard { return b.castlingRights }

// HalfmoveClock returns the number of halfmoves since the last capture or
// pawn move, for the fifty-move rule.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the current full move number, starting at 1 and
// incrementing after Black's move.
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// IsChess960 reports whether the board uses Chess960 castling semantics.
func (b *Board) IsChess960() bool { return b.chess960 }

// SetChess960 switches the board between orthodox and Chess960 castling
// semantics and FEN castling-field conventions. It does not itself change
// castling rights or position.
func (b *Board) SetChess960(v bool) { b.chess960 = v }

// Ply returns the number of halfmoves played so far.
func (b *Board) Ply() int { return len(b.moveStack) }

// HasLegalEnPassant reports whether an en passant capture is legal right now.
func (b *Board) HasLegalEnPassant() bool { return b.hasLegalEnPassant() }

// Pieces returns a bitboard of every square holding a piece of the given
// type and color.
func (b *Board) Pieces(pt PieceType, c Color) Bitboard { return b.piecesMask(pt, c) }

// PieceAt returns the piece on sq, or NoPiece if it's empty.
func (b *Board) PieceAt(sq Square) Piece { return b.pieceAt(sq) }

// Attacks returns every square attacked (or defended) by whatever piece
// stands on sq, empty if sq itself is empty.
func (b *Board) Attacks(sq Square) Bitboard { return b.attacksMask(sq) }

// SetPieceMap replaces the board's contents wholesale, clearing the move
// stack the way SetFEN does since the resulting position may not follow
// from any of the moves already pushed.
func (b *Board) SetPieceMap(m map[Square]Piece) {
	b.setPieceMap(m)
	b.moveStack = nil
	b.stack = nil
}

// PieceMap returns every occupied square mapped to the piece standing on it.
func (b *Board) PieceMap() map[Square]Piece { return b.pieceMap() }

// ScharnaglIndex reports the Scharnagl index (0..959) of the current
// back-rank arrangement if it matches a valid Chess960 starting setup with
// both sides' pawns still on their home ranks, or ok=false if it doesn't.
func (b *Board) ScharnaglIndex() (n int, ok bool) { return b.chess960Pos() }

// Mirror returns a copy of the board flipped top-to-bottom with every
// piece's color swapped, turning White's position into Black's mirror
// image and vice versa. Move history is not carried over.
func (b *Board) Mirror() *Board {
	nb := &Board{
		BaseBoard:      b.BaseBoard,
		turn:           b.turn.Other(),
		castlingRights: b.castlingRights.FlipVertical(),
		epSquare:       mirrorSquareVertical(b.epSquare),
		halfmoveClock:  b.halfmoveClock,
		fullmoveNumber: b.fullmoveNumber,
		chess960:       b.chess960,
	}
	nb.mirrorVertical()
	return nb
}

func mirrorSquareVertical(sq Square) Square {
	if sq == NoSquare {
		return NoSquare
	}
	return NewSquare(sq.File(), 7-sq.Rank())
}

// toChess960Move normalizes a move into the internal representation push()
// expects: castling is always king-takes-own-rook internally, regardless of
// whether the caller (or a non-Chess960 game) used the two-square king hop.
func (b *Board) toChess960Move(m Move) Move {
	if m.IsNull() || m.Promotion != NoPieceType || m.Drop != NoPieceType || !b.kings.Contains(m.From) {
		return m
	}
	diff := int(m.To.File()) - int(m.From.File())
	rank := m.From.Rank()
	if diff == 2 {
		return Move{From: m.From, To: NewSquare(7, rank)}
	}
	if diff == -2 {
		return Move{From: m.From, To: NewSquare(0, rank)}
	}
	return m
}

// fromChess960Move is toChess960Move's inverse, used when recording a move
// onto the move stack: in non-Chess960 games castling is stored (and later
// displayed) as the classic two-square king hop, not king-takes-rook.
func (b *Board) fromChess960Move(m Move) Move {
	if b.chess960 || m.IsNull() || m.Drop != NoPieceType {
		return m
	}
	if !b.kings.Contains(m.From) || !b.rooks.Contains(m.To) || !b.occupiedCo[b.turn].Contains(m.To) {
		return m
	}
	rank := m.From.Rank()
	if m.To.File() < m.From.File() {
		return Move{From: m.From, To: NewSquare(2, rank)}
	}
	return Move{From: m.From, To: NewSquare(6, rank)}
}

// isZeroing reports whether m resets the fifty-move halfmove clock: any pawn
// move or any capture.
func (b *Board) isZeroing(m Move) bool {
	if m.Drop != NoPieceType {
		return false
	}
	touched := BB(m.From) | BB(m.To)
	if touched&b.pawns != 0 {
		return true
	}
	return touched&b.occupiedCo[b.turn.Other()] != 0
}

// isIrreversible reports whether m, played from the current position,
// could never be reached again by transposition once it's made: it zeroes
// the clock, removes a castling right that's currently present, or forfeits
// a currently legal en passant capture.
func (b *Board) isIrreversible(m Move) bool {
	if b.isZeroing(m) {
		return true
	}
	cr := b.cleanCastlingRights()
	if cr != 0 && (cr.Contains(m.From) || cr.Contains(m.To)) {
		return true
	}
	if cr != 0 && b.kings.Contains(m.From) && !b.promoted.Contains(m.From) {
		backrank := rankMasks[0]
		if b.turn == Black {
			backrank = rankMasks[7]
		}
		if cr&backrank != 0 {
			return true
		}
	}
	return b.hasLegalEnPassant()
}

// cleanCastlingRights recomputes which squares in castlingRights are
// actually legitimate: each must hold a rook of the right color on the back
// rank, with that color's king also present. Standard (non-Chess960) games
// are further restricted to the a/h-file rooks with the king on e1/e8.
func (b *Board) cleanCastlingRights() Bitboard {
	castling := b.castlingRights & b.rooks
	whiteCastling := castling & rankMasks[0] & b.occupiedCo[White]
	blackCastling := castling & rankMasks[7] & b.occupiedCo[Black]

	if !b.chess960 {
		whiteCastling &= BB(0) | BB(7)
		blackCastling &= BB(56) | BB(63)

		whiteKing := b.kings & b.occupiedCo[White] & rankMasks[0]
		if whiteKing == 0 || whiteKing.LSB() != 4 {
			whiteCastling = Empty
		}
		blackKing := b.kings & b.occupiedCo[Black] & rankMasks[7]
		if blackKing == 0 || blackKing.LSB() != 60 {
			blackCastling = Empty
		}
		return whiteCastling | blackCastling
	}

	if b.kings&b.occupiedCo[White]&^b.promoted&rankMasks[0] == 0 {
		whiteCastling = Empty
	}
	if b.kings&b.occupiedCo[Black]&^b.promoted&rankMasks[7] == 0 {
		blackCastling = Empty
	}
	return whiteCastling | blackCastling
}

// push applies m to the position unconditionally: it neither checks
// pseudo-legality nor legality. Callers that parse a move from SAN/UCI/XBoard
// text validate against the legal move list first; this low-level entry
// point trusts its caller, the same way a raw MakeMove routine would.
func (b *Board) push(m Move) {
	m = b.toChess960Move(m)
	state := b.snapshot()
	b.castlingRights = b.cleanCastlingRights()
	b.moveStack = append(b.moveStack, b.fromChess960Move(m))
	b.stack = append(b.stack, state)

	epSquare := b.epSquare
	b.epSquare = NoSquare

	b.halfmoveClock++
	if b.turn == Black {
		b.fullmoveNumber++
	}

	if m.IsNull() {
		b.turn = b.turn.Other()
		return
	}

	if m.Drop != NoPieceType {
		b.setPieceAt(m.To, NewPiece(m.Drop, b.turn), false)
		b.turn = b.turn.Other()
		return
	}

	if b.isZeroing(m) {
		b.halfmoveClock = 0
	}

	fromBB := BB(m.From)
	toBB := BB(m.To)

	promoted := b.promoted&fromBB != 0
	piece := b.removePieceAt(m.From)
	pieceType := piece.Type()
	captureSquare := m.To
	capturedType := b.pieceTypeAt(captureSquare)

	b.castlingRights &^= toBB | fromBB
	if pieceType == King && !promoted {
		if b.turn == White {
			b.castlingRights &^= rankMasks[0]
		} else {
			b.castlingRights &^= rankMasks[7]
		}
	} else if capturedType == King && b.promoted&toBB == 0 {
		if b.turn == White && m.To.Rank() == 7 {
			b.castlingRights &^= rankMasks[7]
		} else if b.turn == Black && m.To.Rank() == 0 {
			b.castlingRights &^= rankMasks[0]
		}
	}

	if pieceType == Pawn {
		diff := int(m.To) - int(m.From)
		switch {
		case diff == 16 && m.From.Rank() == 1:
			b.epSquare = m.From + 8
		case diff == -16 && m.From.Rank() == 6:
			b.epSquare = m.From - 8
		case m.To == epSquare && (diff == 7 || diff == 9 || diff == -7 || diff == -9) && capturedType == NoPieceType:
			down := Square(-8)
			if b.turn == Black {
				down = 8
			}
			captureSquare = epSquare + down
			capturedType = b.removePieceAt(captureSquare).Type()
		}
	}

	if m.Promotion != NoPieceType {
		promoted = true
		pieceType = m.Promotion
	}

	castling := pieceType == King && b.occupiedCo[b.turn].Contains(m.To)
	if castling {
		aSide := m.To.File() < m.From.File()
		b.removePieceAt(m.From)
		b.removePieceAt(m.To)
		rank := m.From.Rank()
		if aSide {
			b.setPieceAt(NewSquare(2, rank), NewPiece(King, b.turn), false)
			b.setPieceAt(NewSquare(3, rank), NewPiece(Rook, b.turn), false)
		} else {
			b.setPieceAt(NewSquare(6, rank), NewPiece(King, b.turn), false)
			b.setPieceAt(NewSquare(5, rank), NewPiece(Rook, b.turn), false)
		}
	} else {
		b.setPieceAt(m.To, NewPiece(pieceType, b.turn), promoted)
	}

	b.turn = b.turn.Other()
}

// Push applies m to the position. It is unchecked: pushing an illegal move
// corrupts the position, the same contract a raw MakeMove routine has.
// Callers that need validation should go through PushUCI/PushSAN, which
// check the move against the legal move list before calling this.
func (b *Board) Push(m Move) { b.push(m) }

// Pop undoes the last move and returns it.
func (b *Board) Pop() Move {
	m := b.moveStack[len(b.moveStack)-1]
	b.moveStack = b.moveStack[:len(b.moveStack)-1]
	s := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.restore(s)
	return m
}

// Peek returns the last move played without undoing it, or NullMove if the
// move stack is empty.
func (b *Board) Peek() Move {
	if len(b.moveStack) == 0 {
		return NullMove
	}
	return b.moveStack[len(b.moveStack)-1]
}

// Copy returns an independent copy of the board. stackDepth selects how much
// move history comes along: negative copies the full stack, zero copies
// none (on such a copy IsRepetition(n) reports false for every n > 1, while
// IsRepetition(1) stays true), and a positive N copies only the last N plies.
func (b *Board) Copy(stackDepth int) *Board {
	nb := &Board{
		BaseBoard:      b.BaseBoard,
		turn:           b.turn,
		castlingRights: b.castlingRights,
		epSquare:       b.epSquare,
		halfmoveClock:  b.halfmoveClock,
		fullmoveNumber: b.fullmoveNumber,
		chess960:       b.chess960,
	}
	if stackDepth == 0 {
		return nb
	}
	n := len(b.stack)
	if stackDepth > 0 && stackDepth < n {
		n = stackDepth
	}
	nb.stack = append([]boardState(nil), b.stack[len(b.stack)-n:]...)
	nb.moveStack = append([]Move(nil), b.moveStack[len(b.moveStack)-n:]...)
	return nb
}

// Equal compares piece placement, turn, castling rights, and en passant
// square; it ignores move history.
func (b *Board) Equal(o *Board) bool {
	return b.BaseBoard.Equal(&o.BaseBoard) &&
		b.turn == o.turn &&
		b.cleanCastlingRights() == o.cleanCastlingRights() &&
		b.epSquareForEquality() == o.epSquareForEquality()
}

// epSquareForEquality only counts the en passant square when a capture there
// is actually legal, so a dead ep annotation doesn't make two otherwise
// identical positions compare unequal.
func (b *Board) epSquareForEquality() Square {
	if b.hasLegalEnPassant() {
		return b.epSquare
	}
	return NoSquare
}
