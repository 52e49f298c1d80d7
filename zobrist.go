package chess

import "math/rand"

// Zobrist keys for incremental transposition hashing. Seeded with a fixed
// source so hashes are reproducible across runs (handy for perft divide
// diffing and golden-file tests), not because the values need to be secret.
var (
	zobristPiece      [15][64]uint64 // indexed by Piece (0..14), then Square
	zobristCastle     [64]uint64     // indexed by rook home square holding rights
	zobristEnPassant  [8]uint64      // indexed by file
	zobristSide       uint64
)

func init() {
	initZobrist()
}

func initZobrist() {
	r := rand.New(rand.NewSource(0xC0DE))
	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = r.Uint64()
		}
	}
	for sq := 0; sq < 64; sq++ {
		zobristCastle[sq] = r.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = r.Uint64()
	}
	zobristSide = r.Uint64()
}

// transpositionKey is the position hash used for repetition detection. It
// folds in piece placement, side to move, castling rights, and the en passant
// file if (and only if) an en passant capture is actually legal right now —
// folding in the raw ep square unconditionally would leave two positions
// differing only in a dead ep-square annotation with different hashes even
// though they're the same position for repetition purposes.
func (b *Board) transpositionKey() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		p := b.pieceAt(sq)
		if p != NoPiece {
			h ^= zobristPiece[p][sq]
		}
	}
	if b.turn == Black {
		h ^= zobristSide
	}
	rights := b.castlingRights
	for rights != 0 {
		sq := rights.PopLSB()
		h ^= zobristCastle[sq]
	}
	if b.hasLegalEnPassant() {
		h ^= zobristEnPassant[b.epSquare.File()]
	}
	return h
}
