package chess

import "math/bits"

// Attack tables. Built once at package initialization and never mutated
// afterward; safe to share across goroutines despite the package being a
// single-threaded design (spec §5).
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacksBy [2][64]Bitboard // indexed by the pawn's own color

	// Rook/bishop rays per square, per direction, excluding the origin square.
	// Rook directions: 0=N 1=S 2=E 3=W. Bishop directions: 0=NE 1=NW 2=SE 3=SW.
	rookRay   [64][4]Bitboard
	bishopRay [64][4]Bitboard

	// Slider mask (inner squares only, edges excluded) and subset-indexed
	// attack tables, built via carry-rippler subset enumeration over the mask.
	rookMask     [64]Bitboard
	bishopMask   [64]Bitboard
	rookAttacks  [64][]Bitboard
	bishopAttacks [64][]Bitboard

	// RAY[a][b]: if a and b are aligned on a rank, file, or diagonal, the full
	// line through both; else Empty.
	rayTable [64][64]Bitboard
	// BETWEEN[a][b]: the open interval strictly between a and b if aligned.
	betweenTable [64][64]Bitboard
)

func init() {
	initLeaperAttacks()
	initRays()
	initSliderAttacks()
	initRayAndBetween()
}

func initLeaperAttacks() {
	knightOffsets := [8][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingOffsets := [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	for sq := 0; sq < 64; sq++ {
		f, r := sq%8, sq/8
		var nb, kb Bitboard
		for _, o := range knightOffsets {
			ff, rr := f+o[1], r+o[0]
			if ff >= 0 && ff < 8 && rr >= 0 && rr < 8 {
				nb = nb.Set(Square(rr*8 + ff))
			}
		}
		for _, o := range kingOffsets {
			ff, rr := f+o[1], r+o[0]
			if ff >= 0 && ff < 8 && rr >= 0 && rr < 8 {
				kb = kb.Set(Square(rr*8 + ff))
			}
		}
		knightAttacks[sq] = nb
		kingAttacks[sq] = kb

		// Pawn attacks: diagonal-forward steps, color-indexed.
		if r < 7 {
			var wb Bitboard
			if f > 0 {
				wb = wb.Set(Square((r+1)*8 + f - 1))
			}
			if f < 7 {
				wb = wb.Set(Square((r+1)*8 + f + 1))
			}
			pawnAttacksBy[White][sq] = wb
		}
		if r > 0 {
			var bb Bitboard
			if f > 0 {
				bb = bb.Set(Square((r-1)*8 + f - 1))
			}
			if f < 7 {
				bb = bb.Set(Square((r-1)*8 + f + 1))
			}
			pawnAttacksBy[Black][sq] = bb
		}
	}
}

func initRays() {
	for sq := 0; sq < 64; sq++ {
		f, r := sq%8, sq/8

		var ray Bitboard
		for rr := r + 1; rr < 8; rr++ {
			ray = ray.Set(Square(rr*8 + f))
		}
		rookRay[sq][0] = ray

		ray = 0
		for rr := r - 1; rr >= 0; rr-- {
			ray = ray.Set(Square(rr*8 + f))
		}
		rookRay[sq][1] = ray

		ray = 0
		for ff := f + 1; ff < 8; ff++ {
			ray = ray.Set(Square(r*8 + ff))
		}
		rookRay[sq][2] = ray

		ray = 0
		for ff := f - 1; ff >= 0; ff-- {
			ray = ray.Set(Square(r*8 + ff))
		}
		rookRay[sq][3] = ray

		ray = 0
		for rr, ff := r+1, f+1; rr < 8 && ff < 8; rr, ff = rr+1, ff+1 {
			ray = ray.Set(Square(rr*8 + ff))
		}
		bishopRay[sq][0] = ray

		ray = 0
		for rr, ff := r+1, f-1; rr < 8 && ff >= 0; rr, ff = rr+1, ff-1 {
			ray = ray.Set(Square(rr*8 + ff))
		}
		bishopRay[sq][1] = ray

		ray = 0
		for rr, ff := r-1, f+1; rr >= 0 && ff < 8; rr, ff = rr-1, ff+1 {
			ray = ray.Set(Square(rr*8 + ff))
		}
		bishopRay[sq][2] = ray

		ray = 0
		for rr, ff := r-1, f-1; rr >= 0 && ff >= 0; rr, ff = rr-1, ff-1 {
			ray = ray.Set(Square(rr*8 + ff))
		}
		bishopRay[sq][3] = ray
	}
}

// initSliderAttacks builds, for each square, the inner-edge-excluded occupancy
// mask and a subset -> attack-set table. Subsets are enumerated with the
// carry-rippler trick (s = (s - mask) & mask) and looked up via a software
// pdep/pext pair; the contract (spec §4.2) is only the query, so this plays
// the same role a magic-bitboard table would.
func initSliderAttacks() {
	for sq := 0; sq < 64; sq++ {
		f, r := sq%8, sq/8

		var rm Bitboard
		for rr := r + 1; rr < 7; rr++ {
			rm = rm.Set(Square(rr*8 + f))
		}
		for rr := r - 1; rr > 0; rr-- {
			rm = rm.Set(Square(rr*8 + f))
		}
		for ff := f + 1; ff < 7; ff++ {
			rm = rm.Set(Square(r*8 + ff))
		}
		for ff := f - 1; ff > 0; ff-- {
			rm = rm.Set(Square(r*8 + ff))
		}
		rookMask[sq] = rm

		var bm Bitboard
		for rr, ff := r+1, f+1; rr < 7 && ff < 7; rr, ff = rr+1, ff+1 {
			bm = bm.Set(Square(rr*8 + ff))
		}
		for rr, ff := r+1, f-1; rr < 7 && ff > 0; rr, ff = rr+1, ff-1 {
			bm = bm.Set(Square(rr*8 + ff))
		}
		for rr, ff := r-1, f+1; rr > 0 && ff < 7; rr, ff = rr-1, ff+1 {
			bm = bm.Set(Square(rr*8 + ff))
		}
		for rr, ff := r-1, f-1; rr > 0 && ff > 0; rr, ff = rr-1, ff-1 {
			bm = bm.Set(Square(rr*8 + ff))
		}
		bishopMask[sq] = bm

		rBits := rm.PopCount()
		bBits := bm.PopCount()
		rookAttacks[sq] = make([]Bitboard, 1<<uint(rBits))
		bishopAttacks[sq] = make([]Bitboard, 1<<uint(bBits))

		for idx := 0; idx < (1 << uint(rBits)); idx++ {
			occ := pdep(uint64(idx), uint64(rm))
			rookAttacks[sq][idx] = slideAttacks(Bitboard(occ), rookRay[sq], true)
		}
		for idx := 0; idx < (1 << uint(bBits)); idx++ {
			occ := pdep(uint64(idx), uint64(bm))
			bishopAttacks[sq][idx] = slideAttacks(Bitboard(occ), bishopRay[sq], false)
		}
	}
}

// rookOpposite/bishopOpposite pair each direction with the one running the
// other way along the same line (N<->S, E<->W, NE<->SW, NW<->SE).
var rookOpposite = [4]int{1, 0, 3, 2}
var bishopOpposite = [4]int{3, 2, 1, 0}

func initRayAndBetween() {
	for a := 0; a < 64; a++ {
		for d := 0; d < 4; d++ {
			full := rookRay[a][d] | rookRay[a][rookOpposite[d]] | BB(Square(a))
			t := rookRay[a][d]
			for t != 0 {
				b := t.PopLSB()
				rayTable[a][int(b)] = full
				// Squares from just past a up to (excluding) b: the ray from a
				// minus everything from b onward in the same direction, minus b.
				betweenTable[a][int(b)] = (rookRay[a][d] &^ rookRay[b][d]).Clear(b)
			}
		}
		for d := 0; d < 4; d++ {
			full := bishopRay[a][d] | bishopRay[a][bishopOpposite[d]] | BB(Square(a))
			t := bishopRay[a][d]
			for t != 0 {
				b := t.PopLSB()
				rayTable[a][int(b)] = full
				betweenTable[a][int(b)] = (bishopRay[a][d] &^ bishopRay[b][d]).Clear(b)
			}
		}
	}
}

// slideAttacks computes the classical ray+first-blocker sliding attack set for
// one piece family (the four rays of either the rook or bishop table), used
// once per square per subset while building the lookup tables above.
func slideAttacks(occ Bitboard, rays [4]Bitboard, isRook bool) Bitboard {
	var attacks Bitboard
	for d := 0; d < 4; d++ {
		ray := rays[d]
		blockers := ray & occ
		if blockers != 0 {
			var first Square
			increasing := d == 0 || d == 2
			if !isRook {
				increasing = d == 0 || d == 1
			}
			if increasing {
				first = blockers.LSB()
			} else {
				first = blockers.MSB()
			}
			var beyond Bitboard
			if isRook {
				beyond = rookRay[first][d]
			} else {
				beyond = bishopRay[first][d]
			}
			ray &^= beyond
		}
		attacks |= ray
	}
	return attacks
}

func pext(x, mask uint64) uint64 {
	var res uint64
	var idx uint
	m := mask
	for m != 0 {
		lsb := m & -m
		bit := uint(bits.TrailingZeros64(lsb))
		if (x>>bit)&1 != 0 {
			res |= 1 << idx
		}
		idx++
		m &= m - 1
	}
	return res
}

func pdep(x, mask uint64) uint64 {
	var res uint64
	var idx uint
	m := mask
	for m != 0 {
		lsb := m & -m
		bit := uint(bits.TrailingZeros64(lsb))
		if (x>>idx)&1 != 0 {
			res |= 1 << bit
		}
		idx++
		m &= m - 1
	}
	return res
}

func rookAttacksFrom(sq Square, occ Bitboard) Bitboard {
	idx := pext(uint64(occ), uint64(rookMask[sq]))
	return rookAttacks[sq][idx]
}

func bishopAttacksFrom(sq Square, occ Bitboard) Bitboard {
	idx := pext(uint64(occ), uint64(bishopMask[sq]))
	return bishopAttacks[sq][idx]
}

func queenAttacksFrom(sq Square, occ Bitboard) Bitboard {
	return rookAttacksFrom(sq, occ) | bishopAttacksFrom(sq, occ)
}

// Ray returns the full line through a and b if they are aligned on a rank,
// file, or diagonal; otherwise Empty.
func Ray(a, b Square) Bitboard {
	if a == b {
		return Empty
	}
	return rayTable[a][b]
}

// Between returns the open interval of squares strictly between a and b if
// aligned; otherwise Empty.
func Between(a, b Square) Bitboard {
	if a == b {
		return Empty
	}
	return betweenTable[a][b]
}

// attacksMask is the union of appropriate lookups for a piece of the given
// type and color sitting on sq, given the current occupancy.
func attacksMask(pt PieceType, c Color, sq Square, occ Bitboard) Bitboard {
	switch pt {
	case Pawn:
		return pawnAttacksBy[c][sq]
	case Knight:
		return knightAttacks[sq]
	case King:
		return kingAttacks[sq]
	case Bishop:
		return bishopAttacksFrom(sq, occ)
	case Rook:
		return rookAttacksFrom(sq, occ)
	case Queen:
		return queenAttacksFrom(sq, occ)
	default:
		return Empty
	}
}
