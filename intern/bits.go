package intern

import (
	"encoding/binary"
	"math/bits"
	"unsafe"
)

const (
	empty     = 0
	setMask   = 0x80
	groupSize = 8

	loBits = 0x0101010101010101
	hiBits = 0x8080808080808080
)

// splitHash splits a 32-bit fingerprint into the probe start h1 and the
// control byte h2. The 7 bits consumed by h2 are dropped from h1 so the two
// stay uncorrelated under the power of two capacity mask.
func splitHash(hash uint32) (h1 uint32, h2 uint8) {
	return hash >> 7, uint8(hash) | setMask
}

// bitset provides match operations over a group of 8 control bytes.
// See https://graphics.stanford.edu/~seander/bithacks.html#ZeroInWord
type bitset uint64

func newBitset(c *uint8) bitset {
	b := *(*[8]uint8)(unsafe.Pointer(c))
	return bitset(binary.LittleEndian.Uint64(b[:]))
}

// matchFree matches empty slots. The table never deletes, so a clear high bit
// always means empty.
func (s bitset) matchFree() match { return (match(s) & hiBits) ^ hiBits }

// matchZero may yield false positives on any 0x0100 sequence; harmless for
// matchByte since candidates are confirmed by string comparison.
func (s bitset) matchZero() match { return (match(s) - loBits) & ^match(s) & hiBits }

// matchByte returns a non zero match if and only if s contains a byte equal to b.
func (s bitset) matchByte(b uint8) match { return (s ^ (loBits * bitset(b))).matchZero() }

type match uint64

// next returns the offset from the start of the group to the next match.
func (m *match) next() int {
	n := bits.TrailingZeros64(uint64(*m))
	// shift by an unsigned value to avoid internal checks for negative shift amounts
	*m &= ^(1 << uint(n))
	return n >> 3
}

// probe walks control byte groups quadratically over a power of two capacity.
type probe struct {
	offset int
	acc    int
	mask   int
}

func newProbe(h1 uint32, capacity int) probe {
	mask := capacity - 1
	return probe{offset: int(h1) & mask, mask: mask}
}

func (p probe) next() probe {
	p.acc += groupSize
	p.offset = (p.offset + p.acc) & p.mask
	return p
}

// backing arrays are 1 indexed, slot 0 means "not found"
func (p probe) groupIndex() int { return p.offset + 1 }
func (p probe) index(e int) int { return (p.offset+e)&p.mask + 1 }
