package strhash

import (
	"encoding/binary"
	"math/bits"
)

// load4 and load8 read a little-endian word starting at p[i]. The offsets
// computed by the band routines are rarely word aligned; going through
// encoding/binary keeps these reads defined on every architecture.
func load4(p []byte, i int) uint32 { return binary.LittleEndian.Uint32(p[i:]) }

func load8(p []byte, i int) uint64 { return binary.LittleEndian.Uint64(p[i:]) }

func rol(x uint32, k int) uint32 { return bits.RotateLeft32(x, k) }

// hashOrig is the portable hash: a three round xor/subtract mix over 4-byte
// words (single bytes when len(p) < 4), applied to the whole input whatever
// its length. Constants taken from the lookup3 hash by Bob Jenkins. It is the
// only routine that accepts an empty input.
func hashOrig(p []byte) uint32 {
	n := len(p)
	a, b, h := uint32(0), uint32(0), uint32(n)
	if n >= 4 { // unaligned loads
		a = load4(p, 0)
		h ^= load4(p, n-4)
		b = load4(p, (n>>1)-2)
		h ^= b
		h -= rol(b, 14)
		b += load4(p, (n>>2)-1)
	} else if n > 0 {
		a = uint32(p[0])
		h ^= uint32(p[n-1])
		b = uint32(p[n>>1])
		h ^= b
		h -= rol(b, 14)
	} else {
		return 0
	}
	a ^= h
	a -= rol(h, 11)
	b ^= a
	b -= rol(a, 25)
	h ^= b
	h -= rol(b, 16)
	return h
}
