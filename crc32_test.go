package strhash

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// crc32w and crc32d must behave like the raw hardware instructions: no
// pre/post inversion, data folded little-endian byte by byte.
func Test_crc32_primitives(t *testing.T) {
	// raw register semantics: zero accumulator and zero data stay zero
	require.Equal(t, uint32(0), crc32w(0, 0))
	require.Equal(t, uint32(0), crc32d(0, 0))

	rng := rand.New(rand.NewPCG(1, 2))
	for range 1000 {
		acc := rng.Uint32()
		w := rng.Uint64()

		// an 8-byte fold is two 4-byte folds, low word first
		require.Equal(t, crc32w(crc32w(acc, uint32(w)), uint32(w>>32)), crc32d(acc, w))

		// CRC without inversions is linear over GF(2)
		a, b := rng.Uint32(), rng.Uint32()
		v, u := rng.Uint32(), rng.Uint32()
		require.Equal(t, crc32w(a, v)^crc32w(b, u), crc32w(a^b, v^u))
	}
}

func testHasher() *Hasher {
	return New(WithCRC32(), WithSource(newTestSource(31), 1<<31-1))
}

// newTestSource returns a deterministic source delivering nbits random bits
// per draw.
func newTestSource(nbits int) func() uint32 {
	rng := rand.New(rand.NewPCG(42, 77))
	m := uint32(1)<<uint(nbits) - 1
	return func() uint32 { return rng.Uint32() & m }
}

func Test_dispatch_bands(t *testing.T) {
	h := testHasher()
	p := make([]byte, 200)
	for i := range p {
		p[i] = byte(i*7 + 3)
	}
	for _, n := range []int{1, 2, 3, 4, 7, 8, 15, 16, 31, 127, 128, 200} {
		s := p[:n]
		var want uint32
		switch {
		case n < 4:
			want = hash1to4(s)
		case n < 16:
			want = hash4to16(s)
		case n < 128:
			want = hash16to128(s)
		default:
			want = h.hash128Plus(s)
		}
		require.Equal(t, want, h.Bytes(s), "len %d", n)
	}
}

// Below 4 bytes the banded family uses the same three round mix as the
// portable routine, so the two agree there.
func Test_shortBandMatchesPortable(t *testing.T) {
	for _, s := range []string{"a", "b", "ab", "ba", "abc", "\x00", "\x00\x00\x00"} {
		require.Equal(t, hashOrig([]byte(s)), hash1to4([]byte(s)), "%q", s)
	}
}

func Test_hash1to4_distinct(t *testing.T) {
	require.NotEqual(t, hash1to4([]byte("a")), hash1to4([]byte("b")))
}

// Every byte of a short or medium string must be read: flipping any byte
// changes the hash.
func Test_coverage_below128(t *testing.T) {
	h := testHasher()
	base := make([]byte, 127)
	for i := range base {
		base[i] = byte(i*7 + 3)
	}
	for n := 1; n < 128; n++ {
		s := append([]byte(nil), base[:n]...)
		orig := h.Bytes(s)
		for i := range s {
			s[i] ^= 0x5a
			require.NotEqual(t, orig, h.Bytes(s), "len %d byte %d not covered", n, i)
			s[i] ^= 0x5a
		}
		require.Equal(t, orig, h.Bytes(s))
	}
}
