package strhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sampledWindows returns the byte ranges hash128Plus reads for a given
// length, mirroring its offset arithmetic.
func sampledWindows(h *Hasher, n int) [][2]int {
	chunkSz := n >> 4
	order := log2Floor(uint32(chunkSz))
	pos1 := int(h.pos[order][0])
	pos2 := int(h.pos[order][1])

	var w [][2]int
	for i := 0; i < 8; i++ {
		w = append(w, [2]int{i*chunkSz + pos1, i*chunkSz + pos1 + 8})
	}
	for i := 0; i < 7; i++ {
		w = append(w, [2]int{(i+1)*chunkSz + pos2, (i+1)*chunkSz + pos2 + 8})
	}
	w = append(w, [2]int{8*chunkSz - 8 - pos2, 8*chunkSz - pos2})
	w = append(w, [2]int{0, 8}, [2]int{n - 8, n})
	return w
}

func covered(w [][2]int, i int) bool {
	for _, r := range w {
		if r[0] <= i && i < r[1] {
			return true
		}
	}
	return false
}

// All sampled windows must stay inside the buffer, for every length and every
// offset the table can produce.
func Test_hash128Plus_windowBounds(t *testing.T) {
	h := testHasher()
	for _, n := range []int{128, 129, 135, 200, 256, 1000, 4096, 65536, 1 << 20} {
		for _, r := range sampledWindows(h, n) {
			require.GreaterOrEqual(t, r[0], 0, "len %d", n)
			require.LessOrEqual(t, r[1], n, "len %d", n)
		}
	}
}

// Interior bytes that fall outside every sampled window do not contribute to
// the hash. This is the documented trade-off of the sampled routine, not a
// bug: only the 16 windows, the head and the tail are read.
func Test_hash128Plus_sampling(t *testing.T) {
	h := testHasher()
	const n = 200
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i)
	}
	orig := h.Bytes(p)
	w := sampledWindows(h, n)

	unread := -1
	for i := 8; i < n-8; i++ {
		if !covered(w, i) {
			unread = i
			break
		}
	}
	require.GreaterOrEqual(t, unread, 0, "no unsampled interior byte for this seed")

	p[unread] ^= 0xff
	require.Equal(t, orig, h.Bytes(p), "unsampled byte %d changed the hash", unread)
	p[unread] ^= 0xff

	// the extremes are always read
	for _, i := range []int{0, 3, 7, n - 8, n - 1} {
		p[i] ^= 0xff
		require.NotEqual(t, orig, h.Bytes(p), "byte %d", i)
		p[i] ^= 0xff
	}
	require.Equal(t, orig, h.Bytes(p))
}

// Two hashers built from the same source sample the same positions; hashers
// built from different sources almost surely do not hash long strings alike.
func Test_hash128Plus_seedStability(t *testing.T) {
	p := make([]byte, 1<<16)
	for i := range p {
		p[i] = byte(i * 31)
	}
	h1 := New(WithCRC32(), WithSource(newTestSource(31), 1<<31-1))
	h2 := New(WithCRC32(), WithSource(newTestSource(31), 1<<31-1))
	require.Equal(t, h1.Bytes(p), h2.Bytes(p))
	require.Equal(t, *h1.pos, *h2.pos)
}
