// Copyright (c) 2016 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package strhash

import (
	"encoding/binary"
	"hash/crc32"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// crc32w folds the 4 little-endian bytes of w into acc with raw register
// semantics: no pre or post inversion, matching the x86 CRC32 and ARMv8
// CRC32CW instructions. crc32.Update inverts the accumulator on entry and
// exit, so both inversions are cancelled here.
func crc32w(acc uint32, w uint32) uint32 {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], w)
	return ^crc32.Update(^acc, castagnoli, b[:])
}

// crc32d is crc32w for a 64-bit word, matching CRC32 with a 64-bit source
// operand and ARMv8 CRC32CX.
func crc32d(acc uint32, w uint64) uint32 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], w)
	return ^crc32.Update(^acc, castagnoli, b[:])
}

// dispatch routes p to its length band. len(p) must be at least 1: the empty
// input is handled by [Hasher.Bytes] and [Hasher.String] before any family is
// entered.
func (h *Hasher) dispatch(p []byte) uint32 {
	if n := len(p); n < 128 {
		if n >= 16 {
			return hash16to128(p)
		}
		if n >= 4 {
			return hash4to16(p)
		}
		return hash1to4(p)
	}
	return h.hash128Plus(p)
}

// hash1to4 hashes p with len(p) in [1,4): first, middle and last byte plus
// the length, mixed with the same rounds as [hashOrig]. No CRC32 fold is
// worth its setup at this size.
func hash1to4(p []byte) uint32 {
	n := len(p)
	a, h := uint32(p[0]), uint32(n)
	h ^= uint32(p[n-1])
	b := uint32(p[n>>1])
	h ^= b
	h -= rol(b, 14)

	a ^= h
	a -= rol(h, 11)
	b ^= a
	b -= rol(a, 25)
	h ^= b
	h -= rol(b, 16)
	return h
}

// hash4to16 hashes p with len(p) in [4,16): the length, then two words, one
// anchored at the start and one ending at the last byte. The words overlap
// when len(p) < 16, which is what guarantees full coverage with exactly two
// loads.
func hash4to16(p []byte) uint32 {
	var v1, v2 uint64
	if n := len(p); n >= 8 {
		v1 = load8(p, 0)
		v2 = load8(p, n-8)
	} else {
		// 4-byte loads, still folded 64 bits at a time
		v1 = uint64(load4(p, 0))
		v2 = uint64(load4(p, n-4))
	}
	h := crc32w(0, uint32(len(p)))
	h = crc32d(h, v1)
	h = crc32d(h, v2)
	return h
}

// hash16to128 hashes p with len(p) in [16,128). Two accumulators walk
// interleaved 8-byte windows in 16-byte strides so the folds do not serialize
// on a single dependency chain, then the last 16 bytes are folded
// unconditionally to cover the tail the stride loop may miss.
func hash16to128(p []byte) uint32 {
	n := len(p)
	h1 := uint64(crc32w(0, uint32(n)))
	h2 := uint64(0)

	for i := 0; i < n-16; i += 16 {
		h1 += uint64(crc32d(uint32(h1), load8(p, i)))
		h2 += uint64(crc32d(uint32(h2), load8(p, i+8)))
	}

	h1 = uint64(crc32d(uint32(h1), load8(p, n-16)))
	h2 = uint64(crc32d(uint32(h2), load8(p, n-8)))

	return crc32w(uint32(h1), uint32(h2))
}

// hash128Plus hashes p with len(p) >= 128, reading a bounded number of
// samples whatever the length. p is split into 16 chunks of len(p)/16 bytes
// and one 8-byte window is folded per chunk, at offsets drawn from the
// Hasher's sample position table for the chunk size order. The very first and
// very last 8 bytes are always folded, so only interior bytes can escape
// sampling.
func (h *Hasher) hash128Plus(p []byte) uint32 {
	n := len(p)
	chunkSz := n >> 4
	order := log2Floor(uint32(chunkSz))
	pos1 := int(h.pos[order][0])
	pos2 := int(h.pos[order][1])

	h1 := uint64(crc32w(0, uint32(n)))
	h2 := uint64(0)

	// 7 iterations advancing one chunk at a time: chunk bases 0..6 feed h1,
	// chunk bases 1..7 feed h2. The offsets are below 2*chunkSz, which keeps
	// every load inside p for n >= 128.
	base := 0
	for i := 0; i < 7; i++ {
		h1 = uint64(crc32d(uint32(h1), load8(p, base+pos1)))
		h2 = uint64(crc32d(uint32(h2), load8(p, base+chunkSz+pos2)))
		base += chunkSz
	}

	// last chunk pair: the second window is anchored backward from the end of
	// chunk 8 so it cannot reach past the sampled region.
	h1 = uint64(crc32d(uint32(h1), load8(p, base+pos1)))
	h2 = uint64(crc32d(uint32(h2), load8(p, base+chunkSz-8-pos2)))

	// the extremes are always covered
	h1 = uint64(crc32d(uint32(h1), load8(p, 0)))
	h2 = uint64(crc32d(uint32(h2), load8(p, n-8)))

	return crc32w(uint32(h1), uint32(h2))
}
