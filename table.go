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
	"math/rand/v2"
	"os"
	"time"
)

// log2Tab[n] is floor(log2(n)). Entry 0 is a filler, callers must not pass 0.
var log2Tab = [128]int8{-1, 0, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 3, 3, 3, 3, 4, 4, 4, 4, 4, 4,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 6, 6,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6}

// log2Floor returns floor(log2(n)) for n > 0, by table lookup one byte at a
// time.
func log2Floor(n uint32) int {
	if n <= 127 {
		return int(log2Tab[n])
	}
	if n>>8 <= 127 {
		return int(log2Tab[n>>8]) + 8
	}
	if n>>16 <= 127 {
		return int(log2Tab[n>>16]) + 16
	}
	if n>>24 <= 127 {
		return int(log2Tab[n>>24]) + 24
	}
	return 31
}

// positions holds, for each chunk size order, two byte offsets in
// [0, 2^(order+1)). Orders below 3 stay 0: an 8-byte window already covers a
// chunk that small. The table is immutable once built; [Hasher.hash128Plus]
// reads it for the life of the Hasher.
type positions [32][2]uint32

func mask(n int) uint32 { return 1<<uint(n) - 1 }

// makePositions builds a sample position table from a random source returning
// values in [0, max].
func makePositions(src func() uint32, max uint32) *positions {
	var t positions

	// number of random bits delivered by src: ceil(log2(max))
	rml := log2Floor(max)
	if max&(max-1) != 0 {
		rml++
	}

	// orders 0..2 stay zero
	i := 3
	for ; i < rml && i < len(t); i++ {
		t[i][0] = src() & mask(i+1)
		t[i][1] = src() & mask(i+1)
	}

	// Orders beyond the source's own range: scale a raw draw by a lower
	// order's slot 0 entry to push bits past the source's width, then mask to
	// the order's width.
	for ; i < 31; i++ {
		for j := range t[i] {
			scale := t[i-rml][0]
			if scale == 0 {
				scale = 1
			}
			t[i][j] = (src() * scale) & mask(i+1)
		}
	}
	return &t
}

// defaultSource seeds a PCG generator from the pid and the wall clock folded
// through the CRC32 primitive. This is diversification, not security: it only
// makes the sampled positions differ from one process to the next.
func defaultSource() (func() uint32, uint32) {
	const max = 1<<31 - 1
	seed := crc32w(0, uint32(os.Getpid()))
	seed = crc32w(seed, uint32(time.Now().Unix()))
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	return func() uint32 { return r.Uint32() & max }, max
}
