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

// Package strhash computes 32-bit fingerprints for byte strings, meant as
// bucket keys for string interning tables and other string keyed containers.
//
// On CPUs with CRC32 instructions (SSE 4.2 on amd64, the ARMv8 CRC32
// extension on arm64), a [Hasher] selects a family of length specialized
// routines built on CRC32 folds. Strings of 128 bytes and more are not read
// in full: a bounded number of 8-byte windows is sampled at positions
// randomized once per Hasher, so hashing cost stops growing with string
// length and the sampled positions are not predictable from outside the
// process. Everywhere else a portable three round mix is selected instead.
//
// Hash values are deterministic within a Hasher but not stable across
// processes or architectures, and the hash is not cryptographic: it only
// diversifies table bucket placement.
package strhash

import (
	"sync"
	"unsafe"
)

// A Hasher holds a hash function family selected once at construction time.
// After New returns, a Hasher is immutable and safe for concurrent use by any
// number of goroutines without synchronization.
type Hasher struct {
	fn    func([]byte) uint32
	pos   *positions
	accel bool
}

// New probes the CPU and returns a Hasher with the matching family selected:
// the banded CRC32 dispatcher where CRC32 instructions are available, the
// portable mix otherwise. Options can force either family or inject the
// random source used to build the sample position table.
func New(opts ...Option) *Hasher {
	o := getOpts(opts)
	accel := hasCRC32()
	switch o.family {
	case familyPortable:
		accel = false
	case familyCRC32:
		accel = true
	}
	h := &Hasher{accel: accel}
	if accel {
		h.pos = makePositions(o.src, o.srcMax)
		h.fn = h.dispatch
	} else {
		h.fn = hashOrig
	}
	return h
}

// Bytes returns the fingerprint of p. The empty input hashes to 0 under both
// families.
func (h *Hasher) Bytes(p []byte) uint32 {
	if len(p) == 0 {
		return 0
	}
	return h.fn(p)
}

// String returns the fingerprint of s. The string contents are read in place,
// without copying.
func (h *Hasher) String(s string) uint32 {
	if len(s) == 0 {
		return 0
	}
	return h.fn(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// Accelerated reports whether the Hasher selected the banded CRC32 family.
func (h *Hasher) Accelerated() bool { return h.accel }

// defaultHasher is built at most once per process. Callers racing on first
// use all observe the same Hasher and the same sample positions.
var defaultHasher = sync.OnceValue(func() *Hasher { return New() })

// Default returns the process wide Hasher used by the package level [Bytes]
// and [String].
func Default() *Hasher { return defaultHasher() }

// Bytes returns the fingerprint of p using the process wide default Hasher.
func Bytes(p []byte) uint32 { return defaultHasher().Bytes(p) }

// String returns the fingerprint of s using the process wide default Hasher.
func String(s string) uint32 { return defaultHasher().String(s) }
