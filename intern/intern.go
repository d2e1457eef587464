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

// Package intern provides a string interning table keyed by strhash
// fingerprints: equal strings handed to Intern resolve to a single canonical
// instance, so callers can compare them by pointer-equal headers and drop
// duplicate backing arrays.
//
// A Table is an open addressed hash set with 8-byte control groups and
// quadratic group probing. Interned strings are never evicted. A Table is not
// safe for concurrent use.
package intern

import (
	"strings"
	"unsafe"

	"github.com/db47h/strhash"
)

// Table is a string interning table. The zero value is ready to use and
// hashes with the process wide default [strhash.Hasher].
type Table struct {
	hasher   *strhash.Hasher
	meta     []uint8
	strs     []string
	capacity int
	active   int
}

func New(opts ...Option) *Table {
	var t Table
	t.Init(opts...)
	return &t
}

func (t *Table) Init(opts ...Option) {
	o := getOpts(opts)
	t.hasher = o.hasher
	t.alloc(o.capacity)
}

// Intern returns the canonical instance of s, adding a copy of s on first
// sight. The result compares equal to s.
func (t *Table) Intern(s string) string {
	if t.capacity == 0 {
		t.Init()
	}
	hash := t.hasher.String(s)
	if i := t.find(hash, s); i != 0 {
		return t.strs[i]
	}
	return t.insert(hash, strings.Clone(s))
}

// InternBytes returns the canonical instance of string(b) without converting
// b on the hit path.
func (t *Table) InternBytes(b []byte) string {
	if len(b) == 0 {
		return t.Intern("")
	}
	if t.capacity == 0 {
		t.Init()
	}
	hash := t.hasher.Bytes(b)
	// view b as a string for lookup only; insert clones it
	s := unsafe.String(unsafe.SliceData(b), len(b))
	if i := t.find(hash, s); i != 0 {
		return t.strs[i]
	}
	return t.insert(hash, strings.Clone(s))
}

// Lookup returns the canonical instance of s and true if s has been interned,
// otherwise "" and false. It never inserts.
func (t *Table) Lookup(s string) (string, bool) {
	if t.capacity == 0 {
		return "", false
	}
	if i := t.find(t.hasher.String(s), s); i != 0 {
		return t.strs[i], true
	}
	return "", false
}

// Len returns the number of interned strings.
func (t *Table) Len() int { return t.active }

// Capacity returns the current table capacity.
func (t *Table) Capacity() int { return t.capacity }

// find returns the slot index holding s, or 0 if s is not in the table.
func (t *Table) find(hash uint32, s string) int {
	h1, h2 := splitHash(hash)
	for p := newProbe(h1, t.capacity); ; p = p.next() {
		g := newBitset(&t.meta[p.groupIndex()])
		for m := g.matchByte(h2); m != 0; {
			// matchByte can yield false positives in rare edge cases, the
			// string comparison weeds them out.
			if i := p.index(m.next()); t.strs[i] == s {
				return i
			}
		}
		if g.matchFree() != 0 {
			return 0
		}
	}
}

// insert stores s, which must not be present, and returns it. Interning does
// not change hashes, so growth does not need to rehash keys with a different
// seed, only to redistribute them.
func (t *Table) insert(hash uint32, s string) string {
	// grow when fewer than 1/16th of the slots are free, so at least one
	// free slot remains post insert to terminate probe loops.
	if t.capacity-t.active <= t.capacity>>4 {
		t.grow()
	}
	h1, h2 := splitHash(hash)
	var i int
	for p := newProbe(h1, t.capacity); ; p = p.next() {
		if m := newBitset(&t.meta[p.groupIndex()]).matchFree(); m != 0 {
			i = p.index(m.next())
			break
		}
	}
	t.setH2(i, h2)
	t.strs[i] = s
	t.active++
	return s
}

func (t *Table) alloc(capacity int) {
	t.capacity = capacity
	t.strs = make([]string, capacity+1)
	// meta is 1 indexed like strs; the first groupSize-1 control bytes are
	// replicated past the end so groups can wrap around.
	t.meta = make([]uint8, capacity+1+groupSize-1)
	t.active = 0
}

func (t *Table) grow() {
	meta, strs := t.meta, t.strs
	t.alloc(t.capacity * 2)
	for i := 1; i < len(strs); i++ {
		if meta[i]&setMask != 0 {
			t.insert(t.hasher.String(strs[i]), strs[i])
		}
	}
}

func (t *Table) setH2(i int, h2 uint8) {
	t.meta[i] = h2
	if i < groupSize {
		t.meta[i+t.capacity] = h2
	}
}
