package strhash_test

import (
	"fmt"

	"github.com/db47h/strhash"
)

// Hash values are only meaningful within one process, so examples check
// properties instead of printing values.
func Example() {
	h := strhash.New()

	a := h.String("hello, world")
	b := h.Bytes([]byte("hello, world"))
	fmt.Println(a == b)
	fmt.Println(h.String("") == 0)
	fmt.Println(h.String("hello, world!") == a)
	// Output:
	// true
	// true
	// false
}

// A deterministic source makes the ≥128 byte routine reproducible, e.g. to
// compare hashes computed by different workers of the same job.
func ExampleWithSource() {
	src := func() uint32 { return 12345 }
	h1 := strhash.New(strhash.WithCRC32(), strhash.WithSource(src, 1<<31-1))
	h2 := strhash.New(strhash.WithCRC32(), strhash.WithSource(src, 1<<31-1))

	long := make([]byte, 4096)
	fmt.Println(h1.Bytes(long) == h2.Bytes(long))
	// Output:
	// true
}
