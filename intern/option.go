package intern

import (
	"math/bits"

	"github.com/db47h/strhash"
)

type Option interface {
	set(*option)
}

type optFunc func(*option)

func (f optFunc) set(o *option) {
	f(o)
}

type option struct {
	capacity int
	hasher   *strhash.Hasher
}

const minCapacity = 16

func getOpts(opts []Option) *option {
	o := &option{capacity: minCapacity}
	for _, op := range opts {
		op.set(o)
	}
	if o.hasher == nil {
		o.hasher = strhash.Default()
	}
	return o
}

// Capacity sets the initial table capacity, rounded up to a power of two.
func Capacity(cap int) Option {
	return optFunc(func(o *option) {
		if cap < minCapacity {
			cap = minCapacity
		}
		// next power of two. Ignore 0 since cap > 0 at this point.
		b := bits.UintSize - bits.LeadingZeros(uint(cap)-1)
		o.capacity = 1 << b
	})
}

// Hasher sets the fingerprint source for the table. All lookups against a
// Table must go through the same Hasher for the life of the table.
func Hasher(h *strhash.Hasher) Option {
	if h == nil {
		panic("intern: nil Hasher")
	}
	return optFunc(func(o *option) {
		o.hasher = h
	})
}
