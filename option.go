package strhash

type Option interface {
	set(*option)
}

type optFunc func(*option)

func (f optFunc) set(o *option) {
	f(o)
}

type family int8

const (
	familyAuto family = iota
	familyPortable
	familyCRC32
)

type option struct {
	src    func() uint32
	srcMax uint32
	family family
}

func getOpts(opts []Option) *option {
	o := &option{}
	for _, op := range opts {
		op.set(o)
	}
	if o.src == nil {
		o.src, o.srcMax = defaultSource()
	}
	return o
}

// WithSource sets the random source used to build the sample position table,
// along with the largest value the source can return. src must return values
// uniformly distributed in [0, max]. Injecting a deterministic source makes
// the ≥128 byte routine reproducible across processes.
func WithSource(src func() uint32, max uint32) Option {
	if src == nil || max == 0 {
		panic("WithSource: nil source or zero max")
	}
	return optFunc(func(o *option) {
		o.src, o.srcMax = src, max
	})
}

// WithPortable selects the portable family regardless of CPU support.
func WithPortable() Option {
	return optFunc(func(o *option) { o.family = familyPortable })
}

// WithCRC32 selects the banded CRC32 family even when the probe reports no
// CRC32 instructions. The table driven CRC32 kernel keeps results identical,
// only slower; this is mostly useful to get architecture independent hashes
// in tests.
func WithCRC32() Option {
	return optFunc(func(o *option) { o.family = familyCRC32 })
}
