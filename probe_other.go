//go:build !amd64 && !arm64

package strhash

// No known hardware CRC32 on other architectures: the portable family is
// selected unconditionally.
func hasCRC32() bool { return false }
