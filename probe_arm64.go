//go:build arm64

package strhash

import "golang.org/x/sys/cpu"

// hasCRC32 reports whether the CPU implements the ARMv8 CRC32 extension,
// read from the hwcap auxiliary vector on Linux.
func hasCRC32() bool { return cpu.ARM64.HasCRC32 }
