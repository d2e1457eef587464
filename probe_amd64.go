//go:build amd64

package strhash

import "golang.org/x/sys/cpu"

// hasCRC32 reports whether the CPU implements the CRC32 instruction set used
// by the banded family. On amd64 it ships with SSE 4.2.
func hasCRC32() bool { return cpu.X86.HasSSE42 }
