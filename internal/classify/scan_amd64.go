//go:build amd64

package classify

import "golang.org/x/sys/cpu"

// useWordScan is decided once at init based on CPU capability, the same
// gate the teacher's internal/simd package uses before dispatching to its
// AVX2/SSE4.2 assembly. We don't carry assembly forward (the retrieved
// teacher .s file was not part of the example pack), so the "fast path"
// below is a portable SWAR word scan rather than a vector instruction, but
// the capability probe is the real thing: AVX2-capable CPUs also have wide,
// well-pipelined integer ALUs, so gating the 8-byte SWAR loop on it is a
// reasonable proxy for "this core will do well with a widened loop".
var useWordScan = cpu.X86.HasAVX2 || cpu.X86.HasSSE42

func hasWordScan() bool { return useWordScan }
