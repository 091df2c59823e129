//go:build !amd64

package classify

// hasWordScan reports whether the widened word-at-a-time counting path is
// available on this architecture. On non-amd64 targets we always fall back
// to the scalar loop.
func hasWordScan() bool { return false }
