package classify

import "math/bits"

// CountDelimiters counts occurrences of target in data. table.countingReader
// calls it per chunk to estimate rows read for --verbose progress logging
// (mirroring internal/indexer/scanner.go's ScanProgress) — never the
// tokenizer itself, which must see every byte through the single-pass
// state machine regardless of how fast a bulk count can go.
//
// When the CPU capability probe (golang.org/x/sys/cpu, amd64 only) reports
// a wide-ALU core, bytes are scanned 8 at a time with the classic SWAR
// has-byte trick instead of one at a time.
func CountDelimiters(data []byte, target byte) int {
	if !hasWordScan() {
		return countScalar(data, target)
	}
	return countSWAR(data, target)
}

func countScalar(data []byte, target byte) int {
	n := 0
	for _, c := range data {
		if c == target {
			n++
		}
	}
	return n
}

// countSWAR counts occurrences of target using 8-byte SIMD-within-a-register
// words: broadcasting target across a uint64, XORing with the word so
// matching bytes become zero, then marking exactly the zero bytes (a
// carry-free per-byte test, so no borrow leaks into a neighbouring byte)
// and counting the marks via popcount.
func countSWAR(data []byte, target byte) int {
	n := 0
	i := 0
	broadcast := uint64(0x0101010101010101) * uint64(target)
	for ; i+8 <= len(data); i += 8 {
		word := uint64(data[i]) | uint64(data[i+1])<<8 | uint64(data[i+2])<<16 | uint64(data[i+3])<<24 |
			uint64(data[i+4])<<32 | uint64(data[i+5])<<40 | uint64(data[i+6])<<48 | uint64(data[i+7])<<56
		xored := word ^ broadcast
		zeros := ^(((xored & 0x7F7F7F7F7F7F7F7F) + 0x7F7F7F7F7F7F7F7F) | xored | 0x7F7F7F7F7F7F7F7F)
		n += bits.OnesCount64(zeros)
	}
	n += countScalar(data[i:], target)
	return n
}
