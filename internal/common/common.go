// Package common holds binary-IO primitives and the bloom filter shared
// across the ingestion core: a handful of fixed-width encode/decode helpers
// (used by internal/writer's snapshot codec) in the same BigEndian,
// single-read-call style the teacher's index records used, plus the bloom
// filter internal/extract repurposes as an NA/true/false fast-reject.
package common

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteUint64 writes v as 8 BigEndian bytes.
func WriteUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadUint64 reads 8 BigEndian bytes into a uint64.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// WriteBytes writes a BigEndian uint64 length prefix followed by p.
func WriteBytes(w io.Writer, p []byte) error {
	if err := WriteUint64(w, uint64(len(p))); err != nil {
		return err
	}
	_, err := w.Write(p)
	return err
}

// ReadBytes reads a length-prefixed byte slice written by WriteBytes.
func ReadBytes(r io.Reader) ([]byte, error) {
	n, err := ReadUint64(r)
	if err != nil {
		return nil, err
	}
	if n > 1<<32 {
		return nil, fmt.Errorf("common: implausible record length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteString is WriteBytes over a string, avoiding a caller-side []byte(s)
// conversion at call sites that only ever write.
func WriteString(w io.Writer, s string) error {
	return WriteBytes(w, []byte(s))
}

// ReadString is ReadBytes with a string conversion.
func ReadString(r io.Reader) (string, error) {
	b, err := ReadBytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
