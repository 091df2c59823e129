package common

import (
	"bytes"
	"testing"
)

func BenchmarkWriteBytes(b *testing.B) {
	payload := []byte("test_key_1234567890")
	var buf bytes.Buffer
	buf.Grow(len(payload) + 8)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := WriteBytes(&buf, payload); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadBytes(b *testing.B) {
	payload := []byte("test_key_1234567890")
	var buf bytes.Buffer
	_ = WriteBytes(&buf, payload)
	data := buf.Bytes()
	reader := bytes.NewReader(data)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		reader.Reset(data)
		if _, err := ReadBytes(reader); err != nil {
			b.Fatal(err)
		}
	}
}
