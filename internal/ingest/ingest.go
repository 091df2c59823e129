// Package ingest opens a path into a buffered byte stream for the
// tokenizer, dispatching on file suffix the way spec.md §4 describes:
// transparent gzip decompression, a buffer sized off the file's on-disk
// size, and separator inference from the file extension. Unlike the
// teacher's Scanner, it never memory-maps the file or parallelizes across
// goroutines — the tokenizer this project builds toward is an explicit
// single-pass, single-threaded reader (spec.md §4.C's own constraint), so
// there is nothing here for mmap or worker-pool machinery to buy.
package ingest

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrUnsupportedSource is returned for inputs ingest deliberately does not
// handle: bzip2 compression and remote URLs.
type ErrUnsupportedSource struct {
	Path string
}

func (e *ErrUnsupportedSource) Error() string {
	return fmt.Sprintf("tablon: unsupported input %q (bzip2 and remote URLs are not supported)", e.Path)
}

// Opened is a stream ready for tokenizing, plus a rough size hint the
// table orchestrator uses for progress estimation.
type Opened struct {
	Reader    *bufio.Reader
	SizeHint  int64
	closeFunc func() error
}

// Close releases the underlying file handle, if any.
func (o *Opened) Close() error {
	if o.closeFunc == nil {
		return nil
	}
	return o.closeFunc()
}

// Open dispatches on path's suffix: a plain file is wrapped in a
// bufio.Reader sized off its length; a ".gz" file is additionally wrapped
// in a gzip.Reader with a buffer sized off double the compressed length (a
// cheap stand-in for the unknown decompressed size); ".bz"/".bz2" files
// and "http://"/"ftp://" URLs are rejected outright.
func Open(path string) (*Opened, error) {
	lower := strings.ToLower(path)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "ftp://") {
		return nil, &ErrUnsupportedSource{Path: path}
	}
	if strings.HasSuffix(lower, ".bz") || strings.HasSuffix(lower, ".bz2") {
		return nil, &ErrUnsupportedSource{Path: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := stat.Size()

	if strings.HasSuffix(lower, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		bufSize := int(size * 2)
		if bufSize < bufio.MaxScanTokenSize {
			bufSize = bufio.MaxScanTokenSize
		}
		return &Opened{
			Reader:   bufio.NewReaderSize(gz, bufSize),
			SizeHint: size * 2,
			closeFunc: func() error {
				gzErr := gz.Close()
				if fErr := f.Close(); fErr != nil {
					return fErr
				}
				return gzErr
			},
		}, nil
	}

	bufSize := int(size)
	if bufSize < bufio.MaxScanTokenSize {
		bufSize = bufio.MaxScanTokenSize
	}
	return &Opened{
		Reader:    bufio.NewReaderSize(f, bufSize),
		SizeHint:  size,
		closeFunc: f.Close,
	}, nil
}

// OpenReader wraps an already-open stream (e.g. stdin) with no size hint
// and no suffix-based dispatch.
func OpenReader(r io.Reader) *Opened {
	return &Opened{Reader: bufio.NewReaderSize(r, bufio.MaxScanTokenSize)}
}

// InferSeparator maps a filename's suffix to the conventional separator
// for that format: ".csv" -> comma, ".tsv" -> tab, ".wsv" -> space
// (space-separated mode), anything else -> comma. A ".gz"/".bz"/".bz2"
// suffix is stripped first so "data.csv.gz" still infers comma.
func InferSeparator(path string) byte {
	lower := strings.ToLower(path)
	for _, ext := range []string{".gz", ".bz2", ".bz"} {
		lower = strings.TrimSuffix(lower, ext)
	}
	switch {
	case strings.HasSuffix(lower, ".tsv"):
		return '\t'
	case strings.HasSuffix(lower, ".wsv"):
		return ' '
	default:
		return ','
	}
}
