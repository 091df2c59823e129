package table

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tablon/tablon/internal/classify"
)

// countingReader wraps an io.Reader with atomically-updated byte and row
// counters, so a progress-reporting goroutine can read how much input has
// been consumed without touching anything the tokenizer itself owns (no
// shared access to the ParsedBuffer it is filling). The row count is an
// estimate: it tallies newline bytes as they stream past, via
// classify.CountDelimiters, rather than counting tokenizer rows (which
// would require synchronizing with the buffer the tokenizer is filling).
type countingReader struct {
	r    io.Reader
	n    int64
	rows int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	atomic.AddInt64(&c.n, int64(n))
	if n > 0 {
		atomic.AddInt64(&c.rows, int64(classify.CountDelimiters(p[:n], '\n')))
	}
	return n, err
}

func (c *countingReader) bytesRead() int64 { return atomic.LoadInt64(&c.n) }
func (c *countingReader) rowsRead() int64  { return atomic.LoadInt64(&c.rows) }

// progressReporter logs ingest progress once a second, the same cadence as
// the teacher's Indexer.startReporting, over logrus structured fields
// instead of a raw carriage-return status line.
type progressReporter struct {
	cr       *countingReader
	sizeHint int64
	stop     chan struct{}
	done     chan struct{}
}

func startProgress(cr *countingReader, sizeHint int64) *progressReporter {
	pr := &progressReporter{cr: cr, sizeHint: sizeHint, stop: make(chan struct{}), done: make(chan struct{})}
	go pr.run()
	return pr
}

func (pr *progressReporter) run() {
	defer close(pr.done)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-ticker.C:
			pr.report(start)
		case <-pr.stop:
			return
		}
	}
}

func (pr *progressReporter) report(start time.Time) {
	read := pr.cr.bytesRead()
	elapsed := time.Since(start)
	fields := logrus.Fields{"bytes_read": read, "rows_read": pr.cr.rowsRead()}
	if rate := float64(read) / elapsed.Seconds(); rate > 0 {
		fields["rate_bytes_per_sec"] = int64(rate)
	}
	if pr.sizeHint > 0 {
		progress := float64(read) / float64(pr.sizeHint)
		fields["progress_pct"] = int(progress * 100)
		if progress > 0 && progress < 1 {
			totalSec := elapsed.Seconds() / progress
			remaining := time.Duration((totalSec - elapsed.Seconds()) * float64(time.Second))
			if remaining > 0 {
				fields["eta"] = remaining.Round(time.Second).String()
			}
		}
	}
	logrus.WithFields(fields).Info("tablon: ingest progress")
}

// Stop ends the reporting goroutine and blocks until it has exited.
func (pr *progressReporter) Stop() {
	close(pr.stop)
	<-pr.done
}
