package pipeline

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports streaming progress of an embedding run. The
// corpus is consumed as a stream, so the total document count is unknown
// up front and no percentage is reported.
type ProgressTracker struct {
	writer         io.Writer
	documents      int
	chunks         int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
// writer: where to write progress output (typically os.Stderr)
// reportInterval: report progress every N documents
func NewProgressTracker(writer io.Writer, reportInterval int) *ProgressTracker {
	if reportInterval <= 0 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.documents = 0
	p.chunks = 0
	p.lastReported = 0
}

// Increment records documents and chunks flushed by one batch.
func (p *ProgressTracker) Increment(documents, chunks int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.documents += documents
	p.chunks += chunks

	// Report if we've crossed a report interval
	if p.documents-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.documents
	}
}

// Finish prints final progress and a trailing newline.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.documents) / elapsed.Seconds()

	fmt.Fprintf(p.writer, "\rProcessed: %d documents, %d chunks - %.1f documents/s",
		p.documents, p.chunks, rate)
}
