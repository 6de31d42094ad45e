package loader

import (
	"sync"
	"time"
)

// percentMultiplier converts a ratio to a percentage (0-100).
const percentMultiplier = 100

// Progress tracks the progress of a chunked seed-value import,
// updated after each processed chunk of rows.
type Progress struct {
	TotalRows       int
	ProcessedRows   int
	TotalChunks     int
	ProcessedChunks int
	ChunkSize       int
	StartTime       time.Time
	LastUpdateTime  time.Time

	mu sync.RWMutex
}

// NewProgress creates a new progress tracker.
func NewProgress(totalRows, totalChunks, chunkSize int) *Progress {
	now := time.Now()
	return &Progress{
		TotalRows:      totalRows,
		TotalChunks:    totalChunks,
		ChunkSize:      chunkSize,
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// addProcessed increments the processed-rows/chunks counters. It holds
// its own lock so a Progress can be read from a concurrent goroutine
// (e.g. a TUI progress bar) while an import is still running.
func (p *Progress) addProcessed(rowsProcessed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ProcessedRows += rowsProcessed
	p.ProcessedChunks++
	p.LastUpdateTime = time.Now()
}

// PercentComplete returns the completion percentage (0-100).
func (p *Progress) PercentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.TotalRows == 0 {
		return 0
	}
	return (float64(p.ProcessedRows) / float64(p.TotalRows)) * percentMultiplier
}

// IsComplete reports whether every row has been processed.
func (p *Progress) IsComplete() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ProcessedRows >= p.TotalRows
}

// ElapsedTime returns the time elapsed since the import started.
func (p *Progress) ElapsedTime() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return time.Since(p.StartTime)
}

// Snapshot returns a copy of the current progress state, safe to hand
// to a UI goroutine.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return ProgressSnapshot{
		TotalRows:       p.TotalRows,
		ProcessedRows:   p.ProcessedRows,
		TotalChunks:     p.TotalChunks,
		ProcessedChunks: p.ProcessedChunks,
		ChunkSize:       p.ChunkSize,
		StartTime:       p.StartTime,
		LastUpdateTime:  p.LastUpdateTime,
		PercentComplete: p.percentCompleteUnsafe(),
		ElapsedTime:     time.Since(p.StartTime),
	}
}

// ProgressSnapshot is an immutable snapshot of progress state, the
// shape a TUI progress bar renders from.
type ProgressSnapshot struct {
	TotalRows       int
	ProcessedRows   int
	TotalChunks     int
	ProcessedChunks int
	ChunkSize       int
	StartTime       time.Time
	LastUpdateTime  time.Time
	PercentComplete float64
	ElapsedTime     time.Duration
}

func (p *Progress) percentCompleteUnsafe() float64 {
	if p.TotalRows == 0 {
		return 0
	}
	return (float64(p.ProcessedRows) / float64(p.TotalRows)) * percentMultiplier
}
