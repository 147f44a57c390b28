package internal

import (
	"sync/atomic"
	"time"
)

// ScanStats holds the running counters for one scan. Visited is the only
// state shared with the reporter while the scan runs; it increases by
// exactly one per file entry considered, whatever the classification.
type ScanStats struct {
	start   time.Time
	Visited atomic.Int64
	Matched atomic.Int64
	Skipped atomic.Int64
	Errors  atomic.Int64
}

func (s *ScanStats) Start() {
	s.start = time.Now()
}

func (s *ScanStats) Elapsed() time.Duration {
	return time.Since(s.start)
}
