package pipeline

import (
	"sync/atomic"

	"github.com/backmassage/mediacompress/internal/display"
)

// Outcome is the per-file result of a run.
type Outcome int

const (
	// Compressed: the candidate was smaller and replaced the original.
	Compressed Outcome = iota
	// Passthrough: the original was kept because the candidate was not smaller.
	Passthrough
	// Unrecognized: the file is not a supported format and was copied.
	Unrecognized
	// Failed: the codec failed and the original was copied.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Compressed:
		return "compressed"
	case Passthrough:
		return "kept original"
	case Unrecognized:
		return "unrecognized"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunStats tracks aggregate counters and byte totals across a batch run.
// Workers update it concurrently.
type RunStats struct {
	Total        atomic.Int64
	Compressed   atomic.Int64
	Passthrough  atomic.Int64
	Unrecognized atomic.Int64
	Failed       atomic.Int64
	Skipped      atomic.Int64

	TotalInputBytes  atomic.Int64
	TotalOutputBytes atomic.Int64
}

// Record counts one finished file.
func (s *RunStats) Record(o Outcome, inputBytes, outputBytes int64) {
	switch o {
	case Compressed:
		s.Compressed.Add(1)
	case Passthrough:
		s.Passthrough.Add(1)
	case Unrecognized:
		s.Unrecognized.Add(1)
	case Failed:
		s.Failed.Add(1)
	}
	s.TotalInputBytes.Add(inputBytes)
	s.TotalOutputBytes.Add(outputBytes)
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes.Load() - s.TotalOutputBytes.Load()
}

// Report snapshots the counters for display.
func (s *RunStats) Report() display.RunReport {
	return display.RunReport{
		Files:        s.Total.Load(),
		Compressed:   s.Compressed.Load(),
		Passthrough:  s.Passthrough.Load(),
		Unrecognized: s.Unrecognized.Load(),
		Failed:       s.Failed.Load(),
		Skipped:      s.Skipped.Load(),
		InputBytes:   s.TotalInputBytes.Load(),
		OutputBytes:  s.TotalOutputBytes.Load(),
	}
}
