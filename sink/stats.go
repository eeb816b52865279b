package sink

import "sync/atomic"

// Stats is a snapshot of a sink's counters.
type Stats struct {
	Lines uint64 `json:"lines"` // records written across all files
	Files uint64 `json:"files"` // files opened
}

// Map returns the counters keyed by their exported names.
func (s Stats) Map() map[string]uint64 {
	return map[string]uint64{"lines": s.Lines, "files": s.Files}
}

// counters are monotonic for the life of the sink.
type counters struct {
	lines atomic.Uint64
	files atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{Lines: c.lines.Load(), Files: c.files.Load()}
}
