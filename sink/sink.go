package sink

import (
	"github.com/joshuapare/lioli/tree"
)

// Trees consumes whole trees.
type Trees interface {
	Log(t *tree.Tree)
}

// Lines consumes text records; the sink terminates each with a newline.
type Lines interface {
	LogLine(line string)
}

// Records consumes opaque binary records written back to back.
type Records interface {
	LogRecord(rec []byte)
}

// NullSink discards everything. Use the Null instance.
type NullSink struct{}

// Null is the process-wide null sink.
var Null = &NullSink{}

// Log discards t.
func (*NullSink) Log(*tree.Tree) {}

// LogLine discards line.
func (*NullSink) LogLine(string) {}

// LogRecord discards rec.
func (*NullSink) LogRecord([]byte) {}

// Close does nothing.
func (*NullSink) Close() error { return nil }

// IsNull reports whether s is a null sink.
func IsNull(s any) bool {
	_, ok := s.(*NullSink)
	return ok
}

// Valid reports whether s is a real sink: neither nil nor Null.
func Valid(s any) bool {
	return s != nil && !IsNull(s)
}
