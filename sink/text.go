package sink

import (
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/lioli/tree"
)

// TextFormat selects how a TextSink renders trees.
type TextFormat string

const (
	// FormatLorth renders each tree as one Lorth record.
	FormatLorth TextFormat = "lorth"

	// FormatIndented renders the indented debug dump.
	FormatIndented TextFormat = "indented"
)

// TextSink renders trees as text records and hands them to a Lines sink.
// Record text is made valid UTF-8; invalid bytes become U+FFFD.
//
// Each tree is one record, but Lorth and indented text of a nested tree
// contain newlines. A RotatingFile behind a TextSink therefore counts
// records against MaxLines, not physical lines.
type TextSink struct {
	mu     sync.Mutex
	out    Lines
	format TextFormat
	utf8   *encoding.Decoder
}

// NewTextSink returns a sink rendering trees in format into out. An unknown
// format falls back to FormatLorth.
func NewTextSink(out Lines, format TextFormat) *TextSink {
	if format != FormatIndented {
		format = FormatLorth
	}
	return &TextSink{
		out:    out,
		format: format,
		utf8:   unicode.UTF8.NewDecoder(),
	}
}

// Log renders t and writes it as one record. The null tree is skipped.
func (s *TextSink) Log(t *tree.Tree) {
	if t.IsNull() {
		return
	}

	var rec string
	if s.format == FormatIndented {
		rec = t.String()
	} else {
		rec = t.Lorth()
	}
	rec = strings.TrimSuffix(rec, "\n")

	s.mu.Lock()
	defer s.mu.Unlock()
	if clean, err := s.utf8.String(rec); err == nil {
		rec = clean
	}
	s.out.LogLine(rec)
}

// Format returns the rendering in use.
func (s *TextSink) Format() TextFormat { return s.format }
