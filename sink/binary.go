package sink

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/joshuapare/lioli/bill"
	"github.com/joshuapare/lioli/internal/logger"
	"github.com/joshuapare/lioli/tree"
)

// BinarySink encodes each tree as one BILL record and hands it to a Records
// sink.
//
// Records may land in different files once the destination rotates, so
// the stream is written without a dictionary: every record decodes on its
// own. Pair it with NewBinaryFile so each file carries the BILL header and
// terminator.
type BinarySink struct {
	mu      sync.Mutex
	out     Records
	stream  *bill.Stream
	refused atomic.Uint64
}

// NewBinarySink returns a sink writing records into out. opts.NoRootNode is
// honoured; the dictionary is always disabled.
func NewBinarySink(out Records, opts bill.Options) (*BinarySink, error) {
	opts.DisableDictionary = true
	s, err := bill.NewStream(opts)
	if err != nil {
		return nil, fmt.Errorf("binary sink: %w", err)
	}
	return &BinarySink{out: out, stream: s}, nil
}

// NewBinaryFile returns a rotating file framed as a BILL stream: every file
// starts with the header and ends with the terminator.
func NewBinaryFile(opts RotatingOptions) *RotatingFile {
	opts.Binary = true
	opts.Header = bill.Header()
	opts.Trailer = bill.TerminatorBytes()
	return NewRotatingFile(opts)
}

// Log encodes t and writes the record. Trees the format cannot express are
// dropped and counted; the null tree is skipped.
func (s *BinarySink) Log(t *tree.Tree) {
	if t.IsNull() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.stream.Write(t); err != nil {
		s.refused.Add(1)
		logger.Warn("tree refused by binary sink", "tree", t.Name(), "error", err)
		return
	}
	s.out.LogRecord(s.stream.Take())
}

// ImplicitRoot reports whether producers should expect the sink to wrap
// their records in a "$" node.
func (s *BinarySink) ImplicitRoot() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream.ImplicitRoot()
}

// Refused returns the number of trees dropped because they could not be
// encoded.
func (s *BinarySink) Refused() uint64 { return s.refused.Load() }
