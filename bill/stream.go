package bill

import (
	"fmt"
	"io"

	"github.com/joshuapare/lioli/dict"
	"github.com/joshuapare/lioli/internal/buf"
	"github.com/joshuapare/lioli/tree"
)

// Stream accumulates a BILL stream in memory.
//
// The caller frames the stream explicitly: WriteHeader, any number of Write
// calls, WriteTerminator. Between independent segments ResetDict starts a
// fresh dictionary generation; the reader must reset at the same point.
type Stream struct {
	buf          []byte
	scratch      []byte
	dict         *dict.Dictionary
	useDict      bool
	implicitRoot bool
	records      int
}

// NewStream returns an empty stream configured by opts.
func NewStream(opts Options) (*Stream, error) {
	d, err := opts.dictionary()
	if err != nil {
		return nil, err
	}
	return &Stream{
		dict:         d,
		useDict:      !opts.DisableDictionary,
		implicitRoot: !opts.NoRootNode,
	}, nil
}

// WriteHeader appends the magic and version.
func (s *Stream) WriteHeader() {
	s.buf = append(s.buf, Magic...)
	s.buf = append(s.buf, Version...)
}

// WriteTerminator appends the end-of-stream sentinel.
func (s *Stream) WriteTerminator() {
	s.buf = buf.AppendUvarint(s.buf, Terminator)
}

// Write appends one record for t.
//
// A tree that cannot be encoded (a range, name or node size beyond what the
// format can express) is refused: Write returns an error wrapping one of
// ErrRangeOverflow, ErrNameTooLong or ErrNodeTooLarge and leaves both the
// stream bytes and the dictionary as they were. Write panics when t is
// anonymous.
func (s *Stream) Write(t *tree.Tree) error {
	if t.Anonymous() {
		panic(tree.ErrAnonymous)
	}

	var d *dict.Dictionary
	if s.useDict {
		d = s.dict
	}
	dictMark := s.dict.Len()

	blob, err := t.AppendBinary(s.scratch[:0], d)
	if err != nil {
		s.dict.Truncate(dictMark)
		return fmt.Errorf("bill: record %d: %w", s.records, err)
	}
	s.scratch = blob

	raw := t.Raw()
	s.buf = buf.AppendUvarint(s.buf, uint64(len(raw)))
	s.buf = append(s.buf, raw...)
	s.buf = buf.AppendUvarint(s.buf, uint64(len(blob)))
	s.buf = append(s.buf, blob...)
	s.records++
	return nil
}

// ResetDict empties the dictionary.
func (s *Stream) ResetDict() { s.dict.Reset() }

// SetNoRootNode records that producers build the "$" wrapper themselves.
func (s *Stream) SetNoRootNode() { s.implicitRoot = false }

// ImplicitRoot reports whether builders feeding this stream are expected to
// wrap records in a "$" node on the producer's behalf.
func (s *Stream) ImplicitRoot() bool { return s.implicitRoot }

// DisableDictionary makes every later record write names inline.
func (s *Stream) DisableDictionary() { s.useDict = false }

// DictionaryEnabled reports whether names are looked up in the dictionary.
func (s *Stream) DictionaryEnabled() bool { return s.useDict }

// DictNames returns the current dictionary contents in index order.
func (s *Stream) DictNames() []string { return s.dict.Names() }

// Records returns the number of records written since creation.
func (s *Stream) Records() int { return s.records }

// Len returns the number of buffered bytes.
func (s *Stream) Len() int { return len(s.buf) }

// Bytes returns the buffered bytes without consuming them.
func (s *Stream) Bytes() []byte { return s.buf }

// Take returns the buffered bytes and empties the buffer. The dictionary is
// kept, so the next bytes continue the same stream.
func (s *Stream) Take() []byte {
	out := s.buf
	s.buf = nil
	return out
}

// WriteTo writes the buffered bytes to w and empties the buffer.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.buf)
	s.buf = s.buf[n:]
	if len(s.buf) == 0 {
		s.buf = nil
	}
	return int64(n), err
}
