package bill

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/lioli/dict"
	"github.com/joshuapare/lioli/internal/buf"
	"github.com/joshuapare/lioli/tree"
)

// maxRecordLen bounds both the backing string and the node blob of a record.
// A root's length field is 16 bits wide, and a root's blob is at most a
// 15-bit body plus its prefix, so no encodable record exceeds it.
const maxRecordLen = 0xFFFF

// Decoder reads trees back from a BILL stream, one record at a time. It
// keeps a dictionary mirroring the writer's, so it must see every record
// of the stream in order.
type Decoder struct {
	r        *bufio.Reader
	dict     *dict.Dictionary
	useDict  bool
	records  int
	segments int
	done     bool
}

// NewDecoder returns a decoder reading from r. opts must match the options
// the stream was written with.
func NewDecoder(r io.Reader, opts Options) (*Decoder, error) {
	d, err := opts.dictionary()
	if err != nil {
		return nil, err
	}
	return &Decoder{
		r:       bufio.NewReader(r),
		dict:    d,
		useDict: !opts.DisableDictionary,
	}, nil
}

// ReadHeader consumes and checks the six header bytes.
func (d *Decoder) ReadHeader() error {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(d.r, hdr[:]); err != nil {
		return fmt.Errorf("%w: header: %w", ErrTruncated, err)
	}
	if !bytes.Equal(hdr[:4], Magic) {
		return fmt.Errorf("%w: % x", ErrBadMagic, hdr[:4])
	}
	if !bytes.Equal(hdr[4:], Version) {
		return fmt.Errorf("%w: % x", ErrUnsupportedVersion, hdr[4:])
	}
	d.segments++
	return nil
}

// Next decodes the next record. It returns io.EOF once the terminator has
// been read at the end of the input, and ErrTruncated when the input ends
// before a terminator.
//
// Log files are opened for append, so one file may hold several complete
// streams back to back. A header following a terminator starts a new
// segment with an empty dictionary; any other bytes there are reported as
// ErrTrailingData.
func (d *Decoder) Next() (*tree.Tree, error) {
	for {
		if d.done {
			return nil, io.EOF
		}

		n, err := d.length()
		if err != nil {
			return nil, err
		}
		if n != Terminator {
			return d.record(n)
		}
		if err := d.nextSegment(); err != nil {
			return nil, err
		}
	}
}

// nextSegment runs after a terminator: it either finds the end of the input
// or consumes the header of the next stream.
func (d *Decoder) nextSegment() error {
	if _, err := d.r.Peek(1); errors.Is(err, io.EOF) {
		d.done = true
		return nil
	}
	hdr, _ := d.r.Peek(HeaderSize)
	if !bytes.Equal(hdr, Header()) {
		return fmt.Errorf("%w: after %d records", ErrTrailingData, d.records)
	}
	if err := d.ReadHeader(); err != nil {
		return err
	}
	d.dict.Reset()
	return nil
}

func (d *Decoder) record(n uint64) (*tree.Tree, error) {
	raw, err := d.chunk(n)
	if err != nil {
		return nil, err
	}

	n, err = d.length()
	if err != nil {
		return nil, err
	}
	blob, err := d.chunk(n)
	if err != nil {
		return nil, err
	}

	var nd *dict.Dictionary
	if d.useDict {
		nd = d.dict
	}
	t, err := tree.DecodeBinary(raw, blob, nd)
	if err != nil {
		return nil, fmt.Errorf("bill: record %d: %w", d.records, err)
	}
	d.records++
	return t, nil
}

// ResetDict empties the dictionary, mirroring Stream.ResetDict.
func (d *Decoder) ResetDict() { d.dict.Reset() }

// DictNames returns the decoder's dictionary contents in index order.
func (d *Decoder) DictNames() []string { return d.dict.Names() }

// Records returns the number of records decoded.
func (d *Decoder) Records() int { return d.records }

// Segments returns the number of stream headers read so far.
func (d *Decoder) Segments() int { return d.segments }

func (d *Decoder) length() (uint64, error) {
	n, err := buf.ReadUvarint(d.r)
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return 0, fmt.Errorf("%w: after %d records", ErrTruncated, d.records)
	default:
		return 0, fmt.Errorf("bill: record %d: %w", d.records, err)
	}
}

func (d *Decoder) chunk(n uint64) ([]byte, error) {
	if n > maxRecordLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrRecordTooLarge, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		return nil, fmt.Errorf("%w: record %d: %w", ErrTruncated, d.records, err)
	}
	return b, nil
}

// Decode reads every record held in data: one or more complete streams,
// each a header, records and a terminator.
func Decode(data []byte, opts Options) ([]*tree.Tree, error) {
	dec, err := NewDecoder(bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}
	if err := dec.ReadHeader(); err != nil {
		return nil, err
	}
	var out []*tree.Tree
	for {
		t, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
}
