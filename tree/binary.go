package tree

import (
	"fmt"

	"github.com/joshuapare/lioli/dict"
	"github.com/joshuapare/lioli/internal/buf"
)

// BILL node layout. A node is
//
//	[size:2]   present iff the node has children
//	name       1 byte dictionary index, or 2 byte inline header + bytes
//	range      1, 2 or 4 bytes of (skip, length)
//	children   each encoded the same way
//
// Size prefix (15-bit body length, excluding the prefix itself):
//
//	byte 0  1lllllll   0x80 marks "has children"; low 7 bits of length
//	byte 1  llllllll   length >> 7
//
// Name field, discriminated by the top two bits of the first byte:
//
//	00iiiiii                       dictionary index i
//	01llllll llllllll name[len]    inline name, len = low6 | byte1<<6
//
// Range field, skip measured from the parent's cursor:
//
//	0sssllll                       skip <= 7,      length <= 15
//	10ssssss llllllll              skip <= 63,     length <= 255
//	11ssssss ssssssss l16le        skip <= 0x3FFF, length <= 0xFFFF
const (
	sizeFlag     = 0x80
	sizeMax      = 0x7FFF
	nameKindMask = 0xC0
	nameIndex    = 0x00
	nameInline   = 0x40
	nameIndexMax = 0x3F
	nameLenMax   = 0x3FFF

	rangeShortFlag = 0x00
	rangeMidFlag   = 0x80
	rangeLongFlag  = 0xC0
	rangeKindMask  = 0xC0

	shortSkipMax = 0x07
	shortLenMax  = 0x0F
	midSkipMax   = 0x3F
	midLenMax    = 0xFF
	longSkipMax  = 0x3FFF
	longLenMax   = 0xFFFF
)

// AppendBinary appends the BILL encoding of t's node tree to dst.
//
// When d is non-nil names are looked up in (and added to) d; a nil d writes
// every name inline. On error dst is returned unchanged in length, but names
// added to d are not rolled back; the caller owns that (see
// dict.Dictionary.Truncate).
func (t *Tree) AppendBinary(dst []byte, d *dict.Dictionary) ([]byte, error) {
	if t.Anonymous() {
		return dst, ErrAnonymous
	}
	mark := len(dst)
	out, err := t.root.appendBinary(dst, d, 0)
	if err != nil {
		return dst[:mark], err
	}
	return out, nil
}

func (n *node) appendBinary(dst []byte, d *dict.Dictionary, cursor int) ([]byte, error) {
	base := len(dst)
	if len(n.children) > 0 {
		dst = append(dst, 0, 0)
	}

	var err error
	if dst, err = appendName(dst, d, n.name); err != nil {
		return dst, err
	}
	if dst, err = appendRange(dst, n.start-cursor, n.end-n.start); err != nil {
		return dst, fmt.Errorf("%w: node %q [%d,%d)", err, n.name, n.start, n.end)
	}

	next := n.start
	for i := range n.children {
		c := &n.children[i]
		if dst, err = c.appendBinary(dst, d, next); err != nil {
			return dst, err
		}
		next = c.end
	}

	if len(n.children) > 0 {
		body := len(dst) - base - 2
		if body > sizeMax {
			return dst, fmt.Errorf("%w: node %q body %d bytes", ErrNodeTooLarge, n.name, body)
		}
		dst[base] = sizeFlag | byte(body&0x7F)
		dst[base+1] = byte(body >> 7)
	}
	return dst, nil
}

func appendName(dst []byte, d *dict.Dictionary, name string) ([]byte, error) {
	if d != nil {
		idx, res := d.Find(name)
		switch res {
		case dict.Found:
			if idx > nameIndexMax {
				return dst, fmt.Errorf("%w: %d", ErrDictionaryIndex, idx)
			}
			return append(dst, nameIndex|byte(idx)), nil
		case dict.NotFound:
			if _, res := d.Add(name); res != dict.Added {
				return dst, fmt.Errorf("%w: add %q: %s", ErrDictionaryIndex, name, res)
			}
		}
	}

	l := len(name)
	if l > nameLenMax {
		return dst, fmt.Errorf("%w: %d bytes", ErrNameTooLong, l)
	}
	dst = append(dst, nameInline|byte(l&0x3F), byte(l>>6))
	return append(dst, name...), nil
}

func appendRange(dst []byte, skip, length int) ([]byte, error) {
	switch {
	case skip < 0 || length < 0:
		return dst, ErrRangeOverflow
	case skip <= shortSkipMax && length <= shortLenMax:
		return append(dst, byte(skip<<4|length)), nil
	case skip <= midSkipMax && length <= midLenMax:
		return append(dst, rangeMidFlag|byte(skip), byte(length)), nil
	case skip <= longSkipMax && length <= longLenMax:
		return append(dst,
			rangeLongFlag|byte(skip&0x3F), byte(skip>>6),
			byte(length), byte(length>>8)), nil
	default:
		return dst, ErrRangeOverflow
	}
}

// DecodeBinary rebuilds a tree from its backing string and the node blob
// AppendBinary produced for it. d must mirror the encoder's dictionary (nil
// when the encoder wrote names inline); inline names are added to it the same
// way the encoder added them. raw is retained by the returned tree.
func DecodeBinary(raw, blob []byte, d *dict.Dictionary) (*Tree, error) {
	dec := decoder{raw: raw, blob: blob, dict: d}
	root, err := dec.node(0, 0, len(raw))
	if err != nil {
		return nil, err
	}
	if dec.pos != len(blob) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(blob)-dec.pos)
	}
	if root.start != 0 || root.end != len(raw) {
		return nil, fmt.Errorf("%w: root spans [%d,%d) of %d bytes", ErrCorrupt, root.start, root.end, len(raw))
	}
	return &Tree{raw: raw, root: root}, nil
}

type decoder struct {
	raw  []byte
	blob []byte
	pos  int
	dict *dict.Dictionary
}

func (dec *decoder) take(n int) ([]byte, error) {
	b, ok := buf.Slice(dec.blob, dec.pos, n)
	if !ok {
		return nil, fmt.Errorf("%w: truncated at offset %d", ErrCorrupt, dec.pos)
	}
	dec.pos += n
	return b, nil
}

// node decodes one node whose range must lie within [lo, hi).
func (dec *decoder) node(cursor, lo, hi int) (node, error) {
	var n node
	first, err := dec.take(1)
	if err != nil {
		return n, err
	}
	dec.pos--

	bodyEnd := -1
	if first[0]&sizeFlag != 0 {
		p, err := dec.take(2)
		if err != nil {
			return n, err
		}
		body := int(p[0]&0x7F) | int(p[1])<<7
		if !buf.Has(dec.blob, dec.pos, body) {
			return n, fmt.Errorf("%w: body of %d bytes overruns blob", ErrCorrupt, body)
		}
		bodyEnd = dec.pos + body
	}

	if n.name, err = dec.name(); err != nil {
		return n, err
	}
	skip, length, err := dec.rangeField()
	if err != nil {
		return n, err
	}
	n.start = cursor + skip
	n.end = n.start + length
	if n.start < lo || n.end > hi {
		return n, fmt.Errorf("%w: node %q [%d,%d) outside [%d,%d)", ErrCorrupt, n.name, n.start, n.end, lo, hi)
	}

	if bodyEnd < 0 {
		return n, nil
	}
	next := n.start
	for dec.pos < bodyEnd {
		c, err := dec.node(next, n.start, n.end)
		if err != nil {
			return n, err
		}
		n.children = append(n.children, c)
		next = c.end
	}
	if dec.pos != bodyEnd {
		return n, fmt.Errorf("%w: node %q children overrun its size", ErrCorrupt, n.name)
	}
	return n, nil
}

func (dec *decoder) name() (string, error) {
	b, err := dec.take(1)
	if err != nil {
		return "", err
	}
	switch b[0] & nameKindMask {
	case nameIndex:
		if dec.dict == nil {
			return "", fmt.Errorf("%w: index %d with dictionary disabled", ErrUnknownIndex, b[0])
		}
		name, ok := dec.dict.Name(dict.Index(b[0]))
		if !ok {
			return "", fmt.Errorf("%w: %d", ErrUnknownIndex, b[0])
		}
		return name, nil
	case nameInline:
		hi, err := dec.take(1)
		if err != nil {
			return "", err
		}
		l := int(b[0]&0x3F) | int(hi[0])<<6
		nb, err := dec.take(l)
		if err != nil {
			return "", err
		}
		name := string(nb)
		if !ValidName(name) {
			return "", fmt.Errorf("%w: %w: %q", ErrCorrupt, ErrInvalidName, name)
		}
		if dec.dict != nil {
			if _, res := dec.dict.Find(name); res == dict.NotFound {
				dec.dict.Add(name)
			}
		}
		return name, nil
	default:
		return "", fmt.Errorf("%w: name tag 0x%02x", ErrCorrupt, b[0])
	}
}

func (dec *decoder) rangeField() (skip, length int, err error) {
	b, err := dec.take(1)
	if err != nil {
		return 0, 0, err
	}
	switch {
	case b[0]&sizeFlag == rangeShortFlag:
		return int(b[0]>>4) & shortSkipMax, int(b[0] & shortLenMax), nil
	case b[0]&rangeKindMask == rangeMidFlag:
		l, err := dec.take(1)
		if err != nil {
			return 0, 0, err
		}
		return int(b[0] & midSkipMax), int(l[0]), nil
	default:
		rest, err := dec.take(3)
		if err != nil {
			return 0, 0, err
		}
		return int(b[0]&0x3F) | int(rest[0])<<6, int(buf.U16LE(rest[1:])), nil
	}
}
