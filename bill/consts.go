// Package bill implements BILL, the binary stream format for LioLi trees.
//
// A stream is
//
//	"BILL" 0x00 0x01                      header, format version 1
//	{ uvarint(len(raw)) raw
//	  uvarint(len(blob)) blob }*          one record per tree
//	uvarint(2^64-1)                       terminator (ten bytes)
//
// where blob is the tree's node encoding (see tree.Tree.AppendBinary)
// against a name dictionary shared by every record of the stream.
//
// Stream writes a stream into memory; Decoder reads one back record by
// record. Neither is safe for concurrent use.
package bill

import (
	"math"

	"github.com/joshuapare/lioli/dict"
)

var (
	// Magic is the four-byte signature at the start of every stream.
	Magic = []byte{'B', 'I', 'L', 'L'}

	// Version is the two-byte format version that follows Magic.
	Version = []byte{0x00, 0x01}
)

const (
	// HeaderSize is the size of Magic plus Version.
	HeaderSize = 6

	// Terminator is the record-length value that ends a stream. No backing
	// string can be this long, so it never collides with a record.
	Terminator uint64 = math.MaxUint64

	// TerminatorSize is the encoded length of Terminator.
	TerminatorSize = 10

	// DefaultMaxDictEntries is the dictionary capacity used when Options
	// leaves it unset.
	DefaultMaxDictEntries = dict.DefaultMaxEntries
)

// Header returns a fresh copy of the six header bytes.
func Header() []byte {
	return append(append(make([]byte, 0, HeaderSize), Magic...), Version...)
}

// TerminatorBytes returns a fresh copy of the encoded terminator.
func TerminatorBytes() []byte {
	return []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
}
