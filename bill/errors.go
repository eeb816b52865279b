package bill

import (
	"errors"

	"github.com/joshuapare/lioli/tree"
)

var (
	// ErrBadMagic indicates the stream does not start with "BILL".
	ErrBadMagic = errors.New("bill: signature mismatch")

	// ErrUnsupportedVersion indicates a version other than 1.
	ErrUnsupportedVersion = errors.New("bill: unsupported format version")

	// ErrTruncated indicates the stream ended inside a record or before the
	// terminator.
	ErrTruncated = errors.New("bill: truncated stream")

	// ErrTrailingData indicates bytes after a terminator that do not start
	// another stream.
	ErrTrailingData = errors.New("bill: trailing data after terminator")

	// ErrRecordTooLarge indicates a record length the decoder refuses to
	// allocate.
	ErrRecordTooLarge = errors.New("bill: record exceeds size limit")

	// ErrDictionaryTooLarge indicates a dictionary capacity whose indices do
	// not fit the 6-bit index form.
	ErrDictionaryTooLarge = errors.New("bill: dictionary capacity exceeds 64 entries")
)

// Node encoding errors, re-exported so callers of this package need not
// import tree to classify a refused record.
var (
	ErrRangeOverflow = tree.ErrRangeOverflow
	ErrNodeTooLarge  = tree.ErrNodeTooLarge
	ErrNameTooLong   = tree.ErrNameTooLong
	ErrCorrupt       = tree.ErrCorrupt
	ErrUnknownIndex  = tree.ErrUnknownIndex
)
