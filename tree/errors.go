package tree

import "errors"

var (
	// ErrInvalidName indicates a node name outside $ and [a-z_][a-z_0-9]*.
	ErrInvalidName = errors.New("tree: invalid node name")

	// ErrAnonymous indicates an operation that needs a named root was given
	// a tree built by Anonymous.
	ErrAnonymous = errors.New("tree: tree has no root name")

	// ErrNameTooLong indicates an inline name longer than 14 bits.
	ErrNameTooLong = errors.New("tree: node name too long to encode")

	// ErrRangeOverflow indicates a node whose skip or length exceeds the
	// widest range form (14-bit skip, 16-bit length).
	ErrRangeOverflow = errors.New("tree: node range too large to encode")

	// ErrNodeTooLarge indicates a node whose encoded body exceeds 15 bits.
	ErrNodeTooLarge = errors.New("tree: encoded node exceeds size field")

	// ErrDictionaryIndex indicates a dictionary index that does not fit the
	// 6-bit index form.
	ErrDictionaryIndex = errors.New("tree: dictionary index not encodable")

	// ErrCorrupt indicates a binary node blob that does not describe a valid
	// tree over the given buffer.
	ErrCorrupt = errors.New("tree: corrupt binary node")

	// ErrUnknownIndex indicates a dictionary reference to a name the decoder
	// has not seen.
	ErrUnknownIndex = errors.New("tree: unknown dictionary index")
)
