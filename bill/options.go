package bill

import (
	"fmt"

	"github.com/joshuapare/lioli/dict"
)

// Options configures a Stream or Decoder. The zero value is the default:
// a 64-entry dictionary, dictionary enabled, implicit root node.
type Options struct {
	// MaxDictEntries is the dictionary capacity. 0 means
	// DefaultMaxDictEntries; values above dict.MaxEncodableEntries are
	// rejected.
	MaxDictEntries int

	// DisableDictionary writes every node name inline. A decoder must be
	// given the same setting as the stream it reads.
	DisableDictionary bool

	// NoRootNode records that the producer builds the outer "$" wrapper
	// itself. It does not change the wire; builders consult it through
	// Stream.ImplicitRoot.
	NoRootNode bool
}

func (o Options) dictionary() (*dict.Dictionary, error) {
	n := o.MaxDictEntries
	if n == 0 {
		n = DefaultMaxDictEntries
	}
	if n < 0 || n > dict.MaxEncodableEntries {
		return nil, fmt.Errorf("%w: %d", ErrDictionaryTooLarge, n)
	}
	return dict.New(n), nil
}
