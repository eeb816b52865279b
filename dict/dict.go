// Package dict implements the bounded, insertion-ordered name dictionary a
// BILL stream uses to shorten repeated node names.
//
// A Dictionary maps a name to the index it was inserted at. Once it holds
// Cap() names it reports Overflow for every unknown name and the encoder
// falls back to writing names inline. A Dictionary belongs to exactly one
// stream; Reset starts a new generation whose indices restart at 0.
//
// Dictionaries are not safe for concurrent use.
package dict

const (
	// DefaultMaxEntries is the capacity used by streams unless configured.
	DefaultMaxEntries = 64

	// MaxEncodableEntries is the largest capacity whose indices all fit the
	// 6-bit index form of the BILL name field.
	MaxEncodableEntries = 64
)

// Index is the position of a name in a Dictionary.
type Index uint16

// Result classifies the outcome of Find and Add.
type Result int

const (
	// Found means Find located the name; the returned Index is valid.
	Found Result = iota
	// NotFound means the name is absent and there is room to add it.
	NotFound
	// Overflow means the name is absent (Find) or cannot be added (Add)
	// because the dictionary is full.
	Overflow
	// Added means Add inserted the name; the returned Index is valid.
	Added
	// Duplicate means Add was called with a name already present.
	Duplicate
)

func (r Result) String() string {
	switch r {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case Overflow:
		return "overflow"
	case Added:
		return "added"
	case Duplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Dictionary is a bounded insertion-ordered map from name to Index.
type Dictionary struct {
	max   int
	index map[string]Index
	names []string // insertion order; names[i] has Index i
}

// New returns an empty Dictionary holding at most maxEntries names.
// A non-positive maxEntries yields a dictionary that always overflows.
func New(maxEntries int) *Dictionary {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Dictionary{
		max:   maxEntries,
		index: make(map[string]Index, maxEntries),
		names: make([]string, 0, maxEntries),
	}
}

// Find looks up name.
func (d *Dictionary) Find(name string) (Index, Result) {
	if i, ok := d.index[name]; ok {
		return i, Found
	}
	if len(d.names) < d.max {
		return 0, NotFound
	}
	return 0, Overflow
}

// Add inserts name at the next index. Overflow is checked before
// duplication, matching the order a full dictionary is consulted in.
func (d *Dictionary) Add(name string) (Index, Result) {
	if len(d.names) >= d.max {
		return 0, Overflow
	}
	if _, ok := d.index[name]; ok {
		return 0, Duplicate
	}
	i := Index(len(d.names))
	d.index[name] = i
	d.names = append(d.names, name)
	return i, Added
}

// Name returns the name stored at index i.
func (d *Dictionary) Name(i Index) (string, bool) {
	if int(i) >= len(d.names) {
		return "", false
	}
	return d.names[i], true
}

// Len returns the number of names held.
func (d *Dictionary) Len() int { return len(d.names) }

// Cap returns the maximum number of names the dictionary can hold.
func (d *Dictionary) Cap() int { return d.max }

// Names returns the names in insertion order. The slice is a copy.
func (d *Dictionary) Names() []string {
	return append([]string(nil), d.names...)
}

// Reset empties the dictionary without changing its capacity.
func (d *Dictionary) Reset() {
	clear(d.index)
	d.names = d.names[:0]
}

// Truncate drops every name added after the dictionary held n names.
// It is how an encoder rolls back a record it failed to emit.
func (d *Dictionary) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(d.names) {
		return
	}
	for _, name := range d.names[n:] {
		delete(d.index, name)
	}
	d.names = d.names[:n]
}
