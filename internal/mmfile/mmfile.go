// Package mmfile maps stream files read-only so large BILL logs can be
// decoded without copying them into the heap first.
package mmfile

import "sync"

// Mapping is a read-only view of a whole file.
type Mapping struct {
	data  []byte
	once  sync.Once
	unmap func() error
	err   error
}

// Bytes returns the file contents. The slice is invalid after Close.
func (m *Mapping) Bytes() []byte { return m.data }

// Len returns the file size.
func (m *Mapping) Len() int { return len(m.data) }

// Close releases the mapping. Calling it more than once is harmless.
func (m *Mapping) Close() error {
	m.once.Do(func() {
		if m.unmap != nil {
			m.err = m.unmap()
		}
		m.data = nil
	})
	return m.err
}
