package sink

import (
	"sync"

	"github.com/joshuapare/lioli/tree"
)

// memLines collects text records in memory.
type memLines struct {
	mu    sync.Mutex
	lines []string
}

func (m *memLines) LogLine(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
}

// memRecords collects binary records in memory.
type memRecords struct {
	recs [][]byte
}

func (m *memRecords) LogRecord(rec []byte) {
	m.recs = append(m.recs, append([]byte(nil), rec...))
}

// memTrees collects trees in memory and counts Close calls.
type memTrees struct {
	trees  []*tree.Tree
	closed int
	err    error
}

func (m *memTrees) Log(t *tree.Tree) { m.trees = append(m.trees, t) }

func (m *memTrees) Close() error {
	m.closed++
	return m.err
}

func alertTree(principal, endpoint string) *tree.Tree {
	return tree.MustNew(tree.RootName).
		AppendTree(tree.MustNew("type").AppendText("scan")).
		AppendTree(tree.MustNew("principal").AppendText(principal)).
		AppendTree(tree.MustNew("endpoint").AppendText(endpoint))
}
