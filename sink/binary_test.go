package sink

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/lioli/bill"
	"github.com/joshuapare/lioli/tree"
)

var standalone = bill.Options{DisableDictionary: true}

func TestBinarySink_RecordsDecodeAlone(t *testing.T) {
	out := &memRecords{}
	s, err := NewBinarySink(out, bill.Options{})
	require.NoError(t, err)

	first := alertTree("10.0.0.1", "10.0.0.2:22")
	second := alertTree("10.0.0.3", "10.0.0.4:80")
	s.Log(first)
	s.Log(second)
	require.Len(t, out.recs, 2)

	// Each record read back in its own stream, with no shared dictionary.
	for i, want := range []*tree.Tree{first, second} {
		var stream bytes.Buffer
		stream.Write(bill.Header())
		stream.Write(out.recs[i])
		stream.Write(bill.TerminatorBytes())

		got, err := bill.Decode(stream.Bytes(), standalone)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, want.Equal(got[0]), "record %d", i)
	}
}

func TestBinarySink_HonoursNoRootNode(t *testing.T) {
	s, err := NewBinarySink(Null, bill.Options{})
	require.NoError(t, err)
	assert.True(t, s.ImplicitRoot())

	s, err = NewBinarySink(Null, bill.Options{NoRootNode: true})
	require.NoError(t, err)
	assert.False(t, s.ImplicitRoot())
}

func TestBinarySink_RefusesOversizedTree(t *testing.T) {
	out := &memRecords{}
	s, err := NewBinarySink(out, bill.Options{})
	require.NoError(t, err)

	s.Log(tree.MustNew("blob").AppendText(strings.Repeat("x", 0x10000)))
	s.Log(tree.MustNew("alert").AppendText("fits"))

	assert.EqualValues(t, 1, s.Refused())
	require.Len(t, out.recs, 1)
}

func TestBinarySink_SkipsNullTree(t *testing.T) {
	out := &memRecords{}
	s, err := NewBinarySink(out, bill.Options{})
	require.NoError(t, err)
	s.Log(tree.Null())
	assert.Empty(t, out.recs)
	assert.Zero(t, s.Refused())
}

func TestBinarySink_RejectsBadOptions(t *testing.T) {
	_, err := NewBinarySink(Null, bill.Options{MaxDictEntries: 65})
	require.Error(t, err)
}

func TestBinaryFile_EveryFileIsAStream(t *testing.T) {
	base := filepath.Join(t.TempDir(), "alerts.bill")
	f := NewBinaryFile(RotatingOptions{Rotate: true, MaxLines: 2, Clock: fakeClock()})
	f.SetFileName(base)
	s, err := NewBinarySink(f, bill.Options{})
	require.NoError(t, err)

	trees := []*tree.Tree{
		alertTree("a", "b"),
		alertTree("c", "d"),
		alertTree("e", "f"),
	}
	for _, tr := range trees {
		s.Log(tr)
	}
	require.NoError(t, f.Close())

	paths := f.Paths()
	require.Len(t, paths, 2)

	var decoded []*tree.Tree
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(data, bill.Header()))
		require.True(t, bytes.HasSuffix(data, bill.TerminatorBytes()))

		got, err := bill.Decode(data, standalone)
		require.NoError(t, err)
		decoded = append(decoded, got...)
	}

	require.Len(t, decoded, len(trees))
	for i := range trees {
		assert.True(t, trees[i].Equal(decoded[i]), "tree %d", i)
	}
	assert.Equal(t, Stats{Lines: 3, Files: 2}, f.Stats())
}

func TestBinaryFile_ReopenAppendsSegment(t *testing.T) {
	base := filepath.Join(t.TempDir(), "alerts.bill")
	trees := []*tree.Tree{
		alertTree("a", "b"),
		alertTree("c", "d"),
	}

	// Two runs writing the same file.
	for _, tr := range trees {
		f := NewBinaryFile(RotatingOptions{})
		f.SetFileName(base)
		s, err := NewBinarySink(f, bill.Options{})
		require.NoError(t, err)
		s.Log(tr)
		require.NoError(t, f.Close())
	}

	data, err := os.ReadFile(base)
	require.NoError(t, err)
	got, err := bill.Decode(data, standalone)
	require.NoError(t, err)
	require.Len(t, got, len(trees))
	for i := range trees {
		assert.True(t, trees[i].Equal(got[i]), "tree %d", i)
	}
}
