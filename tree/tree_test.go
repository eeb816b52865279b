package tree

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	valid := []string{"$", "a", "_", "alert", "flow_id", "x9", "_9_a", "principal"}
	invalid := []string{"", "9a", "Alert", "a-b", "a b", " a", "a\n", "$$", "$a", "é", "a.b"}

	for _, name := range valid {
		t.Run("valid/"+name, func(t *testing.T) {
			assert.True(t, ValidName(name))
			tr, err := New(name)
			require.NoError(t, err)
			assert.Equal(t, name, tr.Name())
		})
	}
	for _, name := range invalid {
		t.Run(fmt.Sprintf("invalid/%q", name), func(t *testing.T) {
			assert.False(t, ValidName(name))
			_, err := New(name)
			require.ErrorIs(t, err, ErrInvalidName)
			assert.Panics(t, func() { MustNew(name) })
		})
	}
}

func TestAppendText(t *testing.T) {
	tr := MustNew("alert").AppendText("hel").AppendText("").AppendText("lo")
	require.Equal(t, "hello", string(tr.Raw()))
	require.Equal(t, 5, tr.Root().End())
	require.Equal(t, 0, tr.Root().NumChildren())
	require.True(t, tr.Valid())
}

func TestAppendInt(t *testing.T) {
	tr := MustNew("port").AppendInt(443).AppendText("/").AppendInt(-7)
	require.Equal(t, "443/-7", string(tr.Raw()))
	require.Equal(t, tr.Len(), tr.Root().End())
}

func TestAppendTree_ShiftsDonor(t *testing.T) {
	inner := MustNew("ip").AppendText("10.0.0.1")
	donor := MustNew("principal").AppendText("[").AppendTree(inner).AppendText("]")

	root := MustNew("$").AppendText("src=")
	delta := root.Len()
	root.AppendTree(donor)

	require.Equal(t, "src=[10.0.0.1]", string(root.Raw()))
	require.True(t, root.Valid())

	child := root.Root().Child(0)
	assert.Equal(t, "principal", child.Name())
	assert.Equal(t, delta, child.Start())
	assert.Equal(t, delta+donor.Len(), child.End())
	assert.Equal(t, "[10.0.0.1]", child.Text())

	grand := child.Child(0)
	assert.Equal(t, "ip", grand.Name())
	assert.Equal(t, delta+1, grand.Start())
	assert.Equal(t, "10.0.0.1", grand.Text())

	// The donor keeps its own offsets.
	assert.Equal(t, 1, donor.Root().Child(0).Start())
}

func TestAppendTree_EmptyDonorStillAttaches(t *testing.T) {
	root := MustNew("$").AppendText("abc")
	root.AppendTree(MustNew("empty"))

	require.Equal(t, "abc", string(root.Raw()))
	require.Equal(t, 1, root.Root().NumChildren())
	c := root.Root().Child(0)
	assert.Equal(t, 3, c.Start())
	assert.Equal(t, 3, c.End())
	assert.True(t, root.Valid())
}

func TestAppendTree_AnonymousPanics(t *testing.T) {
	acc := Anonymous().AppendText("scratch")
	require.Equal(t, "scratch", string(acc.Raw()))
	require.True(t, acc.Anonymous())
	assert.PanicsWithValue(t, ErrAnonymous, func() {
		MustNew("$").AppendTree(acc)
	})
}

func TestEqualAndClone(t *testing.T) {
	build := func() *Tree {
		return MustNew("$").AppendTree(MustNew("k").AppendText("v")).AppendText("tail")
	}
	a, b := build(), build()
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())

	c := a.Clone()
	require.True(t, a.Equal(c))
	c.AppendText("x")
	require.False(t, a.Equal(c))
	require.Equal(t, "vtail", string(a.Raw()))

	// Same bytes, different structure.
	d := MustNew("$").AppendText("vtail")
	require.False(t, a.Equal(d))
	require.Equal(t, a.Hash(), d.Hash(), "hash is only the length")

	var nilTree *Tree
	require.False(t, a.Equal(nilTree))
}

func TestNullTree(t *testing.T) {
	n := Null()
	require.True(t, n.IsNull())
	require.Same(t, n, Null())

	n.AppendText("ignored").AppendInt(5).AppendTree(MustNew("x").AppendText("y"))
	require.Equal(t, 0, n.Len())
	require.Equal(t, 0, n.Root().NumChildren())
	require.False(t, MustNew("$").IsNull())
}

func TestWalk(t *testing.T) {
	root := MustNew("$").
		AppendTree(MustNew("a").AppendTree(MustNew("b").AppendText("1"))).
		AppendTree(MustNew("c").AppendText("2"))

	var seen []string
	root.Root().Walk(func(n NodeView, depth int) bool {
		seen = append(seen, fmt.Sprintf("%d:%s", depth, n.Name()))
		return true
	})
	require.Equal(t, []string{"0:$", "1:a", "2:b", "1:c"}, seen)

	seen = nil
	root.Root().Walk(func(n NodeView, depth int) bool {
		seen = append(seen, n.Name())
		return n.Name() != "a"
	})
	require.Equal(t, []string{"$", "a", "c"}, seen)
}

// randomTree builds a tree of bounded depth from random text and subtrees.
func randomTree(r *rand.Rand, name string, depth int) *Tree {
	t := MustNew(name)
	for range r.IntN(4) {
		switch {
		case depth > 0 && r.IntN(2) == 0:
			t.AppendTree(randomTree(r, fmt.Sprintf("n%d", r.IntN(10)), depth-1))
		case r.IntN(3) == 0:
			t.AppendInt(r.Int64N(100000) - 500)
		default:
			t.AppendText(randomText(r, r.IntN(12)))
		}
	}
	return t
}

func randomText(r *rand.Rand, n int) string {
	const alphabet = "abc \"\n\t\rxyz0123"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.IntN(len(alphabet))]
	}
	return string(b)
}

func checkIntegrity(t *testing.T, tr *Tree) {
	t.Helper()
	tr.Root().Walk(func(n NodeView, _ int) bool {
		require.LessOrEqual(t, 0, n.Start())
		require.LessOrEqual(t, n.Start(), n.End())
		require.LessOrEqual(t, n.End(), tr.Len())
		for _, c := range n.Children() {
			require.LessOrEqual(t, n.Start(), c.Start())
			require.LessOrEqual(t, c.End(), n.End())
		}
		return true
	})
}

func TestProperty_SubstringIntegrityAndShift(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := range 200 {
		a := randomTree(r, "$", 3)
		b := randomTree(r, "child", 3)
		checkIntegrity(t, a)
		checkIntegrity(t, b)

		before := a.Clone()
		delta := a.Len()
		a.AppendTree(b)

		require.True(t, a.Valid(), "iteration %d", i)
		checkIntegrity(t, a)
		require.Equal(t, string(before.Raw())+string(b.Raw()), string(a.Raw()))

		copied := a.Root().Child(a.Root().NumChildren() - 1)
		var orig []NodeView
		b.Root().Walk(func(n NodeView, _ int) bool { orig = append(orig, n); return true })
		k := 0
		copied.Walk(func(n NodeView, _ int) bool {
			require.Equal(t, orig[k].Name(), n.Name())
			require.Equal(t, orig[k].Start()+delta, n.Start())
			require.Equal(t, orig[k].End()+delta, n.End())
			k++
			return true
		})
		require.Equal(t, len(orig), k)

		s := randomText(r, r.IntN(8))
		a.AppendText(s)
		require.Equal(t, a.Len(), a.Root().End())
		require.Equal(t, s, string(a.Raw()[a.Len()-len(s):]))

		// A tree appended to itself gets a copy of its state before the call.
		self := a.Clone()
		selfDelta := self.Len()
		self.AppendTree(self)
		require.True(t, self.Valid(), "self append, iteration %d", i)
		checkIntegrity(t, self)
		require.Equal(t, string(a.Raw())+string(a.Raw()), string(self.Raw()))
		last := self.Root().Child(self.Root().NumChildren() - 1)
		require.Equal(t, selfDelta, last.Start())
		require.Equal(t, 2*selfDelta, last.End())
		require.Equal(t, a.Root().NumChildren(), last.NumChildren())
	}
}

func TestAppendTree_Self(t *testing.T) {
	a := MustNew("a").AppendText("ab")
	a.AppendTree(a)

	require.Equal(t, "abab", string(a.Raw()))
	require.True(t, a.Valid())
	require.Equal(t, 1, a.Root().NumChildren())
	c := a.Root().Child(0)
	assert.Equal(t, 2, c.Start())
	assert.Equal(t, 4, c.End())
	assert.Equal(t, "ab", c.Text())
	assert.Zero(t, c.NumChildren())
}
