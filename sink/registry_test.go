package sink

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/lioli/tree"
)

func TestNullSink(t *testing.T) {
	Null.Log(alertTree("a", "b"))
	Null.LogLine("x")
	Null.LogRecord([]byte{1})
	require.NoError(t, Null.Close())

	assert.True(t, IsNull(Null))
	assert.False(t, IsNull(&memLines{}))

	assert.False(t, Valid(Null))
	assert.False(t, Valid(nil))
	assert.True(t, Valid(&memLines{}))
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	reg := NewRegistry()
	a := &memTrees{}
	require.NoError(t, reg.Register("alerts", a))

	require.ErrorIs(t, reg.Register("alerts", &memTrees{}), ErrDuplicate)
	require.ErrorIs(t, reg.Register("", a), ErrEmptyName)

	got, ok := reg.Lookup("alerts")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
	assert.True(t, IsNull(reg.Resolve("missing")))
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry()
	for _, n := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, reg.Register(n, &memTrees{}))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())
}

func TestRegistry_Close(t *testing.T) {
	reg := NewRegistry()
	ok := &memTrees{}
	bad := &memTrees{err: errors.New("disk gone")}
	require.NoError(t, reg.Register("ok", ok))
	require.NoError(t, reg.Register("bad", bad))
	require.NoError(t, reg.Register("text", NewTextSink(&memLines{}, FormatLorth)))

	err := reg.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
	assert.Equal(t, 1, ok.closed)
	assert.Equal(t, 1, bad.closed)
	assert.Empty(t, reg.Names())
}

func TestResolver_ResolvesOnce(t *testing.T) {
	reg := NewRegistry()
	a := &memTrees{}
	require.NoError(t, reg.Register("alerts", a))

	r := NewResolver(reg, "alerts")
	assert.Same(t, a, r.Get())

	// A later registration change does not affect the cached sink.
	reg2 := &memTrees{}
	require.NoError(t, reg.Close())
	require.NoError(t, reg.Register("alerts", reg2))
	assert.Same(t, a, r.Get())
}

func TestResolver_UnknownNameSettlesOnNull(t *testing.T) {
	reg := NewRegistry()
	r := NewResolver(reg, "nowhere")
	assert.True(t, IsNull(r.Get()))

	// Registering later does not change an already settled resolver.
	require.NoError(t, reg.Register("nowhere", &memTrees{}))
	assert.True(t, IsNull(r.Get()))
}

func TestResolver_SetNameForgetsCache(t *testing.T) {
	reg := NewRegistry()
	a, b := &memTrees{}, &memTrees{}
	require.NoError(t, reg.Register("a", a))
	require.NoError(t, reg.Register("b", b))

	r := NewResolver(reg, "a")
	assert.Same(t, a, r.Get())
	r.SetName("b")
	assert.Equal(t, "b", r.Name())
	assert.Same(t, b, r.Get())
}

func TestResolver_ConcurrentGet(t *testing.T) {
	reg := NewRegistry()
	a := &memTrees{}
	require.NoError(t, reg.Register("alerts", a))
	r := NewResolver(reg, "alerts")

	var wg sync.WaitGroup
	got := make([]Trees, 16)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = r.Get()
		}()
	}
	wg.Wait()
	for _, s := range got {
		assert.Same(t, a, s)
	}
}

func TestResolver_DeliversTrees(t *testing.T) {
	reg := NewRegistry()
	a := &memTrees{}
	require.NoError(t, reg.Register("alerts", a))
	r := NewResolver(reg, "alerts")

	r.Get().Log(tree.MustNew("alert").AppendText("x"))
	require.Len(t, a.trees, 1)
}
