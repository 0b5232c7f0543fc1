package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_ChildInheritsAndShadows(t *testing.T) {
	root := NewScope()
	root.Merge(map[string]any{"a": 1, "b": 2})

	child := root.NewChild()
	child.Merge(map[string]any{"b": 20, "c": 30})

	v, ok := child.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = child.Get("b")
	require.True(t, ok)
	assert.Equal(t, 20, v)

	v, ok = root.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v, "child writes must not reach the parent")

	_, ok = root.Get("c")
	assert.False(t, ok)

	assert.Equal(t, map[string]any{"a": 1, "b": 20, "c": 30}, child.Values())
}

func TestScope_MergeDoesNotRetainInput(t *testing.T) {
	data := map[string]any{"k": "v"}

	s := NewScope().NewChild()
	s.Merge(data)
	data["k"] = "changed"
	data["new"] = true

	v, _ := s.Get("k")
	assert.Equal(t, "v", v)
	_, ok := s.Get("new")
	assert.False(t, ok)

	s.Set("k", "scoped")
	assert.Equal(t, "changed", data["k"])
}

func TestScope_SiblingsAreIsolated(t *testing.T) {
	root := NewScope()
	a := root.NewChild()
	b := root.NewChild()

	a.Set("modal", "a")
	b.Set("modal", "b")

	va, _ := a.Get("modal")
	vb, _ := b.Get("modal")
	assert.Equal(t, "a", va)
	assert.Equal(t, "b", vb)
}
