package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaf struct {
	A *string
	B *int
}

type middle struct {
	Leaf  *leaf
	Flag  *bool
	Count int
}

type root struct {
	Name   *string
	Middle *middle
	Other  *leaf
}

func ptr[T any](v T) *T { return &v }

func rootGroups(name Field[string], a Field[string], b Field[int], flag Field[bool]) []Group[root] {
	return []Group[root]{
		NewGroup("Root",
			Bind("Name", name, func(r *root, v string) { r.Name = ptr(v) }),
		),
		NewGroup("Middle",
			Bind("Flag", flag, func(r *root, v bool) { Ensure(&r.Middle).Flag = ptr(v) }),
			Bind("A", a, func(r *root, v string) { Ensure(&Ensure(&r.Middle).Leaf).A = ptr(v) }),
			Bind("B", b, func(r *root, v int) { Ensure(&Ensure(&r.Middle).Leaf).B = ptr(v) }),
		),
	}
}

func TestFieldPresence(t *testing.T) {
	var absent Field[string]
	v, ok := absent.Get()
	assert.False(t, ok)
	assert.Equal(t, "", v)

	zero := Some("")
	assert.True(t, zero.Present(), "a supplied zero value is still present")

	var f Field[int]
	f.Set(3)
	assert.True(t, f.Present())
	assert.Equal(t, 3, f.Value())
}

func TestNonEmpty(t *testing.T) {
	assert.False(t, NonEmpty(Field[[]string]{}))
	assert.False(t, NonEmpty(Some([]string{})))
	assert.True(t, NonEmpty(Some([]string{"x"})))
}

func TestEnsureIsIdempotent(t *testing.T) {
	var m *middle
	first := Ensure(&m)
	first.Count = 7
	second := Ensure(&m)
	assert.Same(t, first, second)
	assert.Equal(t, 7, m.Count)
}

func TestBuildNoInputsLeavesSubRecordsNil(t *testing.T) {
	r := Build(&root{}, rootGroups(Field[string]{}, Field[string]{}, Field[int]{}, Field[bool]{})...)
	assert.Nil(t, r.Name)
	assert.Nil(t, r.Middle)
	assert.Nil(t, r.Other)
}

func TestBuildCreatesOnlyTouchedLevels(t *testing.T) {
	r := Build(&root{}, rootGroups(Field[string]{}, Field[string]{}, Field[int]{}, Some(false))...)
	require.NotNil(t, r.Middle)
	require.NotNil(t, r.Middle.Flag)
	assert.False(t, *r.Middle.Flag)
	assert.Nil(t, r.Middle.Leaf, "leaf has no supplied descendants")
	assert.Nil(t, r.Name)
}

func TestBuildSharesNestedNodesAcrossDepths(t *testing.T) {
	r := Build(&root{}, rootGroups(Some("n"), Some("a"), Some(2), Some(true))...)
	require.NotNil(t, r.Middle)
	require.NotNil(t, r.Middle.Leaf)
	assert.Equal(t, "n", *r.Name)
	assert.Equal(t, "a", *r.Middle.Leaf.A)
	assert.Equal(t, 2, *r.Middle.Leaf.B)
	assert.True(t, *r.Middle.Flag)
}

func TestBuildLeavesUnsuppliedSiblingsAtZero(t *testing.T) {
	r := Build(&root{}, rootGroups(Field[string]{}, Field[string]{}, Some(5), Field[bool]{})...)
	require.NotNil(t, r.Middle.Leaf)
	assert.Nil(t, r.Middle.Leaf.A)
	assert.Nil(t, r.Middle.Flag)
	assert.Equal(t, 5, *r.Middle.Leaf.B)
}

func TestForceAlwaysApplies(t *testing.T) {
	g := NewGroup("Other",
		Force("B", func(r *root) { Ensure(&r.Other).B = ptr(0) }),
		Bind("A", Field[string]{}, func(r *root, v string) { Ensure(&r.Other).A = ptr(v) }),
	)
	r := &root{}
	applied := g.Apply(r)
	assert.Equal(t, []string{"B"}, applied)
	require.NotNil(t, r.Other)
	assert.Equal(t, 0, *r.Other.B)
	assert.Nil(t, r.Other.A)
}

func TestGroupApplyReportsWrittenFields(t *testing.T) {
	groups := rootGroups(Field[string]{}, Some("a"), Field[int]{}, Some(true))
	applied := groups[1].Apply(&root{})
	assert.Equal(t, []string{"Flag", "A"}, applied)
	assert.Empty(t, groups[0].Apply(&root{}))
}

func TestBindListSkipsEmptyLists(t *testing.T) {
	set := func(r *root, v []string) { Ensure(&r.Other).A = ptr(v[0]) }

	assert.False(t, BindList("A", Some([]string{}), set).Applies())
	assert.False(t, BindList("A", Field[[]string]{}, set).Applies())

	r := &root{}
	applied := NewGroup("Other", BindList("A", Some([]string{}), set)).Apply(r)
	assert.Empty(t, applied)
	assert.Nil(t, r.Other)

	applied = NewGroup("Other", BindList("A", Some([]string{"x"}), set)).Apply(r)
	assert.Equal(t, []string{"A"}, applied)
	require.NotNil(t, r.Other)
	assert.Equal(t, "x", *r.Other.A)
}
