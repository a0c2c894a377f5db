package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func idx(x, y uint32) Index { return Index{X: x, Y: y} }

func set(indices ...Index) map[Index]struct{} {
	out := make(map[Index]struct{}, len(indices))
	for _, i := range indices {
		out[i] = struct{}{}
	}
	return out
}

func TestSetEdgesAndClear(t *testing.T) {
	g := NewDependencyGraph()
	a, b, c := idx(0, 0), idx(1, 0), idx(2, 0)

	g.SetEdges(a, set(b, c))
	assert.ElementsMatch(t, []Index{a}, g.DependentsClosure(b))
	assert.ElementsMatch(t, []Index{a}, g.DependentsClosure(c))

	g.SetEdges(a, set(b))
	assert.Empty(t, g.DependentsClosure(c))
	assert.ElementsMatch(t, []Index{a}, g.DependentsClosure(b))

	g.Clear(a)
	assert.Empty(t, g.DependentsClosure(b))
}

func TestDependentsClosureTopologicalOrder(t *testing.T) {
	g := NewDependencyGraph()
	a, b, c := idx(0, 0), idx(1, 0), idx(2, 0)
	g.SetEdges(b, set(a))
	g.SetEdges(c, set(b))

	order := g.DependentsClosure(a)
	require := map[Index]int{}
	for i, n := range order {
		require[n] = i
	}
	assert.Less(t, require[b], require[c])
}

func TestHasCycleThrough(t *testing.T) {
	g := NewDependencyGraph()
	a, b := idx(0, 0), idx(1, 0)

	has, _ := g.HasCycleThrough(a)
	assert.False(t, has)

	g.SetEdges(a, set(b))
	g.SetEdges(b, set(a))

	has, members := g.HasCycleThrough(a)
	assert.True(t, has)
	assert.ElementsMatch(t, []Index{a, b}, members)
}

func TestCycleMembersIgnoresUnrelatedNodes(t *testing.T) {
	g := NewDependencyGraph()
	a, b, c := idx(0, 0), idx(1, 0), idx(2, 0)
	g.SetEdges(a, set(b))
	g.SetEdges(b, set(a))
	g.SetEdges(c, set(a))

	members := g.cycleMembers()
	assert.True(t, members[a])
	assert.True(t, members[b])
	assert.False(t, members[c])
}
