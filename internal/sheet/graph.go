package sheet

import "golang.org/x/exp/maps"

// DependencyGraph tracks, for every cell holding a formula, which cells it
// reads (dependsOn) and which cells read it (dependentsOf) — the two-sided
// adjacency shape the teacher's DependencyNode used, reduced to exactly the
// edges this engine's recomputation needs. Both maps are kept mutually
// consistent by SetEdges, Clear and Reset; nothing else mutates them.
type DependencyGraph struct {
	dependsOn    map[Index]map[Index]struct{}
	dependentsOf map[Index]map[Index]struct{}
}

// NewDependencyGraph returns an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		dependsOn:    make(map[Index]map[Index]struct{}),
		dependentsOf: make(map[Index]map[Index]struct{}),
	}
}

// SetEdges replaces u's outgoing edges with deps, updating the reverse
// adjacency for every cell added or dropped. An empty or nil deps behaves
// like Clear(u).
func (g *DependencyGraph) SetEdges(u Index, deps map[Index]struct{}) {
	old := g.dependsOn[u]
	for v := range old {
		if _, keep := deps[v]; !keep {
			g.unlink(u, v)
		}
	}
	if len(deps) == 0 {
		delete(g.dependsOn, u)
		return
	}
	fresh := make(map[Index]struct{}, len(deps))
	for v := range deps {
		fresh[v] = struct{}{}
		g.link(u, v)
	}
	g.dependsOn[u] = fresh
}

// Clear removes u as a source of any edges, as if it now held a literal.
func (g *DependencyGraph) Clear(u Index) {
	g.SetEdges(u, nil)
}

// Reset drops every edge in the graph, as when a spreadsheet is emptied.
func (g *DependencyGraph) Reset() {
	maps.Clear(g.dependsOn)
	maps.Clear(g.dependentsOf)
}

func (g *DependencyGraph) link(u, v Index) {
	if g.dependentsOf[v] == nil {
		g.dependentsOf[v] = make(map[Index]struct{})
	}
	g.dependentsOf[v][u] = struct{}{}
}

func (g *DependencyGraph) unlink(u, v Index) {
	set := g.dependentsOf[v]
	delete(set, u)
	if len(set) == 0 {
		delete(g.dependentsOf, v)
	}
}

// HasCycleThrough reports whether u participates in a cycle — whether u is
// reachable from itself by following dependsOn edges. When true, the
// returned slice holds every cell in the strongly connected component that
// contains u, the full membership of the cycle to taint with Err(Cycle).
func (g *DependencyGraph) HasCycleThrough(u Index) (bool, []Index) {
	forward := g.reachable(u, g.dependsOn)
	if !forward[u] {
		return false, nil
	}
	backward := g.reachable(u, g.dependentsOf)

	scc := []Index{u}
	for n := range forward {
		if n == u {
			continue
		}
		if backward[n] {
			scc = append(scc, n)
		}
	}
	return true, scc
}

// reachable returns every node reachable from start by one or more edges of
// adj — start itself only if some path loops back to it.
func (g *DependencyGraph) reachable(start Index, adj map[Index]map[Index]struct{}) map[Index]bool {
	visited := make(map[Index]bool)
	var stack []Index
	for next := range adj[start] {
		if !visited[next] {
			visited[next] = true
			stack = append(stack, next)
		}
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range adj[cur] {
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return visited
}

// cycleMembers returns every cell currently on some cycle anywhere in the
// graph, found with one Tarjan strongly-connected-components pass so a
// cascade can classify every node it touches in O(|V|+|E|) total rather
// than paying a fresh HasCycleThrough search per node.
func (g *DependencyGraph) cycleMembers() map[Index]bool {
	var (
		counter int
		indices = make(map[Index]int)
		lowlink = make(map[Index]int)
		onStack = make(map[Index]bool)
		stack   []Index
		members = make(map[Index]bool)
	)

	var strongconnect func(v Index)
	strongconnect = func(v Index) {
		indices[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for w := range g.dependsOn[v] {
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] != indices[v] {
			return
		}
		var component []Index
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		if len(component) > 1 {
			for _, n := range component {
				members[n] = true
			}
			return
		}
		if _, selfLoop := g.dependsOn[component[0]][component[0]]; selfLoop {
			members[component[0]] = true
		}
	}

	for v := range g.dependsOn {
		if _, seen := indices[v]; !seen {
			strongconnect(v)
		}
	}
	return members
}

// DependentsClosure returns every cell transitively dependent on u,
// ordered so a cell always appears after every one of its dependsOn
// predecessors that is also in the result. u itself is in the result only
// when u lies on a cycle. The caller prepends u and drops the duplicate —
// nothing returned here can be a precedent of u unless u is on a cycle,
// which cycleMembers reports separately — giving a full
// dependencies-before-dependents recompute order.
//
// The orderer tolerates cycles among the returned nodes: a back-edge into a
// node already being visited is simply skipped, so it never loops forever.
// The caller identifies cycle members with cycleMembers and special-cases
// them before this order drives recomputation.
func (g *DependencyGraph) DependentsClosure(u Index) []Index {
	descendants := g.reachable(u, g.dependentsOf)

	const (
		unseen uint8 = iota
		visiting
		done
	)
	state := make(map[Index]uint8, len(descendants))
	var order []Index
	var visit func(Index)
	visit = func(n Index) {
		if state[n] != unseen {
			return
		}
		state[n] = visiting
		for dep := range g.dependsOn[n] {
			if descendants[dep] {
				visit(dep)
			}
		}
		state[n] = done
		order = append(order, n)
	}
	for n := range descendants {
		visit(n)
	}
	return order
}
