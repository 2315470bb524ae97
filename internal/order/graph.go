package order

import (
	"sort"

	"newsprint/internal/parser"
)

// buildCallGraph turns each member's resolved sibling call names into a
// deduplicated adjacency list over member indices. Names that do not
// resolve to a sibling produce no edge; a self-edge is kept as-is.
func buildCallGraph(members []parser.MemberDecl) [][]int {
	byName := make(map[string]int, len(members))
	for i, m := range members {
		if _, exists := byName[m.Name]; !exists {
			byName[m.Name] = i
		}
	}

	adjacency := make([][]int, len(members))
	for i, m := range members {
		seen := make(map[int]bool, len(m.Calls))
		for _, callee := range m.Calls {
			target, ok := byName[callee]
			if !ok || seen[target] {
				continue
			}
			seen[target] = true
			adjacency[i] = append(adjacency[i], target)
		}
	}
	return adjacency
}

// stronglyConnectedComponents runs Tarjan's algorithm over the member
// call graph. Members inside a component are listed in declaration
// order; componentOf maps each member index to its component id.
func stronglyConnectedComponents(adjacency [][]int) (componentOf []int, components [][]int) {
	n := len(adjacency)
	const unvisited = -1

	index := 0
	indexOf := make([]int, n)
	lowLink := make([]int, n)
	onStack := make([]bool, n)
	stack := make([]int, 0, n)
	componentOf = make([]int, n)

	for i := range indexOf {
		indexOf[i] = unvisited
	}

	var strongConnect func(int)
	strongConnect = func(v int) {
		indexOf[v] = index
		lowLink[v] = index
		index++

		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adjacency[v] {
			if indexOf[w] == unvisited {
				strongConnect(w)
				if lowLink[w] < lowLink[v] {
					lowLink[v] = lowLink[w]
				}
			} else if onStack[w] && indexOf[w] < lowLink[v] {
				lowLink[v] = indexOf[w]
			}
		}

		if lowLink[v] != indexOf[v] {
			return
		}

		component := make([]int, 0)
		for {
			last := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[last] = false
			component = append(component, last)
			if last == v {
				break
			}
		}
		sort.Ints(component)
		compID := len(components)
		components = append(components, component)
		for _, member := range component {
			componentOf[member] = compID
		}
	}

	for v := 0; v < n; v++ {
		if indexOf[v] == unvisited {
			strongConnect(v)
		}
	}

	return componentOf, components
}
