package order

// canonicalOrder flattens a topological sort of the condensation graph
// into a sequence of member indices. Callers sort before callees; when
// the graph leaves two components unordered, the one whose earliest
// member was declared first wins, so an already-valid declaration order
// is always returned verbatim. Members inside a cyclic component keep
// their original relative order.
func canonicalOrder(adjacency [][]int) []int {
	componentOf, components := stronglyConnectedComponents(adjacency)
	n := len(components)

	successors := make([]map[int]bool, n)
	inDegree := make([]int, n)
	for from, targets := range adjacency {
		fromComp := componentOf[from]
		for _, to := range targets {
			toComp := componentOf[to]
			if fromComp == toComp {
				continue
			}
			if successors[fromComp] == nil {
				successors[fromComp] = make(map[int]bool)
			}
			if !successors[fromComp][toComp] {
				successors[fromComp][toComp] = true
				inDegree[toComp]++
			}
		}
	}

	// components[c] is sorted, so its first entry is the component's
	// minimum declared index, the tie-break key.
	done := make([]bool, n)
	order := make([]int, 0, len(adjacency))
	for emitted := 0; emitted < n; emitted++ {
		next := -1
		for c := 0; c < n; c++ {
			if done[c] || inDegree[c] > 0 {
				continue
			}
			if next == -1 || components[c][0] < components[next][0] {
				next = c
			}
		}

		done[next] = true
		order = append(order, components[next]...)
		for to := range successors[next] {
			inDegree[to]--
		}
	}

	return order
}
