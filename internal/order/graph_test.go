package order

import (
	"testing"

	"newsprint/internal/parser"
)

func TestBuildCallGraph_DeduplicatesEdges(t *testing.T) {
	members := []parser.MemberDecl{
		{Name: "caller", Index: 0, Calls: []string{"callee", "callee", "missing"}},
		{Name: "callee", Index: 1},
	}

	adjacency := buildCallGraph(members)
	if len(adjacency[0]) != 1 || adjacency[0][0] != 1 {
		t.Errorf("Expected single deduplicated edge caller->callee, got %v", adjacency[0])
	}
	if len(adjacency[1]) != 0 {
		t.Errorf("Expected no edges from callee, got %v", adjacency[1])
	}
}

func TestStronglyConnectedComponents(t *testing.T) {
	// 0 -> 1 <-> 2, 3 self-loop
	adjacency := [][]int{
		{1},
		{2},
		{1},
		{3},
	}

	componentOf, components := stronglyConnectedComponents(adjacency)
	if len(components) != 3 {
		t.Fatalf("Expected 3 components, got %d", len(components))
	}
	if componentOf[1] != componentOf[2] {
		t.Error("Expected 1 and 2 in the same component")
	}
	if componentOf[0] == componentOf[1] || componentOf[3] == componentOf[1] {
		t.Error("Expected 0 and 3 in their own components")
	}

	cycle := components[componentOf[1]]
	if len(cycle) != 2 || cycle[0] != 1 || cycle[1] != 2 {
		t.Errorf("Expected cycle component [1 2] in declaration order, got %v", cycle)
	}
}

func TestCanonicalOrder_NoEdges(t *testing.T) {
	adjacency := make([][]int, 4)
	got := canonicalOrder(adjacency)
	for i, member := range got {
		if member != i {
			t.Fatalf("Expected identity order, got %v", got)
		}
	}
}
