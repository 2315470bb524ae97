package output

import (
	"fmt"
	"strings"

	"newsprint/internal/order"
	"newsprint/internal/parser"
)

// GenerateDOT renders the sibling call graph of each offending scope,
// one cluster per scope, with out-of-place members highlighted.
func GenerateDOT(scopes []parser.ScopeDecl, violations []*order.Violation) (string, error) {
	mismatched := make(map[string]map[string]bool, len(violations))
	violating := make(map[string]bool, len(violations))
	for _, v := range violations {
		key := scopeKey(v.Location.File, v.ScopeName)
		violating[key] = true
		mismatched[key] = make(map[string]bool, len(v.Entries))
		for _, e := range v.Entries {
			if !e.Matches {
				mismatched[key][e.Name] = true
			}
		}
	}

	var buf strings.Builder

	buf.WriteString("digraph newspaper_order {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8];\n\n")

	cluster := 0
	for _, scope := range scopes {
		key := scopeKey(scope.Location.File, scope.Name)
		if !violating[key] {
			continue
		}

		buf.WriteString(fmt.Sprintf("  subgraph cluster_%d {\n", cluster))
		buf.WriteString(fmt.Sprintf("    label=\"%s %s\";\n", scope.Kind.String(), scope.Name))
		buf.WriteString("    style=filled;\n")
		buf.WriteString("    color=\"whitesmoke\";\n")

		for _, m := range scope.Members {
			node := nodeID(cluster, m.Name)
			if mismatched[key][m.Name] {
				buf.WriteString(fmt.Sprintf("    %s [label=\"%s\", fillcolor=\"mistyrose\", color=\"red\", style=\"rounded,filled\"];\n", node, m.Name))
			} else {
				buf.WriteString(fmt.Sprintf("    %s [label=\"%s\", fillcolor=\"white\", style=\"rounded,filled\"];\n", node, m.Name))
			}
		}
		for _, m := range scope.Members {
			for _, callee := range m.Calls {
				buf.WriteString(fmt.Sprintf("    %s -> %s;\n", nodeID(cluster, m.Name), nodeID(cluster, callee)))
			}
		}

		buf.WriteString("  }\n\n")
		cluster++
	}

	buf.WriteString("}\n")

	return buf.String(), nil
}

func scopeKey(file, name string) string {
	return file + "::" + name
}

func nodeID(cluster int, name string) string {
	return fmt.Sprintf("\"s%d_%s\"", cluster, name)
}
