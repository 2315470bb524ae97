// Package order validates that sibling declarations read in newspaper
// order: a member that calls another member of the same scope must be
// declared above it. Mutually recursive members impose no constraint on
// each other.
package order

import (
	"newsprint/internal/parser"
)

// Check runs the full pipeline for one scope: call graph, SCC collapse,
// canonical order synthesis, divergence annotation. It returns nil when
// the declared order already matches the canonical order, otherwise a
// single Violation for the whole scope.
func Check(scope parser.ScopeDecl) *Violation {
	if len(scope.Members) == 0 {
		return nil
	}

	adjacency := buildCallGraph(scope.Members)
	canonical := canonicalOrder(adjacency)

	entries := make([]Entry, len(canonical))
	diverges := false
	for position, member := range canonical {
		matches := member == position
		if !matches {
			diverges = true
		}
		entries[position] = Entry{
			Name:    scope.Members[member].Name,
			Matches: matches,
		}
	}

	if !diverges {
		return nil
	}

	return &Violation{
		ScopeKind: scope.Kind,
		ScopeName: scope.Name,
		Location:  scope.Location,
		Entries:   entries,
	}
}

// CheckFile runs Check over every scope of a parsed file.
func CheckFile(file *parser.File) []*Violation {
	var violations []*Violation
	for _, scope := range file.Scopes {
		if v := Check(scope); v != nil {
			violations = append(violations, v)
		}
	}
	return violations
}
