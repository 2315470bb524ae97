package parser

import (
	"path/filepath"
)

// memberCandidate is a member plus the raw callee names seen in its
// body. Names are resolved against the sibling set in finalizeScope;
// anything else never becomes a call edge.
type memberCandidate struct {
	decl  MemberDecl
	calls []string
}

func finalizeScope(kind ScopeKind, name string, loc Location, candidates []memberCandidate) ScopeDecl {
	siblings := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		siblings[c.decl.Name] = true
	}

	members := make([]MemberDecl, 0, len(candidates))
	for i, c := range candidates {
		m := c.decl
		m.Index = i
		seen := make(map[string]bool, len(c.calls))
		for _, callee := range c.calls {
			if siblings[callee] {
				m.Calls = appendUnique(m.Calls, seen, callee)
			}
		}
		members = append(members, m)
	}

	return ScopeDecl{Kind: kind, Name: name, Location: loc, Members: members}
}

// fileScope anchors a file's top-level function list at the start of
// the file, named after the file itself.
func fileScope(path string, candidates []memberCandidate) ScopeDecl {
	loc := Location{File: path, Line: 1, Column: 1}
	return finalizeScope(ScopeFile, filepath.Base(path), loc, candidates)
}

func appendUnique(items []string, seen map[string]bool, value string) []string {
	if value == "" || seen[value] {
		return items
	}
	seen[value] = true
	return append(items, value)
}
