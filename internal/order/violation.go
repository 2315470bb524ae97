package order

import (
	"fmt"
	"strings"

	"newsprint/internal/parser"
)

const (
	classHeaderPrefix = "The class does not read like a Newspaper. Reorder the methods of the class: "
	fileHeaderPrefix  = "The functions in the file do not read like a Newspaper. Reorder the functions of the file: "

	markMatch    = "✓"
	markMismatch = "x"
)

// Entry is one line of the reported order: the member name and whether
// its declared position already equals its canonical position.
type Entry struct {
	Name    string
	Matches bool
}

// Violation is the single diagnostic produced for a scope whose
// declaration order diverges from canonical order. Location anchors the
// diagnostic at the scope's declaration (class keyword, or start of
// file for file scopes). Entries are in canonical order.
type Violation struct {
	ScopeKind parser.ScopeKind
	ScopeName string
	Location  parser.Location
	Entries   []Entry
}

func (v *Violation) Message() string {
	var b strings.Builder

	if v.ScopeKind == parser.ScopeClass {
		b.WriteString(classHeaderPrefix)
	} else {
		b.WriteString(fileHeaderPrefix)
	}
	b.WriteString(v.ScopeName)
	b.WriteString("\n\nMethods order:\n")

	for i, entry := range v.Entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		mark := markMismatch
		if entry.Matches {
			mark = markMatch
		}
		fmt.Fprintf(&b, "%d. %s %s", i+1, mark, entry.Name)
	}

	return b.String()
}

// MismatchCount reports how many entries are out of place.
func (v *Violation) MismatchCount() int {
	count := 0
	for _, entry := range v.Entries {
		if !entry.Matches {
			count++
		}
	}
	return count
}
