package parser

import (
	"time"
)

type File struct {
	Path     string
	Language string
	Scopes   []ScopeDecl
	ParsedAt time.Time
}

// ScopeDecl is one ordering unit: a class body or a file's list of
// top-level functions. Members keep declaration order.
type ScopeDecl struct {
	Kind     ScopeKind
	Name     string // class name, or file name for file scopes
	Location Location
	Members  []MemberDecl
}

type MemberDecl struct {
	Name     string
	Index    int // 0-based position in declaration order
	Kind     MemberKind
	Location Location
	Calls    []string // resolved sibling call targets, deduplicated
}

type ScopeKind int

const (
	ScopeClass ScopeKind = iota
	ScopeFile
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeClass:
		return "class"
	case ScopeFile:
		return "file"
	default:
		return "unknown"
	}
}

type MemberKind int

const (
	KindMethod MemberKind = iota
	KindGetter
	KindSetter
	KindFunction
)

type Location struct {
	File   string
	Line   int
	Column int
}
