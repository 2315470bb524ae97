package output

import (
	"encoding/json"
	"strings"
	"testing"

	"newsprint/internal/order"
	"newsprint/internal/parser"
)

func sampleViolation() *order.Violation {
	return &order.Violation{
		ScopeKind: parser.ScopeClass,
		ScopeName: "Warbler",
		Location:  parser.Location{File: "/project/src/warbler.ts", Line: 3, Column: 1},
		Entries: []order.Entry{
			{Name: "firstMethod", Matches: false},
			{Name: "secondMethod", Matches: false},
		},
	}
}

func TestGenerateSARIF(t *testing.T) {
	data, err := GenerateSARIF("/project", []*order.Violation{sampleViolation()})
	if err != nil {
		t.Fatal(err)
	}

	var report map[string]any
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("SARIF output is not valid JSON: %v", err)
	}
	if report["version"] != "2.1.0" {
		t.Errorf("Expected SARIF 2.1.0, got %v", report["version"])
	}

	text := string(data)
	if !strings.Contains(text, "NEWS001") {
		t.Error("Expected rule ID NEWS001 in output")
	}
	if !strings.Contains(text, "src/warbler.ts") {
		t.Error("Expected relative URI in output")
	}
	if strings.Contains(text, "/project/src") {
		t.Error("Absolute paths must not leak into the report")
	}
}

func TestGenerateTSV(t *testing.T) {
	text, err := GenerateTSV([]*order.Violation{sampleViolation()})
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "File\tScopeKind\tScope") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Warbler") || !strings.Contains(lines[1], "firstMethod, secondMethod") {
		t.Errorf("Unexpected row: %s", lines[1])
	}
}

func TestGenerateMarkdown(t *testing.T) {
	text, err := GenerateMarkdown([]*order.Violation{sampleViolation()}, 5, 9)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(text, "| 5 | 9 | 1 |") {
		t.Error("Expected summary row in markdown")
	}
	if !strings.Contains(text, "Methods order:") {
		t.Error("Expected the full diagnostic message in markdown")
	}

	clean, err := GenerateMarkdown(nil, 5, 9)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(clean, "All scopes read in newspaper order.") {
		t.Error("Expected clean-report wording")
	}
}

func TestGenerateDOT(t *testing.T) {
	scope := parser.ScopeDecl{
		Kind:     parser.ScopeClass,
		Name:     "Warbler",
		Location: parser.Location{File: "/project/src/warbler.ts", Line: 3, Column: 1},
		Members: []parser.MemberDecl{
			{Name: "secondMethod", Index: 0},
			{Name: "firstMethod", Index: 1, Calls: []string{"secondMethod"}},
		},
	}

	text, err := GenerateDOT([]parser.ScopeDecl{scope}, []*order.Violation{sampleViolation()})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(text, "digraph newspaper_order") {
		t.Error("Expected digraph header")
	}
	if !strings.Contains(text, `"s0_firstMethod" -> "s0_secondMethod"`) {
		t.Errorf("Expected call edge in output:\n%s", text)
	}
	if !strings.Contains(text, "mistyrose") {
		t.Error("Expected mismatched members to be highlighted")
	}
}
