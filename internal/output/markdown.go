package output

import (
	"fmt"
	"strings"
	"time"

	"newsprint/internal/order"
)

// GenerateMarkdown renders a human-readable report: a summary table
// followed by one section per violation containing the full diagnostic.
func GenerateMarkdown(violations []*order.Violation, filesScanned, scopesChecked int) (string, error) {
	var buf strings.Builder

	buf.WriteString("# Newspaper Order Report\n\n")
	buf.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().UTC().Format(time.RFC3339)))

	buf.WriteString("| Files scanned | Scopes checked | Violations |\n")
	buf.WriteString("|---|---|---|\n")
	buf.WriteString(fmt.Sprintf("| %d | %d | %d |\n\n", filesScanned, scopesChecked, len(violations)))

	if len(violations) == 0 {
		buf.WriteString("All scopes read in newspaper order.\n")
		return buf.String(), nil
	}

	buf.WriteString("## Violations\n\n")
	for _, v := range violations {
		buf.WriteString(fmt.Sprintf("### %s `%s` — %s:%d\n\n",
			v.ScopeKind.String(), v.ScopeName, v.Location.File, v.Location.Line))
		buf.WriteString("```text\n")
		buf.WriteString(v.Message())
		buf.WriteString("\n```\n\n")
	}

	return buf.String(), nil
}
