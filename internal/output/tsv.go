package output

import (
	"fmt"
	"strings"

	"newsprint/internal/order"
)

// GenerateTSV renders one row per violation with the canonical order
// flattened into a comma-separated column.
func GenerateTSV(violations []*order.Violation) (string, error) {
	var buf strings.Builder

	buf.WriteString("File\tScopeKind\tScope\tLine\tColumn\tMismatched\tCanonicalOrder\n")

	for _, v := range violations {
		names := make([]string, len(v.Entries))
		for i, e := range v.Entries {
			names[i] = e.Name
		}
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			v.Location.File,
			v.ScopeKind.String(),
			v.ScopeName,
			v.Location.Line,
			v.Location.Column,
			v.MismatchCount(),
			strings.Join(names, ", "),
		))
	}

	return buf.String(), nil
}
