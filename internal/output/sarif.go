package output

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"newsprint/internal/order"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"

	toolName    = "newsprint"
	toolVersion = "1.0.0"

	ruleIDNewspaperOrder = "NEWS001"
)

type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document from ordering
// violations. File URIs are made relative to projectRoot so reports
// are safe to share.
func GenerateSARIF(projectRoot string, violations []*order.Violation) ([]byte, error) {
	rules := []sarifRule{
		{
			ID:               ruleIDNewspaperOrder,
			Name:             "NewspaperOrder",
			ShortDescription: sarifMessage{Text: "Sibling declarations should read caller-before-callee."},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "warning"},
		},
	}

	results := make([]sarifResult, 0, len(violations))
	for _, v := range violations {
		result := sarifResult{
			RuleID:  ruleIDNewspaperOrder,
			Level:   "warning",
			Message: sarifMessage{Text: v.Message()},
		}
		if v.Location.File != "" {
			loc := sarifLocation{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{
						URI:       relativeURI(projectRoot, v.Location.File),
						URIBaseID: "%SRCROOT%",
					},
				},
			}
			if v.Location.Line > 0 {
				loc.PhysicalLocation.Region = &sarifRegion{
					StartLine:   v.Location.Line,
					StartColumn: v.Location.Column,
				}
			}
			result.Locations = []sarifLocation{loc}
		}
		results = append(results, result)
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    toolName,
						Version: toolVersion,
						Rules:   rules,
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}

func relativeURI(projectRoot, file string) string {
	if projectRoot != "" {
		if rel, err := filepath.Rel(projectRoot, file); err == nil && !strings.HasPrefix(rel, "..") {
			file = rel
		}
	}
	return filepath.ToSlash(file)
}
