package advisor

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/user/cspm-sim/pkg/engine"
)

//go:embed prompts/system_prompt.md
var systemPrompt string

// GetSystemPrompt returns the system instruction sent to LLM advisors
func GetSystemPrompt() string {
	return systemPrompt
}

var findingPrompt = template.Must(template.New("finding").Parse(
	`Finding {{.ID}} ({{.Kind}}, provider {{.Cloud}})
Check: {{.Check}}
Severity: {{.Severity}}
{{- if .Recommendation}}
Current recommendation: {{.Recommendation}}
{{- end}}
`))

// FindingPrompt renders the user prompt describing f
func FindingPrompt(f engine.Finding) (string, error) {
	var buf bytes.Buffer
	data := struct {
		engine.Finding
		Cloud string
	}{f, f.Provider()}
	if err := findingPrompt.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt for %s: %w", f.ID, err)
	}
	return buf.String(), nil
}
