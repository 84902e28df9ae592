package engine

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

//go:embed playbooks/playbooks.yaml
var defaultPlaybooks []byte

// Action is the remediation decision for a single finding
type Action int

const (
	ActionNone Action = iota
	ActionAutoFix
	ActionBlocked
)

func (a Action) String() string {
	switch a {
	case ActionAutoFix:
		return "auto-fix"
	case ActionBlocked:
		return "blocked"
	default:
		return "none"
	}
}

// Dispatch decides how a finding is remediated
func Dispatch(f Finding) Action {
	if !f.Failed() {
		return ActionNone
	}
	if f.AutoFix {
		return ActionAutoFix
	}
	return ActionBlocked
}

// Playbook describes the simulated remediation for one provider
type Playbook struct {
	Provider string `yaml:"provider"`
	Runner   string `yaml:"runner"`
	Trigger  string `yaml:"trigger"`
	Fixed    string `yaml:"fixed"`
}

// RemediationEngine renders the auto-remediation lines from playbooks
type RemediationEngine struct {
	Playbooks map[string]Playbook
}

// NewRemediationEngine creates an engine loaded with the built-in playbooks
func NewRemediationEngine() (*RemediationEngine, error) {
	e := &RemediationEngine{
		Playbooks: make(map[string]Playbook),
	}
	if err := e.LoadPlaybooks(defaultPlaybooks); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadPlaybooks parses a YAML playbook document, replacing entries by provider
func (e *RemediationEngine) LoadPlaybooks(data []byte) error {
	var doc struct {
		Playbooks []Playbook `yaml:"playbooks"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse playbooks: %w", err)
	}
	for _, p := range doc.Playbooks {
		if p.Provider == "" {
			return fmt.Errorf("playbook without provider (runner %q)", p.Runner)
		}
		e.Playbooks[p.Provider] = p
	}
	return nil
}

// Playbook returns the playbook for a finding, falling back to aws
func (e *RemediationEngine) Playbook(f Finding) (Playbook, error) {
	if p, ok := e.Playbooks[f.Provider()]; ok {
		return p, nil
	}
	if p, ok := e.Playbooks["aws"]; ok {
		return p, nil
	}
	return Playbook{}, fmt.Errorf("no playbook for provider %s", f.Provider())
}

// Plan renders the trigger and fixed lines for an auto-remediable finding
func (e *RemediationEngine) Plan(f Finding) (trigger, fixed string, err error) {
	p, err := e.Playbook(f)
	if err != nil {
		return "", "", err
	}

	vars := map[string]string{
		"Runner":   p.Runner,
		"Provider": f.Provider(),
		"ID":       f.ID,
		"Kind":     f.Kind,
		"Check":    f.Check,
	}

	trigger, err = renderString("trigger", p.Trigger, vars)
	if err != nil {
		return "", "", err
	}
	fixed, err = renderString("fixed", p.Fixed, vars)
	if err != nil {
		return "", "", err
	}
	return trigger, fixed, nil
}

func renderString(name, tmplStr string, vars map[string]string) (string, error) {
	t, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
