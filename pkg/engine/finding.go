package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the outcome of a posture check
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Severity only carries meaning for failing findings
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Finding represents one posture-check result for a cloud resource
type Finding struct {
	ID             string   `yaml:"id" json:"id"`
	Kind           string   `yaml:"type" json:"type"` // S3 / RDS / IAM / EC2 / VPC / EKS / VM
	Check          string   `yaml:"check" json:"check"`
	Status         Status   `yaml:"status" json:"status"`
	Severity       Severity `yaml:"severity" json:"severity"`
	AutoFix        bool     `yaml:"auto_fix" json:"auto_fix"`
	Recommendation string   `yaml:"recommendation,omitempty" json:"recommendation,omitempty"`
}

// Failed reports whether the check did not pass
func (f Finding) Failed() bool {
	return f.Status == StatusFail
}

// Provider derives the cloud provider from the identifier prefix
func (f Finding) Provider() string {
	switch {
	case strings.HasPrefix(f.ID, "az:"):
		return "azure"
	case strings.HasPrefix(f.ID, "k8s:"):
		return "kubernetes"
	default:
		return "aws"
	}
}

// StatusLabel is the text shown in the STATUS column
func (f Finding) StatusLabel() string {
	if !f.Failed() {
		return "SECURE"
	}
	return fmt.Sprintf("FAIL (%s)", f.Severity)
}

// ErrInvalidCatalog wraps every catalog validation failure
var ErrInvalidCatalog = errors.New("invalid catalog")

// Validate checks the catalog-level invariants. The report engine never calls
// it: malformed findings are rendered as given.
func Validate(findings []Finding) error {
	var errs []error
	seen := make(map[string]bool, len(findings))

	for i, f := range findings {
		if f.ID == "" {
			errs = append(errs, fmt.Errorf("finding %d: empty id", i))
		} else if seen[f.ID] {
			errs = append(errs, fmt.Errorf("finding %d: duplicate id %q", i, f.ID))
		}
		seen[f.ID] = true

		switch f.Status {
		case StatusPass, StatusFail:
		default:
			errs = append(errs, fmt.Errorf("%s: unknown status %q", f.ID, f.Status))
			continue
		}

		switch f.Severity {
		case SeverityInfo, SeverityHigh, SeverityCritical:
		default:
			errs = append(errs, fmt.Errorf("%s: unknown severity %q", f.ID, f.Severity))
			continue
		}

		// INFO if and only if PASS
		if (f.Severity == SeverityInfo) != (f.Status == StatusPass) {
			errs = append(errs, fmt.Errorf("%s: severity %s does not match status %s", f.ID, f.Severity, f.Status))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
}
