package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	catalog := DefaultCatalog()
	require.Len(t, catalog, 12)
	assert.NoError(t, Validate(catalog))

	for _, f := range catalog {
		if f.Recommendation != "" {
			assert.Equal(t, ActionBlocked, Dispatch(f), f.ID)
		}
	}
}

func TestDefaultCatalogIsACopy(t *testing.T) {
	a := DefaultCatalog()
	a[0].Status = StatusPass

	b := DefaultCatalog()
	assert.Equal(t, StatusFail, b[0].Status)
}

func TestCatalogRoundTrip(t *testing.T) {
	data, err := MarshalCatalog("built-in", DefaultCatalog())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, data, 0600))

	loaded, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog(), loaded)
}

func TestParseCatalog(t *testing.T) {
	findings, err := ParseCatalog([]byte(`
name: demo
findings:
  - id: s3:demo
    type: S3
    check: Block Public Access
    status: FAIL
    severity: CRITICAL
    recommendation: Turn it on.
  - id: vpc:main
    type: VPC
    check: Flow Logs Enabled
    status: PASS
    severity: INFO
`))
	require.NoError(t, err)
	require.Len(t, findings, 2)
	assert.Equal(t, "Turn it on.", findings[0].Recommendation)
	assert.False(t, findings[0].AutoFix)

	_, err = ParseCatalog([]byte("findings: {"))
	assert.ErrorContains(t, err, "failed to parse catalog")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		findings []Finding
		msg      string
	}{
		{"empty id", []Finding{{Status: StatusPass, Severity: SeverityInfo}}, "empty id"},
		{"duplicate", []Finding{
			{ID: "s3:a", Status: StatusPass, Severity: SeverityInfo},
			{ID: "s3:a", Status: StatusPass, Severity: SeverityInfo},
		}, `duplicate id "s3:a"`},
		{"unknown status", []Finding{{ID: "s3:a", Status: "WARN", Severity: SeverityHigh}}, `unknown status "WARN"`},
		{"unknown severity", []Finding{{ID: "s3:a", Status: StatusFail, Severity: "LOW"}}, `unknown severity "LOW"`},
		{"info on failure", []Finding{{ID: "s3:a", Status: StatusFail, Severity: SeverityInfo}}, "does not match"},
		{"severity on pass", []Finding{{ID: "s3:a", Status: StatusPass, Severity: SeverityHigh}}, "does not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.findings)
			require.ErrorIs(t, err, ErrInvalidCatalog)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestFindingHelpers(t *testing.T) {
	assert.Equal(t, "aws", Finding{ID: "s3:bucket"}.Provider())
	assert.Equal(t, "azure", Finding{ID: "az:vm:frontend-01"}.Provider())
	assert.Equal(t, "kubernetes", Finding{ID: "k8s:cluster-main"}.Provider())

	assert.Equal(t, "SECURE", Finding{Status: StatusPass}.StatusLabel())
	assert.Equal(t, "FAIL (CRITICAL)", Finding{Status: StatusFail, Severity: SeverityCritical}.StatusLabel())
}
