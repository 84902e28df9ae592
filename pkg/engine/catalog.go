package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the on-disk shape of an alternative catalog
type CatalogFile struct {
	Name     string    `yaml:"name,omitempty"`
	Findings []Finding `yaml:"findings"`
}

var defaultCatalog = []Finding{
	// Critical, held for manual approval
	{ID: "s3:company-invoice-bucket", Kind: "S3", Check: "Block Public Access", Status: StatusFail, Severity: SeverityCritical,
		Recommendation: "Enable S3 Block Public Access at the account level and remove public ACL grants."},
	{ID: "rds:payment-db-prod", Kind: "RDS", Check: "Database Public Access", Status: StatusFail, Severity: SeverityCritical,
		Recommendation: "Set PubliclyAccessible=false and move the instance to private subnets."},
	{ID: "iam:root_account", Kind: "IAM", Check: "MFA Enabled for Root", Status: StatusFail, Severity: SeverityCritical,
		Recommendation: "Register a hardware MFA device for the root user and lock away its credentials."},

	// High, some auto-fixed
	{ID: "ec2:prod-bastion-host", Kind: "EC2", Check: "SSH Port 22 Closed (0.0.0.0)", Status: StatusFail, Severity: SeverityHigh, AutoFix: true},
	{ID: "s3:customer-pii-raw", Kind: "S3", Check: "Server-Side Encryption", Status: StatusFail, Severity: SeverityHigh, AutoFix: true},
	{ID: "s3:legacy-app-data", Kind: "S3", Check: "Bucket Versioning Enabled", Status: StatusFail, Severity: SeverityHigh,
		Recommendation: "Enable versioning once the application owner confirms storage cost impact."},

	// Compliant
	{ID: "s3:app-logs-archive", Kind: "S3", Check: "Encryption (SSE-S3)", Status: StatusPass, Severity: SeverityInfo},
	{ID: "s3:static-frontend", Kind: "S3", Check: "Read-Only Public Policy", Status: StatusPass, Severity: SeverityInfo},
	{ID: "vpc:primary-prod", Kind: "VPC", Check: "Flow Logs Enabled", Status: StatusPass, Severity: SeverityInfo},
	{ID: "iam:user:admin_01", Kind: "IAM", Check: "Access Key Rotation", Status: StatusPass, Severity: SeverityInfo},
	{ID: "az:vm:frontend-01", Kind: "VM", Check: "Network Watcher Enabled", Status: StatusPass, Severity: SeverityInfo},
	{ID: "k8s:cluster-main", Kind: "EKS", Check: "Control Plane Logging", Status: StatusPass, Severity: SeverityInfo},
}

// DefaultCatalog returns a fresh copy of the built-in catalog
func DefaultCatalog() []Finding {
	out := make([]Finding, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// LoadCatalog reads and validates a YAML catalog file
func LoadCatalog(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog and validates it
func ParseCatalog(data []byte) ([]Finding, error) {
	var c CatalogFile
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := Validate(c.Findings); err != nil {
		return nil, err
	}
	return c.Findings, nil
}

// MarshalCatalog encodes findings in the format ParseCatalog reads
func MarshalCatalog(name string, findings []Finding) ([]byte, error) {
	return yaml.Marshal(CatalogFile{Name: name, Findings: findings})
}
