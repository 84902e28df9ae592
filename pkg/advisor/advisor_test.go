package advisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cspm-sim/pkg/engine"
)

func TestBlocked(t *testing.T) {
	blocked := Blocked(engine.DefaultCatalog())
	require.Len(t, blocked, 4)
	assert.Equal(t, "s3:company-invoice-bucket", blocked[0].ID)
	assert.Equal(t, "s3:legacy-app-data", blocked[3].ID)
}

func TestStaticProvider(t *testing.T) {
	ctx := context.Background()
	p, err := NewProvider(ctx, "static", "", "")
	require.NoError(t, err)

	advice, err := p.Advise(ctx, engine.Finding{ID: "iam:root", Check: "MFA", Recommendation: "Enable MFA."})
	require.NoError(t, err)
	assert.Equal(t, "Enable MFA.", advice)

	advice, err = p.Advise(ctx, engine.Finding{ID: "s3:raw", Check: "Versioning"})
	require.NoError(t, err)
	assert.Contains(t, advice, `Review "Versioning" on s3:raw manually`)

	models, err := p.ListModels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog"}, models)
}

func TestStaticProviderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStaticProvider().Advise(ctx, engine.Finding{ID: "s3:a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProviderErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewProvider(ctx, "gemini", "", "")
	assert.ErrorContains(t, err, "requires an API key")

	_, err = NewProvider(ctx, "openai", "key", "")
	assert.ErrorContains(t, err, "unknown provider: openai (available: static, gemini)")
}

func TestFindingPrompt(t *testing.T) {
	prompt, err := FindingPrompt(engine.Finding{
		ID: "az:vm:frontend-01", Kind: "VM", Check: "Disk Encryption",
		Status: engine.StatusFail, Severity: engine.SeverityHigh,
		Recommendation: "Enable ADE.",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Finding az:vm:frontend-01 (VM, provider azure)")
	assert.Contains(t, prompt, "Check: Disk Encryption")
	assert.Contains(t, prompt, "Severity: HIGH")
	assert.Contains(t, prompt, "Current recommendation: Enable ADE.")

	bare, err := FindingPrompt(engine.Finding{ID: "s3:a"})
	require.NoError(t, err)
	assert.NotContains(t, bare, "Current recommendation")
	assert.NotEmpty(t, GetSystemPrompt())
}
