package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/cspm-sim/pkg/engine"
)

// Provider produces manual-remediation guidance for blocked findings
type Provider interface {
	Advise(ctx context.Context, f engine.Finding) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}

// Providers lists the names NewProvider accepts
var Providers = []string{"static", "gemini"}

func NewProvider(ctx context.Context, providerName, apiKey, modelName string) (Provider, error) {
	switch providerName {
	case "", "static":
		return NewStaticProvider(), nil
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return NewGeminiProvider(ctx, apiKey, modelName)
	default:
		return nil, fmt.Errorf("unknown provider: %s (available: %s)", providerName, strings.Join(Providers, ", "))
	}
}

// Blocked returns the findings that need manual remediation, in catalog order
func Blocked(findings []engine.Finding) []engine.Finding {
	var out []engine.Finding
	for _, f := range findings {
		if engine.Dispatch(f) == engine.ActionBlocked {
			out = append(out, f)
		}
	}
	return out
}
