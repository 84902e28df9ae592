package advisor

import (
	"context"
	"fmt"

	"github.com/user/cspm-sim/pkg/engine"
)

// StaticProvider answers from the catalog without any network access
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (p *StaticProvider) ListModels(ctx context.Context) ([]string, error) {
	return []string{"catalog"}, nil
}

func (p *StaticProvider) Advise(ctx context.Context, f engine.Finding) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Recommendation != "" {
		return f.Recommendation, nil
	}
	return fmt.Sprintf("Review %q on %s manually and record the decision on the ticket.", f.Check, f.ID), nil
}
