package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeScore(t *testing.T) {
	assert.Equal(t, 0, ComputeScore(0, 0))
	assert.Equal(t, 33, ComputeScore(1, 3))
	assert.Equal(t, 67, ComputeScore(2, 3))
	assert.Equal(t, 100, ComputeScore(4, 4))
}

func TestSummarize(t *testing.T) {
	res := Result{Total: 3, Passed: 3, AutoFixed: 2, OpenCritical: 1}

	s := Summarize(res, DefaultOptions())
	assert.Equal(t, DefaultTotalAssets, s.TotalAssets)
	assert.Equal(t, DefaultAutoFixedBaseline+2, s.AutoFixed)
	assert.Equal(t, 1, s.OpenCritical)
	assert.Equal(t, DefaultComplianceScore, s.Score)
	assert.Equal(t, "Needs Action", s.ScoreNote)
	assert.Equal(t, ScoreConstant, s.Policy)

	opts := DefaultOptions()
	opts.ScorePolicy = ScoreComputed
	s = Summarize(res, opts)
	assert.Equal(t, 100, s.Score)
	assert.Equal(t, "Healthy", s.ScoreNote)
}

func TestParseScorePolicy(t *testing.T) {
	p, err := ParseScorePolicy("")
	require.NoError(t, err)
	assert.Equal(t, ScoreConstant, p)

	p, err = ParseScorePolicy("computed")
	require.NoError(t, err)
	assert.Equal(t, ScoreComputed, p)

	_, err = ParseScorePolicy("weighted")
	assert.Error(t, err)
}

func TestUUIDTicketer(t *testing.T) {
	tk := NewUUIDTicketer("")
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		ref := tk.Next()
		require.True(t, strings.HasPrefix(ref, "JIRA-"), ref)
		require.Len(t, ref, len("JIRA-")+8)
		require.False(t, seen[ref], "duplicate %s", ref)
		seen[ref] = true
	}

	assert.True(t, strings.HasPrefix(NewUUIDTicketer("SEC").Next(), "SEC-"))
}
