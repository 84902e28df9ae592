package ui

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[\x30-\x3f]*[\x20-\x2f]*[\x40-\x7e]`)

func TestPlainStyler(t *testing.T) {
	s := Plain()
	for _, l := range []Label{LabelPlain, LabelHeader, LabelCritical, LabelScore} {
		assert.Equal(t, "FAIL (CRITICAL)", s.Label(l, "FAIL (CRITICAL)"))
	}
	assert.Equal(t, "[+] ", s.Icon("✅ ", "[+] "))
}

func TestStylerOnPipeHasNoANSI(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))

	s := NewStyler(&buf, true)
	for _, l := range []Label{LabelHeader, LabelInfo, LabelReady, LabelSecure, LabelCritical, LabelHigh, LabelWarning, LabelTicket, LabelBold, LabelScore} {
		out := s.Label(l, "SECURE")
		assert.False(t, ansiPattern.MatchString(out), "label %d leaked ANSI: %q", l, out)
		assert.Equal(t, "SECURE", out)
	}
	assert.Equal(t, "#", s.Icon("█", "#"))
}

func TestStylerCodes(t *testing.T) {
	var buf bytes.Buffer

	open, close := NewStyler(&buf, true).Codes(LabelCritical)
	assert.Empty(t, open)
	assert.Empty(t, close)

	open, close = Plain().Codes(LabelCritical)
	assert.Empty(t, open+close)

	s := NewStylerProfile(&buf, termenv.TrueColor)
	open, close = s.Codes(LabelCritical)
	assert.Regexp(t, `^\x1b\[[0-9;]+m$`, open)
	assert.Equal(t, "\x1b[0m", close)
	assert.Equal(t, open+"FAIL"+close, s.Label(LabelCritical, "FAIL"))
}
