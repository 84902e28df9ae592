package ui

import (
	"context"
	"io"
	"strings"
	"time"
)

// Console writes whole lines to w and remembers whether the cursor sits in
// the middle of a line, so an interrupted run can end on a clean line.
// The first write error is sticky and reported by Err.
type Console struct {
	w       io.Writer
	pacer   Pacer
	midLine bool
	closing string
	err     error
}

// NewConsole wraps w. A nil pacer means NoPacing.
func NewConsole(w io.Writer, pacer Pacer) *Console {
	if pacer == nil {
		pacer = NoPacing{}
	}
	return &Console{w: w, pacer: pacer}
}

func (c *Console) write(s string) {
	if c.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(c.w, s); err != nil {
		c.err = err
		return
	}
	c.midLine = !strings.HasSuffix(s, "\n")
}

// Println writes s followed by a newline in a single write
func (c *Console) Println(s string) {
	c.write(s + "\n")
}

// Print writes s as is, leaving the line open
func (c *Console) Print(s string) {
	c.write(s)
}

// Type writes s one rune at a time, pacing each keystroke, then ends the line
func (c *Console) Type(ctx context.Context, s string) error {
	return c.TypeStyled(ctx, "", s, "")
}

// TypeStyled types text between the open and close escape sequences. The
// sequences are written whole, so an interrupted line never holds half an
// escape, and Terminate emits close before ending the line.
func (c *Console) TypeStyled(ctx context.Context, open, text, close string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.write(open)
	c.closing = close
	for _, r := range text {
		if err := c.pacer.Keystroke(ctx); err != nil {
			return err
		}
		c.write(string(r))
	}
	c.closing = ""
	c.write(close + "\n")
	return c.err
}

// Pause delegates to the pacer
func (c *Console) Pause(ctx context.Context, d time.Duration) error {
	return c.pacer.Pause(ctx, d)
}

// Terminate resets any open style and ends a partially written line
func (c *Console) Terminate() {
	if c.midLine {
		c.write(c.closing + "\n")
	}
	c.closing = ""
}

// Err returns the first write error
func (c *Console) Err() error {
	return c.err
}
