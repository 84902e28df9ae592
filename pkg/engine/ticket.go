package engine

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Ticketer issues manual-approval ticket references
type Ticketer interface {
	Next() string
}

// UUIDTicketer derives references from random UUIDs and never repeats one.
// The zero value is usable and issues bare "-XXXXXXXX" references.
type UUIDTicketer struct {
	Prefix string
	issued map[string]bool
}

// NewUUIDTicketer creates a ticketer issuing PREFIX-XXXXXXXX references
func NewUUIDTicketer(prefix string) *UUIDTicketer {
	if prefix == "" {
		prefix = "JIRA"
	}
	return &UUIDTicketer{Prefix: prefix, issued: make(map[string]bool)}
}

func (t *UUIDTicketer) Next() string {
	if t.issued == nil {
		t.issued = make(map[string]bool)
	}
	for {
		id := uuid.New()
		ref := t.Prefix + "-" + strings.ToUpper(hex.EncodeToString(id[:4]))
		if !t.issued[ref] {
			t.issued[ref] = true
			return ref
		}
	}
}
