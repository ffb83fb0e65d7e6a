package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"cloum/internal/ui"
)

func TestPrinterLines(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf)

	p.Success("connected to %s", "prod")
	p.Warn("identity mismatch")
	p.Fail("cluster unreachable")
	p.Info("plain line")
	p.Detail("region: %s", "us-east-1")

	out := buf.String()
	assert.Contains(t, out, "✓ connected to prod")
	assert.Contains(t, out, "! identity mismatch")
	assert.Contains(t, out, "✗ cluster unreachable")
	assert.Contains(t, out, "plain line")
	assert.Contains(t, out, "  region: us-east-1")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect bool
	}{
		{"yes", "y\n", true},
		{"yes_word", "Yes\n", true},
		{"no", "n\n", false},
		{"default_empty", "\n", false},
		{"garbage", "maybe\n", false},
		{"eof", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := ui.Confirm(strings.NewReader(tt.input), &out, "Delete everything?")
			assert.Equal(t, tt.expect, got)
			assert.Contains(t, out.String(), "Delete everything? [y/N]:")
		})
	}
}
