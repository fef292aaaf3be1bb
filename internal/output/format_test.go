package output

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrinters(t *testing.T) {
	// Mutates the global color switch.
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	tests := map[string]struct {
		print func(*bytes.Buffer)
		want  string
	}{
		"success": {
			print: func(b *bytes.Buffer) { PrintSuccess(b, "Changelog written") },
			want:  "✓ Changelog written\n",
		},
		"warning": {
			print: func(b *bytes.Buffer) { PrintWarning(b, "dry run") },
			want:  "! dry run\n",
		},
		"link": {
			print: func(b *bytes.Buffer) { PrintLink(b, "Issue", "https://github.com/octo/app/issues/3") },
			want:  "→ Issue: https://github.com/octo/app/issues/3\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(&buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
