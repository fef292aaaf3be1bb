package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		isTTY bool
		env   map[string]string
		want  TerminalCapabilities
	}{
		"not a terminal": {
			isTTY: false,
			want:  TerminalCapabilities{},
		},
		"github actions": {
			isTTY: true,
			env:   map[string]string{"GITHUB_ACTIONS": "true"},
			want:  TerminalCapabilities{},
		},
		"generic ci": {
			isTTY: true,
			env:   map[string]string{"CI": "1"},
			want:  TerminalCapabilities{},
		},
		"no color ascii terminal": {
			isTTY: true,
			env:   map[string]string{"NO_COLOR": "1", "GHSCRIPTS_ASCII": "1"},
			want:  TerminalCapabilities{IsTTY: true},
		},
		"interactive": {
			isTTY: true,
			want:  TerminalCapabilities{IsTTY: true, SupportsColor: true, SupportsUnicode: true},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			getenv := func(k string) string { return tt.env[k] }
			// An invalid descriptor makes GetSize fail, leaving Width at zero.
			got := detect(tt.isTTY, -1, getenv)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "✓", SelectSymbols(TerminalCapabilities{SupportsUnicode: true}).Checkmark)
	assert.Equal(t, ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9}, SelectSymbols(TerminalCapabilities{}))
}

func TestTrack(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	tests := map[string]struct {
		err  error
		want string
	}{
		"success": {want: "[OK] Listing releases\n"},
		"failure": {err: boom, want: "[FAIL] Listing releases\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			called := false
			err := NewDisplay(&buf, TerminalCapabilities{}).Track("Listing releases", func() error {
				called = true
				return tt.err
			})

			assert.True(t, called)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
