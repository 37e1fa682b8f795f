package theme

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_DisplayBanner(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		width    int
		subtitle []string
		contains []string
		lines    int
	}{
		{
			name:     "title only",
			title:    "Genum",
			width:    20,
			contains: []string{"Genum", "╔", "╚"},
			lines:    3,
		},
		{
			name:     "with subtitles",
			title:    "Genum",
			width:    20,
			subtitle: []string{"v1.0.0", "openai, anthropic"},
			contains: []string{"v1.0.0", "openai, anthropic", "─"},
			lines:    6,
		},
		{
			name:     "width grows to fit",
			title:    "a title longer than width",
			width:    4,
			contains: []string{"a title longer than width"},
			lines:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			m := NewManager(NewMockTheme(&buf))

			m.DisplayBanner(tt.title, tt.width, tt.subtitle...)

			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			require.Len(t, lines, tt.lines)

			first := len([]rune(lines[0]))
			for _, l := range lines {
				assert.Equal(t, first, len([]rune(l)), "banner lines must share a width: %q", l)
			}
		})
	}
}

func TestManager_RenderTable(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(NewMockTheme(&buf))

	m.RenderTable(&buf, []string{"Vendor", "Model"}, [][]string{
		{"openai", "gpt-4o"},
		{"gemini", "gemini-2.5-flash"},
	})

	out := buf.String()
	assert.Contains(t, out, "VENDOR")
	assert.Contains(t, out, "gpt-4o")
	assert.Contains(t, out, "gemini-2.5-flash")
}

func TestByName(t *testing.T) {
	assert.NotNil(t, ByName(Default).Primary())
	assert.NotNil(t, ByName(Professional).Custom("cost"))
	th := ByName("unknown")
	assert.Same(t, th.Info(), th.Custom("missing"), "unknown custom style falls back")
}

func TestDefaultTheme_WithWriter(t *testing.T) {
	var buf bytes.Buffer
	th := NewDefaultTheme().WithWriter(&buf)
	th.SetEnabled(false)

	th.Success().Printf("saved %d", 3)
	th.Error().Println("failed")

	assert.Equal(t, "saved 3failed\n", buf.String())
	assert.False(t, th.IsEnabled())
}
