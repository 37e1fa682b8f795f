package theme

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Manager handles theme selection and management
type Manager struct {
	currentTheme Theme
}

// NewManager creates a new theme manager with default settings
func NewManager(t Theme) *Manager {
	return &Manager{
		currentTheme: t,
	}
}

// GetCurrentTheme returns the currently active theme
func (m *Manager) GetCurrentTheme() Theme {
	return m.currentTheme
}

// DisplayBanner prints a boxed title with optional subtitles
func (m *Manager) DisplayBanner(title string, width int, subtitle ...string) {
	primary := m.currentTheme.Primary()
	secondary := m.currentTheme.Secondary()

	if width < len(title)+4 {
		width = len(title) + 4
	}
	for _, sub := range subtitle {
		if len(sub)+4 > width {
			width = len(sub) + 4
		}
	}

	primary.Println("╔" + strings.Repeat("═", width-2) + "╗")
	primary.Println(centered(title, width))

	if len(subtitle) > 0 {
		primary.Println("║" + strings.Repeat("─", width-2) + "║")
		for _, sub := range subtitle {
			secondary.Println(centered(sub, width))
		}
	}

	primary.Println("╚" + strings.Repeat("═", width-2) + "╝")
}

func centered(text string, width int) string {
	pad := width - len(text) - 2
	left := pad / 2
	right := pad - left
	return fmt.Sprintf("║%s%s%s║", strings.Repeat(" ", left), text, strings.Repeat(" ", right))
}

// RenderTable writes rows as an aligned table
func (m *Manager) RenderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}
