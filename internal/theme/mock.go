package theme

import "io"

// MockTheme implements Theme with uncolored styles writing to one writer
type MockTheme struct {
	style     *Style
	customs   map[string]*Style
	isEnabled bool
}

var _ Theme = (*MockTheme)(nil)

// NewMockTheme creates a mock theme whose styles all print plain text to w
func NewMockTheme(w io.Writer) *MockTheme {
	s := NewStyle(0, 0).WithWriter(w)
	s.setColor(false)
	return &MockTheme{
		style:   s,
		customs: make(map[string]*Style),
	}
}

// Primary returns the primary style
func (m *MockTheme) Primary() *Style { return m.style }

// Secondary returns the secondary style
func (m *MockTheme) Secondary() *Style { return m.style }

// Success returns the success style
func (m *MockTheme) Success() *Style { return m.style }

// Error returns the error style
func (m *MockTheme) Error() *Style { return m.style }

// Warning returns the warning style
func (m *MockTheme) Warning() *Style { return m.style }

// Info returns the info style
func (m *MockTheme) Info() *Style { return m.style }

// Subtle returns the subtle style
func (m *MockTheme) Subtle() *Style { return m.style }

// Custom returns a custom style by name
func (m *MockTheme) Custom(name string) *Style {
	if style, ok := m.customs[name]; ok {
		return style
	}
	return m.style
}

// SetCustom sets a custom style by name for testing
func (m *MockTheme) SetCustom(name string, s *Style) {
	m.customs[name] = s
}

// IsEnabled reports if colors are enabled
func (m *MockTheme) IsEnabled() bool {
	return m.isEnabled
}

// SetEnabled enables or disables color output
func (m *MockTheme) SetEnabled(enabled bool) {
	m.isEnabled = enabled
}
