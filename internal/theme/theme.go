package theme

import (
	"io"
	"sync"

	"github.com/fatih/color"
)

// DefaultTheme represents the default theme implementation
type DefaultTheme struct {
	primary   *Style
	secondary *Style
	success   *Style
	error     *Style
	warning   *Style
	info      *Style
	subtle    *Style
	custom    map[string]*Style
	enabled   bool
	mu        sync.RWMutex
}

// NewDefaultTheme creates a new default theme
func NewDefaultTheme() *DefaultTheme {
	return &DefaultTheme{
		primary:   NewStyle(color.FgHiCyan, 0, color.Bold),
		secondary: NewStyle(color.FgBlue, 0),
		success:   NewStyle(color.FgGreen, 0, color.Bold),
		error:     NewStyle(color.FgRed, 0, color.Bold),
		warning:   NewStyle(color.FgYellow, 0),
		info:      NewStyle(color.FgWhite, 0),
		subtle:    NewStyle(color.FgHiBlack, 0),
		custom:    make(map[string]*Style),
		enabled:   !color.NoColor,
	}
}

// NewProfessionalTheme creates a muted blue theme
func NewProfessionalTheme() *DefaultTheme {
	return &DefaultTheme{
		primary:   NewStyle(color.FgBlue, 0, color.Bold),
		secondary: NewStyle(color.FgHiBlue, 0),
		success:   NewStyle(color.FgGreen, 0),
		error:     NewStyle(color.FgRed, 0),
		warning:   NewStyle(color.FgYellow, 0),
		info:      NewStyle(color.FgWhite, 0),
		subtle:    NewStyle(color.FgHiBlack, 0),
		custom: map[string]*Style{
			"cost":   NewStyle(color.FgHiGreen, 0),
			"tokens": NewStyle(color.FgCyan, 0),
		},
		// NO_COLOR is respected through color.NoColor
		enabled: !color.NoColor,
	}
}

// ByName returns a built-in theme. Unknown names get the professional theme.
func ByName(name Name) *DefaultTheme {
	if name == Default {
		return NewDefaultTheme()
	}
	return NewProfessionalTheme()
}

// WithWriter sends every style of the theme to w
func (t *DefaultTheme) WithWriter(w io.Writer) *DefaultTheme {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range []*Style{t.primary, t.secondary, t.success, t.error, t.warning, t.info, t.subtle} {
		s.WithWriter(w)
	}
	for _, s := range t.custom {
		s.WithWriter(w)
	}
	return t
}

// Primary returns the primary style
func (t *DefaultTheme) Primary() *Style {
	return t.primary
}

// Secondary returns the secondary style
func (t *DefaultTheme) Secondary() *Style {
	return t.secondary
}

// Success returns the success style
func (t *DefaultTheme) Success() *Style {
	return t.success
}

// Error returns the error style
func (t *DefaultTheme) Error() *Style {
	return t.error
}

// Warning returns the warning style
func (t *DefaultTheme) Warning() *Style {
	return t.warning
}

// Info returns the info style
func (t *DefaultTheme) Info() *Style {
	return t.info
}

// Subtle returns the subtle style
func (t *DefaultTheme) Subtle() *Style {
	return t.subtle
}

// Custom returns a custom style by name, falling back to info
func (t *DefaultTheme) Custom(name string) *Style {
	t.mu.RLock()
	defer t.mu.RUnlock()

	style, ok := t.custom[name]
	if !ok {
		return t.info
	}
	return style
}

// RegisterCustomStyle registers a new custom style
func (t *DefaultTheme) RegisterCustomStyle(name string, style *Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.custom[name] = style
}

// IsEnabled reports if colors are enabled
func (t *DefaultTheme) IsEnabled() bool {
	return t.enabled && !color.NoColor
}

// SetEnabled enables or disables color output
func (t *DefaultTheme) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = enabled
	for _, s := range []*Style{t.primary, t.secondary, t.success, t.error, t.warning, t.info, t.subtle} {
		s.setColor(enabled)
	}
	for _, s := range t.custom {
		s.setColor(enabled)
	}
}
