package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockyard/internal/cli/render"
)

// Panes returns the styles used to draw a layout frame.
func (t *Theme) Panes() *render.Styles {
	var s render.Styles
	s[render.ClassBlank] = lipgloss.NewStyle().Background(t.Background)
	s[render.ClassHeader] = lipgloss.NewStyle().Foreground(t.Muted).Background(t.Surface)
	s[render.ClassHeaderActive] = lipgloss.NewStyle().Foreground(t.Text).Background(t.SurfaceVariant)
	s[render.ClassTab] = lipgloss.NewStyle().Foreground(t.Muted).Background(t.SurfaceVariant)
	s[render.ClassTabSelected] = lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true)
	s[render.ClassClose] = lipgloss.NewStyle().Foreground(t.Error).Background(t.SurfaceVariant)
	s[render.ClassOverflow] = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	s[render.ClassContent] = lipgloss.NewStyle().Foreground(t.Text).Background(t.Background)
	s[render.ClassPlaceholder] = lipgloss.NewStyle().Foreground(t.Warning).Background(t.Background).Italic(true)
	s[render.ClassSplitter] = lipgloss.NewStyle().Foreground(t.Border).Background(t.Background)
	s[render.ClassOutline] = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	s[render.ClassPreview] = lipgloss.NewStyle().Foreground(t.Accent)
	return &s
}
