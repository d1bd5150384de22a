package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// LoadReport renders what a load had to repair.
func (t *Theme) LoadReport(source string, r *entity.LoadReport) string {
	var b strings.Builder
	if r.Clean() {
		b.WriteString(t.SuccessStyle.Render(IconCheck + " " + source + " is valid"))
		return b.String()
	}

	b.WriteString(t.WarningStyle.Render(IconWarn + " " + source + " loaded with repairs"))
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n\n")
		b.WriteString(t.Title.Render(title))
		for _, item := range items {
			b.WriteString("\n  ")
			b.WriteString(t.Subtle.Render("• "))
			b.WriteString(t.Normal.Render(item))
		}
	}

	unknown := make([]string, 0, len(r.Unknown))
	for _, err := range r.Unknown {
		unknown = append(unknown, err.Error())
	}
	section("Unknown content", unknown)
	section("Dropped tabs", ids(r.Dropped))
	section("Placeholders", ids(r.Placeholders))
	section("Coerced", r.Coerced)
	return b.String()
}

func ids(in []entity.NodeID) []string {
	out := make([]string, len(in))
	for i, id := range in {
		out[i] = string(id)
	}
	return out
}

// LayoutsTable renders stored layouts, newest first as given.
func (t *Theme) LayoutsTable(infos []entity.LayoutInfo, now time.Time) string {
	if len(infos) == 0 {
		return t.Subtle.Render("No stored layouts.")
	}

	header := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1)
	muted := cell.Foreground(t.Muted)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers("SESSION", "SIZE", "UPDATED").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0:
				return cell
			default:
				return muted
			}
		})
	for _, info := range infos {
		tbl.Row(string(info.SessionID), FormatBytes(info.Size), RelativeTime(info.UpdatedAt, now))
	}
	return tbl.Render()
}

// RelativeTime formats tm relative to now.
func RelativeTime(tm, now time.Time) string {
	diff := now.Sub(tm)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "min")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	default:
		return tm.Format("Jan 2, 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
