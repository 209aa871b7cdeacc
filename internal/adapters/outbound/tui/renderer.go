package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/abdidvp/iisaudit/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	faintStyle   = lipgloss.NewStyle().Foreground(faint)
	passStyle    = lipgloss.NewStyle().Foreground(success)
	failStyle    = lipgloss.NewStyle().Foreground(danger)
	warnStyle    = lipgloss.NewStyle().Foreground(warning)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(fg)
	counterStyle = lipgloss.NewStyle().Foreground(accent)
)

// RenderProgress formats one "[n/total] site" progress line.
func RenderProgress(index, total int, site domain.Site) string {
	width := len(fmt.Sprint(total))
	counter := counterStyle.Render(fmt.Sprintf("[%*d/%d]", width, index, total))
	return fmt.Sprintf("  %s %s %s\n", counter, site.Name, dimStyle.Render(fmt.Sprintf("(id %d)", site.ID)))
}

// RenderSummary formats the end-of-run box for an exported report.
func RenderSummary(sum domain.RunSummary) string {
	var b strings.Builder

	title := headerStyle.Render("iisaudit")
	subtitle := dimStyle.Render("Connection String Audit · " + sum.Host)
	rowsLine := titleStyle.Render(fmt.Sprintf("Exported %d rows to %s", sum.Rows, sum.OutputPath))

	counts := strings.Join([]string{
		passStyle.Render(fmt.Sprintf("%d with strings", sum.Succeeded)),
		warnStyle.Render(fmt.Sprintf("%d empty", sum.Empty)),
		failStyle.Render(fmt.Sprintf("%d failed", sum.Failed)),
	}, dimStyle.Render("  ·  "))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + rowsLine + "\n" + counts))
	b.WriteString("\n")
	return b.String()
}

// RenderNothingToExport formats the message for a run without sites.
func RenderNothingToExport() string {
	return "  " + dimStyle.Render("No data to export: no IIS sites were found.") + "\n"
}

// ColumnLabel turns a field name such as "PhysicalPath" into "Physical Path".
func ColumnLabel(field string) string {
	return strings.Join(camelcase.Split(field), " ")
}

// RenderSites formats the enumerated sites as a table.
func RenderSites(sites []domain.Site) string {
	if len(sites) == 0 {
		return "  " + dimStyle.Render("No IIS sites found.") + "\n"
	}

	idLabel := ColumnLabel("SiteID")
	nameLabel := ColumnLabel("SiteName")
	pathLabel := ColumnLabel("PhysicalPath")

	idWidth, nameWidth := len(idLabel), len(nameLabel)
	for _, s := range sites {
		idWidth = max(idWidth, len(fmt.Sprint(s.ID)))
		nameWidth = max(nameWidth, len(s.Name))
	}

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s  %s\n",
		titleStyle.Render(padRight(idLabel, idWidth)),
		titleStyle.Render(padRight(nameLabel, nameWidth)),
		titleStyle.Render(pathLabel),
	)
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", idWidth+nameWidth+len(pathLabel)+4)) + "\n")

	for _, s := range sites {
		path := s.PhysicalPath
		if path == "" {
			path = failStyle.Render("(no root directory)")
		}
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			padRight(fmt.Sprint(s.ID), idWidth),
			padRight(s.Name, nameWidth),
			dimStyle.Render(path),
		)
	}

	b.WriteString("\n")
	return b.String()
}

// RenderHistory formats recorded runs for terminal output.
func RenderHistory(entries []domain.RunSummary) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		status := passStyle.Render(fmt.Sprintf("%d rows", e.Rows))
		if !e.Exported {
			status = dimStyle.Render("nothing exported")
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(e.Timestamp.Format("2006-01-02 15:04")),
			e.Host,
			status,
			faintStyle.Render(fmt.Sprintf("%d sites, %d failed", e.Sites, e.Failed)),
		)
		if e.OutputPath != "" {
			line += "  " + dimStyle.Render(e.OutputPath)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
