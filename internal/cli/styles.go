package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tempo-cli/tempo/internal/models"
)

var (
	dayHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	kindStyles = map[models.BlockKind]lipgloss.Style{
		models.BlockCompulsory: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		models.BlockSchool:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		models.BlockActivity:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.BlockBreak:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
)

// RenderDay formats one day's block sequence for terminal output.
func RenderDay(day string, blocks []models.Block) string {
	var b strings.Builder
	b.WriteString(dayHeaderStyle.Render(day))
	b.WriteString("\n")
	if len(blocks) == 0 {
		b.WriteString("  (free)\n")
		return b.String()
	}
	for _, block := range blocks {
		style, ok := kindStyles[block.Kind]
		if !ok {
			style = lipgloss.NewStyle()
		}
		b.WriteString(fmt.Sprintf("  %s–%s  %s\n", block.Start, block.End, style.Render(block.Name)))
	}
	return b.String()
}

// RenderWarnings formats placement warnings for terminal output.
func RenderWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n⚠️  Placement warnings:\n")
	for _, w := range warnings {
		b.WriteString("  - " + warningStyle.Render(w) + "\n")
	}
	return b.String()
}
