package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"menugen/pkg/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"}).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#859900", Dark: "#50fa7b"})

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#b58900", Dark: "#f1fa8c"})

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#626262", Dark: "#a8a8a8"})
)

// row renders cells padded to widths, the last cell unpadded.
func row(widths []int, cells ...string) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		if i < len(widths) {
			parts[i] = lipgloss.NewStyle().Width(widths[i]).Render(c)
			continue
		}
		parts[i] = c
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// printSummary lists written menus and the ones skipped for lack of items.
func printSummary(w io.Writer, title string, results []generated) {
	widths := []int{20, 8, 10}
	lines := []string{
		titleStyle.Render("Menus for " + title),
		headerStyle.Render(row(widths, "MENU", "ITEMS", "SIZE", "FILE")),
	}
	written := 0
	for _, r := range results {
		if r.Path == "" {
			lines = append(lines, row(widths,
				string(r.Variant),
				fmt.Sprint(r.Items),
				"-",
				warningStyle.Render("skipped, no qualifying items")))
			continue
		}
		written++
		lines = append(lines, row(widths,
			string(r.Variant),
			fmt.Sprint(r.Items),
			formatSize(r.Bytes),
			successStyle.Render(r.Path)))
	}
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d of %d menus written", written, len(results))))
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// printStores lists each store with the product lines it has feeds for.
func printStores(w io.Writer, stores []config.Store) {
	widths := []int{12, 14, 8}
	lines := []string{headerStyle.Render(row(widths, "ID", "NAME", "TOKEN", "LINES"))}
	for _, s := range stores {
		token := warningStyle.Render("unset")
		if s.Token != "" {
			token = successStyle.Render("set")
		}
		var feeds []string
		for _, line := range config.Lines {
			if s.Feeds[line] != "" {
				feeds = append(feeds, line)
			}
		}
		lines = append(lines, row(widths, s.ID, s.Name, token, strings.Join(feeds, ", ")))
	}
	lines = append(lines, mutedStyle.Render("tokens are read from "+config.TokenEnv("<store>")))
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func formatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
