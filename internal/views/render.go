package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Tabs       []string
	ActiveTab  string
	LeftPane   string
	RightPane  string
	StatusLine string
	IsError    bool
	Footer     string
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("7"))
	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
)

func RenderApp(data AppData) string {
	left := panelStyle.Width(58).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		right := panelStyle.Width(48).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	lines := []string{headerStyle.Render(data.Header)}
	if len(data.Tabs) > 0 {
		lines = append(lines, renderTabs(data.Tabs, data.ActiveTab))
	}
	lines = append(lines, row)
	if data.StatusLine != "" {
		if data.IsError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func renderTabs(tabs []string, active string) string {
	out := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab == active {
			out = append(out, activeTabStyle.Render(tab))
		} else {
			out = append(out, tabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// Swatch renders a small block in a hex color such as "#4CAF50".
func Swatch(hex string) string {
	if hex == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}
