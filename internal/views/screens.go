package views

import (
	"fmt"
	"strings"
)

type StatCard struct {
	Label string
	Value string
}

type HomePanelData struct {
	Greeting  string
	Stats     []StatCard
	Due       []TaskRowData
	TipTitle  string
	TipBody   string
	TipTopic  string
	EmptyHint string
}

type TaskRowData struct {
	Title         string
	Status        string
	Priority      string
	PriorityColor string
	Due           string
	Overdue       bool
	Project       string
	Assignee      string
	Tags          []string
}

type TasksPanelData struct {
	Filter   string
	Search   string
	Rows     []TaskRowData
	Selected int
}

type TaskDetailData struct {
	Row         TaskRowData
	ID          string
	Description string
	Created     string
	Completed   string
	Estimated   float64
	Actual      float64
}

type ProjectRowData struct {
	Name      string
	Color     string
	Progress  float64
	Tasks     int
	Completed int
	Ends      string
}

type ProjectsPanelData struct {
	Rows     []ProjectRowData
	Selected int
}

type MemberRowData struct {
	Name     string
	Role     string
	Email    string
	Color    string
	Assigned int
}

type TeamPanelData struct {
	Rows     []MemberRowData
	Selected int
}

type DayBarData struct {
	Day       string
	Completed int
	Created   int
	Hours     float64
	Score     float64
}

type AnalyticsPanelData struct {
	WindowDays     int
	TotalCompleted int
	TotalHours     float64
	AvgScore       float64
	Streak         int
	Days           []DayBarData
}

type TipRowData struct {
	Title    string
	Category string
	Read     bool
}

type TipsPanelData struct {
	Category string
	Rows     []TipRowData
	Selected int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderHome(data HomePanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Greeting) + "\n\n")
	for _, s := range data.Stats {
		b.WriteString(fmt.Sprintf("%-14s %s\n", s.Label+":", s.Value))
	}
	b.WriteString("\ndue soon:\n")
	if len(data.Due) == 0 {
		b.WriteString(mutedStyle.Render("  nothing due") + "\n")
	}
	for _, row := range data.Due {
		b.WriteString("  " + renderTaskLine(row) + "\n")
	}
	if data.TipTitle != "" {
		b.WriteString(fmt.Sprintf("\ntip of the day (%s):\n", data.TipTopic))
		b.WriteString(data.TipBody)
	} else if data.EmptyHint != "" {
		b.WriteString("\n" + mutedStyle.Render(data.EmptyHint))
	}
	return strings.TrimSpace(b.String())
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks: %s", data.Filter))
	if data.Search != "" {
		b.WriteString(fmt.Sprintf(" | search: %q", data.Search))
	}
	b.WriteString("\nactions: [j/k]move [f]filter [s]status [c]complete [X]delete\n\n")
	if len(data.Rows) == 0 {
		b.WriteString(mutedStyle.Render("(no tasks)"))
		return b.String()
	}
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %2d %s\n", cursor, i+1, renderTaskLine(row)))
	}
	return strings.TrimSpace(b.String())
}

func renderTaskLine(row TaskRowData) string {
	badge := Swatch(row.PriorityColor)
	line := fmt.Sprintf("%s [%s] %s", badge, statusMark(row.Status), row.Title)
	if row.Due != "" {
		due := "due:" + row.Due
		if row.Overdue {
			due = errorStyle.Render(due + " overdue")
		}
		line += " " + due
	}
	return line
}

func statusMark(status string) string {
	switch status {
	case "Completed":
		return "x"
	case "In Progress":
		return "~"
	case "Blocked":
		return "!"
	default:
		return " "
	}
}

func RenderTaskDetail(data TaskDetailData) string {
	if data.ID == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(titleStyle.Render(data.Row.Title) + "\n")
	if data.Description != "" {
		b.WriteString(data.Description + "\n")
	}
	b.WriteString(fmt.Sprintf("\nid: %s\n", shortID(data.ID)))
	b.WriteString(fmt.Sprintf("status: %s\n", data.Row.Status))
	b.WriteString(fmt.Sprintf("priority: %s\n", data.Row.Priority))
	b.WriteString(fmt.Sprintf("created: %s\n", data.Created))
	if data.Row.Due != "" {
		b.WriteString(fmt.Sprintf("due: %s\n", data.Row.Due))
	}
	if data.Completed != "" {
		b.WriteString(fmt.Sprintf("completed: %s\n", data.Completed))
	}
	b.WriteString(fmt.Sprintf("hours: %.1f actual / %.1f estimated\n", data.Actual, data.Estimated))
	if data.Row.Project != "" {
		b.WriteString(fmt.Sprintf("project: %s\n", data.Row.Project))
	}
	if data.Row.Assignee != "" {
		b.WriteString(fmt.Sprintf("assignee: %s\n", data.Row.Assignee))
	}
	if len(data.Row.Tags) > 0 {
		b.WriteString(fmt.Sprintf("tags: %s\n", strings.Join(data.Row.Tags, ", ")))
	}
	return strings.TrimSpace(b.String())
}

func RenderProjectsPanel(data ProjectsPanelData) string {
	var b strings.Builder
	b.WriteString("projects:\nactions: [j/k]move [r]refresh progress [R]refresh all [X]delete\n\n")
	if len(data.Rows) == 0 {
		b.WriteString(mutedStyle.Render("(no projects)"))
		return b.String()
	}
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %2d %s %s\n", cursor, i+1, Swatch(row.Color), row.Name))
		b.WriteString(fmt.Sprintf("      %s %3.0f%%  %d/%d tasks", ProgressBar(row.Progress, 20), row.Progress*100, row.Completed, row.Tasks))
		if row.Ends != "" {
			b.WriteString("  ends " + row.Ends)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTeamPanel(data TeamPanelData) string {
	var b strings.Builder
	b.WriteString("team:\nactions: [j/k]move [X]delete\n\n")
	if len(data.Rows) == 0 {
		b.WriteString(mutedStyle.Render("(no team members)"))
		return b.String()
	}
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %2d %s %s", cursor, i+1, Swatch(row.Color), row.Name))
		if row.Role != "" {
			b.WriteString(" - " + row.Role)
		}
		b.WriteString(fmt.Sprintf(" (%d tasks)\n", row.Assigned))
		if row.Email != "" {
			b.WriteString("      " + mutedStyle.Render(row.Email) + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderAnalyticsPanel(data AnalyticsPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("analytics: last %d days\nactions: [+/-]window [u]recompute today\n\n", data.WindowDays))
	b.WriteString(fmt.Sprintf("completed: %d\n", data.TotalCompleted))
	b.WriteString(fmt.Sprintf("hours worked: %.1f\n", data.TotalHours))
	b.WriteString(fmt.Sprintf("avg productivity: %.0f%%\n", data.AvgScore))
	b.WriteString(fmt.Sprintf("current streak: %d day(s)\n\n", data.Streak))
	if len(data.Days) == 0 {
		b.WriteString(mutedStyle.Render("(no activity recorded in this window)"))
		return b.String()
	}
	for _, d := range data.Days {
		b.WriteString(fmt.Sprintf("%s %s %3.0f%%  done %d / new %d  %.1fh\n",
			d.Day, ProgressBar(d.Score/100, 10), d.Score, d.Completed, d.Created, d.Hours))
	}
	return strings.TrimSpace(b.String())
}

func RenderTipsPanel(data TipsPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tips: %s\nactions: [j/k]move [enter]mark read [c]category\n\n", data.Category))
	if len(data.Rows) == 0 {
		b.WriteString(mutedStyle.Render("(no tips)"))
		return b.String()
	}
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Selected {
			cursor = ">"
		}
		mark := "*"
		if row.Read {
			mark = " "
		}
		b.WriteString(fmt.Sprintf("%s %s %2d %s %s\n", cursor, mark, i+1, row.Title, mutedStyle.Render("("+row.Category+")")))
	}
	return strings.TrimSpace(b.String())
}

// TipMarkdown is the markdown source shown for a selected tip.
func TipMarkdown(title, category, content string) string {
	return fmt.Sprintf("## %s\n\n%s\n\n_%s_", title, content, category)
}

func RenderOnboarding(pages []string, page int) string {
	if len(pages) == 0 {
		return ""
	}
	if page < 0 {
		page = 0
	}
	if page >= len(pages) {
		page = len(pages) - 1
	}
	var b strings.Builder
	b.WriteString(RenderMarkdown(pages[page]))
	b.WriteString(fmt.Sprintf("\n\n%s\n", mutedStyle.Render(fmt.Sprintf("page %d/%d", page+1, len(pages)))))
	if page == len(pages)-1 {
		b.WriteString("[enter] get started")
	} else {
		b.WriteString("[enter] next  [s] skip")
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func ProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
