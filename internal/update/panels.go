package update

import (
	"fmt"
	"sort"

	"github.com/taskmaestro/maestro/internal/metrics"
	"github.com/taskmaestro/maestro/internal/model"
	"github.com/taskmaestro/maestro/internal/views"
)

const (
	displayDate     = "Jan 02"
	displayDateTime = "Jan 02 15:04"
)

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.commandInput.Value())
}

func (m Model) renderHomeView() string {
	loc := m.repo.Location()
	now := m.now()
	data := views.HomePanelData{
		Greeting: "Welcome Back!\nLet's make today productive",
		Stats: []views.StatCard{
			{Label: "Active Projects", Value: fmt.Sprint(len(m.Projects.Items))},
			{Label: "Pending", Value: fmt.Sprint(m.Home.Counts.Pending)},
			{Label: "In Progress", Value: fmt.Sprint(m.Home.Counts.InProgress)},
			{Label: "Completed", Value: fmt.Sprint(m.Home.Counts.Completed)},
			{Label: "Streak", Value: fmt.Sprintf("%d day(s)", m.Analytics.Summary.CurrentStreak)},
		},
	}

	var due []model.Task
	for _, t := range m.allTasks {
		if t.IsCompleted() || t.DueDate == nil {
			continue
		}
		if !metrics.Day(*t.DueDate, loc).After(metrics.Day(now, loc)) {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].DueDate.Before(*due[j].DueDate) })
	for _, t := range due {
		data.Due = append(data.Due, m.taskRow(t))
	}
	data.Stats = append(data.Stats, views.StatCard{Label: "Today's Tasks", Value: fmt.Sprint(len(due))})

	if m.Home.Tip != nil {
		data.TipTitle = m.Home.Tip.Title
		data.TipTopic = string(m.Home.Tip.Category)
		data.TipBody = m.Home.Tip.Title + ": " + m.Home.Tip.Content
	}
	if m.Home.Counts.Pending+m.Home.Counts.InProgress == 0 {
		data.EmptyHint = "All caught up! You have no pending tasks"
	}
	return views.RenderHome(data)
}

func (m Model) taskRow(t model.Task) views.TaskRowData {
	row := views.TaskRowData{
		Title:         t.Title,
		Status:        t.Status.DisplayName(),
		Priority:      t.Priority.String(),
		PriorityColor: t.Priority.Color(),
		Tags:          t.Tags,
	}
	loc := m.repo.Location()
	if t.DueDate != nil {
		row.Due = t.DueDate.In(loc).Format(displayDate)
		row.Overdue = !t.IsCompleted() && metrics.Day(*t.DueDate, loc).Before(metrics.Day(m.now(), loc))
	}
	if t.ProjectID != nil {
		row.Project = m.projectNames[t.ProjectID.String()]
	}
	if t.AssignedToID != nil {
		row.Assignee = m.memberNames[t.AssignedToID.String()]
	}
	return row
}

func (m Model) renderTasksView() string {
	rows := make([]views.TaskRowData, 0, len(m.Tasks.Items))
	for _, t := range m.Tasks.Items {
		rows = append(rows, m.taskRow(t))
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		Filter:   m.Tasks.Filter.Kind.Label(),
		Search:   m.Tasks.Filter.Search,
		Rows:     rows,
		Selected: m.Tasks.Cursor,
	})
}

func (m Model) renderTaskDetail() string {
	t, ok := m.selectedTask()
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	loc := m.repo.Location()
	data := views.TaskDetailData{
		Row:         m.taskRow(t),
		ID:          t.ID.String(),
		Description: t.Description,
		Created:     t.CreatedAt.In(loc).Format(displayDateTime),
		Estimated:   t.EstimatedHours,
		Actual:      t.ActualHours,
	}
	if t.CompletedAt != nil {
		data.Completed = t.CompletedAt.In(loc).Format(displayDateTime)
	}
	return views.RenderTaskDetail(data)
}

func (m Model) renderProjectsView() string {
	loc := m.repo.Location()
	rows := make([]views.ProjectRowData, 0, len(m.Projects.Items))
	for _, p := range m.Projects.Items {
		row := views.ProjectRowData{
			Name:      p.Name,
			Color:     p.Color,
			Progress:  p.Progress,
			Tasks:     p.TaskCount,
			Completed: p.CompletedTaskCount,
		}
		if p.EndDate != nil {
			row.Ends = p.EndDate.In(loc).Format(displayDate)
		}
		rows = append(rows, row)
	}
	return views.RenderProjectsPanel(views.ProjectsPanelData{Rows: rows, Selected: m.Projects.Cursor})
}

func (m Model) renderTeamView() string {
	rows := make([]views.MemberRowData, 0, len(m.Team.Items))
	for _, mem := range m.Team.Items {
		rows = append(rows, views.MemberRowData{
			Name:     mem.Name,
			Role:     mem.Role,
			Email:    mem.Email,
			Color:    mem.AvatarColor,
			Assigned: mem.AssignedTaskCount,
		})
	}
	return views.RenderTeamPanel(views.TeamPanelData{Rows: rows, Selected: m.Team.Cursor})
}

func (m Model) renderAnalyticsView() string {
	s := m.Analytics.Summary
	days := make([]views.DayBarData, 0, len(m.Analytics.Snapshots))
	for _, snap := range m.Analytics.Snapshots {
		days = append(days, views.DayBarData{
			Day:       snap.Date.Format("Mon 01/02"),
			Completed: snap.TasksCompleted,
			Created:   snap.TasksCreated,
			Hours:     snap.HoursWorked,
			Score:     snap.ProductivityScore,
		})
	}
	return views.RenderAnalyticsPanel(views.AnalyticsPanelData{
		WindowDays:     m.Analytics.Days,
		TotalCompleted: s.TotalCompleted,
		TotalHours:     s.TotalHours,
		AvgScore:       s.AverageProductivity,
		Streak:         s.CurrentStreak,
		Days:           days,
	})
}

func (m Model) renderTipsView() string {
	category := "All"
	if m.Tips.Category != "" {
		category = string(m.Tips.Category)
	}
	rows := make([]views.TipRowData, 0, len(m.Tips.Items))
	for _, t := range m.Tips.Items {
		rows = append(rows, views.TipRowData{Title: t.Title, Category: string(t.Category), Read: t.IsRead})
	}
	return views.RenderTipsPanel(views.TipsPanelData{Category: category, Rows: rows, Selected: m.Tips.Cursor})
}

func (m Model) renderTipDetail() string {
	if len(m.Tips.Items) == 0 {
		return ""
	}
	t := m.Tips.Items[m.Tips.Cursor]
	return views.RenderMarkdown(views.TipMarkdown(t.Title, string(t.Category), t.Content))
}
