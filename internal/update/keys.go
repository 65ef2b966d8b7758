package update

import (
	"fmt"

	"github.com/taskmaestro/maestro/internal/metrics"
	"github.com/taskmaestro/maestro/internal/model"
	"github.com/taskmaestro/maestro/internal/repository"
)

const maxAnalyticsDays = 90

func moveCursor(cursor, n int, key string) int {
	switch key {
	case "j", "down":
		cursor++
	case "k", "up":
		cursor--
	}
	return clampCursor(cursor, n)
}

func (m Model) selectedTask() (model.Task, bool) {
	if len(m.Tasks.Items) == 0 || m.Tasks.Cursor >= len(m.Tasks.Items) {
		return model.Task{}, false
	}
	return m.Tasks.Items[m.Tasks.Cursor], true
}

// setResult reports the outcome of a repository write and reloads on success.
func (m *Model) setResult(msg string, err error) {
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.LastError = nil
	m.Status = StatusBar{Text: msg}
	m.reload()
}

// nextStatus cycles pending, in progress, completed and back to pending.
// Blocked tasks resume as in progress.
func nextStatus(s model.Status) model.Status {
	switch s {
	case model.StatusPending:
		return model.StatusInProgress
	case model.StatusInProgress, model.StatusBlocked:
		return model.StatusCompleted
	default:
		return model.StatusPending
	}
}

func (m Model) handleTasksKey(key string) Model {
	switch key {
	case "j", "k", "down", "up":
		m.Tasks.Cursor = moveCursor(m.Tasks.Cursor, len(m.Tasks.Items), key)
	case "f":
		kinds := repository.FilterKinds()
		next := kinds[0]
		for i, k := range kinds {
			if k == m.Tasks.Filter.Kind {
				next = kinds[(i+1)%len(kinds)]
				break
			}
		}
		m.Tasks.Filter.Kind = next
		m.Tasks.Cursor = 0
		m.reload()
		if !m.Status.IsError {
			m.Status = StatusBar{Text: "filter: " + next.Label()}
		}
	case "s", "c", "b":
		t, ok := m.selectedTask()
		if !ok {
			m.Status = StatusBar{Text: "no task selected", IsError: true}
			return m
		}
		status := nextStatus(t.Status)
		if key == "c" {
			status = model.StatusCompleted
		} else if key == "b" {
			status = model.StatusBlocked
		}
		_, err := m.repo.UpdateTaskStatus(m.ctx, t.ID, status)
		m.setResult(fmt.Sprintf("%q is now %s", t.Title, status.DisplayName()), err)
	case "X":
		t, ok := m.selectedTask()
		if !ok {
			m.Status = StatusBar{Text: "no task selected", IsError: true}
			return m
		}
		m.setResult(fmt.Sprintf("deleted task %q", t.Title), m.repo.DeleteTask(m.ctx, t.ID))
	}
	return m
}

func (m Model) handleProjectsKey(key string) Model {
	switch key {
	case "j", "k", "down", "up":
		m.Projects.Cursor = moveCursor(m.Projects.Cursor, len(m.Projects.Items), key)
	case "r":
		if len(m.Projects.Items) == 0 {
			m.Status = StatusBar{Text: "no project selected", IsError: true}
			return m
		}
		p := m.Projects.Items[m.Projects.Cursor]
		progress, err := m.repo.UpdateProjectProgress(m.ctx, p.ID)
		m.setResult(fmt.Sprintf("%s is %.0f%% complete", p.Name, progress*100), err)
	case "R":
		m.setResult("refreshed progress for all projects", m.repo.UpdateAllProjectProgress(m.ctx))
	case "X":
		if len(m.Projects.Items) == 0 {
			m.Status = StatusBar{Text: "no project selected", IsError: true}
			return m
		}
		p := m.Projects.Items[m.Projects.Cursor]
		m.setResult(fmt.Sprintf("deleted project %q", p.Name), m.repo.DeleteProject(m.ctx, p.ID))
	}
	return m
}

func (m Model) handleTeamKey(key string) Model {
	switch key {
	case "j", "k", "down", "up":
		m.Team.Cursor = moveCursor(m.Team.Cursor, len(m.Team.Items), key)
	case "X":
		if len(m.Team.Items) == 0 {
			m.Status = StatusBar{Text: "no team member selected", IsError: true}
			return m
		}
		mem := m.Team.Items[m.Team.Cursor]
		m.setResult(fmt.Sprintf("removed %s from the team", mem.Name), m.repo.DeleteTeamMember(m.ctx, mem.ID))
	}
	return m
}

func (m Model) handleAnalyticsKey(key string) Model {
	switch key {
	case "+", "=":
		if m.Analytics.Days < maxAnalyticsDays {
			m.Analytics.Days++
		}
		m.reload()
	case "-":
		if m.Analytics.Days > 1 {
			m.Analytics.Days--
		}
		m.reload()
	case "u":
		snap, err := m.repo.UpdateAnalytics(m.ctx)
		m.setResult(fmt.Sprintf("today: %d completed, score %.0f%%", snap.TasksCompleted, snap.ProductivityScore), err)
	case "0":
		m.Analytics.Days = metrics.DefaultWindowDays
		m.reload()
	}
	return m
}

func (m Model) handleTipsKey(key string) Model {
	switch key {
	case "j", "k", "down", "up":
		m.Tips.Cursor = moveCursor(m.Tips.Cursor, len(m.Tips.Items), key)
	case "enter":
		if len(m.Tips.Items) == 0 {
			return m
		}
		t := m.Tips.Items[m.Tips.Cursor]
		m.setResult(fmt.Sprintf("marked %q as read", t.Title), m.repo.MarkTipAsRead(m.ctx, t.ID))
	case "c":
		categories := model.Categories()
		next := categories[0]
		if m.Tips.Category != "" {
			next = ""
			for i, c := range categories {
				if c == m.Tips.Category && i+1 < len(categories) {
					next = categories[i+1]
				}
			}
		}
		m.Tips.Category = next
		m.Tips.Cursor = 0
		m.reload()
	}
	return m
}
