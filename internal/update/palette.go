package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskmaestro/maestro/internal/commands"
	"github.com/taskmaestro/maestro/internal/model"
	"github.com/taskmaestro/maestro/internal/repository"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func notFound(kind, target string) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no %s matches %q", kind, target)}
}

// matchTarget resolves a 1-based row number or an id prefix against ids.
func matchTarget(target string, ids []uuid.UUID) (int, bool) {
	if n, err := strconv.Atoi(target); err == nil {
		if n >= 1 && n <= len(ids) {
			return n - 1, true
		}
		return 0, false
	}
	prefix := strings.ToLower(target)
	found := -1
	for i, id := range ids {
		if strings.HasPrefix(id.String(), prefix) {
			if found >= 0 {
				return 0, false
			}
			found = i
		}
	}
	return found, found >= 0
}

func (m Model) findTask(target string) (model.Task, error) {
	ids := make([]uuid.UUID, len(m.Tasks.Items))
	for i, t := range m.Tasks.Items {
		ids[i] = t.ID
	}
	if i, ok := matchTarget(target, ids); ok {
		return m.Tasks.Items[i], nil
	}
	// fall back to tasks hidden by the current filter
	if _, err := strconv.Atoi(target); err != nil {
		ids = ids[:0]
		for _, t := range m.allTasks {
			ids = append(ids, t.ID)
		}
		if i, ok := matchTarget(target, ids); ok {
			return m.allTasks[i], nil
		}
	}
	return model.Task{}, notFound("task", target)
}

func (m Model) findProject(target string) (model.ProjectSummary, error) {
	for _, p := range m.Projects.Items {
		if strings.EqualFold(p.Name, target) {
			return p, nil
		}
	}
	ids := make([]uuid.UUID, len(m.Projects.Items))
	for i, p := range m.Projects.Items {
		ids[i] = p.ID
	}
	if i, ok := matchTarget(target, ids); ok {
		return m.Projects.Items[i], nil
	}
	return model.ProjectSummary{}, notFound("project", target)
}

func (m Model) findMember(target string) (model.MemberSummary, error) {
	for _, mem := range m.Team.Items {
		if strings.EqualFold(mem.Name, target) {
			return mem, nil
		}
	}
	ids := make([]uuid.UUID, len(m.Team.Items))
	for i, mem := range m.Team.Items {
		ids[i] = mem.ID
	}
	if i, ok := matchTarget(target, ids); ok {
		return m.Team.Items[i], nil
	}
	return model.MemberSummary{}, notFound("team member", target)
}

func (m Model) findTip(target string) (model.EducationalTip, error) {
	ids := make([]uuid.UUID, len(m.Tips.Items))
	for i, t := range m.Tips.Items {
		ids[i] = t.ID
	}
	if i, ok := matchTarget(target, ids); ok {
		return m.Tips.Items[i], nil
	}
	return model.EducationalTip{}, notFound("tip", target)
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	mutated := false
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			due, err := commands.ParseDue(a.Due, m.now(), m.repo.Location())
			if err != nil {
				return commands.Result{}, err
			}
			in := repository.NewTask{Title: a.Title, Priority: a.Priority, DueDate: due, Tags: a.Tags}
			if a.Project != "" {
				p, err := m.findProject(a.Project)
				if err != nil {
					return commands.Result{}, err
				}
				in.ProjectID = &p.ID
			}
			t, err := m.repo.CreateTask(m.ctx, in)
			if err != nil {
				return commands.Result{}, err
			}
			mutated = true
			m.CurrentView = ViewTasks
			return commands.Result{Message: fmt.Sprintf("added task: %s", t.Title)}, nil
		},
		Status: func(s commands.StatusArgs) (commands.Result, error) {
			t, err := m.findTask(s.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := m.repo.UpdateTaskStatus(m.ctx, t.ID, s.Status); err != nil {
				return commands.Result{}, err
			}
			mutated = true
			return commands.Result{Message: fmt.Sprintf("%q is now %s", t.Title, s.Status.DisplayName())}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			var name string
			switch d.Kind {
			case commands.DeleteTask:
				t, err := m.findTask(d.Target)
				if err != nil {
					return commands.Result{}, err
				}
				name = t.Title
				err = m.repo.DeleteTask(m.ctx, t.ID)
				if err != nil {
					return commands.Result{}, err
				}
			case commands.DeleteProject:
				p, err := m.findProject(d.Target)
				if err != nil {
					return commands.Result{}, err
				}
				name = p.Name
				if err := m.repo.DeleteProject(m.ctx, p.ID); err != nil {
					return commands.Result{}, err
				}
			case commands.DeleteMember:
				mem, err := m.findMember(d.Target)
				if err != nil {
					return commands.Result{}, err
				}
				name = mem.Name
				if err := m.repo.DeleteTeamMember(m.ctx, mem.ID); err != nil {
					return commands.Result{}, err
				}
			}
			mutated = true
			return commands.Result{Message: fmt.Sprintf("deleted %s %q", d.Kind, name)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			view := ViewHome
			for _, v := range Tabs {
				if strings.EqualFold(string(v), s.Subject) {
					view = v
				}
			}
			m.CurrentView = view
			if view != ViewTasks {
				return commands.Result{Message: fmt.Sprintf("showing %s", s.Subject)}, nil
			}
			if s.Filter != "" {
				kind := repository.FilterKind(s.Filter)
				known := false
				for _, k := range repository.FilterKinds() {
					if k == kind {
						known = true
					}
				}
				if !known {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter %q", s.Filter)}
				}
				m.Tasks.Filter.Kind = kind
			}
			m.Tasks.Filter.Search = s.Search
			m.Tasks.Cursor = 0
			mutated = true
			return commands.Result{Message: fmt.Sprintf("showing %s tasks", strings.ToLower(m.Tasks.Filter.Kind.Label()))}, nil
		},
		Window: func(w commands.WindowArgs) (commands.Result, error) {
			days := w.Days
			if days > maxAnalyticsDays {
				days = maxAnalyticsDays
			}
			m.Analytics.Days = days
			m.CurrentView = ViewAnalytics
			mutated = true
			return commands.Result{Message: fmt.Sprintf("analytics window: %d days", days)}, nil
		},
		Project: func(p commands.ProjectArgs) (commands.Result, error) {
			in := repository.NewProject{Name: p.Name, Color: p.Color}
			if p.End != "" {
				end, err := commands.ParseDue(p.End, m.now(), m.repo.Location())
				if err != nil {
					return commands.Result{}, err
				}
				in.EndDate = end
			}
			created, err := m.repo.CreateProject(m.ctx, in)
			if err != nil {
				return commands.Result{}, err
			}
			mutated = true
			m.CurrentView = ViewProjects
			return commands.Result{Message: fmt.Sprintf("created project %s", created.Name)}, nil
		},
		Member: func(a commands.MemberArgs) (commands.Result, error) {
			created, err := m.repo.CreateTeamMember(m.ctx, repository.NewTeamMember{Name: a.Name, Email: a.Email, Role: a.Role})
			if err != nil {
				return commands.Result{}, err
			}
			mutated = true
			m.CurrentView = ViewTeam
			return commands.Result{Message: fmt.Sprintf("added %s to the team", created.Name)}, nil
		},
		Progress: func() (commands.Result, error) {
			if err := m.repo.UpdateAllProjectProgress(m.ctx); err != nil {
				return commands.Result{}, err
			}
			mutated = true
			return commands.Result{Message: "refreshed progress for all projects"}, nil
		},
		Read: func(r commands.ReadArgs) (commands.Result, error) {
			t, err := m.findTip(r.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.repo.MarkTipAsRead(m.ctx, t.ID); err != nil {
				return commands.Result{}, err
			}
			mutated = true
			return commands.Result{Message: fmt.Sprintf("marked %q as read", t.Title)}, nil
		},
		Seed: func() (commands.Result, error) {
			if err := m.repo.SeedSampleData(m.ctx); err != nil {
				return commands.Result{}, err
			}
			mutated = true
			return commands.Result{Message: "sample data loaded"}, nil
		},
		Reset: func() (commands.Result, error) {
			if err := m.repo.DeleteAll(m.ctx); err != nil {
				return commands.Result{}, err
			}
			mutated = true
			m.Home.Tip = nil
			return commands.Result{Message: "all data deleted"}, nil
		},
	})
	if err != nil {
		m.log.Debug("command failed", zap.String("command", string(cmd.Type)), zap.Error(err))
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	if mutated {
		m.reload()
	}

	m.closePalette()
	return m
}
