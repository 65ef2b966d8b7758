package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskmaestro/maestro/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			if keyStr == m.Keys.Help && m.commandInput.Value() == "" {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}
		if m.CurrentView == ViewOnboarding {
			if keyStr == m.Keys.Quit {
				m.Quitting = true
				return m, tea.Quit
			}
			return m.handleOnboardingKey(keyStr), nil
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if n, err := strconv.Atoi(keyStr); err == nil && n >= 1 && n <= len(Tabs) {
			m.CurrentView = Tabs[n-1]
			return m, nil
		}
		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(keyStr), nil
		case ViewProjects:
			return m.handleProjectsKey(keyStr), nil
		case ViewTeam:
			return m.handleTeamKey(keyStr), nil
		case ViewAnalytics:
			return m.handleAnalyticsKey(keyStr), nil
		case ViewTips:
			return m.handleTipsKey(keyStr), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case ReloadMsg:
		m.reload()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	if m.CurrentView == ViewOnboarding {
		return views.RenderApp(views.AppData{
			Header:     "Task Maestro",
			LeftPane:   views.RenderOnboarding(onboardingPages, m.OnboardingPage),
			StatusLine: m.Status.Text,
			IsError:    m.Status.IsError,
			Footer:     fmt.Sprintf("keys: enter next | s skip | %s quit", m.Keys.Quit),
		})
	}

	leftPane, rightPane := "", ""
	switch m.CurrentView {
	case ViewHome:
		leftPane = m.renderHomeView()
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderTaskDetail()
	case ViewProjects:
		leftPane = m.renderProjectsView()
	case ViewTeam:
		leftPane = m.renderTeamView()
	case ViewAnalytics:
		leftPane = m.renderAnalyticsView()
	case ViewTips:
		leftPane = m.renderTipsView()
		rightPane = m.renderTipDetail()
	}
	extras := strings.TrimSpace(strings.Join([]string{m.renderCommandPalette(), m.renderHelpIfVisible()}, "\n\n"))
	if extras != "" {
		rightPane = strings.TrimSpace(rightPane + "\n\n" + extras)
	}

	tabs := make([]string, 0, len(Tabs))
	for i, v := range Tabs {
		tabs = append(tabs, fmt.Sprintf("%d %s", i+1, v))
	}
	active := ""
	for i, v := range Tabs {
		if v == m.CurrentView {
			active = tabs[i]
		}
	}
	status := m.Status.Text
	if status != "" && m.Status.IsError {
		status = "error: " + status
	}
	return views.RenderApp(views.AppData{
		Header:     "Task Maestro",
		Tabs:       tabs,
		ActiveTab:  active,
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer:     fmt.Sprintf("keys: 1-%d views | / cmd | %s help | %s quit", len(Tabs), m.Keys.Help, m.Keys.Quit),
	})
}
