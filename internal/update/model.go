package update

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"

	"github.com/taskmaestro/maestro/internal/metrics"
	"github.com/taskmaestro/maestro/internal/model"
	"github.com/taskmaestro/maestro/internal/repository"
)

type View string

const (
	ViewOnboarding View = "Welcome"
	ViewHome       View = "Home"
	ViewTasks      View = "Tasks"
	ViewProjects   View = "Projects"
	ViewTeam       View = "Team"
	ViewAnalytics  View = "Analytics"
	ViewTips       View = "Tips"
)

// Tabs lists the views reachable with the number keys, in key order.
var Tabs = []View{ViewHome, ViewTasks, ViewProjects, ViewTeam, ViewAnalytics, ViewTips}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Help string
	Quit string
}

type TasksState struct {
	Filter repository.TaskFilter
	Items  []model.Task
	Cursor int
}

type ProjectsState struct {
	Items  []model.ProjectSummary
	Cursor int
}

type TeamState struct {
	Items  []model.MemberSummary
	Cursor int
}

type AnalyticsState struct {
	Days      int
	Summary   metrics.Summary
	Snapshots []model.AnalyticsSnapshot
}

type TipsState struct {
	// Category is empty for all categories.
	Category model.TipCategory
	Items    []model.EducationalTip
	Cursor   int
}

type HomeState struct {
	Counts metrics.StatusCounts
	Tip    *model.EducationalTip
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView    View
	Home           HomeState
	Tasks          TasksState
	Projects       ProjectsState
	Team           TeamState
	Analytics      AnalyticsState
	Tips           TipsState
	Palette        CommandPaletteState
	OnboardingPage int
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	// lookups for rendering task rows
	projectNames map[string]string
	memberNames  map[string]string
	allTasks     []model.Task

	repo          *repository.Repository
	log           *zap.Logger
	ctx           context.Context
	now           func() time.Time
	stateFilePath string
	commandInput  textinput.Model
	helpModel     help.Model
}

type Options struct {
	AnalyticsDays int
	StateFile     string
	Logger        *zap.Logger
	Clock         func() time.Time
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// ReloadMsg asks the model to re-read everything from the repository.
type ReloadMsg struct{}

// NewModel builds the dashboard on top of repo. The onboarding screen is
// shown until the state file records that it was completed.
func NewModel(ctx context.Context, repo *repository.Repository, opts Options) Model {
	m := Model{
		CurrentView: ViewHome,
		Tasks:       TasksState{Filter: repository.TaskFilter{Kind: repository.FilterAll}},
		Analytics:   AnalyticsState{Days: metrics.DefaultWindowDays},
		Keys:        GlobalKeyMap{Help: "?", Quit: "q"},
		repo:        repo,
		log:         zap.NewNop(),
		ctx:         ctx,
		now:         time.Now,
	}
	if opts.AnalyticsDays > 0 {
		m.Analytics.Days = opts.AnalyticsDays
	}
	if opts.Logger != nil {
		m.log = opts.Logger.Named("ui")
	}
	if opts.Clock != nil {
		m.now = opts.Clock
	}
	m.stateFilePath = strings.TrimSpace(opts.StateFile)
	state, err := loadAppState(m.stateFilePath)
	if err != nil {
		m.log.Warn("read state file failed", zap.String("path", m.stateFilePath), zap.Error(err))
	}
	if !state.HasCompletedOnboarding {
		m.CurrentView = ViewOnboarding
	}
	m.initBubbleComponents()
	m.reload()
	return m
}

func (m *Model) initBubbleComponents() {
	ci := textinput.New()
	ci.Prompt = "/"
	ci.Placeholder = "add Write report p:high due:2d"
	ci.CharLimit = 256
	m.commandInput = ci
	m.helpModel = help.New()
}

func isKnownView(v View) bool {
	if v == ViewOnboarding {
		return true
	}
	for _, tab := range Tabs {
		if tab == v {
			return true
		}
	}
	return false
}
