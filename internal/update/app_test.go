package update

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskmaestro/maestro/internal/model"
	"github.com/taskmaestro/maestro/internal/repository"
	"github.com/taskmaestro/maestro/internal/storage"
)

var testNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) *repository.Repository {
	t.Helper()
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "maestro.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return repository.New(store,
		repository.WithClock(func() time.Time { return testNow }),
		repository.WithLocation(time.UTC),
	)
}

func newTestModel(t *testing.T, repo *repository.Repository, onboarded bool) (Model, string) {
	t.Helper()
	statePath := filepath.Join(t.TempDir(), "state.json")
	if onboarded {
		if err := os.WriteFile(statePath, []byte(`{"has_completed_onboarding": true}`), 0o644); err != nil {
			t.Fatalf("write state: %v", err)
		}
	}
	m := NewModel(context.Background(), repo, Options{
		StateFile: statePath,
		Clock:     func() time.Time { return testNow },
	})
	return m, statePath
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func runCommand(t *testing.T, m Model, command string) Model {
	t.Helper()
	return press(t, m, runes("/"), runes(command), enter)
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t, newTestRepo(t), true)
	if m.CurrentView != ViewHome {
		t.Fatalf("expected default view %q, got %q", ViewHome, m.CurrentView)
	}
	if m.Tasks.Filter.Kind != repository.FilterAll {
		t.Fatalf("expected filter all, got %q", m.Tasks.Filter.Kind)
	}
	if m.Analytics.Days != 7 {
		t.Fatalf("expected 7 day analytics window, got %d", m.Analytics.Days)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
}

func TestOnboardingCompletesAndPersists(t *testing.T) {
	repo := newTestRepo(t)
	m, statePath := newTestModel(t, repo, false)
	if m.CurrentView != ViewOnboarding {
		t.Fatalf("expected onboarding view, got %q", m.CurrentView)
	}

	for i := 0; i < len(onboardingPages)-1; i++ {
		m = press(t, m, enter)
	}
	if m.CurrentView != ViewOnboarding || m.OnboardingPage != len(onboardingPages)-1 {
		t.Fatalf("expected last onboarding page, got view %q page %d", m.CurrentView, m.OnboardingPage)
	}
	m = press(t, m, enter)
	if m.CurrentView != ViewHome {
		t.Fatalf("expected home after onboarding, got %q", m.CurrentView)
	}

	state, err := loadAppState(statePath)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if !state.HasCompletedOnboarding {
		t.Fatal("expected onboarding flag persisted")
	}

	again := NewModel(context.Background(), repo, Options{StateFile: statePath})
	if again.CurrentView != ViewHome {
		t.Fatalf("expected onboarding skipped on restart, got %q", again.CurrentView)
	}
}

func TestOnboardingSkip(t *testing.T) {
	m, statePath := newTestModel(t, newTestRepo(t), false)
	m = press(t, m, runes("s"))
	if m.CurrentView != ViewHome {
		t.Fatalf("expected home after skip, got %q", m.CurrentView)
	}
	if _, err := os.Stat(statePath); err != nil {
		t.Fatalf("expected state file written: %v", err)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m, _ := newTestModel(t, newTestRepo(t), true)
	m = press(t, m, runes("2"))
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected tasks view, got %q", m.CurrentView)
	}
	m = press(t, m, runes("6"))
	if m.CurrentView != ViewTips {
		t.Fatalf("expected tips view, got %q", m.CurrentView)
	}
	m = press(t, m, runes("9"))
	if m.CurrentView != ViewTips {
		t.Fatalf("expected view unchanged for unbound key, got %q", m.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m, _ := newTestModel(t, newTestRepo(t), true)
	m = press(t, m, SwitchViewMsg{View: ViewAnalytics})
	if m.CurrentView != ViewAnalytics {
		t.Fatalf("expected analytics view, got %q", m.CurrentView)
	}
	m = press(t, m, SwitchViewMsg{View: View("Unknown")})
	if m.CurrentView != ViewAnalytics {
		t.Fatalf("expected view unchanged for unknown view, got %q", m.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newTestModel(t, newTestRepo(t), true)
	m = press(t, m, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = press(t, m, AppErrorMsg{Err: errors.New("boom")})
	if m.LastError == nil || m.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", m.LastError)
	}
	if !m.Status.IsError || m.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}

	m = press(t, m, ClearStatusMsg{})
	if m.Status.Text != "" || m.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", m.Status)
	}
}

func TestPaletteAddCreatesTask(t *testing.T) {
	m, _ := newTestModel(t, newTestRepo(t), true)
	m = runCommand(t, m, "add Write report p:high due:2d tag:docs")

	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	if m.Palette.Active {
		t.Fatal("expected palette closed after command")
	}
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected tasks view, got %q", m.CurrentView)
	}
	if len(m.Tasks.Items) != 1 {
		t.Fatalf("expected 1 task, got %d", len(m.Tasks.Items))
	}
	task := m.Tasks.Items[0]
	if task.Title != "Write report" || task.Priority != model.PriorityHigh {
		t.Fatalf("unexpected task: %+v", task)
	}
	want := time.Date(2026, 10, 21, 23, 59, 0, 0, time.UTC)
	if task.DueDate == nil || !task.DueDate.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, task.DueDate)
	}
	if len(task.Tags) != 1 || task.Tags[0] != "docs" {
		t.Fatalf("unexpected tags: %v", task.Tags)
	}
	if m.Home.Counts.Pending != 1 {
		t.Fatalf("expected 1 pending task on home, got %d", m.Home.Counts.Pending)
	}
}

func TestPaletteDoneUpdatesAnalytics(t *testing.T) {
	m, _ := newTestModel(t, newTestRepo(t), true)
	m = runCommand(t, m, "add Ship it")
	m = runCommand(t, m, "done 1")

	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	if m.Tasks.Items[0].Status != model.StatusCompleted {
		t.Fatalf("expected completed task, got %q", m.Tasks.Items[0].Status)
	}
	if m.Analytics.Summary.TotalCompleted != 1 {
		t.Fatalf("expected 1 completion in analytics, got %d", m.Analytics.Summary.TotalCompleted)
	}
	if m.Analytics.Summary.CurrentStreak != 1 {
		t.Fatalf("expected streak 1, got %d", m.Analytics.Summary.CurrentStreak)
	}
}

func TestPaletteErrors(t *testing.T) {
	m, _ := newTestModel(t, newTestRepo(t), true)

	m = runCommand(t, m, "frobnicate")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}

	m = runCommand(t, m, "done 3")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no task matches") {
		t.Fatalf("expected missing task error, got %+v", m.Status)
	}

	m = runCommand(t, m, "add Orphan project:Nowhere")
	if !m.Status.IsError {
		t.Fatalf("expected unknown project error, got %+v", m.Status)
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m, _ := newTestModel(t, newTestRepo(t), true)
	m = press(t, m, runes("/"), runes("add x"))
	if !m.Palette.Active || m.Palette.Input != "add x" {
		t.Fatalf("unexpected palette state: %+v", m.Palette)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Palette.Active || m.Palette.Input != "" {
		t.Fatalf("expected palette closed, got %+v", m.Palette)
	}
	if len(m.Tasks.Items) != 0 {
		t.Fatalf("expected no tasks created, got %d", len(m.Tasks.Items))
	}
}

func TestSeedAndProjectsFlow(t *testing.T) {
	m, _ := newTestModel(t, newTestRepo(t), true)
	m = runCommand(t, m, "seed")
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	if len(m.Projects.Items) != 2 || len(m.Team.Items) != 3 || len(m.allTasks) != 3 {
		t.Fatalf("unexpected seed sizes: %d projects, %d members, %d tasks",
			len(m.Projects.Items), len(m.Team.Items), len(m.allTasks))
	}
	if len(m.Tips.Items) != len(model.TipCatalog()) {
		t.Fatalf("expected %d tips, got %d", len(model.TipCatalog()), len(m.Tips.Items))
	}
	if m.Home.Tip == nil {
		t.Fatal("expected a home tip after seeding")
	}

	m = runCommand(t, m, "add Extra project:mobile_app_development")
	if !m.Status.IsError {
		t.Fatal("expected project lookup by exact name only")
	}
	m = runCommand(t, m, "delete project 1")
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	if len(m.Projects.Items) != 1 {
		t.Fatalf("expected 1 project left, got %d", len(m.Projects.Items))
	}
}

func TestTasksKeys(t *testing.T) {
	m, _ := newTestModel(t, newTestRepo(t), true)
	m = runCommand(t, m, "add First")
	m = runCommand(t, m, "add Second p:urgent")
	m = press(t, m, runes("2"))

	m = press(t, m, runes("j"), runes("s"))
	selected, ok := m.selectedTask()
	if !ok || selected.Status != model.StatusInProgress {
		t.Fatalf("expected selected task in progress, got %+v", selected)
	}

	m = press(t, m, runes("f"))
	if m.Tasks.Filter.Kind != repository.FilterPending {
		t.Fatalf("expected pending filter, got %q", m.Tasks.Filter.Kind)
	}
	if len(m.Tasks.Items) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(m.Tasks.Items))
	}

	m = press(t, m, runes("X"))
	if len(m.allTasks) != 1 {
		t.Fatalf("expected 1 task left, got %d", len(m.allTasks))
	}
}

func TestTipsMarkRead(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.SeedEducationalTips(context.Background()); err != nil {
		t.Fatalf("seed tips: %v", err)
	}
	m, _ := newTestModel(t, repo, true)
	m = press(t, m, runes("6"), enter)
	if !m.Tips.Items[0].IsRead {
		t.Fatal("expected first tip marked read")
	}

	m = press(t, m, runes("c"))
	if m.Tips.Category != model.Categories()[0] {
		t.Fatalf("expected first category, got %q", m.Tips.Category)
	}
	for _, tip := range m.Tips.Items {
		if tip.Category != m.Tips.Category {
			t.Fatalf("unexpected tip category %q", tip.Category)
		}
	}
}

func TestAnalyticsWindowKeys(t *testing.T) {
	m, _ := newTestModel(t, newTestRepo(t), true)
	m = press(t, m, runes("5"), runes("+"), runes("+"))
	if m.Analytics.Days != 9 {
		t.Fatalf("expected 9 day window, got %d", m.Analytics.Days)
	}
	m = press(t, m, runes("0"))
	if m.Analytics.Days != 7 {
		t.Fatalf("expected reset window, got %d", m.Analytics.Days)
	}
	m = runCommand(t, m, "window 30")
	if m.Analytics.Days != 30 || m.CurrentView != ViewAnalytics {
		t.Fatalf("unexpected analytics state: days %d view %q", m.Analytics.Days, m.CurrentView)
	}
}

func TestViewRendersActiveScreen(t *testing.T) {
	m, _ := newTestModel(t, newTestRepo(t), true)
	out := m.View()
	if !strings.Contains(out, "Welcome Back!") {
		t.Fatalf("expected home greeting in view, got %q", out)
	}

	m = press(t, m, runes("?"))
	if !m.HelpVisible || !strings.Contains(m.View(), "help (home)") {
		t.Fatal("expected help panel in view")
	}

	m = press(t, m, runes("q"))
	if !m.Quitting || m.View() != "" {
		t.Fatal("expected quitting model to render nothing")
	}
}
