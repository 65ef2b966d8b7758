package update

import (
	"go.uber.org/multierr"

	"github.com/taskmaestro/maestro/internal/model"
)

// reload re-reads every collection shown on screen. Failed queries leave an
// empty list and surface in the status bar.
func (m *Model) reload() {
	if m.repo == nil {
		return
	}
	var errs error
	var err error

	m.allTasks, err = m.repo.FetchAllTasks(m.ctx)
	errs = multierr.Append(errs, err)
	m.Home.Counts, err = m.repo.StatusCounts(m.ctx)
	errs = multierr.Append(errs, err)
	m.Tasks.Items, err = m.repo.FilterTasks(m.ctx, m.Tasks.Filter)
	errs = multierr.Append(errs, err)
	m.Projects.Items, err = m.repo.ProjectSummaries(m.ctx)
	errs = multierr.Append(errs, err)
	m.Team.Items, err = m.repo.MemberSummaries(m.ctx)
	errs = multierr.Append(errs, err)
	m.Analytics.Summary, m.Analytics.Snapshots, err = m.repo.LoadAnalytics(m.ctx, m.Analytics.Days)
	errs = multierr.Append(errs, err)
	m.Tips.Items, err = m.loadTips()
	errs = multierr.Append(errs, err)

	errs = multierr.Append(errs, m.pickHomeTip())

	m.projectNames = make(map[string]string, len(m.Projects.Items))
	for _, p := range m.Projects.Items {
		m.projectNames[p.ID.String()] = p.Name
	}
	m.memberNames = make(map[string]string, len(m.Team.Items))
	for _, mem := range m.Team.Items {
		m.memberNames[mem.ID.String()] = mem.Name
	}

	m.Tasks.Cursor = clampCursor(m.Tasks.Cursor, len(m.Tasks.Items))
	m.Projects.Cursor = clampCursor(m.Projects.Cursor, len(m.Projects.Items))
	m.Team.Cursor = clampCursor(m.Team.Cursor, len(m.Team.Items))
	m.Tips.Cursor = clampCursor(m.Tips.Cursor, len(m.Tips.Items))

	if errs != nil {
		m.LastError = errs
		m.Status = StatusBar{Text: "some data could not be loaded: " + errs.Error(), IsError: true}
	}
}

func (m *Model) loadTips() ([]model.EducationalTip, error) {
	if m.Tips.Category == "" {
		return m.repo.FetchAllEducationalTips(m.ctx)
	}
	return m.repo.TipsByCategory(m.ctx, m.Tips.Category)
}

// pickHomeTip keeps the current home tip while it is unread, otherwise
// draws a new random unread one.
func (m *Model) pickHomeTip() error {
	if m.Home.Tip != nil {
		unread, err := m.repo.UnreadTips(m.ctx)
		if err != nil {
			return err
		}
		for _, t := range unread {
			if t.ID == m.Home.Tip.ID {
				return nil
			}
		}
	}
	m.Home.Tip = nil
	tip, ok, err := m.repo.RandomUnreadTip(m.ctx)
	if ok {
		m.Home.Tip = &tip
	}
	return err
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
