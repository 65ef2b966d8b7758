package metrics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaestro/maestro/internal/model"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func snapshot(day time.Time, completed int) model.AnalyticsSnapshot {
	return model.AnalyticsSnapshot{ID: uuid.New(), Date: day, TasksCompleted: completed, ProductivityScore: 100}
}

func TestProductivityScoreBoundaries(t *testing.T) {
	assert.Equal(t, 100.0, ProductivityScore(0, 0))
	assert.Equal(t, 100.0, ProductivityScore(7, 0))
	assert.Equal(t, 50.0, ProductivityScore(2, 4))
	assert.Equal(t, 100.0, ProductivityScore(5, 2))
	assert.Equal(t, 0.0, ProductivityScore(0, 3))
}

func TestDailySnapshotCountsOnlyToday(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, loc)
	yesterday := now.AddDate(0, 0, -1)
	doneToday := now.Add(-time.Hour)
	doneYesterday := yesterday

	tasks := []model.Task{
		{ID: uuid.New(), CreatedAt: now, Status: model.StatusPending},
		{ID: uuid.New(), CreatedAt: now, Status: model.StatusCompleted, CompletedAt: &doneToday, ActualHours: 2.5},
		{ID: uuid.New(), CreatedAt: yesterday, Status: model.StatusCompleted, CompletedAt: &doneToday, ActualHours: 1},
		{ID: uuid.New(), CreatedAt: yesterday, Status: model.StatusCompleted, CompletedAt: &doneYesterday, ActualHours: 4},
		{ID: uuid.New(), CreatedAt: now, Status: model.StatusInProgress, CompletedAt: &doneToday, ActualHours: 0.5},
	}

	snap := DailySnapshot(tasks, now, loc)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, loc), snap.Date)
	assert.Equal(t, 3, snap.TasksCreated)
	assert.Equal(t, 3, snap.TasksCompleted)
	assert.InDelta(t, 4.0, snap.HoursWorked, 1e-9)
	assert.Equal(t, 100.0, snap.ProductivityScore)
}

func TestDailySnapshotUsesCallerLocation(t *testing.T) {
	tokyo := mustLoad(t, "Asia/Tokyo")
	// 23:30 UTC on the 18th is already the 19th in Tokyo.
	created := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, tokyo)

	snap := DailySnapshot([]model.Task{{ID: uuid.New(), CreatedAt: created}}, now, tokyo)
	assert.Equal(t, 1, snap.TasksCreated)
	assert.Equal(t, 0.0, snap.ProductivityScore)

	inUTC := DailySnapshot([]model.Task{{ID: uuid.New(), CreatedAt: created}}, now, time.UTC)
	assert.Equal(t, 0, inUTC.TasksCreated)
}

func TestStreakStopsAtMissingDay(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, loc)
	today := Day(now, loc)
	snaps := []model.AnalyticsSnapshot{
		snapshot(AddDays(today, -3), 4),
		snapshot(AddDays(today, -1), 1),
		snapshot(today, 2),
	}
	assert.Equal(t, 2, Streak(snaps, now, loc))
}

func TestStreakStopsAtZeroCompletionDay(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, loc)
	today := Day(now, loc)
	snaps := []model.AnalyticsSnapshot{
		snapshot(AddDays(today, -2), 3),
		snapshot(AddDays(today, -1), 0),
		snapshot(today, 1),
	}
	assert.Equal(t, 1, Streak(snaps, now, loc))
}

func TestStreakRequiresToday(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, loc)
	today := Day(now, loc)
	snaps := []model.AnalyticsSnapshot{snapshot(AddDays(today, -1), 5)}
	assert.Equal(t, 0, Streak(snaps, now, loc))
	assert.Equal(t, 0, Streak(nil, now, loc))
}

func TestStreakCappedAtThirtyDays(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, loc)
	today := Day(now, loc)
	snaps := make([]model.AnalyticsSnapshot, 0, 40)
	for i := 0; i < 40; i++ {
		snaps = append(snaps, snapshot(AddDays(today, -i), 1))
	}
	assert.Equal(t, MaxStreakDays, Streak(snaps, now, loc))
}

func TestWindowInclusiveBounds(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 10, 19, 22, 0, 0, 0, loc)
	from, to := Window(7, now, loc)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, loc), to)

	from, to = Window(-3, now, loc)
	assert.Equal(t, from, to)
}

func TestSummarize(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, loc)
	today := Day(now, loc)

	empty := Summarize(nil, now, loc)
	assert.Equal(t, Summary{}, empty)

	snaps := []model.AnalyticsSnapshot{
		{Date: AddDays(today, -1), TasksCompleted: 2, TasksCreated: 4, HoursWorked: 3, ProductivityScore: 50},
		{Date: today, TasksCompleted: 1, TasksCreated: 0, HoursWorked: 1.5, ProductivityScore: 100},
	}
	sum := Summarize(snaps, now, loc)
	assert.Equal(t, 2, sum.Days)
	assert.Equal(t, 3, sum.TotalCompleted)
	assert.Equal(t, 4, sum.TotalCreated)
	assert.InDelta(t, 4.5, sum.TotalHours, 1e-9)
	assert.InDelta(t, 75.0, sum.AverageProductivity, 1e-9)
	assert.Equal(t, 2, sum.CurrentStreak)
}

func TestProjectProgress(t *testing.T) {
	assert.Equal(t, 0.0, ProjectProgress(nil))

	tasks := []model.Task{
		{Status: model.StatusCompleted},
		{Status: model.StatusPending},
		{Status: model.StatusBlocked},
		{Status: model.StatusCompleted},
	}
	assert.Equal(t, 0.5, ProjectProgress(tasks))

	counts := CountByStatus(tasks)
	assert.Equal(t, StatusCounts{Pending: 1, Completed: 2, Blocked: 1}, counts)
	assert.Equal(t, 4, counts.Total())
}
