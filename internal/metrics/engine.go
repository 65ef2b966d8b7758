// Package metrics derives analytics from stored entities. Nothing here
// touches the store or mutates its inputs; every calendar computation takes
// an explicit location so "today" is the caller's local day.
package metrics

import (
	"math"
	"time"

	"github.com/taskmaestro/maestro/internal/model"
)

// MaxStreakDays bounds the backward streak scan.
const MaxStreakDays = 30

// DefaultWindowDays is the analytics window used when callers pass none.
const DefaultWindowDays = 7

const dayKeyLayout = "2006-01-02"

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

// Day returns midnight of t's calendar day in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	lt := t.In(location(loc))
	y, m, d := lt.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, lt.Location())
}

func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(location(loc)).Date()
	by, bm, bd := b.In(location(loc)).Date()
	return ay == by && am == bm && ad == bd
}

func DayKey(t time.Time, loc *time.Location) string {
	return t.In(location(loc)).Format(dayKeyLayout)
}

// AddDays moves a calendar day by n days, staying on midnight across DST changes.
func AddDays(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, day.Location())
}

// ProductivityScore is 100 on a day with nothing created, otherwise the
// completion ratio as a percentage capped at 100.
func ProductivityScore(completed, created int) float64 {
	if created == 0 {
		return 100.0
	}
	return math.Min(100.0*float64(completed)/float64(created), 100.0)
}

// DailySnapshot computes the snapshot for the day containing now. The
// returned value has no ID; the caller assigns or keeps one on upsert.
func DailySnapshot(tasks []model.Task, now time.Time, loc *time.Location) model.AnalyticsSnapshot {
	out := model.AnalyticsSnapshot{Date: Day(now, loc)}
	for _, t := range tasks {
		if SameDay(t.CreatedAt, now, loc) {
			out.TasksCreated++
		}
		if t.CompletedAt != nil && SameDay(*t.CompletedAt, now, loc) {
			out.TasksCompleted++
			out.HoursWorked += t.ActualHours
		}
	}
	out.ProductivityScore = ProductivityScore(out.TasksCompleted, out.TasksCreated)
	return out
}

// Window returns the inclusive day range [today-days, today].
func Window(days int, now time.Time, loc *time.Location) (from, to time.Time) {
	if days < 0 {
		days = 0
	}
	to = Day(now, loc)
	return AddDays(to, -days), to
}

// Streak counts consecutive days, ending today, that have a snapshot with at
// least one completion. A missing day ends the streak.
func Streak(snapshots []model.AnalyticsSnapshot, now time.Time, loc *time.Location) int {
	byDay := make(map[string]model.AnalyticsSnapshot, len(snapshots))
	for _, s := range snapshots {
		byDay[DayKey(s.Date, loc)] = s
	}
	streak := 0
	day := Day(now, loc)
	for i := 0; i < MaxStreakDays; i++ {
		s, ok := byDay[DayKey(day, loc)]
		if !ok || s.TasksCompleted <= 0 {
			break
		}
		streak++
		day = AddDays(day, -1)
	}
	return streak
}

type Summary struct {
	Days                int
	TotalCompleted      int
	TotalCreated        int
	TotalHours          float64
	AverageProductivity float64
	CurrentStreak       int
}

// Summarize rolls up the loaded snapshots. The average is 0 for an empty window.
func Summarize(snapshots []model.AnalyticsSnapshot, now time.Time, loc *time.Location) Summary {
	out := Summary{Days: len(snapshots)}
	totalScore := 0.0
	for _, s := range snapshots {
		out.TotalCompleted += s.TasksCompleted
		out.TotalCreated += s.TasksCreated
		out.TotalHours += s.HoursWorked
		totalScore += s.ProductivityScore
	}
	if len(snapshots) > 0 {
		out.AverageProductivity = totalScore / float64(len(snapshots))
	}
	out.CurrentStreak = Streak(snapshots, now, loc)
	return out
}

// ProjectProgress is the completed share of tasks, or 0 without tasks.
func ProjectProgress(tasks []model.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	return float64(CountCompleted(tasks)) / float64(len(tasks))
}

func CountCompleted(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if t.IsCompleted() {
			n++
		}
	}
	return n
}

type StatusCounts struct {
	Pending    int
	InProgress int
	Completed  int
	Blocked    int
}

func (c StatusCounts) Total() int {
	return c.Pending + c.InProgress + c.Completed + c.Blocked
}

func CountByStatus(tasks []model.Task) StatusCounts {
	var out StatusCounts
	for _, t := range tasks {
		switch t.Status {
		case model.StatusPending:
			out.Pending++
		case model.StatusInProgress:
			out.InProgress++
		case model.StatusCompleted:
			out.Completed++
		case model.StatusBlocked:
			out.Blocked++
		}
	}
	return out
}
