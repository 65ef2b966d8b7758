package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskmaestro/maestro/internal/metrics"
	"github.com/taskmaestro/maestro/internal/model"
	"github.com/taskmaestro/maestro/internal/storage"
)

// UpdateAnalytics recomputes today's snapshot from all tasks and upserts it.
// Repeated calls on the same day rewrite the same row.
func (r *Repository) UpdateAnalytics(ctx context.Context) (model.AnalyticsSnapshot, error) {
	now := r.now()
	tasks, err := r.store.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		r.queryFailed("load tasks for analytics", err)
		return model.AnalyticsSnapshot{}, fmt.Errorf("load tasks: %w", err)
	}
	snap := metrics.DailySnapshot(tasks, now, r.loc)

	existing, err := r.store.GetSnapshotByDay(ctx, metrics.DayKey(snap.Date, r.loc))
	found, err := resolve(err)
	if err != nil {
		r.queryFailed("load snapshot", err)
		return model.AnalyticsSnapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	if found {
		snap.ID = existing.ID
	} else {
		snap.ID = uuid.New()
	}

	if err := r.store.UpsertSnapshot(ctx, snap); err != nil {
		r.commitFailed("upsert snapshot", err, zap.Time("day", snap.Date))
		return model.AnalyticsSnapshot{}, fmt.Errorf("upsert snapshot: %w", err)
	}
	return snap, nil
}

// FetchAnalytics returns the stored snapshots for [today-days, today],
// oldest first. Days without activity are absent.
func (r *Repository) FetchAnalytics(ctx context.Context, days int) ([]model.AnalyticsSnapshot, error) {
	from, to := metrics.Window(days, r.now(), r.loc)
	snaps, err := r.store.ListSnapshots(ctx, storage.SnapshotRange{
		FromDay: metrics.DayKey(from, r.loc),
		ToDay:   metrics.DayKey(to, r.loc),
	})
	if err != nil {
		r.queryFailed("fetch analytics", err, zap.Int("days", days))
		return []model.AnalyticsSnapshot{}, fmt.Errorf("fetch analytics: %w", err)
	}
	for i := range snaps {
		snaps[i].Date = r.anchor(snaps[i].Date)
	}
	return snaps, nil
}

// LoadAnalytics fetches the window and rolls it up for display.
func (r *Repository) LoadAnalytics(ctx context.Context, days int) (metrics.Summary, []model.AnalyticsSnapshot, error) {
	snaps, err := r.FetchAnalytics(ctx, days)
	return metrics.Summarize(snaps, r.now(), r.loc), snaps, err
}

func (r *Repository) refreshAnalytics(ctx context.Context) error {
	if _, err := r.UpdateAnalytics(ctx); err != nil {
		return fmt.Errorf("refresh analytics: %w", err)
	}
	return nil
}

// anchor moves a stored calendar day onto midnight in the repository's location.
func (r *Repository) anchor(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.loc)
}
