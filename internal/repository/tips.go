package repository

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskmaestro/maestro/internal/model"
)

// SeedEducationalTips inserts the tip catalog once; it does nothing when any
// tip already exists.
func (r *Repository) SeedEducationalTips(ctx context.Context) error {
	n, err := r.store.CountTips(ctx)
	if err != nil {
		r.queryFailed("count tips", err)
		return fmt.Errorf("count tips: %w", err)
	}
	if n > 0 {
		return nil
	}
	now := r.now()
	catalog := model.TipCatalog()
	tips := make([]model.EducationalTip, 0, len(catalog))
	for _, seed := range catalog {
		tips = append(tips, model.EducationalTip{
			ID:        uuid.New(),
			Title:     seed.Title,
			Content:   seed.Content,
			Category:  seed.Category,
			CreatedAt: now,
		})
	}
	if err := r.store.CreateTips(ctx, tips); err != nil {
		r.commitFailed("seed tips", err)
		return fmt.Errorf("seed tips: %w", err)
	}
	r.log.Info("educational tips seeded", zap.Int("count", len(tips)))
	return nil
}

func (r *Repository) FetchAllEducationalTips(ctx context.Context) ([]model.EducationalTip, error) {
	tips, err := r.store.ListTips(ctx)
	if err != nil {
		r.queryFailed("fetch tips", err)
		return []model.EducationalTip{}, fmt.Errorf("fetch tips: %w", err)
	}
	return tips, nil
}

func (r *Repository) UnreadTips(ctx context.Context) ([]model.EducationalTip, error) {
	return r.filterTips(ctx, func(t model.EducationalTip) bool { return !t.IsRead })
}

func (r *Repository) TipsByCategory(ctx context.Context, category model.TipCategory) ([]model.EducationalTip, error) {
	return r.filterTips(ctx, func(t model.EducationalTip) bool { return t.Category == category })
}

// RandomUnreadTip picks the tip shown on the home screen.
func (r *Repository) RandomUnreadTip(ctx context.Context) (model.EducationalTip, bool, error) {
	unread, err := r.UnreadTips(ctx)
	if err != nil || len(unread) == 0 {
		return model.EducationalTip{}, false, err
	}
	return unread[rand.IntN(len(unread))], true, nil
}

// MarkTipAsRead flips IsRead to true. Marking a read tip again is a no-op.
func (r *Repository) MarkTipAsRead(ctx context.Context, id uuid.UUID) error {
	if err := r.store.MarkTipRead(ctx, id); err != nil {
		r.commitFailed("mark tip read", err, idField("tip_id", id))
		return fmt.Errorf("mark tip %s: %w", id, err)
	}
	return nil
}

func (r *Repository) filterTips(ctx context.Context, keep func(model.EducationalTip) bool) ([]model.EducationalTip, error) {
	all, err := r.FetchAllEducationalTips(ctx)
	if err != nil {
		return all, err
	}
	out := make([]model.EducationalTip, 0, len(all))
	for _, t := range all {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}
