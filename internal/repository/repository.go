// Package repository is the single mutation point over the entity store.
//
// Queries are fail-soft: on a store error they return an empty, non-nil
// collection together with the error, and log it. Mutations that change task
// timing recompute today's analytics snapshot before returning.
//
// A Repository is owned by one goroutine; it is not safe for concurrent
// writers.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskmaestro/maestro/internal/storage"
)

// ErrNotFound is returned, wrapped, when an id does not resolve.
var ErrNotFound = storage.ErrNotFound

var ErrInvalidInput = errors.New("repository: invalid input")

type Repository struct {
	store storage.Store
	now   func() time.Time
	loc   *time.Location
	log   *zap.Logger
}

type Option func(*Repository)

func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLocation sets the calendar used for "today" in analytics.
func WithLocation(loc *time.Location) Option {
	return func(r *Repository) {
		if loc != nil {
			r.loc = loc
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Repository) {
		if log != nil {
			r.log = log
		}
	}
}

func New(store storage.Store, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		now:   time.Now,
		loc:   time.Local,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.Named("repository")
	return r
}

func (r *Repository) Location() *time.Location {
	return r.loc
}

func (r *Repository) Close() error {
	return r.store.Close()
}

// DeleteAll wipes every collection. It is only reachable through an explicit reset.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := r.store.DeleteAll(ctx); err != nil {
		r.log.Error("delete all failed", zap.Error(err))
		return err
	}
	r.log.Info("store reset")
	return nil
}

func (r *Repository) queryFailed(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	r.log.Warn(op+" failed", fields...)
}

func (r *Repository) commitFailed(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	r.log.Error(op+" failed", fields...)
}

// resolve reports whether a lookup found its row; ErrNotFound is not a failure.
func resolve(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func idField(key string, id uuid.UUID) zap.Field {
	return zap.Stringer(key, id)
}
