package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/taskmaestro/maestro/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// Store is the entity store. Implementations commit every call before
// returning; callers never hold rows across calls.
type Store interface {
	CreateTask(ctx context.Context, in model.Task) error
	GetTask(ctx context.Context, id uuid.UUID) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error)

	CreateProject(ctx context.Context, in model.Project) error
	GetProject(ctx context.Context, id uuid.UUID) (model.Project, error)
	UpdateProject(ctx context.Context, in model.Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error
	ListProjects(ctx context.Context, filter ProjectListFilter) ([]model.Project, error)
	CountProjects(ctx context.Context) (int, error)

	CreateMember(ctx context.Context, in model.TeamMember) error
	GetMember(ctx context.Context, id uuid.UUID) (model.TeamMember, error)
	DeleteMember(ctx context.Context, id uuid.UUID) error
	ListMembers(ctx context.Context, filter MemberListFilter) ([]model.TeamMember, error)

	UpsertSnapshot(ctx context.Context, in model.AnalyticsSnapshot) error
	GetSnapshotByDay(ctx context.Context, day string) (model.AnalyticsSnapshot, error)
	ListSnapshots(ctx context.Context, rng SnapshotRange) ([]model.AnalyticsSnapshot, error)

	CreateTips(ctx context.Context, tips []model.EducationalTip) error
	ListTips(ctx context.Context) ([]model.EducationalTip, error)
	MarkTipRead(ctx context.Context, id uuid.UUID) error
	CountTips(ctx context.Context) (int, error)

	DeleteAll(ctx context.Context) error
	Close() error
}
