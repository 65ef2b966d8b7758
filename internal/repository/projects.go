package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/taskmaestro/maestro/internal/metrics"
	"github.com/taskmaestro/maestro/internal/model"
	"github.com/taskmaestro/maestro/internal/storage"
)

const defaultProjectColor = "#2196F3"

type NewProject struct {
	Name        string
	Description string
	// StartDate defaults to now.
	StartDate time.Time
	EndDate   *time.Time
	Color     string
}

func (r *Repository) CreateProject(ctx context.Context, in NewProject) (model.Project, error) {
	now := r.now()
	project := model.Project{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Color:       in.Color,
		CreatedAt:   now,
	}
	if project.StartDate.IsZero() {
		project.StartDate = now
	}
	if project.Color == "" {
		project.Color = defaultProjectColor
	}
	if err := project.Validate(); err != nil {
		return model.Project{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := r.store.CreateProject(ctx, project); err != nil {
		r.commitFailed("create project", err, idField("project_id", project.ID))
		return model.Project{}, fmt.Errorf("create project: %w", err)
	}
	r.log.Debug("project created", idField("project_id", project.ID), zap.String("name", project.Name))
	return project, nil
}

// FetchAllProjects returns every project, newest first.
func (r *Repository) FetchAllProjects(ctx context.Context) ([]model.Project, error) {
	projects, err := r.store.ListProjects(ctx, storage.ProjectListFilter{})
	if err != nil {
		r.queryFailed("fetch projects", err)
		return []model.Project{}, fmt.Errorf("fetch projects: %w", err)
	}
	return projects, nil
}

func (r *Repository) FetchProject(ctx context.Context, id uuid.UUID) (model.Project, bool, error) {
	project, err := r.store.GetProject(ctx, id)
	found, err := resolve(err)
	if err != nil {
		r.queryFailed("fetch project", err, idField("project_id", id))
		return model.Project{}, false, err
	}
	return project, found, nil
}

// DeleteProject removes the project and every task it owns.
func (r *Repository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if err := r.store.DeleteProject(ctx, id); err != nil {
		r.commitFailed("delete project", err, idField("project_id", id))
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}

// UpdateProjectProgress recomputes and stores the completed share of the
// project's tasks. Progress never changes unless this is called.
func (r *Repository) UpdateProjectProgress(ctx context.Context, id uuid.UUID) (float64, error) {
	project, err := r.store.GetProject(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("project %s: %w", id, err)
	}
	tasks, err := r.store.ListTasks(ctx, storage.TaskListFilter{ProjectID: &id})
	if err != nil {
		r.queryFailed("fetch project tasks", err, idField("project_id", id))
		return project.Progress, fmt.Errorf("fetch project tasks: %w", err)
	}
	project.Progress = metrics.ProjectProgress(tasks)
	if err := r.store.UpdateProject(ctx, project); err != nil {
		r.commitFailed("update project progress", err, idField("project_id", id))
		return project.Progress, fmt.Errorf("update project %s: %w", id, err)
	}
	return project.Progress, nil
}

func (r *Repository) UpdateAllProjectProgress(ctx context.Context) error {
	projects, err := r.FetchAllProjects(ctx)
	if err != nil {
		return err
	}
	var errs error
	for _, p := range projects {
		if _, err := r.UpdateProjectProgress(ctx, p.ID); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// ProjectSummaries pairs each project with live task counts. The stored
// Progress is reported as last refreshed.
func (r *Repository) ProjectSummaries(ctx context.Context) ([]model.ProjectSummary, error) {
	projects, err := r.FetchAllProjects(ctx)
	if err != nil {
		return []model.ProjectSummary{}, err
	}
	tasks, err := r.FetchAllTasks(ctx)
	if err != nil {
		return []model.ProjectSummary{}, err
	}
	total := make(map[uuid.UUID]int, len(projects))
	done := make(map[uuid.UUID]int, len(projects))
	for _, t := range tasks {
		if t.ProjectID == nil {
			continue
		}
		total[*t.ProjectID]++
		if t.IsCompleted() {
			done[*t.ProjectID]++
		}
	}
	out := make([]model.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, model.ProjectSummary{
			Project:            p,
			TaskCount:          total[p.ID],
			CompletedTaskCount: done[p.ID],
		})
	}
	return out, nil
}
