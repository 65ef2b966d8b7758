package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskmaestro/maestro/internal/metrics"
	"github.com/taskmaestro/maestro/internal/model"
	"github.com/taskmaestro/maestro/internal/storage"
)

type NewTask struct {
	Title          string
	Description    string
	Priority       model.Priority
	DueDate        *time.Time
	ProjectID      *uuid.UUID
	AssignedToID   *uuid.UUID
	EstimatedHours float64
	Tags           []string
}

// TaskDetails replaces the editable fields of a task. Status is changed only
// through UpdateTaskStatus.
type TaskDetails struct {
	Title          string
	Description    string
	Priority       model.Priority
	DueDate        *time.Time
	EstimatedHours float64
	ActualHours    float64
	Tags           []string
}

type FilterKind string

const (
	FilterAll        FilterKind = "all"
	FilterPending    FilterKind = "pending"
	FilterInProgress FilterKind = "in_progress"
	FilterCompleted  FilterKind = "completed"
	FilterUrgent     FilterKind = "urgent"
)

func FilterKinds() []FilterKind {
	return []FilterKind{FilterAll, FilterPending, FilterInProgress, FilterCompleted, FilterUrgent}
}

func (k FilterKind) Label() string {
	switch k {
	case FilterPending:
		return "Pending"
	case FilterInProgress:
		return "In Progress"
	case FilterCompleted:
		return "Completed"
	case FilterUrgent:
		return "Urgent"
	default:
		return "All"
	}
}

type TaskFilter struct {
	Kind   FilterKind
	Search string
}

func (f TaskFilter) match(t model.Task) bool {
	switch f.Kind {
	case FilterPending:
		if t.Status != model.StatusPending {
			return false
		}
	case FilterInProgress:
		if t.Status != model.StatusInProgress {
			return false
		}
	case FilterCompleted:
		if t.Status != model.StatusCompleted {
			return false
		}
	case FilterUrgent:
		if t.Priority != model.PriorityUrgent {
			return false
		}
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q)
}

// CreateTask stores a new pending task. Project and assignee ids that do not
// resolve are dropped rather than rejected.
func (r *Repository) CreateTask(ctx context.Context, in NewTask) (model.Task, error) {
	task := model.Task{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		Priority:       in.Priority,
		Status:         model.StatusPending,
		CreatedAt:      r.now(),
		DueDate:        in.DueDate,
		EstimatedHours: in.EstimatedHours,
		Tags:           cleanTags(in.Tags),
	}
	task.ProjectID = r.resolveProject(ctx, in.ProjectID)
	task.AssignedToID = r.resolveMember(ctx, in.AssignedToID)
	if err := task.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := r.store.CreateTask(ctx, task); err != nil {
		r.commitFailed("create task", err, idField("task_id", task.ID))
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	r.log.Debug("task created", idField("task_id", task.ID), zap.String("title", task.Title))
	return task, r.refreshAnalytics(ctx)
}

// UpdateTaskStatus sets the status. Completing stamps CompletedAt with now;
// any other status leaves an earlier CompletedAt in place.
func (r *Repository) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status model.Status) (model.Task, error) {
	if !status.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %w: %q", ErrInvalidInput, model.ErrInvalidStatus, status)
	}
	task, err := r.store.GetTask(ctx, taskID)
	if err != nil {
		return model.Task{}, fmt.Errorf("task %s: %w", taskID, err)
	}
	task.Status = status
	if status == model.StatusCompleted {
		now := r.now()
		task.CompletedAt = &now
	}
	if err := r.store.UpdateTask(ctx, task); err != nil {
		r.commitFailed("update task status", err, idField("task_id", taskID))
		return model.Task{}, fmt.Errorf("update task %s: %w", taskID, err)
	}
	return task, r.refreshAnalytics(ctx)
}

func (r *Repository) UpdateTaskDetails(ctx context.Context, taskID uuid.UUID, in TaskDetails) (model.Task, error) {
	task, err := r.store.GetTask(ctx, taskID)
	if err != nil {
		return model.Task{}, fmt.Errorf("task %s: %w", taskID, err)
	}
	task.Title = strings.TrimSpace(in.Title)
	task.Description = strings.TrimSpace(in.Description)
	task.Priority = in.Priority
	task.DueDate = in.DueDate
	task.EstimatedHours = in.EstimatedHours
	task.ActualHours = in.ActualHours
	task.Tags = cleanTags(in.Tags)
	if err := task.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := r.store.UpdateTask(ctx, task); err != nil {
		r.commitFailed("update task details", err, idField("task_id", taskID))
		return model.Task{}, fmt.Errorf("update task %s: %w", taskID, err)
	}
	// actual hours feed today's hours worked
	return task, r.refreshAnalytics(ctx)
}

// DeleteTask removes the task. Project progress is left as is until refreshed.
func (r *Repository) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	if err := r.store.DeleteTask(ctx, taskID); err != nil {
		r.commitFailed("delete task", err, idField("task_id", taskID))
		return fmt.Errorf("delete task %s: %w", taskID, err)
	}
	return nil
}

func (r *Repository) FetchTask(ctx context.Context, taskID uuid.UUID) (model.Task, bool, error) {
	task, err := r.store.GetTask(ctx, taskID)
	found, err := resolve(err)
	if err != nil {
		r.queryFailed("fetch task", err, idField("task_id", taskID))
		return model.Task{}, false, err
	}
	return task, found, nil
}

// FetchAllTasks returns every task, newest first.
func (r *Repository) FetchAllTasks(ctx context.Context) ([]model.Task, error) {
	return r.listTasks(ctx, "fetch tasks", storage.TaskListFilter{})
}

func (r *Repository) FilterTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	all, err := r.FetchAllTasks(ctx)
	if err != nil {
		return all, err
	}
	out := make([]model.Task, 0, len(all))
	for _, t := range all {
		if filter.match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *Repository) TasksForProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error) {
	return r.listTasks(ctx, "fetch project tasks", storage.TaskListFilter{ProjectID: &projectID})
}

func (r *Repository) TasksForMember(ctx context.Context, memberID uuid.UUID) ([]model.Task, error) {
	return r.listTasks(ctx, "fetch member tasks", storage.TaskListFilter{AssignedToID: &memberID})
}

func (r *Repository) StatusCounts(ctx context.Context) (metrics.StatusCounts, error) {
	tasks, err := r.FetchAllTasks(ctx)
	return metrics.CountByStatus(tasks), err
}

func (r *Repository) listTasks(ctx context.Context, op string, filter storage.TaskListFilter) ([]model.Task, error) {
	tasks, err := r.store.ListTasks(ctx, filter)
	if err != nil {
		r.queryFailed(op, err)
		return []model.Task{}, fmt.Errorf("%s: %w", op, err)
	}
	return tasks, nil
}

func (r *Repository) resolveProject(ctx context.Context, id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	_, err := r.store.GetProject(ctx, *id)
	found, err := resolve(err)
	if err != nil {
		r.queryFailed("resolve project", err, idField("project_id", *id))
	}
	if !found {
		r.log.Debug("dropping unknown project link", idField("project_id", *id))
		return nil
	}
	resolved := *id
	return &resolved
}

func (r *Repository) resolveMember(ctx context.Context, id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	_, err := r.store.GetMember(ctx, *id)
	found, err := resolve(err)
	if err != nil {
		r.queryFailed("resolve member", err, idField("member_id", *id))
	}
	if !found {
		r.log.Debug("dropping unknown assignee", idField("member_id", *id))
		return nil
	}
	resolved := *id
	return &resolved
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
