package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/multierr"

	"github.com/taskmaestro/maestro/internal/model"
)

// Fixed-width so that text ordering matches chronological ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const dayLayout = "2006-01-02"

const taskColumns = `id, title, description, priority, status, created_at, due_date, completed_at,
	estimated_hours, actual_hours, tags, project_id, assigned_to_id`

const projectColumns = `id, name, description, start_date, end_date, color, progress, created_at`

const memberColumns = `id, name, email, role, avatar_color, created_at`

const snapshotColumns = `id, day, tasks_completed, tasks_created, hours_worked, productivity_score`

const tipColumns = `id, title, content, category, is_read, created_at`

type SQLiteRepository struct {
	db *sql.DB
}

var _ Store = (*SQLiteRepository)(nil)

// DSN returns a data source name for path with foreign keys enforced on
// every pooled connection.
func DSN(path string) string {
	return path + "?_foreign_keys=on"
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	// single owner; also keeps the pragma below on the only connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in model.Task) error {
	tags, err := encodeTags(in.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID.String(), in.Title, in.Description, int(in.Priority), string(in.Status),
		mustTime(in.CreatedAt), nullTime(in.DueDate), nullTime(in.CompletedAt),
		in.EstimatedHours, in.ActualHours, tags, nullUUID(in.ProjectID), nullUUID(in.AssignedToID),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id uuid.UUID) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id.String())
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	tags, err := encodeTags(in.Tags)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, priority = ?, status = ?, due_date = ?, completed_at = ?,
			estimated_hours = ?, actual_hours = ?, tags = ?, project_id = ?, assigned_to_id = ?
		WHERE id = ?`,
		in.Title, in.Description, int(in.Priority), string(in.Status), nullTime(in.DueDate), nullTime(in.CompletedAt),
		in.EstimatedHours, in.ActualHours, tags, nullUUID(in.ProjectID), nullUUID(in.AssignedToID), in.ID.String(),
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.ProjectID != nil {
		clauses = append(clauses, "project_id = ?")
		args = append(args, filter.ProjectID.String())
	}
	if filter.AssignedToID != nil {
		clauses = append(clauses, "assigned_to_id = ?")
		args = append(args, filter.AssignedToID.String())
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at DESC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateProject(ctx context.Context, in model.Project) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID.String(), in.Name, in.Description, mustTime(in.StartDate), nullTime(in.EndDate),
		in.Color, in.Progress, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetProject(ctx context.Context, id uuid.UUID) (model.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id.String())
	item, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, ErrNotFound
		}
		return model.Project{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateProject(ctx context.Context, in model.Project) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, description = ?, start_date = ?, end_date = ?, color = ?, progress = ?
		WHERE id = ?`,
		in.Name, in.Description, mustTime(in.StartDate), nullTime(in.EndDate), in.Color, in.Progress, in.ID.String(),
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// DeleteProject removes the project together with every task it owns.
func (r *SQLiteRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, id.String()); err != nil {
			return fmt.Errorf("delete project tasks: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id.String())
		if err != nil {
			return err
		}
		return checkRowsAffected(res)
	})
}

func (r *SQLiteRepository) ListProjects(ctx context.Context, filter ProjectListFilter) ([]model.Project, error) {
	args := make([]any, 0, 2)
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id ASC` +
		applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Project, 0)
	for rows.Next() {
		item, scanErr := scanProject(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CountProjects(ctx context.Context) (int, error) {
	return r.count(ctx, "projects")
}

func (r *SQLiteRepository) CreateMember(ctx context.Context, in model.TeamMember) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO team_members (`+memberColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID.String(), in.Name, in.Email, in.Role, in.AvatarColor, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetMember(ctx context.Context, id uuid.UUID) (model.TeamMember, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM team_members WHERE id = ?`, id.String())
	item, err := scanMember(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TeamMember{}, ErrNotFound
		}
		return model.TeamMember{}, err
	}
	return item, nil
}

// DeleteMember removes the member and clears the assignment on their tasks.
func (r *SQLiteRepository) DeleteMember(ctx context.Context, id uuid.UUID) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE tasks SET assigned_to_id = NULL WHERE assigned_to_id = ?`, id.String()); err != nil {
			return fmt.Errorf("clear assignments: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id.String())
		if err != nil {
			return err
		}
		return checkRowsAffected(res)
	})
}

func (r *SQLiteRepository) ListMembers(ctx context.Context, filter MemberListFilter) ([]model.TeamMember, error) {
	args := make([]any, 0, 2)
	query := `SELECT ` + memberColumns + ` FROM team_members ORDER BY name ASC, id ASC` +
		applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.TeamMember, 0)
	for rows.Next() {
		item, scanErr := scanMember(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// UpsertSnapshot writes the snapshot for its calendar day. An existing row
// for that day keeps its id and takes the new counters.
func (r *SQLiteRepository) UpsertSnapshot(ctx context.Context, in model.AnalyticsSnapshot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO analytics_snapshots (`+snapshotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			tasks_completed = excluded.tasks_completed,
			tasks_created = excluded.tasks_created,
			hours_worked = excluded.hours_worked,
			productivity_score = excluded.productivity_score`,
		in.ID.String(), in.Date.Format(dayLayout), in.TasksCompleted, in.TasksCreated, in.HoursWorked, in.ProductivityScore,
	)
	return err
}

func (r *SQLiteRepository) GetSnapshotByDay(ctx context.Context, day string) (model.AnalyticsSnapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM analytics_snapshots WHERE day = ?`, day)
	item, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.AnalyticsSnapshot{}, ErrNotFound
		}
		return model.AnalyticsSnapshot{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) ListSnapshots(ctx context.Context, rng SnapshotRange) ([]model.AnalyticsSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM analytics_snapshots`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if rng.FromDay != "" {
		clauses = append(clauses, "day >= ?")
		args = append(args, rng.FromDay)
	}
	if rng.ToDay != "" {
		clauses = append(clauses, "day <= ?")
		args = append(args, rng.ToDay)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY day ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.AnalyticsSnapshot, 0)
	for rows.Next() {
		item, scanErr := scanSnapshot(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateTips(ctx context.Context, tips []model.EducationalTip) error {
	if len(tips) == 0 {
		return nil
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO educational_tips (`+tipColumns+`) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, tip := range tips {
			if _, err := stmt.ExecContext(ctx, tip.ID.String(), tip.Title, tip.Content, string(tip.Category), boolInt(tip.IsRead), mustTime(tip.CreatedAt)); err != nil {
				return fmt.Errorf("insert tip %q: %w", tip.Title, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) ListTips(ctx context.Context) ([]model.EducationalTip, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tipColumns+` FROM educational_tips ORDER BY created_at DESC, title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.EducationalTip, 0)
	for rows.Next() {
		item, scanErr := scanTip(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) MarkTipRead(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE educational_tips SET is_read = 1 WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) CountTips(ctx context.Context) (int, error) {
	return r.count(ctx, "educational_tips")
}

// DeleteAll empties every entity table in a single transaction.
func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	tables := []string{"tasks", "analytics_snapshots", "educational_tips", "projects", "team_members"}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var errs error
		for _, table := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("delete %s: %w", table, err))
			}
		}
		return errs
	})
}

func (r *SQLiteRepository) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, ignoreDone(tx.Rollback()))
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func nullUUID(v *uuid.UUID) any {
	if v == nil {
		return nil
	}
	return v.String()
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func parseNullableUUID(v sql.NullString) (*uuid.UUID, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(raw), nil
}

func decodeTags(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	out := make([]string, 0)
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return out, nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var id string
	var priority int
	var status string
	var created string
	var due sql.NullString
	var completed sql.NullString
	var tags string
	var project sql.NullString
	var assignee sql.NullString
	if err := s.Scan(&id, &out.Title, &out.Description, &priority, &status, &created, &due, &completed,
		&out.EstimatedHours, &out.ActualHours, &tags, &project, &assignee); err != nil {
		return model.Task{}, err
	}
	var err error
	if out.ID, err = uuid.Parse(id); err != nil {
		return model.Task{}, err
	}
	if out.CreatedAt, err = parseRequiredTime(created); err != nil {
		return model.Task{}, err
	}
	if out.DueDate, err = parseNullableTime(due); err != nil {
		return model.Task{}, err
	}
	if out.CompletedAt, err = parseNullableTime(completed); err != nil {
		return model.Task{}, err
	}
	if out.Tags, err = decodeTags(tags); err != nil {
		return model.Task{}, err
	}
	if out.ProjectID, err = parseNullableUUID(project); err != nil {
		return model.Task{}, err
	}
	if out.AssignedToID, err = parseNullableUUID(assignee); err != nil {
		return model.Task{}, err
	}
	out.Priority = model.Priority(priority)
	out.Status = model.Status(status)
	return out, nil
}

func scanProject(s scanner) (model.Project, error) {
	var out model.Project
	var id string
	var start string
	var end sql.NullString
	var created string
	if err := s.Scan(&id, &out.Name, &out.Description, &start, &end, &out.Color, &out.Progress, &created); err != nil {
		return model.Project{}, err
	}
	var err error
	if out.ID, err = uuid.Parse(id); err != nil {
		return model.Project{}, err
	}
	if out.StartDate, err = parseRequiredTime(start); err != nil {
		return model.Project{}, err
	}
	if out.EndDate, err = parseNullableTime(end); err != nil {
		return model.Project{}, err
	}
	if out.CreatedAt, err = parseRequiredTime(created); err != nil {
		return model.Project{}, err
	}
	return out, nil
}

func scanMember(s scanner) (model.TeamMember, error) {
	var out model.TeamMember
	var id string
	var created string
	if err := s.Scan(&id, &out.Name, &out.Email, &out.Role, &out.AvatarColor, &created); err != nil {
		return model.TeamMember{}, err
	}
	var err error
	if out.ID, err = uuid.Parse(id); err != nil {
		return model.TeamMember{}, err
	}
	if out.CreatedAt, err = parseRequiredTime(created); err != nil {
		return model.TeamMember{}, err
	}
	return out, nil
}

// scanSnapshot returns Date as midnight UTC of the stored day; callers
// re-anchor it into their own calendar location.
func scanSnapshot(s scanner) (model.AnalyticsSnapshot, error) {
	var out model.AnalyticsSnapshot
	var id string
	var day string
	if err := s.Scan(&id, &day, &out.TasksCompleted, &out.TasksCreated, &out.HoursWorked, &out.ProductivityScore); err != nil {
		return model.AnalyticsSnapshot{}, err
	}
	var err error
	if out.ID, err = uuid.Parse(id); err != nil {
		return model.AnalyticsSnapshot{}, err
	}
	if out.Date, err = time.Parse(dayLayout, day); err != nil {
		return model.AnalyticsSnapshot{}, err
	}
	return out, nil
}

func scanTip(s scanner) (model.EducationalTip, error) {
	var out model.EducationalTip
	var id string
	var category string
	var read int
	var created string
	if err := s.Scan(&id, &out.Title, &out.Content, &category, &read, &created); err != nil {
		return model.EducationalTip{}, err
	}
	var err error
	if out.ID, err = uuid.Parse(id); err != nil {
		return model.EducationalTip{}, err
	}
	if out.CreatedAt, err = parseRequiredTime(created); err != nil {
		return model.EducationalTip{}, err
	}
	out.Category = model.ParseTipCategory(category)
	out.IsRead = read == 1
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
