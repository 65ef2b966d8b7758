package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid task status")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrNegativeHours   = errors.New("model: task hours must not be negative")
)

// Status is deliberately flat: any status may follow any other.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	default:
		return false
	}
}

func (s Status) DisplayName() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusBlocked:
		return "Blocked"
	default:
		return string(s)
	}
}

func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted, StatusBlocked}
}

// ParseStatus accepts either the stored value or the display name.
func ParseStatus(raw string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.ReplaceAll(norm, " ", "_")
	norm = strings.ReplaceAll(norm, "-", "_")
	switch norm {
	case "pending", "todo":
		return StatusPending, nil
	case "in_progress", "inprogress", "doing":
		return StatusInProgress, nil
	case "completed", "done":
		return StatusCompleted, nil
	case "blocked":
		return StatusBlocked, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// Priority is ordered: Low < Medium < High < Urgent.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

func (p Priority) Color() string {
	switch p {
	case PriorityLow:
		return "#4CAF50"
	case PriorityMedium:
		return "#2196F3"
	case PriorityHigh:
		return "#FF9800"
	case PriorityUrgent:
		return "#F44336"
	default:
		return "#9E9E9E"
	}
}

func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low", "0":
		return PriorityLow, nil
	case "medium", "med", "1":
		return PriorityMedium, nil
	case "high", "2":
		return PriorityHigh, nil
	case "urgent", "3":
		return PriorityUrgent, nil
	default:
		return PriorityMedium, fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
}

type Task struct {
	ID             uuid.UUID
	Title          string
	Description    string
	Priority       Priority
	Status         Status
	CreatedAt      time.Time
	DueDate        *time.Time
	CompletedAt    *time.Time
	EstimatedHours float64
	ActualHours    float64
	Tags           []string
	ProjectID      *uuid.UUID
	AssignedToID   *uuid.UUID
}

// Validate checks the invariants of a stored task. CompletedAt is required
// for completed tasks but survives a later move back to another status.
func (t Task) Validate() error {
	if t.ID == uuid.Nil {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, int(t.Priority))
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.EstimatedHours < 0 || t.ActualHours < 0 {
		return ErrNegativeHours
	}
	if t.Status == StatusCompleted && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task status is completed")
	}
	return nil
}

func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}
