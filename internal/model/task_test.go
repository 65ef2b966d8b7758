package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        uuid.New(),
		Title:     "Design UI Mockups",
		Status:    StatusPending,
		Priority:  PriorityHigh,
		CreatedAt: now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateCompletedRequiresCompletedAt(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        uuid.New(),
		Title:     "Done task",
		Status:    StatusCompleted,
		Priority:  PriorityMedium,
		CreatedAt: now,
	}
	err := task.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "model: completed_at is required when task status is completed" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskValidateKeepsCompletedAtAfterRevert(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:          uuid.New(),
		Title:       "Reopened",
		Status:      StatusInProgress,
		Priority:    PriorityLow,
		CreatedAt:   now,
		CompletedAt: &now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected reopened task with completed_at to be valid, got: %v", err)
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        uuid.New(),
		Title:     "Bad status",
		Status:    Status("Invalid"),
		Priority:  PriorityLow,
		CreatedAt: now,
	}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}

	task.Status = StatusBlocked
	task.Priority = Priority(9)
	err = task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}

	task.Priority = PriorityUrgent
	task.ActualHours = -1
	if err := task.Validate(); !errors.Is(err, ErrNegativeHours) {
		t.Fatalf("expected ErrNegativeHours, got: %v", err)
	}
}

func TestPriorityOrderingAndNames(t *testing.T) {
	if !(PriorityLow < PriorityMedium && PriorityMedium < PriorityHigh && PriorityHigh < PriorityUrgent) {
		t.Fatal("expected low < medium < high < urgent")
	}
	if PriorityUrgent.String() != "Urgent" || PriorityUrgent.Color() != "#F44336" {
		t.Fatalf("unexpected urgent display: %s %s", PriorityUrgent, PriorityUrgent.Color())
	}
	p, err := ParsePriority("HIGH")
	if err != nil || p != PriorityHigh {
		t.Fatalf("parse priority: %v %v", p, err)
	}
	if _, err := ParsePriority("someday"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"pending":     StatusPending,
		"In Progress": StatusInProgress,
		"in-progress": StatusInProgress,
		"done":        StatusCompleted,
		"Blocked":     StatusBlocked,
	}
	for in, want := range cases {
		got, err := ParseStatus(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseStatus("archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestStatusDisplayName(t *testing.T) {
	for _, s := range Statuses() {
		if !s.IsValid() {
			t.Fatalf("expected valid status: %q", s)
		}
	}
	if StatusInProgress.DisplayName() != "In Progress" {
		t.Fatalf("unexpected display name: %q", StatusInProgress.DisplayName())
	}
}
