package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange = errors.New("model: project end date is before start date")
	ErrInvalidProgress  = errors.New("model: project progress must be within [0, 1]")
)

type Project struct {
	ID          uuid.UUID
	Name        string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	Color       string
	// Progress is derived from owned tasks and only refreshed on request.
	Progress  float64
	CreatedAt time.Time
}

func (p Project) Validate() error {
	if p.ID == uuid.Nil {
		return errors.New("model: project id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("model: project name is required")
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return ErrInvalidDateRange
	}
	if p.Progress < 0 || p.Progress > 1 {
		return ErrInvalidProgress
	}
	return nil
}

type ProjectSummary struct {
	Project
	TaskCount          int
	CompletedTaskCount int
}

type TeamMember struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Role        string
	AvatarColor string
	CreatedAt   time.Time
}

func (m TeamMember) Validate() error {
	if m.ID == uuid.Nil {
		return errors.New("model: team member id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("model: team member name is required")
	}
	return nil
}

type MemberSummary struct {
	TeamMember
	AssignedTaskCount int
}
