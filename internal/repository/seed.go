package repository

import (
	"context"
	"fmt"

	"github.com/taskmaestro/maestro/internal/model"
)

// SeedSampleData fills an empty store with demo projects, members and tasks,
// then seeds the tips. It does nothing when any project exists.
func (r *Repository) SeedSampleData(ctx context.Context) error {
	n, err := r.store.CountProjects(ctx)
	if err != nil {
		r.queryFailed("count projects", err)
		return fmt.Errorf("count projects: %w", err)
	}
	if n > 0 {
		return nil
	}

	now := r.now()
	mobileEnd := now.AddDate(0, 3, 0)
	marketingEnd := now.AddDate(0, 2, 0)
	mobile, err := r.CreateProject(ctx, NewProject{
		Name:        "Mobile App Development",
		Description: "Build a new iOS application",
		StartDate:   now,
		EndDate:     &mobileEnd,
		Color:       "#4CAF50",
	})
	if err != nil {
		return err
	}
	if _, err := r.CreateProject(ctx, NewProject{
		Name:        "Marketing Campaign",
		Description: "Q1 marketing initiatives",
		StartDate:   now,
		EndDate:     &marketingEnd,
		Color:       "#2196F3",
	}); err != nil {
		return err
	}

	for _, m := range []NewTeamMember{
		{Name: "Sarah Johnson", Email: "sarah@taskmaestro.com", Role: "Project Manager", AvatarColor: "#FF6B6B"},
		{Name: "Mike Chen", Email: "mike@taskmaestro.com", Role: "Developer", AvatarColor: "#4ECDC4"},
		{Name: "Emily Davis", Email: "emily@taskmaestro.com", Role: "Designer", AvatarColor: "#95E1D3"},
	} {
		if _, err := r.CreateTeamMember(ctx, m); err != nil {
			return err
		}
	}
	// first member in name order
	members, err := r.FetchAllTeamMembers(ctx)
	if err != nil {
		return err
	}

	for i, t := range []NewTask{
		{Title: "Design UI Mockups", Description: "Create initial design concepts", Priority: model.PriorityHigh},
		{Title: "Setup Development Environment", Description: "Configure Xcode and dependencies", Priority: model.PriorityUrgent},
		{Title: "Write Technical Specifications", Description: "Document technical requirements", Priority: model.PriorityMedium},
	} {
		dueDate := now.AddDate(0, 0, sampleDueDays[i])
		t.DueDate = &dueDate
		t.ProjectID = &mobile.ID
		if i == 0 && len(members) > 0 {
			t.AssignedToID = &members[0].ID
		}
		if _, err := r.CreateTask(ctx, t); err != nil {
			return err
		}
	}
	r.log.Info("sample data seeded")
	return r.SeedEducationalTips(ctx)
}

var sampleDueDays = []int{7, 3, 5}
