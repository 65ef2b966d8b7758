package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskmaestro/maestro/internal/model"
	"github.com/taskmaestro/maestro/internal/storage"
)

const defaultAvatarColor = "#4ECDC4"

type NewTeamMember struct {
	Name        string
	Email       string
	Role        string
	AvatarColor string
}

func (r *Repository) CreateTeamMember(ctx context.Context, in NewTeamMember) (model.TeamMember, error) {
	member := model.TeamMember{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Role:        strings.TrimSpace(in.Role),
		AvatarColor: in.AvatarColor,
		CreatedAt:   r.now(),
	}
	if member.AvatarColor == "" {
		member.AvatarColor = defaultAvatarColor
	}
	if err := member.Validate(); err != nil {
		return model.TeamMember{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := r.store.CreateMember(ctx, member); err != nil {
		r.commitFailed("create team member", err, idField("member_id", member.ID))
		return model.TeamMember{}, fmt.Errorf("create team member: %w", err)
	}
	r.log.Debug("team member created", idField("member_id", member.ID), zap.String("name", member.Name))
	return member, nil
}

// FetchAllTeamMembers returns every member sorted by name.
func (r *Repository) FetchAllTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	members, err := r.store.ListMembers(ctx, storage.MemberListFilter{})
	if err != nil {
		r.queryFailed("fetch team members", err)
		return []model.TeamMember{}, fmt.Errorf("fetch team members: %w", err)
	}
	return members, nil
}

func (r *Repository) FetchTeamMember(ctx context.Context, id uuid.UUID) (model.TeamMember, bool, error) {
	member, err := r.store.GetMember(ctx, id)
	found, err := resolve(err)
	if err != nil {
		r.queryFailed("fetch team member", err, idField("member_id", id))
		return model.TeamMember{}, false, err
	}
	return member, found, nil
}

// DeleteTeamMember removes the member; their tasks stay, unassigned.
func (r *Repository) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	if err := r.store.DeleteMember(ctx, id); err != nil {
		r.commitFailed("delete team member", err, idField("member_id", id))
		return fmt.Errorf("delete team member %s: %w", id, err)
	}
	return nil
}

func (r *Repository) MemberSummaries(ctx context.Context) ([]model.MemberSummary, error) {
	members, err := r.FetchAllTeamMembers(ctx)
	if err != nil {
		return []model.MemberSummary{}, err
	}
	tasks, err := r.FetchAllTasks(ctx)
	if err != nil {
		return []model.MemberSummary{}, err
	}
	assigned := make(map[uuid.UUID]int, len(members))
	for _, t := range tasks {
		if t.AssignedToID != nil {
			assigned[*t.AssignedToID]++
		}
	}
	out := make([]model.MemberSummary, 0, len(members))
	for _, m := range members {
		out = append(out, model.MemberSummary{TeamMember: m, AssignedTaskCount: assigned[m.ID]})
	}
	return out, nil
}
