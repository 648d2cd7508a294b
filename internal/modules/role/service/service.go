package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/role/repository"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

// RoleService is the server-side role gate. Roles are always read from
// user_roles, never from anything the client holds.
type RoleService interface {
	HasRole(ctx context.Context, userID uuid.UUID, role entity.AppRole) (bool, error)
	// ResolveRole is RoleAdmin iff an admin row exists. Missing rows and
	// lookup failures both resolve to RoleUser.
	ResolveRole(ctx context.Context, userID uuid.UUID) entity.AppRole
	ResolveRoles(ctx context.Context, userIDs []uuid.UUID) map[uuid.UUID]entity.AppRole
	SetRole(ctx context.Context, userID uuid.UUID, role entity.AppRole) error
}

type roleService struct {
	repo repository.RoleRepository
}

func NewRoleService(repo repository.RoleRepository) RoleService {
	return &roleService{repo: repo}
}

func (s *roleService) HasRole(ctx context.Context, userID uuid.UUID, role entity.AppRole) (bool, error) {
	if !role.Valid() {
		return false, fmt.Errorf("unknown role %q: %w", role, apperror.ErrInvalidInput)
	}
	if userID == uuid.Nil {
		return false, nil
	}
	return s.repo.HasRole(ctx, userID, role)
}

func (s *roleService) ResolveRole(ctx context.Context, userID uuid.UUID) entity.AppRole {
	isAdmin, err := s.HasRole(ctx, userID, entity.RoleAdmin)
	if err != nil {
		log.Printf("role lookup for %s failed, treating as member: %v", userID, err)
		return entity.RoleUser
	}
	if isAdmin {
		return entity.RoleAdmin
	}
	return entity.RoleUser
}

func (s *roleService) ResolveRoles(ctx context.Context, userIDs []uuid.UUID) map[uuid.UUID]entity.AppRole {
	out := make(map[uuid.UUID]entity.AppRole, len(userIDs))
	for _, id := range userIDs {
		out[id] = entity.RoleUser
	}

	rows, err := s.repo.ListByUsers(ctx, userIDs)
	if err != nil {
		log.Printf("role listing failed, treating everyone as member: %v", err)
		return out
	}
	for _, row := range rows {
		if row.Role == entity.RoleAdmin {
			out[row.UserID] = entity.RoleAdmin
		}
	}
	return out
}

// SetRole makes role the account's effective role. Every account keeps its
// user row; promotion adds an admin row and demotion removes it.
func (s *roleService) SetRole(ctx context.Context, userID uuid.UUID, role entity.AppRole) error {
	if !role.Valid() {
		return fmt.Errorf("unknown role %q: %w", role, apperror.ErrInvalidInput)
	}
	if err := s.repo.Assign(ctx, userID, entity.RoleUser); err != nil {
		return err
	}
	if role == entity.RoleAdmin {
		return s.repo.Assign(ctx, userID, entity.RoleAdmin)
	}
	return s.repo.Revoke(ctx, userID, entity.RoleAdmin)
}
