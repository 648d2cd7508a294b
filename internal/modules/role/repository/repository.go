package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/schema"
	"github.com/atulpawar07/sp-cricket-hub/internal/store"
)

type RoleRepository interface {
	// HasRole evaluates public.has_role on the server.
	HasRole(ctx context.Context, userID uuid.UUID, role entity.AppRole) (bool, error)
	Assign(ctx context.Context, userID uuid.UUID, role entity.AppRole) error
	Revoke(ctx context.Context, userID uuid.UUID, role entity.AppRole) error
	ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]entity.UserRole, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) HasRole(ctx context.Context, userID uuid.UUID, role entity.AppRole) (bool, error) {
	return store.Rpc(ctx, r.db, schema.Default.Functions.HasRole, schema.HasRoleArgs{UserID: userID, Role: role})
}

// Assign is idempotent on the (user_id, role) unique key.
func (r *roleRepository) Assign(ctx context.Context, userID uuid.UUID, role entity.AppRole) error {
	_, err := store.From(r.db, schema.Default.Tables.UserRoles).
		InsertIgnore(ctx, entity.UserRoleInsert{UserID: userID, Role: &role})
	return err
}

func (r *roleRepository) Revoke(ctx context.Context, userID uuid.UUID, role entity.AppRole) error {
	t := schema.Default.Tables.UserRoles
	_, err := store.From(r.db, t).
		Eq(t.Col.UserID, userID).
		Eq(t.Col.Role, role).
		Delete(ctx)
	return err
}

func (r *roleRepository) ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]entity.UserRole, error) {
	if len(userIDs) == 0 {
		return []entity.UserRole{}, nil
	}
	t := schema.Default.Tables.UserRoles
	ids := make([]any, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id
	}
	return store.From(r.db, t).In(t.Col.UserID, ids...).Select(ctx)
}
