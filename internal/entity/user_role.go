package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppRole mirrors the app_role enum in Postgres.
type AppRole string

const (
	RoleAdmin AppRole = "admin"
	RoleUser  AppRole = "user"
)

// AppRoles is the closed value set of AppRole, in enum declaration order.
var AppRoles = []AppRole{RoleAdmin, RoleUser}

func (r AppRole) Valid() bool {
	for _, v := range AppRoles {
		if r == v {
			return true
		}
	}
	return false
}

func (r AppRole) String() string {
	return string(r)
}

type UserRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:user_roles_user_id_role_key,priority:1" json:"user_id"`
	Role      AppRole   `gorm:"type:app_role;not null;default:'user';uniqueIndex:user_roles_user_id_role_key,priority:2" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

type UserRoleInsert struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	UserID    uuid.UUID  `json:"user_id"`
	Role      *AppRole   `json:"role,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (in UserRoleInsert) Validate() error {
	if in.UserID == uuid.Nil {
		return invalid("role account is required")
	}
	if in.Role != nil && !in.Role.Valid() {
		return invalid("unknown role %q", *in.Role)
	}
	return nil
}

// Row applies the column default: a missing role is RoleUser.
func (in UserRoleInsert) Row() UserRole {
	role := RoleUser
	if in.Role != nil {
		role = *in.Role
	}
	return UserRole{
		ID:        uuidOrNil(in.ID),
		UserID:    in.UserID,
		Role:      role,
		CreatedAt: timeOrZero(in.CreatedAt),
	}
}

type UserRoleUpdate struct {
	UserID    Opt[uuid.UUID] `json:"user_id"`
	Role      Opt[AppRole]   `json:"role"`
	CreatedAt Opt[time.Time] `json:"created_at"`
}

func (u UserRoleUpdate) Validate() error {
	if u.Role.Set && !u.Role.Value.Valid() {
		return invalid("unknown role %q", u.Role.Value)
	}
	return errors.Join(
		notNullID(u.UserID, "user_id"),
		notNullTime(u.CreatedAt, "created_at"),
	)
}

func (u UserRoleUpdate) Columns() map[string]any {
	cols := map[string]any{}
	u.UserID.put(cols, "user_id")
	u.Role.put(cols, "role")
	u.CreatedAt.put(cols, "created_at")
	return cols
}

func (u UserRoleUpdate) Apply(r *UserRole) {
	u.UserID.apply(&r.UserID)
	u.Role.apply(&r.Role)
	u.CreatedAt.apply(&r.CreatedAt)
}
