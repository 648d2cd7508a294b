package bootstrap

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	role "github.com/atulpawar07/sp-cricket-hub/internal/modules/role/service"
)

// PromoteAdmin grants the admin role to the account registered with email.
// It does nothing when email is empty or no such account exists yet; the
// auth service promotes the account when it signs up.
func PromoteAdmin(ctx context.Context, db *gorm.DB, roles role.RoleService, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	var account entity.Account
	err := db.WithContext(ctx).Where("email = ?", email).Take(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("ADMIN_EMAIL %s has no account yet, skipping promotion", email)
		return nil
	}
	if err != nil {
		return err
	}

	if err := roles.SetRole(ctx, account.ID, entity.RoleAdmin); err != nil {
		return err
	}
	log.Printf("Promoted %s to admin", email)
	return nil
}
