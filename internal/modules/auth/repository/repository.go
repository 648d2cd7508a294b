package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/schema"
	"github.com/atulpawar07/sp-cricket-hub/internal/store"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindByGoogleID(ctx context.Context, googleID string) (*entity.Account, error)
	// CreateMember writes the account, its profile and its user role in one
	// transaction.
	CreateMember(ctx context.Context, account *entity.Account, profile entity.ProfileInsert) (entity.Profile, error)
	LinkGoogle(ctx context.Context, accountID uuid.UUID, googleID string) error
	List(ctx context.Context) ([]entity.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *accountRepository) FindByGoogleID(ctx context.Context, googleID string) (*entity.Account, error) {
	return r.findOne(ctx, "google_id = ?", googleID)
}

func (r *accountRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Account, error) {
	var account entity.Account
	if err := r.db.WithContext(ctx).Where(query, args...).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) CreateMember(ctx context.Context, account *entity.Account, profile entity.ProfileInsert) (entity.Profile, error) {
	var created entity.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("email already registered: %w", apperror.ErrConflict)
			}
			return err
		}

		profile.UserID = account.ID
		p, err := store.From(tx, schema.Default.Tables.Profiles).Insert(ctx, profile)
		if err != nil {
			return err
		}
		created = p

		_, err = store.From(tx, schema.Default.Tables.UserRoles).InsertIgnore(ctx, entity.UserRoleInsert{UserID: account.ID})
		return err
	})
	return created, err
}

func (r *accountRepository) LinkGoogle(ctx context.Context, accountID uuid.UUID, googleID string) error {
	res := r.db.WithContext(ctx).Model(&entity.Account{}).Where("id = ?", accountID).Update("google_id", googleID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("account: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *accountRepository) List(ctx context.Context) ([]entity.Account, error) {
	var accounts []entity.Account
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}
