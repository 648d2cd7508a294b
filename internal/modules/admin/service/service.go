package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/admin/dto"
	accountRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/auth/repository"
	profileRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/profile/repository"
	role "github.com/atulpawar07/sp-cricket-hub/internal/modules/role/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

type AdminService interface {
	ListMembers(ctx context.Context) ([]dto.MemberResponse, error)
	SetMemberRole(ctx context.Context, actor session.Session, memberID uuid.UUID, r entity.AppRole) (*dto.MemberResponse, error)
}

type adminService struct {
	accounts accountRepo.AccountRepository
	profiles profileRepo.ProfileRepository
	roles    role.RoleService
}

func NewAdminService(accounts accountRepo.AccountRepository, profiles profileRepo.ProfileRepository, roles role.RoleService) AdminService {
	return &adminService{
		accounts: accounts,
		profiles: profiles,
		roles:    roles,
	}
}

// ListMembers returns every account with its profile and effective role,
// ordered by full name. Accounts without a profile sort by email.
func (s *adminService) ListMembers(ctx context.Context) ([]dto.MemberResponse, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	byUser := make(map[uuid.UUID]entity.Profile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}
	ids := make([]uuid.UUID, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	roles := s.roles.ResolveRoles(ctx, ids)

	members := make([]dto.MemberResponse, 0, len(accounts))
	for _, a := range accounts {
		m := dto.MemberResponse{ID: a.ID, Email: a.Email, Role: roles[a.ID], CreatedAt: a.CreatedAt}
		if p, ok := byUser[a.ID]; ok {
			m.Profile = &p
		}
		members = append(members, m)
	}

	sort.SliceStable(members, func(i, j int) bool {
		ni, nj := memberName(members[i]), memberName(members[j])
		if ni != nj {
			return ni < nj
		}
		return members[i].Email < members[j].Email
	})
	return members, nil
}

func (s *adminService) SetMemberRole(ctx context.Context, actor session.Session, memberID uuid.UUID, r entity.AppRole) (*dto.MemberResponse, error) {
	if memberID == actor.AccountID && r != entity.RoleAdmin {
		return nil, fmt.Errorf("admins cannot remove their own admin role: %w", apperror.ErrBadRequest)
	}

	account, err := s.accounts.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if err := s.roles.SetRole(ctx, account.ID, r); err != nil {
		return nil, err
	}

	res := &dto.MemberResponse{
		ID:        account.ID,
		Email:     account.Email,
		Role:      s.roles.ResolveRole(ctx, account.ID),
		CreatedAt: account.CreatedAt,
	}
	if p, err := s.profiles.FindByUserID(ctx, account.ID); err == nil {
		res.Profile = &p
	}
	return res, nil
}

func memberName(m dto.MemberResponse) string {
	if m.Profile == nil {
		return strings.ToLower(m.Email)
	}
	return strings.ToLower(m.Profile.FullName)
}
