package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
)

var (
	ErrInvalidRole = errors.New("invalid role")
	ErrSelfBan     = errors.New("cannot ban yourself")
	ErrSelfDelete  = errors.New("cannot delete your own account")
)

type AdminUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	UpdateRole(ctx context.Context, userID uint, role string) (domain.User, error)
	SetActive(ctx context.Context, userID uint, active bool) (domain.User, error)
	Delete(ctx context.Context, userID uint) error
}

// AdminService covers the staff-only user lifecycle actions.
type AdminService struct {
	repo AdminUserRepository
}

func NewAdminService(repo AdminUserRepository) *AdminService {
	return &AdminService{
		repo: repo,
	}
}

// UpdateUserRole changes the profile role and the staff flag together; the
// superuser flag is never granted through this path.
func (s *AdminService) UpdateUserRole(ctx context.Context, targetID uint, role string) (domain.User, error) {
	if !domain.ValidRole(role) {
		return domain.User{}, ErrInvalidRole
	}

	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	updated, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateRole -> %w", err)
	}

	return updated, nil
}

func (s *AdminService) BanUser(ctx context.Context, caller domain.User, targetID uint) (domain.User, error) {
	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if caller.ID == targetID {
		return domain.User{}, ErrSelfBan
	}

	banned, err := s.repo.SetActive(ctx, targetID, false)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	return banned, nil
}

func (s *AdminService) UnbanUser(ctx context.Context, targetID uint) (domain.User, error) {
	unbanned, err := s.repo.SetActive(ctx, targetID, true)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	return unbanned, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, caller domain.User, targetID uint) (domain.User, error) {
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if caller.ID == targetID {
		return domain.User{}, ErrSelfDelete
	}

	if err = s.repo.Delete(ctx, targetID); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return target, nil
}
