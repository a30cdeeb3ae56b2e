package service

import (
	"context"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
)

var ErrUserNotFound = repository.ErrUserNotFound

const (
	searchAllLimit      = 50
	searchFilteredLimit = 20
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindActive(ctx context.Context) ([]domain.User, error)
	Search(ctx context.Context, query string, limit int) ([]domain.User, error)
	UpdateNames(ctx context.Context, userID uint, firstName, lastName string) error
	UpdateProfile(ctx context.Context, userID uint, profile domain.Profile) (domain.Profile, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// TeamMembers lists active accounts with their profiles, the public
// team page data.
func (s *UserService) TeamMembers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActive -> %w", err)
	}

	return users, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

// SearchMembers returns everyone (capped) for an empty query, otherwise a
// username/name match.
func (s *UserService) SearchMembers(ctx context.Context, query string) ([]domain.User, error) {
	limit := searchFilteredLimit
	if query == "" {
		limit = searchAllLimit
	}

	users, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Search -> %w", err)
	}

	return users, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, profile domain.Profile) (domain.Profile, error) {
	updated, err := s.repo.UpdateProfile(ctx, userID, profile)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return updated, nil
}

func (s *UserService) UpdateNames(ctx context.Context, userID uint, firstName, lastName string) error {
	if err := s.repo.UpdateNames(ctx, userID, firstName, lastName); err != nil {
		return fmt.Errorf("s.repo.UpdateNames -> %w", err)
	}

	return nil
}
