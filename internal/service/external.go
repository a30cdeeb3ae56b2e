package service

import (
	"context"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
)

type ExternalRepository interface {
	FindAll(ctx context.Context) ([]domain.External, error)
	FindByID(ctx context.Context, id uint) (domain.External, error)
	UpsertByEmail(ctx context.Context, external domain.External) (domain.External, bool, error)
	Update(ctx context.Context, external domain.External) (domain.External, error)
	Delete(ctx context.Context, id uint) error
}

type ExternalService struct {
	repo ExternalRepository
}

func NewExternalService(repo ExternalRepository) *ExternalService {
	return &ExternalService{repo: repo}
}

func (s *ExternalService) ListExternals(ctx context.Context) ([]domain.External, error) {
	externals, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return externals, nil
}

func (s *ExternalService) GetExternal(ctx context.Context, id uint) (domain.External, error) {
	external, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.External{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return external, nil
}

// CreateExternal upserts by email: posting an existing address updates the
// record in place instead of failing. The returned flag reports whether a
// new row was created.
func (s *ExternalService) CreateExternal(ctx context.Context, external domain.External) (domain.External, bool, error) {
	saved, created, err := s.repo.UpsertByEmail(ctx, external)
	if err != nil {
		return domain.External{}, false, fmt.Errorf("s.repo.UpsertByEmail -> %w", err)
	}

	return saved, created, nil
}

func (s *ExternalService) UpdateExternal(ctx context.Context, external domain.External) (domain.External, error) {
	existing, err := s.repo.FindByID(ctx, external.ID)
	if err != nil {
		return domain.External{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	external.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, external)
	if err != nil {
		return domain.External{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ExternalService) DeleteExternal(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
