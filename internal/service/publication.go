package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
)

var (
	ErrPublicationNotFound = repository.ErrPublicationNotFound
	ErrNotPublicationOwner = errors.New("only the poster can delete a publication")
	ErrExternalNotFound    = repository.ErrExternalNotFound
	ErrFileNotFound        = repository.ErrFileNotFound
	ErrNotFileOwner        = errors.New("only the uploader can modify a file")
)

type PublicationRepository interface {
	FindAll(ctx context.Context) ([]domain.Publication, error)
	FindByID(ctx context.Context, id uint) (domain.Publication, error)
	Create(ctx context.Context, pub domain.Publication, memberIDs, externalIDs, fileIDs []uint) (domain.Publication, error)
	Update(ctx context.Context, pub domain.Publication, memberIDs, externalIDs, fileIDs []uint) (domain.Publication, error)
	Delete(ctx context.Context, id uint) error
}

type MemberSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.User, error)
}

type ExternalSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.External, error)
}

type PublicationService struct {
	repo      PublicationRepository
	members   MemberSearcher
	externals ExternalSearcher
}

func NewPublicationService(repo PublicationRepository, members MemberSearcher, externals ExternalSearcher) *PublicationService {
	return &PublicationService{
		repo:      repo,
		members:   members,
		externals: externals,
	}
}

func (s *PublicationService) ListPublications(ctx context.Context) ([]domain.Publication, error) {
	pubs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return pubs, nil
}

func (s *PublicationService) GetPublication(ctx context.Context, id uint) (domain.Publication, error) {
	pub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Publication{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return pub, nil
}

// CreatePublication stamps the poster and sets the three tag lists as
// given; associations are replaced wholesale, not merged.
func (s *PublicationService) CreatePublication(ctx context.Context, pub domain.Publication, memberIDs, externalIDs, fileIDs []uint) (domain.Publication, error) {
	created, err := s.repo.Create(ctx, pub, memberIDs, externalIDs, fileIDs)
	if err != nil {
		return domain.Publication{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PublicationService) UpdatePublication(ctx context.Context, pub domain.Publication, memberIDs, externalIDs, fileIDs []uint) (domain.Publication, error) {
	existing, err := s.repo.FindByID(ctx, pub.ID)
	if err != nil {
		return domain.Publication{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	pub.PostedBy = existing.PostedBy
	pub.PostedAt = existing.PostedAt

	updated, err := s.repo.Update(ctx, pub, memberIDs, externalIDs, fileIDs)
	if err != nil {
		return domain.Publication{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeletePublication is owner-only.
func (s *PublicationService) DeletePublication(ctx context.Context, callerID, id uint) error {
	pub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if pub.PostedBy != callerID {
		return ErrNotPublicationOwner
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *PublicationService) SearchMembers(ctx context.Context, query string) ([]domain.User, error) {
	limit := searchFilteredLimit
	if query == "" {
		limit = searchAllLimit
	}

	users, err := s.members.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("s.members.Search -> %w", err)
	}

	return users, nil
}

func (s *PublicationService) SearchExternals(ctx context.Context, query string) ([]domain.External, error) {
	limit := searchFilteredLimit
	if query == "" {
		limit = searchAllLimit
	}

	externals, err := s.externals.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("s.externals.Search -> %w", err)
	}

	return externals, nil
}
