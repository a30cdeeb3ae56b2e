package service

import (
	"context"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
)

type SiteContentRepository interface {
	Get(ctx context.Context) (domain.SiteContent, error)
	Update(ctx context.Context, content domain.SiteContent) (domain.SiteContent, error)
}

type SiteContentService struct {
	repo SiteContentRepository
}

func NewSiteContentService(repo SiteContentRepository) *SiteContentService {
	return &SiteContentService{repo: repo}
}

// Get returns the site-wide content singleton, creating it with defaults
// on first read.
func (s *SiteContentService) Get(ctx context.Context) (domain.SiteContent, error) {
	content, err := s.repo.Get(ctx)
	if err != nil {
		return domain.SiteContent{}, fmt.Errorf("s.repo.Get -> %w", err)
	}

	return content, nil
}

func (s *SiteContentService) Update(ctx context.Context, content domain.SiteContent) (domain.SiteContent, error) {
	updated, err := s.repo.Update(ctx, content)
	if err != nil {
		return domain.SiteContent{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
