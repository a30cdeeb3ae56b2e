package repository

import (
	"context"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository/dao"
)

type SiteContentDAO interface {
	GetOrCreate(ctx context.Context) (dao.SiteContent, error)
	Update(ctx context.Context, content dao.SiteContent) (dao.SiteContent, error)
}

type SiteContentRepository struct {
	dao SiteContentDAO
}

func NewSiteContentRepository(dao SiteContentDAO) *SiteContentRepository {
	return &SiteContentRepository{
		dao: dao,
	}
}

func (r *SiteContentRepository) Get(ctx context.Context) (domain.SiteContent, error) {
	content, err := r.dao.GetOrCreate(ctx)
	if err != nil {
		return domain.SiteContent{}, fmt.Errorf("r.dao.GetOrCreate -> %w", err)
	}

	return siteContentToDomain(content), nil
}

func (r *SiteContentRepository) Update(ctx context.Context, content domain.SiteContent) (domain.SiteContent, error) {
	updated, err := r.dao.Update(ctx, dao.SiteContent{
		ID:                     1,
		ContactAddress:         content.ContactAddress,
		ContactPhone:           content.ContactPhone,
		ContactEmail:           content.ContactEmail,
		ContactHours:           content.ContactHours,
		FooterResearchDomains:  content.FooterResearchDomains,
		FooterTeamIntroduction: content.FooterTeamIntroduction,
		FooterTeamName:         content.FooterTeamName,
		FooterCopyright:        content.FooterCopyright,
	})
	if err != nil {
		return domain.SiteContent{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return siteContentToDomain(updated), nil
}

func siteContentToDomain(c dao.SiteContent) domain.SiteContent {
	return domain.SiteContent{
		ID:                     c.ID,
		ContactAddress:         c.ContactAddress,
		ContactPhone:           c.ContactPhone,
		ContactEmail:           c.ContactEmail,
		ContactHours:           c.ContactHours,
		FooterResearchDomains:  c.FooterResearchDomains,
		FooterTeamIntroduction: c.FooterTeamIntroduction,
		FooterTeamName:         c.FooterTeamName,
		FooterCopyright:        c.FooterCopyright,
	}
}
