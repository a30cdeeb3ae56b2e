package dao

import (
	"context"

	"gorm.io/gorm"
)

// SiteContent is a singleton row (id=1), created on first read.
type SiteContent struct {
	ID uint `gorm:"primaryKey"`

	ContactAddress         string
	ContactPhone           string
	ContactEmail           string
	ContactHours           string
	FooterResearchDomains  []string `gorm:"serializer:json"`
	FooterTeamIntroduction string
	FooterTeamName         string
	FooterCopyright        string
}

type SiteContentDAO struct {
	db *gorm.DB
}

func NewSiteContentDAO(db *gorm.DB) *SiteContentDAO {
	return &SiteContentDAO{
		db: db,
	}
}

func (d *SiteContentDAO) GetOrCreate(ctx context.Context) (SiteContent, error) {
	content := SiteContent{ID: 1}

	result := d.db.WithContext(ctx).FirstOrCreate(&content)
	if result.Error != nil {
		return SiteContent{}, result.Error
	}

	return content, nil
}

func (d *SiteContentDAO) Update(ctx context.Context, content SiteContent) (SiteContent, error) {
	content.ID = 1

	result := d.db.WithContext(ctx).Save(&content)
	if result.Error != nil {
		return SiteContent{}, result.Error
	}

	return content, nil
}
