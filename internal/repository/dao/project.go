package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrDocumentNotFound = errors.New("project document not found")
)

type Project struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	Image       string
	Status      string `gorm:"not null;default:planning"`
	Priority    string `gorm:"not null;default:medium"`
	StartDate   *time.Time
	EndDate     *time.Time

	CreatedByID uint `gorm:"not null;index"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID"`

	TeamMembers []User            `gorm:"many2many:project_team_members;"`
	Documents   []ProjectDocument `gorm:"foreignKey:ProjectID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProjectDocument struct {
	ID uint `gorm:"primaryKey"`

	ProjectID uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	File      string `gorm:"not null"`

	UploadedByID uint `gorm:"not null"`
	UploadedBy   User `gorm:"foreignKey:UploadedByID"`

	UploadedAt time.Time `gorm:"autoCreateTime"`
	FileType   string
	Size       int64 `gorm:"default:0"`
}

type ProjectDAO struct {
	db *gorm.DB
}

func NewProjectDAO(db *gorm.DB) *ProjectDAO {
	return &ProjectDAO{
		db: db,
	}
}

// visibleTo narrows the query to projects the user created or belongs to.
// Visibility is a row-level filter, not a post-hoc check.
func visibleTo(tx *gorm.DB, userID uint) *gorm.DB {
	return tx.Where(
		"projects.created_by_id = ? OR projects.id IN (SELECT project_id FROM project_team_members WHERE user_id = ?)",
		userID, userID,
	)
}

func (d *ProjectDAO) FindVisible(ctx context.Context, userID uint) ([]Project, error) {
	var projects []Project

	result := visibleTo(d.db.WithContext(ctx), userID).
		Preload("CreatedBy").
		Preload("TeamMembers").
		Preload("Documents").
		Preload("Documents.UploadedBy").
		Order("created_at DESC").
		Find(&projects)
	if result.Error != nil {
		return nil, result.Error
	}

	return projects, nil
}

func (d *ProjectDAO) FindVisibleByID(ctx context.Context, id, userID uint) (Project, error) {
	var project Project

	result := visibleTo(d.db.WithContext(ctx), userID).
		Preload("CreatedBy").
		Preload("TeamMembers").
		Preload("Documents").
		Preload("Documents.UploadedBy").
		First(&project, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Project{}, ErrProjectNotFound
		}

		return Project{}, result.Error
	}

	return project, nil
}

func (d *ProjectDAO) FindByID(ctx context.Context, id uint) (Project, error) {
	var project Project

	result := d.db.WithContext(ctx).
		Preload("TeamMembers").
		First(&project, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Project{}, ErrProjectNotFound
		}

		return Project{}, result.Error
	}

	return project, nil
}

func (d *ProjectDAO) Insert(ctx context.Context, project Project) (Project, error) {
	result := d.db.WithContext(ctx).Create(&project)
	if result.Error != nil {
		return Project{}, result.Error
	}

	return d.FindVisibleByID(ctx, project.ID, project.CreatedByID)
}

func (d *ProjectDAO) Update(ctx context.Context, project Project) (Project, error) {
	result := d.db.WithContext(ctx).Omit("TeamMembers", "Documents", "CreatedBy").Save(&project)
	if result.Error != nil {
		return Project{}, result.Error
	}

	return d.FindVisibleByID(ctx, project.ID, project.CreatedByID)
}

func (d *ProjectDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

func (d *ProjectDAO) AddTeamMember(ctx context.Context, projectID, userID uint) error {
	return d.db.WithContext(ctx).
		Model(&Project{ID: projectID}).
		Association("TeamMembers").
		Append(&User{ID: userID})
}

func (d *ProjectDAO) RemoveTeamMember(ctx context.Context, projectID, userID uint) error {
	return d.db.WithContext(ctx).
		Model(&Project{ID: projectID}).
		Association("TeamMembers").
		Delete(&User{ID: userID})
}

func (d *ProjectDAO) InsertDocument(ctx context.Context, doc ProjectDocument) (ProjectDocument, error) {
	result := d.db.WithContext(ctx).Create(&doc)
	if result.Error != nil {
		return ProjectDocument{}, result.Error
	}

	return d.FindDocumentByID(ctx, doc.ID)
}

// DocumentsByProject is always scoped to one project; callers with no
// project id get an empty result, never "all documents".
func (d *ProjectDAO) DocumentsByProject(ctx context.Context, projectID uint) ([]ProjectDocument, error) {
	var docs []ProjectDocument

	result := d.db.WithContext(ctx).
		Preload("UploadedBy").
		Where("project_id = ?", projectID).
		Order("uploaded_at DESC").
		Find(&docs)
	if result.Error != nil {
		return nil, result.Error
	}

	return docs, nil
}

func (d *ProjectDAO) FindDocumentByID(ctx context.Context, id uint) (ProjectDocument, error) {
	var doc ProjectDocument

	result := d.db.WithContext(ctx).Preload("UploadedBy").First(&doc, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ProjectDocument{}, ErrDocumentNotFound
		}

		return ProjectDocument{}, result.Error
	}

	return doc, nil
}

func (d *ProjectDAO) DeleteDocument(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&ProjectDocument{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}
