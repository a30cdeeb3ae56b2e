package repository

import (
	"context"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository/dao"
)

var (
	ErrProjectNotFound  = dao.ErrProjectNotFound
	ErrDocumentNotFound = dao.ErrDocumentNotFound
)

type ProjectDAO interface {
	FindVisible(ctx context.Context, userID uint) ([]dao.Project, error)
	FindVisibleByID(ctx context.Context, id, userID uint) (dao.Project, error)
	FindByID(ctx context.Context, id uint) (dao.Project, error)
	Insert(ctx context.Context, project dao.Project) (dao.Project, error)
	Update(ctx context.Context, project dao.Project) (dao.Project, error)
	Delete(ctx context.Context, id uint) error
	AddTeamMember(ctx context.Context, projectID, userID uint) error
	RemoveTeamMember(ctx context.Context, projectID, userID uint) error
	InsertDocument(ctx context.Context, doc dao.ProjectDocument) (dao.ProjectDocument, error)
	DocumentsByProject(ctx context.Context, projectID uint) ([]dao.ProjectDocument, error)
	FindDocumentByID(ctx context.Context, id uint) (dao.ProjectDocument, error)
	DeleteDocument(ctx context.Context, id uint) error
}

type ProjectRepository struct {
	dao ProjectDAO
}

func NewProjectRepository(dao ProjectDAO) *ProjectRepository {
	return &ProjectRepository{
		dao: dao,
	}
}

func (r *ProjectRepository) FindVisible(ctx context.Context, userID uint) ([]domain.Project, error) {
	found, err := r.dao.FindVisible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindVisible -> %w", err)
	}

	projects := make([]domain.Project, 0, len(found))
	for _, p := range found {
		projects = append(projects, projectToDomain(p))
	}

	return projects, nil
}

func (r *ProjectRepository) FindVisibleByID(ctx context.Context, id, userID uint) (domain.Project, error) {
	found, err := r.dao.FindVisibleByID(ctx, id, userID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.FindVisibleByID -> %w", err)
	}

	return projectToDomain(found), nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (domain.Project, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return projectToDomain(found), nil
}

func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	created, err := r.dao.Insert(ctx, projectToDAO(project))
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return projectToDomain(created), nil
}

func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	updated, err := r.dao.Update(ctx, projectToDAO(project))
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return projectToDomain(updated), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ProjectRepository) AddTeamMember(ctx context.Context, projectID, userID uint) error {
	if err := r.dao.AddTeamMember(ctx, projectID, userID); err != nil {
		return fmt.Errorf("r.dao.AddTeamMember -> %w", err)
	}

	return nil
}

func (r *ProjectRepository) RemoveTeamMember(ctx context.Context, projectID, userID uint) error {
	if err := r.dao.RemoveTeamMember(ctx, projectID, userID); err != nil {
		return fmt.Errorf("r.dao.RemoveTeamMember -> %w", err)
	}

	return nil
}

func (r *ProjectRepository) CreateDocument(ctx context.Context, doc domain.ProjectDocument) (domain.ProjectDocument, error) {
	created, err := r.dao.InsertDocument(ctx, dao.ProjectDocument{
		ProjectID:    doc.ProjectID,
		Name:         doc.Name,
		File:         doc.File,
		UploadedByID: doc.UploadedBy,
		FileType:     doc.FileType,
		Size:         doc.Size,
	})
	if err != nil {
		return domain.ProjectDocument{}, fmt.Errorf("r.dao.InsertDocument -> %w", err)
	}

	return documentToDomain(created), nil
}

func (r *ProjectRepository) DocumentsByProject(ctx context.Context, projectID uint) ([]domain.ProjectDocument, error) {
	found, err := r.dao.DocumentsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.DocumentsByProject -> %w", err)
	}

	docs := make([]domain.ProjectDocument, 0, len(found))
	for _, d := range found {
		docs = append(docs, documentToDomain(d))
	}

	return docs, nil
}

func (r *ProjectRepository) FindDocumentByID(ctx context.Context, id uint) (domain.ProjectDocument, error) {
	found, err := r.dao.FindDocumentByID(ctx, id)
	if err != nil {
		return domain.ProjectDocument{}, fmt.Errorf("r.dao.FindDocumentByID -> %w", err)
	}

	return documentToDomain(found), nil
}

func (r *ProjectRepository) DeleteDocument(ctx context.Context, id uint) error {
	if err := r.dao.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteDocument -> %w", err)
	}

	return nil
}

func projectToDAO(p domain.Project) dao.Project {
	return dao.Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Status:      p.Status,
		Priority:    p.Priority,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedByID: p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}

func projectToDomain(p dao.Project) domain.Project {
	docs := make([]domain.ProjectDocument, 0, len(p.Documents))
	for _, d := range p.Documents {
		docs = append(docs, documentToDomain(d))
	}

	return domain.Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Status:      p.Status,
		Priority:    p.Priority,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedBy:   p.CreatedByID,
		Creator:     userToDomain(p.CreatedBy),
		TeamMembers: usersToDomain(p.TeamMembers),
		Documents:   docs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func documentToDomain(d dao.ProjectDocument) domain.ProjectDocument {
	return domain.ProjectDocument{
		ID:         d.ID,
		ProjectID:  d.ProjectID,
		Name:       d.Name,
		File:       d.File,
		UploadedBy: d.UploadedByID,
		Uploader:   userToDomain(d.UploadedBy),
		UploadedAt: d.UploadedAt,
		FileType:   d.FileType,
		Size:       d.Size,
	}
}
