package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
)

var (
	ErrProjectNotFound     = repository.ErrProjectNotFound
	ErrProjectAccessDenied = errors.New("no access to this project")
	ErrDocumentNotFound    = repository.ErrDocumentNotFound
)

type ProjectRepository interface {
	FindVisible(ctx context.Context, userID uint) ([]domain.Project, error)
	FindVisibleByID(ctx context.Context, id, userID uint) (domain.Project, error)
	FindByID(ctx context.Context, id uint) (domain.Project, error)
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	Update(ctx context.Context, project domain.Project) (domain.Project, error)
	Delete(ctx context.Context, id uint) error
	AddTeamMember(ctx context.Context, projectID, userID uint) error
	RemoveTeamMember(ctx context.Context, projectID, userID uint) error
	CreateDocument(ctx context.Context, doc domain.ProjectDocument) (domain.ProjectDocument, error)
	DocumentsByProject(ctx context.Context, projectID uint) ([]domain.ProjectDocument, error)
	FindDocumentByID(ctx context.Context, id uint) (domain.ProjectDocument, error)
	DeleteDocument(ctx context.Context, id uint) error
}

type ProjectUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type ProjectService struct {
	repo     ProjectRepository
	userRepo ProjectUserRepository
}

func NewProjectService(repo ProjectRepository, userRepo ProjectUserRepository) *ProjectService {
	return &ProjectService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// ListProjects only ever returns projects the caller created or belongs
// to; the filter is applied in the query itself.
func (s *ProjectService) ListProjects(ctx context.Context, userID uint) ([]domain.Project, error) {
	projects, err := s.repo.FindVisible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindVisible -> %w", err)
	}

	return projects, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id, userID uint) (domain.Project, error) {
	project, err := s.repo.FindVisibleByID(ctx, id, userID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.FindVisibleByID -> %w", err)
	}

	return project, nil
}

func (s *ProjectService) CreateProject(ctx context.Context, project domain.Project) (domain.Project, error) {
	if project.Status == "" {
		project.Status = domain.ProjectStatusPlanning
	}
	if project.Priority == "" {
		project.Priority = domain.ProjectPriorityMedium
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, userID uint, project domain.Project) (domain.Project, error) {
	existing, err := s.repo.FindVisibleByID(ctx, project.ID, userID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.FindVisibleByID -> %w", err)
	}

	project.CreatedBy = existing.CreatedBy
	project.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id, userID uint) error {
	if _, err := s.repo.FindVisibleByID(ctx, id, userID); err != nil {
		return fmt.Errorf("s.repo.FindVisibleByID -> %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// AddTeamMember requires the caller to already have access to the project.
func (s *ProjectService) AddTeamMember(ctx context.Context, projectID, callerID, userID uint) error {
	if _, err := s.repo.FindVisibleByID(ctx, projectID, callerID); err != nil {
		return fmt.Errorf("s.repo.FindVisibleByID -> %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	if err := s.repo.AddTeamMember(ctx, projectID, userID); err != nil {
		return fmt.Errorf("s.repo.AddTeamMember -> %w", err)
	}

	return nil
}

func (s *ProjectService) RemoveTeamMember(ctx context.Context, projectID, callerID, userID uint) error {
	if _, err := s.repo.FindVisibleByID(ctx, projectID, callerID); err != nil {
		return fmt.Errorf("s.repo.FindVisibleByID -> %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	if err := s.repo.RemoveTeamMember(ctx, projectID, userID); err != nil {
		return fmt.Errorf("s.repo.RemoveTeamMember -> %w", err)
	}

	return nil
}

// CreateDocument is forbidden, not hidden: an existing project a caller
// cannot access yields ErrProjectAccessDenied rather than not-found.
func (s *ProjectService) CreateDocument(ctx context.Context, callerID uint, doc domain.ProjectDocument) (domain.ProjectDocument, error) {
	project, err := s.repo.FindByID(ctx, doc.ProjectID)
	if err != nil {
		return domain.ProjectDocument{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !project.HasAccess(callerID) {
		return domain.ProjectDocument{}, ErrProjectAccessDenied
	}

	created, err := s.repo.CreateDocument(ctx, doc)
	if err != nil {
		return domain.ProjectDocument{}, fmt.Errorf("s.repo.CreateDocument -> %w", err)
	}

	return created, nil
}

// ListDocuments is scoped to an explicit project id; no id means an empty
// result, never the whole table.
func (s *ProjectService) ListDocuments(ctx context.Context, projectID uint) ([]domain.ProjectDocument, error) {
	if projectID == 0 {
		return []domain.ProjectDocument{}, nil
	}

	docs, err := s.repo.DocumentsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.DocumentsByProject -> %w", err)
	}

	return docs, nil
}

func (s *ProjectService) GetDocument(ctx context.Context, id uint) (domain.ProjectDocument, error) {
	doc, err := s.repo.FindDocumentByID(ctx, id)
	if err != nil {
		return domain.ProjectDocument{}, fmt.Errorf("s.repo.FindDocumentByID -> %w", err)
	}

	return doc, nil
}

func (s *ProjectService) DeleteDocument(ctx context.Context, callerID, id uint) error {
	doc, err := s.repo.FindDocumentByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindDocumentByID -> %w", err)
	}

	project, err := s.repo.FindByID(ctx, doc.ProjectID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !project.HasAccess(callerID) {
		return ErrProjectAccessDenied
	}

	if err = s.repo.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteDocument -> %w", err)
	}

	return nil
}
