package service

import (
	"context"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
)

type FileRepository interface {
	Create(ctx context.Context, file domain.UserFile) (domain.UserFile, error)
	FindByUploader(ctx context.Context, userID uint) ([]domain.UserFile, error)
	FindByID(ctx context.Context, id uint) (domain.UserFile, error)
	Update(ctx context.Context, file domain.UserFile) (domain.UserFile, error)
	Delete(ctx context.Context, id uint) error
}

type FileService struct {
	repo FileRepository
}

func NewFileService(repo FileRepository) *FileService {
	return &FileService{repo: repo}
}

func (s *FileService) UploadFile(ctx context.Context, file domain.UserFile) (domain.UserFile, error) {
	created, err := s.repo.Create(ctx, file)
	if err != nil {
		return domain.UserFile{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// MyFiles lists only the caller's uploads; files are scoped per user.
func (s *FileService) MyFiles(ctx context.Context, userID uint) ([]domain.UserFile, error) {
	files, err := s.repo.FindByUploader(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUploader -> %w", err)
	}

	return files, nil
}

func (s *FileService) GetFile(ctx context.Context, callerID, id uint) (domain.UserFile, error) {
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.UserFile{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if file.UploadedBy != callerID {
		return domain.UserFile{}, ErrNotFileOwner
	}

	return file, nil
}

func (s *FileService) RenameFile(ctx context.Context, callerID, id uint, name string) (domain.UserFile, error) {
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.UserFile{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if file.UploadedBy != callerID {
		return domain.UserFile{}, ErrNotFileOwner
	}

	file.Name = name

	updated, err := s.repo.Update(ctx, file)
	if err != nil {
		return domain.UserFile{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *FileService) DeleteFile(ctx context.Context, callerID, id uint) (domain.UserFile, error) {
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.UserFile{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if file.UploadedBy != callerID {
		return domain.UserFile{}, ErrNotFileOwner
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return domain.UserFile{}, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return file, nil
}
