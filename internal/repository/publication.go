package repository

import (
	"context"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository/dao"
)

var (
	ErrPublicationNotFound = dao.ErrPublicationNotFound
	ErrExternalNotFound    = dao.ErrExternalNotFound
	ErrFileNotFound        = dao.ErrFileNotFound
)

type PublicationDAO interface {
	FindAll(ctx context.Context) ([]dao.Publication, error)
	FindByID(ctx context.Context, id uint) (dao.Publication, error)
	Insert(ctx context.Context, pub dao.Publication, memberIDs, externalIDs, fileIDs []uint) (dao.Publication, error)
	Update(ctx context.Context, pub dao.Publication, memberIDs, externalIDs, fileIDs []uint) (dao.Publication, error)
	Delete(ctx context.Context, id uint) error
}

type PublicationRepository struct {
	dao PublicationDAO
}

func NewPublicationRepository(dao PublicationDAO) *PublicationRepository {
	return &PublicationRepository{
		dao: dao,
	}
}

func (r *PublicationRepository) FindAll(ctx context.Context) ([]domain.Publication, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	pubs := make([]domain.Publication, 0, len(found))
	for _, p := range found {
		pubs = append(pubs, publicationToDomain(p))
	}

	return pubs, nil
}

func (r *PublicationRepository) FindByID(ctx context.Context, id uint) (domain.Publication, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Publication{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return publicationToDomain(found), nil
}

func (r *PublicationRepository) Create(ctx context.Context, pub domain.Publication, memberIDs, externalIDs, fileIDs []uint) (domain.Publication, error) {
	created, err := r.dao.Insert(ctx, dao.Publication{
		Title:      pub.Title,
		Abstract:   pub.Abstract,
		Keywords:   pub.Keywords,
		PostedByID: pub.PostedBy,
	}, memberIDs, externalIDs, fileIDs)
	if err != nil {
		return domain.Publication{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return publicationToDomain(created), nil
}

func (r *PublicationRepository) Update(ctx context.Context, pub domain.Publication, memberIDs, externalIDs, fileIDs []uint) (domain.Publication, error) {
	updated, err := r.dao.Update(ctx, dao.Publication{
		ID:         pub.ID,
		Title:      pub.Title,
		Abstract:   pub.Abstract,
		Keywords:   pub.Keywords,
		PostedByID: pub.PostedBy,
		PostedAt:   pub.PostedAt,
	}, memberIDs, externalIDs, fileIDs)
	if err != nil {
		return domain.Publication{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return publicationToDomain(updated), nil
}

func (r *PublicationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func publicationToDomain(p dao.Publication) domain.Publication {
	externals := make([]domain.External, 0, len(p.TaggedExternals))
	for _, e := range p.TaggedExternals {
		externals = append(externals, externalToDomain(e))
	}

	files := make([]domain.UserFile, 0, len(p.AttachedFiles))
	for _, f := range p.AttachedFiles {
		files = append(files, fileToDomain(f))
	}

	return domain.Publication{
		ID:              p.ID,
		Title:           p.Title,
		Abstract:        p.Abstract,
		Keywords:        p.Keywords,
		PostedBy:        p.PostedByID,
		Poster:          userToDomain(p.PostedBy),
		PostedAt:        p.PostedAt,
		TaggedMembers:   usersToDomain(p.TaggedMembers),
		TaggedExternals: externals,
		AttachedFiles:   files,
	}
}

func externalToDomain(e dao.External) domain.External {
	return domain.External{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		CV:         e.CV,
		ProfilePic: e.ProfilePic,
		CreatedAt:  e.CreatedAt,
	}
}

func fileToDomain(f dao.UserFile) domain.UserFile {
	return domain.UserFile{
		ID:         f.ID,
		Name:       f.Name,
		File:       f.File,
		UploadedBy: f.UploadedByID,
		UploadedAt: f.UploadedAt,
		FileType:   f.FileType,
		Size:       f.Size,
	}
}

type ExternalDAO interface {
	FindAll(ctx context.Context) ([]dao.External, error)
	FindByID(ctx context.Context, id uint) (dao.External, error)
	UpsertByEmail(ctx context.Context, external dao.External) (dao.External, bool, error)
	Update(ctx context.Context, external dao.External) (dao.External, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, limit int) ([]dao.External, error)
}

type ExternalRepository struct {
	dao ExternalDAO
}

func NewExternalRepository(dao ExternalDAO) *ExternalRepository {
	return &ExternalRepository{
		dao: dao,
	}
}

func (r *ExternalRepository) FindAll(ctx context.Context) ([]domain.External, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	externals := make([]domain.External, 0, len(found))
	for _, e := range found {
		externals = append(externals, externalToDomain(e))
	}

	return externals, nil
}

func (r *ExternalRepository) FindByID(ctx context.Context, id uint) (domain.External, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.External{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return externalToDomain(found), nil
}

// UpsertByEmail returns the stored contact and whether it was newly created.
func (r *ExternalRepository) UpsertByEmail(ctx context.Context, external domain.External) (domain.External, bool, error) {
	stored, created, err := r.dao.UpsertByEmail(ctx, dao.External{
		Name:       external.Name,
		Email:      external.Email,
		CV:         external.CV,
		ProfilePic: external.ProfilePic,
	})
	if err != nil {
		return domain.External{}, false, fmt.Errorf("r.dao.UpsertByEmail -> %w", err)
	}

	return externalToDomain(stored), created, nil
}

func (r *ExternalRepository) Update(ctx context.Context, external domain.External) (domain.External, error) {
	updated, err := r.dao.Update(ctx, dao.External{
		ID:         external.ID,
		Name:       external.Name,
		Email:      external.Email,
		CV:         external.CV,
		ProfilePic: external.ProfilePic,
		CreatedAt:  external.CreatedAt,
	})
	if err != nil {
		return domain.External{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return externalToDomain(updated), nil
}

func (r *ExternalRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ExternalRepository) Search(ctx context.Context, query string, limit int) ([]domain.External, error) {
	found, err := r.dao.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Search -> %w", err)
	}

	externals := make([]domain.External, 0, len(found))
	for _, e := range found {
		externals = append(externals, externalToDomain(e))
	}

	return externals, nil
}

type FileDAO interface {
	Insert(ctx context.Context, file dao.UserFile) (dao.UserFile, error)
	FindByUploader(ctx context.Context, userID uint) ([]dao.UserFile, error)
	FindByID(ctx context.Context, id uint) (dao.UserFile, error)
	Update(ctx context.Context, file dao.UserFile) (dao.UserFile, error)
	Delete(ctx context.Context, id uint) error
}

type FileRepository struct {
	dao FileDAO
}

func NewFileRepository(dao FileDAO) *FileRepository {
	return &FileRepository{
		dao: dao,
	}
}

func (r *FileRepository) Create(ctx context.Context, file domain.UserFile) (domain.UserFile, error) {
	created, err := r.dao.Insert(ctx, dao.UserFile{
		Name:         file.Name,
		File:         file.File,
		UploadedByID: file.UploadedBy,
		FileType:     file.FileType,
		Size:         file.Size,
	})
	if err != nil {
		return domain.UserFile{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return fileToDomain(created), nil
}

func (r *FileRepository) FindByUploader(ctx context.Context, userID uint) ([]domain.UserFile, error) {
	found, err := r.dao.FindByUploader(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUploader -> %w", err)
	}

	files := make([]domain.UserFile, 0, len(found))
	for _, f := range found {
		files = append(files, fileToDomain(f))
	}

	return files, nil
}

func (r *FileRepository) FindByID(ctx context.Context, id uint) (domain.UserFile, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.UserFile{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return fileToDomain(found), nil
}

func (r *FileRepository) Update(ctx context.Context, file domain.UserFile) (domain.UserFile, error) {
	updated, err := r.dao.Update(ctx, dao.UserFile{
		ID:           file.ID,
		Name:         file.Name,
		File:         file.File,
		UploadedByID: file.UploadedBy,
		UploadedAt:   file.UploadedAt,
		FileType:     file.FileType,
		Size:         file.Size,
	})
	if err != nil {
		return domain.UserFile{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return fileToDomain(updated), nil
}

func (r *FileRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
