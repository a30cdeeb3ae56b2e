package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
)

type fakeExternalRepo struct {
	byID    map[uint]domain.External
	byEmail map[string]domain.External
}

func newFakeExternalRepo(externals ...domain.External) *fakeExternalRepo {
	repo := &fakeExternalRepo{
		byID:    make(map[uint]domain.External),
		byEmail: make(map[string]domain.External),
	}
	for _, e := range externals {
		repo.byID[e.ID] = e
		repo.byEmail[e.Email] = e
	}

	return repo
}

func (f *fakeExternalRepo) FindAll(_ context.Context) ([]domain.External, error) {
	externals := make([]domain.External, 0, len(f.byID))
	for _, e := range f.byID {
		externals = append(externals, e)
	}

	return externals, nil
}

func (f *fakeExternalRepo) FindByID(_ context.Context, id uint) (domain.External, error) {
	external, ok := f.byID[id]
	if !ok {
		return domain.External{}, repository.ErrExternalNotFound
	}

	return external, nil
}

func (f *fakeExternalRepo) UpsertByEmail(_ context.Context, external domain.External) (domain.External, bool, error) {
	if existing, ok := f.byEmail[external.Email]; ok {
		external.ID = existing.ID
		external.CreatedAt = existing.CreatedAt
		f.byID[external.ID] = external
		f.byEmail[external.Email] = external

		return external, false, nil
	}

	external.ID = uint(len(f.byID) + 1)
	f.byID[external.ID] = external
	f.byEmail[external.Email] = external

	return external, true, nil
}

func (f *fakeExternalRepo) Update(_ context.Context, external domain.External) (domain.External, error) {
	f.byID[external.ID] = external

	return external, nil
}

func (f *fakeExternalRepo) Delete(_ context.Context, id uint) error {
	delete(f.byID, id)

	return nil
}

func TestExternalServiceCreateUpsertsByEmail(t *testing.T) {
	repo := newFakeExternalRepo()
	svc := NewExternalService(repo)

	first, created, err := svc.CreateExternal(context.Background(), domain.External{
		Name:  "Pierre Martin",
		Email: "pierre@example.org",
	})
	require.NoError(t, err)
	assert.True(t, created)

	// same email again updates in place instead of failing
	second, created, err := svc.CreateExternal(context.Background(), domain.External{
		Name:  "Pierre Martin-Dupont",
		Email: "pierre@example.org",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Pierre Martin-Dupont", repo.byID[first.ID].Name)
}

func TestExternalServiceUpdatePreservesCreatedAt(t *testing.T) {
	createdAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	repo := newFakeExternalRepo(domain.External{ID: 1, Email: "pierre@example.org", CreatedAt: createdAt})
	svc := NewExternalService(repo)

	updated, err := svc.UpdateExternal(context.Background(), domain.External{ID: 1, Name: "Pierre"})
	require.NoError(t, err)
	assert.Equal(t, createdAt, updated.CreatedAt)
}

func TestExternalServiceUpdateNotFound(t *testing.T) {
	svc := NewExternalService(newFakeExternalRepo())

	_, err := svc.UpdateExternal(context.Background(), domain.External{ID: 42})
	assert.ErrorIs(t, err, ErrExternalNotFound)
}
