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

type fakePublicationRepo struct {
	pubs      map[uint]domain.Publication
	deletedID uint

	lastMemberIDs   []uint
	lastExternalIDs []uint
	lastFileIDs     []uint
}

func (f *fakePublicationRepo) FindAll(_ context.Context) ([]domain.Publication, error) {
	pubs := make([]domain.Publication, 0, len(f.pubs))
	for _, p := range f.pubs {
		pubs = append(pubs, p)
	}

	return pubs, nil
}

func (f *fakePublicationRepo) FindByID(_ context.Context, id uint) (domain.Publication, error) {
	pub, ok := f.pubs[id]
	if !ok {
		return domain.Publication{}, repository.ErrPublicationNotFound
	}

	return pub, nil
}

func (f *fakePublicationRepo) Create(_ context.Context, pub domain.Publication, memberIDs, externalIDs, fileIDs []uint) (domain.Publication, error) {
	pub.ID = uint(len(f.pubs) + 1)
	if f.pubs == nil {
		f.pubs = make(map[uint]domain.Publication)
	}
	f.pubs[pub.ID] = pub
	f.lastMemberIDs, f.lastExternalIDs, f.lastFileIDs = memberIDs, externalIDs, fileIDs

	return pub, nil
}

func (f *fakePublicationRepo) Update(_ context.Context, pub domain.Publication, memberIDs, externalIDs, fileIDs []uint) (domain.Publication, error) {
	f.pubs[pub.ID] = pub
	f.lastMemberIDs, f.lastExternalIDs, f.lastFileIDs = memberIDs, externalIDs, fileIDs

	return pub, nil
}

func (f *fakePublicationRepo) Delete(_ context.Context, id uint) error {
	f.deletedID = id
	delete(f.pubs, id)

	return nil
}

type fakeMemberSearcher struct {
	lastQuery string
	lastLimit int
}

func (f *fakeMemberSearcher) Search(_ context.Context, query string, limit int) ([]domain.User, error) {
	f.lastQuery, f.lastLimit = query, limit

	return nil, nil
}

type fakeExternalSearcher struct {
	lastLimit int
}

func (f *fakeExternalSearcher) Search(_ context.Context, _ string, limit int) ([]domain.External, error) {
	f.lastLimit = limit

	return nil, nil
}

func TestPublicationServiceUpdatePreservesPoster(t *testing.T) {
	posted := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakePublicationRepo{pubs: map[uint]domain.Publication{
		1: {ID: 1, Title: "Ancien titre", PostedBy: 7, PostedAt: posted},
	}}
	svc := NewPublicationService(repo, nil, nil)

	updated, err := svc.UpdatePublication(context.Background(), domain.Publication{
		ID:       1,
		Title:    "Nouveau titre",
		PostedBy: 99, // client cannot reassign the poster
	}, []uint{2}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, uint(7), updated.PostedBy)
	assert.Equal(t, posted, updated.PostedAt)
	assert.Equal(t, []uint{2}, repo.lastMemberIDs)
}

func TestPublicationServiceDeleteOwnerOnly(t *testing.T) {
	repo := &fakePublicationRepo{pubs: map[uint]domain.Publication{
		1: {ID: 1, PostedBy: 7},
	}}
	svc := NewPublicationService(repo, nil, nil)

	err := svc.DeletePublication(context.Background(), 8, 1)
	assert.ErrorIs(t, err, ErrNotPublicationOwner)
	assert.Zero(t, repo.deletedID)

	require.NoError(t, svc.DeletePublication(context.Background(), 7, 1))
	assert.Equal(t, uint(1), repo.deletedID)
}

func TestPublicationServiceDeleteNotFound(t *testing.T) {
	svc := NewPublicationService(&fakePublicationRepo{}, nil, nil)

	err := svc.DeletePublication(context.Background(), 7, 42)
	assert.ErrorIs(t, err, ErrPublicationNotFound)
}

func TestPublicationServiceSearchLimits(t *testing.T) {
	members := &fakeMemberSearcher{}
	externals := &fakeExternalSearcher{}
	svc := NewPublicationService(&fakePublicationRepo{}, members, externals)

	_, err := svc.SearchMembers(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, searchAllLimit, members.lastLimit)

	_, err = svc.SearchMembers(context.Background(), "curie")
	require.NoError(t, err)
	assert.Equal(t, "curie", members.lastQuery)
	assert.Equal(t, searchFilteredLimit, members.lastLimit)

	_, err = svc.SearchExternals(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, searchAllLimit, externals.lastLimit)
}
