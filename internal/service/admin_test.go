package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
)

type fakeAdminRepo struct {
	users       map[uint]domain.User
	deletedID   uint
	activeCalls []bool
}

func (f *fakeAdminRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeAdminRepo) UpdateRole(_ context.Context, userID uint, role string) (domain.User, error) {
	user := f.users[userID]
	user.IsStaff = role == domain.RoleAdmin || role == domain.RoleChefDEquipe
	user.Profile = &domain.Profile{Role: role}
	f.users[userID] = user

	return user, nil
}

func (f *fakeAdminRepo) SetActive(_ context.Context, userID uint, active bool) (domain.User, error) {
	f.activeCalls = append(f.activeCalls, active)
	user := f.users[userID]
	user.IsActive = active
	f.users[userID] = user

	return user, nil
}

func (f *fakeAdminRepo) Delete(_ context.Context, userID uint) error {
	f.deletedID = userID
	delete(f.users, userID)

	return nil
}

func newFakeAdminRepo(users ...domain.User) *fakeAdminRepo {
	repo := &fakeAdminRepo{users: make(map[uint]domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}

	return repo
}

func TestAdminServiceUpdateUserRole(t *testing.T) {
	repo := newFakeAdminRepo(domain.User{ID: 7, IsActive: true})
	svc := NewAdminService(repo)

	updated, err := svc.UpdateUserRole(context.Background(), 7, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role())
	assert.True(t, updated.IsStaff)
}

func TestAdminServiceUpdateUserRoleInvalid(t *testing.T) {
	svc := NewAdminService(newFakeAdminRepo())

	_, err := svc.UpdateUserRole(context.Background(), 7, "owner")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAdminServiceUpdateUserRoleNotFound(t *testing.T) {
	svc := NewAdminService(newFakeAdminRepo())

	_, err := svc.UpdateUserRole(context.Background(), 42, domain.RoleMember)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminServiceBanUser(t *testing.T) {
	repo := newFakeAdminRepo(domain.User{ID: 7, IsActive: true})
	svc := NewAdminService(repo)

	banned, err := svc.BanUser(context.Background(), domain.User{ID: 1}, 7)
	require.NoError(t, err)
	assert.False(t, banned.IsActive)
	assert.Equal(t, []bool{false}, repo.activeCalls)
}

func TestAdminServiceBanUserSelf(t *testing.T) {
	repo := newFakeAdminRepo(domain.User{ID: 1, IsActive: true})
	svc := NewAdminService(repo)

	_, err := svc.BanUser(context.Background(), domain.User{ID: 1}, 1)
	assert.ErrorIs(t, err, ErrSelfBan)
	assert.Empty(t, repo.activeCalls)
}

func TestAdminServiceUnbanUser(t *testing.T) {
	repo := newFakeAdminRepo(domain.User{ID: 7})
	svc := NewAdminService(repo)

	unbanned, err := svc.UnbanUser(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, unbanned.IsActive)
}

func TestAdminServiceDeleteUser(t *testing.T) {
	repo := newFakeAdminRepo(domain.User{ID: 7, Username: "target"})
	svc := NewAdminService(repo)

	deleted, err := svc.DeleteUser(context.Background(), domain.User{ID: 1}, 7)
	require.NoError(t, err)
	assert.Equal(t, "target", deleted.Username)
	assert.Equal(t, uint(7), repo.deletedID)
}

func TestAdminServiceDeleteUserSelf(t *testing.T) {
	repo := newFakeAdminRepo(domain.User{ID: 1})
	svc := NewAdminService(repo)

	_, err := svc.DeleteUser(context.Background(), domain.User{ID: 1}, 1)
	assert.ErrorIs(t, err, ErrSelfDelete)
	assert.Zero(t, repo.deletedID)
}
