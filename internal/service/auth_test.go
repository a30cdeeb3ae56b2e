package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
)

type fakeAuthRepo struct {
	byEmail map[string]domain.User
	created []domain.User
}

func (f *fakeAuthRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.User{}, repository.ErrUserExists
	}

	user.ID = uint(len(f.created) + 1)
	f.created = append(f.created, user)
	if f.byEmail == nil {
		f.byEmail = make(map[string]domain.User)
	}
	f.byEmail[user.Email] = user

	return user, nil
}

func (f *fakeAuthRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestAuthServiceSignupHashesPassword(t *testing.T) {
	repo := &fakeAuthRepo{}
	svc := NewAuthService(repo, nil)

	created, err := svc.Signup(context.Background(), domain.User{
		Username: "mcurie",
		Email:    "marie@lab.fr",
		Password: "motdepasse1",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	stored := repo.created[0].Password
	assert.NotEqual(t, "motdepasse1", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("motdepasse1")))
	assert.Equal(t, "mcurie", created.Username)
}

func TestAuthServiceSignupDuplicateEmail(t *testing.T) {
	repo := &fakeAuthRepo{byEmail: map[string]domain.User{
		"marie@lab.fr": {ID: 1, Email: "marie@lab.fr"},
	}}
	svc := NewAuthService(repo, nil)

	_, err := svc.Signup(context.Background(), domain.User{Email: "marie@lab.fr", Password: "motdepasse1"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthServiceLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("motdepasse1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	active := domain.User{ID: 1, Email: "marie@lab.fr", Password: string(hash), IsActive: true}
	banned := active
	banned.IsActive = false
	banned.Email = "banni@lab.fr"

	repo := &fakeAuthRepo{byEmail: map[string]domain.User{
		active.Email: active,
		banned.Email: banned,
	}}
	svc := NewAuthService(repo, nil)

	t.Run("success", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "marie@lab.fr", "motdepasse1")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@lab.fr", "motdepasse1")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "marie@lab.fr", "autremotdepasse")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("banned account", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "banni@lab.fr", "motdepasse1")
		assert.ErrorIs(t, err, ErrUserBanned)
	})
}

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "marie", usernameFromEmail("marie@lab.fr"))
	assert.Equal(t, "marie", usernameFromEmail("marie"))
}
