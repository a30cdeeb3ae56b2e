package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var (
	ErrUserExists    = repository.ErrUserExists
	ErrWrongPassword = errors.New("wrong password")
	ErrUserBanned    = errors.New("user account is disabled")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type AuthService struct {
	repo   AuthUserRepository
	google *oauth2.Config
}

func NewAuthService(repo AuthUserRepository, google *oauth2.Config) *AuthService {
	return &AuthService{
		repo:   repo,
		google: google,
	}
}

// Signup creates the account and, through the repository, its profile with
// the member role. The two inserts commit together.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	if !user.IsActive {
		return domain.User{}, ErrUserBanned
	}

	return user, nil
}

type googleUserInfo struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// GoogleLogin exchanges the authorization code, resolves the Google account
// to a local user and creates one on first login.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (domain.User, error) {
	token, err := s.google.Exchange(ctx, code)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.google.Exchange -> %w", err)
	}

	resp, err := s.google.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return domain.User{}, fmt.Errorf("google userinfo -> %w", err)
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err = json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return domain.User{}, fmt.Errorf("decode userinfo -> %w", err)
	}
	if info.Email == "" {
		return domain.User{}, errors.New("google userinfo returned no email")
	}

	user, err := s.repo.FindByEmail(ctx, info.Email)
	if err == nil {
		if !user.IsActive {
			return domain.User{}, ErrUserBanned
		}

		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.User{
		Username:  usernameFromEmail(info.Email),
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		// Social accounts have no usable local password.
		Password: "!",
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}

	return email
}
