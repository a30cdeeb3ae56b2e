package repository

import (
	"context"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository/dao"
)

var (
	ErrUserExists   = dao.ErrUserExists
	ErrUserNotFound = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User, role string) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindAll(ctx context.Context) ([]dao.User, error)
	FindActive(ctx context.Context) ([]dao.User, error)
	Search(ctx context.Context, query string, limit int) ([]dao.User, error)
	UpdateNames(ctx context.Context, userID uint, firstName, lastName string) error
	UpdateProfile(ctx context.Context, userID uint, profile dao.Profile) (dao.Profile, error)
	UpdateRole(ctx context.Context, userID uint, role string) (dao.User, error)
	SetActive(ctx context.Context, userID uint, active bool) (dao.User, error)
	Delete(ctx context.Context, userID uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.Password,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  true,
	}, domain.RoleMember)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return userToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return usersToDomain(found), nil
}

func (r *UserRepository) FindActive(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActive -> %w", err)
	}

	return usersToDomain(found), nil
}

func (r *UserRepository) Search(ctx context.Context, query string, limit int) ([]domain.User, error) {
	found, err := r.dao.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Search -> %w", err)
	}

	return usersToDomain(found), nil
}

func (r *UserRepository) UpdateNames(ctx context.Context, userID uint, firstName, lastName string) error {
	if err := r.dao.UpdateNames(ctx, userID, firstName, lastName); err != nil {
		return fmt.Errorf("r.dao.UpdateNames -> %w", err)
	}

	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID uint, profile domain.Profile) (domain.Profile, error) {
	updated, err := r.dao.UpdateProfile(ctx, userID, dao.Profile{
		Phone:        profile.Phone,
		Bio:          profile.Bio,
		ProfileImage: profile.ProfileImage,
		Location:     profile.Location,
		Institution:  profile.Institution,
		Website:      profile.Website,
		LinkedIn:     profile.LinkedIn,
		Twitter:      profile.Twitter,
		GitHub:       profile.GitHub,
	})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.UpdateProfile -> %w", err)
	}

	return profileToDomain(updated), nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID uint, role string) (domain.User, error) {
	updated, err := r.dao.UpdateRole(ctx, userID, role)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateRole -> %w", err)
	}

	return userToDomain(updated), nil
}

func (r *UserRepository) SetActive(ctx context.Context, userID uint, active bool) (domain.User, error) {
	updated, err := r.dao.SetActive(ctx, userID, active)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.SetActive -> %w", err)
	}

	return userToDomain(updated), nil
}

func (r *UserRepository) Delete(ctx context.Context, userID uint) error {
	if err := r.dao.Delete(ctx, userID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func userToDomain(u dao.User) domain.User {
	user := domain.User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Password:    u.Password,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
		DateJoined:  u.DateJoined,
	}

	if u.Profile != nil {
		profile := profileToDomain(*u.Profile)
		user.Profile = &profile
	}

	return user
}

func usersToDomain(users []dao.User) []domain.User {
	result := make([]domain.User, 0, len(users))
	for _, u := range users {
		result = append(result, userToDomain(u))
	}

	return result
}

func profileToDomain(p dao.Profile) domain.Profile {
	return domain.Profile{
		Phone:        p.Phone,
		Bio:          p.Bio,
		ProfileImage: p.ProfileImage,
		Location:     p.Location,
		Institution:  p.Institution,
		Website:      p.Website,
		LinkedIn:     p.LinkedIn,
		Twitter:      p.Twitter,
		GitHub:       p.GitHub,
		IsTeamLead:   p.IsTeamLead,
		Role:         p.Role,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
