package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"unique;not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	FirstName string
	LastName  string

	IsStaff     bool `gorm:"not null;default:false"`
	IsSuperuser bool `gorm:"not null;default:false"`
	IsActive    bool `gorm:"not null;default:true"`

	DateJoined time.Time `gorm:"not null;autoCreateTime"`

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type Profile struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`

	Phone        string
	Bio          string
	ProfileImage string
	Location     string
	Institution  string
	Website      string
	LinkedIn     string
	Twitter      string
	GitHub       string

	IsTeamLead bool   `gorm:"not null;default:false"`
	Role       string `gorm:"not null;default:member"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// Insert creates the user and its profile in one transaction. The profile is
// an explicit step here, not a storage hook, so a user row never exists
// without exactly one profile row.
func (d *UserDAO) Insert(ctx context.Context, user User, role string) (User, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile := Profile{
			UserID: user.ID,
			Role:   role,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.Profile = &profile

		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return User{}, ErrUserExists
		}

		return User{}, err
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Preload("Profile").First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Preload("Profile").First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindAll(ctx context.Context) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Preload("Profile").Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) FindActive(ctx context.Context) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).
		Preload("Profile").
		Where("is_active = ?", true).
		Order("id").
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) Search(ctx context.Context, query string, limit int) ([]User, error) {
	var users []User

	tx := d.db.WithContext(ctx).Preload("Profile")
	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where(
			"username ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	result := tx.Limit(limit).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) UpdateNames(ctx context.Context, userID uint, firstName, lastName string) error {
	result := d.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) UpdateProfile(ctx context.Context, userID uint, profile Profile) (Profile, error) {
	var existing Profile

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where(Profile{UserID: userID}).FirstOrCreate(&existing)
		if result.Error != nil {
			return result.Error
		}

		existing.Phone = profile.Phone
		existing.Bio = profile.Bio
		existing.Location = profile.Location
		existing.Institution = profile.Institution
		existing.Website = profile.Website
		existing.LinkedIn = profile.LinkedIn
		existing.Twitter = profile.Twitter
		existing.GitHub = profile.GitHub
		if profile.ProfileImage != "" {
			existing.ProfileImage = profile.ProfileImage
		}

		return tx.Save(&existing).Error
	})
	if err != nil {
		return Profile{}, err
	}

	return existing, nil
}

// UpdateRole changes the profile role and the staff flag atomically. The
// superuser flag is never granted here.
func (d *UserDAO) UpdateRole(ctx context.Context, userID uint, role string) (User, error) {
	isStaff := role == "admin"

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{"is_staff": isStaff, "is_superuser": false})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		var profile Profile
		if err := tx.Where(Profile{UserID: userID}).FirstOrCreate(&profile).Error; err != nil {
			return err
		}

		return tx.Model(&profile).Update("role", role).Error
	})
	if err != nil {
		return User{}, err
	}

	return d.FindByID(ctx, userID)
}

func (d *UserDAO) SetActive(ctx context.Context, userID uint, active bool) (User, error) {
	result := d.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", userID).
		Update("is_active", active)
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByID(ctx, userID)
}

func (d *UserDAO) Delete(ctx context.Context, userID uint) error {
	result := d.db.WithContext(ctx).Select("Profile").Delete(&User{ID: userID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
