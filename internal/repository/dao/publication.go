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
	ErrPublicationNotFound = errors.New("publication not found")
	ErrExternalNotFound    = errors.New("external member not found")
	ErrFileNotFound        = errors.New("file not found")
)

type Publication struct {
	ID uint `gorm:"primaryKey"`

	Title    string   `gorm:"size:500;not null"`
	Abstract string   `gorm:"not null"`
	Keywords []string `gorm:"serializer:json"`

	PostedByID uint      `gorm:"not null;index"`
	PostedBy   User      `gorm:"foreignKey:PostedByID"`
	PostedAt   time.Time `gorm:"autoCreateTime;index"`

	TaggedMembers   []User     `gorm:"many2many:publication_tagged_members;"`
	TaggedExternals []External `gorm:"many2many:publication_tagged_externals;"`
	AttachedFiles   []UserFile `gorm:"many2many:publication_attached_files;"`
}

type External struct {
	ID uint `gorm:"primaryKey"`

	Name       string `gorm:"not null"`
	Email      string `gorm:"unique;not null"`
	CV         string
	ProfilePic string

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type UserFile struct {
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"not null"`
	File string `gorm:"not null"`

	UploadedByID uint `gorm:"not null;index"`
	UploadedBy   User `gorm:"foreignKey:UploadedByID"`

	UploadedAt time.Time `gorm:"autoCreateTime"`
	FileType   string
	Size       int64 `gorm:"not null;default:0"`
}

type PublicationDAO struct {
	db *gorm.DB
}

func NewPublicationDAO(db *gorm.DB) *PublicationDAO {
	return &PublicationDAO{
		db: db,
	}
}

func (d *PublicationDAO) preloaded(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).
		Preload("PostedBy").
		Preload("TaggedMembers").
		Preload("TaggedExternals").
		Preload("AttachedFiles")
}

func (d *PublicationDAO) FindAll(ctx context.Context) ([]Publication, error) {
	var pubs []Publication

	result := d.preloaded(ctx).Order("posted_at DESC").Find(&pubs)
	if result.Error != nil {
		return nil, result.Error
	}

	return pubs, nil
}

func (d *PublicationDAO) FindByID(ctx context.Context, id uint) (Publication, error) {
	var pub Publication

	result := d.preloaded(ctx).First(&pub, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Publication{}, ErrPublicationNotFound
		}

		return Publication{}, result.Error
	}

	return pub, nil
}

// Insert creates the publication and sets all three tag lists in one
// transaction. Associations are replaced in full (set semantics).
func (d *PublicationDAO) Insert(ctx context.Context, pub Publication, memberIDs, externalIDs, fileIDs []uint) (Publication, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("TaggedMembers", "TaggedExternals", "AttachedFiles").Create(&pub).Error; err != nil {
			return err
		}

		return replaceTags(tx, &pub, memberIDs, externalIDs, fileIDs)
	})
	if err != nil {
		return Publication{}, err
	}

	return d.FindByID(ctx, pub.ID)
}

func (d *PublicationDAO) Update(ctx context.Context, pub Publication, memberIDs, externalIDs, fileIDs []uint) (Publication, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("TaggedMembers", "TaggedExternals", "AttachedFiles", "PostedBy").Save(&pub).Error; err != nil {
			return err
		}

		return replaceTags(tx, &pub, memberIDs, externalIDs, fileIDs)
	})
	if err != nil {
		return Publication{}, err
	}

	return d.FindByID(ctx, pub.ID)
}

func replaceTags(tx *gorm.DB, pub *Publication, memberIDs, externalIDs, fileIDs []uint) error {
	members := make([]User, 0, len(memberIDs))
	for _, id := range memberIDs {
		members = append(members, User{ID: id})
	}
	if err := tx.Model(pub).Association("TaggedMembers").Replace(members); err != nil {
		return err
	}

	externals := make([]External, 0, len(externalIDs))
	for _, id := range externalIDs {
		externals = append(externals, External{ID: id})
	}
	if err := tx.Model(pub).Association("TaggedExternals").Replace(externals); err != nil {
		return err
	}

	files := make([]UserFile, 0, len(fileIDs))
	for _, id := range fileIDs {
		files = append(files, UserFile{ID: id})
	}

	return tx.Model(pub).Association("AttachedFiles").Replace(files)
}

func (d *PublicationDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Select("TaggedMembers", "TaggedExternals", "AttachedFiles").
		Delete(&Publication{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPublicationNotFound
	}

	return nil
}

type ExternalDAO struct {
	db *gorm.DB
}

func NewExternalDAO(db *gorm.DB) *ExternalDAO {
	return &ExternalDAO{
		db: db,
	}
}

func (d *ExternalDAO) FindAll(ctx context.Context) ([]External, error) {
	var externals []External

	result := d.db.WithContext(ctx).Order("id").Find(&externals)
	if result.Error != nil {
		return nil, result.Error
	}

	return externals, nil
}

func (d *ExternalDAO) FindByID(ctx context.Context, id uint) (External, error) {
	var external External

	result := d.db.WithContext(ctx).First(&external, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return External{}, ErrExternalNotFound
		}

		return External{}, result.Error
	}

	return external, nil
}

// UpsertByEmail returns the existing contact for the email when there is
// one, otherwise inserts. The unique index on email backstops the lookup
// under concurrent creates.
func (d *ExternalDAO) UpsertByEmail(ctx context.Context, external External) (External, bool, error) {
	var existing External

	result := d.db.WithContext(ctx).First(&existing, "email = ?", external.Email)
	if result.Error == nil {
		return existing, false, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return External{}, false, result.Error
	}

	if err := d.db.WithContext(ctx).Create(&external).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// Lost the race; the row exists now.
			result = d.db.WithContext(ctx).First(&existing, "email = ?", external.Email)
			if result.Error != nil {
				return External{}, false, result.Error
			}

			return existing, false, nil
		}

		return External{}, false, err
	}

	return external, true, nil
}

func (d *ExternalDAO) Update(ctx context.Context, external External) (External, error) {
	result := d.db.WithContext(ctx).Save(&external)
	if result.Error != nil {
		return External{}, result.Error
	}

	return external, nil
}

func (d *ExternalDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&External{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExternalNotFound
	}

	return nil
}

func (d *ExternalDAO) Search(ctx context.Context, query string, limit int) ([]External, error) {
	var externals []External

	tx := d.db.WithContext(ctx)
	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	result := tx.Limit(limit).Find(&externals)
	if result.Error != nil {
		return nil, result.Error
	}

	return externals, nil
}

type FileDAO struct {
	db *gorm.DB
}

func NewFileDAO(db *gorm.DB) *FileDAO {
	return &FileDAO{
		db: db,
	}
}

func (d *FileDAO) Insert(ctx context.Context, file UserFile) (UserFile, error) {
	result := d.db.WithContext(ctx).Create(&file)
	if result.Error != nil {
		return UserFile{}, result.Error
	}

	return file, nil
}

func (d *FileDAO) FindByUploader(ctx context.Context, userID uint) ([]UserFile, error) {
	var files []UserFile

	result := d.db.WithContext(ctx).
		Where("uploaded_by_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&files)
	if result.Error != nil {
		return nil, result.Error
	}

	return files, nil
}

func (d *FileDAO) FindByID(ctx context.Context, id uint) (UserFile, error) {
	var file UserFile

	result := d.db.WithContext(ctx).First(&file, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return UserFile{}, ErrFileNotFound
		}

		return UserFile{}, result.Error
	}

	return file, nil
}

func (d *FileDAO) Update(ctx context.Context, file UserFile) (UserFile, error) {
	result := d.db.WithContext(ctx).Save(&file)
	if result.Error != nil {
		return UserFile{}, result.Error
	}

	return file, nil
}

func (d *FileDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&UserFile{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFileNotFound
	}

	return nil
}
