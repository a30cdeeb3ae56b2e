package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Profile{},
		&SiteContent{},
		&Project{},
		&ProjectDocument{},
		&Publication{},
		&External{},
		&UserFile{},
		&Event{},
		&EventRegistration{},
		&ContactMessage{},
		&AccountRequest{},
		&InternalMessage{},
	)
}
