package database

import (
	"errors"

	"gorm.io/gorm"

	"motomap-api/internal/core/auth"
	"motomap-api/internal/domain"
)

// Migrate creates or updates the schema for all models. The unique indexes
// on motorcycles.tag_id, readers.serial_number and yards(name,address) are
// the race-safe backstop for the application-level uniqueness checks.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Yard{},
		&domain.Reader{},
		&domain.Motorcycle{},
	)
}

// Seed ensures the bootstrap admin account exists. The password hash is
// refreshed on every boot so a changed bcrypt cost takes effect.
func Seed(db *gorm.DB) error {
	var admin domain.User
	err := db.First(&admin, "username = ?", "admin").Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = domain.User{
			Username:     "admin",
			PasswordHash: auth.HashPassword("admin"),
			Role:         "Admin",
		}
		return db.Create(&admin).Error
	case err != nil:
		return err
	default:
		admin.PasswordHash = auth.HashPassword("admin")
		return db.Save(&admin).Error
	}
}
