package repositories

import (
	"fmt"
	"log"

	"github.com/rohits-web03/docdrop/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDatabase opens the Postgres connection and runs migrations.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey and can be mapped to ErrDuplicateEmail.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.FileRecord{},
	)
	if err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	log.Println("Successfully connected to database")
	return db, nil
}
