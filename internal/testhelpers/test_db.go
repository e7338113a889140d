package testhelpers

import (
	"fmt"
	"testing"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB creates an isolated in-memory SQLite database migrated
// with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.InterviewTemplate{},
		&models.TemplateQuestion{},
		&models.Interview{},
		&models.InterviewAnswer{},
		&models.AISession{},
		&models.TranscriptEntry{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
