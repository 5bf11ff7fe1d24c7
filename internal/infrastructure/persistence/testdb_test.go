package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lms/backend/internal/infrastructure/persistence/models"
	"github.com/lms/backend/internal/infrastructure/persistence/scope"
)

// setupTestDB creates an in-memory SQLite database with the full schema
// and the soft-delete callback installed, matching production reads.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.TenantModel{},
		&models.SystemUserModel{},
		&models.ClientModel{},
		&models.ClientTenantModel{},
		&models.ProgramModel{},
		&models.SpecializationModel{},
		&models.CourseModel{},
		&models.CourseModuleModel{},
		&models.TopicModel{},
		&models.VideoModel{},
		&models.TeacherCourseModel{},
		&models.StudentModel{},
		&models.StudentEmailModel{},
		&models.TeacherModel{},
		&models.EnrollmentModel{},
		&models.CourseProgressModel{},
	)
	require.NoError(t, err)

	scope.RegisterSoftDeleteCallback(db)

	return db
}
