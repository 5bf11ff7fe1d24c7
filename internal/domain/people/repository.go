package people

import (
	"context"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
)

// StudentRepository defines persistence operations for students.
// SaveWithEmails must persist the student and its email rows atomically.
type StudentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Student, error)
	FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*Student, error)
	FindByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*Student, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Student, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByUsername(ctx context.Context, tenantID uuid.UUID, username string) (bool, error)
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, address string) (bool, error)
	Save(ctx context.Context, student *Student) error
	SaveWithEmails(ctx context.Context, student *Student) error
}

// TeacherRepository defines persistence operations for teachers
type TeacherRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Teacher, error)
	FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*Teacher, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Teacher, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByUsername(ctx context.Context, tenantID uuid.UUID, username string) (bool, error)
	Save(ctx context.Context, teacher *Teacher) error
}
