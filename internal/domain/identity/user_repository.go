package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
)

// SystemUserRepository defines persistence operations for system users.
// Lookups by username/email are always per tenant; a nil tenantID addresses
// the platform scope (SUPER_ADMIN users).
type SystemUserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SystemUser, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*SystemUser, error)
	FindByUsername(ctx context.Context, tenantID *uuid.UUID, username string) (*SystemUser, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SystemUser, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByUsername(ctx context.Context, tenantID *uuid.UUID, username string) (bool, error)
	ExistsByEmail(ctx context.Context, tenantID *uuid.UUID, email string) (bool, error)
	Save(ctx context.Context, user *SystemUser) error
}
