package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
)

// TenantRepository defines persistence operations for tenants
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByCode(ctx context.Context, code string) (*Tenant, error)
	FindByDomain(ctx context.Context, domain string) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, tenant *Tenant) error
}
