package org

import (
	"context"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
)

// ClientRepository defines persistence operations for clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Client, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Client, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, client *Client) error

	LinkTenant(ctx context.Context, link ClientTenant) error
	UnlinkTenant(ctx context.Context, clientID, tenantID uuid.UUID) error
	FindLinkedTenantIDs(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error)
}
