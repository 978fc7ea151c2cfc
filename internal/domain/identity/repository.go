package identity

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrganizationRepository defines persistence for organizations.
// Organizations are the tenant boundary itself, so lookups are global.
type OrganizationRepository interface {
	Save(ctx context.Context, org *Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	FindBySlug(ctx context.Context, slug string) (*Organization, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines persistence for users
type UserRepository interface {
	shared.TenantRepository[User]

	// FindByEmail finds a user by email within one organization
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)

	// FindByEmailGlobal finds a user by email across organizations (login)
	FindByEmailGlobal(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether an email is taken within one organization
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
}
