package tenant

import (
	"context"
	"errors"
)

// ErrTenantNotFound is returned when no tenant matches the lookup
var ErrTenantNotFound = errors.New("tenant not found")

// Repository persists tenants.
type Repository interface {
	Create(ctx context.Context, tenant *Tenant) error
	Update(ctx context.Context, tenant *Tenant) error
	GetByID(ctx context.Context, id uint) (*Tenant, error)
	GetBySID(ctx context.Context, sid string) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	List(ctx context.Context, page, pageSize int) ([]*Tenant, int64, error)
}
