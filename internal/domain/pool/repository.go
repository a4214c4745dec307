package pool

import (
	"context"
	"errors"
)

// ErrPoolNotFound is returned when no pool matches the lookup
var ErrPoolNotFound = errors.New("pool not found")

// Repository persists pools.
type Repository interface {
	Create(ctx context.Context, pool *Pool) error
	Update(ctx context.Context, pool *Pool) error
	GetByID(ctx context.Context, id uint) (*Pool, error)
	GetBySID(ctx context.Context, sid string) (*Pool, error)
	ListByTenant(ctx context.Context, tenantID uint, page, pageSize int) ([]*Pool, int64, error)
}
