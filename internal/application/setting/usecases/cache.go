package usecases

import (
	"context"
	"time"

	"github.com/quiniela-inc/quiniela/internal/application/setting/dto"
)

// ResolvedCache caches fully resolved settings keyed by (tenant, pool, key).
// Implementations are best effort: a miss or a cache error falls back to
// the repository, never to a request failure.
type ResolvedCache interface {
	Get(ctx context.Context, tenantSID, poolSID, key string) (*dto.ResolvedSetting, bool)
	Set(ctx context.Context, tenantSID, poolSID, key string, value *dto.ResolvedSetting, ttl time.Duration)
	// InvalidateKey drops every resolved entry for the key, across all
	// tenants and pools. Override writes are rare; blanket invalidation
	// keeps the cascade correct without tracking scope fan-out.
	InvalidateKey(ctx context.Context, key string)
}
