package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quiniela-inc/quiniela/internal/application/setting/dto"
	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

// resolvedTTL bounds staleness after an override write that bypassed
// invalidation.
const resolvedTTL = 5 * time.Minute

type ResolveSettingQuery struct {
	TenantSID string // empty resolves from the global scope only
	PoolSID   string // empty skips the pool scope
	Key       string
}

type ResolveSettingUseCase struct {
	settingRepo setting.Repository
	registry    *setting.Registry
	cache       ResolvedCache // optional
	logger      logger.Interface
}

func NewResolveSettingUseCase(
	settingRepo setting.Repository,
	registry *setting.Registry,
	logger logger.Interface,
) *ResolveSettingUseCase {
	return &ResolveSettingUseCase{
		settingRepo: settingRepo,
		registry:    registry,
		logger:      logger,
	}
}

// SetCache enables the resolved-value cache (optional).
func (uc *ResolveSettingUseCase) SetCache(cache ResolvedCache) {
	uc.cache = cache
}

// Execute walks the override cascade for one key: pool override first, then
// tenant, then global, then the registry default. Unknown keys are an error
// rather than a silent default.
func (uc *ResolveSettingUseCase) Execute(ctx context.Context, query ResolveSettingQuery) (*dto.ResolvedSetting, error) {
	def, ok := uc.registry.Get(query.Key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", setting.ErrUnknownSettingKey, query.Key)
	}

	if uc.cache != nil {
		if cached, hit := uc.cache.Get(ctx, query.TenantSID, query.PoolSID, query.Key); hit {
			return cached, nil
		}
	}

	resolved, err := uc.resolve(ctx, query, def)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, query.TenantSID, query.PoolSID, query.Key, resolved, resolvedTTL)
	}
	return resolved, nil
}

func (uc *ResolveSettingUseCase) resolve(ctx context.Context, query ResolveSettingQuery, def setting.Definition) (*dto.ResolvedSetting, error) {
	type step struct {
		scope setting.Scope
		ref   setting.ScopeRef
	}

	var steps []step
	if query.PoolSID != "" && query.TenantSID != "" {
		steps = append(steps, step{setting.ScopePool, setting.ScopeRef{TenantSID: query.TenantSID, PoolSID: query.PoolSID}})
	}
	if query.TenantSID != "" {
		steps = append(steps, step{setting.ScopeTenant, setting.ScopeRef{TenantSID: query.TenantSID}})
	}
	steps = append(steps, step{setting.ScopeGlobal, setting.ScopeRef{}})

	for _, st := range steps {
		row, err := uc.settingRepo.Get(ctx, st.scope, st.ref, query.Key)
		if err != nil {
			if errors.Is(err, setting.ErrSettingNotFound) {
				continue
			}
			uc.logger.Errorw("failed to read setting override",
				"error", err,
				"scope", st.scope,
				"tenant_sid", st.ref.TenantSID,
				"pool_sid", st.ref.PoolSID,
				"key", query.Key,
			)
			return nil, fmt.Errorf("failed to read setting override: %w", err)
		}
		return &dto.ResolvedSetting{
			Key:    query.Key,
			Value:  row.Value(),
			Type:   string(def.Type),
			Source: string(row.Source()),
		}, nil
	}

	return &dto.ResolvedSetting{
		Key:    query.Key,
		Value:  def.Default,
		Type:   string(def.Type),
		Source: string(setting.SourceDefault),
	}, nil
}
