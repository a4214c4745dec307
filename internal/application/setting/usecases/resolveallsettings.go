package usecases

import (
	"context"
	"fmt"

	"github.com/quiniela-inc/quiniela/internal/application/setting/dto"
	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type ResolveAllSettingsQuery struct {
	TenantSID string
	PoolSID   string
}

type ResolveAllSettingsUseCase struct {
	settingRepo setting.Repository
	registry    *setting.Registry
	logger      logger.Interface
}

func NewResolveAllSettingsUseCase(
	settingRepo setting.Repository,
	registry *setting.Registry,
	logger logger.Interface,
) *ResolveAllSettingsUseCase {
	return &ResolveAllSettingsUseCase{
		settingRepo: settingRepo,
		registry:    registry,
		logger:      logger,
	}
}

// Execute resolves every registered key in one pass. Overrides visible from
// the query's scopes are fetched with a single query and the cascade is
// applied in memory, so the result is a consistent snapshot.
func (uc *ResolveAllSettingsUseCase) Execute(ctx context.Context, query ResolveAllSettingsQuery) ([]*dto.ResolvedSetting, error) {
	ref := setting.ScopeRef{TenantSID: query.TenantSID, PoolSID: query.PoolSID}
	rows, err := uc.settingRepo.ListForScope(ctx, ref)
	if err != nil {
		uc.logger.Errorw("failed to list setting overrides",
			"error", err,
			"tenant_sid", query.TenantSID,
			"pool_sid", query.PoolSID,
		)
		return nil, fmt.Errorf("failed to list setting overrides: %w", err)
	}

	byScope := make(map[setting.Scope]map[string]*setting.Setting, 3)
	for _, row := range rows {
		m := byScope[row.Scope()]
		if m == nil {
			m = make(map[string]*setting.Setting)
			byScope[row.Scope()] = m
		}
		m[row.Key()] = row
	}

	lookup := func(scope setting.Scope, key string) *setting.Setting {
		if m := byScope[scope]; m != nil {
			return m[key]
		}
		return nil
	}

	keys := uc.registry.Keys()
	out := make([]*dto.ResolvedSetting, 0, len(keys))
	for _, key := range keys {
		def, _ := uc.registry.Get(key)

		var row *setting.Setting
		if query.PoolSID != "" {
			row = lookup(setting.ScopePool, key)
		}
		if row == nil && query.TenantSID != "" {
			row = lookup(setting.ScopeTenant, key)
		}
		if row == nil {
			row = lookup(setting.ScopeGlobal, key)
		}

		if row != nil {
			out = append(out, &dto.ResolvedSetting{
				Key:    key,
				Value:  row.Value(),
				Type:   string(def.Type),
				Source: string(row.Source()),
			})
			continue
		}
		out = append(out, &dto.ResolvedSetting{
			Key:    key,
			Value:  def.Default,
			Type:   string(def.Type),
			Source: string(setting.SourceDefault),
		})
	}
	return out, nil
}
