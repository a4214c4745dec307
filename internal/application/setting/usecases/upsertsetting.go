package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/quiniela-inc/quiniela/internal/application/setting/dto"
	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type UpsertSettingCommand struct {
	Scope     setting.Scope
	TenantSID string
	PoolSID   string
	Key       string
	Value     string
	UpdatedBy uint
}

type UpsertSettingUseCase struct {
	settingRepo setting.Repository
	registry    *setting.Registry
	cache       ResolvedCache // optional
	logger      logger.Interface
}

func NewUpsertSettingUseCase(
	settingRepo setting.Repository,
	registry *setting.Registry,
	logger logger.Interface,
) *UpsertSettingUseCase {
	return &UpsertSettingUseCase{
		settingRepo: settingRepo,
		registry:    registry,
		logger:      logger,
	}
}

// SetCache enables cache invalidation on writes (optional).
func (uc *UpsertSettingUseCase) SetCache(cache ResolvedCache) {
	uc.cache = cache
}

// Execute creates or updates one override. The scope shape, the key and the
// value are all validated before anything is written.
func (uc *UpsertSettingUseCase) Execute(ctx context.Context, cmd UpsertSettingCommand) (*dto.SettingDTO, error) {
	ref := setting.ScopeRef{TenantSID: cmd.TenantSID, PoolSID: cmd.PoolSID}
	if err := cmd.Scope.ValidateRef(ref); err != nil {
		return nil, err
	}

	def, ok := uc.registry.Get(cmd.Key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", setting.ErrUnknownSettingKey, cmd.Key)
	}
	if err := def.ValidateValue(cmd.Value); err != nil {
		return nil, err
	}

	existing, err := uc.settingRepo.Get(ctx, cmd.Scope, ref, cmd.Key)
	if err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
		uc.logger.Errorw("failed to read existing override", "error", err, "scope", cmd.Scope, "key", cmd.Key)
		return nil, fmt.Errorf("failed to read existing override: %w", err)
	}

	var row *setting.Setting
	if existing != nil {
		if err := existing.UpdateValue(def, cmd.Value, cmd.UpdatedBy); err != nil {
			return nil, err
		}
		row = existing
	} else {
		row, err = setting.NewSetting(cmd.Scope, ref, def, cmd.Value, cmd.UpdatedBy)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.settingRepo.Upsert(ctx, row); err != nil {
		uc.logger.Errorw("failed to upsert setting override",
			"error", err,
			"scope", cmd.Scope,
			"tenant_sid", cmd.TenantSID,
			"pool_sid", cmd.PoolSID,
			"key", cmd.Key,
		)
		return nil, fmt.Errorf("failed to upsert setting override: %w", err)
	}

	if uc.cache != nil {
		uc.cache.InvalidateKey(ctx, cmd.Key)
	}

	uc.logger.Infow("setting override saved",
		"scope", cmd.Scope,
		"tenant_sid", cmd.TenantSID,
		"pool_sid", cmd.PoolSID,
		"key", cmd.Key,
		"updated_by", cmd.UpdatedBy,
	)
	return dto.FromSetting(row), nil
}
