package usecases

import (
	"context"
	"fmt"

	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type DeleteSettingCommand struct {
	Scope     setting.Scope
	TenantSID string
	PoolSID   string
	Key       string
}

type DeleteSettingUseCase struct {
	settingRepo setting.Repository
	registry    *setting.Registry
	cache       ResolvedCache // optional
	logger      logger.Interface
}

func NewDeleteSettingUseCase(
	settingRepo setting.Repository,
	registry *setting.Registry,
	logger logger.Interface,
) *DeleteSettingUseCase {
	return &DeleteSettingUseCase{
		settingRepo: settingRepo,
		registry:    registry,
		logger:      logger,
	}
}

// SetCache enables cache invalidation on deletes (optional).
func (uc *DeleteSettingUseCase) SetCache(cache ResolvedCache) {
	uc.cache = cache
}

// Execute removes one override, restoring fall-through to the next scope.
// Deleting an override that does not exist is not an error.
func (uc *DeleteSettingUseCase) Execute(ctx context.Context, cmd DeleteSettingCommand) error {
	ref := setting.ScopeRef{TenantSID: cmd.TenantSID, PoolSID: cmd.PoolSID}
	if err := cmd.Scope.ValidateRef(ref); err != nil {
		return err
	}
	if _, ok := uc.registry.Get(cmd.Key); !ok {
		return fmt.Errorf("%w: %s", setting.ErrUnknownSettingKey, cmd.Key)
	}

	if err := uc.settingRepo.Delete(ctx, cmd.Scope, ref, cmd.Key); err != nil {
		uc.logger.Errorw("failed to delete setting override",
			"error", err,
			"scope", cmd.Scope,
			"tenant_sid", cmd.TenantSID,
			"pool_sid", cmd.PoolSID,
			"key", cmd.Key,
		)
		return fmt.Errorf("failed to delete setting override: %w", err)
	}

	if uc.cache != nil {
		uc.cache.InvalidateKey(ctx, cmd.Key)
	}

	uc.logger.Infow("setting override deleted",
		"scope", cmd.Scope,
		"tenant_sid", cmd.TenantSID,
		"pool_sid", cmd.PoolSID,
		"key", cmd.Key,
	)
	return nil
}
