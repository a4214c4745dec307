package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

// fakeSettingRepo stores overrides in memory keyed on (scope, tenant, pool,
// key).
type fakeSettingRepo struct {
	rows map[string]*setting.Setting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{rows: make(map[string]*setting.Setting)}
}

func rowKey(scope setting.Scope, ref setting.ScopeRef, key string) string {
	return fmt.Sprintf("%s|%s|%s|%s", scope, ref.TenantSID, ref.PoolSID, key)
}

func (r *fakeSettingRepo) Get(_ context.Context, scope setting.Scope, ref setting.ScopeRef, key string) (*setting.Setting, error) {
	row, ok := r.rows[rowKey(scope, ref, key)]
	if !ok {
		return nil, setting.ErrSettingNotFound
	}
	return row, nil
}

func (r *fakeSettingRepo) ListForScope(_ context.Context, ref setting.ScopeRef) ([]*setting.Setting, error) {
	var out []*setting.Setting
	for _, row := range r.rows {
		switch row.Scope() {
		case setting.ScopeGlobal:
			out = append(out, row)
		case setting.ScopeTenant:
			if row.TenantSID() == ref.TenantSID {
				out = append(out, row)
			}
		case setting.ScopePool:
			if row.TenantSID() == ref.TenantSID && row.PoolSID() == ref.PoolSID {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (r *fakeSettingRepo) Upsert(_ context.Context, s *setting.Setting) error {
	ref := setting.ScopeRef{TenantSID: s.TenantSID(), PoolSID: s.PoolSID()}
	r.rows[rowKey(s.Scope(), ref, s.Key())] = s
	return nil
}

func (r *fakeSettingRepo) Delete(_ context.Context, scope setting.Scope, ref setting.ScopeRef, key string) error {
	delete(r.rows, rowKey(scope, ref, key))
	return nil
}

func seedOverride(t *testing.T, repo *fakeSettingRepo, registry *setting.Registry, scope setting.Scope, ref setting.ScopeRef, key, value string) {
	t.Helper()
	def, ok := registry.Get(key)
	require.True(t, ok)
	row, err := setting.NewSetting(scope, ref, def, value, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(context.Background(), row))
}

func TestResolveSetting_CascadeOrder(t *testing.T) {
	ctx := context.Background()
	registry := setting.DefaultRegistry()
	repo := newFakeSettingRepo()
	uc := NewResolveSettingUseCase(repo, registry, logger.NewLogger())

	query := ResolveSettingQuery{TenantSID: "tn_abc", PoolSID: "pl_xyz", Key: setting.KeyCaptchaLevel}

	// No overrides anywhere: registry default wins.
	got, err := uc.Execute(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "auto", got.Value)
	assert.Equal(t, "default", got.Source)

	// A global override shadows the default.
	seedOverride(t, repo, registry, setting.ScopeGlobal, setting.ScopeRef{}, setting.KeyCaptchaLevel, "off")
	got, err = uc.Execute(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "off", got.Value)
	assert.Equal(t, "global", got.Source)

	// A tenant override shadows global.
	seedOverride(t, repo, registry, setting.ScopeTenant, setting.ScopeRef{TenantSID: "tn_abc"}, setting.KeyCaptchaLevel, "auto")
	got, err = uc.Execute(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "auto", got.Value)
	assert.Equal(t, "tenant", got.Source)

	// A pool override shadows everything.
	seedOverride(t, repo, registry, setting.ScopePool, setting.ScopeRef{TenantSID: "tn_abc", PoolSID: "pl_xyz"}, setting.KeyCaptchaLevel, "force")
	got, err = uc.Execute(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "force", got.Value)
	assert.Equal(t, "pool", got.Source)
}

func TestResolveSetting_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	registry := setting.DefaultRegistry()
	repo := newFakeSettingRepo()
	uc := NewResolveSettingUseCase(repo, registry, logger.NewLogger())

	seedOverride(t, repo, registry, setting.ScopeTenant, setting.ScopeRef{TenantSID: "tn_abc"}, setting.KeyDefaultLocale, "en-US")

	got, err := uc.Execute(ctx, ResolveSettingQuery{TenantSID: "tn_other", Key: setting.KeyDefaultLocale})
	require.NoError(t, err)
	assert.Equal(t, "es-MX", got.Value, "another tenant's override must not leak")
	assert.Equal(t, "default", got.Source)
}

func TestResolveSetting_PoolOverrideIgnoredWithoutPoolContext(t *testing.T) {
	ctx := context.Background()
	registry := setting.DefaultRegistry()
	repo := newFakeSettingRepo()
	uc := NewResolveSettingUseCase(repo, registry, logger.NewLogger())

	seedOverride(t, repo, registry, setting.ScopePool, setting.ScopeRef{TenantSID: "tn_abc", PoolSID: "pl_xyz"}, setting.KeyCaptchaLevel, "force")

	got, err := uc.Execute(ctx, ResolveSettingQuery{TenantSID: "tn_abc", Key: setting.KeyCaptchaLevel})
	require.NoError(t, err)
	assert.Equal(t, "auto", got.Value)
	assert.Equal(t, "default", got.Source)
}

func TestResolveSetting_UnknownKey(t *testing.T) {
	uc := NewResolveSettingUseCase(newFakeSettingRepo(), setting.DefaultRegistry(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), ResolveSettingQuery{Key: "no_such_key"})
	assert.ErrorIs(t, err, setting.ErrUnknownSettingKey)
}

func TestResolveAllSettings(t *testing.T) {
	ctx := context.Background()
	registry := setting.DefaultRegistry()
	repo := newFakeSettingRepo()
	uc := NewResolveAllSettingsUseCase(repo, registry, logger.NewLogger())

	seedOverride(t, repo, registry, setting.ScopeGlobal, setting.ScopeRef{}, setting.KeyCaptchaLevel, "off")
	seedOverride(t, repo, registry, setting.ScopeTenant, setting.ScopeRef{TenantSID: "tn_abc"}, setting.KeyLeaderboardPageSize, "50")
	seedOverride(t, repo, registry, setting.ScopePool, setting.ScopeRef{TenantSID: "tn_abc", PoolSID: "pl_xyz"}, setting.KeyPredictionLockOffset, "600")

	resolved, err := uc.Execute(ctx, ResolveAllSettingsQuery{TenantSID: "tn_abc", PoolSID: "pl_xyz"})
	require.NoError(t, err)
	assert.Len(t, resolved, len(registry.Keys()), "every registered key resolves")

	bySource := make(map[string]string, len(resolved))
	byValue := make(map[string]string, len(resolved))
	for _, r := range resolved {
		bySource[r.Key] = r.Source
		byValue[r.Key] = r.Value
	}

	assert.Equal(t, "global", bySource[setting.KeyCaptchaLevel])
	assert.Equal(t, "off", byValue[setting.KeyCaptchaLevel])
	assert.Equal(t, "tenant", bySource[setting.KeyLeaderboardPageSize])
	assert.Equal(t, "50", byValue[setting.KeyLeaderboardPageSize])
	assert.Equal(t, "pool", bySource[setting.KeyPredictionLockOffset])
	assert.Equal(t, "600", byValue[setting.KeyPredictionLockOffset])
	assert.Equal(t, "default", bySource[setting.KeyDefaultLocale])
}

func TestUpsertSetting(t *testing.T) {
	ctx := context.Background()
	registry := setting.DefaultRegistry()
	repo := newFakeSettingRepo()
	uc := NewUpsertSettingUseCase(repo, registry, logger.NewLogger())

	t.Run("creates then updates", func(t *testing.T) {
		created, err := uc.Execute(ctx, UpsertSettingCommand{
			Scope:     setting.ScopeTenant,
			TenantSID: "tn_abc",
			Key:       setting.KeyCaptchaLevel,
			Value:     "force",
			UpdatedBy: 7,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, created.Version)

		updated, err := uc.Execute(ctx, UpsertSettingCommand{
			Scope:     setting.ScopeTenant,
			TenantSID: "tn_abc",
			Key:       setting.KeyCaptchaLevel,
			Value:     "off",
			UpdatedBy: 7,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Version)
		assert.Equal(t, "off", updated.Value)
	})

	t.Run("rejects scope shape violations", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpsertSettingCommand{
			Scope:     setting.ScopeGlobal,
			TenantSID: "tn_abc",
			Key:       setting.KeyCaptchaLevel,
			Value:     "off",
		})
		require.Error(t, err)
		assert.Equal(t, "Global settings cannot have tenantId", err.Error())

		_, err = uc.Execute(ctx, UpsertSettingCommand{
			Scope: setting.ScopeTenant,
			Key:   setting.KeyCaptchaLevel,
			Value: "off",
		})
		require.Error(t, err)
		assert.Equal(t, "Tenant settings must have tenantId", err.Error())

		_, err = uc.Execute(ctx, UpsertSettingCommand{
			Scope:     setting.ScopePool,
			TenantSID: "tn_abc",
			Key:       setting.KeyCaptchaLevel,
			Value:     "off",
		})
		require.Error(t, err)
		assert.Equal(t, "Pool settings must have both tenantId and poolId", err.Error())
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpsertSettingCommand{
			Scope: setting.ScopeGlobal,
			Key:   setting.KeyCaptchaLevel,
			Value: "sometimes",
		})
		assert.ErrorIs(t, err, setting.ErrInvalidValue)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpsertSettingCommand{
			Scope: setting.ScopeGlobal,
			Key:   "no_such_key",
			Value: "1",
		})
		assert.ErrorIs(t, err, setting.ErrUnknownSettingKey)
	})
}

func TestDeleteSetting_RestoresFallThrough(t *testing.T) {
	ctx := context.Background()
	registry := setting.DefaultRegistry()
	repo := newFakeSettingRepo()
	resolver := NewResolveSettingUseCase(repo, registry, logger.NewLogger())
	del := NewDeleteSettingUseCase(repo, registry, logger.NewLogger())

	seedOverride(t, repo, registry, setting.ScopeGlobal, setting.ScopeRef{}, setting.KeyCaptchaLevel, "off")
	seedOverride(t, repo, registry, setting.ScopeTenant, setting.ScopeRef{TenantSID: "tn_abc"}, setting.KeyCaptchaLevel, "force")

	query := ResolveSettingQuery{TenantSID: "tn_abc", Key: setting.KeyCaptchaLevel}
	got, err := resolver.Execute(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "force", got.Value)

	require.NoError(t, del.Execute(ctx, DeleteSettingCommand{
		Scope:     setting.ScopeTenant,
		TenantSID: "tn_abc",
		Key:       setting.KeyCaptchaLevel,
	}))

	got, err = resolver.Execute(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "off", got.Value)
	assert.Equal(t, "global", got.Source)

	// Deleting a missing override is a no-op.
	require.NoError(t, del.Execute(ctx, DeleteSettingCommand{
		Scope:     setting.ScopeTenant,
		TenantSID: "tn_abc",
		Key:       setting.KeyCaptchaLevel,
	}))
}

func TestValues_FailClosed(t *testing.T) {
	ctx := context.Background()
	registry := setting.DefaultRegistry()
	repo := newFakeSettingRepo()
	resolver := NewResolveSettingUseCase(repo, registry, logger.NewLogger())
	values := NewValues(resolver, registry, logger.NewLogger())

	assert.Equal(t, setting.CaptchaAuto, values.CaptchaLevel(ctx, "tn_abc", "pl_xyz"))
	assert.False(t, values.IPLoggingEnabled(ctx, "tn_abc", ""))

	rl := values.RegistrationRateLimit(ctx, "tn_abc", "")
	assert.Equal(t, 60, rl.WindowSec)
	assert.Equal(t, 10, rl.Max)

	assert.Equal(t, int64(0), int64(values.PredictionLockOffset(ctx, "tn_abc", "pl_xyz")))
	assert.Equal(t, 168, int(values.InvitationExpiry(ctx, "tn_abc").Hours()))
	assert.Equal(t, 25, values.LeaderboardPageSize(ctx, "tn_abc", ""))
}
