package usecases

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

// Values is the typed read facade over the resolver. Every getter fails
// closed: a resolution or parse error logs a warning and returns the
// registry default, so callers never branch on a resolver failure.
type Values struct {
	resolver *ResolveSettingUseCase
	registry *setting.Registry
	logger   logger.Interface
}

func NewValues(resolver *ResolveSettingUseCase, registry *setting.Registry, logger logger.Interface) *Values {
	return &Values{
		resolver: resolver,
		registry: registry,
		logger:   logger,
	}
}

func (v *Values) raw(ctx context.Context, tenantSID, poolSID, key string) string {
	def, _ := v.registry.Get(key)
	resolved, err := v.resolver.Execute(ctx, ResolveSettingQuery{TenantSID: tenantSID, PoolSID: poolSID, Key: key})
	if err != nil {
		v.logger.Warnw("setting resolution failed, using default",
			"error", err,
			"key", key,
			"tenant_sid", tenantSID,
			"pool_sid", poolSID,
		)
		return def.Default
	}
	return resolved.Value
}

// CaptchaLevel returns the effective captcha requirement for a pool.
func (v *Values) CaptchaLevel(ctx context.Context, tenantSID, poolSID string) setting.CaptchaLevel {
	return setting.ParseCaptchaLevel(v.raw(ctx, tenantSID, poolSID, setting.KeyCaptchaLevel))
}

// IPLoggingEnabled reports whether client IPs go into the audit log.
func (v *Values) IPLoggingEnabled(ctx context.Context, tenantSID, poolSID string) bool {
	raw := v.raw(ctx, tenantSID, poolSID, setting.KeyIPLoggingEnabled)
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		v.logger.Warnw("invalid ip_logging_enabled value, using false", "value", raw)
		return false
	}
	return enabled
}

// RegistrationRateLimit returns the effective registration rate limit.
func (v *Values) RegistrationRateLimit(ctx context.Context, tenantSID, poolSID string) setting.RateLimit {
	raw := v.raw(ctx, tenantSID, poolSID, setting.KeyRegistrationRateLimit)
	var rl setting.RateLimit
	if err := json.Unmarshal([]byte(raw), &rl); err != nil || rl.WindowSec <= 0 || rl.Max <= 0 {
		def, _ := v.registry.Get(setting.KeyRegistrationRateLimit)
		_ = json.Unmarshal([]byte(def.Default), &rl)
	}
	return rl
}

// PredictionLockOffset returns how long before kickoff predictions lock.
func (v *Values) PredictionLockOffset(ctx context.Context, tenantSID, poolSID string) time.Duration {
	raw := v.raw(ctx, tenantSID, poolSID, setting.KeyPredictionLockOffset)
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// InvitationExpiry returns how long new invitations stay pending.
func (v *Values) InvitationExpiry(ctx context.Context, tenantSID string) time.Duration {
	raw := v.raw(ctx, tenantSID, "", setting.KeyInvitationExpiryHours)
	hours, err := strconv.Atoi(raw)
	if err != nil || hours < 1 {
		hours = 168
	}
	return time.Duration(hours) * time.Hour
}

// DefaultLocale returns the presentation locale.
func (v *Values) DefaultLocale(ctx context.Context, tenantSID, poolSID string) string {
	return v.raw(ctx, tenantSID, poolSID, setting.KeyDefaultLocale)
}

// LeaderboardPageSize returns the rows per leaderboard page.
func (v *Values) LeaderboardPageSize(ctx context.Context, tenantSID, poolSID string) int {
	raw := v.raw(ctx, tenantSID, poolSID, setting.KeyLeaderboardPageSize)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 25
	}
	return n
}
