package setting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_ContainsKnownKeys(t *testing.T) {
	reg := DefaultRegistry()

	for _, key := range []string{
		KeyCaptchaLevel,
		KeyIPLoggingEnabled,
		KeyRegistrationRateLimit,
		KeyDefaultLocale,
		KeyPredictionLockOffset,
		KeyInvitationExpiryHours,
		KeyLeaderboardPageSize,
	} {
		_, ok := reg.Get(key)
		assert.True(t, ok, "registry should contain %s", key)
	}

	_, ok := reg.Get("nonexistent")
	assert.False(t, ok)
}

func TestDefaultRegistry_DefaultsAreValid(t *testing.T) {
	reg := DefaultRegistry()
	for _, key := range reg.Keys() {
		def, ok := reg.Get(key)
		require.True(t, ok)
		assert.NoError(t, def.ValidateValue(def.Default), "default for %s must pass its own validator", key)
	}
}

func TestCaptchaLevelValidator(t *testing.T) {
	def, ok := DefaultRegistry().Get(KeyCaptchaLevel)
	require.True(t, ok)

	assert.NoError(t, def.ValidateValue("off"))
	assert.NoError(t, def.ValidateValue("auto"))
	assert.NoError(t, def.ValidateValue("force"))
	assert.ErrorIs(t, def.ValidateValue("always"), ErrInvalidValue)
	assert.ErrorIs(t, def.ValidateValue(""), ErrInvalidValue)
}

func TestRateLimitValidator(t *testing.T) {
	def, ok := DefaultRegistry().Get(KeyRegistrationRateLimit)
	require.True(t, ok)

	assert.NoError(t, def.ValidateValue(`{"window_sec":30,"max":5}`))
	assert.ErrorIs(t, def.ValidateValue(`{"window_sec":0,"max":5}`), ErrInvalidValue)
	assert.ErrorIs(t, def.ValidateValue(`{"window_sec":30,"max":-1}`), ErrInvalidValue)
	assert.ErrorIs(t, def.ValidateValue(`not json`), ErrInvalidValue)
}

func TestIntRangeValidator(t *testing.T) {
	def, ok := DefaultRegistry().Get(KeyLeaderboardPageSize)
	require.True(t, ok)

	assert.NoError(t, def.ValidateValue("1"))
	assert.NoError(t, def.ValidateValue("100"))
	assert.ErrorIs(t, def.ValidateValue("0"), ErrInvalidValue)
	assert.ErrorIs(t, def.ValidateValue("101"), ErrInvalidValue)
	assert.ErrorIs(t, def.ValidateValue("abc"), ErrInvalidValue)
}

func TestParseCaptchaLevel_FailsClosed(t *testing.T) {
	assert.Equal(t, CaptchaOff, ParseCaptchaLevel("off"))
	assert.Equal(t, CaptchaForce, ParseCaptchaLevel("force"))
	// Unrecognized levels coerce to auto.
	assert.Equal(t, CaptchaAuto, ParseCaptchaLevel("banana"))
	assert.Equal(t, CaptchaAuto, ParseCaptchaLevel(""))
}

func TestNewRegistry_IgnoresDuplicateKeys(t *testing.T) {
	reg := NewRegistry(
		Definition{Key: "a", Type: ValueTypeString, Default: "one"},
		Definition{Key: "a", Type: ValueTypeString, Default: "two"},
	)
	def, ok := reg.Get("a")
	require.True(t, ok)
	assert.Equal(t, "one", def.Default)
	assert.Len(t, reg.Keys(), 1)
}
