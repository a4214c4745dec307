package dto

import (
	"time"

	"github.com/quiniela-inc/quiniela/internal/domain/setting"
)

// ResolvedSetting is one key resolved through the override cascade, tagged
// with the scope the winning value came from.
type ResolvedSetting struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Type   string `json:"type"`
	Source string `json:"source"`
}

// SettingDTO is the admin-facing representation of one stored override.
type SettingDTO struct {
	SID       string `json:"id"`
	Scope     string `json:"scope"`
	TenantSID string `json:"tenantId,omitempty"`
	PoolSID   string `json:"poolId,omitempty"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
	Version   int    `json:"version"`
	UpdatedAt string `json:"updatedAt"`
}

// FromSetting converts a stored override entity.
func FromSetting(s *setting.Setting) *SettingDTO {
	return &SettingDTO{
		SID:       s.SID(),
		Scope:     string(s.Scope()),
		TenantSID: s.TenantSID(),
		PoolSID:   s.PoolSID(),
		Key:       s.Key(),
		Value:     s.Value(),
		Type:      string(s.ValueType()),
		Version:   s.Version(),
		UpdatedAt: s.UpdatedAt().UTC().Format(time.RFC3339),
	}
}
