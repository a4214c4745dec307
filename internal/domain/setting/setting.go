package setting

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/id"
)

// ValueType defines the type of a setting value
type ValueType string

const (
	ValueTypeString ValueType = "string"
	ValueTypeInt    ValueType = "int"
	ValueTypeBool   ValueType = "bool"
	ValueTypeJSON   ValueType = "json"
)

// Setting represents one override row of the GLOBAL→TENANT→POOL cascade.
// Values are stored as strings and parsed based on valueType.
type Setting struct {
	id        uint
	sid       string // Stripe-style ID: set_xxx
	scope     Scope
	tenantSID string // empty for GLOBAL
	poolSID   string // empty for GLOBAL and TENANT
	key       string
	value     string
	valueType ValueType
	updatedBy uint // user ID who last wrote this override
	version   int  // optimistic locking version
	createdAt time.Time
	updatedAt time.Time
}

// NewSetting creates a new override. The scope-shape invariant and the key's
// declared value shape are both enforced here; rows are never created
// implicitly.
func NewSetting(scope Scope, ref ScopeRef, def Definition, value string, updatedBy uint) (*Setting, error) {
	if err := scope.ValidateRef(ref); err != nil {
		return nil, err
	}
	if err := def.ValidateValue(value); err != nil {
		return nil, err
	}

	sid, err := id.NewSettingID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Setting{
		sid:       sid,
		scope:     scope,
		tenantSID: ref.TenantSID,
		poolSID:   ref.PoolSID,
		key:       def.Key,
		value:     value,
		valueType: def.Type,
		updatedBy: updatedBy,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructSetting reconstructs a Setting from the persistence layer
func ReconstructSetting(
	id uint,
	sid string,
	scope Scope,
	tenantSID, poolSID string,
	key, value string,
	valueType ValueType,
	updatedBy uint,
	version int,
	createdAt, updatedAt time.Time,
) *Setting {
	return &Setting{
		id:        id,
		sid:       sid,
		scope:     scope,
		tenantSID: tenantSID,
		poolSID:   poolSID,
		key:       key,
		value:     value,
		valueType: valueType,
		updatedBy: updatedBy,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters
func (s *Setting) ID() uint             { return s.id }
func (s *Setting) SID() string          { return s.sid }
func (s *Setting) Scope() Scope         { return s.scope }
func (s *Setting) TenantSID() string    { return s.tenantSID }
func (s *Setting) PoolSID() string      { return s.poolSID }
func (s *Setting) Key() string          { return s.key }
func (s *Setting) Value() string        { return s.value }
func (s *Setting) ValueType() ValueType { return s.valueType }
func (s *Setting) UpdatedBy() uint      { return s.updatedBy }
func (s *Setting) Version() int         { return s.version }
func (s *Setting) CreatedAt() time.Time { return s.createdAt }
func (s *Setting) UpdatedAt() time.Time { return s.updatedAt }

// SetID sets the setting ID (only for persistence layer use)
func (s *Setting) SetID(id uint) {
	s.id = id
}

// UpdateValue replaces the value after re-validating it against the key's
// declared shape.
func (s *Setting) UpdateValue(def Definition, value string, updatedBy uint) error {
	if def.Key != s.key {
		return fmt.Errorf("definition key mismatch: %s vs %s", def.Key, s.key)
	}
	if err := def.ValidateValue(value); err != nil {
		return err
	}
	s.value = value
	s.updatedBy = updatedBy
	s.version++
	s.updatedAt = biztime.NowUTC()
	return nil
}

// Source maps the row's scope to the provenance tag it produces when it wins
// the cascade.
func (s *Setting) Source() Source {
	switch s.scope {
	case ScopePool:
		return SourcePool
	case ScopeTenant:
		return SourceTenant
	default:
		return SourceGlobal
	}
}

// GetStringValue returns the value as a string
func (s *Setting) GetStringValue() string {
	return s.value
}

// GetIntValue returns the value as an integer
func (s *Setting) GetIntValue() (int, error) {
	if s.value == "" {
		return 0, nil
	}
	return strconv.Atoi(s.value)
}

// GetBoolValue returns the value as a boolean
func (s *Setting) GetBoolValue() (bool, error) {
	if s.value == "" {
		return false, nil
	}
	return strconv.ParseBool(s.value)
}

// GetJSONValue unmarshals the value into the provided target
func (s *Setting) GetJSONValue(target interface{}) error {
	if s.value == "" {
		return nil
	}
	return json.Unmarshal([]byte(s.value), target)
}
