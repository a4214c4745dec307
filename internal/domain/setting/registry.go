package setting

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Well-known setting keys.
const (
	KeyCaptchaLevel          = "captcha_level"
	KeyIPLoggingEnabled      = "ip_logging_enabled"
	KeyRegistrationRateLimit = "registration_rate_limit"
	KeyDefaultLocale         = "default_locale"
	KeyPredictionLockOffset  = "prediction_lock_offset_sec"
	KeyInvitationExpiryHours = "invitation_expiry_hours"
	KeyLeaderboardPageSize   = "leaderboard_page_size"
)

// CaptchaLevel controls whether registration requires a captcha token.
type CaptchaLevel string

const (
	CaptchaOff   CaptchaLevel = "off"
	CaptchaAuto  CaptchaLevel = "auto"
	CaptchaForce CaptchaLevel = "force"
)

// ParseCaptchaLevel coerces a raw value into a CaptchaLevel. Unrecognized
// values fail closed to "auto".
func ParseCaptchaLevel(raw string) CaptchaLevel {
	switch CaptchaLevel(raw) {
	case CaptchaOff, CaptchaAuto, CaptchaForce:
		return CaptchaLevel(raw)
	default:
		return CaptchaAuto
	}
}

// RateLimit is the structured shape of the registration_rate_limit key.
type RateLimit struct {
	WindowSec int `json:"window_sec"`
	Max       int `json:"max"`
}

// Definition declares one known setting key: its value shape, its
// compiled-in default, and a validator for writes.
type Definition struct {
	Key         string
	Type        ValueType
	Default     string
	Description string
	Validate    func(raw string) error
}

// ValidateValue checks a candidate value against the key's declared shape.
func (d Definition) ValidateValue(raw string) error {
	if d.Validate == nil {
		return nil
	}
	if err := d.Validate(raw); err != nil {
		return fmt.Errorf("%w: key %s: %v", ErrInvalidValue, d.Key, err)
	}
	return nil
}

// Registry holds the known setting keys with their defaults and validators.
// It is passed into the resolver explicitly so the cascade and the defaults
// are independently testable.
type Registry struct {
	defs map[string]Definition
	keys []string
}

// NewRegistry builds a registry from explicit definitions.
func NewRegistry(defs ...Definition) *Registry {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if _, dup := r.defs[d.Key]; dup {
			continue
		}
		r.defs[d.Key] = d
		r.keys = append(r.keys, d.Key)
	}
	return r
}

// Get returns the definition for a key.
func (r *Registry) Get(key string) (Definition, bool) {
	d, ok := r.defs[key]
	return d, ok
}

// Keys returns all registered keys in registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func enumValidator(allowed ...string) func(string) error {
	return func(raw string) error {
		for _, a := range allowed {
			if raw == a {
				return nil
			}
		}
		return fmt.Errorf("must be one of %v", allowed)
	}
}

func boolValidator(raw string) error {
	if _, err := strconv.ParseBool(raw); err != nil {
		return fmt.Errorf("must be a boolean")
	}
	return nil
}

func intRangeValidator(min, max int) func(string) error {
	return func(raw string) error {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("must be an integer")
		}
		if n < min || n > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	}
}

func rateLimitValidator(raw string) error {
	var rl RateLimit
	if err := json.Unmarshal([]byte(raw), &rl); err != nil {
		return fmt.Errorf("must be a JSON object with window_sec and max")
	}
	if rl.WindowSec <= 0 {
		return fmt.Errorf("window_sec must be positive")
	}
	if rl.Max <= 0 {
		return fmt.Errorf("max must be positive")
	}
	return nil
}

// DefaultRegistry returns the compiled-in registry for the platform.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Definition{
			Key:         KeyCaptchaLevel,
			Type:        ValueTypeString,
			Default:     string(CaptchaAuto),
			Description: "Captcha requirement for registration: off, auto or force",
			Validate:    enumValidator(string(CaptchaOff), string(CaptchaAuto), string(CaptchaForce)),
		},
		Definition{
			Key:         KeyIPLoggingEnabled,
			Type:        ValueTypeBool,
			Default:     "false",
			Description: "Record client IP addresses in the audit log",
			Validate:    boolValidator,
		},
		Definition{
			Key:         KeyRegistrationRateLimit,
			Type:        ValueTypeJSON,
			Default:     `{"window_sec":60,"max":10}`,
			Description: "Fixed-window rate limit applied to registration endpoints",
			Validate:    rateLimitValidator,
		},
		Definition{
			Key:         KeyDefaultLocale,
			Type:        ValueTypeString,
			Default:     "es-MX",
			Description: "Default presentation locale",
			Validate:    enumValidator("es-MX", "en-US"),
		},
		Definition{
			Key:         KeyPredictionLockOffset,
			Type:        ValueTypeInt,
			Default:     "0",
			Description: "Seconds before kickoff at which predictions lock",
			Validate:    intRangeValidator(0, 86400),
		},
		Definition{
			Key:         KeyInvitationExpiryHours,
			Type:        ValueTypeInt,
			Default:     "168",
			Description: "Hours before a pending invitation expires",
			Validate:    intRangeValidator(1, 8760),
		},
		Definition{
			Key:         KeyLeaderboardPageSize,
			Type:        ValueTypeInt,
			Default:     "25",
			Description: "Rows per leaderboard page",
			Validate:    intRangeValidator(1, 100),
		},
	)
}
