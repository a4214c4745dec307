package access

import "fmt"

// ReasonCode is a stable machine-readable admission failure code. The set of
// codes forms the external contract; front-ends branch and localize on them.
type ReasonCode string

const (
	ReasonRegistrationRequired  ReasonCode = "REGISTRATION_REQUIRED"
	ReasonTenantMismatch        ReasonCode = "TENANT_MISMATCH"
	ReasonCodeRequired          ReasonCode = "CODE_REQUIRED"
	ReasonCodeInvalid           ReasonCode = "CODE_INVALID"
	ReasonCodeExhausted         ReasonCode = "CODE_EXHAUSTED"
	ReasonCodeExpired           ReasonCode = "CODE_EXPIRED"
	ReasonInvitationRequired    ReasonCode = "INVITATION_REQUIRED"
	ReasonInvitationNotAccepted ReasonCode = "INVITATION_NOT_ACCEPTED"
	ReasonInvitationExpired     ReasonCode = "INVITATION_EXPIRED"
	ReasonUnknownAccessType     ReasonCode = "UNKNOWN_ACCESS_TYPE"
)

// DeniedError is an expected, user-presentable admission failure. It is not
// a server fault: callers translate it into a "you are not allowed" response
// keyed on Reason.
type DeniedError struct {
	Reason  ReasonCode
	Message string
}

func (e *DeniedError) Error() string {
	if e.Message == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// Denied builds a DeniedError.
func Denied(reason ReasonCode, message string) *DeniedError {
	return &DeniedError{Reason: reason, Message: message}
}

// ConfigError indicates a misconfigured tenant/pool (missing policy, unknown
// access type). It is a server-side fault, logged loudly and never retried,
// as opposed to an end-user admission failure.
type ConfigError struct {
	Reason  ReasonCode // empty when no stable code applies
	Message string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// Misconfigured builds a ConfigError without a stable code.
func Misconfigured(message string) *ConfigError {
	return &ConfigError{Message: message}
}
