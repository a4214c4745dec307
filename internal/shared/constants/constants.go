package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXTenant       = "X-Tenant"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserSID   = "user_sid"
	ContextKeyUserRole  = "user_role"
	ContextKeyTenantID  = "tenant_id"
	ContextKeyTenantSID = "tenant_sid"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableTenants        = "tenants"
	TablePools          = "pools"
	TableSettings       = "settings"
	TableAccessPolicies = "access_policies"
	TableCodeBatches    = "code_batches"
	TableInviteCodes    = "invite_codes"
	TableInvitations    = "invitations"
	TableRegistrations  = "registrations"
	TableMatches        = "matches"
	TablePredictions    = "predictions"
	TableAuditLog       = "audit_log"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
