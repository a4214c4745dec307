package usecases

import (
	"context"
	"errors"
	"time"
)

// Transactor runs a function inside one database transaction. The shared
// db.TransactionManager satisfies it; tests substitute a pass-through.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CaptchaVerifier checks a captcha token submitted with a registration.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// InvitationMailer delivers invitation emails. Sending is best effort at
// the usecase level; a delivery failure is reported but the invitation row
// stays valid and can be resent.
type InvitationMailer interface {
	SendInvitation(ctx context.Context, email, token, poolName string, expiresAt time.Time) error
}

// Admission failures that carry no stable reason code: they are pool
// lifecycle conditions, not credential problems.
var (
	ErrPoolClosed            = errors.New("pool is not open for registration")
	ErrRegistrationWindow    = errors.New("registration window is closed")
	ErrPoolFull              = errors.New("registration limit reached")
	ErrEmailDomainNotAllowed = errors.New("email domain is not allowed for this pool")
	ErrAccessTypeMismatch    = errors.New("registration mode does not match the pool's access policy")
	ErrCaptchaRequired       = errors.New("captcha verification required")
	ErrCaptchaFailed         = errors.New("captcha verification failed")
)
