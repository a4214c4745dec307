package access

import "errors"

var (
	// ErrPolicyNotFound is returned when a pool has no access policy row
	ErrPolicyNotFound = errors.New("access policy not found")

	// ErrCodeNotFound is returned when no invite code matches
	ErrCodeNotFound = errors.New("invite code not found")

	// ErrBatchNotFound is returned when no code batch matches
	ErrBatchNotFound = errors.New("code batch not found")

	// ErrInvitationNotFound is returned when no invitation matches
	ErrInvitationNotFound = errors.New("invitation not found")

	// ErrRegistrationNotFound is returned when no registration row exists
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrRegistrationExists signals a duplicate (userID, poolID) attempt
	ErrRegistrationExists = errors.New("registration already exists")

	// ErrCodeExhausted is returned by the conditional consume when no uses
	// remain. The uniqueness of this path matters: zero rows affected on the
	// guarded increment maps here, never to a silent success.
	ErrCodeExhausted = errors.New("invite code exhausted")

	// ErrInvitationNotPending is returned by the conditional accept when the
	// invitation already left PENDING.
	ErrInvitationNotPending = errors.New("invitation is not pending")
)
