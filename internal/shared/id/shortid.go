package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for different entity types (Stripe-style)
const (
	PrefixTenant       = "tn"
	PrefixPool         = "pl"
	PrefixSetting      = "set"
	PrefixPolicy       = "ap"
	PrefixCodeBatch    = "cb"
	PrefixInvitation   = "inv"
	PrefixRegistration = "reg"
	PrefixUser         = "usr"
	PrefixMatch        = "mt"
)

// Generate creates a random short ID with the specified length using Base62 encoding.
// The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// FormatWithPrefix adds a prefix to an existing short ID.
func FormatWithPrefix(prefix, shortID string) string {
	if shortID == "" {
		return ""
	}
	return fmt.Sprintf("%s_%s", prefix, shortID)
}

// ParsePrefixedID extracts the prefix and short ID from a prefixed ID string.
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	parts := strings.SplitN(prefixedID, "_", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	return parts[0], parts[1], nil
}

// ValidatePrefix checks if the prefixed ID has the expected prefix.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, _, err := ParsePrefixedID(prefixedID)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	return nil
}

// NewTenantID generates a new Tenant SID.
func NewTenantID() (string, error) {
	return GenerateWithPrefix(PrefixTenant, DefaultLength)
}

// NewPoolID generates a new Pool SID.
func NewPoolID() (string, error) {
	return GenerateWithPrefix(PrefixPool, DefaultLength)
}

// NewSettingID generates a new Setting SID.
func NewSettingID() (string, error) {
	return GenerateWithPrefix(PrefixSetting, DefaultLength)
}

// NewPolicyID generates a new AccessPolicy SID.
func NewPolicyID() (string, error) {
	return GenerateWithPrefix(PrefixPolicy, DefaultLength)
}

// NewCodeBatchID generates a new CodeBatch SID.
func NewCodeBatchID() (string, error) {
	return GenerateWithPrefix(PrefixCodeBatch, DefaultLength)
}

// NewInvitationID generates a new Invitation SID.
func NewInvitationID() (string, error) {
	return GenerateWithPrefix(PrefixInvitation, DefaultLength)
}

// NewRegistrationID generates a new Registration SID.
func NewRegistrationID() (string, error) {
	return GenerateWithPrefix(PrefixRegistration, DefaultLength)
}

// NewMatchID generates a new Match SID.
func NewMatchID() (string, error) {
	return GenerateWithPrefix(PrefixMatch, DefaultLength)
}
