// Package accounts contains the account directory types used during onboarding,
// plus a file-backed directory implementation.
package accounts

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies how an account authenticates.
type Kind string

const (
	KindChatGPT Kind = "chatgpt"
	KindAPIKey  Kind = "apikey"
)

var (
	// ErrAccountNotFound is returned when an id does not match a registered account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAccount is returned when account metadata fails validation.
	ErrInvalidAccount = errors.New("invalid account")
)

// ParseKind accepts the canonical kind names plus a few spellings users type.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chatgpt", "chat-gpt", "chatgpt-account":
		return KindChatGPT, nil
	case "apikey", "api-key", "api_key", "key":
		return KindAPIKey, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q (expected chatgpt|apikey)", ErrInvalidAccount, s)
	}
}

// String returns a short human label.
func (k Kind) String() string {
	switch k {
	case KindChatGPT:
		return "ChatGPT"
	case KindAPIKey:
		return "API key"
	default:
		return string(k)
	}
}

// Summary is a read-only snapshot of a registered account.
//
// Email is only meaningful for KindChatGPT and MaskedAPIKey only for KindAPIKey;
// an empty string means the detail is unknown.
type Summary struct {
	ID           string
	Label        string
	Kind         Kind
	Email        string
	MaskedAPIKey string
	IsActive     bool
}

// Directory lists known accounts and switches the active one.
type Directory interface {
	ListAccounts() ([]Summary, error)
	ActivateAccount(id string) error
}

// MaskAPIKey reduces a secret to a preview that is safe to display and persist.
// Short keys are fully masked.
func MaskAPIKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	prefix := key[:3]
	suffix := key[len(key)-4:]
	return prefix + "..." + suffix
}
