package models

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrijs2005/lockbox/internal/common"
)

// TokenType classifies a stored credential.
type TokenType string

const (
	TokenTypeAPIKey              TokenType = "API_KEY"
	TokenTypeOAuth               TokenType = "OAUTH"
	TokenTypeJWT                 TokenType = "JWT"
	TokenTypePersonalAccessToken TokenType = "PERSONAL_ACCESS_TOKEN"
	TokenTypeOther               TokenType = "OTHER"
)

// TokenTypes lists the accepted token types in display order.
func TokenTypes() []TokenType {
	return []TokenType{
		TokenTypeAPIKey,
		TokenTypeOAuth,
		TokenTypeJWT,
		TokenTypePersonalAccessToken,
		TokenTypeOther,
	}
}

func (t TokenType) Valid() bool {
	for _, v := range TokenTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// Status is the expiry state of a token relative to a given day.
type Status string

const (
	StatusActive   Status = "active"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
)

// ExpiringWindowDays is how close to its expiry date a token is shown as expiring.
const ExpiringWindowDays = 7

// Token is a stored credential.
type Token struct {
	// ID is assigned by the store and rendered as a decimal string.
	ID string

	ServiceName string
	TokenName   string

	// EncryptedValue is the codec blob. Listings leave it empty.
	EncryptedValue string

	Description string
	TokenType   TokenType

	// ExpiryDate is nil for tokens that never expire.
	ExpiryDate *Date
}

// Status reports whether the token is active, expiring within
// ExpiringWindowDays, or expired as of today.
func (t Token) Status(today Date) Status {
	if t.ExpiryDate == nil {
		return StatusActive
	}
	days := today.DaysUntil(*t.ExpiryDate)
	switch {
	case days <= 0:
		return StatusExpired
	case days <= ExpiringWindowDays:
		return StatusExpiring
	default:
		return StatusActive
	}
}

const redacted = "[REDACTED]"

// PlainToken is a token together with its decrypted value. It is only
// produced by the decrypting read path and must never be logged: both its
// fmt and slog renderings redact the value.
type PlainToken struct {
	Token
	Value string
}

func (p PlainToken) String() string {
	return fmt.Sprintf("PlainToken{ID:%s Service:%s Name:%s Value:%s}", p.ID, p.ServiceName, p.TokenName, redacted)
}

func (p PlainToken) GoString() string { return p.String() }

func (p PlainToken) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", p.ID),
		slog.String("service", p.ServiceName),
		slog.String("name", p.TokenName),
		slog.String("value", redacted),
	)
}

// NewToken is the input of an add operation.
type NewToken struct {
	ServiceName string
	TokenName   string
	TokenValue  string
	Description string
	TokenType   TokenType
	ExpiryDate  *Date
}

// Validate checks required fields and the token type.
func (n NewToken) Validate() error {
	switch {
	case strings.TrimSpace(n.ServiceName) == "":
		return fmt.Errorf("%w: service name is required", common.ErrValidation)
	case strings.TrimSpace(n.TokenName) == "":
		return fmt.Errorf("%w: token name is required", common.ErrValidation)
	case n.TokenValue == "":
		return fmt.Errorf("%w: token value is required", common.ErrValidation)
	case n.TokenType == "":
		return fmt.Errorf("%w: token type is required", common.ErrValidation)
	case !n.TokenType.Valid():
		return fmt.Errorf("%w: unknown token type %q", common.ErrValidation, n.TokenType)
	}
	return nil
}

// TokenPatch is a partial update. Nil fields are left untouched; non-nil
// fields overwrite. ClearExpiryDate removes the expiry date and takes
// precedence over ExpiryDate. An empty Description clears it.
type TokenPatch struct {
	ServiceName     *string
	TokenName       *string
	TokenValue      *string
	Description     *string
	TokenType       *TokenType
	ExpiryDate      *Date
	ClearExpiryDate bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TokenPatch) IsEmpty() bool {
	return p.ServiceName == nil && p.TokenName == nil && p.TokenValue == nil &&
		p.Description == nil && p.TokenType == nil && p.ExpiryDate == nil && !p.ClearExpiryDate
}

// Validate applies the NewToken rules to the supplied fields only.
func (p TokenPatch) Validate() error {
	if p.ServiceName != nil && strings.TrimSpace(*p.ServiceName) == "" {
		return fmt.Errorf("%w: service name must not be empty", common.ErrValidation)
	}
	if p.TokenName != nil && strings.TrimSpace(*p.TokenName) == "" {
		return fmt.Errorf("%w: token name must not be empty", common.ErrValidation)
	}
	if p.TokenValue != nil && *p.TokenValue == "" {
		return fmt.Errorf("%w: token value must not be empty", common.ErrValidation)
	}
	if p.TokenType != nil && !p.TokenType.Valid() {
		return fmt.Errorf("%w: unknown token type %q", common.ErrValidation, *p.TokenType)
	}
	return nil
}

// Apply merges the patch into t, leaving the encrypted value alone; the
// caller re-encrypts TokenValue. It reports whether the expiry date changed.
func (p TokenPatch) Apply(t Token) (Token, bool) {
	if p.ServiceName != nil {
		t.ServiceName = *p.ServiceName
	}
	if p.TokenName != nil {
		t.TokenName = *p.TokenName
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.TokenType != nil {
		t.TokenType = *p.TokenType
	}

	before := t.ExpiryDate
	switch {
	case p.ClearExpiryDate:
		t.ExpiryDate = nil
	case p.ExpiryDate != nil:
		d := *p.ExpiryDate
		t.ExpiryDate = &d
	}
	return t, !sameDate(before, t.ExpiryDate)
}

func sameDate(a, b *Date) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
