package kernel

import (
	"encoding/hex"
	"fmt"
	"regexp"

	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
)

var accessTokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// AccessToken is the opaque, unguessable string printed in a table's QR code.
// It stands in for the table id in customer-facing URLs so tables cannot be enumerated.
type AccessToken struct {
	value string
}

// NewAccessToken returns 32 hex characters drawn from a random (version 4) UUID.
func NewAccessToken() AccessToken {
	id := uuid.New()
	return AccessToken{value: hex.EncodeToString(id[:])}
}

// AccessTokenFromString validates a token received from a URL or from storage.
func AccessTokenFromString(s string) (AccessToken, error) {
	if s == "" {
		return AccessToken{}, errs.NewValueIsRequiredError("table token")
	}
	if !accessTokenPattern.MatchString(s) {
		return AccessToken{}, errs.NewValueIsInvalidErrorWithCause(
			"table token",
			fmt.Errorf("token must be 8-64 characters of [A-Za-z0-9_-]"),
		)
	}
	return AccessToken{value: s}, nil
}

func (t AccessToken) String() string {
	return t.value
}

func (t AccessToken) IsEqual(other AccessToken) bool {
	return t.value == other.value
}

func (t AccessToken) Validate() error {
	if t.value == "" {
		return errs.NewValueIsRequiredError("table token")
	}
	return nil
}
