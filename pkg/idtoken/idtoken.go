// Package idtoken verifies the signed identity tokens the external
// identity provider presents on sign-in. The provider owns issuance;
// this side only checks the signature and extracts the profile.
package idtoken

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid identity token")

// Claims is the profile the identity provider asserts about a signer.
type Claims struct {
	OpenID      string  `json:"open_id"`
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	LoginMethod *string `json:"login_method,omitempty"`
	jwt.RegisteredClaims
}

// Verify parses and validates an HMAC-signed identity token.
func Verify(token, secret string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.OpenID == "" {
		// Fall back to the registered subject for providers that put
		// the stable identity there.
		if claims.Subject == "" {
			return nil, fmt.Errorf("%w: missing open_id", ErrInvalidToken)
		}
		claims.OpenID = claims.Subject
	}
	return claims, nil
}
