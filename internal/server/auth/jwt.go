// Package auth issues and verifies the signed session tokens that gate every
// /api call. Tokens are HS256 JWTs with a fixed validity window; rotating
// the signing key invalidates all outstanding tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dkoval/tasktrack/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the bound identity along with the registered claim set.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Username string `json:"username"`
}

// Identity is the authenticated caller, threaded explicitly into every
// protected operation.
type Identity struct {
	UserID   string
	Username string
}

// GenerateToken mints a signed token for the given user. It has no failure
// mode beyond the signer itself erroring.
func GenerateToken(userID, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:   userID,
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry and returns the bound identity.
// Expired tokens are reported distinctly from malformed or forged ones.
func ParseToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrorTokenExpired
		}
		return nil, common.ErrorInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrorInvalidToken
	}

	return &Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
