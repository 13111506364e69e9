package auth

import (
	stderrors "errors"
	"time"

	"fullstack/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims embeds the registered claims and the identity of the user the
// token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"id"`
	Username string `json:"username"`
}

func GenerateToken(userID, username string, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:   userID,
		Username: username,
	})
	return token.SignedString(secret)
}

// ParseToken verifies the signature and expiry of a bearer token and
// returns the embedded claims. Expired tokens are reported distinctly from
// otherwise invalid ones.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, errors.ErrTokenInvalid
	}
	return claims, nil
}
