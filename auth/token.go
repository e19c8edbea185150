package auth

import (
	"errors"
	"time"

	"github.com/biosecret/go-tasks/config"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure uniformly: bad
// signature, wrong algorithm, malformed payload, missing claims or an expiry
// in the past. Callers map it to an authentication failure.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the token payload. Expiry travels as a registered exp claim in
// seconds since epoch.
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Codec issues and verifies the stateless bearer tokens. There is no
// server-side store of issued tokens, so a token stays valid until it
// expires; signout only tells the client to discard it.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

func NewCodec(cfg *config.Config) *Codec {
	return &Codec{
		secret: []byte(cfg.JWTSecret),
		method: jwt.GetSigningMethod(cfg.JWTAlgorithm),
		ttl:    cfg.TokenTTL,
	}
}

// Issue signs a token identifying the user, expiring after the configured
// TTL.
func (c *Codec) Issue(userID int, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
// The signing method is pinned to the configured one, and both user_id and
// email must be present.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID <= 0 || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
