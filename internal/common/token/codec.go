package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	commoncrypto "github.com/dmedvedev/secure-content/internal/common/crypto"
)

var (
	ErrMalformed = errors.New("token is malformed")
	ErrTampered  = errors.New("token signature is invalid")
	ErrExpired   = errors.New("token is expired")
)

// Claims is the verified content of a bearer token.
type Claims struct {
	Username string
	Role     string
}

type signedClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Codec issues and validates stateless HS256 bearer tokens. Validation is a
// pure function of the token and the supplied time; no store lookup happens,
// so validators scale horizontally without shared session state. There is no
// revocation path: a token stays valid until natural expiry.
type Codec struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	idGen  commoncrypto.IDGenerator
}

func NewCodec(secret string, ttl, leeway time.Duration, idGen commoncrypto.IDGenerator) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		leeway: leeway,
		idGen:  idGen,
	}
}

// Issue signs a token for subject and role. The signature covers subject,
// role and both timestamps; the jti nonce keeps two tokens issued at the same
// instant distinct.
func (c *Codec) Issue(subject, role string, now time.Time) (string, error) {
	jti, err := c.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("failed to generate jti: %w", err)
	}

	claims := signedClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Role: role,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate checks signature and expiry against now, with the configured
// clock-skew leeway. Failures are one of ErrMalformed, ErrTampered,
// ErrExpired.
func (c *Codec) Validate(raw string, now time.Time) (Claims, error) {
	var claims signedClaims

	parsed, err := jwt.ParseWithClaims(
		raw,
		&claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, ErrTampered
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(c.leeway),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if !parsed.Valid {
		return Claims{}, ErrTampered
	}

	if claims.Subject == "" {
		return Claims{}, ErrMalformed
	}

	return Claims{
		Username: claims.Subject,
		Role:     claims.Role,
	}, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTampered):
		return ErrTampered
	default:
		return ErrMalformed
	}
}
