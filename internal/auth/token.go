// Package auth issues and verifies the admin session token.
//
// There is a single operator identity configured through the environment.
// Tokens are HS256 JWTs carrying the identity as subject; nothing is stored
// server-side, so validity depends only on signature and expiry.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/portfolio-dev/portfolio-server/internal/errors"
	"github.com/portfolio-dev/portfolio-server/internal/util"
)

// DefaultTTL is how long an issued session token stays valid.
const DefaultTTL = 24 * time.Hour

// Claims are the registered JWT claims; Subject holds the admin identity.
type Claims struct {
	jwt.RegisteredClaims
}

// Identity returns the authenticated admin identity.
func (c *Claims) Identity() string {
	return c.Subject
}

type Option func(*options)

type options struct {
	now func() time.Time
	ttl time.Duration
}

// WithClock replaces time.Now, mainly for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Issuer checks the operator credential pair and signs session tokens.
type Issuer struct {
	identity   string
	secret     string
	signingKey []byte
	now        func() time.Time
	ttl        time.Duration
}

func NewIssuer(identity, secret, signingKey string, opts ...Option) *Issuer {
	o := buildOptions(opts)
	return &Issuer{
		identity:   identity,
		secret:     secret,
		signingKey: []byte(signingKey),
		now:        o.now,
		ttl:        o.ttl,
	}
}

// Issue returns a signed token when identity and secret both match the
// configured pair exactly.
func (i *Issuer) Issue(identity, secret string) (string, error) {
	switch {
	case i.identity == "":
		return "", apperrors.Configuration("ADMIN_USERNAME")
	case i.secret == "":
		return "", apperrors.Configuration("ADMIN_PASSWORD")
	case len(i.signingKey) == 0:
		return "", apperrors.Configuration("JWT_SECRET")
	}

	// Evaluate both comparisons so timing does not reveal which half failed.
	identityOK := util.ConstantTimeEqual(identity, i.identity)
	secretOK := util.ConstantTimeEqual(secret, i.secret)
	if !identityOK || !secretOK {
		return "", apperrors.InvalidCredentials()
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   i.identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	signed, err := token.SignedString(i.signingKey)
	if err != nil {
		return "", apperrors.Internal("Failed to sign session token").WithCause(err)
	}
	return signed, nil
}

// Guard verifies session tokens. Both the admin edge gate and the check
// endpoint go through Verify.
type Guard struct {
	signingKey []byte
	now        func() time.Time
}

func NewGuard(signingKey string, opts ...Option) *Guard {
	o := buildOptions(opts)
	return &Guard{signingKey: []byte(signingKey), now: o.now}
}

// Verify parses the token and checks signature, algorithm and expiry.
func (g *Guard) Verify(tokenString string) (*Claims, error) {
	if len(g.signingKey) == 0 {
		return nil, apperrors.Configuration("JWT_SECRET")
	}
	if tokenString == "" {
		return nil, apperrors.Unauthorized("Missing session token")
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return g.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.TokenExpired()
		}
		return nil, apperrors.InvalidToken("Invalid session token").WithCause(err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, apperrors.InvalidToken("Invalid session token")
	}

	return claims, nil
}

// IsAuthenticated never fails: every verification problem is reported as false.
func (g *Guard) IsAuthenticated(tokenString string) bool {
	_, err := g.Verify(tokenString)
	return err == nil
}
