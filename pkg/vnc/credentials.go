package vnc

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	srvErrors "github.com/testcloud/grid-proxy/pkg/errors"
)

const (
	audience   = "vnc"
	issuer     = "grid-proxy"
	DefaultTTL = 5 * time.Minute
)

// Claims scope a token to a single session on a single node.
type Claims struct {
	NodeURI string `json:"node,omitempty"`
	jwt.RegisteredClaims
}

// Credential is what a client presents to open the VNC stream of one session.
type Credential struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// Issuer signs and verifies per-session VNC tokens.
type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

type Option func(i *Issuer)

// WithClock replaces time.Now for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer creates an issuer. An empty key is replaced by a random one, which
// means tokens do not survive a restart.
func NewIssuer(key string, ttl time.Duration, opts ...Option) (*Issuer, error) {
	k := []byte(key)
	if len(k) == 0 {
		k = make([]byte, 32)
		if _, err := rand.Read(k); err != nil {
			return nil, fmt.Errorf("failed to generate vnc signing key: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	i := &Issuer{key: k, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

func (i *Issuer) Issue(sessionID, nodeURI string) (Credential, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		NodeURI: nodeURI,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   sessionID,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to sign vnc token: %w", err)
	}

	return Credential{Token: token, SessionID: sessionID, ExpiresAt: expiresAt}, nil
}

// Verify checks the token signature, expiry and that it was issued for sessionID.
func (i *Issuer) Verify(token, sessionID string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithIssuer(issuer),
		jwt.WithSubject(sessionID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, srvErrors.NewInvalidTokenError(err)
	}
	return claims, nil
}
