package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/models"
)

// Claims is the payload of a session token. There is no expiry: a session lasts until the
// client logs out and discards the token.
type Claims struct {
	jwt.RegisteredClaims
	Role    string `json:"role"`
	Captain string `json:"captain,omitempty"`
	Store   string `json:"store,omitempty"`
}

// Issuer signs and verifies session tokens with an HMAC secret.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), now: time.Now}
}

// Issue encodes s as a signed token.
func (i *Issuer) Issue(s Session) (string, error) {
	if !s.Authenticated() {
		return "", errs.ErrInvalidRole
	}

	subject := string(s.Role)
	if s.IsCaptain() {
		subject = s.Captain
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(i.now()),
		},
		Role:    string(s.Role),
		Captain: s.Captain,
		Store:   s.Store,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}

	return signed, nil
}

// Parse verifies token and returns the session it carries.
func (i *Issuer) Parse(token string) (Session, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", errs.ErrInvalidToken, err)
	}

	sess := Session{Role: models.Role(claims.Role), Captain: claims.Captain, Store: claims.Store}
	switch {
	case !sess.Role.Valid():
		return Session{}, errs.ErrInvalidToken
	case sess.Role == models.RoleCaptain && sess.Captain == "":
		return Session{}, errs.ErrInvalidToken
	case sess.Role != models.RoleCaptain && (sess.Captain != "" || sess.Store != ""):
		return Session{}, errs.ErrInvalidToken
	}

	return sess, nil
}
