package share

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	maxInputs      = 32
	maxValueLength = 64
)

var (
	ErrEmptySecret  = errors.New("share secret is empty")
	ErrInvalidToken = errors.New("invalid share token")
	ErrExpiredToken = errors.New("share token expired")
	ErrTooLarge     = errors.New("too many or too long share inputs")
)

// Payload is what a share link carries: the calculator and its raw form inputs.
type Payload struct {
	Calculator string            `json:"calculator"`
	Inputs     map[string]string `json:"inputs"`
	IssuedAt   time.Time         `json:"issuedAt"`
}

type claims struct {
	Calculator string            `json:"calc"`
	Inputs     map[string]string `json:"in"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 share tokens. A zero ttl means links never expire.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Signer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *Signer) Issue(calculator string, inputs map[string]string) (string, error) {
	if calculator == "" {
		return "", fmt.Errorf("%w: missing calculator", ErrInvalidToken)
	}
	if len(inputs) > maxInputs {
		return "", ErrTooLarge
	}
	for _, v := range inputs {
		if len(v) > maxValueLength {
			return "", ErrTooLarge
		}
	}

	now := s.now()
	c := claims{
		Calculator: calculator,
		Inputs:     inputs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign share token: %w", err)
	}
	return signed, nil
}

func (s *Signer) Parse(token string) (Payload, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Payload{}, ErrExpiredToken
		}
		return Payload{}, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	if c.Calculator == "" {
		return Payload{}, fmt.Errorf("%w: missing calculator", ErrInvalidToken)
	}

	p := Payload{
		Calculator: c.Calculator,
		Inputs:     c.Inputs,
	}
	if p.Inputs == nil {
		p.Inputs = map[string]string{}
	}
	if c.IssuedAt != nil {
		p.IssuedAt = c.IssuedAt.Time
	}
	return p, nil
}
