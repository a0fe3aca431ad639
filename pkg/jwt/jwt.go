// Package jwt firma y valida los tokens de operador del libro de ovos.
// El servidor solo valida; los tokens los emite `ovosctl token` con el mismo secreto y emisor.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken token mal formado, con firma o emisor incorrectos, o expirado.
var ErrInvalidToken = errors.New("token inválido")

// Identity operador autenticado. Role viaja en el token para que el RBAC no consulte la DB.
type Identity struct {
	UserID   string
	UserName string
	Role     string // "admin" | "operador"
}

type claims struct {
	jwt.RegisteredClaims
	UserName string `json:"user_name"`
	Role     string `json:"role"`
}

// Tokens emite y valida tokens HS256 para un emisor concreto.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// New construye el emisor/validador. ttl es la vigencia de los tokens emitidos.
func New(secret, issuer string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if issuer == "" {
		return nil, fmt.Errorf("jwt: issuer vacío")
	}
	return &Tokens{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// Issuer nombre del emisor que se exige al validar.
func (t *Tokens) Issuer() string { return t.issuer }

// Issue firma un token para id. El sujeto es el UserID.
func (t *Tokens) Issue(id Identity) (string, error) {
	if id.UserID == "" {
		return "", fmt.Errorf("jwt: user id vacío")
	}
	now := t.now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		UserName: id.UserName,
		Role:     id.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
}

// Verify valida firma, emisor y expiración y devuelve la identidad.
// Cualquier fallo se reporta como ErrInvalidToken envolviendo la causa.
func (t *Tokens) Verify(token string) (Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	var c claims
	if _, err := parser.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}); err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return Identity{}, fmt.Errorf("%w: sin sujeto", ErrInvalidToken)
	}
	return Identity{UserID: c.Subject, UserName: c.UserName, Role: c.Role}, nil
}
