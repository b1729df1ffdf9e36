// Package utils holds the admin token and password helpers.
package utils

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role the service issues.
const RoleAdmin = "ADMIN"

// AccessToken is a signed JWT and its expiry.
type AccessToken struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}

// NewAdminToken signs an HS256 token for subject carrying the ADMIN role.
func NewAdminToken(secret, subject string, ttl time.Duration) (AccessToken, error) {
    if secret == "" {
        return AccessToken{}, errors.New("jwt secret is empty")
    }
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := jwt.MapClaims{
        "sub":  subject,
        "role": RoleAdmin,
        "exp":  exp.Unix(),
        "iat":  now.Unix(),
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Expires: exp}, nil
}

// ParseToken verifies raw and returns its subject and role.
func ParseToken(secret, raw string) (subject, role string, err error) {
    claims := jwt.MapClaims{}
    _, err = jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
    if err != nil {
        return "", "", err
    }
    subject, _ = claims.GetSubject()
    role, _ = claims["role"].(string)
    return subject, role, nil
}
