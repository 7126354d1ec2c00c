// File: internal/service/authentication.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingSecret      = errors.New("jwt secret not set")
)

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// AdminClaims 定義管理員 JWT 負載內容
type AdminClaims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// AuthenticateAdmin 以 bcrypt 哈希驗證管理員密碼
func AuthenticateAdmin(hash, password string) error {
	if hash == "" || password == "" {
		return ErrInvalidCredentials
	}
	if err := ComparePassword(hash, password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueAdminToken 產生管理員 JWT，回傳令牌與到期時間
func IssueAdminToken(secret string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrMissingSecret
	}

	now := timeNow()
	exp := now.Add(ttl)
	claims := AdminClaims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// VerifyAdminToken 驗證並解析 JWT 令牌
func VerifyAdminToken(secret, tokenString string) (*AdminClaims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := parseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
