package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JULEEP/securitybackend/internal/models"
)

// Claims полезная нагрузка токена: {id, email}.
type Claims struct {
	UserID int64
	Email  string
}

// TokenManager отвечает за выпуск и проверку JWT.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// Issue выпускает токен с клеймами {id, email} и сроком жизни ttl.
func (m *TokenManager) Issue(user *models.User, ttl time.Duration) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token manager: sign: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись и срок действия и возвращает клеймы.
func (m *TokenManager) Parse(token string) (*Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	// числа в MapClaims приходят как float64
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return nil, jwt.ErrTokenInvalidClaims
	}
	email, _ := claims["email"].(string)

	return &Claims{UserID: int64(id), Email: email}, nil
}
