package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ignatzorin/chainlance-backend/internal/domain/valueobject"
)

// SessionTokenManager выпускает и проверяет сессионные токены.
// Токен привязывает адрес кошелька и выбранную роль к HTTP-запросам —
// аккаунтов, паролей и refresh-токенов здесь нет, смена роли просто
// перевыпускает токен.
type SessionTokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionTokenManager создаёт менеджер токенов.
func NewSessionTokenManager(secret string, ttl time.Duration) *SessionTokenManager {
	return &SessionTokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue выпускает токен сессии для адреса и роли.
func (m *SessionTokenManager) Issue(address string, role valueobject.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  address,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse извлекает адрес и роль из токена сессии.
func (m *SessionTokenManager) Parse(token string) (string, valueobject.Role, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return "", "", err
	}
	if !parsed.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	address, ok := claims["sub"].(string)
	if !ok || address == "" {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	rawRole, _ := claims["role"].(string)
	role, err := valueobject.NewRole(rawRole)
	if err != nil {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	return address, role, nil
}
