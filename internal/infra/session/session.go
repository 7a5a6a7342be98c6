package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// CookieName имя cookie с сессией отчета
const CookieName = "report_session"

const (
	issuer  = "slot-booking-service"
	subject = "report"
)

var (
	// ErrWrongPin PIN не совпал с хешем
	ErrWrongPin = errors.New("session: wrong pin")

	// ErrInvalidToken токен сессии не прошел проверку (подпись, срок, формат)
	ErrInvalidToken = errors.New("session: invalid session token")

	// ErrSign не удалось подписать токен
	ErrSign = errors.New("session: failed to sign token")
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

// Manager выдает и проверяет сессию отчета.
// PIN хранится только как bcrypt хеш, сессия - подписанный HS256 JWT в cookie.
type Manager struct {
	pinHash      []byte
	secret       []byte
	ttl          time.Duration
	timeProvider TimeProvider
}

// NewManager создает менеджер сессий
func NewManager(pinHash, secret string, ttl time.Duration) *Manager {
	return &Manager{
		pinHash:      []byte(pinHash),
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: realTimeProvider{},
	}
}

// WithTimeProvider подменяет источник времени
func (m *Manager) WithTimeProvider(tp TimeProvider) *Manager {
	m.timeProvider = tp
	return m
}

// CheckPin сравнивает PIN с хешем
func (m *Manager) CheckPin(pin string) error {
	if err := bcrypt.CompareHashAndPassword(m.pinHash, []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrWrongPin
		}
		return fmt.Errorf("%w: %v", ErrWrongPin, err)
	}
	return nil
}

// Issue выпускает токен сессии и возвращает его вместе со временем истечения
func (m *Manager) Issue() (string, time.Time, error) {
	now := m.timeProvider.Now()
	expiresAt := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrSign, err)
	}

	return token, expiresAt, nil
}

// Verify проверяет подпись, алгоритм, срок действия и назначение токена
func (m *Manager) Verify(token string) error {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}, SkipClaimsValidation: true}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !claims.VerifyExpiresAt(m.timeProvider.Now(), true) {
		return fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	if claims.Issuer != issuer || claims.Subject != subject {
		return fmt.Errorf("%w: unexpected issuer or subject", ErrInvalidToken)
	}

	return nil
}

// HashPin хеш PIN для report.pin_hash
func HashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
