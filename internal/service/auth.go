package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"motomap-api/internal/core/auth"
	"motomap-api/internal/core/cache"
	"motomap-api/internal/repo"
)

type AuthService struct {
	db       *gorm.DB
	jwter    *auth.JWTer
	throttle *cache.Throttle

	maxFailures int64
	window      time.Duration
}

func NewAuthService(db *gorm.DB, jwter *auth.JWTer, throttle *cache.Throttle, maxFailures int, window time.Duration) *AuthService {
	return &AuthService{
		db:          db,
		jwter:       jwter,
		throttle:    throttle,
		maxFailures: int64(maxFailures),
		window:      window,
	}
}

// Login verifies the credentials and issues a bearer token. Both an unknown
// username and a wrong password map to 401; repeated failures from the same
// client are throttled when redis is configured.
func (s *AuthService) Login(ctx context.Context, username, password, clientIP string) (string, error) {
	key := fmt.Sprintf("login:fail:%s:%s", username, clientIP)

	if n, err := s.throttle.Count(ctx, key); err == nil && s.maxFailures > 0 && n >= s.maxFailures {
		return "", TooManyAttempts("too many failed login attempts, try again later")
	}

	u, err := repo.NewUserRepo(s.db.WithContext(ctx)).FindByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		_, _ = s.throttle.Fail(ctx, key, s.window)
		return "", Unauthorized("user not found")
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		_, _ = s.throttle.Fail(ctx, key, s.window)
		return "", Unauthorized("incorrect password")
	}

	s.throttle.Reset(ctx, key)
	return s.jwter.Issue(u.Username, u.Role)
}
