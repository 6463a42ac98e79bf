package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mandaladaka/internal/domain"
	"mandaladaka/internal/repos"
)

var (
	ErrBadCreds     = errors.New("invalid username or password")
	ErrInvalidToken = errors.New("invalid or expired token")
)

type accessClaims struct {
	jwt.RegisteredClaims
	Roles string `json:"roles"`
}

// AuthService issues and verifies the bearer tokens staff authenticate with.
type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(users *repos.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Secret: secret, TTL: ttl}
}

// Login verifies the credentials and returns a signed access token with the
// user's roles as claims.
func (s *AuthService) Login(username, password string) (string, *domain.User, error) {
	u, err := s.Users.ByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}

	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
			ID:        uuid.NewString(),
		},
		Roles: u.Roles,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// UserFromToken verifies a bearer token and resolves its subject.
func (s *AuthService) UserFromToken(token string) (*domain.User, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, err := s.Users.ByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}
	return u, nil
}
