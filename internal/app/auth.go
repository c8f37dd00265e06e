package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/chakronwork/SmartStay/internal/domain"
)

// AuthService issues and verifies session tokens. The role travels as a
// claim inside the token so authorization is decided server-side, not by
// comparing an email string in the UI.
type AuthService struct {
	profiles domain.ProfileRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(p domain.ProfileRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{profiles: p, secret: []byte(secret), tokenTTL: ttl, now: time.Now}
}

type Session struct {
	Token    string          `json:"token"`
	Identity domain.Identity `json:"identity"`
}

// SignUp creates a profile with role user and logs the account in.
func (s *AuthService) SignUp(ctx context.Context, email, password string, firstName, lastName *string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return Session{}, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if len(password) < 6 {
		return Session{}, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, err
	}
	p := domain.Profile{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         domain.RoleUser,
		CreatedAt:    s.now().UTC(),
	}
	id, err := s.profiles.CreateProfile(ctx, p)
	if err != nil {
		return Session{}, err
	}
	p.ID = id
	return s.sessionFor(p)
}

// SignIn verifies credentials and returns a fresh session token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	p, err := s.profiles.GetProfileByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrNotFound {
			return Session{}, domain.ErrBadCredentials
		}
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return Session{}, domain.ErrBadCredentials
	}
	return s.sessionFor(p)
}

func (s *AuthService) sessionFor(p domain.Profile) (Session, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(p.ID, 10),
		"email": p.Email,
		"role":  p.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:    tok,
		Identity: domain.Identity{UserID: p.ID, Email: p.Email, Role: p.Role},
	}, nil
}

// Verify parses and validates a bearer token, returning the identity
// embedded in its claims.
func (s *AuthService) Verify(tokenString string) (domain.Identity, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id == 0 {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = domain.RoleUser
	}
	return domain.Identity{UserID: id, Email: email, Role: role}, nil
}
