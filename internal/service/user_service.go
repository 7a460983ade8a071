package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RaajPratap/books-management-system/internal/auth"
	dom "github.com/RaajPratap/books-management-system/internal/domain"
	"github.com/RaajPratap/books-management-system/internal/repo"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// ErrInvalidCredentials is returned by Login for an unknown email and for a
// wrong password alike.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", dom.ErrUnauthorized)

// AuthResult is what register and login hand back to the client.
type AuthResult struct {
	Token string
	User  dom.User
}

// UserService handles registration, login and token-based identity lookup.
type UserService struct {
	repo       repo.UserRepo
	tokens     *auth.TokenService
	bcryptCost int
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo, tokens *auth.TokenService) *UserService {
	return &UserService{repo: repo, tokens: tokens, bcryptCost: bcrypt.DefaultCost}
}

// Register creates a new user with a hashed password and logs them in.
func (s *UserService) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return AuthResult{}, fmt.Errorf("%w: username, email and password are required", dom.ErrValidation)
	}
	if len(password) > maxPasswordBytes {
		return AuthResult{}, fmt.Errorf("%w: password must be at most %d bytes", dom.ErrValidation, maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.repo.Create(ctx, username, email, string(hash))
	if err != nil {
		if errors.Is(err, dom.ErrDuplicateKey) {
			return AuthResult{}, fmt.Errorf("%w: user already exists", dom.ErrDuplicateKey)
		}
		return AuthResult{}, err
	}
	return s.issue(u)
}

// Login checks email and password; returns a fresh token if valid.
func (s *UserService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, dom.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.issue(u)
}

// WhoAmI resolves a bearer token to the user it was issued for.
func (s *UserService) WhoAmI(ctx context.Context, token string) (dom.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return dom.User{}, fmt.Errorf("%w: not authorized, token failed", dom.ErrUnauthorized)
	}
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, dom.ErrNotFound) {
			return dom.User{}, fmt.Errorf("%w: user not found", dom.ErrUnauthorized)
		}
		return dom.User{}, err
	}
	return u, nil
}

func (s *UserService) issue(u dom.User) (AuthResult, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: u}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
