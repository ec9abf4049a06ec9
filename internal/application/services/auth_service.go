package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/auth"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

// AuthService handles registration, login and token validation
type AuthService struct {
	userRepo repositories.UserRepository
	issuer   *auth.TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, issuer *auth.TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

// RegisterInput carries a signup request
type RegisterInput struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Name     string            `json:"name"`
	Phone    string            `json:"phone"`
	Role     entities.UserRole `json:"role"`
}

// AuthResult is returned from register and login
type AuthResult struct {
	User        *entities.User `json:"user"`
	AccessToken string         `json:"access_token"`
}

// Register creates a user with a bcrypt password hash and issues a token
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("a valid email is required")
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}

	role := input.Role
	if role == "" {
		role = entities.RolePlayer
	}
	if role != entities.RolePlayer && role != entities.RoleOwner {
		return nil, apperrors.NewValidationError("role must be player or owner")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	user := &entities.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueFor(user)
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same error so the endpoint does not leak which emails
// exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	return s.issueFor(user)
}

// Me resolves the authenticated user. Token validation happens in the auth
// middleware; this only loads the user behind the verified subject claim.
func (s *AuthService) Me(ctx context.Context, userID string) (*entities.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *AuthService) issueFor(user *entities.User) (*AuthResult, error) {
	token, err := s.issuer.CreateAccessToken(user.ID, string(user.Role), user.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue access token", err)
	}
	return &AuthResult{User: user, AccessToken: token}, nil
}
