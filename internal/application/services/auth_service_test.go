package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/auth"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

func testIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret", time.Hour)
}

func TestAuthService_Register_HashesPasswordAndIssuesToken(t *testing.T) {
	ctx := context.Background()

	userRepo := new(mockUserRepo)
	service := services.NewAuthService(userRepo, testIssuer())

	var created *entities.User
	userRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entities.User)
	}).Return(nil)

	result, err := service.Register(ctx, services.RegisterInput{
		Email:    "Rohan@Example.com",
		Password: "supersecret",
		Name:     "Rohan Deshmukh",
		Phone:    "+919876543210",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "rohan@example.com", created.Email)
	assert.Equal(t, entities.RolePlayer, created.Role)
	assert.NotEqual(t, "supersecret", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("supersecret")))
	assert.NotEmpty(t, result.AccessToken)
}

func TestAuthService_Register_RejectsShortPassword(t *testing.T) {
	ctx := context.Background()

	service := services.NewAuthService(new(mockUserRepo), testIssuer())

	_, err := service.Register(ctx, services.RegisterInput{
		Email:    "rohan@example.com",
		Password: "short",
		Name:     "Rohan",
	})

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	ctx := context.Background()

	userRepo := new(mockUserRepo)
	service := services.NewAuthService(userRepo, testIssuer())

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "rohan@example.com").Return(&entities.User{
		ID:           "user-1",
		Email:        "rohan@example.com",
		PasswordHash: string(hash),
		Role:         entities.RolePlayer,
	}, nil)
	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, apperrors.NewNotFoundError("user not found"))

	_, wrongPassword := service.Login(ctx, "rohan@example.com", "not-the-password")
	_, unknownEmail := service.Login(ctx, "nobody@example.com", "supersecret")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	appErr, ok := apperrors.AsAppError(wrongPassword)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
}

func TestAuthService_Login_IssuesTokenResolvableByMe(t *testing.T) {
	ctx := context.Background()

	userRepo := new(mockUserRepo)
	issuer := testIssuer()
	service := services.NewAuthService(userRepo, issuer)

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entities.User{
		ID:           "user-1",
		Email:        "rohan@example.com",
		PasswordHash: string(hash),
		Role:         entities.RoleOwner,
	}
	userRepo.On("GetByEmail", mock.Anything, "rohan@example.com").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, "user-1").Return(user, nil)

	result, err := service.Login(ctx, "rohan@example.com", "supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)

	claims, err := issuer.ParseValidate(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Sub)

	me, err := service.Me(ctx, claims.Sub)

	require.NoError(t, err)
	assert.Equal(t, "user-1", me.ID)
	assert.Equal(t, entities.RoleOwner, me.Role)
}
