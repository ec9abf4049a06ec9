package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/api/handlers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/api/middleware"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/auth"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*entities.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newAuthHandler(repo *MockUserRepository) (*handlers.AuthHandler, *middleware.AuthMiddleware) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	handler := handlers.NewAuthHandler(services.NewAuthService(repo, issuer))
	return handler, middleware.NewAuthMiddleware(issuer)
}

func TestAuthHandler_Register_CreatesUserAndIssuesToken(t *testing.T) {
	repo := new(MockUserRepository)
	handler, _ := newAuthHandler(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.Email == "rohan@playnest.in" && u.Role == entities.RolePlayer
	})).Return(nil)

	body := `{"email":"Rohan@playnest.in","password":"super-secret","name":"Rohan Deshmukh"}`
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var result services.AuthResult
	err := json.NewDecoder(w.Body).Decode(&result)
	assert.NoError(t, err)
	assert.Equal(t, "rohan@playnest.in", result.User.Email)
	assert.NotEmpty(t, result.AccessToken)
	repo.AssertExpectations(t)
}

func TestAuthHandler_Register_RejectsShortPassword(t *testing.T) {
	repo := new(MockUserRepository)
	handler, _ := newAuthHandler(repo)

	body := `{"email":"rohan@playnest.in","password":"short","name":"Rohan"}`
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_WrongPasswordIsUnauthorized(t *testing.T) {
	repo := new(MockUserRepository)
	handler, _ := newAuthHandler(repo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.MinCost)
	repo.On("GetByEmail", mock.Anything, "rohan@playnest.in").Return(&entities.User{
		ID:           "user-1",
		Email:        "rohan@playnest.in",
		PasswordHash: string(hash),
		Role:         entities.RolePlayer,
	}, nil)

	body := `{"email":"rohan@playnest.in","password":"not-the-password"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me_RoundTripsLoginToken(t *testing.T) {
	repo := new(MockUserRepository)
	handler, authMW := newAuthHandler(repo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.MinCost)
	user := &entities.User{
		ID:           "user-1",
		Email:        "rohan@playnest.in",
		PasswordHash: string(hash),
		Role:         entities.RolePlayer,
	}
	repo.On("GetByEmail", mock.Anything, "rohan@playnest.in").Return(user, nil)
	repo.On("GetByID", mock.Anything, "user-1").Return(user, nil)

	body := `{"email":"rohan@playnest.in","password":"super-secret"}`
	loginReq := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	loginW := httptest.NewRecorder()

	handler.Login(loginW, loginReq)
	assert.Equal(t, http.StatusOK, loginW.Code)

	var result services.AuthResult
	err := json.NewDecoder(loginW.Body).Decode(&result)
	assert.NoError(t, err)

	meReq := httptest.NewRequest("GET", "/api/auth/me", nil)
	meReq.Header.Set("Authorization", "Bearer "+result.AccessToken)
	meW := httptest.NewRecorder()

	authMW.RequireAuth(handler.Me)(meW, meReq)

	assert.Equal(t, http.StatusOK, meW.Code)

	var me entities.User
	err = json.NewDecoder(meW.Body).Decode(&me)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", me.ID)
}

func TestAuthHandler_Me_MissingTokenIsUnauthorized(t *testing.T) {
	repo := new(MockUserRepository)
	handler, authMW := newAuthHandler(repo)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	w := httptest.NewRecorder()

	authMW.RequireAuth(handler.Me)(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
