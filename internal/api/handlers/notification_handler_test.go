package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/api/handlers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entities.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id string) (*entities.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newNotificationHandler(repo *MockNotificationRepository) *handlers.NotificationHandler {
	service := services.NewNotificationService(repo, nil, nil, nil, nil, nil)
	return handlers.NewNotificationHandler(service)
}

func TestNotificationHandler_MarkRead_AnotherUsersNotificationIsForbidden(t *testing.T) {
	repo := new(MockNotificationRepository)
	handler := newNotificationHandler(repo)

	repo.On("GetByID", mock.Anything, "notif-1").
		Return(&entities.Notification{ID: "notif-1", UserID: "user-1"}, nil)

	req := httptest.NewRequest("POST", "/api/notifications/notif-1/read", nil)
	req.SetPathValue("id", "notif-1")
	req = withClaims(req, "user-2", "player")
	w := httptest.NewRecorder()

	handler.MarkRead(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
}

func TestNotificationHandler_DeleteNotification_AnotherUsersNotificationIsForbidden(t *testing.T) {
	repo := new(MockNotificationRepository)
	handler := newNotificationHandler(repo)

	repo.On("GetByID", mock.Anything, "notif-1").
		Return(&entities.Notification{ID: "notif-1", UserID: "user-1"}, nil)

	req := httptest.NewRequest("DELETE", "/api/notifications/notif-1", nil)
	req.SetPathValue("id", "notif-1")
	req = withClaims(req, "user-2", "player")
	w := httptest.NewRecorder()

	handler.DeleteNotification(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestNotificationHandler_MarkRead_OwnerMarksIt(t *testing.T) {
	repo := new(MockNotificationRepository)
	handler := newNotificationHandler(repo)

	repo.On("GetByID", mock.Anything, "notif-1").
		Return(&entities.Notification{ID: "notif-1", UserID: "user-1"}, nil)
	repo.On("MarkRead", mock.Anything, "notif-1").Return(nil)

	req := httptest.NewRequest("POST", "/api/notifications/notif-1/read", nil)
	req.SetPathValue("id", "notif-1")
	req = withClaims(req, "user-1", "player")
	w := httptest.NewRecorder()

	handler.MarkRead(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertCalled(t, "MarkRead", mock.Anything, "notif-1")
}
