package repositories

import (
	"context"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByIDs retrieves multiple users by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// Update updates a user
	Update(ctx context.Context, user *entities.User) error

	// Delete deletes a user
	Delete(ctx context.Context, id string) error
}

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	// Create creates a new notification
	Create(ctx context.Context, notification *entities.Notification) error

	// GetByID retrieves a notification by ID
	GetByID(ctx context.Context, id string) (*entities.Notification, error)

	// ListByUser retrieves notifications for a user, newest first
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Notification, error)

	// CountUnread counts unread notifications for a user
	CountUnread(ctx context.Context, userID string) (int, error)

	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead marks all of a user's notifications as read
	MarkAllRead(ctx context.Context, userID string) error

	// Delete deletes a notification
	Delete(ctx context.Context, id string) error
}
