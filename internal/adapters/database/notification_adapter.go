package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

// NotificationAdapter implements the NotificationRepository interface
type NotificationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewNotificationAdapter creates a new notification adapter
func NewNotificationAdapter(client *postgres.Client) repositories.NotificationRepository {
	return &NotificationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var notificationColumns = []interface{}{
	"id", "user_id", "category", "title", "message", "is_read", "created_at",
}

// Create creates a new notification
func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.Notification) error {
	record := goqu.Record{
		"id":         notification.ID,
		"user_id":    notification.UserID,
		"category":   notification.Category,
		"title":      notification.Title,
		"message":    notification.Message,
		"is_read":    notification.IsRead,
		"created_at": notification.CreatedAt,
	}

	query, args, err := a.db.Insert("notifications").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create notification", err)
	}

	return nil
}

// GetByID retrieves a notification by ID
func (a *NotificationAdapter) GetByID(ctx context.Context, id string) (*entities.Notification, error) {
	query, args, err := a.db.Select(notificationColumns...).
		From("notifications").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	notification := &entities.Notification{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Category,
		&notification.Title,
		&notification.Message,
		&notification.IsRead,
		&notification.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("notification with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get notification", err)
	}

	return notification, nil
}

// ListByUser retrieves notifications for a user, newest first
func (a *NotificationAdapter) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Notification, error) {
	ds := a.db.Select(notificationColumns...).
		From("notifications").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list notifications", err)
	}
	defer rows.Close()

	var notifications []*entities.Notification
	for rows.Next() {
		notification := &entities.Notification{}
		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Category,
			&notification.Title,
			&notification.Message,
			&notification.IsRead,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan notification", err)
		}
		notifications = append(notifications, notification)
	}

	return notifications, nil
}

// CountUnread counts unread notifications for a user
func (a *NotificationAdapter) CountUnread(ctx context.Context, userID string) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("notifications").
		Where(goqu.Ex{"user_id": userID, "is_read": false}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to count unread notifications", err)
	}

	return count, nil
}

// MarkRead marks a notification as read
func (a *NotificationAdapter) MarkRead(ctx context.Context, id string) error {
	query, args, err := a.db.Update("notifications").
		Set(goqu.Record{"is_read": true}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build mark read query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to mark notification read", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("notification with id %s not found", id))
	}

	return nil
}

// MarkAllRead marks all of a user's notifications as read
func (a *NotificationAdapter) MarkAllRead(ctx context.Context, userID string) error {
	query, args, err := a.db.Update("notifications").
		Set(goqu.Record{"is_read": true}).
		Where(goqu.Ex{"user_id": userID, "is_read": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build mark all read query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to mark notifications read", err)
	}

	return nil
}

// Delete deletes a notification
func (a *NotificationAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("notifications").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete notification", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("notification with id %s not found", id))
	}

	return nil
}
