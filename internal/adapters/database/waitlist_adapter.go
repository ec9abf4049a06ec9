package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

// WaitlistAdapter implements the WaitlistRepository interface
type WaitlistAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewWaitlistAdapter creates a new waitlist adapter
func NewWaitlistAdapter(client *postgres.Client) repositories.WaitlistRepository {
	return &WaitlistAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a waitlist entry
func (a *WaitlistAdapter) Create(ctx context.Context, entry *entities.WaitlistEntry) error {
	record := goqu.Record{
		"id":         entry.ID,
		"slot_id":    entry.SlotID,
		"turf_id":    entry.TurfID,
		"user_id":    entry.UserID,
		"created_at": entry.CreatedAt,
	}

	query, args, err := a.db.Insert("waitlist_entries").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create waitlist entry", err)
	}

	return nil
}

// ListBySlot retrieves waitlist entries for a slot, oldest first
func (a *WaitlistAdapter) ListBySlot(ctx context.Context, slotID string) ([]*entities.WaitlistEntry, error) {
	query, args, err := a.db.Select("id", "slot_id", "turf_id", "user_id", "created_at").
		From("waitlist_entries").
		Where(goqu.Ex{"slot_id": slotID}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list waitlist entries", err)
	}
	defer rows.Close()

	var entries []*entities.WaitlistEntry
	for rows.Next() {
		entry := &entities.WaitlistEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.SlotID,
			&entry.TurfID,
			&entry.UserID,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan waitlist entry", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Delete removes a waitlist entry
func (a *WaitlistAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("waitlist_entries").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete waitlist entry", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("waitlist entry with id %s not found", id))
	}

	return nil
}
