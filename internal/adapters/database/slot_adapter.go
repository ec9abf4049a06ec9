package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

// SlotAdapter implements the SlotRepository interface
type SlotAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSlotAdapter creates a new slot adapter
func NewSlotAdapter(client *postgres.Client) repositories.SlotRepository {
	return &SlotAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var slotColumns = []interface{}{
	"id", "turf_id", "start_time", "end_time", "price", "is_available",
	"created_at", "updated_at",
}

// Create creates a new slot
func (a *SlotAdapter) Create(ctx context.Context, slot *entities.TimeSlot) error {
	record := goqu.Record{
		"id":           slot.ID,
		"turf_id":      slot.TurfID,
		"start_time":   slot.StartTime,
		"end_time":     slot.EndTime,
		"price":        slot.Price,
		"is_available": slot.IsAvailable,
		"created_at":   slot.CreatedAt,
		"updated_at":   slot.UpdatedAt,
	}

	query, args, err := a.db.Insert("time_slots").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create slot", err)
	}

	return nil
}

// GetByID retrieves a slot by ID
func (a *SlotAdapter) GetByID(ctx context.Context, id string) (*entities.TimeSlot, error) {
	query, args, err := a.db.Select(slotColumns...).
		From("time_slots").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	slot := &entities.TimeSlot{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.TurfID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Price,
		&slot.IsAvailable,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("slot with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get slot", err)
	}

	return slot, nil
}

// ListByTurf retrieves slots for a turf within a time range, earliest first
func (a *SlotAdapter) ListByTurf(ctx context.Context, turfID string, from, to time.Time) ([]*entities.TimeSlot, error) {
	query, args, err := a.db.Select(slotColumns...).
		From("time_slots").
		Where(goqu.Ex{"turf_id": turfID}).
		Where(goqu.C("start_time").Gte(from)).
		Where(goqu.C("start_time").Lt(to)).
		Order(goqu.I("start_time").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list slots", err)
	}
	defer rows.Close()

	var slots []*entities.TimeSlot
	for rows.Next() {
		slot := &entities.TimeSlot{}
		err := rows.Scan(
			&slot.ID,
			&slot.TurfID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Price,
			&slot.IsAvailable,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan slot", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// MarkAvailability flips a slot's availability flag. Taking a slot only
// succeeds while the row is still marked available, so of two concurrent
// bookings exactly one wins and the other gets a conflict.
func (a *SlotAdapter) MarkAvailability(ctx context.Context, id string, available bool) error {
	stmt := a.db.Update("time_slots").
		Set(goqu.Record{
			"is_available": available,
			"updated_at":   time.Now(),
		}).
		Where(goqu.Ex{"id": id})

	if !available {
		stmt = stmt.Where(goqu.Ex{"is_available": true})
	}

	query, args, err := stmt.ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build availability query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update slot availability", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		if !available {
			return apperrors.NewConflictError(fmt.Sprintf("slot %s is already booked", id))
		}
		return apperrors.NewNotFoundError(fmt.Sprintf("slot with id %s not found", id))
	}

	return nil
}
