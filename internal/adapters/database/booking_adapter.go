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

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var bookingColumns = []interface{}{
	"id", "user_id", "turf_id", "slot_id", "start_time", "end_time",
	"price", "advance_paid", "payment_method", "status",
	"customer_name", "customer_email", "customer_phone", "check_in_token",
	"created_at", "updated_at",
}

// Create creates a new booking
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
		"id":             booking.ID,
		"user_id":        booking.UserID,
		"turf_id":        booking.TurfID,
		"slot_id":        booking.SlotID,
		"start_time":     booking.StartTime,
		"end_time":       booking.EndTime,
		"price":          booking.Price,
		"advance_paid":   booking.AdvancePaid,
		"payment_method": booking.PaymentMethod,
		"status":         booking.Status,
		"customer_name":  booking.CustomerName,
		"customer_email": booking.CustomerEmail,
		"customer_phone": booking.CustomerPhone,
		"check_in_token": booking.CheckInToken,
		"created_at":     booking.CreatedAt,
		"updated_at":     booking.UpdatedAt,
	}

	query, args, err := a.db.Insert("bookings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking, err := scanBooking(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}

	return booking, nil
}

// Update updates a booking
func (a *BookingAdapter) Update(ctx context.Context, booking *entities.Booking) error {
	booking.UpdatedAt = time.Now()

	record := goqu.Record{
		"start_time":     booking.StartTime,
		"end_time":       booking.EndTime,
		"price":          booking.Price,
		"advance_paid":   booking.AdvancePaid,
		"payment_method": booking.PaymentMethod,
		"status":         booking.Status,
		"customer_name":  booking.CustomerName,
		"customer_email": booking.CustomerEmail,
		"customer_phone": booking.CustomerPhone,
		"check_in_token": booking.CheckInToken,
		"updated_at":     booking.UpdatedAt,
	}

	query, args, err := a.db.Update("bookings").
		Set(record).
		Where(goqu.Ex{"id": booking.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", booking.ID))
	}

	return nil
}

// UpdateStatus moves a booking to a new status
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{
			"status":     status,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build status query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}

	return nil
}

// ListByUser retrieves bookings for a user
func (a *BookingAdapter) ListByUser(ctx context.Context, userID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return a.list(ctx, goqu.Ex{"user_id": userID}, filter)
}

// ListByTurf retrieves bookings for a turf
func (a *BookingAdapter) ListByTurf(ctx context.Context, turfID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return a.list(ctx, goqu.Ex{"turf_id": turfID}, filter)
}

func (a *BookingAdapter) list(ctx context.Context, where goqu.Ex, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	ds := a.db.Select(bookingColumns...).
		From("bookings").
		Where(where)

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}
	if filter.From != nil {
		ds = ds.Where(goqu.C("start_time").Gte(*filter.From))
	}
	if filter.To != nil {
		ds = ds.Where(goqu.C("start_time").Lte(*filter.To))
	}

	ds = ds.Order(goqu.I("start_time").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	var bookings []*entities.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func scanBooking(row interface{ Scan(...interface{}) error }) (*entities.Booking, error) {
	booking := &entities.Booking{}
	var checkInToken sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.TurfID,
		&booking.SlotID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Price,
		&booking.AdvancePaid,
		&booking.PaymentMethod,
		&booking.Status,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&checkInToken,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if checkInToken.Valid {
		booking.CheckInToken = &checkInToken.String
	}

	return booking, nil
}
