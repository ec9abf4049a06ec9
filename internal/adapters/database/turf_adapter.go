package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

// TurfAdapter implements the TurfRepository interface
type TurfAdapter struct {
	client *postgres.Client
}

// NewTurfAdapter creates a new turf adapter
func NewTurfAdapter(client *postgres.Client) repositories.TurfRepository {
	return &TurfAdapter{
		client: client,
	}
}

const turfColumns = `
	id, owner_id, name, description, street, city, state, zip_code, country,
	latitude, longitude, sports, amenities, hourly_price, rating, review_count,
	images, phone_number, is_active, created_at, updated_at
`

func scanTurf(row interface{ Scan(...interface{}) error }) (*entities.Turf, error) {
	turf := &entities.Turf{}
	err := row.Scan(
		&turf.ID,
		&turf.OwnerID,
		&turf.Name,
		&turf.Description,
		&turf.Address.Street,
		&turf.Address.City,
		&turf.Address.State,
		&turf.Address.ZipCode,
		&turf.Address.Country,
		&turf.Location.Latitude,
		&turf.Location.Longitude,
		&turf.Sports,
		&turf.Amenities,
		&turf.HourlyPrice,
		&turf.Rating,
		&turf.ReviewCount,
		&turf.Images,
		&turf.PhoneNumber,
		&turf.IsActive,
		&turf.CreatedAt,
		&turf.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return turf, nil
}

// Create creates a new turf
func (a *TurfAdapter) Create(ctx context.Context, turf *entities.Turf) error {
	query := `
		INSERT INTO turfs (
			id, owner_id, name, description, street, city, state, zip_code, country,
			latitude, longitude, sports, amenities, hourly_price, rating, review_count,
			images, phone_number, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := a.client.DB().ExecContext(ctx, query,
		turf.ID,
		turf.OwnerID,
		turf.Name,
		turf.Description,
		turf.Address.Street,
		turf.Address.City,
		turf.Address.State,
		turf.Address.ZipCode,
		turf.Address.Country,
		turf.Location.Latitude,
		turf.Location.Longitude,
		turf.Sports,
		turf.Amenities,
		turf.HourlyPrice,
		turf.Rating,
		turf.ReviewCount,
		turf.Images,
		turf.PhoneNumber,
		turf.IsActive,
		turf.CreatedAt,
		turf.UpdatedAt,
	)

	if err != nil {
		return apperrors.NewInternalError("failed to create turf", err)
	}

	return nil
}

// GetByID retrieves a turf by ID
func (a *TurfAdapter) GetByID(ctx context.Context, id string) (*entities.Turf, error) {
	query := `SELECT ` + turfColumns + ` FROM turfs WHERE id = $1 AND is_active = true`

	turf, err := scanTurf(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("turf with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get turf", err)
	}

	return turf, nil
}

// GetByIDs retrieves multiple turfs by their IDs
func (a *TurfAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Turf, error) {
	if len(ids) == 0 {
		return []*entities.Turf{}, nil
	}

	query := `SELECT ` + turfColumns + ` FROM turfs WHERE id = ANY($1)`

	rows, err := a.client.DB().QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get turfs", err)
	}
	defer rows.Close()

	return collectTurfs(rows)
}

// Update updates a turf
func (a *TurfAdapter) Update(ctx context.Context, turf *entities.Turf) error {
	turf.UpdatedAt = time.Now()

	query := `
		UPDATE turfs SET
			name = $2, description = $3, street = $4, city = $5, state = $6,
			zip_code = $7, country = $8, latitude = $9, longitude = $10,
			sports = $11, amenities = $12, hourly_price = $13, rating = $14,
			review_count = $15, images = $16, phone_number = $17, is_active = $18,
			updated_at = $19
		WHERE id = $1
	`

	result, err := a.client.DB().ExecContext(ctx, query,
		turf.ID,
		turf.Name,
		turf.Description,
		turf.Address.Street,
		turf.Address.City,
		turf.Address.State,
		turf.Address.ZipCode,
		turf.Address.Country,
		turf.Location.Latitude,
		turf.Location.Longitude,
		turf.Sports,
		turf.Amenities,
		turf.HourlyPrice,
		turf.Rating,
		turf.ReviewCount,
		turf.Images,
		turf.PhoneNumber,
		turf.IsActive,
		turf.UpdatedAt,
	)

	if err != nil {
		return apperrors.NewInternalError("failed to update turf", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("turf with id %s not found", turf.ID))
	}

	return nil
}

// Delete soft-deletes a turf
func (a *TurfAdapter) Delete(ctx context.Context, id string) error {
	query := `UPDATE turfs SET is_active = false, updated_at = $2 WHERE id = $1`

	result, err := a.client.DB().ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return apperrors.NewInternalError("failed to delete turf", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("turf with id %s not found", id))
	}

	return nil
}

// List retrieves turfs with filters
func (a *TurfAdapter) List(ctx context.Context, filter repositories.TurfFilter) ([]*entities.Turf, error) {
	query := `SELECT ` + turfColumns + ` FROM turfs WHERE is_active = true`
	args := []interface{}{}
	idx := 1

	if filter.Sport != "" {
		query += fmt.Sprintf(" AND $%d = ANY(sports)", idx)
		args = append(args, filter.Sport)
		idx++
	}
	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND hourly_price <= $%d", idx)
		args = append(args, *filter.MaxPrice)
		idx++
	}

	query += " ORDER BY rating DESC, name ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", idx)
		args = append(args, filter.Limit)
		idx++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", idx)
		args = append(args, filter.Offset)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list turfs", err)
	}
	defer rows.Close()

	return collectTurfs(rows)
}

// ListByOwner retrieves turfs belonging to an owner
func (a *TurfAdapter) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Turf, error) {
	query := `SELECT ` + turfColumns + ` FROM turfs WHERE owner_id = $1 ORDER BY name ASC`

	rows, err := a.client.DB().QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list owner turfs", err)
	}
	defer rows.Close()

	return collectTurfs(rows)
}

// Search searches turfs within a radius using the haversine expression. This
// is the Postgres fallback path; the primary geo search goes through
// Typesense.
func (a *TurfAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Turf, error) {
	query := `
		SELECT ` + turfColumns + `,
			(6371 * acos(cos(radians($1)) * cos(radians(latitude)) *
			cos(radians(longitude) - radians($2)) + sin(radians($1)) *
			sin(radians(latitude)))) AS distance
		FROM turfs
		WHERE is_active = true
	`
	args := []interface{}{params.Latitude, params.Longitude}
	idx := 3

	if params.Sport != "" {
		query += fmt.Sprintf(" AND $%d = ANY(sports)", idx)
		args = append(args, params.Sport)
		idx++
	}
	if params.MinPrice != nil {
		query += fmt.Sprintf(" AND hourly_price >= $%d", idx)
		args = append(args, *params.MinPrice)
		idx++
	}
	if params.MaxPrice != nil {
		query += fmt.Sprintf(" AND hourly_price <= $%d", idx)
		args = append(args, *params.MaxPrice)
		idx++
	}

	radius := params.RadiusKm
	if radius <= 0 {
		radius = 10
	}
	query += fmt.Sprintf(" AND (6371 * acos(cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude) - radians($2)) + sin(radians($1)) * sin(radians(latitude)))) <= $%d", idx)
	args = append(args, radius)
	idx++

	query += " ORDER BY distance ASC"

	limit := params.Limit
	if limit <= 0 {
		limit = 30
	}
	query += fmt.Sprintf(" LIMIT $%d", idx)
	args = append(args, limit)
	idx++

	if params.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", idx)
		args = append(args, params.Offset)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search turfs", err)
	}
	defer rows.Close()

	var turfs []*entities.Turf
	for rows.Next() {
		turf := &entities.Turf{}
		var distance float64
		err := rows.Scan(
			&turf.ID,
			&turf.OwnerID,
			&turf.Name,
			&turf.Description,
			&turf.Address.Street,
			&turf.Address.City,
			&turf.Address.State,
			&turf.Address.ZipCode,
			&turf.Address.Country,
			&turf.Location.Latitude,
			&turf.Location.Longitude,
			&turf.Sports,
			&turf.Amenities,
			&turf.HourlyPrice,
			&turf.Rating,
			&turf.ReviewCount,
			&turf.Images,
			&turf.PhoneNumber,
			&turf.IsActive,
			&turf.CreatedAt,
			&turf.UpdatedAt,
			&distance,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan turf", err)
		}
		turfs = append(turfs, turf)
	}

	return turfs, nil
}

func collectTurfs(rows *sql.Rows) ([]*entities.Turf, error) {
	var turfs []*entities.Turf
	for rows.Next() {
		turf, err := scanTurf(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan turf", err)
		}
		turfs = append(turfs, turf)
	}
	return turfs, nil
}
