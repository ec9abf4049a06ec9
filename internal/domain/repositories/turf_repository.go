package repositories

import (
	"context"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
)

// TurfRepository defines the interface for turf data operations
type TurfRepository interface {
	// Create creates a new turf
	Create(ctx context.Context, turf *entities.Turf) error

	// GetByID retrieves a turf by ID
	GetByID(ctx context.Context, id string) (*entities.Turf, error)

	// GetByIDs retrieves multiple turfs by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Turf, error)

	// Update updates a turf
	Update(ctx context.Context, turf *entities.Turf) error

	// Delete deletes a turf
	Delete(ctx context.Context, id string) error

	// List retrieves turfs with filters
	List(ctx context.Context, filter TurfFilter) ([]*entities.Turf, error)

	// ListByOwner retrieves turfs belonging to an owner
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Turf, error)

	// Search searches turfs by location and criteria
	Search(ctx context.Context, params SearchParams) ([]*entities.Turf, error)
}

// TurfSearchRepository defines the interface for turf search operations
// backed by a search engine (e.g. Typesense)
type TurfSearchRepository interface {
	// Search searches turfs
	Search(ctx context.Context, params SearchParams) ([]*entities.Turf, error)

	// Index indexes a turf
	Index(ctx context.Context, turf *entities.Turf) error

	// Delete removes a turf from the index
	Delete(ctx context.Context, id string) error
}

// TurfFilter defines filters for listing turfs
type TurfFilter struct {
	Sport    string
	MaxPrice *float64
	IsActive *bool
	Limit    int
	Offset   int
}

// SearchParams defines parameters for turf search
type SearchParams struct {
	Query     string
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Sport     string
	MinPrice  *float64
	MaxPrice  *float64
	Limit     int
	Offset    int
}
