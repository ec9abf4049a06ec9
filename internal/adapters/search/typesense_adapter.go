package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	tsclient "github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements turf search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements TurfSearchRepository
var _ repositories.TurfSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the turfs collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.TurfsCollection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: tsclient.TurfsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "sports", Type: "string[]", Facet: pointer.True()},
			{Name: "is_active", Type: "bool"},
			{Name: "location", Type: "geopoint"},
			{Name: "hourly_price", Type: "float"},
			{Name: "rating", Type: "float"},
			{Name: "review_count", Type: "int32"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes a turf
func (a *TypesenseAdapter) Index(ctx context.Context, turf *entities.Turf) error {
	document := map[string]interface{}{
		"id":           turf.ID,
		"name":         turf.Name,
		"sports":       []string(turf.Sports),
		"is_active":    turf.IsActive,
		"location":     []float64{turf.Location.Latitude, turf.Location.Longitude},
		"hourly_price": turf.HourlyPrice,
		"rating":       turf.Rating,
		"review_count": turf.ReviewCount,
		"created_at":   turf.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(tsclient.TurfsCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index turf: %w", err)
	}

	return nil
}

// Delete removes a turf from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.TurfsCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete turf from index: %w", err)
	}
	return nil
}

// Search searches turfs by geo radius and optional filters. The hits carry
// only the indexed fields; callers hydrate full turfs from the database by ID.
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Turf, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 30
	}

	radius := params.RadiusKm
	if radius <= 0 {
		radius = 10
	}

	filters := []string{
		"is_active:=true",
		fmt.Sprintf("location:(%f, %f, %f km)", params.Latitude, params.Longitude, radius),
	}
	if params.Sport != "" {
		filters = append(filters, fmt.Sprintf("sports:=%s", params.Sport))
	}
	if params.MinPrice != nil {
		filters = append(filters, fmt.Sprintf("hourly_price:>=%f", *params.MinPrice))
	}
	if params.MaxPrice != nil {
		filters = append(filters, fmt.Sprintf("hourly_price:<=%f", *params.MaxPrice))
	}

	query := params.Query
	if query == "" {
		query = "*"
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name"),
		FilterBy: pointer.String(strings.Join(filters, " && ")),
		SortBy:   pointer.String(fmt.Sprintf("location(%f, %f):asc", params.Latitude, params.Longitude)),
		Page:     pointer.Int(params.Offset/limit + 1),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.TurfsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search turfs: %w", err)
	}

	turfs := []*entities.Turf{}
	if result.Hits == nil {
		return turfs, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		var lat, lon float64
		if locInterface, ok := doc["location"].([]interface{}); ok && len(locInterface) == 2 {
			lat, _ = locInterface[0].(float64)
			lon, _ = locInterface[1].(float64)
		}

		turf := &entities.Turf{
			ID:       doc["id"].(string),
			Name:     doc["name"].(string),
			IsActive: doc["is_active"].(bool),
			Location: entities.Location{
				Latitude:  lat,
				Longitude: lon,
			},
		}

		if sports, ok := doc["sports"].([]interface{}); ok {
			for _, s := range sports {
				if sport, ok := s.(string); ok {
					turf.Sports = append(turf.Sports, sport)
				}
			}
		}
		if val, ok := doc["hourly_price"].(float64); ok {
			turf.HourlyPrice = val
		}
		if val, ok := doc["rating"].(float64); ok {
			turf.Rating = val
		}
		if val, ok := doc["review_count"].(float64); ok {
			turf.ReviewCount = int(val)
		}

		turfs = append(turfs, turf)
	}

	return turfs, nil
}
