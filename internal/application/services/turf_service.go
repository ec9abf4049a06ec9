package services

import (
	"context"
	"log"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/geo"
)

// TurfService handles business logic for turfs
type TurfService struct {
	repo       repositories.TurfRepository
	searchRepo repositories.TurfSearchRepository
}

// NewTurfService creates a new turf service
func NewTurfService(repo repositories.TurfRepository, searchRepo repositories.TurfSearchRepository) *TurfService {
	return &TurfService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// Create creates a new turf and indexes it
func (s *TurfService) Create(ctx context.Context, turf *entities.Turf) error {
	if err := s.repo.Create(ctx, turf); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, turf); err != nil {
			// Log error but don't fail the request (eventual consistency)
			log.Printf("Warning: Failed to index turf %s: %v", turf.ID, err)
		}
	}

	return nil
}

// GetByID retrieves a turf by ID
func (s *TurfService) GetByID(ctx context.Context, id string) (*entities.Turf, error) {
	return s.repo.GetByID(ctx, id)
}

// Update updates a turf and its search index entry
func (s *TurfService) Update(ctx context.Context, turf *entities.Turf) error {
	if err := s.repo.Update(ctx, turf); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, turf); err != nil {
			log.Printf("Warning: Failed to update turf index %s: %v", turf.ID, err)
		}
	}

	return nil
}

// Delete deletes a turf and removes it from the index
func (s *TurfService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			log.Printf("Warning: Failed to delete turf from index %s: %v", id, err)
		}
	}

	return nil
}

// List retrieves turfs
func (s *TurfService) List(ctx context.Context, filter repositories.TurfFilter) ([]*entities.Turf, error) {
	return s.repo.List(ctx, filter)
}

// ListByOwner retrieves an owner's turfs
func (s *TurfService) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Turf, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Search searches turfs using the search engine if available, falling back to
// the database, and enriches each hit with distance and travel estimates from
// the caller's position. Search hits carry partial documents, so full turfs
// are hydrated from the primary store by ID.
func (s *TurfService) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.TurfSearchResult, error) {
	var turfs []*entities.Turf
	var err error

	if s.searchRepo != nil {
		turfs, err = s.searchRepo.Search(ctx, params)
		if err != nil {
			log.Printf("Warning: search engine unavailable, falling back to database: %v", err)
			turfs, err = s.repo.Search(ctx, params)
		} else if len(turfs) > 0 {
			turfs, err = s.hydrate(ctx, turfs)
		}
	} else {
		turfs, err = s.repo.Search(ctx, params)
	}

	if err != nil {
		return nil, err
	}

	results := make([]*entities.TurfSearchResult, 0, len(turfs))
	for _, turf := range turfs {
		distance := geo.Distance(params.Latitude, params.Longitude, turf.Location.Latitude, turf.Location.Longitude)

		travel := make(map[string]int)
		for mode, minutes := range geo.TravelEstimates(distance) {
			travel[string(mode)] = minutes
		}

		results = append(results, &entities.TurfSearchResult{
			Turf:          turf,
			DistanceKm:    distance,
			TravelMinutes: travel,
		})
	}

	return results, nil
}

// hydrate replaces partial search hits with full turfs from the primary store,
// preserving hit order
func (s *TurfService) hydrate(ctx context.Context, hits []*entities.Turf) ([]*entities.Turf, error) {
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ID)
	}

	full, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.Turf, len(full))
	for _, turf := range full {
		byID[turf.ID] = turf
	}

	hydrated := make([]*entities.Turf, 0, len(hits))
	for _, hit := range hits {
		if turf, ok := byID[hit.ID]; ok {
			hydrated = append(hydrated, turf)
		} else {
			// Index is ahead of the database; keep the partial hit
			hydrated = append(hydrated, hit)
		}
	}

	return hydrated, nil
}
