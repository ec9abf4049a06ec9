package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/providers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
)

// CachedTurfAdapter wraps TurfAdapter with caching
type CachedTurfAdapter struct {
	adapter repositories.TurfRepository
	cache   providers.CacheProvider
}

// NewCachedTurfAdapter creates a new cached turf adapter
func NewCachedTurfAdapter(adapter repositories.TurfRepository, cache providers.CacheProvider) repositories.TurfRepository {
	return &CachedTurfAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	turfByIDTTL      = 300 // 5 minutes for single turf
	turfsListTTL     = 180 // 3 minutes for lists
	searchResultsTTL = 120 // 2 minutes for search results
)

// Cache key generators
func turfCacheKey(id string) string {
	return fmt.Sprintf("turf:%s", id)
}

func turfsListCacheKey(filter repositories.TurfFilter) string {
	return fmt.Sprintf("turfs:list:%s:%d:%d", filter.Sport, filter.Limit, filter.Offset)
}

func turfsSearchCacheKey(params string) string {
	return fmt.Sprintf("turfs:search:%s", params)
}

// GetByID retrieves a turf by ID with caching
func (a *CachedTurfAdapter) GetByID(ctx context.Context, id string) (*entities.Turf, error) {
	cacheKey := turfCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var turf entities.Turf
		if err := json.Unmarshal(cached, &turf); err == nil {
			return &turf, nil
		}
		log.Printf("Failed to unmarshal cached turf %s: %v", id, err)
	}

	turf, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(turf); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, turfByIDTTL); err != nil {
				log.Printf("Failed to cache turf %s: %v", id, err)
			}
		}
	}()

	return turf, nil
}

// GetByIDs retrieves multiple turfs by IDs with batch caching
func (a *CachedTurfAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Turf, error) {
	if len(ids) == 0 {
		return []*entities.Turf{}, nil
	}

	cacheKeys := make([]string, len(ids))
	for i, id := range ids {
		cacheKeys[i] = turfCacheKey(id)
	}

	cached, _ := a.cache.GetMulti(ctx, cacheKeys)

	var cachedTurfs []*entities.Turf
	missingIDs := make([]string, 0)

	for i, id := range ids {
		if data, ok := cached[cacheKeys[i]]; ok {
			var turf entities.Turf
			if err := json.Unmarshal(data, &turf); err == nil {
				cachedTurfs = append(cachedTurfs, &turf)
				continue
			}
		}
		missingIDs = append(missingIDs, id)
	}

	if len(missingIDs) == 0 {
		return cachedTurfs, nil
	}

	dbTurfs, err := a.adapter.GetByIDs(ctx, missingIDs)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		items := make(map[string][]byte)
		for _, turf := range dbTurfs {
			if data, err := json.Marshal(turf); err == nil {
				items[turfCacheKey(turf.ID)] = data
			}
		}
		if len(items) > 0 {
			if err := a.cache.SetMulti(bgCtx, items, turfByIDTTL); err != nil {
				log.Printf("Failed to batch cache turfs: %v", err)
			}
		}
	}()

	return append(cachedTurfs, dbTurfs...), nil
}

// List retrieves a list of turfs with caching
func (a *CachedTurfAdapter) List(ctx context.Context, filter repositories.TurfFilter) ([]*entities.Turf, error) {
	cacheKey := turfsListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var turfs []*entities.Turf
		if err := json.Unmarshal(cached, &turfs); err == nil {
			return turfs, nil
		}
		log.Printf("Failed to unmarshal cached turfs list: %v", err)
	}

	turfs, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(turfs); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, turfsListTTL); err != nil {
				log.Printf("Failed to cache turfs list: %v", err)
			}
		}
	}()

	return turfs, nil
}

// ListByOwner retrieves an owner's turfs. Owner dashboards need current data
// so this path bypasses the cache.
func (a *CachedTurfAdapter) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Turf, error) {
	return a.adapter.ListByOwner(ctx, ownerID)
}

// Create creates a turf and invalidates related caches
func (a *CachedTurfAdapter) Create(ctx context.Context, turf *entities.Turf) error {
	if err := a.adapter.Create(ctx, turf); err != nil {
		return err
	}

	go a.invalidateListCaches()

	return nil
}

// Update updates a turf and invalidates its cache
func (a *CachedTurfAdapter) Update(ctx context.Context, turf *entities.Turf) error {
	if err := a.adapter.Update(ctx, turf); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, turfCacheKey(turf.ID)); err != nil {
			log.Printf("Failed to invalidate turf cache %s: %v", turf.ID, err)
		}
		a.invalidateListCaches()
	}()

	return nil
}

// Delete deletes a turf and invalidates its cache
func (a *CachedTurfAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, turfCacheKey(id)); err != nil {
			log.Printf("Failed to invalidate turf cache %s: %v", id, err)
		}
		a.invalidateListCaches()
	}()

	return nil
}

// Search searches for turfs with caching
func (a *CachedTurfAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Turf, error) {
	paramsJSON, _ := json.Marshal(params)
	cacheKey := turfsSearchCacheKey(string(paramsJSON))

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var turfs []*entities.Turf
		if err := json.Unmarshal(cached, &turfs); err == nil {
			return turfs, nil
		}
		log.Printf("Failed to unmarshal cached search results: %v", err)
	}

	turfs, err := a.adapter.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(turfs); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, searchResultsTTL); err != nil {
				log.Printf("Failed to cache search results: %v", err)
			}
		}
	}()

	return turfs, nil
}

func (a *CachedTurfAdapter) invalidateListCaches() {
	bgCtx := context.Background()
	if err := a.cache.DeletePattern(bgCtx, "turfs:list:*"); err != nil {
		log.Printf("Failed to invalidate turfs list cache: %v", err)
	}
	if err := a.cache.DeletePattern(bgCtx, "turfs:search:*"); err != nil {
		log.Printf("Failed to invalidate turfs search cache: %v", err)
	}
}
