package loaders

import (
	"context"
	"fmt"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
)

type ctxKey string

const loadersKey ctxKey = "dataloaders"

// Loaders contains the batch loaders used when hydrating booking listings
type Loaders struct {
	TurfLoader *dataloader.Loader[string, *entities.Turf]
	UserLoader *dataloader.Loader[string, *entities.User]
}

// NewLoaders creates a new instance of Loaders
func NewLoaders(turfRepo repositories.TurfRepository, userRepo repositories.UserRepository) *Loaders {
	return &Loaders{
		TurfLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Turf] {
			results := make([]*dataloader.Result[*entities.Turf], len(keys))
			turfs, err := turfRepo.GetByIDs(ctx, keys)

			turfMap := make(map[string]*entities.Turf)
			if err == nil {
				for _, t := range turfs {
					turfMap[t.ID] = t
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.Turf]{Error: err}
				} else if t, ok := turfMap[key]; ok {
					results[i] = &dataloader.Result[*entities.Turf]{Data: t}
				} else {
					results[i] = &dataloader.Result[*entities.Turf]{Error: fmt.Errorf("turf %s not found", key)}
				}
			}
			return results
		}),
		UserLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.User] {
			results := make([]*dataloader.Result[*entities.User], len(keys))
			users, err := userRepo.GetByIDs(ctx, keys)

			userMap := make(map[string]*entities.User)
			if err == nil {
				for _, u := range users {
					userMap[u.ID] = u
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.User]{Error: err}
				} else if u, ok := userMap[key]; ok {
					results[i] = &dataloader.Result[*entities.User]{Data: u}
				} else {
					results[i] = &dataloader.Result[*entities.User]{Error: fmt.Errorf("user %s not found", key)}
				}
			}
			return results
		}),
	}
}

// For returns the loaders for a given context
func For(ctx context.Context) *Loaders {
	return ctx.Value(loadersKey).(*Loaders)
}

// WithLoaders returns a new context with the loaders attached
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}
