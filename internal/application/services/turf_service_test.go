package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
)

func TestTurfService_Search_EnrichesDistanceAndTravel(t *testing.T) {
	ctx := context.Background()

	repo := new(mockTurfRepo)
	service := services.NewTurfService(repo, nil)

	params := repositories.SearchParams{
		Latitude:  21.1458,
		Longitude: 79.0882,
		RadiusKm:  10,
		Limit:     5,
	}

	turf := &entities.Turf{
		ID:   "turf-1",
		Name: "Greenfield Arena",
		// Dharampeth, roughly 2.2 km from Sitabuldi
		Location: entities.Location{Latitude: 21.1355, Longitude: 79.0625},
	}

	repo.On("Search", mock.Anything, params).Return([]*entities.Turf{turf}, nil)

	results, err := service.Search(ctx, params)

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "turf-1", results[0].Turf.ID)
	assert.Greater(t, results[0].DistanceKm, 2.0)
	assert.Less(t, results[0].DistanceKm, 3.5)

	walking := results[0].TravelMinutes["walking"]
	driving := results[0].TravelMinutes["driving"]
	assert.Greater(t, walking, driving)
	assert.Greater(t, driving, 0)
}

func TestTurfService_Search_FallsBackToDatabaseWhenEngineFails(t *testing.T) {
	ctx := context.Background()

	repo := new(mockTurfRepo)
	searchRepo := new(mockSearchRepo)
	service := services.NewTurfService(repo, searchRepo)

	params := repositories.SearchParams{Latitude: 21.1458, Longitude: 79.0882, RadiusKm: 5}

	searchRepo.On("Search", mock.Anything, params).Return(nil, errors.New("typesense down"))
	repo.On("Search", mock.Anything, params).Return([]*entities.Turf{
		{ID: "turf-db", Location: entities.Location{Latitude: 21.15, Longitude: 79.09}},
	}, nil)

	results, err := service.Search(ctx, params)

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "turf-db", results[0].Turf.ID)
}

func TestTurfService_Search_HydratesEngineHitsFromDatabase(t *testing.T) {
	ctx := context.Background()

	repo := new(mockTurfRepo)
	searchRepo := new(mockSearchRepo)
	service := services.NewTurfService(repo, searchRepo)

	params := repositories.SearchParams{Latitude: 21.1458, Longitude: 79.0882, RadiusKm: 5}

	partial := &entities.Turf{ID: "turf-1", Name: "Greenfield Arena"}
	full := &entities.Turf{
		ID:          "turf-1",
		Name:        "Greenfield Arena",
		Description: "5-a-side football turf",
		HourlyPrice: 1000,
		Location:    entities.Location{Latitude: 21.1355, Longitude: 79.0625},
	}

	searchRepo.On("Search", mock.Anything, params).Return([]*entities.Turf{partial}, nil)
	repo.On("GetByIDs", mock.Anything, []string{"turf-1"}).Return([]*entities.Turf{full}, nil)

	results, err := service.Search(ctx, params)

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "5-a-side football turf", results[0].Turf.Description)
}

func TestTurfService_Create_IndexFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()

	repo := new(mockTurfRepo)
	searchRepo := new(mockSearchRepo)
	service := services.NewTurfService(repo, searchRepo)

	turf := &entities.Turf{ID: "turf-1", Name: "Greenfield Arena"}

	repo.On("Create", mock.Anything, turf).Return(nil)
	searchRepo.On("Index", mock.Anything, turf).Return(errors.New("index unavailable"))

	err := service.Create(ctx, turf)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	searchRepo.AssertExpectations(t)
}
