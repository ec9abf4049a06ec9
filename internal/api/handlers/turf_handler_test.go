package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/api/handlers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/auth"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

type MockTurfRepository struct {
	mock.Mock
}

func (m *MockTurfRepository) Create(ctx context.Context, turf *entities.Turf) error {
	args := m.Called(ctx, turf)
	return args.Error(0)
}

func (m *MockTurfRepository) GetByID(ctx context.Context, id string) (*entities.Turf, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Turf), args.Error(1)
}

func (m *MockTurfRepository) GetByIDs(ctx context.Context, ids []string) ([]*entities.Turf, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Turf), args.Error(1)
}

func (m *MockTurfRepository) Update(ctx context.Context, turf *entities.Turf) error {
	args := m.Called(ctx, turf)
	return args.Error(0)
}

func (m *MockTurfRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTurfRepository) List(ctx context.Context, filter repositories.TurfFilter) ([]*entities.Turf, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Turf), args.Error(1)
}

func (m *MockTurfRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Turf, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Turf), args.Error(1)
}

func (m *MockTurfRepository) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Turf, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Turf), args.Error(1)
}

type searchTurfsResponse struct {
	Results []*entities.TurfSearchResult `json:"results"`
	Count   int                          `json:"count"`
}

func TestTurfHandler_SearchTurfs_ReturnsDistancesAndTravel(t *testing.T) {
	repo := new(MockTurfRepository)
	handler := handlers.NewTurfHandler(services.NewTurfService(repo, nil))

	turf := &entities.Turf{
		ID:   "turf-1",
		Name: "Sitabuldi Sports Hub",
		Address: entities.Address{
			Street: "Central Avenue, Sitabuldi",
			City:   "Nagpur",
			State:  "Maharashtra",
		},
		Location:    entities.Location{Latitude: 21.1458, Longitude: 79.0882},
		Sports:      []string{"cricket", "futsal"},
		HourlyPrice: 1200,
		Rating:      4.4,
		IsActive:    true,
	}

	repo.On("Search", mock.Anything, mock.MatchedBy(func(p repositories.SearchParams) bool {
		return p.Latitude == 21.1458 && p.Longitude == 79.0882 && p.RadiusKm == 10 && p.Query == "cricket" && p.Limit == 30
	})).Return([]*entities.Turf{turf}, nil)

	req := httptest.NewRequest("GET", "/api/turfs/search?lat=21.1458&lon=79.0882&q=cricket", nil)
	w := httptest.NewRecorder()

	handler.SearchTurfs(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp searchTurfsResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, "turf-1", resp.Results[0].Turf.ID)
	assert.Equal(t, 1200.0, resp.Results[0].Turf.HourlyPrice)

	// Caller is standing on the turf
	assert.Equal(t, 0.0, resp.Results[0].DistanceKm)
	assert.Equal(t, 0, resp.Results[0].TravelMinutes["driving"])
	assert.Equal(t, 0, resp.Results[0].TravelMinutes["walking"])
}

func TestTurfHandler_SearchTurfs_RequiresCoordinates(t *testing.T) {
	repo := new(MockTurfRepository)
	handler := handlers.NewTurfHandler(services.NewTurfService(repo, nil))

	req := httptest.NewRequest("GET", "/api/turfs/search?q=cricket", nil)
	w := httptest.NewRecorder()

	handler.SearchTurfs(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestTurfHandler_GetTurf_ReturnsTurf(t *testing.T) {
	repo := new(MockTurfRepository)
	handler := handlers.NewTurfHandler(services.NewTurfService(repo, nil))

	repo.On("GetByID", mock.Anything, "turf-1").Return(&entities.Turf{
		ID:          "turf-1",
		Name:        "Greenfield Arena",
		HourlyPrice: 1000,
	}, nil)

	req := httptest.NewRequest("GET", "/api/turfs/turf-1", nil)
	req.SetPathValue("id", "turf-1")
	w := httptest.NewRecorder()

	handler.GetTurf(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var turf entities.Turf
	err := json.NewDecoder(w.Body).Decode(&turf)
	assert.NoError(t, err)
	assert.Equal(t, "Greenfield Arena", turf.Name)
}

func ownedTurfFixture() *entities.Turf {
	return &entities.Turf{
		ID:          "turf-1",
		OwnerID:     "owner-1",
		Name:        "Greenfield Arena",
		Description: "Rooftop turf in Dharampeth",
		Location:    entities.Location{Latitude: 21.1458, Longitude: 79.0882},
		Sports:      []string{"cricket", "futsal"},
		HourlyPrice: 1000,
		Rating:      4.4,
		ReviewCount: 27,
		IsActive:    true,
	}
}

func withClaims(req *http.Request, sub, role string) *http.Request {
	return req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{Sub: sub, Role: role}))
}

func TestTurfHandler_UpdateTurf_PatchesOnlyProvidedFields(t *testing.T) {
	repo := new(MockTurfRepository)
	handler := handlers.NewTurfHandler(services.NewTurfService(repo, nil))

	repo.On("GetByID", mock.Anything, "turf-1").Return(ownedTurfFixture(), nil)

	var updated *entities.Turf
	repo.On("Update", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updated = args.Get(1).(*entities.Turf)
	}).Return(nil)

	body := `{"hourly_price":1400,"owner_id":"owner-2","rating":1.0}`
	req := httptest.NewRequest("PATCH", "/api/turfs/turf-1", strings.NewReader(body))
	req.SetPathValue("id", "turf-1")
	req = withClaims(req, "owner-1", "owner")
	w := httptest.NewRecorder()

	handler.UpdateTurf(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, updated)
	assert.Equal(t, 1400.0, updated.HourlyPrice)
	// everything the payload omitted keeps its stored value
	assert.Equal(t, "Greenfield Arena", updated.Name)
	assert.Equal(t, "Rooftop turf in Dharampeth", updated.Description)
	assert.Equal(t, []string{"cricket", "futsal"}, []string(updated.Sports))
	assert.True(t, updated.IsActive)
	// ownership and ratings are never client-writable
	assert.Equal(t, "owner-1", updated.OwnerID)
	assert.Equal(t, 4.4, updated.Rating)
	assert.Equal(t, 27, updated.ReviewCount)
}

func TestTurfHandler_UpdateTurf_RejectsAnotherOwnersTurf(t *testing.T) {
	repo := new(MockTurfRepository)
	handler := handlers.NewTurfHandler(services.NewTurfService(repo, nil))

	repo.On("GetByID", mock.Anything, "turf-1").Return(ownedTurfFixture(), nil)

	body := `{"hourly_price":1}`
	req := httptest.NewRequest("PATCH", "/api/turfs/turf-1", strings.NewReader(body))
	req.SetPathValue("id", "turf-1")
	req = withClaims(req, "owner-2", "owner")
	w := httptest.NewRecorder()

	handler.UpdateTurf(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTurfHandler_DeleteTurf_RejectsAnotherOwnersTurf(t *testing.T) {
	repo := new(MockTurfRepository)
	handler := handlers.NewTurfHandler(services.NewTurfService(repo, nil))

	repo.On("GetByID", mock.Anything, "turf-1").Return(ownedTurfFixture(), nil)

	req := httptest.NewRequest("DELETE", "/api/turfs/turf-1", nil)
	req.SetPathValue("id", "turf-1")
	req = withClaims(req, "owner-2", "owner")
	w := httptest.NewRecorder()

	handler.DeleteTurf(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTurfHandler_GetTurf_NotFound(t *testing.T) {
	repo := new(MockTurfRepository)
	handler := handlers.NewTurfHandler(services.NewTurfService(repo, nil))

	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("turf not found"))

	req := httptest.NewRequest("GET", "/api/turfs/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.GetTurf(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
