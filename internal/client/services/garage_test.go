package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dkazlou/gearhub/internal/client/api"
	"github.com/dkazlou/gearhub/internal/client/models"
	"github.com/dkazlou/gearhub/internal/client/repositories/metadata"
	"github.com/stretchr/testify/require"
)

func newGarage(t *testing.T, fc *fakeClient) (*GarageService, metadata.Repository) {
	t.Helper()
	repo := metadata.NewSQLiteRepository(setupDB(t))
	return NewGarageService(fc, repo, discardLogger()), repo
}

func cachedVehicles(t *testing.T, repo metadata.Repository, key string) []models.Vehicle {
	t.Helper()
	data, err := repo.Get(context.Background(), key)
	require.NoError(t, err)
	if data == nil {
		return nil
	}
	var out []models.Vehicle
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestLoad_ReplacesListAndPersistsCache(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{VehiclesRet: []models.BackendVehicle{
		{ID: 1, Name: "Civic Type R", Horsepower: 315},
		{ID: 2, Name: "M3 E46", Horsepower: 338},
	}}
	g, repo := newGarage(t, fc)

	g.Load(ctx)

	vehicles := g.Vehicles()
	require.Len(t, vehicles, 2)
	require.Equal(t, "Civic Type R", vehicles[0].Name)
	require.Equal(t, int64(1), *vehicles[0].BackendID)

	cached := cachedVehicles(t, repo, "vehicles:local")
	require.Equal(t, vehicles, cached)
}

func TestLoad_FallsBackToCacheOnBackendFailure(t *testing.T) {
	ctx := context.Background()

	// first load succeeds and seeds the cache
	fc := &fakeClient{VehiclesRet: []models.BackendVehicle{{ID: 1, Name: "Miata NA"}}}
	g, repo := newGarage(t, fc)
	g.Load(ctx)
	want := g.Vehicles()

	// a second service over the same cache sees the backend fail
	fc2 := &fakeClient{VehiclesErr: &api.ServerError{Message: "Invalid response"}}
	g2 := NewGarageService(fc2, repo, discardLogger())
	g2.Load(ctx)

	require.Equal(t, want, g2.Vehicles())
}

func TestLoad_BackendFailureWithoutCacheLeavesListEmpty(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{VehiclesErr: &api.ServerError{Message: "Invalid response"}}
	g, _ := newGarage(t, fc)

	g.Load(ctx)
	require.Empty(t, g.Vehicles())
}

func TestAddPlaceholder_BackendSuccessKeepsServerFields(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{CreateRet: &models.BackendVehicle{
		ID:          77,
		Name:        "New Car",
		Description: "Tell us about your build",
		ImageURL:    "uploads/default.jpg",
	}}
	g, repo := newGarage(t, fc)

	idx := g.AddPlaceholder(ctx)
	require.Equal(t, 0, idx)

	vehicles := g.Vehicles()
	require.Len(t, vehicles, 1)
	require.NotNil(t, vehicles[0].BackendID)
	require.Equal(t, int64(77), *vehicles[0].BackendID)
	require.Equal(t, "uploads/default.jpg", vehicles[0].ImageRef)
	require.Len(t, fc.CreateCalls, 1)

	require.Equal(t, vehicles, cachedVehicles(t, repo, "vehicles:local"))
}

func TestAddPlaceholder_BackendFailureKeepsLocalOnly(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{CreateErr: &api.ServerError{Message: "Invalid response"}}
	g, repo := newGarage(t, fc)

	idx := g.AddPlaceholder(ctx)
	require.Equal(t, 0, idx)

	vehicles := g.Vehicles()
	require.Len(t, vehicles, 1)
	require.Nil(t, vehicles[0].BackendID)

	// the cache includes the local-only vehicle
	cached := cachedVehicles(t, repo, "vehicles:local")
	require.Len(t, cached, 1)
	require.Nil(t, cached[0].BackendID)
}

func TestUpdate_LocalCommitSurvivesBackendFailure(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{CreateRet: &models.BackendVehicle{ID: 5, Name: "New Car"}}
	g, repo := newGarage(t, fc)
	g.AddPlaceholder(ctx)

	fc.UpdateErr = &api.ServerError{Message: "Invalid response"}

	edited := g.Vehicles()[0]
	edited.Name = "Supra Mk4"
	edited.Horsepower = 620

	require.NoError(t, g.Update(ctx, 0, edited, nil))

	got := g.Vehicles()[0]
	require.Equal(t, "Supra Mk4", got.Name)
	require.Equal(t, 620, got.Horsepower)
	require.Equal(t, []int64{5}, fc.UpdateCalls)

	cached := cachedVehicles(t, repo, "vehicles:local")
	require.Equal(t, "Supra Mk4", cached[0].Name)
}

func TestUpdate_LocalOnlyVehicleSkipsBackend(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{CreateErr: &api.ServerError{Message: "down"}}
	g, _ := newGarage(t, fc)
	g.AddPlaceholder(ctx)

	edited := g.Vehicles()[0]
	edited.Name = "Garage Queen"
	require.NoError(t, g.Update(ctx, 0, edited, []byte{1, 2, 3}))

	require.Empty(t, fc.UpdateCalls)
	require.Empty(t, fc.UploadCalls)
	require.Equal(t, "Garage Queen", g.Vehicles()[0].Name)
}

func TestUpdate_ImageUploadOverwritesLocalRef(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{
		CreateRet: &models.BackendVehicle{ID: 5, Name: "New Car"},
		UpdateRet: &models.BackendVehicle{ID: 5},
		UploadRet: "uploads/car_5.jpg",
	}
	g, repo := newGarage(t, fc)
	g.AddPlaceholder(ctx)

	edited := g.Vehicles()[0]
	require.NoError(t, g.Update(ctx, 0, edited, []byte{0xff, 0xd8}))

	require.Equal(t, []int64{5}, fc.UploadCalls)
	require.Equal(t, []byte{0xff, 0xd8}, fc.LastUploadedBytes)
	require.Equal(t, "uploads/car_5.jpg", g.Vehicles()[0].ImageRef)
	require.Equal(t, "uploads/car_5.jpg", cachedVehicles(t, repo, "vehicles:local")[0].ImageRef)
}

func TestUpdate_UploadFailureLeavesLocalRef(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{
		CreateRet: &models.BackendVehicle{ID: 5, ImageURL: "uploads/old.jpg"},
		UpdateRet: &models.BackendVehicle{ID: 5},
		UploadErr: &api.ServerError{Message: "too large"},
	}
	g, _ := newGarage(t, fc)
	g.AddPlaceholder(ctx)

	edited := g.Vehicles()[0]
	require.NoError(t, g.Update(ctx, 0, edited, []byte{1}))
	require.Equal(t, "uploads/old.jpg", g.Vehicles()[0].ImageRef)
}

func TestUpdate_IndexOutOfRange(t *testing.T) {
	g, _ := newGarage(t, &fakeClient{})
	require.Error(t, g.Update(context.Background(), 0, models.Vehicle{}, nil))
}

func TestRemove_BackendFailureStillRemovesLocally(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{CreateRet: &models.BackendVehicle{ID: 5}}
	g, repo := newGarage(t, fc)
	g.AddPlaceholder(ctx)

	fc.DeleteErr = &api.ServerError{Message: "Invalid response"}

	g.Remove(ctx, []int{0})

	require.Equal(t, []int64{5}, fc.DeleteCalls)
	require.Empty(t, g.Vehicles())
	require.Empty(t, cachedVehicles(t, repo, "vehicles:local"))
}

func TestRemove_MultipleIndices(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{VehiclesRet: []models.BackendVehicle{
		{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"},
	}}
	g, _ := newGarage(t, fc)
	g.Load(ctx)

	g.Remove(ctx, []int{0, 2})

	vehicles := g.Vehicles()
	require.Len(t, vehicles, 1)
	require.Equal(t, "b", vehicles[0].Name)
	require.ElementsMatch(t, []int64{1, 3}, fc.DeleteCalls)
}

func TestRemove_IgnoresInvalidAndDuplicateIndices(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{VehiclesRet: []models.BackendVehicle{{ID: 1, Name: "a"}}}
	g, _ := newGarage(t, fc)
	g.Load(ctx)

	g.Remove(ctx, []int{-1, 0, 0, 5})
	require.Empty(t, g.Vehicles())
	require.Equal(t, []int64{1}, fc.DeleteCalls)
}

func TestCacheKey_ScopedByUser(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{VehiclesRet: []models.BackendVehicle{{ID: 1, Name: "a"}}}
	g, repo := newGarage(t, fc)
	g.SetUser(42)
	g.Load(ctx)

	require.NotEmpty(t, cachedVehicles(t, repo, "vehicles:42"))
	require.Empty(t, cachedVehicles(t, repo, "vehicles:local"))
}

func TestDraftAndPhotoKeys(t *testing.T) {
	ctx := context.Background()

	g, repo := newGarage(t, &fakeClient{})
	g.SetUser(7)

	v := models.NewPlaceholderVehicle()
	require.NoError(t, g.SaveDraft(ctx, v))
	require.NoError(t, g.SavePhoto(ctx, v.ID, []byte{9, 9}))

	photo, err := g.Photo(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, []byte{9, 9}, photo)

	draft, err := repo.Get(ctx, "vehicle:7:"+v.ID)
	require.NoError(t, err)
	require.NotNil(t, draft)
}
