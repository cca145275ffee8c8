package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/dkazlou/gearhub/internal/client/api"
	"github.com/dkazlou/gearhub/internal/client/models"
	"github.com/dkazlou/gearhub/internal/client/repositories/metadata"
	"github.com/dkazlou/gearhub/internal/logging"
)

// defaultCacheScope is used for the cache keys while no user is set, so a
// signed-out session still has a working local garage.
const defaultCacheScope = "local"

// GarageService owns the user's vehicle list. All local mutations commit
// immediately; backend synchronization is best-effort and its failures are
// logged, never surfaced, and never rolled back. Backend and local state may
// therefore diverge silently — that is the intended offline-first behavior.
type GarageService struct {
	mu       sync.Mutex
	vehicles []models.Vehicle
	userID   int64 // 0 means no signed-in user

	client api.Client
	repo   metadata.Repository
	log    logging.Logger
}

func NewGarageService(client api.Client, repo metadata.Repository, log logging.Logger) *GarageService {
	return &GarageService{client: client, repo: repo, log: log}
}

// SetUser switches the cache scope to the given user identifier. Distinct
// local sessions on one device do not see each other's cached lists.
func (s *GarageService) SetUser(id int64) {
	s.mu.Lock()
	s.userID = id
	s.mu.Unlock()
}

func (s *GarageService) scope() string {
	if s.userID == 0 {
		return defaultCacheScope
	}
	return fmt.Sprintf("%d", s.userID)
}

func (s *GarageService) cacheKey() string {
	return "vehicles:" + s.scope()
}

// Vehicles returns a copy of the current in-memory list.
func (s *GarageService) Vehicles() []models.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Vehicle, len(s.vehicles))
	copy(out, s.vehicles)
	return out
}

// Load fetches all vehicles from the backend and replaces the in-memory
// list wholesale, persisting a fresh cache snapshot. On failure it falls
// back to the last snapshot; the error goes no further than a log line.
func (s *GarageService) Load(ctx context.Context) {
	records, err := s.client.GetVehicles(ctx)
	if err != nil {
		s.log.Warn(ctx, "vehicle fetch failed, falling back to cache", "error", err)
		s.loadFromCache(ctx)
		return
	}

	vehicles := make([]models.Vehicle, 0, len(records))
	for i := range records {
		vehicles = append(vehicles, records[i].ToVehicle())
	}

	s.mu.Lock()
	s.vehicles = vehicles
	s.mu.Unlock()

	s.persist(ctx)
}

func (s *GarageService) loadFromCache(ctx context.Context) {
	s.mu.Lock()
	key := s.cacheKey()
	s.mu.Unlock()

	data, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "failed to read vehicle cache", "key", key, "error", err)
		return
	}
	if data == nil {
		return
	}

	var cached []models.Vehicle
	if err := json.Unmarshal(data, &cached); err != nil {
		s.log.Warn(ctx, "failed to decode vehicle cache", "key", key, "error", err)
		return
	}

	s.mu.Lock()
	s.vehicles = cached
	s.mu.Unlock()
}

// persist snapshots the full list under the scoped cache key.
func (s *GarageService) persist(ctx context.Context) {
	s.mu.Lock()
	key := s.cacheKey()
	data, err := json.Marshal(s.vehicles)
	s.mu.Unlock()

	if err != nil {
		s.log.Error(ctx, "failed to encode vehicle cache", "error", err)
		return
	}
	if err := s.repo.Set(ctx, key, data); err != nil {
		s.log.Warn(ctx, "failed to persist vehicle cache", "key", key, "error", err)
	}
}

// AddPlaceholder appends a minimal default vehicle and mirrors it to the
// backend best-effort. When the create succeeds, the local record keeps the
// server-assigned ID and display fields; when it fails, a purely local
// placeholder is appended instead. Returns the index of the new item so the
// caller can open an editor on it immediately.
func (s *GarageService) AddPlaceholder(ctx context.Context) int {
	vehicle := models.NewPlaceholderVehicle()

	s.mu.Lock()
	userID := s.userID
	s.mu.Unlock()

	created, err := s.client.CreateVehicle(ctx, models.VehicleRequestFrom(&vehicle, userID))
	if err != nil {
		s.log.Warn(ctx, "vehicle create failed, keeping local-only placeholder", "error", err)
	} else {
		vehicle = created.ToVehicle()
	}

	s.mu.Lock()
	s.vehicles = append(s.vehicles, vehicle)
	index := len(s.vehicles) - 1
	s.mu.Unlock()

	s.persist(ctx)
	return index
}

// Update commits the edited vehicle locally first, unconditionally, then
// attempts backend sync: a field update, followed by a separate image upload
// when imageBytes is given. A successful upload overwrites the local image
// reference. Neither backend failure is surfaced or rolled back.
//
// The only error returned is an out-of-range index.
func (s *GarageService) Update(ctx context.Context, index int, edited models.Vehicle, imageBytes []byte) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.vehicles) {
		s.mu.Unlock()
		return fmt.Errorf("vehicle index %d out of range", index)
	}
	// identity fields survive edits
	edited.ID = s.vehicles[index].ID
	edited.BackendID = s.vehicles[index].BackendID
	s.vehicles[index] = edited
	userID := s.userID
	s.mu.Unlock()

	s.persist(ctx)

	if edited.BackendID == nil {
		return nil
	}
	backendID := *edited.BackendID

	if _, err := s.client.UpdateVehicle(ctx, backendID, models.VehicleRequestFrom(&edited, userID)); err != nil {
		s.log.Warn(ctx, "vehicle update sync failed", "backend_id", backendID, "error", err)
	}

	if len(imageBytes) == 0 {
		return nil
	}

	ref, err := s.client.UploadVehicleImage(ctx, backendID, imageBytes)
	if err != nil {
		s.log.Warn(ctx, "vehicle image upload failed", "backend_id", backendID, "error", err)
		return nil
	}

	s.mu.Lock()
	if index < len(s.vehicles) && s.vehicles[index].ID == edited.ID {
		s.vehicles[index].ImageRef = ref
	}
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// Remove deletes the vehicles at the given indices. Backend deletes are
// attempted first for vehicles that have a server-side record; failures are
// logged and ignored. Local removal always proceeds for every targeted
// index, and the cache is re-persisted once at the end.
func (s *GarageService) Remove(ctx context.Context, indices []int) {
	s.mu.Lock()
	targets := make([]int, 0, len(indices))
	seen := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(s.vehicles) {
			continue
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		targets = append(targets, i)
	}
	backendIDs := make([]int64, 0, len(targets))
	for _, i := range targets {
		if id := s.vehicles[i].BackendID; id != nil {
			backendIDs = append(backendIDs, *id)
		}
	}
	s.mu.Unlock()

	// sequential, one delete per record
	for _, id := range backendIDs {
		if err := s.client.DeleteVehicle(ctx, id); err != nil {
			s.log.Warn(ctx, "vehicle delete sync failed", "backend_id", id, "error", err)
		}
	}

	s.mu.Lock()
	sort.Sort(sort.Reverse(sort.IntSlice(targets)))
	for _, i := range targets {
		s.vehicles = append(s.vehicles[:i], s.vehicles[i+1:]...)
	}
	s.mu.Unlock()

	s.persist(ctx)
}

// SaveDraft snapshots a single vehicle being edited, keyed per user and per
// vehicle, so an interrupted editor session can recover its state.
func (s *GarageService) SaveDraft(ctx context.Context, v models.Vehicle) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode vehicle draft: %w", err)
	}

	s.mu.Lock()
	key := fmt.Sprintf("vehicle:%s:%s", s.scope(), v.ID)
	s.mu.Unlock()

	return s.repo.Set(ctx, key, data)
}

// SavePhoto stores the raw photo blob for a vehicle. Views use it as a
// fallback image source when no uploaded reference exists yet.
func (s *GarageService) SavePhoto(ctx context.Context, vehicleID string, photo []byte) error {
	s.mu.Lock()
	key := fmt.Sprintf("vehicle_photo:%s:%s", s.scope(), vehicleID)
	s.mu.Unlock()

	return s.repo.Set(ctx, key, photo)
}

// Photo returns the stored photo blob for a vehicle, or nil when absent.
func (s *GarageService) Photo(ctx context.Context, vehicleID string) ([]byte, error) {
	s.mu.Lock()
	key := fmt.Sprintf("vehicle_photo:%s:%s", s.scope(), vehicleID)
	s.mu.Unlock()

	return s.repo.Get(ctx, key)
}
