// Package api is the typed client for the GearHub backend: a generic HTTP
// request pipeline plus one method per endpoint. Callers receive this
// package's error kinds untranslated.
package api

import (
	"context"

	"github.com/dkazlou/gearhub/internal/client/models"
)

// Client is the domain API surface consumed by the services layer.
type Client interface {
	// Login authenticates with email/password. On a response carrying a
	// token, the session store is updated before the response is returned.
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)

	// Register creates an account. Token handling matches Login.
	Register(ctx context.Context, email, password, username string) (*models.AuthResponse, error)

	// Logout clears the session token. Purely local; no network call.
	Logout(ctx context.Context) error

	// GetVehicles lists all vehicles.
	GetVehicles(ctx context.Context) ([]models.BackendVehicle, error)

	// CreateVehicle creates a vehicle record and returns the stored copy,
	// including its server-assigned ID.
	CreateVehicle(ctx context.Context, req models.VehicleRequest) (*models.BackendVehicle, error)

	// UpdateVehicle overwrites the scalar fields of an existing record.
	UpdateVehicle(ctx context.Context, id int64, req models.VehicleRequest) (*models.BackendVehicle, error)

	// DeleteVehicle removes a record by its server-assigned ID.
	DeleteVehicle(ctx context.Context, id int64) error

	// UploadVehicleImage sends image bytes as multipart form-data and
	// returns the stored image reference.
	UploadVehicleImage(ctx context.Context, id int64, image []byte) (string, error)

	// GetMeetups lists community meetups.
	GetMeetups(ctx context.Context) ([]models.Meetup, error)

	// HealthCheck probes backend liveness.
	HealthCheck(ctx context.Context) error
}
