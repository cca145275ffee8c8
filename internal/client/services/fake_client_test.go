package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dkazlou/gearhub/internal/client/models"
	"github.com/dkazlou/gearhub/internal/client/repositories/metadata"
	"github.com/dkazlou/gearhub/internal/client/session"
	"github.com/dkazlou/gearhub/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- shared helpers ----

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return db
}

func setupSession(t *testing.T, db *sql.DB) *session.Store {
	t.Helper()
	return session.NewStore(metadata.NewSQLiteRepository(db), discardLogger())
}

// ---- fake api.Client ----

// fakeClient implements api.Client for service unit tests.
type fakeClient struct {
	session *session.Store

	LoginResp *models.AuthResponse
	LoginErr  error

	RegisterResp *models.AuthResponse
	RegisterErr  error

	VehiclesRet []models.BackendVehicle
	VehiclesErr error

	CreateRet *models.BackendVehicle
	CreateErr error

	UpdateRet *models.BackendVehicle
	UpdateErr error

	DeleteErr error

	UploadRet string
	UploadErr error

	MeetupsRet []models.Meetup
	MeetupsErr error

	HealthErr error

	// recorded calls
	LastLoginEmail    string
	CreateCalls       []models.VehicleRequest
	UpdateCalls       []int64
	DeleteCalls       []int64
	UploadCalls       []int64
	LastUploadedBytes []byte
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	f.LastLoginEmail = email
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if f.LoginResp.Token != "" && f.session != nil {
		if err := f.session.SetToken(ctx, f.LoginResp.Token); err != nil {
			return nil, err
		}
	}
	return f.LoginResp, nil
}

func (f *fakeClient) Register(ctx context.Context, email, password, username string) (*models.AuthResponse, error) {
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	if f.RegisterResp.Token != "" && f.session != nil {
		if err := f.session.SetToken(ctx, f.RegisterResp.Token); err != nil {
			return nil, err
		}
	}
	return f.RegisterResp, nil
}

func (f *fakeClient) Logout(ctx context.Context) error {
	if f.session != nil {
		return f.session.ClearToken(ctx)
	}
	return nil
}

func (f *fakeClient) GetVehicles(ctx context.Context) ([]models.BackendVehicle, error) {
	return f.VehiclesRet, f.VehiclesErr
}

func (f *fakeClient) CreateVehicle(ctx context.Context, req models.VehicleRequest) (*models.BackendVehicle, error) {
	f.CreateCalls = append(f.CreateCalls, req)
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) UpdateVehicle(ctx context.Context, id int64, req models.VehicleRequest) (*models.BackendVehicle, error) {
	f.UpdateCalls = append(f.UpdateCalls, id)
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) DeleteVehicle(ctx context.Context, id int64) error {
	f.DeleteCalls = append(f.DeleteCalls, id)
	return f.DeleteErr
}

func (f *fakeClient) UploadVehicleImage(ctx context.Context, id int64, image []byte) (string, error) {
	f.UploadCalls = append(f.UploadCalls, id)
	f.LastUploadedBytes = append([]byte(nil), image...)
	return f.UploadRet, f.UploadErr
}

func (f *fakeClient) GetMeetups(ctx context.Context) ([]models.Meetup, error) {
	return f.MeetupsRet, f.MeetupsErr
}

func (f *fakeClient) HealthCheck(ctx context.Context) error {
	return f.HealthErr
}
