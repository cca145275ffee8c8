// Package cli is the interactive front end for the GearHub client: a small
// REPL over the auth, garage, and cart services. It plays the role the mobile
// UI would play in production.
package cli

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/dkazlou/gearhub/internal/client/api"
	"github.com/dkazlou/gearhub/internal/client/config"
	"github.com/dkazlou/gearhub/internal/client/services"
	"github.com/dkazlou/gearhub/internal/client/session"
	"github.com/dkazlou/gearhub/internal/filex"
	"github.com/dkazlou/gearhub/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config    *config.Config
	apiClient api.Client
	auth      *services.AuthService
	garage    *services.GarageService
	cart      *services.CartService
	log       logging.Logger
	Mode      Mode
	reader    *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewDefault(c.Debug)

	dsn := c.DatabaseDSN
	if filepath.Base(dsn) == dsn {
		// bare file names live in a data subdirectory
		dir, err := filex.EnsureSubDir("data")
		if err != nil {
			return nil, err
		}
		dsn = filepath.Join(dir, dsn)
	}

	repos, err := api.InitDatabase(ctx, dsn)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	sess := session.NewStore(repos.Metadata, log)
	sess.Load(ctx)

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, sess, log)

	auth := services.NewAuthService(apiClient, sess, log)
	garage := services.NewGarageService(apiClient, repos.Metadata, log)
	if user := auth.CurrentUser(); user != nil {
		garage.SetUser(user.ID)
	}

	return &App{
		config:    c,
		apiClient: apiClient,
		auth:      auth,
		garage:    garage,
		cart:      services.NewCartService(),
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.auth.State() == services.StateAuthenticated
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher periodically probes /health and flips the
// online/offline indicator shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.apiClient.HealthCheck(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
