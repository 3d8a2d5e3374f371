package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-study-sync/internal/config"
	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/internal/service"
	"github.com/MKhiriev/go-study-sync/internal/store"
	"github.com/MKhiriev/go-study-sync/internal/tui"
	"github.com/MKhiriev/go-study-sync/internal/workers"
)

var errMissingDependencies = errors.New("client app requires services and ui")

// App is the client application runtime. It owns the process lifecycle:
// session restore, the login flow, background workers, the periodic sync job
// and the main dashboard loop.
type App struct {
	services *service.ClientServices
	ui       *tui.TUI
	workers  *workers.Workers
	syncCfg  config.ClientSync
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui *tui.TUI, workers *workers.Workers, syncCfg config.ClientSync, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errMissingDependencies
	}

	return &App{
		services: services,
		ui:       ui,
		workers:  workers,
		syncCfg:  syncCfg,
		logger:   logger,
	}, nil
}

func (a *App) Run() error {
	ctx := context.Background()

	var userID int64

	session, err := a.services.AuthService.RestoreSession(ctx)
	switch {
	case err == nil:
		userID = session.UserID
		a.logger.Info().
			Int64("user_id", userID).
			Str("login", session.Login).
			Msg("local session restored")
	case errors.Is(err, store.ErrLocalSessionNotFound):
		// first run on this machine, the login flow takes over
	default:
		// an unreadable session file must not lock the user out
		a.logger.Warn().Err(err).Msg("session restore failed, falling back to login")
	}

	if a.workers != nil {
		a.workers.Run()
		defer a.workers.Stop()
	}

	for {
		if userID == 0 {
			userID, err = a.ui.LoginFlow(ctx)
			if err != nil {
				if errors.Is(err, tui.ErrUserQuit) {
					return nil
				}
				return err
			}
		}

		// first drain right away; the job's ticker only fires after a full
		// interval. ForceSyncNow skips the attempt while offline so startup
		// does not burn retries.
		go func() { _ = a.services.SyncService.ForceSyncNow(ctx) }()

		a.services.SyncJob.Start(ctx, a.syncCfg.Interval)
		logout, loopErr := a.ui.MainLoop(ctx, userID)
		a.services.SyncJob.Stop()
		if loopErr != nil {
			return loopErr
		}
		if !logout {
			return nil
		}

		if logoutErr := a.services.AuthService.Logout(ctx); logoutErr != nil {
			a.logger.Warn().Err(logoutErr).Msg("logout cleanup failed")
		}
		userID = 0
	}
}
