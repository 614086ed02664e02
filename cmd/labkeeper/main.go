package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studiolab/labkeeper/core/lab"
	"github.com/studiolab/labkeeper/internal/client"
	"github.com/studiolab/labkeeper/internal/clock"
	"github.com/studiolab/labkeeper/internal/config"
	"github.com/studiolab/labkeeper/internal/controller"
	"github.com/studiolab/labkeeper/internal/logging"
	"github.com/studiolab/labkeeper/internal/poller"
	"github.com/studiolab/labkeeper/internal/registry"
	"github.com/studiolab/labkeeper/internal/store"
	"github.com/studiolab/labkeeper/internal/visibility"
	"golang.org/x/sync/errgroup"
)

var log = logging.NewLogger()

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if cfg.UserID() == "" {
		log.Fatal().Msg("no user configured; set LABKEEPER_USER_ID or user_id in labkeeper.yml")
	}

	// ctx.Done() returns on SIGINT/SIGTERM, the agent's "page unload".
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	snapshots, err := store.Open(os.ExpandEnv(cfg.SnapshotPath()))
	if err != nil {
		log.Warn().Err(err).Msg("snapshot store unavailable; running without local cache")
		snapshots = nil
	}

	notifier := &logNotifier{}
	apiClient := client.New(cfg.APIBaseURL(), &configTokens{cfg: cfg}, nil, cfg.TransportTimeout(), log)
	watcher := poller.New(apiClient, clock.Real(), notifier, log, cfg.PollGrace(), cfg.PollInterval(), cfg.PollAttempts())
	ctrl := controller.New(apiClient, registry.New(), watcher, notifier, &configEnrollment{cfg: cfg}, snapshots, cfg.SweepInterval(), log)
	bridge := visibility.New(ctrl, clock.Real(), cfg.HideDebounce(), log)

	signals := make(chan visibility.Signal, 4)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		bridge.Run(egCtx, signals)
		return nil
	})
	eg.Go(func() error {
		watchActivitySignals(egCtx, signals)
		return nil
	})

	if err := ctrl.Initialize(ctx, cfg.UserID()); err != nil {
		log.Fatal().Err(err).Msg("initializing lab session")
	}
	log.Info().Msg("labkeeper running; SIGUSR1 marks the session hidden, SIGUSR2 visible")

	<-ctx.Done()

	// Unload path first: fire-and-forget pauses that survive even a hard
	// exit, then an orderly cleanup with its own deadline.
	ctrl.QuickPauseAll()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	ctrl.Cleanup(shutdownCtx)

	if err := eg.Wait(); err != nil {
		log.Err(err).Msg("error waiting for background tasks")
	}
	log.Info().Msg("labkeeper stopped")
}

// watchActivitySignals translates OS signals into visibility signals:
// SIGUSR1 hides the session, SIGUSR2 brings it back.
func watchActivitySignals(ctx context.Context, out chan<- visibility.Signal) {
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, syscall.SIGUSR1, syscall.SIGUSR2)
	defer signal.Stop(sigs)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigs:
			switch sig {
			case syscall.SIGUSR1:
				out <- visibility.SignalHidden
			case syscall.SIGUSR2:
				out <- visibility.SignalVisible
			}
		}
	}
}

// configTokens serves the bearer token from config. Real deployments swap
// in a provider backed by the platform's auth layer.
type configTokens struct {
	cfg *config.Config
}

func (t *configTokens) Token() (string, error) {
	return t.cfg.APIToken(), nil
}

// configEnrollment serves the static course list from config.
type configEnrollment struct {
	cfg *config.Config
}

func (e *configEnrollment) EnrolledCourses(ctx context.Context, userID string) ([]string, error) {
	return e.cfg.EnrolledCourses(), nil
}

// logNotifier renders notifications into the agent log.
type logNotifier struct{}

func (n *logNotifier) Notify(message string, level lab.Level) {
	switch level {
	case lab.LevelError:
		log.Error().Msg(message)
	case lab.LevelWarning:
		log.Warn().Msg(message)
	default:
		log.Info().Msg(message)
	}
}
