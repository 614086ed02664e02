package visibility

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/studiolab/labkeeper/internal/clock"
)

// Signal is a coarse activity event about the user's session.
type Signal int

const (
	// SignalHidden means the user stopped looking (tab hidden, session idle).
	SignalHidden Signal = iota
	// SignalVisible means the user came back.
	SignalVisible
	// SignalUnload means the session is going away and only a best-effort
	// send can still be attempted.
	SignalUnload
)

// Controller is the subset of lifecycle operations the bridge drives.
type Controller interface {
	PauseAll(ctx context.Context)
	ResumeAll(ctx context.Context)
	QuickPauseAll()
}

// Bridge binds activity signals to lifecycle actions. A hidden signal arms
// a debounce timer; only if the session stays hidden for the full debounce
// window does a pause happen, so brief switches away cost nothing. Becoming
// visible resumes unconditionally (resume is a no-op on a running lab).
type Bridge struct {
	ctrl     Controller
	clock    clock.Clock
	debounce time.Duration
	logger   *zerolog.Logger
}

func New(ctrl Controller, clk clock.Clock, debounce time.Duration, logger *zerolog.Logger) *Bridge {
	return &Bridge{
		ctrl:     ctrl,
		clock:    clk,
		debounce: debounce,
		logger:   logger,
	}
}

// Run consumes signals until ctx is done or the channel closes. Lifecycle
// actions run inline, so signal handling is serialized by construction.
func (b *Bridge) Run(ctx context.Context, signals <-chan Signal) {
	var hideTimer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-hideTimer:
			hideTimer = nil
			b.logger.Info().Msg("session stayed hidden; pausing all labs")
			b.ctrl.PauseAll(ctx)
		case sig, ok := <-signals:
			if !ok {
				return
			}
			switch sig {
			case SignalHidden:
				if hideTimer == nil {
					hideTimer = b.clock.After(b.debounce)
				}
			case SignalVisible:
				hideTimer = nil
				b.ctrl.ResumeAll(ctx)
			case SignalUnload:
				hideTimer = nil
				b.logger.Info().Msg("session unloading; firing quick pauses")
				b.ctrl.QuickPauseAll()
			}
		}
	}
}
