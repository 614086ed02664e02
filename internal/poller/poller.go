package poller

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/studiolab/labkeeper/core/lab"
	"github.com/studiolab/labkeeper/internal/client"
	"github.com/studiolab/labkeeper/internal/clock"
	"golang.org/x/sync/singleflight"
)

// Poller watches labs that came back from creation still building, polling
// get-status on a fixed interval until the lab reaches a terminal state or
// the attempt budget runs out. With the defaults (10s interval, 30
// attempts) a watch gives up after five minutes; a later health-check sweep
// still picks up whatever the build eventually became.
type Poller struct {
	client   client.Client
	clock    clock.Clock
	notifier lab.Notifier
	logger   *zerolog.Logger

	grace    time.Duration
	interval time.Duration
	attempts int

	// group coalesces overlapping watches for the same lab ID: a second
	// Watch while one is in flight joins it instead of polling twice.
	group singleflight.Group
}

func New(c client.Client, clk clock.Clock, notifier lab.Notifier, logger *zerolog.Logger, grace, interval time.Duration, attempts int) *Poller {
	return &Poller{
		client:   c,
		clock:    clk,
		notifier: notifier,
		logger:   logger,
		grace:    grace,
		interval: interval,
		attempts: attempts,
	}
}

// Watch starts (or joins) a background watch on labID, invoking update with
// each terminal record observed. It returns immediately.
func (p *Poller) Watch(ctx context.Context, labID, courseID string, update func(lab.Record)) {
	go func() {
		_, _, _ = p.group.Do(labID, func() (interface{}, error) {
			p.watch(ctx, labID, courseID, update)
			return nil, nil
		})
	}()
}

func (p *Poller) watch(ctx context.Context, labID, courseID string, update func(lab.Record)) {
	// Give the backend a moment to schedule the container before the first
	// status request.
	select {
	case <-ctx.Done():
		return
	case <-p.clock.After(p.grace):
	}

	for attempt := 1; attempt <= p.attempts; attempt++ {
		rec, err := p.client.GetStatus(ctx, labID)
		if err != nil {
			// Transient failures don't consume the lab's chances; the next
			// tick retries.
			p.logger.Warn().Err(err).Str("lab_id", labID).Int("attempt", attempt).Msg("status poll failed")
		} else {
			rec.CourseID = courseID
			switch rec.Status {
			case lab.StatusRunning:
				update(rec)
				p.notifier.Notify(fmt.Sprintf("Lab for %s is ready", courseID), lab.LevelSuccess)
				return
			case lab.StatusError:
				update(rec)
				p.notifier.Notify(fmt.Sprintf("Lab for %s failed to build", courseID), lab.LevelError)
				return
			}
		}

		if attempt == p.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-p.clock.After(p.interval):
		}
	}

	p.logger.Info().Str("lab_id", labID).Str("course", courseID).Msg("build watch exhausted; leaving lab to the health-check sweep")
	p.notifier.Notify(fmt.Sprintf("Lab for %s is taking longer than expected", courseID), lab.LevelWarning)
}
