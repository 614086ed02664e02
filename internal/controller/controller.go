package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/studiolab/labkeeper/core/lab"
	"github.com/studiolab/labkeeper/internal/client"
	"github.com/studiolab/labkeeper/internal/poller"
	"github.com/studiolab/labkeeper/internal/registry"
	"github.com/studiolab/labkeeper/internal/store"
)

// EnrollmentSource supplies the course list for a user. Enrollment itself
// lives in another system; this client only consumes the IDs.
type EnrollmentSource interface {
	EnrolledCourses(ctx context.Context, userID string) ([]string, error)
}

// Controller drives the lab lifecycle for one user session: lazy creation
// per enrolled course, bulk pause/resume, single-lab access with
// transparent resume, and a periodic health-check sweep that re-syncs the
// registry with server truth.
type Controller struct {
	client    client.Client
	registry  *registry.Registry
	poller    *poller.Poller
	notifier  lab.Notifier
	snapshots *store.SnapshotStore // optional
	enrolled  EnrollmentSource
	logger    *zerolog.Logger

	sweepInterval time.Duration

	mu          sync.Mutex
	initialized bool
	userID      string
	courses     []string
	stopSweep   context.CancelFunc
	sweepDone   chan struct{}
}

func New(c client.Client, reg *registry.Registry, p *poller.Poller, notifier lab.Notifier, enrolled EnrollmentSource, snapshots *store.SnapshotStore, sweepInterval time.Duration, logger *zerolog.Logger) *Controller {
	return &Controller{
		client:        c,
		registry:      reg,
		poller:        p,
		notifier:      notifier,
		snapshots:     snapshots,
		enrolled:      enrolled,
		sweepInterval: sweepInterval,
		logger:        logger,
	}
}

// Initialize loads the user's enrollment and provisions a lab per course,
// all in parallel with per-course failure isolation. It returns once every
// create-or-get call has settled, and is a no-op if already initialized for
// this session.
func (c *Controller) Initialize(ctx context.Context, userID string) error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return nil
	}
	c.initialized = true
	c.userID = userID
	c.mu.Unlock()

	c.seedFromSnapshots()

	courses, err := c.enrolled.EnrolledCourses(ctx, userID)
	if err != nil {
		c.mu.Lock()
		c.initialized = false
		c.mu.Unlock()
		return errors.Wrapf(err, "loading enrollment for user %s", userID)
	}

	c.mu.Lock()
	c.courses = append([]string(nil), courses...)
	c.mu.Unlock()

	c.provisionAll(ctx, courses)

	sweepCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.mu.Lock()
	c.stopSweep = cancel
	c.sweepDone = done
	c.mu.Unlock()
	go c.runSweeps(sweepCtx, done)

	return nil
}

// UpdateEnrolledCourses replaces the tracked course list and provisions
// labs for any course that has no registry entry yet. Courses dropped from
// the list keep their labs; teardown on unenroll is deliberately not done
// here.
func (c *Controller) UpdateEnrolledCourses(ctx context.Context, courses []string) {
	c.mu.Lock()
	c.courses = append([]string(nil), courses...)
	c.mu.Unlock()

	missing := make([]string, 0, len(courses))
	for _, courseID := range courses {
		if _, ok := c.registry.Get(courseID); !ok {
			missing = append(missing, courseID)
		}
	}
	c.provisionAll(ctx, missing)
}

// provisionAll runs createOrGet for each course concurrently. One course's
// failure never blocks the others.
func (c *Controller) provisionAll(ctx context.Context, courses []string) {
	var wg sync.WaitGroup
	for _, courseID := range courses {
		wg.Add(1)
		go func(courseID string) {
			defer wg.Done()
			if err := c.provision(ctx, courseID); err != nil {
				c.logger.Warn().Err(err).Str("course", courseID).Msg("lab provisioning failed")
				c.notifier.Notify(fmt.Sprintf("Could not prepare the lab for %s", courseID), lab.LevelError)
			}
		}(courseID)
	}
	wg.Wait()
}

func (c *Controller) provision(ctx context.Context, courseID string) error {
	c.mu.Lock()
	userID := c.userID
	c.mu.Unlock()

	rec, err := c.client.CreateOrGet(ctx, userID, courseID)
	if err != nil {
		return errors.Wrapf(err, "creating lab for course %s", courseID)
	}
	c.put(rec)

	if rec.Status == lab.StatusBuilding {
		c.poller.Watch(ctx, rec.LabID, courseID, c.put)
	}
	return nil
}

// PauseAll pauses every running lab concurrently. Best effort: a failed
// pause is logged and the record keeps its status; nothing is marked paused
// until the server confirms.
func (c *Controller) PauseAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, rec := range c.registry.List() {
		if rec.Status != lab.StatusRunning {
			continue
		}
		wg.Add(1)
		go func(rec lab.Record) {
			defer wg.Done()
			if err := c.client.Pause(ctx, rec.LabID); err != nil {
				c.logger.Warn().Err(err).Str("course", rec.CourseID).Msg("pause failed; leaving status unchanged")
				return
			}
			c.put(rec.Paused())
		}(rec)
	}
	wg.Wait()
}

// ResumeAll resumes every paused lab concurrently, symmetric to PauseAll.
func (c *Controller) ResumeAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, rec := range c.registry.List() {
		if rec.Status != lab.StatusPaused {
			continue
		}
		wg.Add(1)
		go func(rec lab.Record) {
			defer wg.Done()
			if err := c.client.Resume(ctx, rec.LabID); err != nil {
				c.logger.Warn().Err(err).Str("course", rec.CourseID).Msg("resume failed; leaving status unchanged")
				return
			}
			c.put(rec.Resumed())
		}(rec)
	}
	wg.Wait()
}

// AccessLab returns the access URL for a course's lab, transparently
// resuming it first if paused. On success it fires a touch-access event
// without waiting on it.
func (c *Controller) AccessLab(ctx context.Context, courseID string) (string, error) {
	rec, ok := c.registry.Get(courseID)
	if !ok || rec.Status == lab.StatusNotCreated {
		return "", errors.Wrapf(lab.ErrNotFound, "course %s", courseID)
	}

	if rec.Status == lab.StatusPaused {
		if err := c.ResumeLab(ctx, courseID); err != nil {
			return "", err
		}
		rec, _ = c.registry.Get(courseID)
	}

	if !rec.Ready() {
		return "", errors.Wrapf(lab.ErrNotReady, "course %s is %s", courseID, rec.Status)
	}

	go c.client.TouchAccess(context.WithoutCancel(ctx), rec.LabID)
	return rec.AccessURL, nil
}

// ResumeLab resumes exactly one lab. Unlike ResumeAll, a failure here is
// returned to the caller: someone is actively waiting on this lab.
func (c *Controller) ResumeLab(ctx context.Context, courseID string) error {
	rec, ok := c.registry.Get(courseID)
	if !ok {
		return errors.Wrapf(lab.ErrNotFound, "course %s", courseID)
	}
	if rec.Status == lab.StatusRunning {
		return nil
	}
	if rec.Status != lab.StatusPaused {
		return errors.Wrapf(lab.ErrNotReady, "course %s is %s", courseID, rec.Status)
	}

	if err := c.client.Resume(ctx, rec.LabID); err != nil {
		return errors.Wrapf(err, "resuming lab for course %s", courseID)
	}
	c.put(rec.Resumed())
	return nil
}

// HealthCheckSweep asks the server for the current state of every tracked
// lab and overwrites the registry with the answer. Individual failures are
// logged and skipped; the sweep always covers the whole registry.
func (c *Controller) HealthCheckSweep(ctx context.Context) {
	for _, rec := range c.registry.List() {
		if rec.LabID == "" {
			continue
		}
		fresh, err := c.client.GetStatus(ctx, rec.LabID)
		if err != nil {
			c.logger.Warn().Err(err).Str("course", rec.CourseID).Msg("health check failed; keeping last known state")
			continue
		}
		fresh.CourseID = rec.CourseID
		c.put(fresh.InheritURL(rec))
	}
}

// QuickPauseAll fires an unacknowledged pause for every running lab over
// the fire-and-forget transport. Used on shutdown, where a lost request is
// acceptable but not trying guarantees wasted lab hours.
func (c *Controller) QuickPauseAll() {
	for _, rec := range c.registry.List() {
		if rec.Status == lab.StatusRunning {
			c.client.QuickPause(rec.LabID)
		}
	}
}

// Cleanup stops the sweep, pauses whatever is still running, and clears all
// session state. Safe to call even if Initialize never ran.
func (c *Controller) Cleanup(ctx context.Context) {
	c.mu.Lock()
	stop := c.stopSweep
	done := c.sweepDone
	c.stopSweep = nil
	c.sweepDone = nil
	c.initialized = false
	c.courses = nil
	c.userID = ""
	c.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}

	c.PauseAll(ctx)
	c.registry.Clear()
	if c.snapshots != nil {
		if err := c.snapshots.Clear(); err != nil {
			c.logger.Debug().Err(err).Msg("clearing lab snapshots failed")
		}
	}
}

// Status returns the tracked status for a course, StatusNotCreated if none.
func (c *Controller) Status(courseID string) lab.Status {
	return c.registry.Status(courseID)
}

// AccessURL returns the course's lab URL; empty unless the lab is running.
func (c *Controller) AccessURL(courseID string) string {
	return c.registry.AccessURL(courseID)
}

// IsReady reports whether the course's lab is running with a usable URL.
func (c *Controller) IsReady(courseID string) bool {
	return c.registry.IsReady(courseID)
}

func (c *Controller) runSweeps(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.HealthCheckSweep(ctx)
		}
	}
}

// seedFromSnapshots preloads the registry with the last persisted state so
// queries have an answer before live responses arrive. Every seeded record
// is replaced as soon as createOrGet or a sweep reports server truth.
func (c *Controller) seedFromSnapshots() {
	if c.snapshots == nil {
		return
	}
	recs, err := c.snapshots.Load()
	if err != nil {
		c.logger.Debug().Err(err).Msg("loading lab snapshots failed")
		return
	}
	for _, rec := range recs {
		c.registry.Put(rec)
	}
}

func (c *Controller) put(rec lab.Record) {
	c.registry.Put(rec)
	if c.snapshots != nil {
		if err := c.snapshots.Save(rec); err != nil {
			c.logger.Debug().Err(err).Str("course", rec.CourseID).Msg("saving lab snapshot failed")
		}
	}
}
