package visibility_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/studiolab/labkeeper/internal/logging"
	"github.com/studiolab/labkeeper/internal/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock hands out a single timer channel the test fires by hand.
type manualClock struct {
	mu    sync.Mutex
	timer chan time.Time
}

func newManualClock() *manualClock {
	return &manualClock{}
}

func (c *manualClock) Now() time.Time {
	return time.Now()
}

func (c *manualClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer = make(chan time.Time, 1)
	return c.timer
}

// fire triggers the armed timer, waiting briefly for the bridge to arm one
// if it hasn't yet.
func (c *manualClock) fire() {
	for i := 0; i < 1000; i++ {
		c.mu.Lock()
		timer := c.timer
		c.mu.Unlock()
		if timer != nil {
			timer <- time.Now()
			return
		}
		time.Sleep(time.Millisecond)
	}
}

type recordingController struct {
	mu         sync.Mutex
	pauses     int
	resumes    int
	quickPause int
}

func (c *recordingController) PauseAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauses++
}

func (c *recordingController) ResumeAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resumes++
}

func (c *recordingController) QuickPauseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quickPause++
}

func (c *recordingController) counts() (int, int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pauses, c.resumes, c.quickPause
}

func runBridge(t *testing.T, ctrl visibility.Controller, clk *manualClock) (chan visibility.Signal, func()) {
	bridge := visibility.New(ctrl, clk, 30*time.Second, logging.NewLogger())
	signals := make(chan visibility.Signal)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		bridge.Run(ctx, signals)
		close(done)
	}()
	return signals, func() {
		cancel()
		<-done
	}
}

func TestHiddenPausesAfterDebounce(t *testing.T) {
	ctrl := &recordingController{}
	clk := newManualClock()
	signals, stop := runBridge(t, ctrl, clk)
	defer stop()

	signals <- visibility.SignalHidden
	clk.fire()

	require.Eventually(t, func() bool {
		pauses, _, _ := ctrl.counts()
		return pauses == 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestBriefHideDoesNotPause(t *testing.T) {
	ctrl := &recordingController{}
	clk := newManualClock()
	signals, stop := runBridge(t, ctrl, clk)
	defer stop()

	// Hidden, then visible again before the debounce fires: no pause, but
	// the return still resumes (idempotent when nothing was paused).
	signals <- visibility.SignalHidden
	signals <- visibility.SignalVisible

	require.Eventually(t, func() bool {
		_, resumes, _ := ctrl.counts()
		return resumes == 1
	}, 2*time.Second, 5*time.Millisecond)

	// Firing the stale timer must not pause anything now.
	clk.fire()
	time.Sleep(20 * time.Millisecond)
	pauses, _, _ := ctrl.counts()
	assert.Zero(t, pauses)
}

func TestUnloadFiresQuickPauses(t *testing.T) {
	ctrl := &recordingController{}
	clk := newManualClock()
	signals, stop := runBridge(t, ctrl, clk)
	defer stop()

	signals <- visibility.SignalUnload

	require.Eventually(t, func() bool {
		_, _, quick := ctrl.counts()
		return quick == 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRepeatedHiddenArmsOnce(t *testing.T) {
	ctrl := &recordingController{}
	clk := newManualClock()
	signals, stop := runBridge(t, ctrl, clk)
	defer stop()

	signals <- visibility.SignalHidden
	signals <- visibility.SignalHidden
	clk.fire()

	require.Eventually(t, func() bool {
		pauses, _, _ := ctrl.counts()
		return pauses == 1
	}, 2*time.Second, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	pauses, _, _ := ctrl.counts()
	assert.Equal(t, 1, pauses)
}
