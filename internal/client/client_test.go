package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/studiolab/labkeeper/core/lab"
	"github.com/studiolab/labkeeper/internal/client"
	"github.com/studiolab/labkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token() (string, error) {
	return s.token, nil
}

// fakeLabManager is an httptest-backed lab-manager with just enough state
// to exercise the client.
type fakeLabManager struct {
	mu         sync.Mutex
	labs       map[string]map[string]interface{} // labID -> response body
	createSeen int
	touchSeen  int
	pauseCode  int
}

func newFakeLabManager() *fakeLabManager {
	return &fakeLabManager{
		labs:      map[string]map[string]interface{}{},
		pauseCode: http.StatusNoContent,
	}
}

func (f *fakeLabManager) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /labs/student", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req struct {
			UserID   string `json:"user_id"`
			CourseID string `json:"course_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		f.mu.Lock()
		defer f.mu.Unlock()
		f.createSeen++
		labID := "lab-" + req.CourseID
		body, ok := f.labs[labID]
		if !ok {
			body = map[string]interface{}{
				"lab_id":     labID,
				"status":     "running",
				"access_url": fmt.Sprintf("https://labs.example/%s", req.CourseID),
			}
			f.labs[labID] = body
		}
		require.NoError(t, json.NewEncoder(w).Encode(body))
	})
	mux.HandleFunc("GET /labs/{labID}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		body, ok := f.labs[r.PathValue("labID")]
		if !ok {
			http.Error(w, "no such lab", http.StatusNotFound)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(body))
	})
	mux.HandleFunc("POST /labs/{labID}/pause", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		w.WriteHeader(f.pauseCode)
	})
	mux.HandleFunc("POST /labs/{labID}/resume", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /labs/{labID}/access", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.touchSeen++
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func newTestClient(t *testing.T, srv *httptest.Server, token string) client.Client {
	return client.New(srv.URL, &staticTokens{token: token}, nil, 5*time.Second, logging.NewLogger())
}

func TestCreateOrGetIdempotent(t *testing.T) {
	manager := newFakeLabManager()
	srv := httptest.NewServer(manager.handler(t))
	defer srv.Close()

	c := newTestClient(t, srv, "secret")

	rec, err := c.CreateOrGet(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "lab-c1", rec.LabID)
	assert.Equal(t, "c1", rec.CourseID)
	assert.Equal(t, lab.StatusRunning, rec.Status)
	assert.Equal(t, "https://labs.example/c1", rec.AccessURL)

	// Same course, same lab
	again, err := c.CreateOrGet(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, rec.LabID, again.LabID)
	assert.Equal(t, 2, manager.createSeen)
}

func TestGetStatusErrors(t *testing.T) {
	manager := newFakeLabManager()
	srv := httptest.NewServer(manager.handler(t))
	defer srv.Close()

	c := newTestClient(t, srv, "secret")

	_, err := c.GetStatus(context.Background(), "lab-unknown")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, apiErr.Body, "no such lab")
}

func TestPauseTolerant(t *testing.T) {
	manager := newFakeLabManager()
	srv := httptest.NewServer(manager.handler(t))
	defer srv.Close()

	c := newTestClient(t, srv, "secret")

	require.NoError(t, c.Pause(context.Background(), "lab-c1"))

	// Pausing an already paused lab is not a failure.
	manager.mu.Lock()
	manager.pauseCode = http.StatusConflict
	manager.mu.Unlock()
	require.NoError(t, c.Pause(context.Background(), "lab-c1"))
}

func TestMissingTokenIsPreconditionFailure(t *testing.T) {
	manager := newFakeLabManager()
	srv := httptest.NewServer(manager.handler(t))
	defer srv.Close()

	c := newTestClient(t, srv, "")

	_, err := c.CreateOrGet(context.Background(), "u1", "c1")
	require.True(t, errors.Is(err, client.ErrNoToken))
	assert.Zero(t, manager.createSeen)
}

func TestMalformedResponseFailsDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Running without access_url violates the record invariant.
		fmt.Fprint(w, `{"lab_id": "L1", "status": "running"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "secret")
	_, err := c.CreateOrGet(context.Background(), "u1", "c1")
	require.ErrorContains(t, err, "without an access URL")
}

func TestQuickPauseUsesBeaconTransport(t *testing.T) {
	paused := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		paused <- r.URL.Path
	}))
	defer srv.Close()

	c := client.New(srv.URL, &staticTokens{token: "secret"}, client.NewHTTPBeacon(time.Second), 5*time.Second, logging.NewLogger())
	c.QuickPause("lab-c1")

	select {
	case path := <-paused:
		assert.Equal(t, "/labs/lab-c1/pause", path)
	case <-time.After(2 * time.Second):
		t.Fatal("quick pause never reached the server")
	}
}
