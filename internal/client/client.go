package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/studiolab/labkeeper/core/lab"
)

// TokenProvider supplies the bearer token for lab-manager calls. Token
// storage and refresh are owned by the embedding application.
type TokenProvider interface {
	Token() (string, error)
}

// FireAndForgetTransport delivers a request with at-most-once, best-effort
// semantics and no response. It is the unload-safe path used for quick
// pauses while the client is tearing down.
type FireAndForgetTransport interface {
	Send(url string, header http.Header, body []byte)
}

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

// Client wraps the six REST operations against the lab-manager service.
// Every error return means "state unknown": callers must not assume the
// operation took effect.
type Client interface {
	CreateOrGet(ctx context.Context, userID, courseID string) (lab.Record, error)
	GetStatus(ctx context.Context, labID string) (lab.Record, error)
	Pause(ctx context.Context, labID string) error
	Resume(ctx context.Context, labID string) error
	// TouchAccess records an access event for analytics. Failures are
	// swallowed; callers usually run it on its own goroutine.
	TouchAccess(ctx context.Context, labID string)
	// QuickPause requests a pause through the fire-and-forget transport.
	// No response is awaited and there are no retries.
	QuickPause(labID string)
}

type labClient struct {
	baseURL string
	http    *retryablehttp.Client
	tokens  TokenProvider
	beacon  FireAndForgetTransport
	logger  *zerolog.Logger
}

// New returns a Client talking to the lab-manager at baseURL. The transport
// timeout bounds every individual request so a hung call cannot stall the
// poll or debounce loops.
func New(baseURL string, tokens TokenProvider, beacon FireAndForgetTransport, timeout time.Duration, logger *zerolog.Logger) Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil

	if beacon == nil {
		beacon = NewHTTPBeacon(2 * time.Second)
	}

	return &labClient{
		baseURL: baseURL,
		http:    rc,
		tokens:  tokens,
		beacon:  beacon,
		logger:  logger,
	}
}

type createOrGetRequest struct {
	UserID   string `json:"user_id"`
	CourseID string `json:"course_id"`
}

func (c *labClient) CreateOrGet(ctx context.Context, userID, courseID string) (lab.Record, error) {
	body, err := c.do(ctx, http.MethodPost, "/labs/student", createOrGetRequest{
		UserID:   userID,
		CourseID: courseID,
	})
	if err != nil {
		return lab.Record{}, err
	}

	rec, err := lab.DecodeRecord(body)
	if err != nil {
		return lab.Record{}, errors.Wrapf(err, "decoding create-or-get response for course %s", courseID)
	}
	rec.CourseID = courseID
	return rec, nil
}

func (c *labClient) GetStatus(ctx context.Context, labID string) (lab.Record, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/labs/%s", url.PathEscape(labID)), nil)
	if err != nil {
		return lab.Record{}, err
	}

	rec, err := lab.DecodeRecord(body)
	if err != nil {
		return lab.Record{}, errors.Wrapf(err, "decoding status response for lab %s", labID)
	}
	return rec, nil
}

func (c *labClient) Pause(ctx context.Context, labID string) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/labs/%s/pause", url.PathEscape(labID)), nil)
	return tolerateConflict(err)
}

func (c *labClient) Resume(ctx context.Context, labID string) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/labs/%s/resume", url.PathEscape(labID)), nil)
	return tolerateConflict(err)
}

func (c *labClient) TouchAccess(ctx context.Context, labID string) {
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/labs/%s/access", url.PathEscape(labID)), nil)
	if err != nil {
		c.logger.Debug().Err(err).Str("lab_id", labID).Msg("touch-access failed")
	}
}

func (c *labClient) QuickPause(labID string) {
	token, err := c.tokens.Token()
	if err != nil || token == "" {
		// Nothing useful to do on the unload path without a token.
		return
	}

	header := http.Header{}
	header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	c.beacon.Send(fmt.Sprintf("%s/labs/%s/pause", c.baseURL, url.PathEscape(labID)), header, nil)
}

// tolerateConflict maps "already in the requested state" rejections to
// success, so pausing a paused lab or resuming a running one is a no-op.
func tolerateConflict(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
		return nil
	}
	return err
}

func (c *labClient) do(ctx context.Context, method, path string, reqBody interface{}) ([]byte, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, errors.Wrap(err, "getting bearer token")
	}
	if token == "" {
		return nil, ErrNoToken
	}

	var payload io.Reader
	if reqBody != nil {
		reqBytes, err := json.Marshal(reqBody)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewBuffer(reqBytes)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	req.Header.Set("X-Request-ID", uuid.New().String())
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "lab-manager request %s %s failed", method, path)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading lab-manager response for %s %s", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(respBytes)}
	}
	return respBytes, nil
}
