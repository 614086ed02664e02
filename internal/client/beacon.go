package client

import (
	"bytes"
	"net/http"
	"time"
)

// httpBeacon is the default FireAndForgetTransport: a single POST with a
// short timeout, no retries, response dropped. It is the closest server-side
// analogue to a browser beacon, intended for the shutdown path where nothing
// can wait on an acknowledgement.
type httpBeacon struct {
	client *http.Client
}

// NewHTTPBeacon returns a FireAndForgetTransport over plain HTTP.
func NewHTTPBeacon(timeout time.Duration) FireAndForgetTransport {
	return &httpBeacon{
		client: &http.Client{Timeout: timeout},
	}
}

func (b *httpBeacon) Send(url string, header http.Header, body []byte) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
