package testutils

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// RecordingTransport is an http.RoundTripper that answers every request with
// a canned response and keeps the request bodies it saw.
type RecordingTransport struct {
	mu         sync.Mutex
	StatusCode int
	Body       string
	Requests   []*http.Request
	Bodies     []string
}

// NewRecordingTransport creates a transport answering with status and a JSON body.
func NewRecordingTransport(status int, body string) *RecordingTransport {
	return &RecordingTransport{StatusCode: status, Body: body}
}

// RoundTrip implements http.RoundTripper.
func (t *RecordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}

	t.mu.Lock()
	t.Requests = append(t.Requests, req)
	t.Bodies = append(t.Bodies, string(body))
	status, respBody := t.StatusCode, t.Body
	t.mu.Unlock()

	return &http.Response{
		StatusCode:    status,
		Status:        http.StatusText(status),
		Header:        http.Header{"Content-Type": []string{"application/json"}},
		Body:          io.NopCloser(bytes.NewReader([]byte(respBody))),
		ContentLength: int64(len(respBody)),
		Request:       req,
	}, nil
}

// LastBody returns the body of the most recent request.
func (t *RecordingTransport) LastBody() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.Bodies) == 0 {
		return ""
	}
	return t.Bodies[len(t.Bodies)-1]
}

// RequestCount returns how many requests were made.
func (t *RecordingTransport) RequestCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Requests)
}
