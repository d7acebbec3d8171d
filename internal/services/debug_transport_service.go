package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"promptsim/internal/logger"
)

// DebugTransportService captures the most recent HTTP exchange made by LLM clients.
// It is only wired into clients when network debugging is enabled.
type DebugTransportService struct {
	capturedData string
	initialized  bool
	base         http.RoundTripper
	mutex        sync.RWMutex
}

// NewDebugTransportService creates a new DebugTransportService instance.
func NewDebugTransportService() *DebugTransportService {
	return &DebugTransportService{
		initialized: false,
		base:        http.DefaultTransport,
	}
}

// Name returns the service name "debug-transport" for registration.
func (d *DebugTransportService) Name() string {
	return "debug-transport"
}

// Initialize sets up the DebugTransportService for operation.
func (d *DebugTransportService) Initialize() error {
	logger.ServiceOperation("debug-transport", "initialize", "starting")
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.initialized = true
	d.capturedData = ""

	logger.ServiceOperation("debug-transport", "initialize", "completed")
	return nil
}

// SetBaseTransport replaces the transport that performs the real requests.
func (d *DebugTransportService) SetBaseTransport(base http.RoundTripper) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.base = base
}

// CreateTransport creates a new capturing HTTP transport.
func (d *DebugTransportService) CreateTransport() http.RoundTripper {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	if !d.initialized {
		logger.Error("Debug transport service not initialized")
		return http.DefaultTransport
	}

	return &debugTransport{
		base:    d.base,
		service: d,
	}
}

// GetCapturedData returns the captured HTTP debug data as JSON string.
func (d *DebugTransportService) GetCapturedData() string {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.capturedData
}

// ClearCapturedData clears the captured debug data.
func (d *DebugTransportService) ClearCapturedData() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.capturedData = ""
}

func (d *DebugTransportService) setCapturedData(data string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.capturedData = data
}

// debugTransport implements http.RoundTripper with request/response capture.
type debugTransport struct {
	base    http.RoundTripper
	service *DebugTransportService
}

// RoundTrip implements http.RoundTripper interface with debug capture.
func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	requestData, err := dt.captureRequest(req)
	if err != nil {
		// Capture failures never block the request
		logger.Error("Failed to capture request", "error", err)
	}

	resp, err := dt.base.RoundTrip(req)
	endTime := time.Now()

	if err != nil {
		dt.store(requestData, map[string]interface{}{"error": err.Error()}, startTime, endTime)
		return resp, err
	}

	responseData, captureErr := dt.captureResponse(resp)
	if captureErr != nil {
		logger.Error("Failed to capture response", "error", captureErr)
		responseData = map[string]interface{}{
			"error": "failed to capture response data",
		}
	}

	dt.store(requestData, responseData, startTime, endTime)
	return resp, nil
}

// captureRequest captures HTTP request data.
func (dt *debugTransport) captureRequest(req *http.Request) (map[string]interface{}, error) {
	requestData := map[string]interface{}{
		"method":  req.Method,
		"url":     sanitizeURL(req),
		"headers": sanitizeHeaders(req.Header),
	}

	if req.Body != nil {
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			return requestData, fmt.Errorf("failed to read request body: %w", err)
		}

		// Restore the request body for actual transmission
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		requestData["body"] = decodeBody(bodyBytes)
	}

	return requestData, nil
}

// captureResponse captures HTTP response data.
func (dt *debugTransport) captureResponse(resp *http.Response) (map[string]interface{}, error) {
	responseData := map[string]interface{}{
		"status_code": resp.StatusCode,
		"status":      resp.Status,
		"headers":     sanitizeHeaders(resp.Header),
	}

	if resp.Body != nil {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return responseData, fmt.Errorf("failed to read response body: %w", err)
		}

		// Restore the response body for client consumption
		resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		responseData["body"] = decodeBody(bodyBytes)
	}

	return responseData, nil
}

// store combines request/response data and saves it as the latest capture.
func (dt *debugTransport) store(requestData, responseData map[string]interface{}, startTime, endTime time.Time) {
	debugData := map[string]interface{}{
		"http_request":  requestData,
		"http_response": responseData,
		"timing": map[string]interface{}{
			"request_time":  startTime.Format(time.RFC3339),
			"response_time": endTime.Format(time.RFC3339),
			"duration_ms":   endTime.Sub(startTime).Milliseconds(),
		},
	}

	jsonData, err := json.Marshal(debugData)
	if err != nil {
		logger.Error("Failed to marshal debug data", "error", err)
		dt.service.setCapturedData(`{"error": "failed to marshal debug data"}`)
		return
	}

	dt.service.setCapturedData(string(jsonData))
	logger.Debug("Debug data captured", "data_length", len(jsonData))
}

func decodeBody(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}
	var jsonBody interface{}
	if err := json.Unmarshal(body, &jsonBody); err == nil {
		return jsonBody
	}
	return string(body)
}

// sanitizeURL masks the Gemini "key" query parameter.
func sanitizeURL(req *http.Request) string {
	if req.URL == nil {
		return ""
	}
	u := *req.URL
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "***[MASKED]***")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// sanitizeHeaders masks authentication headers.
func sanitizeHeaders(headers http.Header) map[string]interface{} {
	sanitized := make(map[string]interface{})

	for name, values := range headers {
		lowerName := strings.ToLower(name)

		if strings.Contains(lowerName, "authorization") ||
			strings.Contains(lowerName, "api-key") ||
			strings.Contains(lowerName, "token") {
			if len(values) > 0 && len(values[0]) > 10 {
				sanitized[name] = []string{values[0][:10] + "***[MASKED]***"}
			} else {
				sanitized[name] = []string{"***[MASKED]***"}
			}
		} else {
			sanitized[name] = values
		}
	}

	return sanitized
}
