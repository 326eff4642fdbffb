package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kassa/internal/hal"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Doer sends a request and returns its response.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// FiberClient dispatches requests to an application in process.
type FiberClient struct {
	app *fiber.App
}

func NewFiberClient(app *fiber.App) *FiberClient {
	return &FiberClient{app: app}
}

func (c *FiberClient) Do(req *http.Request) (*http.Response, error) {
	return c.app.Test(req, -1)
}

// HTTPClient sends requests to a running server.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	target, err := req.URL.Parse(strings.TrimRight(c.BaseURL, "/") + req.URL.RequestURI())
	if err != nil {
		return nil, err
	}
	req.URL = target
	req.Host = target.Host
	req.RequestURI = ""

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

func (r *Response) IsSuccessful() bool {
	return r.Status >= 200 && r.Status < 300
}

// ContentType returns the media type without parameters.
func (r *Response) ContentType() string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return r.Header.Get(fiber.HeaderContentType)
	}
	return mediaType
}

// PatchOperation is a single partial update instruction.
type PatchOperation struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

// SendRequest sends a request and reads the whole response. Transport
// failures fail the test; unsuccessful statuses do not.
func (s *Suite) SendRequest(t testing.TB, method, uri string, body []byte, headers map[string]string) *Response {
	t.Helper()

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, uri, reader)
	if len(body) > 0 {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	req.Header.Set(fiber.HeaderAccept, hal.MIMEHalJSON+", "+hal.MIMEProblemJSON)
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, uri, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("%s %s: failed to read response body: %v", method, uri, err)
	}
	response := &Response{Status: resp.StatusCode, Header: resp.Header, Body: raw}
	if !response.IsSuccessful() {
		s.Logger.Info("unsuccessful response",
			zap.String("method", method),
			zap.String("uri", uri),
			zap.Int("status", response.Status),
			zap.String("message", errorMessage(raw)),
		)
	}
	return response
}

// SendPatchRequest sends a single patch operation to uri.
func (s *Suite) SendPatchRequest(t testing.TB, uri, op, path string, value interface{}, headers map[string]string) *Response {
	t.Helper()
	body, err := json.Marshal(PatchOperation{Op: op, Path: path, Value: value})
	if err != nil {
		t.Fatalf("failed to encode patch operation: %v", err)
	}
	return s.SendRequest(t, http.MethodPatch, uri, body, headers)
}

// DecodeContent decodes a JSON object body.
func DecodeContent(t testing.TB, r *Response) map[string]interface{} {
	t.Helper()
	var content map[string]interface{}
	if err := json.Unmarshal(r.Body, &content); err != nil {
		t.Fatalf("failed to decode response body %q: %v", r.Body, err)
	}
	return content
}

// errorMessage extracts a readable message from an error body, falling back
// to the raw body.
func errorMessage(body []byte) string {
	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &problem); err != nil {
		return string(body)
	}
	switch {
	case problem.Detail != "":
		return problem.Detail
	case problem.Error != "":
		return problem.Error
	case problem.Title != "":
		return problem.Title
	}
	return string(body)
}
