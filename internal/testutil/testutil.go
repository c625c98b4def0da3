package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"orderservice/internal/entity"
	"orderservice/internal/httpx"
)

const TestUserID = "test-user-id-123"

// TestBook is the catalog book used across handler tests.
var TestBook = entity.Book{
	ISBN:      "1234567890",
	Title:     "Northern Lights",
	Author:    "Lyra Silverstar",
	Price:     9.90,
	Publisher: "Polarsophia",
}

// NewRequest creates a request with a JSON body. A string body is sent
// verbatim so tests can post malformed JSON.
func NewRequest(method, path string, body interface{}) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	r := httptest.NewRequest(method, path, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// NewRequestAsUser creates a request whose context already carries userID,
// as AuthMiddleware would leave it.
func NewRequestAsUser(method, path string, body interface{}, userID string) *http.Request {
	r := NewRequest(method, path, body)
	return r.WithContext(httpx.ContextWithUser(r.Context(), userID))
}

type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes the recorded JSON envelope.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	var bodyMap map[string]interface{}
	_ = json.NewDecoder(result.Body).Decode(&bodyMap)

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// ErrorCode returns error.code from an error envelope, or "".
func (r RecordResponse) ErrorCode() string {
	e, _ := r.Body["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}

// ErrorDetails returns error.details as field → message.
func (r RecordResponse) ErrorDetails() map[string]string {
	out := map[string]string{}
	e, _ := r.Body["error"].(map[string]interface{})
	details, _ := e["details"].([]interface{})
	for _, d := range details {
		m, _ := d.(map[string]interface{})
		field, _ := m["field"].(string)
		msg, _ := m["message"].(string)
		out[field] = msg
	}
	return out
}

// Data returns the data object of a success envelope.
func (r RecordResponse) Data() map[string]interface{} {
	d, _ := r.Body["data"].(map[string]interface{})
	return d
}
