package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

type cannedResponse struct {
	status int
	body   map[string]any
}

// ApiMock is a stub HTTP API that records request bodies and replays canned responses.
// Requests and responses are keyed by method and path, e.g. "POST/emails".
type ApiMock struct {
	mu        sync.Mutex
	requests  map[string][]map[string]any
	responses map[string]map[int]cannedResponse
	defaults  map[string]cannedResponse
	server    *httptest.Server
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		requests:  map[string][]map[string]any{},
		responses: map[string]map[int]cannedResponse{},
		defaults:  map[string]cannedResponse{},
	}
}

// Start serves the mock on a random local port.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	request := map[string]any{}
	_ = json.Unmarshal(body, &request)

	a.mu.Lock()
	index := len(a.requests[key])
	a.requests[key] = append(a.requests[key], request)
	resp, ok := a.responses[key][index]
	if !ok {
		resp, ok = a.defaults[key]
	}
	a.mu.Unlock()

	if !ok {
		resp = cannedResponse{status: http.StatusNotFound, body: map[string]any{"message": "no response configured"}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_ = json.NewEncoder(w).Encode(resp.body)
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

// SetResponse configures the reply to the index-th request; index -1 sets the default.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	canned := cannedResponse{status: status, body: response}
	if index == -1 {
		a.defaults[key] = canned
		return
	}
	if a.responses[key] == nil {
		a.responses[key] = map[int]cannedResponse{}
	}
	a.responses[key][index] = canned
}

// GetRequestBody returns the JSON body of the index-th request, or nil.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()

	received := a.requests[method+path]
	if index < 0 || index >= len(received) {
		return nil
	}
	return received[index]
}

// RequestCount returns how many requests hit method and path.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests[method+path])
}

// ClearResponses drops recorded requests and configured responses for method and path.
func (a *ApiMock) ClearResponses(method, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	delete(a.requests, key)
	delete(a.responses, key)
	delete(a.defaults, key)
}
