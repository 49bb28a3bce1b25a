package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
	"github.com/iliyamo/hotel-booking-gateway/internal/queue"
)

// fakeBackend answers the routes registered on it and records every call.
// A call to an unregistered route fails the test.
type fakeBackend struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]string
	calls  []string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *apiclient.Client) {
	t.Helper()
	fb := &fakeBackend{t: t, routes: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	return fb, apiclient.New(srv.URL, 2*time.Second)
}

// on registers a JSON reply for "METHOD /path".  A body starting with a
// three digit status and a space ("409 {...}") is sent with that status.
func (fb *fakeBackend) on(route, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[route] = body
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path
	fb.mu.Lock()
	fb.calls = append(fb.calls, route)
	body, ok := fb.routes[route]
	fb.mu.Unlock()
	if !ok {
		fb.t.Errorf("unexpected backend call %s", route)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	status := http.StatusOK
	if len(body) > 4 && body[3] == ' ' {
		switch body[:3] {
		case "400":
			status = http.StatusBadRequest
		case "401":
			status = http.StatusUnauthorized
		case "404":
			status = http.StatusNotFound
		case "409":
			status = http.StatusConflict
		}
		body = body[4:]
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (fb *fakeBackend) called(route string) bool {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, c := range fb.calls {
		if c == route {
			return true
		}
	}
	return false
}

func (fb *fakeBackend) callCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.calls)
}

// recordedEvents collects published status changes.
type recordedEvents struct {
	mu     sync.Mutex
	events []queue.BookingStatusChangedEvent
}

func (r *recordedEvents) PublishStatusChanged(_ context.Context, ev queue.BookingStatusChangedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// bearer returns an unsigned-verification token for id and role; handlers
// under test run behind SessionAuth without a secret.
func bearer(t *testing.T, id string, role model.Role) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   id,
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("backend-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + s
}

// serve runs one request through e and returns the recorder.
func serve(e *echo.Echo, method, target, body, auth string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func authed() echo.MiddlewareFunc { return middleware.SessionAuth("") }

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}
