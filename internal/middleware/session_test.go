package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/approval"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
	"github.com/iliyamo/hotel-booking-gateway/internal/session"
)

const testSecret = "test-secret"

func token(t *testing.T, sub string, role model.Role) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func identityHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"id":    UserID(c),
		"role":  Role(c),
		"token": Token(c) != "",
		"key":   ClientKey(c),
	})
}

func TestSessionAuth(t *testing.T) {
	t.Parallel()
	good := token(t, "u1", model.RoleCustomer)

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"no credentials", func(*http.Request) {}, http.StatusUnauthorized},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: good}) }, http.StatusOK},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+good) }, http.StatusOK},
		{"bad signature", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+good[:len(good)-2]+"xx")
		}, http.StatusUnauthorized},
		{"basic auth", func(r *http.Request) { r.Header.Set("Authorization", "Basic Zm9vOmJhcg==") }, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			e.GET("/me", identityHandler, SessionAuth(testSecret))
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tc.setup(req)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.status, rec.Body.String())
			}
		})
	}
}

func TestOptionalSessionAnonymous(t *testing.T) {
	t.Parallel()
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, ClientKey(c)) }, OptionalSession(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "ip:203.0.113.9" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "u7", model.RoleCustomer))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Body.String() != "user:u7" {
		t.Fatalf("signed-in key = %q", rec.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	e := echo.New()
	g := e.Group("/admin", SessionAuth(testSecret), RequireRole(model.RoleAdmin))
	g.GET("/stats", identityHandler)

	for role, want := range map[model.Role]int{
		model.RoleAdmin:      http.StatusOK,
		model.RoleCustomer:   http.StatusForbidden,
		model.RoleHotelOwner: http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, "u1", role))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("role %s: status = %d, want %d", role, rec.Code, want)
		}
	}
}

func TestSnapshotRoleIgnored(t *testing.T) {
	t.Parallel()
	e := echo.New()
	e.GET("/admin/stats", identityHandler, SessionAuth(testSecret), RequireRole(model.RoleAdmin))

	noRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	snapshot := url.QueryEscape(`{"_id":"u1","name":"Ana","role":"admin","isApproved":true}`)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: noRole})
	req.AddCookie(&http.Cookie{Name: session.UserCookie, Value: snapshot})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 (%s)", rec.Code, rec.Body.String())
	}
}

type fakeApproval struct {
	approved bool
	err      error
}

func (f fakeApproval) Status(_ context.Context, userID, _ string) (approval.State, error) {
	return approval.State{UserID: userID, Approved: f.approved}, f.err
}

func TestRequireApprovedOwner(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		role   model.Role
		lookup fakeApproval
		status int
	}{
		{"approved", model.RoleHotelOwner, fakeApproval{approved: true}, http.StatusOK},
		{"pending", model.RoleHotelOwner, fakeApproval{}, http.StatusForbidden},
		{"customer", model.RoleCustomer, fakeApproval{approved: true}, http.StatusForbidden},
		{"backend error", model.RoleHotelOwner, fakeApproval{err: &apiclient.APIError{Status: http.StatusUnauthorized, Message: "Token expired"}}, http.StatusUnauthorized},
		{"network error", model.RoleHotelOwner, fakeApproval{err: errors.New("dial tcp")}, http.StatusBadGateway},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			e.GET("/owner", identityHandler, SessionAuth(testSecret), RequireApprovedOwner(tc.lookup))
			req := httptest.NewRequest(http.MethodGet, "/owner", nil)
			req.Header.Set("Authorization", "Bearer "+token(t, "o1", tc.role))
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}
