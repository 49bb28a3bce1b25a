package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 2*time.Second)
}

func TestLoginDecodesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email != "ana@example.com" {
			t.Errorf("login body = %+v, err = %v", req, err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"tok","user":{"_id":"u1","role":"customer"}}}`))
	})

	s, err := c.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if s.Token != "tok" || s.User.ID != "u1" || s.User.Role != model.RoleCustomer {
		t.Fatalf("Login() = %+v", s)
	}
}

func TestBareResponseAndBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`[{"_id":"b1","hotel":"h1","room":"r1","status":"confirmed","checkIn":"2025-06-10","checkOut":"2025-06-13"}]`))
	})

	bookings, err := c.MyBookings(context.Background(), "tok")
	if err != nil {
		t.Fatalf("MyBookings() error = %v", err)
	}
	if len(bookings) != 1 || bookings[0].Status != model.StatusConfirmed || bookings[0].Hotel.ID() != "h1" {
		t.Fatalf("MyBookings() = %+v", bookings)
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "message field", status: http.StatusBadRequest, body: `{"success":false,"message":"Room not available"}`, wantMsg: "Room not available"},
		{name: "error field", status: http.StatusForbidden, body: `{"error":"forbidden"}`, wantMsg: "forbidden"},
		{name: "no body", status: http.StatusInternalServerError, body: ``, wantMsg: FallbackMessage},
		{name: "html body", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantMsg: FallbackMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.GetHotel(context.Background(), "h1")
			var ae *APIError
			if !errors.As(err, &ae) {
				t.Fatalf("GetHotel() error = %v, want *APIError", err)
			}
			if ae.Status != tt.status || MessageOf(err) != tt.wantMsg {
				t.Fatalf("APIError = %+v, message %q", ae, MessageOf(err))
			}
			if !IsStatus(err, tt.status) {
				t.Fatalf("IsStatus(%d) = false", tt.status)
			}
		})
	}
}

func TestNetworkErrorUsesFallback(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond)
	err := c.AddToFavorites(context.Background(), "tok", "h1")
	if err == nil {
		t.Fatalf("expected network error")
	}
	if MessageOf(err) != FallbackMessage {
		t.Fatalf("MessageOf() = %q", MessageOf(err))
	}
}

func TestHotelQueryEncoding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("location") != "Paris" || q.Get("category") != "resort" || q.Has("page") {
			t.Errorf("query = %v", q)
		}
		_, _ = w.Write([]byte(`{"data":{"hotels":[{"_id":"h1","name":"Le Grand"}],"total":1,"page":1,"pages":1}}`))
	})
	page, err := c.ListHotels(context.Background(), HotelQuery{Location: "Paris", Category: "resort"})
	if err != nil {
		t.Fatalf("ListHotels() error = %v", err)
	}
	if page.Total != 1 || page.Hotels[0].Name != "Le Grand" {
		t.Fatalf("ListHotels() = %+v", page)
	}
}

func TestForwardKeepsContentType(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/rooms/r1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
			t.Errorf("Content-Type = %q", ct)
		}
		_, _ = w.Write([]byte(`{"_id":"r1","name":"Suite","quantity":3,"available":2}`))
	})
	room, err := c.SaveRoom(context.Background(), "tok", "r1", "multipart/form-data; boundary=x", strings.NewReader("--x--\r\n"))
	if err != nil {
		t.Fatalf("SaveRoom() error = %v", err)
	}
	if room.Available != 2 {
		t.Fatalf("SaveRoom() = %+v", room)
	}
}
