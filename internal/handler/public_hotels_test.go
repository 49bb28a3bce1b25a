package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/booking"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
	"github.com/iliyamo/hotel-booking-gateway/internal/search"
)

func newPublicEcho(t *testing.T, delay time.Duration) (*fakeBackend, *echo.Echo, *search.Debouncer, *PublicHandler) {
	t.Helper()
	fb, api := newFakeBackend(t)
	deb := search.NewDebouncer(delay)
	h := NewPublicHandler(api, search.NewService(api, deb))
	e := echo.New()
	e.GET("/v1/hotels/search", h.SearchHotels)
	e.GET("/v1/hotels/:id", h.GetHotel)
	e.GET("/v1/stays/defaults", h.StayDefaults)
	e.POST("/v1/stays/quote", h.StayQuote)
	return fb, e, deb, h
}

func TestSearchHotelsDebounced(t *testing.T) {
	fb, e, deb, _ := newPublicEcho(t, 50*time.Millisecond)
	fb.on("GET /api/hotels", `{"data":{"hotels":[{"_id":"h1","name":"Harbour Inn"}],"total":1,"page":1,"pages":1}}`)

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- serve(e, http.MethodGet, "/v1/hotels/search?location=Lis", "", "") }()

	key := "ip:192.0.2.1"
	deadline := time.Now().Add(time.Second)
	for !deb.Pending(key) {
		if time.Now().After(deadline) {
			t.Fatal("first search never armed")
		}
		time.Sleep(time.Millisecond)
	}
	second := serve(e, http.MethodGet, "/v1/hotels/search?location=Lisbon", "", "")
	superseded := <-first

	if superseded.Code != http.StatusNoContent {
		t.Fatalf("superseded status = %d", superseded.Code)
	}
	if second.Code != http.StatusOK {
		t.Fatalf("latest status = %d (%s)", second.Code, second.Body.String())
	}
	oldSeq, _ := strconv.ParseUint(superseded.Header().Get("X-Search-Seq"), 10, 64)
	newSeq, _ := strconv.ParseUint(second.Header().Get("X-Search-Seq"), 10, 64)
	if oldSeq == 0 || oldSeq >= newSeq {
		t.Fatalf("seq %d not before %d", oldSeq, newSeq)
	}
	if n := fb.callCount(); n != 1 {
		t.Fatalf("backend called %d times, want 1", n)
	}
	if got := decodeBody(t, second)["total"]; got != float64(1) {
		t.Fatalf("total = %v", got)
	}
}

func TestGetHotelNotFound(t *testing.T) {
	fb, e, _, _ := newPublicEcho(t, time.Millisecond)
	fb.on("GET /api/hotels/missing", `404 {"success":false,"message":"Hotel not found"}`)

	rec := serve(e, http.MethodGet, "/v1/hotels/missing", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "Hotel not found" {
		t.Fatalf("error = %v", got)
	}
}

func TestStayDefaults(t *testing.T) {
	_, e, _, h := newPublicEcho(t, time.Millisecond)
	h.Now = func() time.Time { return time.Date(2025, 6, 30, 15, 0, 0, 0, time.Local) }

	rec := serve(e, http.MethodGet, "/v1/stays/defaults", "", "")
	body := decodeBody(t, rec)
	if body["checkIn"] != "2025-07-01" || body["checkOut"] != "2025-07-02" {
		t.Fatalf("defaults = %v", body)
	}
	guests, _ := body["guests"].(map[string]any)
	if guests["adults"] != float64(1) {
		t.Fatalf("guests = %v", guests)
	}
}

func TestStayQuote(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantCode int
		total    float64
	}{
		{"priced", `{"room":"r1","checkIn":"2025-06-10","checkOut":"2025-06-12","guests":{"adults":2}}`, http.StatusOK, 240},
		{"too many guests", `{"room":"r1","checkIn":"2025-06-10","checkOut":"2025-06-12","guests":{"adults":2,"children":2}}`, http.StatusUnprocessableEntity, 0},
		{"reversed dates", `{"room":"r1","checkIn":"2025-06-12","checkOut":"2025-06-10","guests":{"adults":1}}`, http.StatusUnprocessableEntity, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb, e, _, _ := newPublicEcho(t, time.Millisecond)
			fb.on("GET /api/rooms/r1", testRoom)
			rec := serve(e, http.MethodPost, "/v1/stays/quote", tc.body, "")
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.wantCode, rec.Body.String())
			}
			if tc.wantCode == http.StatusOK {
				if got := decodeBody(t, rec)["totalPrice"]; got != tc.total {
					t.Fatalf("totalPrice = %v, want %v", got, tc.total)
				}
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"transport", errors.New("dial tcp: connection refused"), http.StatusBadGateway, apiclient.FallbackMessage},
		{"backend", &apiclient.APIError{Status: http.StatusForbidden, Message: "Not your hotel"}, http.StatusForbidden, "Not your hotel"},
		{"validation", &booking.ValidationError{Field: "checkOut", Message: booking.MsgCheckOutAfterCheckIn}, http.StatusUnprocessableEntity, booking.MsgCheckOutAfterCheckIn},
		{"transition", &booking.TransitionError{From: model.StatusCheckedIn, To: model.StatusCancelled}, http.StatusConflict, "Cannot change a checked in booking to cancelled."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/x", func(c echo.Context) error { return respondError(c, tc.err) })
			rec := serve(e, http.MethodGet, "/x", "", "")
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
			if got := decodeBody(t, rec)["error"]; got != tc.msg {
				t.Fatalf("error = %v, want %q", got, tc.msg)
			}
		})
	}
}
