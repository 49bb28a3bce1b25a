package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/booking"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
	"github.com/iliyamo/hotel-booking-gateway/internal/review"
)

const testRoom = `{"data":{"_id":"r1","hotel":"h1","name":"Twin","price":{"base":120},"capacity":{"adults":2,"children":1},"quantity":3,"available":2}}`

func newCustomerEcho(t *testing.T) (*fakeBackend, *echo.Echo, *recordedEvents) {
	t.Helper()
	fb, api := newFakeBackend(t)
	events := &recordedEvents{}
	h := NewCustomerHandler(api, review.NewChecker(api, 2), events, nil)
	e := echo.New()
	e.POST("/v1/bookings", h.CreateBooking, authed())
	e.GET("/v1/bookings", h.ListBookings, authed())
	e.PUT("/v1/bookings/:id/cancel", h.CancelBooking, authed())
	e.GET("/v1/bookings/:id/history", h.BookingHistory, authed())
	e.POST("/v1/reviews", h.CreateReview, authed())
	return fb, e, events
}

func TestCreateBookingRejectedBeforeBackend(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
		msg   string
	}{
		{
			name:  "check-out before check-in",
			body:  `{"room":"r1","checkIn":"2025-06-13","checkOut":"2025-06-10","guests":{"adults":1}}`,
			field: "checkOut",
			msg:   booking.MsgCheckOutAfterCheckIn,
		},
		{
			name:  "same day",
			body:  `{"room":"r1","checkIn":"2025-06-10","checkOut":"2025-06-10","guests":{"adults":1}}`,
			field: "checkOut",
			msg:   booking.MsgCheckOutAfterCheckIn,
		},
		{
			name:  "missing dates",
			body:  `{"room":"r1","guests":{"adults":1}}`,
			field: "checkIn",
			msg:   booking.MsgDatesRequired,
		},
		{
			name:  "no adults",
			body:  `{"room":"r1","checkIn":"2025-06-10","checkOut":"2025-06-12","guests":{"adults":0,"children":2}}`,
			field: "guests.adults",
			msg:   booking.MsgAdultRequired,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb, e, _ := newCustomerEcho(t)
			rec := serve(e, http.MethodPost, "/v1/bookings", tc.body, bearer(t, "c1", model.RoleCustomer))
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
			}
			got := decodeBody(t, rec)
			if got["field"] != tc.field || got["error"] != tc.msg {
				t.Fatalf("body = %v", got)
			}
			if fb.callCount() != 0 {
				t.Fatalf("backend called %d times", fb.callCount())
			}
		})
	}
}

func TestCreateBookingOverCapacity(t *testing.T) {
	fb, e, _ := newCustomerEcho(t)
	fb.on("GET /api/rooms/r1", testRoom)

	rec := serve(e, http.MethodPost, "/v1/bookings",
		`{"room":"r1","checkIn":"2025-06-10","checkOut":"2025-06-12","guests":{"adults":3}}`,
		bearer(t, "c1", model.RoleCustomer))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if fb.called("POST /api/bookings") {
		t.Fatal("booking submitted despite capacity error")
	}
}

func TestCreateBookingPricesStay(t *testing.T) {
	fb, e, _ := newCustomerEcho(t)
	fb.on("GET /api/rooms/r1", testRoom)
	fb.on("POST /api/bookings", `{"data":{"_id":"b1","hotel":"h1","room":"r1","status":"pending","checkIn":"2025-06-10","checkOut":"2025-06-13","totalAmount":360}}`)

	rec := serve(e, http.MethodPost, "/v1/bookings",
		`{"room":"r1","checkIn":"2025-06-10","checkOut":"2025-06-13","guests":{"adults":2,"children":1}}`,
		bearer(t, "c1", model.RoleCustomer))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	quote, _ := decodeBody(t, rec)["quote"].(map[string]any)
	if quote["nights"] != float64(3) || quote["totalPrice"] != float64(360) {
		t.Fatalf("quote = %v", quote)
	}
}

func TestCancelBookingGuard(t *testing.T) {
	cases := []struct {
		status    model.BookingStatus
		wantCode  int
		wantCall  bool
		published bool
	}{
		{model.StatusPending, http.StatusOK, true, true},
		{model.StatusConfirmed, http.StatusOK, true, true},
		{model.StatusCheckedIn, http.StatusConflict, false, false},
		{model.StatusCheckedOut, http.StatusConflict, false, false},
		{model.StatusCancelled, http.StatusConflict, false, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			fb, e, events := newCustomerEcho(t)
			fb.on("GET /api/bookings/b1", `{"_id":"b1","hotel":"h1","room":"r1","status":"`+string(tc.status)+`","checkIn":"2025-06-10","checkOut":"2025-06-13"}`)
			fb.on("PUT /api/bookings/b1/cancel", `{"_id":"b1","hotel":"h1","room":"r1","status":"cancelled","cancellationReason":"plans changed"}`)

			rec := serve(e, http.MethodPut, "/v1/bookings/b1/cancel", `{"reason":"plans changed"}`, bearer(t, "c1", model.RoleCustomer))
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.wantCode, rec.Body.String())
			}
			if got := fb.called("PUT /api/bookings/b1/cancel"); got != tc.wantCall {
				t.Fatalf("cancel forwarded = %v, want %v", got, tc.wantCall)
			}
			if got := len(events.events) == 1; got != tc.published {
				t.Fatalf("published = %v, want %v", got, tc.published)
			}
			if tc.published {
				ev := events.events[0]
				if ev.FromStatus != tc.status || ev.ToStatus != model.StatusCancelled || ev.ActorID != "c1" {
					t.Fatalf("event = %+v", ev)
				}
			}
		})
	}
}

func TestListBookingsAnnotatesReviews(t *testing.T) {
	fb, e, _ := newCustomerEcho(t)
	fb.on("GET /api/bookings/my-bookings", `{"data":[
		{"_id":"b1","hotel":"h1","room":"r1","status":"checked_out","checkIn":"2025-06-10","checkOut":"2025-06-13"},
		{"_id":"b2","hotel":"h1","room":"r1","status":"checked_out","checkIn":"2025-05-10","checkOut":"2025-05-11"},
		{"_id":"b3","hotel":"h1","room":"r1","status":"confirmed","checkIn":"2025-07-10","checkOut":"2025-07-11"}]}`)
	fb.on("GET /api/reviews/eligibility/b1", `{"data":{"eligible":true,"hasReview":false}}`)
	fb.on("GET /api/reviews/eligibility/b2", `{"data":{"eligible":true,"hasReview":true}}`)

	rec := serve(e, http.MethodGet, "/v1/bookings", "", bearer(t, "c1", model.RoleCustomer))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	items, _ := decodeBody(t, rec)["items"].([]any)
	if len(items) != 3 {
		t.Fatalf("items = %v", items)
	}
	hasReviewAction := func(item any) bool {
		m := item.(map[string]any)
		actions, _ := m["actions"].([]any)
		for _, a := range actions {
			if a.(map[string]any)["name"] == "review" {
				return true
			}
		}
		return false
	}
	if !hasReviewAction(items[0]) {
		t.Error("b1 should offer a review")
	}
	if hasReviewAction(items[1]) {
		t.Error("b2 already reviewed")
	}
	if _, ok := items[2].(map[string]any)["review"]; ok {
		t.Error("confirmed booking should carry no eligibility")
	}
	if fb.called("GET /api/reviews/eligibility/b3") {
		t.Error("eligibility asked for a confirmed booking")
	}
}

func TestBookingHistoryUnavailableWithoutStore(t *testing.T) {
	fb, e, _ := newCustomerEcho(t)
	fb.on("GET /api/bookings/b1", `{"_id":"b1","status":"pending"}`)

	rec := serve(e, http.MethodGet, "/v1/bookings/b1/history", "", bearer(t, "c1", model.RoleCustomer))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateReviewEligibility(t *testing.T) {
	cases := []struct {
		name     string
		verdict  string
		wantCode int
	}{
		{"eligible", `{"eligible":true,"hasReview":false}`, http.StatusCreated},
		{"already reviewed", `{"eligible":true,"hasReview":true}`, http.StatusConflict},
		{"not checked out", `{"eligible":false,"hasReview":false}`, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb, e, _ := newCustomerEcho(t)
			fb.on("GET /api/reviews/eligibility/b1", tc.verdict)
			fb.on("POST /api/reviews", `{"data":{"_id":"rv1","rating":5}}`)

			rec := serve(e, http.MethodPost, "/v1/reviews", `{"booking":"b1","rating":5,"comment":"Lovely"}`, bearer(t, "c1", model.RoleCustomer))
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.wantCode, rec.Body.String())
			}
			if posted := fb.called("POST /api/reviews"); posted != (tc.wantCode == http.StatusCreated) {
				t.Fatalf("review posted = %v", posted)
			}
		})
	}
}
