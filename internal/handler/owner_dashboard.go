package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// recentBookingsLimit is how many bookings the dashboard previews.
const recentBookingsLimit = 5

// DashboardStats summarises an owner's hotels and bookings.
type DashboardStats struct {
	Hotels         int                         `json:"hotels"`
	ApprovedHotels int                         `json:"approvedHotels"`
	Bookings       int                         `json:"bookings"`
	ByStatus       map[model.BookingStatus]int `json:"byStatus"`
	Revenue        float64                     `json:"revenue"`
	Recent         []ownerBooking              `json:"recent"`
}

// summarize counts bookings per status.  Revenue is the total of paid
// bookings that were not cancelled.
func summarize(hotels []model.Hotel, bookings []model.Booking) DashboardStats {
	st := DashboardStats{
		Hotels:   len(hotels),
		Bookings: len(bookings),
		ByStatus: map[model.BookingStatus]int{
			model.StatusPending:    0,
			model.StatusConfirmed:  0,
			model.StatusCheckedIn:  0,
			model.StatusCheckedOut: 0,
			model.StatusCancelled:  0,
		},
		Recent: []ownerBooking{},
	}
	for _, h := range hotels {
		if h.IsApproved {
			st.ApprovedHotels++
		}
	}
	for _, b := range bookings {
		st.ByStatus[b.Status]++
		if b.PaymentStatus == model.PaymentPaid && b.Status != model.StatusCancelled {
			st.Revenue += b.TotalAmount
		}
	}
	for i := 0; i < len(bookings) && i < recentBookingsLimit; i++ {
		st.Recent = append(st.Recent, newOwnerBooking(bookings[i]))
	}
	return st
}

// Dashboard loads the owner's hotels and bookings in parallel and returns
// their summary.
func (h *OwnerHandler) Dashboard(c echo.Context) error {
	token := middleware.Token(c)
	var (
		hotels   []model.Hotel
		bookings []model.Booking
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		hotels, err = h.API.MyHotels(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = h.API.OwnerBookings(ctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summarize(hotels, bookings))
}
