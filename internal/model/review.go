package model

import "time"

// Review is a customer's rating of a completed stay.  At most one review
// exists per booking.
type Review struct {
	ID        string       `json:"_id,omitempty"`
	Booking   Ref[Booking] `json:"booking"`
	Hotel     Ref[Hotel]   `json:"hotel"`
	Customer  Ref[User]    `json:"customer"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment,omitempty"`
	CreatedAt *time.Time   `json:"createdAt,omitempty"`
}

// Eligibility is the backend's verdict on whether a booking can be reviewed.
type Eligibility struct {
	Eligible  bool `json:"eligible"`
	HasReview bool `json:"hasReview"`
}
