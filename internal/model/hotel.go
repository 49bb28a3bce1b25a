package model

// Location is the postal location of a hotel.
type Location struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// Policies are the house rules displayed with a hotel.
type Policies struct {
	CheckInTime  string `json:"checkInTime,omitempty"`
	CheckOutTime string `json:"checkOutTime,omitempty"`
	Cancellation string `json:"cancellation,omitempty"`
}

// Rating is the aggregate review score of a hotel.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Hotel is a property listed by a hotel owner.  It is publicly visible only
// once an admin approved it and while it is active.
type Hotel struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    Location  `json:"location"`
	Category    string    `json:"category,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Amenities   []string  `json:"amenities,omitempty"`
	Policies    Policies  `json:"policies"`
	IsApproved  bool      `json:"isApproved"`
	IsActive    bool      `json:"isActive"`
	Rating      Rating    `json:"rating"`
	Owner       Ref[User] `json:"owner"`
}

// HotelPage is one page of a hotel listing.
type HotelPage struct {
	Hotels []Hotel `json:"hotels"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Pages  int     `json:"pages"`
}
