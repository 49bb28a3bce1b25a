package model

// Price is the nightly rate of a room.
type Price struct {
	Base     float64 `json:"base"`
	Currency string  `json:"currency,omitempty"`
}

// Capacity bounds the guests a room can hold.
type Capacity struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// Total returns the combined adult and child capacity.
func (c Capacity) Total() int { return c.Adults + c.Children }

// Room belongs to exactly one hotel.  Available never exceeds Quantity.
type Room struct {
	ID        string     `json:"_id"`
	Hotel     Ref[Hotel] `json:"hotel"`
	Name      string     `json:"name"`
	Type      string     `json:"type,omitempty"`
	Price     Price      `json:"price"`
	Capacity  Capacity   `json:"capacity"`
	Quantity  int        `json:"quantity"`
	Available int        `json:"available"`
	Amenities []string   `json:"amenities,omitempty"`
	Images    []string   `json:"images,omitempty"`
}
