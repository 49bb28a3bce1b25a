package model

// Role is one of the three mutually exclusive user roles.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleHotelOwner Role = "hotel_owner"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleHotelOwner, RoleAdmin:
		return true
	}
	return false
}

// User is the profile snapshot returned by the backend and kept in the
// user cookie.  IsApproved gates the hotel-owner dashboard.
type User struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	IsApproved   bool   `json:"isApproved"`
	Phone        string `json:"phone,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// NeedsApproval reports whether the user is a hotel owner still waiting for an admin.
func (u User) NeedsApproval() bool { return u.Role == RoleHotelOwner && !u.IsApproved }

// Session is the client-held token and profile pair.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
