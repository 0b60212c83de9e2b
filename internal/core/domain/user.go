package domain

// StaffUser is a hotel staff account that can sign in.
type StaffUser struct {
	UserID       string `json:"userID"`
	HotelID      string `json:"hotelID"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// Actor returns the identity the user acts as.
func (u StaffUser) Actor() Actor {
	return Actor{UserID: u.UserID, Role: u.Role, HotelID: u.HotelID}
}
