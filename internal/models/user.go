package models

// StaffUser is the staff_users row.
type StaffUser struct {
	UserID       string
	HotelID      string
	Username     string
	PasswordHash string
	Role         string
	IsActive     bool
	AuditFields
}
