package mapping

import (
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/models"
)

// ToModelStaffUser converts a domain StaffUser to a model StaffUser
func ToModelStaffUser(d domain.StaffUser) models.StaffUser {
	return models.StaffUser{
		UserID:       d.UserID,
		HotelID:      d.HotelID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStaffUser converts a model StaffUser to a domain StaffUser
func ToDomainStaffUser(m models.StaffUser) domain.StaffUser {
	return domain.StaffUser{
		UserID:       m.UserID,
		HotelID:      m.HotelID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
