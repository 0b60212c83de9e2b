package mapping

import (
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/models"
)

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:     d.OrderID,
		HotelID:     d.HotelID,
		TableNumber: d.TableNumber,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order without items
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:     m.OrderID,
		HotelID:     m.HotelID,
		TableNumber: m.TableNumber,
		Status:      domain.OrderStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrderItem converts a domain OrderItem to a model OrderItem
func ToModelOrderItem(d domain.OrderItem) models.OrderItem {
	return models.OrderItem{
		ItemID:        d.ItemID,
		OrderID:       d.OrderID,
		HotelID:       d.HotelID,
		MenuItemID:    d.MenuItemID,
		Name:          d.Name,
		Quantity:      d.Quantity,
		UnitPrice:     d.UnitPrice,
		Status:        string(d.Status),
		DeclineReason: toNullString(d.DeclineReason),
		BillID:        toNullString(d.BillID),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrderItem converts a model OrderItem to a domain OrderItem
func ToDomainOrderItem(m models.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		ItemID:        m.ItemID,
		OrderID:       m.OrderID,
		HotelID:       m.HotelID,
		MenuItemID:    m.MenuItemID,
		Name:          m.Name,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		Status:        domain.OrderItemStatus(m.Status),
		DeclineReason: fromNullString(m.DeclineReason),
		BillID:        fromNullString(m.BillID),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrderItemSlice converts a slice of model OrderItems
func ToDomainOrderItemSlice(ms []models.OrderItem) []domain.OrderItem {
	ds := make([]domain.OrderItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrderItem(m)
	}
	return ds
}
