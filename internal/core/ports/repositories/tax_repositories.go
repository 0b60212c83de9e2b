package repositories

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
)

// TaxSettingRepository persists a hotel's tax schedule.
type TaxSettingRepository interface {
	// ListTaxSettings returns all settings, active or not, in insertion order.
	ListTaxSettings(ctx context.Context, hotelID string) ([]domain.TaxSetting, error)

	// UpsertTaxSetting inserts or updates the setting for (hotel, taxType),
	// keeping the original insertion id.
	UpsertTaxSetting(ctx context.Context, setting domain.TaxSetting) (*domain.TaxSetting, error)
}
