package pgsql

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_ops_app/internal/models"
	"github.com/SscSPs/hotel_ops_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taxSettingColumns = `
	id, hotel_id, tax_type, label, percent, is_active, created_at, created_by, last_updated_at, last_updated_by, version`

type PgxTaxSettingRepository struct {
	BaseRepository
}

func newPgxTaxSettingRepository(pool *pgxpool.Pool) portsrepo.TaxSettingRepository {
	return &PgxTaxSettingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaxSettingRepository = (*PgxTaxSettingRepository)(nil)

func scanTaxSetting(row pgx.Row) (domain.TaxSetting, error) {
	var m models.TaxSetting
	err := row.Scan(
		&m.ID,
		&m.HotelID,
		&m.TaxType,
		&m.Label,
		&m.Percent,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return domain.TaxSetting{}, err
	}
	return mapping.ToDomainTaxSetting(m), nil
}

// ListTaxSettings returns all settings in insertion order.
func (r *PgxTaxSettingRepository) ListTaxSettings(ctx context.Context, hotelID string) ([]domain.TaxSetting, error) {
	query := `SELECT` + taxSettingColumns + ` FROM tax_settings WHERE hotel_id = $1 ORDER BY id`
	rows, err := r.Pool.Query(ctx, query, hotelID)
	if err != nil {
		return nil, mapError(err, "failed to query tax settings for hotel "+hotelID)
	}
	defer rows.Close()

	settings := []domain.TaxSetting{}
	for rows.Next() {
		s, err := scanTaxSetting(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan tax setting for hotel "+hotelID)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating tax settings for hotel "+hotelID)
	}
	return settings, nil
}

// UpsertTaxSetting inserts or updates (hotel, taxType), keeping the original id.
func (r *PgxTaxSettingRepository) UpsertTaxSetting(ctx context.Context, setting domain.TaxSetting) (*domain.TaxSetting, error) {
	query := `
		INSERT INTO tax_settings (hotel_id, tax_type, label, percent, is_active, created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
		ON CONFLICT (hotel_id, tax_type) DO UPDATE
		SET label = EXCLUDED.label,
		    percent = EXCLUDED.percent,
		    is_active = EXCLUDED.is_active,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by,
		    version = tax_settings.version + 1
		RETURNING` + taxSettingColumns

	saved, err := scanTaxSetting(r.Pool.QueryRow(ctx, query,
		setting.HotelID,
		string(setting.TaxType),
		setting.Label,
		setting.Percent,
		setting.IsActive,
		setting.CreatedAt,
		setting.CreatedBy,
		setting.LastUpdatedAt,
		setting.LastUpdatedBy,
	))
	if err != nil {
		return nil, mapError(err, "failed to upsert tax setting "+string(setting.TaxType))
	}
	return &saved, nil
}
