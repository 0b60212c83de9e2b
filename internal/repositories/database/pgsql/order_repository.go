package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_ops_app/internal/models"
	"github.com/SscSPs/hotel_ops_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderItemColumns = `
	item_id, order_id, hotel_id, menu_item_id, name, quantity, unit_price, status,
	decline_reason, bill_id, created_at, created_by, last_updated_at, last_updated_by, version`

type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryWithTx {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryWithTx = (*PgxOrderRepository)(nil)

func scanOrderItem(row pgx.Row) (domain.OrderItem, error) {
	var m models.OrderItem
	err := row.Scan(
		&m.ItemID,
		&m.OrderID,
		&m.HotelID,
		&m.MenuItemID,
		&m.Name,
		&m.Quantity,
		&m.UnitPrice,
		&m.Status,
		&m.DeclineReason,
		&m.BillID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return domain.OrderItem{}, err
	}
	return mapping.ToDomainOrderItem(m), nil
}

func collectOrderItems(rows pgx.Rows, msg string) ([]domain.OrderItem, error) {
	defer rows.Close()
	items := []domain.OrderItem{}
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, mapError(err, msg)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, msg)
	}
	return items, nil
}

func (r *PgxOrderRepository) findOrder(ctx context.Context, db querier, hotelID, orderID string, forUpdate bool) (*domain.Order, error) {
	query := `
		SELECT order_id, hotel_id, table_number, status, created_at, created_by, last_updated_at, last_updated_by, version
		FROM orders
		WHERE hotel_id = $1 AND order_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var m models.Order
	err := db.QueryRow(ctx, query, hotelID, orderID).Scan(
		&m.OrderID,
		&m.HotelID,
		&m.TableNumber,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return nil, mapError(err, "failed to find order "+orderID)
	}
	order := mapping.ToDomainOrder(m)
	return &order, nil
}

func (r *PgxOrderRepository) listItems(ctx context.Context, db querier, hotelID, orderID string, forUpdate bool) ([]domain.OrderItem, error) {
	query := `SELECT` + orderItemColumns + `
		FROM order_items
		WHERE hotel_id = $1 AND order_id = $2
		ORDER BY seq`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := db.Query(ctx, query, hotelID, orderID)
	if err != nil {
		return nil, mapError(err, "failed to query items for order "+orderID)
	}
	return collectOrderItems(rows, "failed to scan item for order "+orderID)
}

// FindOrderByID retrieves an order and its items ordered by creation.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, hotelID, orderID string) (*domain.Order, error) {
	order, err := r.findOrder(ctx, r.Pool, hotelID, orderID, false)
	if err != nil {
		return nil, err
	}
	items, err := r.listItems(ctx, r.Pool, hotelID, orderID, false)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// FindOrderItemByID retrieves a single KOT item.
func (r *PgxOrderRepository) FindOrderItemByID(ctx context.Context, hotelID, itemID string) (*domain.OrderItem, error) {
	query := `SELECT` + orderItemColumns + ` FROM order_items WHERE hotel_id = $1 AND item_id = $2`
	item, err := scanOrderItem(r.Pool.QueryRow(ctx, query, hotelID, itemID))
	if err != nil {
		return nil, mapError(err, "failed to find order item "+itemID)
	}
	return &item, nil
}

// SaveOrder inserts a new order row.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	m := mapping.ToModelOrder(order)
	query := `
		INSERT INTO orders (order_id, hotel_id, table_number, status, created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db(tx).Exec(ctx, query,
		m.OrderID,
		m.HotelID,
		m.TableNumber,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	return mapError(err, "failed to insert order "+m.OrderID)
}

// SaveOrderItems inserts the items in one batch, preserving slice order.
func (r *PgxOrderRepository) SaveOrderItems(ctx context.Context, tx pgx.Tx, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO order_items (item_id, order_id, hotel_id, menu_item_id, name, quantity, unit_price, status,
			decline_reason, bill_id, created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelOrderItem(item)
		batch.Queue(query,
			m.ItemID,
			m.OrderID,
			m.HotelID,
			m.MenuItemID,
			m.Name,
			m.Quantity,
			m.UnitPrice,
			m.Status,
			m.DeclineReason,
			m.BillID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
			m.Version,
		)
	}

	var br pgx.BatchResults
	if tx != nil {
		br = tx.SendBatch(ctx, batch)
	} else {
		br = r.Pool.SendBatch(ctx, batch)
	}
	return mapError(br.Close(), "failed to insert order items")
}

// CompareAndSetItemStatus updates the item only while it is still in expected.
func (r *PgxOrderRepository) CompareAndSetItemStatus(ctx context.Context, hotelID, itemID string, expected, next domain.OrderItemStatus, declineReason *string, userID string, at time.Time) (*domain.OrderItem, error) {
	query := `
		UPDATE order_items
		SET status = $4,
		    decline_reason = COALESCE($5, decline_reason),
		    last_updated_at = $6,
		    last_updated_by = $7,
		    version = version + 1
		WHERE hotel_id = $1 AND item_id = $2 AND status = $3
		RETURNING` + orderItemColumns

	item, err := scanOrderItem(r.Pool.QueryRow(ctx, query, hotelID, itemID, string(expected), string(next), declineReason, at, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, "failed to update status of order item "+itemID)
	}
	return &item, nil
}

// LockOrder selects the order row FOR UPDATE.
func (r *PgxOrderRepository) LockOrder(ctx context.Context, tx pgx.Tx, hotelID, orderID string) (*domain.Order, error) {
	return r.findOrder(ctx, tx, hotelID, orderID, true)
}

// FindOrderItemsForUpdate selects every item of the order FOR UPDATE.
func (r *PgxOrderRepository) FindOrderItemsForUpdate(ctx context.Context, tx pgx.Tx, hotelID, orderID string) ([]domain.OrderItem, error) {
	return r.listItems(ctx, tx, hotelID, orderID, true)
}

// MarkItemsBilled stamps billID on the items. With complete set, approved and
// ready items become completed in one step: settling a table check counts as
// serving them, so approved items skip ready here. Completed items keep their
// status.
func (r *PgxOrderRepository) MarkItemsBilled(ctx context.Context, tx pgx.Tx, hotelID, billID string, itemIDs []string, complete bool, userID string, at time.Time) error {
	query := `
		UPDATE order_items
		SET bill_id = $3,
		    status = CASE WHEN $4 AND status IN ('approved', 'ready') THEN 'completed' ELSE status END,
		    last_updated_at = $5,
		    last_updated_by = $6,
		    version = version + 1
		WHERE hotel_id = $1 AND item_id = ANY($2) AND bill_id IS NULL`
	tag, err := r.db(tx).Exec(ctx, query, hotelID, itemIDs, billID, complete, at, userID)
	if err != nil {
		return mapError(err, "failed to mark items billed for bill "+billID)
	}
	if tag.RowsAffected() != int64(len(itemIDs)) {
		return apperrors.ErrConcurrencyConflict
	}
	return nil
}

// CloseOrder marks the order closed.
func (r *PgxOrderRepository) CloseOrder(ctx context.Context, tx pgx.Tx, hotelID, orderID, userID string, at time.Time) error {
	query := `
		UPDATE orders
		SET status = 'closed', last_updated_at = $3, last_updated_by = $4, version = version + 1
		WHERE hotel_id = $1 AND order_id = $2`
	tag, err := r.db(tx).Exec(ctx, query, hotelID, orderID, at, userID)
	if err != nil {
		return mapError(err, "failed to close order "+orderID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
