package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/nkiryanov/orderprocessor/internal/apperrors"
	"github.com/nkiryanov/orderprocessor/internal/models"
	"github.com/nkiryanov/orderprocessor/internal/repository"
)

var _ repository.OrderRepo = (*OrderRepo)(nil)

type OrderRepo struct {
	DB DBTX
}

const createOrder = `-- name: CreateOrder
INSERT INTO orders (user_id, type, amount, flag)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, type, amount, flag, status, priority
`

func (r *OrderRepo) CreateOrder(ctx context.Context, userID int64, orderType string, amount decimal.Decimal, flag bool) (models.Order, error) {
	rows, _ := r.DB.Query(ctx, createOrder, userID, orderType, amount, flag)
	o, err := pgx.CollectOneRow(rows, rowToOrder)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return o, fmt.Errorf("%w: %s", apperrors.ErrOrderInvalid, pgErr.ConstraintName)
		}
		return o, fmt.Errorf("%w: create order: %w", apperrors.ErrPersistence, err)
	}

	return o, nil
}

const listOrdersByUser = `-- name: ListOrdersByUser
SELECT id, user_id, type, amount, flag, status, priority
FROM orders
WHERE user_id = $1
ORDER BY id
`

func (r *OrderRepo) ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	rows, _ := r.DB.Query(ctx, listOrdersByUser, userID)
	orders, err := pgx.CollectRows(rows, rowToOrder)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %w", apperrors.ErrPersistence, err)
	}

	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

const updateOrderStatus = `-- name: UpdateOrderStatus
UPDATE orders
SET status = $2, priority = $3, modified_at = now()
WHERE id = $1
`

func (r *OrderRepo) UpdateOrderStatus(ctx context.Context, orderID int64, status string, priority string) error {
	tag, err := r.DB.Exec(ctx, updateOrderStatus, orderID, status, priority)
	switch {
	case err != nil:
		return fmt.Errorf("%w: update order %d: %w", apperrors.ErrPersistence, orderID, err)
	case tag.RowsAffected() == 0:
		return fmt.Errorf("%w: %w: %d", apperrors.ErrPersistence, apperrors.ErrOrderNotFound, orderID)
	default:
		return nil
	}
}

func rowToOrder(row pgx.CollectableRow) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Type, &o.Amount, &o.Flag, &o.Status, &o.Priority)
	return o, err
}
