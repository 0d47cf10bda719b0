package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nkiryanov/orderprocessor/internal/models"
)

// Order repository interface
type OrderRepo interface {
	// Create order with empty status and priority
	// If the order breaks storage constraints must return apperrors.ErrOrderInvalid
	CreateOrder(ctx context.Context, userID int64, orderType string, amount decimal.Decimal, flag bool) (models.Order, error)

	// All orders of the user ordered by id, empty if none
	ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)

	// Set order status and priority
	// If order not found must return apperrors.ErrOrderNotFound
	UpdateOrderStatus(ctx context.Context, orderID int64, status string, priority string) error
}
