package orderprocessor

import (
	"context"

	"github.com/nkiryanov/orderprocessor/internal/models"
)

// Handler applies business rules of one order type
// It gets a copy of the order and returns the order status, it never mutates the order itself
type Handler interface {
	// Short handler name, used for logs and metrics
	Name() string

	Process(ctx context.Context, userID int64, order models.Order) string
}
