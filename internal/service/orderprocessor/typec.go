package orderprocessor

import (
	"context"

	"github.com/nkiryanov/orderprocessor/internal/models"
)

// TypeCHandler completes flagged orders
type TypeCHandler struct{}

func (TypeCHandler) Name() string { return "type_c" }

func (TypeCHandler) Process(_ context.Context, _ int64, order models.Order) string {
	if order.Flag {
		return models.OrderStatusCompleted
	}
	return models.OrderStatusInProgress
}
