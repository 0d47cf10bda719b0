package orderprocessor

import (
	"context"

	"github.com/nkiryanov/orderprocessor/internal/models"
)

type UnknownHandler struct{}

func (UnknownHandler) Name() string { return "unknown" }

func (UnknownHandler) Process(context.Context, int64, models.Order) string {
	return models.OrderStatusUnknownType
}
