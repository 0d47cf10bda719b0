package orderprocessor

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nkiryanov/orderprocessor/internal/logger"
	"github.com/nkiryanov/orderprocessor/internal/models"
)

const scoreLimit = 50

var lowAmountLimit = decimal.NewFromInt(100)

// TypeBHandler asks the remote classifier about the order
type TypeBHandler struct {
	classifier Classifier
	logger     logger.Logger
}

func NewTypeBHandler(classifier Classifier, l logger.Logger) *TypeBHandler {
	return &TypeBHandler{
		classifier: classifier,
		logger:     l,
	}
}

func (h *TypeBHandler) Name() string { return "type_b" }

func (h *TypeBHandler) Process(ctx context.Context, _ int64, order models.Order) string {
	c, err := h.classifier.Classify(ctx, order.ID)
	if err != nil {
		h.logger.Warn("Failed to classify order", "order_id", order.ID, "error", err)
		return models.OrderStatusAPIFailure
	}

	if !c.IsSuccess() {
		h.logger.Info("Classifier rejected order", "order_id", order.ID, "classifier_status", c.Status)
		return models.OrderStatusAPIError
	}

	return classifiedStatus(c.Data, order.Amount, order.Flag)
}

// Conditions overlap: the first matching case wins, so keep the order of cases
func classifiedStatus(score float64, amount decimal.Decimal, flag bool) string {
	switch {
	case score >= scoreLimit && amount.LessThan(lowAmountLimit):
		return models.OrderStatusProcessed
	case score < scoreLimit || flag:
		return models.OrderStatusPending
	default:
		return models.OrderStatusError
	}
}
