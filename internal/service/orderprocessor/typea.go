package orderprocessor

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nkiryanov/orderprocessor/internal/logger"
	"github.com/nkiryanov/orderprocessor/internal/models"
)

var (
	exportHeader   = []string{"ID", "Type", "Amount", "Flag", "Status", "Priority"}
	highValueNote  = []string{"", "", "", "", "Note", "High value order"}
	highValueLimit = decimal.NewFromInt(150)
)

// Makes export names distinct within the process even if the clock does not move
var exportSeq atomic.Uint64

// TypeAHandler exports the order to a file
type TypeAHandler struct {
	sink   ExportSink
	now    func() time.Time
	logger logger.Logger
}

func NewTypeAHandler(sink ExportSink, l logger.Logger) *TypeAHandler {
	return &TypeAHandler{
		sink:   sink,
		now:    time.Now,
		logger: l,
	}
}

func (h *TypeAHandler) Name() string { return "type_a" }

func (h *TypeAHandler) Process(ctx context.Context, userID int64, order models.Order) string {
	name := exportName(userID, h.now())

	w, err := h.sink.Open(ctx, name)
	if err != nil {
		h.logger.Warn("Failed to open export", "order_id", order.ID, "export", name, "error", err)
		return models.OrderStatusExportFailed
	}

	rows := [][]string{exportHeader, exportRow(order)}
	if order.Amount.GreaterThan(highValueLimit) {
		rows = append(rows, highValueNote)
	}

	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			h.logger.Warn("Failed to write export row", "order_id", order.ID, "export", name, "error", err)
			_ = w.Close()
			return models.OrderStatusExportFailed
		}
	}

	if err := w.Close(); err != nil {
		h.logger.Warn("Failed to close export", "order_id", order.ID, "export", name, "error", err)
		return models.OrderStatusExportFailed
	}

	h.logger.Debug("Order exported", "order_id", order.ID, "export", name, "rows", len(rows))
	return models.OrderStatusExported
}

func exportName(userID int64, now time.Time) string {
	return fmt.Sprintf("orders_type_A_%d_%d_%d", userID, now.Unix(), exportSeq.Add(1))
}

// Row with the order as it is before the export (status and priority not updated yet)
func exportRow(order models.Order) []string {
	return []string{
		strconv.FormatInt(order.ID, 10),
		order.Type,
		order.Amount.String(),
		strconv.FormatBool(order.Flag),
		order.Status,
		order.Priority,
	}
}
