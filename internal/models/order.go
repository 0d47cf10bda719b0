package models

import (
	"github.com/shopspring/decimal"
)

const (
	OrderTypeA = "A"
	OrderTypeB = "B"
	OrderTypeC = "C"
)

// Statuses an order may end a processing pass with
const (
	OrderStatusExported     = "exported"
	OrderStatusExportFailed = "export_failed"
	OrderStatusAPIFailure   = "api_failure"
	OrderStatusAPIError     = "api_error"
	OrderStatusProcessed    = "processed"
	OrderStatusPending      = "pending"
	OrderStatusError        = "error"
	OrderStatusCompleted    = "completed"
	OrderStatusInProgress   = "in_progress"
	OrderStatusUnknownType  = "unknown_type"
	OrderStatusDBError      = "db_error"
)

const (
	OrderPriorityHigh = "high"
	OrderPriorityLow  = "low"
)

type Order struct {
	ID       int64
	UserID   int64
	Type     string
	Amount   decimal.Decimal
	Flag     bool
	Status   string // empty until processed
	Priority string // empty until processed
}
