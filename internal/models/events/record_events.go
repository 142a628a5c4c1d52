package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicRecordSaved   = "till.record.saved"
	TopicRecordDeleted = "till.record.deleted"
)

type RecordSaved struct {
	EventID      string          `json:"event_id"`
	RecordID     int64           `json:"record_id"`
	DrawerNumber string          `json:"drawer_number"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	SalesAmount  decimal.Decimal `json:"sales_amount"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

type RecordDeleted struct {
	EventID    string    `json:"event_id"`
	RecordID   int64     `json:"record_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
