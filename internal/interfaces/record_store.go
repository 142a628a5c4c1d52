package interfaces

import (
	"context"
	"errors"

	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
)

var ErrRecordNotFound = errors.New("record not found")

// RecordStore persists saved drawer counts. ListRecords returns records in
// storage order; sorting for display is done by the caller.
type RecordStore interface {
	SaveRecord(ctx context.Context, record models.DrawerRecord) error
	ListRecords(ctx context.Context) ([]models.DrawerRecord, error)
	DeleteRecord(ctx context.Context, id int64) error
}
