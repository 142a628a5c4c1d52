package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	recordDateLayout     = "01/02/2006"
	recordTimeLayout     = "3:04:05 PM"
	recordDatetimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// DrawerRecord is a saved drawer count. Records are immutable: they are
// created by an explicit save and removed by id, never updated.
type DrawerRecord struct {
	ID           int64 // creation time in ms since epoch, unique
	DrawerNumber string
	Date         string // human readable local date
	Time         string // human readable local time
	CreatedAt    time.Time
	TotalAmount  int64 // cents
	SalesAmount  int64 // cents
	Breakdown    map[string]int64
}

// NewDrawerRecord stamps a record with id and display fields derived from createdAt
func NewDrawerRecord(id int64, drawerNumber string, createdAt time.Time, total, sales int64, breakdown map[string]int64) DrawerRecord {
	copied := make(map[string]int64, len(breakdown))
	for k, v := range breakdown {
		copied[k] = v
	}

	local := createdAt.Local()
	return DrawerRecord{
		ID:           id,
		DrawerNumber: drawerNumber,
		Date:         local.Format(recordDateLayout),
		Time:         local.Format(recordTimeLayout),
		CreatedAt:    createdAt,
		TotalAmount:  total,
		SalesAmount:  sales,
		Breakdown:    copied,
	}
}

// drawerRecordJSON is the persisted shape, shared by the file and redis stores
// and compatible with records exported from the browser calculator.
type drawerRecordJSON struct {
	ID           int64            `json:"id"`
	DrawerNumber string           `json:"drawerNumber"`
	Date         string           `json:"date"`
	Time         string           `json:"time"`
	Datetime     string           `json:"datetime"`
	TotalAmount  json.RawMessage  `json:"totalAmount"`
	SalesAmount  json.RawMessage  `json:"salesAmount"`
	Breakdown    map[string]int64 `json:"breakdown"`
}

func (r DrawerRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(drawerRecordJSON{
		ID:           r.ID,
		DrawerNumber: r.DrawerNumber,
		Date:         r.Date,
		Time:         r.Time,
		Datetime:     r.CreatedAt.UTC().Format(recordDatetimeLayout),
		TotalAmount:  json.RawMessage(decimal.New(r.TotalAmount, -2).StringFixed(2)),
		SalesAmount:  json.RawMessage(decimal.New(r.SalesAmount, -2).StringFixed(2)),
		Breakdown:    r.Breakdown,
	})
}

func (r *DrawerRecord) UnmarshalJSON(data []byte) error {
	var raw drawerRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	createdAt, err := time.Parse(time.RFC3339Nano, raw.Datetime)
	if err != nil {
		return fmt.Errorf("record %d: invalid datetime %q: %w", raw.ID, raw.Datetime, err)
	}

	total, err := centsFromJSON(raw.TotalAmount)
	if err != nil {
		return fmt.Errorf("record %d: invalid totalAmount: %w", raw.ID, err)
	}
	sales, err := centsFromJSON(raw.SalesAmount)
	if err != nil {
		return fmt.Errorf("record %d: invalid salesAmount: %w", raw.ID, err)
	}

	*r = DrawerRecord{
		ID:           raw.ID,
		DrawerNumber: raw.DrawerNumber,
		Date:         raw.Date,
		Time:         raw.Time,
		CreatedAt:    createdAt,
		TotalAmount:  total,
		SalesAmount:  sales,
		Breakdown:    raw.Breakdown,
	}
	return nil
}

// centsFromJSON accepts both numbers and quoted decimals
func centsFromJSON(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return 0, err
	}
	return d.Shift(2).Round(0).IntPart(), nil
}
