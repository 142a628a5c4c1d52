// Package storage holds helpers shared by the record store backends that keep
// all records in a single JSON array (file, redis).
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
)

// DecodeRecords parses a JSON array of records. Empty input is an empty list.
func DecodeRecords(data []byte) ([]models.DrawerRecord, error) {
	if len(data) == 0 {
		return []models.DrawerRecord{}, nil
	}
	var records []models.DrawerRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error decoding records: %w", err)
	}
	if records == nil {
		records = []models.DrawerRecord{}
	}
	return records, nil
}

func EncodeRecords(records []models.DrawerRecord) ([]byte, error) {
	if records == nil {
		records = []models.DrawerRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("error encoding records: %w", err)
	}
	return data, nil
}

// WithoutRecord drops the record with the given id, keeping the others in order
func WithoutRecord(records []models.DrawerRecord, id int64) ([]models.DrawerRecord, bool) {
	kept := make([]models.DrawerRecord, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return kept, len(kept) != len(records)
}
