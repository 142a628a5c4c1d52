package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/cash-drawer-planner/internal/interfaces"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
)

// MemoryRecordStore keeps drawer records in a slice, in save order.
// It is safe for concurrent use; nothing survives a restart.
type MemoryRecordStore struct {
	mu      sync.Mutex
	records []models.DrawerRecord
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{
		records: make([]models.DrawerRecord, 0),
	}
}

func (m *MemoryRecordStore) SaveRecord(ctx context.Context, record models.DrawerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, record)
	return nil
}

// ListRecords returns a copy so callers can sort it freely
func (m *MemoryRecordStore) ListRecords(ctx context.Context) ([]models.DrawerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.DrawerRecord, len(m.records))
	copy(copied, m.records)
	return copied, nil
}

func (m *MemoryRecordStore) DeleteRecord(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0:0]
	for _, r := range m.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(m.records) {
		return interfaces.ErrRecordNotFound
	}
	m.records = kept
	return nil
}

// Compile-time check: ensure MemoryRecordStore implements RecordStore interface
var _ interfaces.RecordStore = (*MemoryRecordStore)(nil)
