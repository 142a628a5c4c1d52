package memory

import (
	"testing"

	interfaces "github.com/sheikh-saqib/cash-drawer-planner/internal/interfaces"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/storage/storetest"
)

func TestMemoryRecordStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) interfaces.RecordStore {
		return NewMemoryRecordStore()
	})
}
