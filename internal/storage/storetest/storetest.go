// Package storetest runs the same behavioural checks against every
// RecordStore backend.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	interfaces "github.com/sheikh-saqib/cash-drawer-planner/internal/interfaces"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
)

func record(id int64, drawer string, total int64) models.DrawerRecord {
	createdAt := time.UnixMilli(id).UTC()
	return models.NewDrawerRecord(id, drawer, createdAt, total, 1250, map[string]int64{
		"bills100": total / 10000,
		"pennies":  total % 10000,
	})
}

// Run exercises save, list and delete on a fresh store from newStore
func Run(t *testing.T, newStore func(t *testing.T) interfaces.RecordStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty store lists nothing", func(t *testing.T) {
		s := newStore(t)
		records, err := s.ListRecords(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("saved records come back in save order", func(t *testing.T) {
		s := newStore(t)
		first := record(1718000000000, "1", 28500)
		second := record(1718000000500, "2", 20100)
		require.NoError(t, s.SaveRecord(ctx, first))
		require.NoError(t, s.SaveRecord(ctx, second))

		records, err := s.ListRecords(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, first.ID, records[0].ID)
		assert.Equal(t, "1", records[0].DrawerNumber)
		assert.Equal(t, int64(28500), records[0].TotalAmount)
		assert.Equal(t, int64(1250), records[0].SalesAmount)
		assert.Equal(t, first.Breakdown, records[0].Breakdown)
		assert.True(t, first.CreatedAt.Equal(records[0].CreatedAt))
		assert.Equal(t, second.ID, records[1].ID)
	})

	t.Run("delete keeps the others in order", func(t *testing.T) {
		s := newStore(t)
		for i, id := range []int64{1000, 2000, 3000, 4000} {
			require.NoError(t, s.SaveRecord(ctx, record(id, string(rune('A'+i)), 20000)))
		}

		require.NoError(t, s.DeleteRecord(ctx, 2000))

		records, err := s.ListRecords(ctx)
		require.NoError(t, err)
		ids := make([]int64, len(records))
		for i, r := range records {
			ids[i] = r.ID
		}
		assert.Equal(t, []int64{1000, 3000, 4000}, ids)
	})

	t.Run("deleting an unknown id reports not found", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.SaveRecord(ctx, record(1000, "1", 20000)))

		err := s.DeleteRecord(ctx, 999)
		assert.ErrorIs(t, err, interfaces.ErrRecordNotFound)

		records, err := s.ListRecords(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}
