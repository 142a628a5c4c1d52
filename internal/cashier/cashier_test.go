package cashier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	interfaces "github.com/sheikh-saqib/cash-drawer-planner/internal/interfaces"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models/events"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/storage/memory"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/till"
)

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []any
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return p.err
}

type failingStore struct {
	interfaces.RecordStore
}

func (failingStore) SaveRecord(ctx context.Context, record models.DrawerRecord) error {
	return errors.New("disk full")
}

// fixedClock returns the same instant on every call
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newCashier(t *testing.T, opts ...Option) (*Cashier, *memory.MemoryRecordStore, *recordingPublisher) {
	t.Helper()
	store := memory.NewMemoryRecordStore()
	pub := &recordingPublisher{}
	planner := till.NewPlanner(models.DefaultCatalog(), till.DefaultReserve)
	return NewCashier(planner, store, pub, opts...), store, pub
}

var drawerForm = map[string]string{
	"bills100": "2",
	"bills20":  "3",
	"bills5":   "4",
	"quarters": "20",
}

func TestCashier_Total(t *testing.T) {
	c, _, _ := newCashier(t)

	got, err := c.Total(drawerForm)
	require.NoError(t, err)
	assert.Equal(t, int64(28500), got.Total)

	_, err = c.Total(map[string]string{"dimes": "x"})
	assert.ErrorIs(t, err, till.ErrInvalidInput)
}

func TestCashier_Withdraw(t *testing.T) {
	c, _, _ := newCashier(t)

	plan, err := c.Withdraw(drawerForm, "85.00")
	require.NoError(t, err)
	assert.Equal(t, int64(8500), plan.Amount)
	assert.Equal(t, int64(3), plan.Counts["bills20"])

	_, err = c.Withdraw(drawerForm, "90")
	assert.ErrorIs(t, err, till.ErrExceedsAvailable)

	_, err = c.Withdraw(drawerForm, "")
	assert.ErrorIs(t, err, till.ErrInvalidAmount)

	_, err = c.Withdraw(drawerForm, "eighty")
	assert.ErrorIs(t, err, till.ErrInvalidInput)
}

func TestCashier_SaveRecord(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	c, store, pub := newCashier(t, WithClock(fixedClock(now)))
	ctx := context.Background()

	rec, err := c.SaveRecord(ctx, " 4 ", drawerForm, "85")
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), rec.ID)
	assert.Equal(t, "4", rec.DrawerNumber)
	assert.Equal(t, int64(28500), rec.TotalAmount)
	assert.Equal(t, int64(8500), rec.SalesAmount)
	assert.Len(t, rec.Breakdown, 10)

	stored, err := store.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	require.Equal(t, []string{events.TopicRecordSaved}, pub.topics)
	saved := pub.events[0].(events.RecordSaved)
	assert.Equal(t, rec.ID, saved.RecordID)
	assert.Equal(t, "285", saved.TotalAmount.String())
	assert.NotEmpty(t, saved.EventID)
}

func TestCashier_SaveRecord_IDsStayUniqueWithinAMillisecond(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	c, _, _ := newCashier(t, WithClock(fixedClock(now)))

	first, err := c.SaveRecord(context.Background(), "1", drawerForm, "")
	require.NoError(t, err)
	second, err := c.SaveRecord(context.Background(), "2", drawerForm, "")
	require.NoError(t, err)

	assert.Equal(t, first.ID+1, second.ID)
	assert.Equal(t, int64(0), first.SalesAmount)
}

func TestCashier_SaveRecord_Validation(t *testing.T) {
	c, store, pub := newCashier(t)
	ctx := context.Background()

	_, err := c.SaveRecord(ctx, "   ", drawerForm, "1")
	var tillErr *till.Error
	require.ErrorAs(t, err, &tillErr)
	assert.Equal(t, "drawerNumber", tillErr.Field)

	_, err = c.SaveRecord(ctx, "1", map[string]string{"bills1": "-2"}, "1")
	assert.ErrorIs(t, err, till.ErrInvalidInput)

	_, err = c.SaveRecord(ctx, "1", drawerForm, "-3")
	assert.ErrorIs(t, err, till.ErrInvalidInput)

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, pub.topics)
}

func TestCashier_SaveRecord_PublishFailureIsNotFatal(t *testing.T) {
	c, store, pub := newCashier(t)
	pub.err = errors.New("broker down")

	_, err := c.SaveRecord(context.Background(), "1", drawerForm, "1")
	require.NoError(t, err)

	records, _ := store.ListRecords(context.Background())
	assert.Len(t, records, 1)
}

func TestCashier_SaveRecord_StoreFailure(t *testing.T) {
	planner := till.NewPlanner(models.DefaultCatalog(), till.DefaultReserve)
	pub := &recordingPublisher{}
	c := NewCashier(planner, failingStore{}, pub)

	_, err := c.SaveRecord(context.Background(), "1", drawerForm, "1")
	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, pub.topics)
}

func TestCashier_ListRecords_NewestFirst(t *testing.T) {
	c, store, _ := newCashier(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{time.Hour, 0, 3 * time.Hour, 2 * time.Hour} {
		at := base.Add(offset)
		require.NoError(t, store.SaveRecord(ctx, models.NewDrawerRecord(at.UnixMilli(), "1", at, 0, 0, nil)))
	}

	records, err := c.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 4)
	for i := 1; i < len(records); i++ {
		assert.True(t, records[i-1].CreatedAt.After(records[i].CreatedAt))
	}
	assert.Equal(t, base.Add(3*time.Hour).UnixMilli(), records[0].ID)
}

func TestCashier_DeleteRecord(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	c, _, pub := newCashier(t, WithClock(fixedClock(now)))
	ctx := context.Background()

	rec, err := c.SaveRecord(ctx, "1", drawerForm, "")
	require.NoError(t, err)

	require.NoError(t, c.DeleteRecord(ctx, rec.ID))
	assert.Equal(t, []string{events.TopicRecordSaved, events.TopicRecordDeleted}, pub.topics)

	err = c.DeleteRecord(ctx, rec.ID)
	assert.ErrorIs(t, err, interfaces.ErrRecordNotFound)
}

func TestInstructions(t *testing.T) {
	catalog := models.DefaultCatalog()
	plan := models.WithdrawalPlan{Counts: map[string]int64{
		"bills20":  3,
		"bills1":   1,
		"quarters": 4,
		"pennies":  2,
	}}

	assert.Equal(t, []string{
		"Take 3 × $20 bills ($60.00)",
		"Take 1 × $1 bills ($1.00)",
		"Take 4 quarters ($1.00)",
		"Take 2 pennies ($0.02)",
	}, Instructions(plan, catalog))

	assert.Empty(t, Instructions(models.WithdrawalPlan{}, catalog))
}
