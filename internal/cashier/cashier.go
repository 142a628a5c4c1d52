package cashier

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	interfaces "github.com/sheikh-saqib/cash-drawer-planner/internal/interfaces"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models/events"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/till"
)

// Cashier is the entry point for both the HTTP API and the CLI. It turns raw
// form input into planner calls and keeps the saved drawer records.
type Cashier struct {
	planner   *till.Planner
	store     interfaces.RecordStore
	publisher interfaces.EventPublisher
	log       zerolog.Logger
	now       func() time.Time

	idMu   sync.Mutex // guards lastID
	lastID int64
}

// Option customises a Cashier
type Option func(*Cashier)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(c *Cashier) { c.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Cashier) { c.log = log }
}

// NewCashier wires a planner to a record store and an event publisher
func NewCashier(planner *till.Planner, store interfaces.RecordStore, publisher interfaces.EventPublisher, opts ...Option) *Cashier {
	c := &Cashier{
		planner:   planner,
		store:     store,
		publisher: publisher,
		log:       zerolog.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cashier) Catalog() models.Catalog {
	return c.planner.Catalog
}

func (c *Cashier) Reserve() int64 {
	return c.planner.Reserve
}

// DrawerTotal is the result of counting a drawer
type DrawerTotal struct {
	Snapshot models.DrawerSnapshot
	Total    int64
}

// Total counts the drawer described by raw form values
func (c *Cashier) Total(raw map[string]string) (DrawerTotal, error) {
	snapshot, err := till.FromRawCounts(c.planner.Catalog, raw)
	if err != nil {
		return DrawerTotal{}, err
	}
	total, err := c.planner.Total(snapshot)
	if err != nil {
		return DrawerTotal{}, err
	}
	return DrawerTotal{Snapshot: snapshot, Total: total}, nil
}

// Withdraw plans taking salesAmount out of the drawer described by raw
func (c *Cashier) Withdraw(raw map[string]string, salesAmount string) (models.WithdrawalPlan, error) {
	target, err := till.ParseAmount("salesAmount", salesAmount)
	if err != nil {
		return models.WithdrawalPlan{}, err
	}

	snapshot, err := till.FromRawCounts(c.planner.Catalog, raw)
	if err != nil {
		return models.WithdrawalPlan{}, err
	}

	plan, err := c.planner.Plan(target, snapshot)
	if err != nil {
		c.log.Debug().Err(err).Int64("target", target).Msg("withdrawal rejected")
		return models.WithdrawalPlan{}, err
	}

	c.log.Info().
		Int64("amount", plan.Amount).
		Int64("drawer_total", plan.DrawerTotal).
		Int64("pieces", plan.Pieces()).
		Msg("withdrawal planned")
	return plan, nil
}

// SaveRecord stores the current drawer count under drawerNumber. The sales
// amount may be blank; it is recorded as zero.
func (c *Cashier) SaveRecord(ctx context.Context, drawerNumber string, raw map[string]string, salesAmount string) (models.DrawerRecord, error) {
	drawerNumber = strings.TrimSpace(drawerNumber)
	if drawerNumber == "" {
		return models.DrawerRecord{}, till.MissingDrawerNumber()
	}

	counted, err := c.Total(raw)
	if err != nil {
		return models.DrawerRecord{}, err
	}

	sales, err := till.ParseAmount("salesAmount", salesAmount)
	if err != nil {
		return models.DrawerRecord{}, err
	}
	if sales < 0 {
		return models.DrawerRecord{}, &till.Error{Kind: till.KindInvalidInput, Field: "salesAmount", Err: errors.New("amount cannot be negative")}
	}

	now := c.now()
	record := models.NewDrawerRecord(
		c.nextID(now),
		drawerNumber,
		now,
		counted.Total,
		sales,
		counted.Snapshot.Breakdown(c.planner.Catalog),
	)

	if err := c.store.SaveRecord(ctx, record); err != nil {
		return models.DrawerRecord{}, fmt.Errorf("error saving record for drawer %s: %w", drawerNumber, err)
	}

	c.log.Info().Int64("record_id", record.ID).Str("drawer", drawerNumber).Msg("record saved")

	c.publish(ctx, events.TopicRecordSaved, events.RecordSaved{
		EventID:      uuid.New().String(),
		RecordID:     record.ID,
		DrawerNumber: record.DrawerNumber,
		TotalAmount:  till.DecimalFromMinor(record.TotalAmount),
		SalesAmount:  till.DecimalFromMinor(record.SalesAmount),
		OccurredAt:   now,
	})
	return record, nil
}

// ListRecords returns saved records, newest first
func (c *Cashier) ListRecords(ctx context.Context) ([]models.DrawerRecord, error) {
	records, err := c.store.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID > records[j].ID
	})
	return records, nil
}

// DeleteRecord removes exactly the record with the given id
func (c *Cashier) DeleteRecord(ctx context.Context, id int64) error {
	if err := c.store.DeleteRecord(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrRecordNotFound) {
			return err
		}
		return fmt.Errorf("error deleting record %d: %w", id, err)
	}

	c.log.Info().Int64("record_id", id).Msg("record deleted")

	c.publish(ctx, events.TopicRecordDeleted, events.RecordDeleted{
		EventID:    uuid.New().String(),
		RecordID:   id,
		OccurredAt: c.now(),
	})
	return nil
}

// nextID uses the creation time in milliseconds, bumped past the previous id
// when two saves land in the same millisecond.
func (c *Cashier) nextID(now time.Time) int64 {
	c.idMu.Lock()
	defer c.idMu.Unlock()

	id := now.UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

// publish never fails the caller: the record store is the source of truth
func (c *Cashier) publish(ctx context.Context, topic string, event any) {
	if err := c.publisher.Publish(ctx, topic, event); err != nil {
		c.log.Warn().Err(err).Str("topic", topic).Msg("failed to publish event")
	}
}
