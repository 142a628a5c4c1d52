package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	interfaces "github.com/sheikh-saqib/cash-drawer-planner/internal/interfaces"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
)

const schema = `CREATE TABLE IF NOT EXISTS drawer_records (
	seq           BIGSERIAL,
	id            BIGINT PRIMARY KEY,
	drawer_number TEXT NOT NULL,
	record_date   TEXT NOT NULL,
	record_time   TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	total_amount  NUMERIC(14,2) NOT NULL,
	sales_amount  NUMERIC(14,2) NOT NULL,
	breakdown     JSONB NOT NULL
)`

type PostgresRecordStore struct {
	db *sql.DB
}

// Open connects with the lib/pq driver and checks the connection
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("error closing database after ping failure: %w", closeErr)
		}
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return db, nil
}

func NewPostgresRecordStore(db *sql.DB) *PostgresRecordStore {
	return &PostgresRecordStore{
		db: db,
	}
}

// EnsureSchema creates the drawer_records table when it is missing
func (p *PostgresRecordStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating drawer_records table: %w", err)
	}
	return nil
}

func (p *PostgresRecordStore) SaveRecord(ctx context.Context, record models.DrawerRecord) error {
	const query = `INSERT INTO drawer_records
	(id, drawer_number, record_date, record_time, created_at, total_amount, sales_amount, breakdown)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	breakdown, err := json.Marshal(record.Breakdown)
	if err != nil {
		return fmt.Errorf("error encoding breakdown: %w", err)
	}

	_, err = p.db.ExecContext(ctx, query,
		record.ID,
		record.DrawerNumber,
		record.Date,
		record.Time,
		record.CreatedAt,
		decimal.New(record.TotalAmount, -2),
		decimal.New(record.SalesAmount, -2),
		breakdown,
	)
	if err != nil {
		return fmt.Errorf("error inserting drawer record: %w", err)
	}
	return nil
}

func (p *PostgresRecordStore) ListRecords(ctx context.Context) ([]models.DrawerRecord, error) {
	const query = `SELECT id, drawer_number, record_date, record_time, created_at, total_amount, sales_amount, breakdown
	FROM drawer_records ORDER BY seq`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error fetching drawer records: %w", err)
	}
	defer rows.Close()

	records := make([]models.DrawerRecord, 0)
	for rows.Next() {
		var (
			record       models.DrawerRecord
			total, sales decimal.Decimal
			breakdown    []byte
		)
		err := rows.Scan(
			&record.ID,
			&record.DrawerNumber,
			&record.Date,
			&record.Time,
			&record.CreatedAt,
			&total,
			&sales,
			&breakdown,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning drawer record: %w", err)
		}
		if err := json.Unmarshal(breakdown, &record.Breakdown); err != nil {
			return nil, fmt.Errorf("error decoding breakdown of record %d: %w", record.ID, err)
		}
		record.TotalAmount = total.Shift(2).IntPart()
		record.SalesAmount = sales.Shift(2).IntPart()
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over drawer records: %w", err)
	}
	return records, nil
}

func (p *PostgresRecordStore) DeleteRecord(ctx context.Context, id int64) error {
	const query = `DELETE FROM drawer_records WHERE id = $1`

	result, err := p.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting drawer record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if affected == 0 {
		return interfaces.ErrRecordNotFound
	}
	return nil
}

var _ interfaces.RecordStore = (*PostgresRecordStore)(nil)
