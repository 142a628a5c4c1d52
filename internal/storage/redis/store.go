package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	interfaces "github.com/sheikh-saqib/cash-drawer-planner/internal/interfaces"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/storage"
)

// DefaultKey is the key the browser calculator used for its record array
const DefaultKey = "cvsTillRecords"

// maxRetries bounds optimistic retries when another writer touches the key
const maxRetries = 5

var errNotFound = interfaces.ErrRecordNotFound

// getter is satisfied by both the client and a WATCH transaction
type getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

// RedisRecordStore keeps the whole record array as a JSON string under one
// key. Updates run as WATCH/MULTI transactions and retry on conflict.
type RedisRecordStore struct {
	client goredis.UniversalClient
	key    string
}

func NewRedisRecordStore(client goredis.UniversalClient, key string) *RedisRecordStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisRecordStore{
		client: client,
		key:    key,
	}
}

func (s *RedisRecordStore) SaveRecord(ctx context.Context, record models.DrawerRecord) error {
	return s.update(ctx, func(records []models.DrawerRecord) ([]models.DrawerRecord, error) {
		return append(records, record), nil
	})
}

func (s *RedisRecordStore) ListRecords(ctx context.Context) ([]models.DrawerRecord, error) {
	return s.load(ctx, s.client)
}

func (s *RedisRecordStore) DeleteRecord(ctx context.Context, id int64) error {
	return s.update(ctx, func(records []models.DrawerRecord) ([]models.DrawerRecord, error) {
		kept, removed := storage.WithoutRecord(records, id)
		if !removed {
			return nil, errNotFound
		}
		return kept, nil
	})
}

func (s *RedisRecordStore) load(ctx context.Context, c getter) ([]models.DrawerRecord, error) {
	data, err := c.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return []models.DrawerRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading records from redis: %w", err)
	}
	return storage.DecodeRecords(data)
}

func (s *RedisRecordStore) update(ctx context.Context, change func([]models.DrawerRecord) ([]models.DrawerRecord, error)) error {
	txf := func(tx *goredis.Tx) error {
		records, err := s.load(ctx, tx)
		if err != nil {
			return err
		}

		updated, err := change(records)
		if err != nil {
			return err
		}

		data, err := storage.EncodeRecords(updated)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, s.key, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := s.client.Watch(ctx, txf, s.key)
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, errNotFound) {
			return fmt.Errorf("error writing records to redis: %w", err)
		}
		return err
	}
	return fmt.Errorf("error writing records to redis: %w", goredis.TxFailedErr)
}

var _ interfaces.RecordStore = (*RedisRecordStore)(nil)
