package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	interfaces "github.com/sheikh-saqib/cash-drawer-planner/internal/interfaces"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/storage"
)

// FileRecordStore keeps every record in one JSON array file. Writes go to a
// temporary file first and are renamed over the original.
type FileRecordStore struct {
	mu   sync.Mutex
	path string
}

func NewFileRecordStore(path string) *FileRecordStore {
	return &FileRecordStore{path: path}
}

func (f *FileRecordStore) SaveRecord(ctx context.Context, record models.DrawerRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	records, err := f.read()
	if err != nil {
		return err
	}
	return f.write(append(records, record))
}

func (f *FileRecordStore) ListRecords(ctx context.Context) ([]models.DrawerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.read()
}

func (f *FileRecordStore) DeleteRecord(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	records, err := f.read()
	if err != nil {
		return err
	}

	kept, removed := storage.WithoutRecord(records, id)
	if !removed {
		return interfaces.ErrRecordNotFound
	}
	return f.write(kept)
}

func (f *FileRecordStore) read() ([]models.DrawerRecord, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.DrawerRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading records file: %w", err)
	}
	return storage.DecodeRecords(data)
}

func (f *FileRecordStore) write(records []models.DrawerRecord) error {
	data, err := storage.EncodeRecords(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating records directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary records file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing records file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing records file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("error replacing records file: %w", err)
	}
	return nil
}

var _ interfaces.RecordStore = (*FileRecordStore)(nil)
