package database

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKVStore keeps terminal state as key/value rows in a SQL database.
type GormKVStore struct {
	DB *gorm.DB
}

func NewGormKVStore(db *gorm.DB) *GormKVStore {
	return &GormKVStore{DB: db}
}

// Migrate membuat tabel kv_entries jika belum ada
func (s *GormKVStore) Migrate() error {
	if err := s.DB.AutoMigrate(&models.KVEntry{}); err != nil {
		return fmt.Errorf("migrate kv_entries: %w", err)
	}
	utils.InfoLogger.Println("kv_entries migrated")
	return nil
}

func (s *GormKVStore) Get(key string) ([]byte, bool, error) {
	var entry models.KVEntry
	err := s.DB.Where("`key` = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return []byte(entry.Value), true, nil
}

// Set upserts the value; the last writer wins.
func (s *GormKVStore) Set(key string, value []byte) error {
	entry := models.KVEntry{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// MemoryKVStore is an in-process store for tests and throwaway terminals.
type MemoryKVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	// FailWrites makes every Set fail, to exercise best-effort flushing.
	FailWrites bool
}

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{values: make(map[string][]byte)}
}

func (s *MemoryKVStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryKVStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return errors.New("memory store: writes disabled")
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.values[key] = v
	return nil
}
