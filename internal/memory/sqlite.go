package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type SQLiteConfig struct {
	Path        string        `mapstructure:"path"`
	InMemory    bool          `mapstructure:"in_memory"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

// memoryRecord is the persisted shape of one telemetry entry. Append-only:
// rows are inserted, never updated.
type memoryRecord struct {
	ID          uint64    `gorm:"primaryKey"`
	Identity    string    `gorm:"size:128;not null;index:idx_memory_ns,priority:1"`
	Kind        string    `gorm:"size:64;not null;index:idx_memory_ns,priority:2"`
	RecordID    string    `gorm:"size:64;not null;uniqueIndex"`
	PayloadJSON string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
}

// SQLite persists telemetry records through gorm so sessions survive a
// process restart.
type SQLite struct {
	db *gorm.DB
}

var _ Store = (*SQLite)(nil)

func OpenSQLite(ctx context.Context, cfg SQLiteConfig) (*SQLite, error) {
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	dsn, err := dsnFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&memoryRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLite) Put(ctx context.Context, ns Namespace, id string, record map[string]any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal memory record: %w", err)
	}
	rec := memoryRecord{
		Identity:    ns.Identity,
		Kind:        ns.Kind,
		RecordID:    id,
		PayloadJSON: string(payload),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert memory record: %w", err)
	}
	return nil
}

func (s *SQLite) List(ctx context.Context, ns Namespace) ([]Entry, error) {
	var rows []memoryRecord
	err := s.db.WithContext(ctx).
		Where("identity = ? AND kind = ?", ns.Identity, ns.Kind).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list memory records: %w", err)
	}
	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		var record map[string]any
		if err := json.Unmarshal([]byte(row.PayloadJSON), &record); err != nil {
			return nil, fmt.Errorf("decode memory record %s: %w", row.RecordID, err)
		}
		out = append(out, Entry{ID: row.RecordID, Record: record})
	}
	return out, nil
}

func dsnFromConfig(cfg SQLiteConfig) (string, error) {
	timeoutMS := int(cfg.BusyTimeout / time.Millisecond)
	if cfg.InMemory {
		return fmt.Sprintf("file:iva?mode=memory&cache=shared&_busy_timeout=%d", timeoutMS), nil
	}
	if cfg.Path == "" {
		return "", errors.New("sqlite path is required when in_memory=false")
	}
	return fmt.Sprintf("file:%s?_busy_timeout=%d", cfg.Path, timeoutMS), nil
}
