package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// document is the single-table document store backing the KV.
type document struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (document) TableName() string {
	return "documents"
}

type sqliteKV struct {
	db *gorm.DB
}

// NewSQLiteKV opens (creating if needed) a single-file document store.
func NewSQLiteKV(path string) (KV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("storage: failed to migrate: %w", err)
	}
	return &sqliteKV{db: db}, nil
}

func (s *sqliteKV) Get(key string, out any) error {
	var doc document
	err := s.db.First(&doc, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("storage: failed to read %s: %w", key, err)
	}
	return decodeDocument(key, doc.Value, out)
}

func (s *sqliteKV) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: failed to encode %s: %w", key, err)
	}
	doc := document{Key: key, Value: data, UpdatedAt: time.Now()}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("storage: failed to write %s: %w", key, err)
	}
	return nil
}

func (s *sqliteKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
