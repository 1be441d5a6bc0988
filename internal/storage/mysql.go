package storage

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// storageEntry is one named blob row. The whole collection JSON lives in
// Value, mirroring the single-entry-per-collection layout of the other
// backends rather than one row per record.
type storageEntry struct {
	Key   string `gorm:"column:entry_key;primaryKey;size:64"`
	Value string `gorm:"column:value;type:longtext"`
}

// TableName overrides the table name used by GORM.
func (storageEntry) TableName() string {
	return "storage_entries"
}

// MySQLStore is a Store backed by a MySQL table, for deployments that already
// run a database server.
type MySQLStore struct {
	db *gorm.DB
}

// NewMySQLStore connects to MySQL and migrates the blob table.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}
	if err := db.AutoMigrate(&storageEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate storage table: %w", err)
	}
	return &MySQLStore{db: db}, nil
}

func (s *MySQLStore) Read(key string) ([]byte, error) {
	var entry storageEntry
	err := s.db.First(&entry, "entry_key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (s *MySQLStore) Write(key string, value []byte) error {
	entry := storageEntry{Key: key, Value: string(value)}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *MySQLStore) Delete(key string) error {
	if err := s.db.Delete(&storageEntry{}, "entry_key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *MySQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
