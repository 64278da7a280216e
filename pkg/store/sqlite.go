package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// kvBlob is one key of the sqlite backend.
type kvBlob struct {
	Name      string `gorm:"column:name;primaryKey"`
	Value     []byte `gorm:"column:value"`
	UpdatedAt time.Time
}

// TableName hard code the table name
func (kvBlob) TableName() string {
	return "kv_blobs"
}

// SQLiteKV keeps blobs in a single sqlite table.
type SQLiteKV struct {
	db *gorm.DB
}

/*
NewSQLiteKV open a sqlite backed KV store, creating the table when missing

	@param dbFile string - Sqlite DB file
	@param dbLogLevel logger.LogLevel - SQL log level
	@return new store
*/
func NewSQLiteKV(dbFile string, dbLogLevel logger.LogLevel) (*SQLiteKV, error) {
	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger:                 logger.Default.LogMode(dbLogLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %s [%w]", dbFile, err)
	}
	if err := db.AutoMigrate(&kvBlob{}); err != nil {
		return nil, fmt.Errorf("store: migrate sqlite schema [%w]", err)
	}
	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var row kvBlob
	if err := s.db.WithContext(ctx).Where("name = ?", key).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s [%w]", key, err)
	}
	return row.Value, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	row := kvBlob{Name: key, Value: value, UpdatedAt: time.Now().UTC()}
	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row)
	if tx.Error != nil {
		return fmt.Errorf("store: write %s [%w]", key, tx.Error)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLiteKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
