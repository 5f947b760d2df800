// Package mockserver is the local development backend: the same entities
// and envelope the dashboard expects, served over real HTTP with sqlite
// persistence so the live gateway path can be exercised end to end.
package mockserver

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/domain/finance"
	"github.com/bizdash/bizdash/internal/domain/trade"
	"github.com/bizdash/bizdash/internal/fixtures"
	"github.com/bizdash/bizdash/internal/infrastructure/logger"
)

// OpenDB opens (or creates) the sqlite database and migrates the schema.
// Use ":memory:" for tests.
func OpenDB(path string, zapLogger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.NewGormLogger(zapLogger, gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&crm.Client{},
		&crm.Lead{},
		&trade.Order{},
		&trade.OrderItem{},
		&finance.Transaction{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

// SeedIfEmpty populates an empty database with generated fixtures
func SeedIfEmpty(db *gorm.DB, tenantID string, seed uint64, zapLogger *zap.Logger) error {
	var count int64
	if err := db.Model(&crm.Client{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count clients: %w", err)
	}
	if count > 0 {
		return nil
	}

	gen := fixtures.NewGenerator(tenantID, seed)
	store := fixtures.NewStore(tenantID)
	gen.Seed(store, fixtures.DefaultCounts())

	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range store.Clients.All() {
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
		}
		for _, l := range store.Leads.All() {
			if err := tx.Create(&l).Error; err != nil {
				return err
			}
		}
		for _, o := range store.Orders.All() {
			if err := tx.Create(&o).Error; err != nil {
				return err
			}
		}
		for _, t := range store.Transactions.All() {
			if err := tx.Create(&t).Error; err != nil {
				return err
			}
		}
		zapLogger.Info("seeded development database",
			zap.Int("clients", store.Clients.Len()),
			zap.Int("leads", store.Leads.Len()),
			zap.Int("orders", store.Orders.Len()),
			zap.Int("transactions", store.Transactions.Len()))
		return nil
	})
}
