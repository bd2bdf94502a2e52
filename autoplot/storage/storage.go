package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ezquant/autoplot/autoplot/model"
)

var ErrNoTrades = errors.New("storage: no trades recorded")

// tradeRow is the persisted form of model.TradeRecord.
type tradeRow struct {
	ID         uint   `gorm:"primaryKey"`
	Instrument string `gorm:"index"`
	EntryTime  time.Time
	ExitTime   *time.Time
	Size       float64
	EntryPrice float64
	OrderPrice *float64
	ExitPrice  *float64
	StopLoss   *float64
	TakeProfit *float64
	Profit     *float64
	Status     string `gorm:"index"`
}

func (tradeRow) TableName() string {
	return "trades"
}

func (r tradeRow) record() model.TradeRecord {
	return model.TradeRecord{
		EntryTime:  r.EntryTime,
		ExitTime:   r.ExitTime,
		Size:       r.Size,
		EntryPrice: r.EntryPrice,
		OrderPrice: r.OrderPrice,
		ExitPrice:  r.ExitPrice,
		StopLoss:   r.StopLoss,
		TakeProfit: r.TakeProfit,
		Profit:     r.Profit,
		Status:     model.TradeStatus(r.Status),
	}
}

func newTradeRow(instrument string, t model.TradeRecord) tradeRow {
	status := t.Status
	if status == "" {
		status = model.TradeStatusClosed
	}
	return tradeRow{
		Instrument: instrument,
		EntryTime:  t.EntryTime,
		ExitTime:   t.ExitTime,
		Size:       t.Size,
		EntryPrice: t.EntryPrice,
		OrderPrice: t.OrderPrice,
		ExitPrice:  t.ExitPrice,
		StopLoss:   t.StopLoss,
		TakeProfit: t.TakeProfit,
		Profit:     t.Profit,
		Status:     string(status),
	}
}

// Storage keeps backtest trade tables in a SQL database.
type Storage struct {
	db *gorm.DB
}

// FromMemory creates a storage backed by a private in-memory SQLite database.
func FromMemory() (*Storage, error) {
	// every pooled connection would open its own empty database
	return open(sqlite.Open(":memory:"), 1)
}

// FromFile creates a storage backed by the SQLite file at path.
func FromFile(path string) (*Storage, error) {
	return open(sqlite.Open(path), 0)
}

// FromSQL creates a storage on any gorm dialect.
func FromSQL(dialect gorm.Dialector, opts ...gorm.Option) (*Storage, error) {
	return open(dialect, 0, opts...)
}

func open(dialect gorm.Dialector, maxConns int, opts ...gorm.Option) (*Storage, error) {
	if len(opts) == 0 {
		opts = append(opts, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	}

	db, err := gorm.Open(dialect, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}

	if maxConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("storage: open: %w", err)
		}
		sqlDB.SetMaxOpenConns(maxConns)
	}

	if err := db.AutoMigrate(&tradeRow{}); err != nil {
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}

	return &Storage{db: db}, nil
}

// SaveTrades appends the trade table of instrument.
func (s *Storage) SaveTrades(instrument string, trades ...model.TradeRecord) error {
	if len(trades) == 0 {
		return nil
	}

	rows := make([]tradeRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, newTradeRow(instrument, t))
	}

	return s.db.Create(&rows).Error
}

// Trades returns the trades of instrument ordered by entry time, restricted to
// the given statuses when any are passed.
func (s *Storage) Trades(instrument string, statuses ...model.TradeStatus) ([]model.TradeRecord, error) {
	query := s.db.Where("instrument = ?", instrument)
	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, status := range statuses {
			values = append(values, string(status))
		}
		query = query.Where("status IN ?", values)
	}

	var rows []tradeRow
	if err := query.Order("entry_time, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("storage: trades %s: %w", instrument, err)
	}

	if len(rows) == 0 {
		return nil, ErrNoTrades
	}

	records := make([]model.TradeRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.record())
	}
	return records, nil
}

// Instruments lists the instruments with recorded trades.
func (s *Storage) Instruments() ([]string, error) {
	var instruments []string
	err := s.db.Model(&tradeRow{}).Distinct("instrument").Order("instrument").
		Pluck("instrument", &instruments).Error
	return instruments, err
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
