package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"optionscope/interfaces"
	"optionscope/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// LocalStorage implements the StorageService interface using SQLite
type LocalStorage struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewLocalStorage creates a new local storage service
func NewLocalStorage(dbPath string) (*LocalStorage, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open SQLite database
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Auto-migrate schemas
	if err := db.AutoMigrate(
		&models.DBJournalEntry{},
		&models.DBSavedPosition{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &LocalStorage{
		db:     db,
		logger: log,
	}, nil
}

// SaveTrade saves a journal entry and backfills its assigned ID
func (s *LocalStorage) SaveTrade(entry *interfaces.JournalEntry) error {
	dbEntry := &models.DBJournalEntry{
		Symbol:     entry.Symbol,
		TradeType:  entry.TradeType,
		AssetType:  entry.AssetType,
		Quantity:   entry.Quantity,
		Price:      entry.Price,
		TotalValue: entry.TotalValue,
		Notes:      entry.Notes,
		TradeDate:  entry.TradeDate,
	}
	pnl := float64(entry.PnL)
	dbEntry.PnL = &pnl

	result := s.db.Create(dbEntry)
	if result.Error != nil {
		return fmt.Errorf("failed to save journal entry: %w", result.Error)
	}

	entry.ID = dbEntry.ID
	entry.CreatedAt = dbEntry.CreatedAt

	s.logger.WithFields(logrus.Fields{
		"symbol": entry.Symbol,
		"date":   entry.TradeDate,
	}).Info("Journal entry saved")
	return nil
}

// GetTrades retrieves all journal entries, newest trade date first
func (s *LocalStorage) GetTrades() ([]*interfaces.JournalEntry, error) {
	var dbEntries []*models.DBJournalEntry

	result := s.db.Order("trade_date DESC, id DESC").Find(&dbEntries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get journal entries: %w", result.Error)
	}

	entries := make([]*interfaces.JournalEntry, len(dbEntries))
	for i, dbEntry := range dbEntries {
		entries[i] = journalEntryFromDB(dbEntry)
	}
	return entries, nil
}

// GetTradeRecords retrieves the journal as the flat snapshot the analytics
// engine consumes. Rows are returned oldest first; the engine does its own
// grouping and ordering beyond that.
func (s *LocalStorage) GetTradeRecords() ([]*interfaces.TradeRecord, error) {
	var dbEntries []*models.DBJournalEntry

	result := s.db.Order("trade_date ASC, id ASC").Find(&dbEntries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get trade records: %w", result.Error)
	}

	records := make([]*interfaces.TradeRecord, len(dbEntries))
	for i, dbEntry := range dbEntries {
		record := &interfaces.TradeRecord{
			Symbol:    dbEntry.Symbol,
			TradeDate: dbEntry.TradeDate,
			CreatedAt: dbEntry.CreatedAt.Format(time.RFC3339),
		}
		if dbEntry.PnL != nil {
			record.PnL = interfaces.PnLAmount(*dbEntry.PnL)
		}
		records[i] = record
	}
	return records, nil
}

// DeleteTrade deletes a journal entry by ID
func (s *LocalStorage) DeleteTrade(id uint) error {
	result := s.db.Delete(&models.DBJournalEntry{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete journal entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("journal entry %d not found", id)
	}
	return nil
}

// SavePosition saves an option position and backfills its assigned ID
func (s *LocalStorage) SavePosition(position *interfaces.SavedPosition) error {
	dbPosition := &models.DBSavedPosition{
		Symbol:          position.Symbol,
		ContractType:    position.ContractType,
		PositionType:    position.PositionType,
		StrikePrice:     position.StrikePrice,
		Premium:         position.Premium,
		Contracts:       position.Contracts,
		EntryStockPrice: position.EntryStockPrice,
		ExpirationDate:  position.ExpirationDate,
		Status:          position.Status,
		Notes:           position.Notes,
	}
	if dbPosition.Status == "" {
		dbPosition.Status = "open"
	}

	result := s.db.Create(dbPosition)
	if result.Error != nil {
		return fmt.Errorf("failed to save position: %w", result.Error)
	}

	position.ID = dbPosition.ID
	position.Status = dbPosition.Status
	position.CreatedAt = dbPosition.CreatedAt

	s.logger.WithField("symbol", position.Symbol).Info("Position saved")
	return nil
}

// GetPosition retrieves a saved position by ID
func (s *LocalStorage) GetPosition(id uint) (*interfaces.SavedPosition, error) {
	var dbPosition models.DBSavedPosition

	result := s.db.First(&dbPosition, id)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get position: %w", result.Error)
	}
	return savedPositionFromDB(&dbPosition), nil
}

// GetPositions retrieves saved positions with optional status filter
func (s *LocalStorage) GetPositions(status string) ([]*interfaces.SavedPosition, error) {
	var dbPositions []*models.DBSavedPosition

	query := s.db.Model(&models.DBSavedPosition{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Order("created_at DESC").Find(&dbPositions)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get positions: %w", result.Error)
	}

	positions := make([]*interfaces.SavedPosition, len(dbPositions))
	for i, dbPosition := range dbPositions {
		positions[i] = savedPositionFromDB(dbPosition)
	}
	return positions, nil
}

// ClosePosition marks a position closed with its exit price and realized P&L
func (s *LocalStorage) ClosePosition(id uint, closePrice, realizedPnL float64) error {
	now := time.Now()
	result := s.db.Model(&models.DBSavedPosition{}).
		Where("id = ? AND status = ?", id, "open").
		Updates(map[string]interface{}{
			"Status":      "closed",
			"ClosedAt":    &now,
			"ClosePrice":  closePrice,
			"RealizedPnL": realizedPnL,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to close position: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("open position %d not found", id)
	}

	s.logger.WithFields(logrus.Fields{
		"id":  id,
		"pnl": realizedPnL,
	}).Info("Position closed")
	return nil
}

// Close closes the database connection
func (s *LocalStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func journalEntryFromDB(dbEntry *models.DBJournalEntry) *interfaces.JournalEntry {
	entry := &interfaces.JournalEntry{
		ID:         dbEntry.ID,
		Symbol:     dbEntry.Symbol,
		TradeType:  dbEntry.TradeType,
		AssetType:  dbEntry.AssetType,
		Quantity:   dbEntry.Quantity,
		Price:      dbEntry.Price,
		TotalValue: dbEntry.TotalValue,
		Notes:      dbEntry.Notes,
		TradeDate:  dbEntry.TradeDate,
		CreatedAt:  dbEntry.CreatedAt,
	}
	if dbEntry.PnL != nil {
		entry.PnL = interfaces.PnLAmount(*dbEntry.PnL)
	}
	return entry
}

func savedPositionFromDB(dbPosition *models.DBSavedPosition) *interfaces.SavedPosition {
	return &interfaces.SavedPosition{
		ID:              dbPosition.ID,
		Symbol:          dbPosition.Symbol,
		ContractType:    dbPosition.ContractType,
		PositionType:    dbPosition.PositionType,
		StrikePrice:     dbPosition.StrikePrice,
		Premium:         dbPosition.Premium,
		Contracts:       dbPosition.Contracts,
		EntryStockPrice: dbPosition.EntryStockPrice,
		ExpirationDate:  dbPosition.ExpirationDate,
		Status:          dbPosition.Status,
		Notes:           dbPosition.Notes,
		CreatedAt:       dbPosition.CreatedAt,
		ClosedAt:        dbPosition.ClosedAt,
		ClosePrice:      dbPosition.ClosePrice,
		RealizedPnL:     dbPosition.RealizedPnL,
	}
}
