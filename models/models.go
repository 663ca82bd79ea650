package models

import (
	"time"

	"gorm.io/gorm"
)

// DBJournalEntry represents a logged trade in the database
type DBJournalEntry struct {
	gorm.Model
	Symbol     string `gorm:"index"`
	TradeType  string // "buy" or "sell"
	AssetType  string // "stock", "call" or "put"
	Quantity   float64
	Price      float64
	TotalValue float64
	PnL        *float64
	Notes      string
	TradeDate  string `gorm:"index"` // "YYYY-MM-DD", kept as text to avoid zone shifts
}

// DBSavedPosition represents a saved option position in the database
type DBSavedPosition struct {
	gorm.Model
	Symbol          string `gorm:"index"`
	ContractType    string // "call" or "put"
	PositionType    string // "long" or "short"
	StrikePrice     float64
	Premium         float64
	Contracts       int
	EntryStockPrice float64
	ExpirationDate  string
	Status          string `gorm:"index"` // "open" or "closed"
	Notes           string
	ClosedAt        *time.Time
	ClosePrice      *float64
	RealizedPnL     *float64
}

// TableName overrides for cleaner table names
func (DBJournalEntry) TableName() string {
	return "journal_entries"
}

func (DBSavedPosition) TableName() string {
	return "saved_positions"
}
