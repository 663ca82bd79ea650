package interfaces

import (
	"bytes"
	"strconv"
	"time"
)

// PnLAmount is a realized profit-or-loss figure. Upstream sources emit it
// as a number, a numeric string, or null; it is coerced to a plain float64
// exactly once, here at the JSON boundary. Unparseable values become 0.
type PnLAmount float64

func (p *PnLAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*p = 0
		return nil
	}
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			*p = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(unquoted, 64)
		if err != nil {
			*p = 0
			return nil
		}
		*p = PnLAmount(parsed)
		return nil
	}
	parsed, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*p = 0
		return nil
	}
	*p = PnLAmount(parsed)
	return nil
}

// TradeRecord is the analytics engine's read-only view of one logged trade.
// TradeDate is a plain "YYYY-MM-DD" calendar date (a trailing time component
// is tolerated and ignored); CreatedAt is the logging timestamp, used only
// for time-of-day bucketing, and may be empty.
type TradeRecord struct {
	Symbol    string    `json:"symbol"`
	TradeDate string    `json:"trade_date"`
	PnL       PnLAmount `json:"pnl"`
	CreatedAt string    `json:"created_at,omitempty"`
}

// StreakType classifies the run of days ending at the most recent trading day
type StreakType string

const (
	StreakWin  StreakType = "win"
	StreakLoss StreakType = "loss"
	StreakNone StreakType = "none"
)

// StreakData summarizes consecutive win/loss days
type StreakData struct {
	CurrentStreak int        `json:"currentStreak"`
	StreakType    StreakType `json:"streakType"`
	BestWinStreak int        `json:"bestWinStreak"`
}

// ScorePeriod selects the trailing window for the risk scorecard
type ScorePeriod string

const (
	PeriodWeek  ScorePeriod = "week"
	PeriodMonth ScorePeriod = "month"
)

// RiskBreakdown holds the four sub-scores, each 0-25
type RiskBreakdown struct {
	WinRate        int `json:"winRate"`
	RiskReward     int `json:"riskReward"`
	PositionSizing int `json:"positionSizing"`
	MaxDrawdown    int `json:"maxDrawdown"`
}

// RiskScorecardData is the 0-100 risk score with its letter grade
type RiskScorecardData struct {
	Grade            string        `json:"grade"`
	TotalScore       int           `json:"totalScore"`
	Breakdown        RiskBreakdown `json:"breakdown"`
	MaxDrawdownValue float64       `json:"maxDrawdownValue"`
}

// DayOfWeekStat is one Sun-Sat performance bucket
type DayOfWeekStat struct {
	Day        string  `json:"day"`
	DayIndex   int     `json:"dayIndex"`
	PnL        float64 `json:"pnl"`
	TradeCount int     `json:"tradeCount"`
	WinRate    int     `json:"winRate"`
	IsBest     bool    `json:"isBest"`
	IsWorst    bool    `json:"isWorst"`
}

// TimeOfDayStat is one intraday session bucket, keyed off logging time
type TimeOfDayStat struct {
	Label      string  `json:"label"`
	Range      string  `json:"range"`
	PnL        float64 `json:"pnl"`
	TradeCount int     `json:"tradeCount"`
	WinRate    int     `json:"winRate"`
	IsBest     bool    `json:"isBest"`
	IsWorst    bool    `json:"isWorst"`
}

// TimeOfDayBreakdown carries the session buckets plus the partial-coverage
// counts: trades without a parseable logging timestamp are not bucketed.
type TimeOfDayBreakdown struct {
	Buckets       []TimeOfDayStat `json:"buckets"`
	TrackedTrades int             `json:"trackedTrades"`
	TotalTrades   int             `json:"totalTrades"`
}

// LeaderboardSort selects the ticker leaderboard ordering
type LeaderboardSort string

const (
	SortByPnL     LeaderboardSort = "pnl"
	SortByTrades  LeaderboardSort = "trades"
	SortByWinRate LeaderboardSort = "winrate"
)

// TickerStat is one symbol's aggregate line on the leaderboard
type TickerStat struct {
	Symbol     string  `json:"symbol"`
	PnL        float64 `json:"pnl"`
	TradeCount int     `json:"tradeCount"`
	WinRate    int     `json:"winRate"`
}

// TradeSummary is the headline aggregate over the whole journal
type TradeSummary struct {
	TotalPnL     float64 `json:"totalPnL"`
	TradeCount   int     `json:"tradeCount"`
	WinCount     int     `json:"winCount"`
	LossCount    int     `json:"lossCount"`
	WinRate      int     `json:"winRate"`
	AvgWin       float64 `json:"avgWin"`
	AvgLoss      float64 `json:"avgLoss"`
	ProfitFactor float64 `json:"profitFactor"`
	BestTrade    float64 `json:"bestTrade"`
	WorstTrade   float64 `json:"worstTrade"`
}

// JournalEntry is a logged trade as the API and storage see it
type JournalEntry struct {
	ID         uint      `json:"id"`
	Symbol     string    `json:"symbol"`
	TradeType  string    `json:"trade_type"` // "buy" or "sell"
	AssetType  string    `json:"asset_type"` // "stock", "call" or "put"
	Quantity   float64   `json:"quantity"`
	Price      float64   `json:"price"`
	TotalValue float64   `json:"total_value"`
	PnL        PnLAmount `json:"pnl"`
	Notes      string    `json:"notes,omitempty"`
	TradeDate  string    `json:"trade_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// SavedPosition is an option position kept for later payoff review
type SavedPosition struct {
	ID              uint       `json:"id"`
	Symbol          string     `json:"symbol"`
	ContractType    string     `json:"contract_type"` // "call" or "put"
	PositionType    string     `json:"position_type"` // "long" or "short"
	StrikePrice     float64    `json:"strike_price"`
	Premium         float64    `json:"premium"`
	Contracts       int        `json:"contracts"`
	EntryStockPrice float64    `json:"entry_stock_price"`
	ExpirationDate  string     `json:"expiration_date,omitempty"`
	Status          string     `json:"status"` // "open" or "closed"
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	ClosePrice      *float64   `json:"close_price,omitempty"`
	RealizedPnL     *float64   `json:"realized_pnl,omitempty"`
}

// StorageService defines the interface for local data persistence
type StorageService interface {
	SaveTrade(entry *JournalEntry) error
	GetTrades() ([]*JournalEntry, error)
	GetTradeRecords() ([]*TradeRecord, error)
	DeleteTrade(id uint) error

	SavePosition(position *SavedPosition) error
	GetPosition(id uint) (*SavedPosition, error)
	GetPositions(status string) ([]*SavedPosition, error)
	ClosePosition(id uint, closePrice, realizedPnL float64) error

	Close() error
}
