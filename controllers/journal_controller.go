package controllers

import (
	"net/http"
	"strconv"

	"optionscope/interfaces"
	"optionscope/services"

	"github.com/gin-gonic/gin"
)

// JournalController handles trade journal and saved position CRUD
type JournalController struct {
	storage interfaces.StorageService
}

// NewJournalController creates a new journal controller
func NewJournalController(storage interfaces.StorageService) *JournalController {
	return &JournalController{
		storage: storage,
	}
}

// CreateTradeRequest is the payload for logging a trade
type CreateTradeRequest struct {
	Symbol     string               `json:"symbol" binding:"required"`
	TradeType  string               `json:"trade_type" binding:"required,oneof=buy sell"`
	AssetType  string               `json:"asset_type" binding:"required,oneof=stock call put"`
	Quantity   float64              `json:"quantity"`
	Price      float64              `json:"price"`
	TotalValue float64              `json:"total_value"`
	PnL        interfaces.PnLAmount `json:"pnl"`
	Notes      string               `json:"notes"`
	TradeDate  string               `json:"trade_date" binding:"required"`
}

// HandleCreateTrade logs a new trade
// POST /api/v1/trades
func (jc *JournalController) HandleCreateTrade(c *gin.Context) {
	var req CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if services.ParseLocalDate(req.TradeDate).IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "trade_date must be YYYY-MM-DD",
		})
		return
	}

	entry := &interfaces.JournalEntry{
		Symbol:     req.Symbol,
		TradeType:  req.TradeType,
		AssetType:  req.AssetType,
		Quantity:   req.Quantity,
		Price:      req.Price,
		TotalValue: req.TotalValue,
		PnL:        req.PnL,
		Notes:      req.Notes,
		TradeDate:  services.DayKey(req.TradeDate),
	}

	if err := jc.storage.SaveTrade(entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to save trade",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Trade logged successfully",
		"trade":   entry,
	})
}

// HandleListTrades returns the full journal
// GET /api/v1/trades
func (jc *JournalController) HandleListTrades(c *gin.Context) {
	entries, err := jc.storage.GetTrades()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(entries),
		"trades": entries,
	})
}

// HandleDeleteTrade removes a journal entry
// DELETE /api/v1/trades/:id
func (jc *JournalController) HandleDeleteTrade(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trade ID"})
		return
	}

	if err := jc.storage.DeleteTrade(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trade deleted"})
}

// CreatePositionRequest is the payload for saving an option position
type CreatePositionRequest struct {
	Symbol          string  `json:"symbol" binding:"required"`
	ContractType    string  `json:"contract_type" binding:"required,oneof=call put"`
	PositionType    string  `json:"position_type" binding:"required,oneof=long short"`
	StrikePrice     float64 `json:"strike_price"`
	Premium         float64 `json:"premium"`
	Contracts       int     `json:"contracts" binding:"required,min=1"`
	EntryStockPrice float64 `json:"entry_stock_price"`
	ExpirationDate  string  `json:"expiration_date"`
	Notes           string  `json:"notes"`
}

// HandleCreatePosition saves an option position for later payoff review
// POST /api/v1/positions
func (jc *JournalController) HandleCreatePosition(c *gin.Context) {
	var req CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	position := &interfaces.SavedPosition{
		Symbol:          req.Symbol,
		ContractType:    req.ContractType,
		PositionType:    req.PositionType,
		StrikePrice:     req.StrikePrice,
		Premium:         req.Premium,
		Contracts:       req.Contracts,
		EntryStockPrice: req.EntryStockPrice,
		ExpirationDate:  req.ExpirationDate,
		Status:          "open",
		Notes:           req.Notes,
	}

	if err := jc.storage.SavePosition(position); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to save position",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Position saved successfully",
		"position": position,
	})
}

// HandleListPositions lists saved positions
// GET /api/v1/positions?status=open|closed
func (jc *JournalController) HandleListPositions(c *gin.Context) {
	status := c.Query("status")

	positions, err := jc.storage.GetPositions(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(positions),
		"positions": positions,
	})
}

// ClosePositionRequest is the payload for closing a saved position
type ClosePositionRequest struct {
	ClosePrice  float64              `json:"close_price"`
	RealizedPnL interfaces.PnLAmount `json:"realized_pnl"`
}

// HandleClosePosition closes a saved position with its realized P&L
// POST /api/v1/positions/:id/close
func (jc *JournalController) HandleClosePosition(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid position ID"})
		return
	}

	var req ClosePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if err := jc.storage.ClosePosition(id, req.ClosePrice, float64(req.RealizedPnL)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Position closed successfully"})
}

// HandleGetPositionPayoff recomputes the payoff view for a saved position
// GET /api/v1/positions/:id/payoff?target=PRICE
func (jc *JournalController) HandleGetPositionPayoff(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid position ID"})
		return
	}

	position, err := jc.storage.GetPosition(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	// Default the scenario price to the stock price at entry
	targetPrice := position.EntryStockPrice
	if raw := c.Query("target"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target must be a number"})
			return
		}
		targetPrice = parsed
	}

	input := &interfaces.OptionPosition{
		ContractType: interfaces.ContractType(position.ContractType),
		Position:     interfaces.PositionSide(position.PositionType),
		StrikePrice:  position.StrikePrice,
		Premium:      position.Premium,
		CurrentPrice: position.EntryStockPrice,
		Contracts:    position.Contracts,
		TargetPrice:  targetPrice,
	}

	c.JSON(http.StatusOK, gin.H{
		"position": position,
		"payoff":   services.CalculatePayoff(input),
	})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
