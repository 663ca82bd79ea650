package controllers

import (
	"net/http"

	"optionscope/interfaces"
	"optionscope/services"

	"github.com/gin-gonic/gin"
)

// AnalyticsController serves aggregate statistics over the trade journal.
// Every handler pulls a fresh snapshot and feeds it to the pure analytics
// functions; nothing is cached between requests.
type AnalyticsController struct {
	storage interfaces.StorageService
}

// NewAnalyticsController creates a new analytics controller
func NewAnalyticsController(storage interfaces.StorageService) *AnalyticsController {
	return &AnalyticsController{
		storage: storage,
	}
}

// HandleGetStreaks returns the consecutive-day win/loss streak
// GET /api/v1/analytics/streaks
func (ac *AnalyticsController) HandleGetStreaks(c *gin.Context) {
	records, err := ac.storage.GetTradeRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, services.ComputeStreakData(records))
}

// HandleGetScorecard returns the risk scorecard for the trailing window
// GET /api/v1/analytics/scorecard?period=week|month
func (ac *AnalyticsController) HandleGetScorecard(c *gin.Context) {
	period := interfaces.ScorePeriod(c.DefaultQuery("period", string(interfaces.PeriodWeek)))
	if period != interfaces.PeriodWeek && period != interfaces.PeriodMonth {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "period must be 'week' or 'month'",
		})
		return
	}

	records, err := ac.storage.GetTradeRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	scorecard := services.ComputeRiskScorecard(records, period)
	if scorecard == nil {
		// Not an error: fewer than 3 trades in the window
		c.JSON(http.StatusOK, gin.H{
			"scorecard": nil,
			"reason":    "not enough trades in period",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scorecard": scorecard})
}

// HandleGetDayOfWeek returns the Sun-Sat performance buckets
// GET /api/v1/analytics/day-of-week
func (ac *AnalyticsController) HandleGetDayOfWeek(c *gin.Context) {
	records, err := ac.storage.GetTradeRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": services.ComputeDayOfWeekStats(records)})
}

// HandleGetTimeOfDay returns the intraday session buckets
// GET /api/v1/analytics/time-of-day
func (ac *AnalyticsController) HandleGetTimeOfDay(c *gin.Context) {
	records, err := ac.storage.GetTradeRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, services.ComputeTimeOfDayStats(records))
}

// HandleGetLeaderboard returns per-symbol aggregates
// GET /api/v1/analytics/tickers?sort=pnl|trades|winrate
func (ac *AnalyticsController) HandleGetLeaderboard(c *gin.Context) {
	sortKey := interfaces.LeaderboardSort(c.DefaultQuery("sort", string(interfaces.SortByPnL)))
	if sortKey != interfaces.SortByPnL && sortKey != interfaces.SortByTrades && sortKey != interfaces.SortByWinRate {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "sort must be 'pnl', 'trades' or 'winrate'",
		})
		return
	}

	records, err := ac.storage.GetTradeRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tickers := services.ComputeTickerLeaderboard(records, sortKey)
	c.JSON(http.StatusOK, gin.H{
		"count":   len(tickers),
		"tickers": tickers,
	})
}

// HandleGetSummary returns the headline aggregate over the whole journal
// GET /api/v1/analytics/summary
func (ac *AnalyticsController) HandleGetSummary(c *gin.Context) {
	records, err := ac.storage.GetTradeRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, services.ComputeTradeSummary(records))
}
