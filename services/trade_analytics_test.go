package services

import (
	"testing"
	"time"

	"optionscope/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trade(symbol, date string, pnl float64) *interfaces.TradeRecord {
	return &interfaces.TradeRecord{
		Symbol:    symbol,
		TradeDate: date,
		PnL:       interfaces.PnLAmount(pnl),
	}
}

func loggedTrade(symbol, date string, pnl float64, createdAt string) *interfaces.TradeRecord {
	t := trade(symbol, date, pnl)
	t.CreatedAt = createdAt
	return t
}

func TestComputeStreakDataEmpty(t *testing.T) {
	streak := ComputeStreakData(nil)

	assert.Equal(t, 0, streak.CurrentStreak)
	assert.Equal(t, interfaces.StreakNone, streak.StreakType)
	assert.Equal(t, 0, streak.BestWinStreak)
}

func TestComputeStreakDataWinRun(t *testing.T) {
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-03-11", 100),
		trade("AAPL", "2024-03-12", 50),
		trade("TSLA", "2024-03-13", -20),
		trade("AAPL", "2024-03-14", 30),
		trade("AAPL", "2024-03-15", 40),
	}

	streak := ComputeStreakData(trades)

	assert.Equal(t, 2, streak.CurrentStreak)
	assert.Equal(t, interfaces.StreakWin, streak.StreakType)
	assert.Equal(t, 2, streak.BestWinStreak)
}

func TestComputeStreakDataSumsPerDay(t *testing.T) {
	// Two trades on the same day net to a loss day
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-03-11", 100),
		trade("TSLA", "2024-03-11", -150),
		trade("AAPL", "2024-03-12", -10),
	}

	streak := ComputeStreakData(trades)

	assert.Equal(t, 2, streak.CurrentStreak)
	assert.Equal(t, interfaces.StreakLoss, streak.StreakType)
	assert.Equal(t, 0, streak.BestWinStreak)
}

func TestComputeStreakDataFlatDayBreaks(t *testing.T) {
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-03-11", 100),
		trade("AAPL", "2024-03-12", 100),
		trade("AAPL", "2024-03-13", 50),
		trade("TSLA", "2024-03-13", -50), // nets to zero
		trade("AAPL", "2024-03-14", 100),
	}

	streak := ComputeStreakData(trades)

	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, interfaces.StreakWin, streak.StreakType)
	assert.Equal(t, 2, streak.BestWinStreak)
}

func TestComputeStreakDataIgnoresInputOrder(t *testing.T) {
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-03-15", -10),
		trade("AAPL", "2024-03-11", 100),
		trade("AAPL", "2024-03-13", 100),
	}

	streak := ComputeStreakData(trades)

	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, interfaces.StreakLoss, streak.StreakType)
	assert.Equal(t, 2, streak.BestWinStreak)
}

func TestComputeRiskScorecardInsufficientTrades(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.Local)
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-03-18", 500),
		trade("AAPL", "2024-03-19", -200),
	}

	assert.Nil(t, ComputeRiskScorecardAt(trades, interfaces.PeriodWeek, now))
}

func TestComputeRiskScorecardStaleTradesExcluded(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.Local)
	// Plenty of trades, all older than the 7-day window
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-02-01", 100),
		trade("AAPL", "2024-02-02", 100),
		trade("AAPL", "2024-02-03", 100),
		trade("AAPL", "2024-02-04", 100),
	}

	assert.Nil(t, ComputeRiskScorecardAt(trades, interfaces.PeriodWeek, now))
	assert.NotNil(t, ComputeRiskScorecardAt(trades, interfaces.PeriodMonth, now))
}

func TestComputeRiskScorecardBreakdown(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.Local)
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-03-18", 100),
		trade("TSLA", "2024-03-19", -50),
		trade("NVDA", "2024-03-20", 100),
	}

	card := ComputeRiskScorecardAt(trades, interfaces.PeriodWeek, now)
	require.NotNil(t, card)

	// win rate 2/3 -> round(16.67) = 17
	assert.Equal(t, 17, card.Breakdown.WinRate)
	// avg win 100, avg loss 50, ratio 2 of reference 3 -> round(16.67) = 17
	assert.Equal(t, 17, card.Breakdown.RiskReward)
	// largest trade 100 of 250 total -> 40% concentration -> round(6.25) = 6
	assert.Equal(t, 6, card.Breakdown.PositionSizing)
	// cumulative walk 100, 50, 150: drawdown 50 of 250 -> round(15) = 15
	assert.Equal(t, 15, card.Breakdown.MaxDrawdown)

	assert.Equal(t, 50.0, card.MaxDrawdownValue)
	assert.Equal(t, 17+17+6+15, card.TotalScore)
	assert.Equal(t, "F", card.Grade)
}

func TestComputeRiskScorecardNoLossesMaxRatio(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.Local)
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-03-18", 10),
		trade("AAPL", "2024-03-19", 10),
		trade("AAPL", "2024-03-20", 10),
	}

	card := ComputeRiskScorecardAt(trades, interfaces.PeriodWeek, now)
	require.NotNil(t, card)

	assert.Equal(t, 25, card.Breakdown.WinRate)
	assert.Equal(t, 25, card.Breakdown.RiskReward)
	assert.Equal(t, 25, card.Breakdown.MaxDrawdown)
	assert.Equal(t, 10, card.Breakdown.PositionSizing)
	assert.Equal(t, 85, card.TotalScore)
	assert.Equal(t, "B", card.Grade)
	assert.Equal(t, 0.0, card.MaxDrawdownValue)
}

func TestComputeRiskScorecardSubScoresBounded(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.Local)
	cases := [][]*interfaces.TradeRecord{
		{
			trade("A", "2024-03-18", 10000),
			trade("B", "2024-03-19", -1),
			trade("C", "2024-03-20", -1),
		},
		{
			trade("A", "2024-03-18", -500),
			trade("B", "2024-03-19", -500),
			trade("C", "2024-03-20", -500),
		},
		{
			trade("A", "2024-03-18", 0),
			trade("B", "2024-03-19", 0),
			trade("C", "2024-03-20", 0),
		},
	}

	for _, trades := range cases {
		card := ComputeRiskScorecardAt(trades, interfaces.PeriodWeek, now)
		require.NotNil(t, card)

		for _, score := range []int{
			card.Breakdown.WinRate,
			card.Breakdown.RiskReward,
			card.Breakdown.PositionSizing,
			card.Breakdown.MaxDrawdown,
		} {
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 25)
		}
		sum := card.Breakdown.WinRate + card.Breakdown.RiskReward +
			card.Breakdown.PositionSizing + card.Breakdown.MaxDrawdown
		assert.Equal(t, sum, card.TotalScore)
	}
}

func TestComputeRiskScorecardZeroPnLDrawdownScore(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.Local)
	trades := []*interfaces.TradeRecord{
		trade("A", "2024-03-18", 0),
		trade("B", "2024-03-19", 0),
		trade("C", "2024-03-20", 0),
	}

	card := ComputeRiskScorecardAt(trades, interfaces.PeriodWeek, now)
	require.NotNil(t, card)
	assert.Equal(t, 0, card.Breakdown.MaxDrawdown)
}

func TestLetterGradeThresholds(t *testing.T) {
	cases := map[int]string{
		100: "A+", 97: "A+", 96: "A", 93: "A", 92: "A-", 90: "A-",
		89: "B+", 87: "B+", 85: "B", 80: "B-",
		79: "C+", 75: "C", 72: "C-",
		68: "D+", 65: "D", 60: "D-",
		59: "F", 0: "F",
	}
	for total, want := range cases {
		assert.Equal(t, want, letterGrade(total), "total %d", total)
	}
}

func TestComputeDayOfWeekStats(t *testing.T) {
	// 2024-03-10 is a Sunday, 2024-03-15 a Friday
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-03-10", 100),
		trade("AAPL", "2024-03-11", -40),
		trade("TSLA", "2024-03-11", -60),
		trade("AAPL", "2024-03-15", 250),
	}

	stats := ComputeDayOfWeekStats(trades)
	require.Len(t, stats, 7)

	total := 0
	for _, s := range stats {
		total += s.TradeCount
	}
	assert.Equal(t, len(trades), total)

	sun, mon, fri := stats[0], stats[1], stats[5]
	assert.Equal(t, "Sun", sun.Day)
	assert.Equal(t, 100.0, sun.PnL)
	assert.Equal(t, 100, sun.WinRate)

	assert.Equal(t, -100.0, mon.PnL)
	assert.Equal(t, 2, mon.TradeCount)
	assert.Equal(t, 0, mon.WinRate)
	assert.True(t, mon.IsWorst)

	assert.True(t, fri.IsBest)

	bestCount, worstCount := 0, 0
	for _, s := range stats {
		if s.IsBest {
			bestCount++
		}
		if s.IsWorst {
			worstCount++
		}
	}
	assert.Equal(t, 1, bestCount)
	assert.Equal(t, 1, worstCount)
}

func TestComputeDayOfWeekTieBreakFirstWins(t *testing.T) {
	// Sunday and Monday tie on P&L; the earlier day takes both flags' scans
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-03-10", 100),
		trade("AAPL", "2024-03-11", 100),
	}

	stats := ComputeDayOfWeekStats(trades)

	assert.True(t, stats[0].IsBest)
	assert.False(t, stats[1].IsBest)
	assert.True(t, stats[0].IsWorst)
	assert.False(t, stats[1].IsWorst)
}

func TestDayBucketingImmuneToUTCShift(t *testing.T) {
	withTime := ComputeDayOfWeekStats([]*interfaces.TradeRecord{
		trade("AAPL", "2024-03-15T00:00:00Z", 50),
	})
	plain := ComputeDayOfWeekStats([]*interfaces.TradeRecord{
		trade("AAPL", "2024-03-15", 50),
	})

	assert.Equal(t, plain, withTime)
	assert.Equal(t, 1, plain[5].TradeCount) // Friday, regardless of local zone
}

func TestComputeTimeOfDayStats(t *testing.T) {
	trades := []*interfaces.TradeRecord{
		loggedTrade("AAPL", "2024-03-15", 100, "2024-03-15T09:45:00Z"),
		loggedTrade("AAPL", "2024-03-15", -30, "2024-03-15T09:29:00Z"),
		loggedTrade("TSLA", "2024-03-15", 80, "2024-03-15T15:59:00Z"),
		loggedTrade("TSLA", "2024-03-15", 20, "2024-03-15T16:00:00Z"),
		trade("NVDA", "2024-03-15", 999), // no timestamp: excluded
	}

	breakdown := ComputeTimeOfDayStats(trades)

	assert.Equal(t, 4, breakdown.TrackedTrades)
	assert.Equal(t, 5, breakdown.TotalTrades)
	require.Len(t, breakdown.Buckets, 5)

	byLabel := make(map[string]interfaces.TimeOfDayStat)
	for _, b := range breakdown.Buckets {
		byLabel[b.Label] = b
	}

	assert.Equal(t, 1, byLabel["Pre-Market"].TradeCount)
	assert.Equal(t, -30.0, byLabel["Pre-Market"].PnL)
	assert.Equal(t, 1, byLabel["Morning"].TradeCount)
	assert.Equal(t, 100.0, byLabel["Morning"].PnL)
	assert.Equal(t, 1, byLabel["Afternoon"].TradeCount)
	assert.Equal(t, 1, byLabel["After Hours"].TradeCount)
	assert.Equal(t, 0, byLabel["Midday"].TradeCount)

	assert.True(t, byLabel["Morning"].IsBest)
	assert.True(t, byLabel["Pre-Market"].IsWorst)
	assert.False(t, byLabel["Midday"].IsBest)
	assert.False(t, byLabel["Midday"].IsWorst)
}

func TestComputeTimeOfDayStatsAllUntracked(t *testing.T) {
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-03-15", 100),
		loggedTrade("TSLA", "2024-03-15", 50, "not-a-timestamp"),
	}

	breakdown := ComputeTimeOfDayStats(trades)

	assert.Equal(t, 0, breakdown.TrackedTrades)
	assert.Equal(t, 2, breakdown.TotalTrades)
	for _, b := range breakdown.Buckets {
		assert.Equal(t, 0, b.TradeCount)
		assert.False(t, b.IsBest)
		assert.False(t, b.IsWorst)
	}
}

func TestComputeTickerLeaderboardByPnL(t *testing.T) {
	trades := []*interfaces.TradeRecord{
		trade("aapl", "2024-03-11", 100),
		trade("AAPL", "2024-03-12", 150),
		trade("TSLA", "2024-03-12", -80),
		trade("NVDA", "2024-03-13", 500),
	}

	stats := ComputeTickerLeaderboard(trades, interfaces.SortByPnL)
	require.Len(t, stats, 3)

	// case-insensitive symbol grouping
	assert.Equal(t, "NVDA", stats[0].Symbol)
	assert.Equal(t, "AAPL", stats[1].Symbol)
	assert.Equal(t, 250.0, stats[1].PnL)
	assert.Equal(t, 2, stats[1].TradeCount)
	assert.Equal(t, "TSLA", stats[2].Symbol)

	for i := 1; i < len(stats); i++ {
		assert.GreaterOrEqual(t, stats[i-1].PnL, stats[i].PnL)
	}
}

func TestComputeTickerLeaderboardByTrades(t *testing.T) {
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-03-11", 10),
		trade("TSLA", "2024-03-11", 10),
		trade("TSLA", "2024-03-12", 10),
	}

	stats := ComputeTickerLeaderboard(trades, interfaces.SortByTrades)
	require.Len(t, stats, 2)
	assert.Equal(t, "TSLA", stats[0].Symbol)
	assert.Equal(t, 2, stats[0].TradeCount)
}

func TestComputeTickerLeaderboardByWinRate(t *testing.T) {
	trades := []*interfaces.TradeRecord{
		// AAPL: 3 trades, 2 wins (67%)
		trade("AAPL", "2024-03-11", 100),
		trade("AAPL", "2024-03-12", 100),
		trade("AAPL", "2024-03-13", -50),
		// TSLA: 4 trades, 2 wins (50%)
		trade("TSLA", "2024-03-11", 10),
		trade("TSLA", "2024-03-12", 10),
		trade("TSLA", "2024-03-13", -10),
		trade("TSLA", "2024-03-14", -10),
		// NVDA: 2 trades, 2 wins; below the 3-trade floor
		trade("NVDA", "2024-03-11", 999),
		trade("NVDA", "2024-03-12", 999),
		// AMD: 3 trades, 2 wins (67%); ties AAPL, fewer... same count
		trade("AMD", "2024-03-11", 5),
		trade("AMD", "2024-03-12", 5),
		trade("AMD", "2024-03-13", -5),
	}

	stats := ComputeTickerLeaderboard(trades, interfaces.SortByWinRate)
	require.Len(t, stats, 3)

	for _, s := range stats {
		assert.NotEqual(t, "NVDA", s.Symbol)
		assert.GreaterOrEqual(t, s.TradeCount, 3)
	}

	// 67% before 50%; equal win rates keep first-encounter order via stable sort
	assert.Equal(t, "AAPL", stats[0].Symbol)
	assert.Equal(t, "AMD", stats[1].Symbol)
	assert.Equal(t, "TSLA", stats[2].Symbol)
}

func TestComputeTickerLeaderboardWinRateTieBreakByCount(t *testing.T) {
	trades := []*interfaces.TradeRecord{
		// AAPL: 3 trades, 3 wins (100%)
		trade("AAPL", "2024-03-11", 1),
		trade("AAPL", "2024-03-12", 1),
		trade("AAPL", "2024-03-13", 1),
		// TSLA: 4 trades, 4 wins (100%), more trades ranks higher
		trade("TSLA", "2024-03-11", 1),
		trade("TSLA", "2024-03-12", 1),
		trade("TSLA", "2024-03-13", 1),
		trade("TSLA", "2024-03-14", 1),
	}

	stats := ComputeTickerLeaderboard(trades, interfaces.SortByWinRate)
	require.Len(t, stats, 2)
	assert.Equal(t, "TSLA", stats[0].Symbol)
	assert.Equal(t, "AAPL", stats[1].Symbol)
}

func TestComputeTradeSummary(t *testing.T) {
	trades := []*interfaces.TradeRecord{
		trade("AAPL", "2024-03-11", 300),
		trade("TSLA", "2024-03-12", -100),
		trade("NVDA", "2024-03-13", 100),
		trade("AMD", "2024-03-14", -50),
	}

	summary := ComputeTradeSummary(trades)

	assert.Equal(t, 250.0, summary.TotalPnL)
	assert.Equal(t, 4, summary.TradeCount)
	assert.Equal(t, 2, summary.WinCount)
	assert.Equal(t, 2, summary.LossCount)
	assert.Equal(t, 50, summary.WinRate)
	assert.Equal(t, 200.0, summary.AvgWin)
	assert.Equal(t, 75.0, summary.AvgLoss)
	assert.InDelta(t, 2.67, summary.ProfitFactor, 0.001)
	assert.Equal(t, 300.0, summary.BestTrade)
	assert.Equal(t, -100.0, summary.WorstTrade)
}

func TestComputeTradeSummaryEmpty(t *testing.T) {
	summary := ComputeTradeSummary(nil)

	assert.Equal(t, 0, summary.TradeCount)
	assert.Equal(t, 0.0, summary.TotalPnL)
	assert.Equal(t, 0, summary.WinRate)
	assert.Equal(t, 0.0, summary.ProfitFactor)
}

func TestComputeTradeSummaryNoLosses(t *testing.T) {
	summary := ComputeTradeSummary([]*interfaces.TradeRecord{
		trade("AAPL", "2024-03-11", 100),
	})

	assert.Equal(t, 0.0, summary.ProfitFactor)
	assert.Equal(t, 0.0, summary.AvgLoss)
}
