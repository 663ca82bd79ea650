package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"optionscope/interfaces"
)

// Trade analytics over a snapshot of the journal. Every function here is
// pure: it reads the slice it is given, allocates its result, and keeps no
// state between calls, so concurrent callers need no coordination.

// ComputeStreakData computes the consecutive-day win/loss streak. A win day
// is a calendar date whose summed P&L is positive, a loss day negative; a
// flat day breaks any running streak.
func ComputeStreakData(trades []*interfaces.TradeRecord) interfaces.StreakData {
	if len(trades) == 0 {
		return interfaces.StreakData{CurrentStreak: 0, StreakType: interfaces.StreakNone, BestWinStreak: 0}
	}

	dayPnL := make(map[string]float64)
	for _, t := range trades {
		key := DayKey(t.TradeDate)
		dayPnL[key] += float64(t.PnL)
	}

	days := make([]string, 0, len(dayPnL))
	for day := range dayPnL {
		days = append(days, day)
	}
	sort.Strings(days)

	bestWin := 0
	currentLen := 0
	currentType := interfaces.StreakNone

	for _, day := range days {
		pnl := dayPnL[day]
		switch {
		case pnl == 0:
			currentLen = 0
			currentType = interfaces.StreakNone
		case pnl > 0 && currentType == interfaces.StreakWin:
			currentLen++
		case pnl < 0 && currentType == interfaces.StreakLoss:
			currentLen++
		case pnl > 0:
			currentLen = 1
			currentType = interfaces.StreakWin
		default:
			currentLen = 1
			currentType = interfaces.StreakLoss
		}
		if currentType == interfaces.StreakWin && currentLen > bestWin {
			bestWin = currentLen
		}
	}

	return interfaces.StreakData{
		CurrentStreak: currentLen,
		StreakType:    currentType,
		BestWinStreak: bestWin,
	}
}

// ComputeRiskScorecard scores the trailing week or month of trading.
// See ComputeRiskScorecardAt.
func ComputeRiskScorecard(trades []*interfaces.TradeRecord, period interfaces.ScorePeriod) *interfaces.RiskScorecardData {
	return ComputeRiskScorecardAt(trades, period, time.Now())
}

// ComputeRiskScorecardAt scores the window ending at the given reference
// time: four sub-metrics worth 0-25 each, summed to 0-100 and mapped to a
// letter grade. Fewer than 3 trades inside the window is not enough signal
// and yields nil, which callers render as an empty state.
func ComputeRiskScorecardAt(trades []*interfaces.TradeRecord, period interfaces.ScorePeriod, now time.Time) *interfaces.RiskScorecardData {
	var cutoff time.Time
	if period == interfaces.PeriodWeek {
		cutoff = time.Date(now.Year(), now.Month(), now.Day()-7, 0, 0, 0, 0, time.Local)
	} else {
		cutoff = time.Date(now.Year(), now.Month()-1, now.Day(), 0, 0, 0, 0, time.Local)
	}

	filtered := make([]*interfaces.TradeRecord, 0, len(trades))
	for _, t := range trades {
		d := ParseLocalDate(t.TradeDate)
		if !d.IsZero() && !d.Before(cutoff) {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) < 3 {
		return nil
	}

	var winSum, lossSum, totalAbs, maxSingleAbs float64
	winCount, lossCount := 0, 0
	for _, t := range filtered {
		pnl := float64(t.PnL)
		abs := math.Abs(pnl)
		totalAbs += abs
		if abs > maxSingleAbs {
			maxSingleAbs = abs
		}
		if pnl > 0 {
			winSum += pnl
			winCount++
		} else if pnl < 0 {
			lossSum += pnl
			lossCount++
		}
	}

	// 1. Win rate: linear, 0% -> 0 points, 100% -> 25.
	winRate := float64(winCount) / float64(len(filtered))
	winRateScore := clampScore(int(math.Round(winRate * 25)))

	// 2. Risk/reward: avg win over avg |loss|, full marks at 3:1.
	// Wins with no losses count as a full 3:1.
	var avgWin, avgLoss float64
	if winCount > 0 {
		avgWin = winSum / float64(winCount)
	}
	if lossCount > 0 {
		avgLoss = math.Abs(lossSum / float64(lossCount))
	}
	var rr float64
	if avgLoss > 0 {
		rr = avgWin / avgLoss
	} else if avgWin > 0 {
		rr = 3
	}
	rrScore := clampScore(int(math.Round(rr / 3 * 25)))

	// 3. Position sizing: concentration of the largest single trade.
	// <=10% of total |P&L| scores 25, >=50% scores 0, linear between.
	var maxSinglePct float64
	if totalAbs > 0 {
		maxSinglePct = maxSingleAbs / totalAbs
	}
	sizingScore := clampScore(int(math.Round((1 - (maxSinglePct-0.1)/0.4) * 25)))

	// 4. Max drawdown: worst peak-to-trough slide of the cumulative P&L,
	// walked in trade-date order.
	sorted := make([]*interfaces.TradeRecord, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ParseLocalDate(sorted[i].TradeDate).Before(ParseLocalDate(sorted[j].TradeDate))
	})

	var runningPnL, peak, maxDD float64
	for _, t := range sorted {
		runningPnL += float64(t.PnL)
		if runningPnL > peak {
			peak = runningPnL
		}
		if dd := peak - runningPnL; dd > maxDD {
			maxDD = dd
		}
	}

	ddScore := 0
	if totalAbs > 0 {
		ddPercent := maxDD / totalAbs
		ddScore = clampScore(int(math.Round((1 - ddPercent*2) * 25)))
	}

	total := winRateScore + rrScore + sizingScore + ddScore

	return &interfaces.RiskScorecardData{
		Grade:      letterGrade(total),
		TotalScore: total,
		Breakdown: interfaces.RiskBreakdown{
			WinRate:        winRateScore,
			RiskReward:     rrScore,
			PositionSizing: sizingScore,
			MaxDrawdown:    ddScore,
		},
		MaxDrawdownValue: maxDD,
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 25 {
		return 25
	}
	return score
}

// gradeSteps maps total score to the 13-step letter scale
var gradeSteps = []struct {
	min   int
	grade string
}{
	{97, "A+"}, {93, "A"}, {90, "A-"},
	{87, "B+"}, {83, "B"}, {80, "B-"},
	{77, "C+"}, {73, "C"}, {70, "C-"},
	{67, "D+"}, {63, "D"}, {60, "D-"},
}

func letterGrade(total int) string {
	for _, step := range gradeSteps {
		if total >= step.min {
			return step.grade
		}
	}
	return "F"
}

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ComputeDayOfWeekStats partitions trades into Sun-Sat buckets by trade
// date. Exactly one non-empty bucket is flagged best (highest summed P&L)
// and one worst (lowest); ties go to the earlier day in Sun-Sat order.
func ComputeDayOfWeekStats(trades []*interfaces.TradeRecord) []interfaces.DayOfWeekStat {
	type bucket struct {
		pnl   float64
		count int
		wins  int
	}
	var buckets [7]bucket

	for _, t := range trades {
		dow := int(ParseLocalDate(t.TradeDate).Weekday())
		pnl := float64(t.PnL)
		buckets[dow].pnl += pnl
		buckets[dow].count++
		if pnl > 0 {
			buckets[dow].wins++
		}
	}

	bestIdx, worstIdx := -1, -1
	bestPnL := math.Inf(-1)
	worstPnL := math.Inf(1)
	for i, b := range buckets {
		if b.count == 0 {
			continue
		}
		if b.pnl > bestPnL {
			bestPnL = b.pnl
			bestIdx = i
		}
		if b.pnl < worstPnL {
			worstPnL = b.pnl
			worstIdx = i
		}
	}

	stats := make([]interfaces.DayOfWeekStat, 7)
	for i, b := range buckets {
		winRate := 0
		if b.count > 0 {
			winRate = int(math.Round(float64(b.wins) / float64(b.count) * 100))
		}
		stats[i] = interfaces.DayOfWeekStat{
			Day:        dayNames[i],
			DayIndex:   i,
			PnL:        round2(b.pnl),
			TradeCount: b.count,
			WinRate:    winRate,
			IsBest:     i == bestIdx,
			IsWorst:    i == worstIdx,
		}
	}
	return stats
}

// tradingSessions are the fixed intraday buckets, in tie-break order.
// Boundaries are half-open [start, end) minutes of the logging timestamp's
// wall clock.
var tradingSessions = []struct {
	label    string
	timeSpan string
	startMin int
	endMin   int
}{
	{"Pre-Market", "Before 9:30 AM", 0, 9*60 + 30},
	{"Morning", "9:30 - 11:00 AM", 9*60 + 30, 11 * 60},
	{"Midday", "11:00 AM - 2:00 PM", 11 * 60, 14 * 60},
	{"Afternoon", "2:00 - 4:00 PM", 14 * 60, 16 * 60},
	{"After Hours", "After 4:00 PM", 16 * 60, 24 * 60},
}

// ComputeTimeOfDayStats partitions trades into intraday sessions by the
// timestamp the trade was logged at; execution time is not recorded, so the
// logging clock is the only one available. Trades without a timestamp are
// left out of every bucket; TrackedTrades vs TotalTrades reports the
// resulting coverage so callers can caveat the numbers.
func ComputeTimeOfDayStats(trades []*interfaces.TradeRecord) interfaces.TimeOfDayBreakdown {
	type bucket struct {
		pnl   float64
		count int
		wins  int
	}
	buckets := make([]bucket, len(tradingSessions))

	tracked := 0
	for _, t := range trades {
		ts, ok := parseLoggedAt(t.CreatedAt)
		if !ok {
			continue
		}
		minute := ts.Hour()*60 + ts.Minute()
		for i, s := range tradingSessions {
			if minute >= s.startMin && minute < s.endMin {
				pnl := float64(t.PnL)
				buckets[i].pnl += pnl
				buckets[i].count++
				if pnl > 0 {
					buckets[i].wins++
				}
				tracked++
				break
			}
		}
	}

	bestIdx, worstIdx := -1, -1
	bestPnL := math.Inf(-1)
	worstPnL := math.Inf(1)
	for i, b := range buckets {
		if b.count == 0 {
			continue
		}
		if b.pnl > bestPnL {
			bestPnL = b.pnl
			bestIdx = i
		}
		if b.pnl < worstPnL {
			worstPnL = b.pnl
			worstIdx = i
		}
	}

	stats := make([]interfaces.TimeOfDayStat, len(tradingSessions))
	for i, b := range buckets {
		winRate := 0
		if b.count > 0 {
			winRate = int(math.Round(float64(b.wins) / float64(b.count) * 100))
		}
		stats[i] = interfaces.TimeOfDayStat{
			Label:      tradingSessions[i].label,
			Range:      tradingSessions[i].timeSpan,
			PnL:        round2(b.pnl),
			TradeCount: b.count,
			WinRate:    winRate,
			IsBest:     i == bestIdx,
			IsWorst:    i == worstIdx,
		}
	}

	return interfaces.TimeOfDayBreakdown{
		Buckets:       stats,
		TrackedTrades: tracked,
		TotalTrades:   len(trades),
	}
}

// ComputeTickerLeaderboard groups trades by uppercased symbol and ranks
// them. The default order is summed P&L descending; sorting by win rate
// additionally drops symbols with fewer than 3 trades (a 1-for-1 day
// shouldn't top the board) and breaks ties by trade count descending.
func ComputeTickerLeaderboard(trades []*interfaces.TradeRecord, sortKey interfaces.LeaderboardSort) []*interfaces.TickerStat {
	type entry struct {
		pnl   float64
		count int
		wins  int
	}
	totals := make(map[string]*entry)
	order := make([]string, 0)

	for _, t := range trades {
		sym := strings.ToUpper(t.Symbol)
		e, ok := totals[sym]
		if !ok {
			e = &entry{}
			totals[sym] = e
			order = append(order, sym)
		}
		pnl := float64(t.PnL)
		e.pnl += pnl
		e.count++
		if pnl > 0 {
			e.wins++
		}
	}

	stats := make([]*interfaces.TickerStat, 0, len(order))
	for _, sym := range order {
		e := totals[sym]
		winRate := 0
		if e.count > 0 {
			winRate = int(math.Round(float64(e.wins) / float64(e.count) * 100))
		}
		stats = append(stats, &interfaces.TickerStat{
			Symbol:     sym,
			PnL:        round2(e.pnl),
			TradeCount: e.count,
			WinRate:    winRate,
		})
	}

	switch sortKey {
	case interfaces.SortByTrades:
		sort.SliceStable(stats, func(i, j int) bool {
			return stats[i].TradeCount > stats[j].TradeCount
		})
	case interfaces.SortByWinRate:
		qualified := stats[:0]
		for _, s := range stats {
			if s.TradeCount >= 3 {
				qualified = append(qualified, s)
			}
		}
		stats = qualified
		sort.SliceStable(stats, func(i, j int) bool {
			if stats[i].WinRate == stats[j].WinRate {
				return stats[i].TradeCount > stats[j].TradeCount
			}
			return stats[i].WinRate > stats[j].WinRate
		})
	default:
		sort.SliceStable(stats, func(i, j int) bool {
			return stats[i].PnL > stats[j].PnL
		})
	}

	return stats
}

// ComputeTradeSummary aggregates the whole journal into the headline
// numbers. Profit factor is gross wins over gross losses, reported as 0
// when there are no losing trades to divide by.
func ComputeTradeSummary(trades []*interfaces.TradeRecord) interfaces.TradeSummary {
	var total, grossWin, grossLoss, best, worst float64
	winCount, lossCount := 0, 0

	for i, t := range trades {
		pnl := float64(t.PnL)
		total += pnl
		if pnl > 0 {
			grossWin += pnl
			winCount++
		} else if pnl < 0 {
			grossLoss += -pnl
			lossCount++
		}
		if i == 0 || pnl > best {
			best = pnl
		}
		if i == 0 || pnl < worst {
			worst = pnl
		}
	}

	summary := interfaces.TradeSummary{
		TotalPnL:   round2(total),
		TradeCount: len(trades),
		WinCount:   winCount,
		LossCount:  lossCount,
		BestTrade:  round2(best),
		WorstTrade: round2(worst),
	}
	if len(trades) > 0 {
		summary.WinRate = int(math.Round(float64(winCount) / float64(len(trades)) * 100))
	}
	if winCount > 0 {
		summary.AvgWin = round2(grossWin / float64(winCount))
	}
	if lossCount > 0 {
		summary.AvgLoss = round2(grossLoss / float64(lossCount))
	}
	if grossLoss > 0 {
		summary.ProfitFactor = round2(grossWin / grossLoss)
	}
	return summary
}
