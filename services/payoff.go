package services

import (
	"fmt"
	"optionscope/interfaces"
)

// ContractMultiplier is the number of underlying shares one option
// contract covers. Fixed for US-style equity options.
const ContractMultiplier = 100

// pricePoints is the resolution of the payoff curve: 50 equal steps
// between 0.7x and 1.3x strike, endpoints included.
const pricePoints = 51

// CalculateBreakEven returns the stock price at which the position's
// expiration P&L is exactly zero.
func CalculateBreakEven(contractType interfaces.ContractType, strikePrice, premium float64) float64 {
	if contractType == interfaces.Call {
		return strikePrice + premium
	}
	return strikePrice - premium
}

// CalculateIntrinsicValue returns the in-the-money portion of the payoff
// at the given stock price, ignoring premium. Never negative.
func CalculateIntrinsicValue(contractType interfaces.ContractType, strikePrice, price float64) float64 {
	var intrinsic float64
	if contractType == interfaces.Call {
		intrinsic = price - strikePrice
	} else {
		intrinsic = strikePrice - price
	}
	if intrinsic < 0 {
		return 0
	}
	return intrinsic
}

// CalculatePnL returns the aggregate expiration P&L of the position when
// the stock lands at targetPrice.
func CalculatePnL(contractType interfaces.ContractType, position interfaces.PositionSide, strikePrice, premium float64, contracts int, targetPrice float64) float64 {
	intrinsic := CalculateIntrinsicValue(contractType, strikePrice, targetPrice)

	var pnlPerShare float64
	if position == interfaces.Long {
		pnlPerShare = intrinsic - premium
	} else {
		pnlPerShare = premium - intrinsic
	}

	return pnlPerShare * float64(contracts) * ContractMultiplier
}

// CalculateMaxProfitLoss returns the theoretical best and worst case for
// the position. Calls are unbounded on the upside, so one of the two
// figures is the "Unlimited" sentinel. For puts the bounded figure is
// (strike - premium) x contracts x 100, deliberately not floored at zero:
// a premium above the strike yields a negative "max profit" for a long
// put, matching the established behavior of this calculator.
func CalculateMaxProfitLoss(contractType interfaces.ContractType, position interfaces.PositionSide, strikePrice, premium float64, contracts int) (maxProfit, maxLoss interfaces.PayoffBound) {
	totalPremium := premium * float64(contracts) * ContractMultiplier

	if contractType == interfaces.Call {
		if position == interfaces.Long {
			return interfaces.Unbounded(), interfaces.Bounded(totalPremium)
		}
		return interfaces.Bounded(totalPremium), interfaces.Unbounded()
	}

	maxPutValue := (strikePrice - premium) * float64(contracts) * ContractMultiplier
	if position == interfaces.Long {
		return interfaces.Bounded(maxPutValue), interfaces.Bounded(totalPremium)
	}
	return interfaces.Bounded(totalPremium), interfaces.Bounded(maxPutValue)
}

// GeneratePriceRange samples the payoff curve at 51 evenly spaced prices
// from max(0, 0.7x strike) to 1.3x strike inclusive. Prices and P&L are
// rounded to cents so the curve is stable for charting and caching.
func GeneratePriceRange(contractType interfaces.ContractType, position interfaces.PositionSide, strikePrice, premium float64, contracts int) []interfaces.PricePoint {
	minPrice := 0.7 * strikePrice
	if minPrice < 0 {
		minPrice = 0
	}
	maxPrice := 1.3 * strikePrice
	step := (maxPrice - minPrice) / float64(pricePoints-1)

	curve := make([]interfaces.PricePoint, 0, pricePoints)
	for i := 0; i < pricePoints; i++ {
		price := minPrice + step*float64(i)
		pnl := CalculatePnL(contractType, position, strikePrice, premium, contracts, price)
		curve = append(curve, interfaces.PricePoint{
			Price: round2(price),
			PnL:   round2(pnl),
		})
	}

	return curve
}

// CalculatePayoff composes the full payoff view for one position.
//
// ROI is target P&L over total premium. When the total premium is zero the
// ratio is undefined; it is reported as 0 rather than NaN so the result
// always serializes to plain JSON numbers.
func CalculatePayoff(input *interfaces.OptionPosition) *interfaces.PayoffResult {
	totalPremium := input.Premium * float64(input.Contracts) * ContractMultiplier
	breakEven := CalculateBreakEven(input.ContractType, input.StrikePrice, input.Premium)
	maxProfit, maxLoss := CalculateMaxProfitLoss(input.ContractType, input.Position, input.StrikePrice, input.Premium, input.Contracts)
	targetPnL := CalculatePnL(input.ContractType, input.Position, input.StrikePrice, input.Premium, input.Contracts, input.TargetPrice)

	targetROI := 0.0
	if totalPremium != 0 {
		targetROI = targetPnL / totalPremium * 100
	}

	return &interfaces.PayoffResult{
		BreakEven:    breakEven,
		MaxProfit:    maxProfit,
		MaxLoss:      maxLoss,
		TotalPremium: totalPremium,
		TargetPnL:    targetPnL,
		TargetROI:    targetROI,
		PriceRange:   GeneratePriceRange(input.ContractType, input.Position, input.StrikePrice, input.Premium, input.Contracts),
	}
}

// FormatPayoffSummary renders the key payoff figures as a short plain-text
// block, suitable as context for an assistant prompt. Unlimited bounds
// appear as the word "Unlimited".
func FormatPayoffSummary(input *interfaces.OptionPosition, result *interfaces.PayoffResult) string {
	return fmt.Sprintf(
		"%s %s x%d @ strike $%.2f, premium $%.2f\nBreak-even: $%.2f\nMax profit: %s\nMax loss: %s\nP&L at target $%.2f: $%.2f (ROI %.1f%%)",
		input.Position, input.ContractType, input.Contracts, input.StrikePrice, input.Premium,
		result.BreakEven,
		result.MaxProfit.String(),
		result.MaxLoss.String(),
		input.TargetPrice, result.TargetPnL, result.TargetROI,
	)
}
