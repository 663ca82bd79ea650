package interfaces

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ContractType identifies the option flavor
type ContractType string

// PositionSide identifies whether the contract was bought or written
type PositionSide string

const (
	Call ContractType = "call"
	Put  ContractType = "put"

	Long  PositionSide = "long"
	Short PositionSide = "short"
)

// OptionPosition holds the parameters of a single-leg vanilla option.
// One contract always covers 100 underlying shares.
type OptionPosition struct {
	ContractType ContractType `json:"contractType" binding:"required,oneof=call put"`
	Position     PositionSide `json:"position" binding:"required,oneof=long short"`
	StrikePrice  float64      `json:"strikePrice"`
	Premium      float64      `json:"premium"`
	CurrentPrice float64      `json:"currentPrice"`
	Contracts    int          `json:"contracts" binding:"required,min=1"`
	TargetPrice  float64      `json:"targetPrice"`
}

// PayoffBound is a max-profit or max-loss figure. An unlimited bound
// serializes as the literal string "Unlimited" so it can be dropped
// straight into UI copy or a prompt without looking like Infinity.
type PayoffBound struct {
	Amount    float64
	Unlimited bool
}

// Bounded returns a finite bound
func Bounded(amount float64) PayoffBound {
	return PayoffBound{Amount: amount}
}

// Unbounded returns the "Unlimited" sentinel
func Unbounded() PayoffBound {
	return PayoffBound{Unlimited: true}
}

func (b PayoffBound) MarshalJSON() ([]byte, error) {
	if b.Unlimited {
		return []byte(`"Unlimited"`), nil
	}
	return json.Marshal(b.Amount)
}

func (b *PayoffBound) UnmarshalJSON(data []byte) error {
	if string(data) == `"Unlimited"` {
		*b = PayoffBound{Unlimited: true}
		return nil
	}
	amount, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid payoff bound %s: %w", string(data), err)
	}
	*b = PayoffBound{Amount: amount}
	return nil
}

func (b PayoffBound) String() string {
	if b.Unlimited {
		return "Unlimited"
	}
	return strconv.FormatFloat(b.Amount, 'f', 2, 64)
}

// PricePoint is one sample of the payoff curve
type PricePoint struct {
	Price float64 `json:"price"`
	PnL   float64 `json:"pnl"`
}

// PayoffResult is the full computed view of one option position
type PayoffResult struct {
	BreakEven    float64      `json:"breakEven"`
	MaxProfit    PayoffBound  `json:"maxProfit"`
	MaxLoss      PayoffBound  `json:"maxLoss"`
	TotalPremium float64      `json:"totalPremium"`
	TargetPnL    float64      `json:"targetPnL"`
	TargetROI    float64      `json:"targetROI"`
	PriceRange   []PricePoint `json:"priceRange"`
}
