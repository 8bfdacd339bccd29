// Package scaling multiplies an offer's baseline values by a bulk quantity
// and derives the requirements total and net profit for that quantity.
//
// Every function here is pure: a Baseline is never modified and each call to
// Scale recomputes from it.
package scaling

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/lp-bulk/internal/requirements"
	"github.com/iwvelando/lp-bulk/pkg/isk"
)

// ErrInvalidMultiplier is returned by Scale for multipliers below one.
var ErrInvalidMultiplier = errors.New("multiplier must be at least 1")

// ErrCountOverflow is returned when a scaled LP or requirement count does not
// fit its integer type. It matches isk.ErrOutOfRange.
var ErrCountOverflow = fmt.Errorf("scaled count %w", isk.ErrOutOfRange)

// multiplyCount returns base*k, or ErrCountOverflow when the product exceeds
// limit. base and k are never negative.
func multiplyCount(base int64, k int, limit int64) (int64, error) {
	if base > 0 && int64(k) > limit/base {
		return 0, fmt.Errorf("%w: %d x %d", ErrCountOverflow, base, k)
	}
	return base * int64(k), nil
}

// Baseline holds the unscaled values of one offer, captured once from the page.
type Baseline struct {
	SellPrice      float64
	ProductionCost float64
	LoyaltyPoints  int64
	Requirements   []requirements.Requirement
}

// HasRequirements reports whether the offer lists any required sub-items.
func (b Baseline) HasRequirements() bool {
	return len(b.Requirements) > 0
}

// Priced is implemented by requirement lines that carry a numeric price.
type Priced interface {
	Amount() float64
}

// ScaledRequirement is a requirement multiplied by the bulk quantity. Price
// is the display text; Amount returns the value it was encoded from.
type ScaledRequirement struct {
	Name   string
	Count  int
	Price  string
	amount float64
}

// Amount returns the scaled price as a number.
func (s ScaledRequirement) Amount() float64 {
	return s.amount
}

// Result holds every scaled value of one offer for one multiplier.
type Result struct {
	Multiplier         int
	SellPrice          float64
	SellPriceText      string
	LoyaltyPoints      int64
	ProductionCost     float64
	ProductionCostText string
	Requirements       []ScaledRequirement
	RequirementsTotal  float64
	Profit             float64
	ProfitLine         string
}

// ScaleRequirements multiplies the count and price of every requirement by k,
// preserving order.
func ScaleRequirements(reqs []requirements.Requirement, k int) ([]ScaledRequirement, error) {
	scaled := make([]ScaledRequirement, 0, len(reqs))
	for _, req := range reqs {
		count, err := multiplyCount(int64(req.Count), k, math.MaxInt)
		if err != nil {
			return nil, fmt.Errorf("failed to scale requirement %s: %w", req.Name, err)
		}
		amount := req.UnitPrice * float64(k)
		price, err := isk.Encode(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to scale requirement %s: %w", req.Name, err)
		}
		scaled = append(scaled, ScaledRequirement{
			Name:   req.Name,
			Count:  int(count),
			Price:  price,
			amount: amount,
		})
	}
	return scaled, nil
}

// AggregateCost sums the prices of the given requirement lines.
func AggregateCost[T Priced](items []T) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount()
	}
	return total
}

// AggregatePriceText sums display prices by decoding each one.
func AggregatePriceText(prices []string) (float64, error) {
	var total float64
	for _, price := range prices {
		amount, err := isk.Decode(price)
		if err != nil {
			return 0, err
		}
		total += amount
	}
	return total, nil
}

// ComputeProfit subtracts the production cost and requirements total from the
// sell price. A negative result is a legitimate unprofitable offer.
func ComputeProfit(sellPrice, productionCost, requirementsTotal float64) float64 {
	return sellPrice - productionCost - requirementsTotal
}

// ProfitLine renders the profit summary shown under a scaled offer.
func ProfitLine(sellPrice, productionCost, requirementsTotal, profit float64) (string, error) {
	amounts := []float64{sellPrice, productionCost, requirementsTotal, profit}
	texts := make([]any, len(amounts))
	for i, amount := range amounts {
		text, err := isk.Encode(amount)
		if err != nil {
			return "", err
		}
		texts[i] = text
	}
	return fmt.Sprintf("Profit = %s - %s - %s = %s", texts...), nil
}

// Scale multiplies every baseline value by k. The profit is computed from the
// numeric scaled values, never from re-decoded display text.
func Scale(b Baseline, k int) (Result, error) {
	if k < 1 {
		return Result{}, fmt.Errorf("%w, got %d", ErrInvalidMultiplier, k)
	}

	lp, err := multiplyCount(b.LoyaltyPoints, k, math.MaxInt64)
	if err != nil {
		return Result{}, fmt.Errorf("failed to scale loyalty points: %w", err)
	}

	factor := float64(k)
	result := Result{
		Multiplier:     k,
		SellPrice:      b.SellPrice * factor,
		LoyaltyPoints:  lp,
		ProductionCost: b.ProductionCost * factor,
	}

	if result.SellPriceText, err = isk.Encode(result.SellPrice); err != nil {
		return Result{}, fmt.Errorf("failed to scale sell price: %w", err)
	}
	if result.ProductionCostText, err = isk.Encode(result.ProductionCost); err != nil {
		return Result{}, fmt.Errorf("failed to scale production cost: %w", err)
	}

	if result.Requirements, err = ScaleRequirements(b.Requirements, k); err != nil {
		return Result{}, err
	}
	result.RequirementsTotal = AggregateCost(result.Requirements)
	result.Profit = ComputeProfit(result.SellPrice, result.ProductionCost, result.RequirementsTotal)

	if result.ProfitLine, err = ProfitLine(result.SellPrice, result.ProductionCost, result.RequirementsTotal, result.Profit); err != nil {
		return Result{}, fmt.Errorf("failed to format profit: %w", err)
	}
	return result, nil
}
