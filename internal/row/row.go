// Package row drives the bulk-quantity calculator of a single offer row: it
// captures the row's baseline once from the page text, turns multiplier input
// into a Collapsed or Expanded state and hands scaled display values to a
// renderer supplied by the page layer.
package row

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/lp-bulk/internal/requirements"
	"github.com/iwvelando/lp-bulk/internal/scaling"
	"github.com/iwvelando/lp-bulk/pkg/isk"
)

// ErrNoLoyaltyPoints is returned when the LP text holds no digits.
var ErrNoLoyaltyPoints = errors.New("no loyalty point count")

// Raw holds the text fields of one offer row as rendered on the page.
// Requirements is empty for offers without required sub-items.
type Raw struct {
	Corporation   string `json:"corporation" yaml:"corporation"`
	Item          string `json:"item" yaml:"item"`
	SellPrice     string `json:"sellPrice" yaml:"sellPrice"`
	LoyaltyPoints string `json:"loyaltyPoints" yaml:"loyaltyPoints"`
	BasePrice     string `json:"basePrice" yaml:"basePrice"`
	Requirements  string `json:"requirements,omitempty" yaml:"requirements,omitempty"`
}

// Capture parses the row's text fields into its baseline.
func Capture(raw Raw) (scaling.Baseline, error) {
	sellPrice, err := isk.Decode(raw.SellPrice)
	if err != nil {
		return scaling.Baseline{}, fmt.Errorf("failed to parse sell price: %w", err)
	}

	lp, err := ParseLoyaltyPoints(raw.LoyaltyPoints)
	if err != nil {
		return scaling.Baseline{}, err
	}

	basePrice, err := isk.Decode(raw.BasePrice)
	if err != nil {
		return scaling.Baseline{}, fmt.Errorf("failed to parse base price: %w", err)
	}

	var reqs []requirements.Requirement
	if strings.TrimSpace(raw.Requirements) != "" {
		reqs, err = requirements.Parse(raw.Requirements)
		if err != nil {
			return scaling.Baseline{}, fmt.Errorf("failed to parse requirements: %w", err)
		}
	}

	return scaling.Baseline{
		SellPrice:      sellPrice,
		ProductionCost: basePrice,
		LoyaltyPoints:  lp,
		Requirements:   reqs,
	}, nil
}

// ParseLoyaltyPoints reads a whole-number LP count from text such as
// "2,400 LP" by keeping only its digits.
func ParseLoyaltyPoints(text string) (int64, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0, fmt.Errorf("%w in %q", ErrNoLoyaltyPoints, text)
	}

	lp, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid loyalty point count %q: %w", text, err)
	}
	return lp, nil
}
