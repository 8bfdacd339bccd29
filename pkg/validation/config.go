// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/lp-bulk/pkg/constants"
	"github.com/iwvelando/lp-bulk/pkg/isk"
)

// ValidatePrice checks that a price field of an offer decodes. Empty text is
// reported separately so the warning names the missing field.
func ValidatePrice(offerName, field, text string) string {
	if text == "" {
		return fmt.Sprintf("Offer '%s' has no %s", offerName, field)
	}
	if _, err := isk.Decode(text); err != nil {
		return fmt.Sprintf("Offer '%s' %s is not a price: %v", offerName, field, err)
	}
	return ""
}

// ValidateScaledPrice checks that a decodable price can still be displayed
// once scaled by the default multiplier.
func ValidateScaledPrice(offerName, field, text string, multiplier int) string {
	if multiplier < constants.MinMultiplier {
		return ""
	}
	amount, err := isk.Decode(text)
	if err != nil {
		return ""
	}
	if !isk.InRange(amount * float64(multiplier)) {
		return fmt.Sprintf("Offer '%s' %s cannot be shown at multiplier %d", offerName, field, multiplier)
	}
	return ""
}

// ValidateMultiplier checks that a configured default multiplier expands rows.
// Zero means no default was configured.
func ValidateMultiplier(multiplier int) string {
	if multiplier != 0 && multiplier < constants.MinMultiplier {
		return fmt.Sprintf("Default multiplier %d is below %d; offers will be shown unscaled",
			multiplier, constants.MinMultiplier)
	}
	return ""
}

// TableValidator checks an offer table for problems that would make rows fall
// back to their unscaled form.
type TableValidator struct {
	Multiplier int
	Offers     []OfferConfig
}

// OfferConfig carries the fields of one offer relevant to validation.
type OfferConfig struct {
	Corporation string
	Item        string
	SellPrice   string
	BasePrice   string
}

// Name identifies the offer in warnings.
func (o OfferConfig) Name() string {
	if o.Corporation == "" {
		return o.Item
	}
	return o.Corporation + "/" + o.Item
}

// ValidateAll validates the entire table and returns warnings
func (tv *TableValidator) ValidateAll() []string {
	var warnings []string

	if len(tv.Offers) == 0 {
		warnings = append(warnings, "No offers configured")
	}

	if warning := ValidateMultiplier(tv.Multiplier); warning != "" {
		warnings = append(warnings, warning)
	}

	seen := make(map[string]struct{}, len(tv.Offers))
	for _, offer := range tv.Offers {
		name := offer.Name()
		if _, dup := seen[name]; dup {
			warnings = append(warnings, fmt.Sprintf("Offer '%s' is listed more than once", name))
		}
		seen[name] = struct{}{}

		if warning := ValidatePrice(name, "sell price", offer.SellPrice); warning != "" {
			warnings = append(warnings, warning)
		} else if warning := ValidateScaledPrice(name, "sell price", offer.SellPrice, tv.Multiplier); warning != "" {
			warnings = append(warnings, warning)
		}
		if warning := ValidatePrice(name, "base price", offer.BasePrice); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
