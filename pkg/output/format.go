// Package output provides utilities for formatting and displaying scaled offer tables.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iwvelando/lp-bulk/internal/row"
	"github.com/iwvelando/lp-bulk/pkg/format"
	"github.com/iwvelando/lp-bulk/pkg/mathutil"
)

func title(raw row.Raw) string {
	if raw.Corporation == "" {
		return raw.Item
	}
	return raw.Corporation + " / " + raw.Item
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []row.Outcome) {
	fmt.Print(PrettyString(results))
}

// PrettyString returns the human-readable table as a string.
func PrettyString(results []row.Outcome) string {
	var b strings.Builder
	for i, result := range results {
		if result.State == row.Expanded {
			fmt.Fprintf(&b, "--- %s (x%d) ---\n", title(result.Raw), result.View.Multiplier)
		} else {
			fmt.Fprintf(&b, "--- %s ---\n", title(result.Raw))
		}

		switch {
		case result.Err != nil:
			fmt.Fprintf(&b, "Error    | %v\n", result.Err)
		case result.State == row.Collapsed:
			fmt.Fprintf(&b, "Sell     | %s\n", result.Raw.SellPrice)
			fmt.Fprintf(&b, "Cost     | %s + %s\n", result.Raw.LoyaltyPoints, result.Raw.BasePrice)
		default:
			view := result.View
			fmt.Fprintf(&b, "Sell     | %s\n", view.SellPrice)
			fmt.Fprintf(&b, "LP       | %s\n", view.LoyaltyPoints)
			fmt.Fprintf(&b, "Cost     | %s\n", view.ProductionCost)
			if view.ShowRequirements {
				for j, line := range view.Lines {
					label := "Requires"
					if j > 0 {
						label = "        "
					}
					fmt.Fprintf(&b, "%s | %s %s %s\n", label, line.Name, format.Quantity(line.Count), line.Price)
				}
			}
			switch {
			case mathutil.IsNegative(view.Profit):
				fmt.Fprintf(&b, "%s (loss)\n", view.ProfitLine)
			case mathutil.IsZero(view.Profit):
				fmt.Fprintf(&b, "%s (break-even)\n", view.ProfitLine)
			default:
				fmt.Fprintf(&b, "%s\n", view.ProfitLine)
			}
		}

		if i < len(results)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []row.Outcome) error {
	data, err := CsvString(results)
	if err != nil {
		return err
	}
	fmt.Print(data)
	return nil
}

// CsvString returns the comma-separated table, one record per offer.
func CsvString(results []row.Outcome) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{"corporation", "item", "state", "multiplier", "sell price", "lp", "cost", "requirements", "profit", "error"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, result := range results {
		record := []string{result.Raw.Corporation, result.Raw.Item, result.State.String(), "", "", "", "", "", "", ""}
		if result.State == row.Expanded {
			view := result.View
			lines := make([]string, 0, len(view.Lines))
			for _, line := range view.Lines {
				lines = append(lines, fmt.Sprintf("%s %s = %s", line.Name, format.Quantity(line.Count), strings.TrimSpace(line.Price)))
			}
			record[3] = fmt.Sprintf("%d", view.Multiplier)
			record[4] = strings.TrimSpace(view.SellPrice)
			record[5] = view.LoyaltyPoints
			record[6] = strings.TrimSpace(view.ProductionCost)
			record[7] = strings.Join(lines, "; ")
			record[8] = fmt.Sprintf("%.2f", view.Profit)
		}
		if result.Err != nil {
			record[9] = result.Err.Error()
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

type jsonOffer struct {
	Corporation string    `json:"corporation"`
	Item        string    `json:"item"`
	State       string    `json:"state"`
	View        *row.View `json:"view,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// JSONFormat outputs the table as an indented JSON array.
func JSONFormat(results []row.Outcome) error {
	data, err := JSONString(results)
	if err != nil {
		return err
	}
	fmt.Println(data)
	return nil
}

// JSONString returns the table as an indented JSON array.
func JSONString(results []row.Outcome) (string, error) {
	offers := make([]jsonOffer, 0, len(results))
	for _, result := range results {
		offer := jsonOffer{
			Corporation: result.Raw.Corporation,
			Item:        result.Raw.Item,
			State:       result.State.String(),
		}
		if result.State == row.Expanded {
			view := result.View
			offer.View = &view
		}
		if result.Err != nil {
			offer.Error = result.Err.Error()
		}
		offers = append(offers, offer)
	}

	data, err := json.MarshalIndent(offers, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
