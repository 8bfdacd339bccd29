package row

import (
	"github.com/iwvelando/lp-bulk/internal/scaling"
	"github.com/iwvelando/lp-bulk/pkg/format"
)

// Line is one scaled requirement as displayed.
type Line struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Price string `json:"price"`
}

// View holds the display values for an expanded row.
type View struct {
	Multiplier       int     `json:"multiplier"`
	SellPrice        string  `json:"sellPrice"`
	LoyaltyPoints    string  `json:"loyaltyPoints"`
	ProductionCost   string  `json:"productionCost"`
	ShowRequirements bool    `json:"showRequirements"`
	Lines            []Line  `json:"lines,omitempty"`
	Profit           float64 `json:"profit"`
	ProfitLine       string  `json:"profitLine"`
}

// NewView converts a scaling result into display values. The requirement
// lines are hidden for offers without requirements.
func NewView(result scaling.Result, hasRequirements bool) View {
	view := View{
		Multiplier:       result.Multiplier,
		SellPrice:        result.SellPriceText,
		LoyaltyPoints:    format.Count(result.LoyaltyPoints),
		ProductionCost:   result.ProductionCostText,
		ShowRequirements: hasRequirements,
		Profit:           result.Profit,
		ProfitLine:       result.ProfitLine,
	}
	for _, req := range result.Requirements {
		view.Lines = append(view.Lines, Line{
			Name:  req.Name,
			Count: req.Count,
			Price: req.Price,
		})
	}
	return view
}

// Renderer applies a row's display state to the page.
type Renderer interface {
	// Collapse hides the scaled fields.
	Collapse()
	// Render shows the scaled fields with the given values.
	Render(View)
}

type nopRenderer struct{}

func (nopRenderer) Collapse()   {}
func (nopRenderer) Render(View) {}
