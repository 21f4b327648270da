package pricing

import (
	"fmt"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
)

// ErrUnknownService is returned in strict mode for a service name absent
// from the rate table.
type ErrUnknownService struct {
	Service string
}

func (e *ErrUnknownService) Error() string {
	return fmt.Sprintf("unknown service %q", e.Service)
}

// RateTable is the injected pricing configuration. There is exactly one
// authoritative copy, built from config at startup; nothing else in the
// codebase hardcodes a per-service rate.
type RateTable struct {
	Rates         map[string]float64
	CommissionPct float64

	// Strict rejects unknown service names with ErrUnknownService.
	// When false, unknown services are priced at zero instead.
	Strict bool
}

// BuildReceipt prices the selected services at the tier-adjusted rates and
// returns the line-itemized receipt.
//
// Services with non-positive resolved hours are excluded from the line
// items; negative hours clamp to zero rather than failing. An empty
// selection yields an empty receipt with zero totals.
func BuildReceipt(services []string, hours map[string]float64, tier Tier, table RateTable) (model.Receipt, error) {
	lines := make([]model.ReceiptLine, 0, len(services))
	subtotal := 0.0

	for _, name := range services {
		base, known := table.Rates[name]
		if !known {
			if table.Strict {
				return model.Receipt{}, &ErrUnknownService{Service: name}
			}
			base = 0
		}

		h := hours[name]
		if h < 0 {
			h = 0
		}
		if h <= 0 {
			continue
		}

		adjusted := base * (1 + tier.Percent)
		amount := adjusted * h
		lines = append(lines, model.ReceiptLine{
			Service:      name,
			BaseRate:     base,
			Hours:        h,
			AdjustedRate: adjusted,
			Amount:       amount,
		})
		subtotal += amount
	}

	commission := subtotal * table.CommissionPct
	return model.Receipt{
		Lines:       lines,
		Subtotal:    subtotal,
		Commission:  commission,
		Total:       subtotal + commission,
		Tier:        tier.Name,
		TierPercent: tier.Percent,
	}, nil
}
