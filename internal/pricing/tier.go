// Package pricing implements the dynamic rate tiers and the receipt builder.
// Everything here is pure computation: no storage, no clock, no randomness.
package pricing

// Tier is a named performance bracket with its rate surcharge.
type Tier struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"` // multiplicative surcharge on base rates
}

// The four tiers, highest first. Thresholds deliberately overlap, so order
// of evaluation matters: a volunteer qualifying for Expert also qualifies
// for every lower tier.
var (
	TierExpert     = Tier{Name: "Expert", Percent: 0.12}
	TierAdvanced   = Tier{Name: "Advanced", Percent: 0.08}
	TierProficient = Tier{Name: "Proficient", Percent: 0.05}
	TierAssociate  = Tier{Name: "Associate", Percent: 0}
)

// TierFor computes the rate tier from a volunteer's completed-task count and
// average rating. A nil rating compares as 0 and never earns a surcharge.
func TierFor(tasksCompleted int, averageRating *float64) Tier {
	rating := 0.0
	if averageRating != nil {
		rating = *averageRating
	}

	switch {
	case tasksCompleted >= 40 && rating >= 4.6:
		return TierExpert
	case tasksCompleted >= 20 && rating >= 4.4:
		return TierAdvanced
	case tasksCompleted >= 5 && rating >= 4.2:
		return TierProficient
	default:
		return TierAssociate
	}
}
