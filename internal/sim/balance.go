package sim

import (
	"fmt"

	"github.com/vovakirdan/balance-runner/internal/config"
)

// Zone classifies a balance assessment.
type Zone int

const (
	ZoneNeutral Zone = iota // no adjustment
	ZoneBoost               // flat bonus added
	ZonePenalty             // speed reduced
)

// String returns a human-readable zone name.
func (z Zone) String() string {
	switch z {
	case ZoneNeutral:
		return "neutral"
	case ZoneBoost:
		return "boost"
	case ZonePenalty:
		return "penalty"
	default:
		return "unknown"
	}
}

// Assessment is the result of evaluating the queue against a policy.
type Assessment struct {
	Difference        float64 // max% - min% over the colors the policy considers
	Imbalanced        bool
	Penalty           float64 // flat speed loss (strict)
	Boost             float64 // flat speed gain (dual zone)
	PenaltyMultiplier float64 // fraction of speed removed (dual zone)
	Zone              Zone
}

// BalancePolicy turns color counts into a character speed adjustment.
type BalancePolicy interface {
	Name() string
	Evaluate(counts map[Token]int, palette Palette, total int) Assessment
	Adjust(base float64, a Assessment) float64
}

// StrictImbalance penalizes spreads above Threshold. Only colors present in
// the queue take part, so a queue of one color is never imbalanced.
type StrictImbalance struct {
	Threshold  float64
	Multiplier float64
}

// Name implements BalancePolicy.
func (StrictImbalance) Name() string { return config.PolicyStrict }

// Evaluate implements BalancePolicy.
func (s StrictImbalance) Evaluate(counts map[Token]int, palette Palette, total int) Assessment {
	if total <= 0 {
		return Assessment{}
	}

	present := 0
	maxPct, minPct := 0.0, 0.0
	for _, c := range palette {
		n := counts[c]
		if n == 0 {
			continue
		}
		pct := float64(n) / float64(total) * 100
		if present == 0 || pct > maxPct {
			maxPct = pct
		}
		if present == 0 || pct < minPct {
			minPct = pct
		}
		present++
	}
	if present < 2 {
		return Assessment{}
	}

	a := Assessment{Difference: maxPct - minPct}
	if a.Difference > s.Threshold {
		a.Imbalanced = true
		a.Penalty = (a.Difference - s.Threshold) * s.Multiplier
		a.Zone = ZonePenalty
	}
	return a
}

// Adjust implements BalancePolicy.
func (StrictImbalance) Adjust(base float64, a Assessment) float64 {
	return base - a.Penalty
}

// DualZone rewards a spread within NeutralThreshold with a boost that fades
// linearly to zero, and scales speed down multiplicatively beyond it. All
// palette colors take part, absent ones at 0%.
type DualZone struct {
	NeutralThreshold float64
	MaxBoost         float64
	Dampening        float64
}

// Name implements BalancePolicy.
func (DualZone) Name() string { return config.PolicyDualZone }

// Evaluate implements BalancePolicy.
func (d DualZone) Evaluate(counts map[Token]int, palette Palette, total int) Assessment {
	if total <= 0 || len(palette) == 0 {
		return Assessment{}
	}

	maxPct, minPct := 0.0, 0.0
	for i, c := range palette {
		pct := float64(counts[c]) / float64(total) * 100
		if i == 0 || pct > maxPct {
			maxPct = pct
		}
		if i == 0 || pct < minPct {
			minPct = pct
		}
	}

	a := Assessment{Difference: maxPct - minPct}
	if a.Difference <= d.NeutralThreshold {
		a.Zone = ZoneBoost
		a.Boost = d.MaxBoost * (1 - a.Difference/d.NeutralThreshold)
		return a
	}
	a.Zone = ZonePenalty
	a.Imbalanced = true
	a.PenaltyMultiplier = a.Difference / 100 * d.Dampening
	return a
}

// Adjust implements BalancePolicy.
func (DualZone) Adjust(base float64, a Assessment) float64 {
	switch a.Zone {
	case ZoneBoost:
		return base + a.Boost
	case ZonePenalty:
		return base * (1 - a.PenaltyMultiplier)
	default:
		return base
	}
}

// NewBalancePolicy selects the policy named by cfg.BalancePolicy.
func NewBalancePolicy(cfg config.RunnerConfig) (BalancePolicy, error) {
	switch cfg.BalancePolicy {
	case config.PolicyStrict:
		return StrictImbalance{Threshold: cfg.ImbalanceThreshold, Multiplier: cfg.PenaltyMultiplier}, nil
	case config.PolicyDualZone:
		return DualZone{
			NeutralThreshold: cfg.NeutralThreshold,
			MaxBoost:         cfg.MaxBoost,
			Dampening:        cfg.PenaltyDampening,
		}, nil
	default:
		return nil, fmt.Errorf("sim: unknown balance policy %q", cfg.BalancePolicy)
	}
}
