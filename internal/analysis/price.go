package analysis

import (
	"fmt"
	"strings"

	"StockSage/internal/model"
)

// PriceSource names one way of obtaining a predicted price.
type PriceSource string

const (
	PriceExplicit PriceSource = "explicit"
	PriceTarget   PriceSource = "target"
	PriceDerived  PriceSource = "derived"
)

// DefaultPrecedence is the order used when none is configured.
var DefaultPrecedence = []PriceSource{PriceExplicit, PriceTarget, PriceDerived}

// maxDerivedMove is the move implied by a fully confident direction label
// when the response carries no percentage.
const maxDerivedMove = 0.05

var (
	bullishLabels = map[string]bool{"buy": true, "strong_buy": true, "bullish": true, "up": true}
	bearishLabels = map[string]bool{"sell": true, "strong_sell": true, "bearish": true, "down": true}
)

// Resolver resolves a predicted price following a configurable precedence.
type Resolver struct {
	Precedence []PriceSource
}

var defaultResolver = &Resolver{Precedence: DefaultPrecedence}

// NewResolver builds a Resolver from configured source names. An empty
// list yields DefaultPrecedence.
func NewResolver(names []string) (*Resolver, error) {
	if len(names) == 0 {
		return &Resolver{Precedence: DefaultPrecedence}, nil
	}
	seen := make(map[PriceSource]bool, len(names))
	order := make([]PriceSource, 0, len(names))
	for _, n := range names {
		src := PriceSource(strings.ToLower(strings.TrimSpace(n)))
		switch src {
		case PriceExplicit, PriceTarget, PriceDerived:
		default:
			return nil, fmt.Errorf("unknown price source %q", n)
		}
		if seen[src] {
			continue
		}
		seen[src] = true
		order = append(order, src)
	}
	return &Resolver{Precedence: order}, nil
}

// PredictedPrice walks the precedence and returns the first price found.
// When nothing resolves the last price is returned unchanged.
func (r *Resolver) PredictedPrice(lastPrice float64, p model.Prediction) float64 {
	for _, src := range r.Precedence {
		switch src {
		case PriceExplicit:
			if p.ExplicitPrice != nil {
				return *p.ExplicitPrice
			}
		case PriceTarget:
			if p.TargetPrice != nil {
				return *p.TargetPrice
			}
		case PriceDerived:
			return DerivePredictedPrice(lastPrice, p)
		}
	}
	return lastPrice
}

// DerivePredictedPrice estimates a price from lastPrice and the percentage
// implied by the prediction: an explicit change percent if present, else
// the direction label scaled by confidence.
func DerivePredictedPrice(lastPrice float64, p model.Prediction) float64 {
	if p.PriceChangePercent != nil {
		return lastPrice * (1 + *p.PriceChangePercent/100)
	}
	dir := strings.ToLower(p.Direction)
	switch {
	case bullishLabels[dir]:
		return lastPrice * (1 + p.Confidence*maxDerivedMove)
	case bearishLabels[dir]:
		return lastPrice * (1 - p.Confidence*maxDerivedMove)
	default:
		return lastPrice
	}
}

// hasPriceSignal reports whether the response carries a price of its own
// or at least a forecast block.
func hasPriceSignal(p model.Prediction) bool {
	return p.ExplicitPrice != nil || p.TargetPrice != nil || p.HasDetail
}
