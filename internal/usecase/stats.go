package usecase

import (
	"math"
	"sort"

	"PriceCast/internal/domain/models"
)

// PriceStatsOf summarizes the label distribution of a validated batch.
// Unlabeled records are skipped.
func PriceStatsOf(batch models.ValidatedBatch) models.PriceStats {
	var stats models.PriceStats

	prices := make([]float64, 0, batch.Len())
	for _, r := range batch.Records {
		if r.Labeled() {
			prices = append(prices, r.OptimalPrice)
		}
	}
	if len(prices) == 0 {
		return stats
	}
	sort.Float64s(prices)

	stats.Count = len(prices)
	stats.Min = prices[0]
	stats.Max = prices[len(prices)-1]
	stats.Median = quantile(prices, 0.5)
	stats.Q1 = quantile(prices, 0.25)
	stats.Q3 = quantile(prices, 0.75)

	sum := 0.0
	for _, p := range prices {
		sum += p
	}
	stats.Mean = sum / float64(len(prices))

	sq := 0.0
	for _, p := range prices {
		d := p - stats.Mean
		sq += d * d
	}
	if len(prices) > 1 {
		stats.Std = math.Sqrt(sq / float64(len(prices)-1))
	}
	return stats
}

// quantile interpolates linearly on sorted input.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
