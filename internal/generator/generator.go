package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"PriceCast/internal/domain/models"
)

// Record domains. Base and competition prices follow the simulated market:
// competition tracks base within +/-20%.
const (
	basePriceMin = 10.0
	basePriceMax = 100.0
	demandMax    = 1000
)

// epoch anchors generated timestamps so that the same seed reproduces the
// same records byte-for-byte.
var epoch = time.Unix(1_700_000_000, 0).UTC()

// Generator produces synthetic pricing observations with a learnable,
// non-degenerate relationship between predictors and optimal price.
type Generator struct {
	noiseSigma float64
}

func New(noiseSigma float64) *Generator {
	if noiseSigma <= 0 {
		noiseSigma = 2.0
	}
	return &Generator{noiseSigma: noiseSigma}
}

// Generate returns exactly n labeled records, deterministic for a given seed.
// All fields stay inside their declared domains.
func (g *Generator) Generate(n int, seed int64) ([]models.PricingRecord, error) {
	if n <= 0 {
		return nil, fmt.Errorf("generate: n must be positive, got %d", n)
	}

	rng := rand.New(rand.NewSource(seed))
	records := make([]models.PricingRecord, 0, n)
	for i := 0; i < n; i++ {
		base := basePriceMin + rng.Float64()*(basePriceMax-basePriceMin)
		demand := rng.Intn(demandMax)
		comp := base * (0.8 + rng.Float64()*0.4)
		tod := rng.Intn(24)
		dow := rng.Intn(7)
		season := rng.Intn(4)

		records = append(records, models.PricingRecord{
			BasePrice:        base,
			Demand:           demand,
			CompetitionPrice: comp,
			TimeOfDay:        tod,
			DayOfWeek:        dow,
			Season:           season,
			OptimalPrice:     g.label(base, demand, comp, tod, rng),
			Timestamp:        epoch.Add(time.Duration(i) * time.Minute),
		})
	}
	return records, nil
}

// label computes the noisy deterministic target:
// 0.7*base + 0.3*base*demand/1000 + 0.2*comp, with a late-hour discount and
// gaussian noise. Noise sigma sits well below the price scale so the signal
// stays learnable.
func (g *Generator) label(base float64, demand int, comp float64, tod int, rng *rand.Rand) float64 {
	price := base*0.7 +
		(float64(demand)/float64(demandMax))*base*0.3 +
		comp*0.2
	if tod > 20 {
		price -= base * 0.05
	}
	price += rng.NormFloat64() * g.noiseSigma

	// Labels must stay strictly positive; with base >= 10 the formula floor
	// is ~8.1, so this only guards extreme noise draws.
	return math.Max(price, 0.01)
}
