package generator

import (
	"math"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// seedSalt separates the second PCG word from the plain ticker hash.
const seedSalt = "synthfin/"

// Seed derives the two PCG seed words for a normalised ticker.
// xxhash is stable across processes, platforms and Go releases.
func Seed(ticker string) (uint64, uint64) {
	return xxhash.Sum64String(ticker), xxhash.Sum64String(seedSalt + ticker)
}

func newRand(ticker string) *rand.Rand {
	hi, lo := Seed(ticker)
	return rand.New(rand.NewPCG(hi, lo))
}

// profile is the fixed per-ticker parameter set driving the walk.
type profile struct {
	baseRevenue      float64
	growthMean       float64
	growthVol        float64
	cogsRatio        float64
	opexRatio        float64
	daRatio          float64
	interestRate     float64
	taxRate          float64
	assetTurnover    float64
	leverage         float64
	debtShare        float64 // interest-bearing share of liabilities
	currentLiabShare float64
	cashShare        float64
	receivableDays   float64
	inventoryDays    float64
	payoutRatio      float64
}

func between(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// drawProfile consumes the first draws of the ticker's stream.
// The order of the draws is part of the output contract: reordering changes every bundle.
func drawProfile(r *rand.Rand) profile {
	return profile{
		baseRevenue:      math.Exp(between(r, math.Log(50e6), math.Log(5e9))),
		growthMean:       between(r, 0.01, 0.12),
		growthVol:        between(r, 0.02, 0.10),
		cogsRatio:        between(r, 0.45, 0.75),
		opexRatio:        between(r, 0.08, 0.22),
		daRatio:          between(r, 0.02, 0.06),
		interestRate:     between(r, 0.03, 0.08),
		taxRate:          between(r, 0.18, 0.28),
		assetTurnover:    between(r, 0.6, 1.6),
		leverage:         between(r, 0.30, 0.70),
		debtShare:        between(r, 0.30, 0.70),
		currentLiabShare: between(r, 0.25, 0.55),
		cashShare:        between(r, 0.04, 0.15),
		receivableDays:   between(r, 25, 75),
		inventoryDays:    between(r, 20, 90),
		payoutRatio:      between(r, 0.0, 0.5),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
