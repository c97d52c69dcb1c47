// Package pricing turns an applicant's age and claim history into a premium quote.
package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/sawpanic/smartpremium/internal/config"
	"github.com/sawpanic/smartpremium/internal/market"
	"github.com/sawpanic/smartpremium/internal/regression"
)

// TrainingSet maps (age, claims) to a normalized risk label in [0, 1]
var TrainingSet = []regression.Sample{
	{Age: 22, Claims: 0, Risk: 0.10},
	{Age: 35, Claims: 1, Risk: 0.30},
	{Age: 47, Claims: 2, Risk: 0.60},
	{Age: 55, Claims: 3, Risk: 0.85},
	{Age: 65, Claims: 0, Risk: 0.50},
}

// Estimator prices applicants from a risk model fitted once at construction
type Estimator struct {
	baseRate   decimal.Decimal
	marketLow  float64
	marketHigh float64
	model      regression.Model
	source     market.Source
}

// NewEstimator fits the risk model on TrainingSet. src supplies the market
// variation draws.
func NewEstimator(cfg config.Config, src market.Source) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("nil market source")
	}

	model, err := regression.Fit(TrainingSet)
	if err != nil {
		return nil, fmt.Errorf("failed to fit risk model: %w", err)
	}

	log.Debug().
		Float64("age_weight", model.AgeWeight).
		Float64("claims_weight", model.ClaimsWeight).
		Float64("intercept", model.Intercept).
		Msg("Risk model fitted")

	return &Estimator{
		baseRate:   decimal.NewFromFloat(cfg.BaseRate),
		marketLow:  cfg.Market.Low,
		marketHigh: cfg.Market.High,
		model:      model,
		source:     src,
	}, nil
}

// Model returns the fitted risk model
func (e *Estimator) Model() regression.Model {
	return e.model
}

// BaseRate is the premium before risk and market adjustments
func (e *Estimator) BaseRate() decimal.Decimal {
	return e.baseRate
}

// PredictRisk returns the model risk factor clamped to [0.0, 1.0]
func (e *Estimator) PredictRisk(age, claims int) float64 {
	return clamp01(e.model.Predict(age, claims))
}

// MarketVariation draws one multiplier from the configured market range
func (e *Estimator) MarketVariation() float64 {
	return market.Uniform(e.source, e.marketLow, e.marketHigh)
}

// Estimate computes base_rate * (1 + risk) * market, rounded half away from
// zero to cents.
func (e *Estimator) Estimate(age, claims int) Quote {
	risk := e.PredictRisk(age, claims)
	shift := e.MarketVariation()

	cost := e.baseRate.
		Mul(decimal.NewFromFloat(1 + risk)).
		Mul(decimal.NewFromFloat(shift)).
		Round(2)

	q := Quote{
		ID:           uuid.New(),
		Age:          age,
		Claims:       claims,
		BaseRate:     e.baseRate,
		Risk:         risk,
		MarketFactor: shift,
		Cost:         cost,
	}

	log.Debug().
		Str("quote_id", q.ID.String()).
		Int("age", age).
		Int("claims", claims).
		Float64("risk", risk).
		Float64("market_factor", shift).
		Str("cost", cost.StringFixed(2)).
		Msg("Premium estimated")

	return q
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
