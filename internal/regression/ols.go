// Package regression fits small ordinary least squares models in closed form.
package regression

import (
	"errors"
	"fmt"
	"math"
)

// ErrSingular is returned when the two features are collinear and the normal
// equations have no unique solution.
var ErrSingular = errors.New("regression: singular design matrix")

// Sample is one training observation: applicant age and claim count mapped to
// an observed risk label.
type Sample struct {
	Age    int
	Claims int
	Risk   float64
}

// Model is a fitted affine function of age and claim count
type Model struct {
	AgeWeight    float64 `json:"age_weight"`
	ClaimsWeight float64 `json:"claims_weight"`
	Intercept    float64 `json:"intercept"`
}

// Fit solves the two-feature least squares problem on centred sums. The
// intercept follows from the feature and label means.
func Fit(samples []Sample) (Model, error) {
	n := len(samples)
	if n < 3 {
		return Model{}, fmt.Errorf("regression: need at least 3 samples, got %d", n)
	}

	var meanA, meanC, meanY float64
	for _, s := range samples {
		meanA += float64(s.Age)
		meanC += float64(s.Claims)
		meanY += s.Risk
	}
	meanA /= float64(n)
	meanC /= float64(n)
	meanY /= float64(n)

	var saa, scc, sac, say, scy float64
	for _, s := range samples {
		da := float64(s.Age) - meanA
		dc := float64(s.Claims) - meanC
		dy := s.Risk - meanY
		saa += da * da
		scc += dc * dc
		sac += da * dc
		say += da * dy
		scy += dc * dy
	}

	det := saa*scc - sac*sac
	if math.Abs(det) < 1e-12*math.Max(1, saa*scc) {
		return Model{}, ErrSingular
	}

	wa := (say*scc - sac*scy) / det
	wc := (saa*scy - sac*say) / det

	return Model{
		AgeWeight:    wa,
		ClaimsWeight: wc,
		Intercept:    meanY - wa*meanA - wc*meanC,
	}, nil
}

// Predict returns the raw model output; callers bound it as they need
func (m Model) Predict(age, claims int) float64 {
	return m.AgeWeight*float64(age) + m.ClaimsWeight*float64(claims) + m.Intercept
}

// RSquared is the coefficient of determination of m over samples. A constant
// label set returns 1 when every prediction is exact and 0 otherwise.
func (m Model) RSquared(samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}

	var mean float64
	for _, s := range samples {
		mean += s.Risk
	}
	mean /= float64(len(samples))

	var ssRes, ssTot float64
	for _, s := range samples {
		r := s.Risk - m.Predict(s.Age, s.Claims)
		d := s.Risk - mean
		ssRes += r * r
		ssTot += d * d
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}
