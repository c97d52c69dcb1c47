package pricing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MsgNegativeClaims turns away a request with a negative claim count
const MsgNegativeClaims = "Claims count can't be negative."

// UnderAgeMessage turns away an applicant younger than minAge
func UnderAgeMessage(minAge int) string {
	return fmt.Sprintf("Sorry, you must be at least %d to apply for coverage.", minAge)
}

// Quote is one priced estimate
type Quote struct {
	ID           uuid.UUID       `json:"id"`
	Age          int             `json:"age"`
	Claims       int             `json:"claims"`
	BaseRate     decimal.Decimal `json:"base_rate"`
	Risk         float64         `json:"risk_factor"`
	MarketFactor float64         `json:"market_factor"`
	Cost         decimal.Decimal `json:"estimated_cost"`
}

// Breakdown renders the human-readable premium summary. The text starts with
// a newline and has no trailing newline.
func (q Quote) Breakdown() string {
	var b strings.Builder
	b.WriteString("\n--- Premium Breakdown ---\n")
	fmt.Fprintf(&b, "Base Rate       : $%s\n", q.BaseRate.StringFixed(2))
	fmt.Fprintf(&b, "Risk Multiplier : %.2f\n", q.Risk)
	fmt.Fprintf(&b, "Market Factor   : %.2f\n", q.MarketFactor)
	b.WriteString("-----------------------------\n")
	fmt.Fprintf(&b, "Estimated Cost  : $%s", q.Cost.StringFixed(2))
	return b.String()
}

// Request is one applicant to price
type Request struct {
	Age    int
	Claims int
}

// Rejection explains why a request is not priced. It is an outcome, not an
// error.
type Rejection struct {
	Reason  string
	Message string
}

// Validate returns nil when the request can be priced. minAge is the lowest
// accepted age.
func (r Request) Validate(minAge int) *Rejection {
	if r.Age < minAge {
		return &Rejection{Reason: "under_age", Message: UnderAgeMessage(minAge)}
	}
	if r.Claims < 0 {
		return &Rejection{Reason: "negative_claims", Message: MsgNegativeClaims}
	}
	return nil
}
