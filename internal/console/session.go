// Package console runs the interactive prompt, estimate and print rounds.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/sawpanic/smartpremium/internal/pricing"
	"github.com/sawpanic/smartpremium/internal/telemetry"
)

// Console text
const (
	Banner       = "Welcome to the AI-Driven Insurance Estimator"
	PromptAge    = "Please enter your age: "
	PromptClaims = "Number of claims filed in past 5 years: "
)

// Result is what a single round produced. Exactly one field is set.
type Result struct {
	Quote     *pricing.Quote
	Rejection *pricing.Rejection
	Err       error
}

// Session reads applicant answers from in and writes prompts and results to
// out. It is not safe for concurrent use.
type Session struct {
	in      *bufio.Reader
	out     io.Writer
	est     *pricing.Estimator
	minAge  int
	metrics *telemetry.MetricsRegistry

	banner *color.Color
	alert  *color.Color
	result *color.Color
}

// Option configures a Session
type Option func(*Session)

// WithMinAge sets the lowest accepted age (default 18)
func WithMinAge(age int) Option {
	return func(s *Session) { s.minAge = age }
}

// WithMetrics records round outcomes on m
func WithMetrics(m *telemetry.MetricsRegistry) Option {
	return func(s *Session) { s.metrics = m }
}

// WithColor turns ANSI styling on or off. Off by default.
func WithColor(enabled bool) Option {
	return func(s *Session) {
		for _, c := range []*color.Color{s.banner, s.alert, s.result} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// NewSession creates a session over the given streams
func NewSession(in io.Reader, out io.Writer, est *pricing.Estimator, opts ...Option) *Session {
	s := &Session{
		in:     bufio.NewReader(in),
		out:    out,
		est:    est,
		minAge: 18,
		banner: color.New(color.FgCyan, color.Bold),
		alert:  color.New(color.FgRed),
		result: color.New(color.FgGreen),
	}
	WithColor(false)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run plays rounds consecutive rounds. Round errors are printed, never
// returned; only context cancellation between rounds stops early.
func (s *Session) Run(ctx context.Context, rounds int) ([]Result, error) {
	results := make([]Result, 0, rounds)
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := s.Round()
		log.Debug().Int("round", i+1).Bool("priced", res.Quote != nil).Msg("Round complete")
		results = append(results, res)
	}
	return results, nil
}

// Round prints the banner, asks for age and claims and prints either a
// rejection, an error or the premium breakdown.
func (s *Session) Round() (res Result) {
	s.banner.Fprintln(s.out, Banner)

	defer func() {
		if r := recover(); r != nil {
			res = s.fail(fmt.Errorf("%v", r))
		}
	}()

	age, err := s.askInt(PromptAge, "age", MsgBadAge)
	if err != nil {
		return s.fail(err)
	}

	if rej := (pricing.Request{Age: age}).Validate(s.minAge); rej != nil {
		return s.reject(rej)
	}

	claims, err := s.askInt(PromptClaims, "claims", MsgBadClaims)
	if err != nil {
		return s.fail(err)
	}

	if rej := (pricing.Request{Age: age, Claims: claims}).Validate(s.minAge); rej != nil {
		return s.reject(rej)
	}

	q := s.est.Estimate(age, claims)
	if s.metrics != nil {
		s.metrics.RecordQuote(q.Risk, q.MarketFactor)
	}
	s.result.Fprintln(s.out, q.Breakdown())
	return Result{Quote: &q}
}

// askInt prompts and accepts only a non-empty run of ASCII digits
func (s *Session) askInt(prompt, field, msg string) (int, error) {
	fmt.Fprint(s.out, prompt)

	line, err := s.readLine()
	if err != nil {
		return 0, err
	}

	if !isDigits(line) {
		return 0, &InputError{Field: field, Msg: msg}
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		// Digits only, so the only failure left is overflow
		return 0, &InputError{Field: field, Msg: msg}
	}
	return n, nil
}

func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			return "", ErrEndOfInput
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (s *Session) reject(rej *pricing.Rejection) Result {
	fmt.Fprintln(s.out, rej.Message)
	if s.metrics != nil {
		s.metrics.RecordRejection(rej.Reason)
	}
	return Result{Rejection: rej}
}

func (s *Session) fail(err error) Result {
	kind := telemetry.KindUnexpected
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		kind = telemetry.KindInput
	} else {
		log.Warn().Err(err).Msg("Round failed")
	}
	if s.metrics != nil {
		s.metrics.RecordError(kind)
	}
	s.alert.Fprintf(s.out, "%s %v\n", prefix(err), err)
	return Result{Err: err}
}

func isDigits(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}
