// Package secretkey issues the customer-facing order keys.
//
// A key is a zero-padded sequence number followed by the last digit of the
// local calendar year and the two-digit month and day, e.g. 0423010 for the
// 42nd order reserved on 1403-01-10. On collision a "-n" suffix is appended.
package secretkey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/designhouse/printdesk/internal/calendar"
	"github.com/designhouse/printdesk/internal/metrics"
)

const DefaultMaxAttempts = 20

// ErrExhausted is returned when no candidate could be claimed within the
// attempt budget. No key is issued in that case.
var ErrExhausted = errors.New("secret key attempts exhausted")

// Sequence hands out increasing numbers, each at most once.
type Sequence interface {
	Next(ctx context.Context) (int64, error)
}

// ClaimFunc atomically stores key if no other record holds it. It reports
// false on collision.
type ClaimFunc func(ctx context.Context, key string) (bool, error)

type Generator struct {
	calendar    calendar.Calendar
	sequence    Sequence
	location    *time.Location
	maxAttempts int
	logger      *zap.Logger

	timeNow func() time.Time
}

func NewGenerator(cal calendar.Calendar, seq Sequence, loc *time.Location, maxAttempts int, logger *zap.Logger) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{
		calendar:    cal,
		sequence:    seq,
		location:    loc,
		maxAttempts: maxAttempts,
		logger:      logger,
		timeNow:     time.Now,
	}
}

// Base builds the unsuffixed key for seq on t's local date.
func Base(cal calendar.Calendar, seq int64, t time.Time) string {
	y, m, d := cal.Date(t)
	return fmt.Sprintf("%03d%d%02d%02d", seq, y%10, m, d)
}

// Candidate returns the n-th candidate derived from base.
func Candidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// Generate reserves a sequence number and claims the first free candidate.
func (g *Generator) Generate(ctx context.Context, claim ClaimFunc) (string, error) {
	seq, err := g.sequence.Next(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to reserve key sequence: %w", err)
	}

	base := Base(g.calendar, seq, g.timeNow().In(g.location))
	for n := 0; n < g.maxAttempts; n++ {
		key := Candidate(base, n)

		ok, err := claim(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to claim key %s: %w", key, err)
		}
		if ok {
			return key, nil
		}

		metrics.SecretKeyCollisionsTotal.Inc()
		g.logger.Debug("secret key collision", zap.String("key", key), zap.Int("attempt", n+1))
	}

	metrics.SecretKeyExhaustedTotal.Inc()
	g.logger.Error("secret key attempts exhausted",
		zap.String("base", base), zap.Int("attempts", g.maxAttempts))
	return "", ErrExhausted
}
