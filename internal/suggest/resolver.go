package suggest

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// FallbackMessage is shown when a suggestion could not be produced
const FallbackMessage = "Take a moment to breathe deeply and be kind to yourself. " +
	"Sometimes the best wellness practice is simply acknowledging how you feel."

// MatchKind records which rule resolved a mood
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchSubstring MatchKind = "substring"
	MatchSynonym   MatchKind = "synonym"
	MatchGeneric   MatchKind = "generic"
)

// Suggestion is the structured result of resolving a mood
type Suggestion struct {
	Mood     string              `json:"mood"`
	Category models.MoodCategory `json:"category,omitempty"` // empty for generic
	Match    MatchKind           `json:"match"`
	Tip      models.Tip          `json:"tip"`
}

// Text is the formatted suggestion, "{activity}. {explanation}"
func (s Suggestion) Text() string {
	return s.Tip.Text()
}

// Rand is the random source used to pick a tip from a pool
type Rand interface {
	IntN(n int) int
}

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

type Resolver struct {
	rng      Rand
	sleep    SleepFunc
	minDelay time.Duration
	maxDelay time.Duration
}

type Option func(*Resolver)

// WithRand sets the random source. Tests pass a seeded or fixed source.
func WithRand(r Rand) Option {
	return func(res *Resolver) { res.rng = r }
}

// WithSleep replaces the wait used by ResolveWithDelay
func WithSleep(fn SleepFunc) Option {
	return func(res *Resolver) { res.sleep = fn }
}

// WithDelayRange sets the [min, max) bounds of the ResolveWithDelay wait.
// A max not above min means a fixed wait of min.
func WithDelayRange(min, max time.Duration) Option {
	return func(res *Resolver) {
		res.minDelay = min
		res.maxDelay = max
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		sleep:    sleepContext,
		minDelay: constants.MinResolveDelay,
		maxDelay: constants.MaxResolveDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Normalize lowercases and trims a mood the way matching sees it
func Normalize(mood string) string {
	return strings.ToLower(strings.TrimSpace(mood))
}

// Match finds the tip pool for a mood: exact key, then the first key in
// declaration order with a substring relation in either direction, then
// the synonym table, then the generic pool.
func Match(mood string) (models.MoodCategory, MatchKind, []models.Tip) {
	normalized := Normalize(mood)

	if c, ok := lookup(models.MoodCategory(normalized)); ok {
		return c.Mood, MatchExact, c.Tips
	}

	if normalized != "" {
		for _, c := range categories {
			key := string(c.Mood)
			if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
				return c.Mood, MatchSubstring, c.Tips
			}
		}
	}

	if target, ok := synonyms[normalized]; ok {
		if c, ok := lookup(target); ok {
			return c.Mood, MatchSynonym, c.Tips
		}
	}

	return "", MatchGeneric, genericTips
}

// ResolveTip resolves a mood and picks one tip uniformly at random
func (r *Resolver) ResolveTip(mood string) Suggestion {
	category, kind, pool := Match(mood)
	tip := pool[r.rng.IntN(len(pool))]
	logger.Debug("Resolved mood", "mood", mood, "category", category, "match", kind)
	return Suggestion{
		Mood:     mood,
		Category: category,
		Match:    kind,
		Tip:      tip,
	}
}

// Resolve returns the formatted suggestion for a mood. It never fails.
func (r *Resolver) Resolve(mood string) string {
	return r.ResolveTip(mood).Text()
}

// Candidates lists every text Resolve may return for mood
func (r *Resolver) Candidates(mood string) []string {
	_, _, pool := Match(mood)
	out := make([]string, len(pool))
	for i, tip := range pool {
		out[i] = tip.Text()
	}
	return out
}

// ResolveWithDelay waits a random interval in the configured range, then
// resolves. It returns ctx.Err() if ctx is done before the wait ends.
func (r *Resolver) ResolveWithDelay(ctx context.Context, mood string) (string, error) {
	s, err := r.ResolveTipWithDelay(ctx, mood)
	if err != nil {
		return "", err
	}
	return s.Text(), nil
}

// ResolveTipWithDelay is ResolveWithDelay returning the structured suggestion
func (r *Resolver) ResolveTipWithDelay(ctx context.Context, mood string) (Suggestion, error) {
	if err := r.sleep(ctx, r.nextDelay()); err != nil {
		return Suggestion{}, err
	}
	return r.ResolveTip(mood), nil
}

func (r *Resolver) nextDelay() time.Duration {
	span := r.maxDelay - r.minDelay
	if span <= 0 {
		return r.minDelay
	}
	return r.minDelay + time.Duration(r.rng.IntN(int(span)))
}

// Fallback returns the fixed default text when err is set, else text
func Fallback(text string, err error) string {
	if err != nil {
		logger.Warn("Falling back to default suggestion", "error", err)
		return FallbackMessage
	}
	return text
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
