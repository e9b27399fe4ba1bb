package suggest

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

// fixedRand always picks the same index (modulo the pool size)
type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func texts(tips []models.Tip) []string {
	out := make([]string, len(tips))
	for i, tip := range tips {
		out[i] = tip.Text()
	}
	return out
}

func TestDatabaseShape(t *testing.T) {
	moods := Moods()
	want := []models.MoodCategory{
		models.MoodTired, models.MoodAnxious, models.MoodHappy,
		models.MoodStressed, models.MoodEnergetic, models.MoodPeaceful,
	}
	if !slices.Equal(moods, want) {
		t.Fatalf("Moods() = %v, want %v", moods, want)
	}

	for _, mood := range moods {
		if got := len(TipsFor(mood)); got != 4 {
			t.Errorf("TipsFor(%s) has %d tips, want 4", mood, got)
		}
	}
	if got := len(GenericTips()); got != 4 {
		t.Errorf("GenericTips() has %d tips, want 4", got)
	}

	for _, s := range Synonyms() {
		if TipsFor(s.Mood) == nil {
			t.Errorf("synonym %q maps to unknown category %q", s.Word, s.Mood)
		}
	}
}

func TestSynonymsSorted(t *testing.T) {
	syns := Synonyms()
	if len(syns) != 13 {
		t.Fatalf("Synonyms() returned %d entries, want 13", len(syns))
	}
	for i := 1; i < len(syns); i++ {
		if syns[i-1].Word >= syns[i].Word {
			t.Errorf("Synonyms() not sorted at %d: %q >= %q", i, syns[i-1].Word, syns[i].Word)
		}
	}
}

func TestTipsForReturnsCopy(t *testing.T) {
	tips := TipsFor(models.MoodHappy)
	tips[0].Activity = "mutated"
	if TipsFor(models.MoodHappy)[0].Activity == "mutated" {
		t.Error("TipsFor() exposed the underlying table")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		mood     string
		category models.MoodCategory
		kind     MatchKind
	}{
		{"exact", "tired", models.MoodTired, MatchExact},
		{"exact uppercase and padded", "  ANXIOUS ", models.MoodAnxious, MatchExact},
		{"input contains key", "feeling tired today", models.MoodTired, MatchSubstring},
		{"key contains input", "happ", models.MoodHappy, MatchSubstring},
		{"first declared key wins over text order", "stressed and tired", models.MoodTired, MatchSubstring},
		{"first declared key wins for two keys", "anxious but happy", models.MoodAnxious, MatchSubstring},
		{"single letter matches first key containing it", "e", models.MoodTired, MatchSubstring},
		{"single letter a", "a", models.MoodAnxious, MatchSubstring},
		{"synonym", "overwhelmed", models.MoodStressed, MatchSynonym},
		{"synonym case insensitive", "Sleepy", models.MoodTired, MatchSynonym},
		{"synonym needs exact key", "very calm", "", MatchGeneric},
		{"unknown", "quizzical", "", MatchGeneric},
		{"empty", "", "", MatchGeneric},
		{"whitespace only", "   ", "", MatchGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, kind, pool := Match(tt.mood)
			if category != tt.category || kind != tt.kind {
				t.Errorf("Match(%q) = (%q, %q), want (%q, %q)", tt.mood, category, kind, tt.category, tt.kind)
			}
			if len(pool) != 4 {
				t.Errorf("Match(%q) pool has %d tips, want 4", tt.mood, len(pool))
			}
		})
	}
}

func TestMatchAllSynonyms(t *testing.T) {
	for _, s := range Synonyms() {
		category, kind, _ := Match(s.Word)
		if kind != MatchSynonym || category != s.Mood {
			t.Errorf("Match(%q) = (%q, %q), want (%q, synonym)", s.Word, category, kind, s.Mood)
		}
	}
}

func TestResolveExactCategories(t *testing.T) {
	r := New()
	for _, mood := range Moods() {
		want := texts(TipsFor(mood))
		for i := 0; i < 20; i++ {
			got := r.Resolve(string(mood))
			if !slices.Contains(want, got) {
				t.Fatalf("Resolve(%q) = %q, not one of the category tips", mood, got)
			}
		}
	}
}

func TestResolveFormat(t *testing.T) {
	r := New(WithRand(fixedRand(0)))

	got := r.Resolve("tired")
	want := "Take a 10-minute power nap or rest with your eyes closed. " +
		"Short rest periods can help restore mental clarity without entering deep sleep cycles that might leave you groggier."
	if got != want {
		t.Errorf("Resolve(tired) = %q, want %q", got, want)
	}
}

func TestResolveGeneric(t *testing.T) {
	r := New(WithRand(fixedRand(3)))
	generic := texts(GenericTips())

	for _, mood := range []string{"quizzical", "", "   ", "blorp"} {
		got := r.Resolve(mood)
		if got != generic[3] {
			t.Errorf("Resolve(%q) = %q, want %q", mood, got, generic[3])
		}
	}
}

func TestResolveTipKeepsDuration(t *testing.T) {
	r := New(WithRand(fixedRand(1)))

	s := r.ResolveTip("worried")
	if s.Category != models.MoodAnxious || s.Match != MatchSynonym {
		t.Fatalf("ResolveTip(worried) = %+v", s)
	}
	if s.Tip.Duration != "10 minutes" {
		t.Errorf("Duration = %q, want %q", s.Tip.Duration, "10 minutes")
	}
	if s.Text() != r.Resolve("worried") {
		t.Errorf("Text() and Resolve disagree")
	}
	if s.Mood != "worried" {
		t.Errorf("Mood = %q, want the caller's input", s.Mood)
	}
}

func TestResolveUniform(t *testing.T) {
	r := New(WithRand(rand.New(rand.NewPCG(7, 11))))
	counts := make(map[string]int)
	const runs = 4000
	for i := 0; i < runs; i++ {
		counts[r.Resolve("happy")]++
	}
	if len(counts) != 4 {
		t.Fatalf("saw %d distinct tips, want 4", len(counts))
	}
	for text, n := range counts {
		if n < 700 || n > 1300 {
			t.Errorf("tip %q picked %d/%d times, expected roughly %d", text, n, runs, runs/4)
		}
	}
}

func TestCandidates(t *testing.T) {
	r := New()
	got := r.Candidates("feeling tired today")
	if !slices.Equal(got, texts(TipsFor(models.MoodTired))) {
		t.Errorf("Candidates() = %v", got)
	}
}

func TestResolveWithDelayRange(t *testing.T) {
	var delays []time.Duration
	r := New(
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithSleep(func(ctx context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		}),
	)

	for i := 0; i < 200; i++ {
		got, err := r.ResolveWithDelay(context.Background(), "stressed")
		if err != nil {
			t.Fatalf("ResolveWithDelay() error = %v", err)
		}
		if !slices.Contains(r.Candidates("stressed"), got) {
			t.Fatalf("ResolveWithDelay() = %q, not a candidate", got)
		}
	}

	for _, d := range delays {
		if d < constants.MinResolveDelay || d >= constants.MaxResolveDelay {
			t.Errorf("delay %v outside [%v, %v)", d, constants.MinResolveDelay, constants.MaxResolveDelay)
		}
	}
}

func TestResolveWithDelayWaits(t *testing.T) {
	r := New(WithDelayRange(20*time.Millisecond, 40*time.Millisecond))

	start := time.Now()
	got, err := r.ResolveWithDelay(context.Background(), "peaceful")
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("ResolveWithDelay() error = %v", err)
	}
	if elapsed < 20*time.Millisecond {
		t.Errorf("resolved after %v, want at least 20ms", elapsed)
	}
	if !slices.Contains(r.Candidates("peaceful"), got) {
		t.Errorf("ResolveWithDelay() = %q, not a candidate", got)
	}
}

func TestResolveWithDelayCancelled(t *testing.T) {
	r := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := r.ResolveWithDelay(ctx, "tired")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ResolveWithDelay() error = %v, want context.Canceled", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("cancelled resolution still waited for the delay")
	}
}

func TestFixedDelayWhenRangeEmpty(t *testing.T) {
	var got time.Duration
	r := New(
		WithDelayRange(5*time.Millisecond, 5*time.Millisecond),
		WithSleep(func(ctx context.Context, d time.Duration) error {
			got = d
			return nil
		}),
	)
	if _, err := r.ResolveWithDelay(context.Background(), "happy"); err != nil {
		t.Fatal(err)
	}
	if got != 5*time.Millisecond {
		t.Errorf("delay = %v, want 5ms", got)
	}
}

func TestFallback(t *testing.T) {
	if got := Fallback("tip", nil); got != "tip" {
		t.Errorf("Fallback(tip, nil) = %q", got)
	}
	if got := Fallback("", context.DeadlineExceeded); got != FallbackMessage {
		t.Errorf("Fallback(err) = %q, want FallbackMessage", got)
	}
}
