package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/suggest"
)

func TestCheckInstant(t *testing.T) {
	ctx, out := newTestContext(t)
	cmd := &CheckCmd{Mood: []string{"  Tired "}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := suggest.TipsFor("tired")[0].Text()
	got := out.String()
	if !strings.Contains(got, "Feeling Tired?") {
		t.Errorf("output missing heading:\n%s", got)
	}
	if !strings.Contains(got, want) {
		t.Errorf("output missing %q:\n%s", want, got)
	}
	if !strings.Contains(got, constants.Disclaimer) {
		t.Error("output missing disclaimer")
	}
	if len(ctx.Tips.List()) != 0 {
		t.Error("tip saved without --save")
	}
}

func TestCheckMoodArgs(t *testing.T) {
	ctx, out := newTestContext(t)
	cmd := &CheckCmd{Mood: []string{"really", "overwhelmed"}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Feeling really overwhelmed?") {
		t.Errorf("words not joined:\n%s", out.String())
	}
}

func TestCheckNoMood(t *testing.T) {
	t.Run("non-interactive", func(t *testing.T) {
		ctx, _ := newTestContext(t)
		if err := (&CheckCmd{}).Run(ctx); err == nil {
			t.Fatal("expected an error without a mood")
		}
	})

	t.Run("interactive prompts", func(t *testing.T) {
		stubPrompts(t, "calm", false)
		ctx, out := newTestContext(t)
		ctx.Interactive = true
		if err := (&CheckCmd{}).Run(ctx); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if !strings.Contains(out.String(), "Feeling calm?") {
			t.Errorf("prompted mood not used:\n%s", out.String())
		}
	})
}

func TestCheckInvalidMood(t *testing.T) {
	ctx, _ := newTestContext(t)
	cmd := &CheckCmd{Mood: []string{strings.Repeat("a", constants.MaxMoodLength+1)}}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("expected an error for an overlong mood")
	}
}

func TestCheckSaveJSON(t *testing.T) {
	ctx, out := newTestContext(t)
	cmd := &CheckCmd{Mood: []string{"happy"}, Save: true, JSON: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var got suggestionJSON
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	tip := suggest.TipsFor("happy")[0]
	if got.Category != "happy" || got.Match != string(suggest.MatchExact) {
		t.Errorf("category/match = %q/%q", got.Category, got.Match)
	}
	if got.Text != tip.Text() || got.Duration != tip.Duration || !got.Saved {
		t.Errorf("payload = %+v", got)
	}

	saved := ctx.Tips.List()
	if len(saved) != 1 || saved[0].Suggestion != tip.Text() {
		t.Errorf("List() = %+v", saved)
	}
}

func TestCheckWithDelay(t *testing.T) {
	var waited time.Duration
	sleep := func(ctx context.Context, d time.Duration) error {
		waited = d
		return nil
	}

	t.Run("non-interactive", func(t *testing.T) {
		ctx, out := newTestContext(t, suggest.WithSleep(sleep))
		ctx.Instant = false
		if err := (&CheckCmd{Mood: []string{"stressed"}}).Run(ctx); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if waited < constants.MinResolveDelay || waited >= constants.MaxResolveDelay {
			t.Errorf("delay = %v, want within [%v, %v)", waited, constants.MinResolveDelay, constants.MaxResolveDelay)
		}
		if !strings.Contains(out.String(), suggest.TipsFor("stressed")[0].Text()) {
			t.Errorf("output:\n%s", out.String())
		}
	})

	t.Run("interactive spinner", func(t *testing.T) {
		stubPrompts(t, "", false)
		spun := false
		runSpinner = func(ctx context.Context, title string, action func()) error {
			spun = true
			action()
			return nil
		}
		ctx, out := newTestContext(t, suggest.WithSleep(sleep))
		ctx.Instant = false
		ctx.Interactive = true
		if err := (&CheckCmd{Mood: []string{"energetic"}}).Run(ctx); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if !spun {
			t.Error("spinner not used on a terminal")
		}
		if !strings.Contains(out.String(), suggest.TipsFor("energetic")[0].Text()) {
			t.Errorf("output:\n%s", out.String())
		}
	})
}

func TestCheckFallback(t *testing.T) {
	cancelled := func(ctx context.Context, d time.Duration) error { return context.Canceled }
	ctx, out := newTestContext(t, suggest.WithSleep(cancelled))
	ctx.Instant = false

	cmd := &CheckCmd{Mood: []string{"tired"}, Save: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), suggest.FallbackMessage) {
		t.Errorf("output missing fallback:\n%s", out.String())
	}
	if len(ctx.Tips.List()) != 0 {
		t.Error("fallback text was saved")
	}
}

func TestCheckHints(t *testing.T) {
	ctx, out := newTestContext(t)
	if err := (&CheckCmd{Mood: []string{"tird"}}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Did you mean: tired") {
		t.Errorf("output missing hint:\n%s", out.String())
	}

	out.Reset()
	if err := (&CheckCmd{Mood: []string{"tired"}}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out.String(), "Did you mean") {
		t.Error("hint shown for a matched mood")
	}
}

func TestSuggest(t *testing.T) {
	ctx, out := newTestContext(t)
	if err := (&SuggestCmd{Mood: []string{"nervous"}}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := suggest.TipsFor("anxious")[0].Text() + "\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	out.Reset()
	if err := (&SuggestCmd{Mood: []string{"xyzzy"}, JSON: true}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var got suggestionJSON
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Match != string(suggest.MatchGeneric) || got.Category != "" {
		t.Errorf("payload = %+v, want generic", got)
	}
	if got.Text != suggest.GenericTips()[0].Text() {
		t.Errorf("text = %q", got.Text)
	}
}

func TestSuggestEmptyMood(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := (&SuggestCmd{Mood: []string{"   "}}).Run(ctx); err == nil {
		t.Fatal("expected an error for a blank mood")
	}
}

func TestMoods(t *testing.T) {
	ctx, out := newTestContext(t)
	if err := (&MoodsCmd{Synonyms: true}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"tired", "peaceful", "Also understood:", "overwhelmed", "→ stressed"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "tired") > strings.Index(got, "anxious") {
		t.Error("moods not listed in declaration order")
	}

	out.Reset()
	if err := (&MoodsCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out.String(), "Also understood") {
		t.Error("synonyms listed with --no-synonyms")
	}
}
