package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/suggest"
	"github.com/julianstephens/moodlit/internal/validation"
)

// suggestionJSON is the --json output of check and suggest
type suggestionJSON struct {
	Mood        string `json:"mood"`
	Category    string `json:"category,omitempty"`
	Match       string `json:"match"`
	Activity    string `json:"activity"`
	Explanation string `json:"explanation"`
	Duration    string `json:"duration,omitempty"`
	Text        string `json:"text"`
	Saved       bool   `json:"saved,omitempty"`
	Fallback    bool   `json:"fallback,omitempty"`
}

func newSuggestionJSON(mood string, s suggest.Suggestion) suggestionJSON {
	return suggestionJSON{
		Mood:        mood,
		Category:    string(s.Category),
		Match:       string(s.Match),
		Activity:    s.Tip.Activity,
		Explanation: s.Tip.Explanation,
		Duration:    s.Tip.Duration,
		Text:        s.Text(),
	}
}

type CheckCmd struct {
	Mood []string `arg:"" optional:"" help:"How you are feeling. Prompts for it when omitted."`
	Save bool     `help:"Save the suggestion to your tips."`
	JSON bool     `name:"json" help:"Print the result as JSON."`
}

func (c *CheckCmd) Run(ctx *Context) error {
	raw := strings.Join(c.Mood, " ")
	if strings.TrimSpace(raw) == "" {
		if !ctx.Interactive {
			return errors.New("no mood given, pass one as an argument")
		}
		answer, err := promptMood()
		if err != nil {
			return err
		}
		raw = answer
	}

	mood, err := validation.Mood(raw)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := c.resolve(sigCtx, ctx, mood)
	fallback := err != nil
	text := suggest.Fallback(result.Text(), err)

	saved := false
	if c.Save && !fallback {
		if _, err := ctx.Tips.Save(mood, text); err != nil {
			apperrors.Report(os.Stderr, err)
		} else {
			saved = true
		}
	}

	out := ctx.out()
	if c.JSON {
		payload := newSuggestionJSON(mood, result)
		if fallback {
			payload = suggestionJSON{Mood: mood, Match: string(suggest.MatchGeneric), Text: text, Fallback: true}
		}
		payload.Saved = saved
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	fmt.Fprintf(out, "Feeling %s?\n\n", mood)
	fmt.Fprintln(out, text)
	if result.Tip.Duration != "" {
		fmt.Fprintf(out, "(%s)\n", result.Tip.Duration)
	}
	if hints := suggest.Hints(mood, 3); len(hints) > 0 {
		fmt.Fprintf(out, "\nDid you mean: %s?\n", strings.Join(hints, ", "))
	}
	if saved {
		fmt.Fprintln(out, "\n✓ Saved to your tips")
	}
	fmt.Fprintf(out, "\n%s\n", constants.Disclaimer)
	return nil
}

func (c *CheckCmd) resolve(sigCtx context.Context, ctx *Context, mood string) (suggest.Suggestion, error) {
	if ctx.Instant {
		return ctx.Resolver.ResolveTip(mood), nil
	}
	if !ctx.Interactive || c.JSON {
		return ctx.Resolver.ResolveTipWithDelay(sigCtx, mood)
	}

	var (
		result     suggest.Suggestion
		resolveErr error
	)
	err := runSpinner(sigCtx, "Finding something for you...", func() {
		result, resolveErr = ctx.Resolver.ResolveTipWithDelay(sigCtx, mood)
	})
	if err != nil {
		return suggest.Suggestion{}, err
	}
	return result, resolveErr
}
