package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/moodlit/internal/validation"
)

type SuggestCmd struct {
	Mood []string `arg:"" help:"How you are feeling."`
	JSON bool     `name:"json" help:"Print the structured suggestion, including its duration."`
}

func (c *SuggestCmd) Run(ctx *Context) error {
	mood, err := validation.Mood(strings.Join(c.Mood, " "))
	if err != nil {
		return err
	}

	result := ctx.Resolver.ResolveTip(mood)
	if c.JSON {
		enc := json.NewEncoder(ctx.out())
		enc.SetIndent("", "  ")
		return enc.Encode(newSuggestionJSON(mood, result))
	}
	fmt.Fprintln(ctx.out(), result.Text())
	return nil
}
