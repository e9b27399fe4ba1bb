package cli

import (
	"fmt"

	"github.com/julianstephens/moodlit/internal/suggest"
)

type MoodsCmd struct {
	Synonyms bool `help:"Also list the words that map onto each mood." default:"true" negatable:""`
}

func (c *MoodsCmd) Run(ctx *Context) error {
	out := ctx.out()

	fmt.Fprintln(out, "Moods:")
	for _, m := range suggest.Moods() {
		fmt.Fprintf(out, "  %-10s %d tips\n", m, len(suggest.TipsFor(m)))
	}

	if !c.Synonyms {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Also understood:")
	for _, s := range suggest.Synonyms() {
		fmt.Fprintf(out, "  %-12s → %s\n", s.Word, s.Mood)
	}
	return nil
}
