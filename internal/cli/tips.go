package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/validation"
)

type TipsCmd struct {
	List    TipsListCmd    `cmd:"" help:"List saved tips." default:"1"`
	Save    TipsSaveCmd    `cmd:"" help:"Save a tip."`
	Delete  TipsDeleteCmd  `cmd:"" help:"Delete a saved tip by id."`
	Clear   TipsClearCmd   `cmd:"" help:"Delete every saved tip."`
	Backup  TipsBackupCmd  `cmd:"" help:"Snapshot saved tips to a backup file."`
	Backups TipsBackupsCmd `cmd:"" help:"List tip backups."`
	Restore TipsRestoreCmd `cmd:"" help:"Replace saved tips with a backup."`
}

type TipsListCmd struct {
	All     bool `help:"Show every saved tip instead of the newest few."`
	ShowIDs bool `help:"Show tip IDs." name:"show-ids"`
}

func (c *TipsListCmd) Run(ctx *Context) error {
	out := ctx.out()
	saved := ctx.Tips.List()
	if len(saved) == 0 {
		fmt.Fprintln(out, "No saved tips yet")
		return nil
	}

	fmt.Fprintf(out, "Saved tips (%d):\n", len(saved))
	shown := saved
	if !c.All && len(saved) > constants.CollapsedTipCount {
		shown = saved[:constants.CollapsedTipCount]
	}
	for _, tip := range shown {
		printTip(ctx, tip, c.ShowIDs)
	}
	if hidden := len(saved) - len(shown); hidden > 0 {
		fmt.Fprintf(out, "  ... %d more (use --all to show)\n", hidden)
	}
	return nil
}

func printTip(ctx *Context, tip models.SavedTip, showID bool) {
	idStr := ""
	if showID {
		idStr = fmt.Sprintf(" (ID: %d)", tip.ID)
	}
	fmt.Fprintf(ctx.out(), "  [%s] %s%s\n      %s\n", formatSavedAt(tip.SavedAt), tip.Mood, idStr, tip.Suggestion)
}

type TipsSaveCmd struct {
	Mood       string `arg:"" help:"Mood the tip was for."`
	Suggestion string `arg:"" help:"Suggestion text."`
}

func (c *TipsSaveCmd) Run(ctx *Context) error {
	mood, err := validation.Mood(c.Mood)
	if err != nil {
		return err
	}
	suggestion := strings.TrimSpace(c.Suggestion)
	if suggestion == "" {
		return errors.New("suggestion cannot be empty")
	}

	tip, err := ctx.Tips.Save(mood, suggestion)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.out(), "✓ Saved tip %d\n", tip.ID)
	return nil
}

type TipsDeleteCmd struct {
	ID int64 `arg:"" help:"ID of the tip to delete (see 'tips list --show-ids')."`
}

func (c *TipsDeleteCmd) Run(ctx *Context) error {
	found := false
	for _, tip := range ctx.Tips.List() {
		if tip.ID == c.ID {
			found = true
			break
		}
	}
	if err := ctx.Tips.Delete(c.ID); err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(ctx.out(), "No saved tip with ID %d\n", c.ID)
		return nil
	}
	fmt.Fprintf(ctx.out(), "✓ Deleted tip %d\n", c.ID)
	return nil
}

type TipsClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *TipsClearCmd) Run(ctx *Context) error {
	saved := ctx.Tips.List()
	if len(saved) == 0 {
		fmt.Fprintln(ctx.out(), "No saved tips to clear")
		return nil
	}

	if !c.Yes {
		if !ctx.Interactive {
			return errors.New("refusing to clear without confirmation, pass --yes")
		}
		ok, err := confirmAction(fmt.Sprintf("Delete all %d saved tips?", len(saved)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(ctx.out(), "Cancelled")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Tips.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.out(), "✓ Cleared %d saved tips\n", len(saved))
	return nil
}

type TipsBackupCmd struct{}

func (c *TipsBackupCmd) Run(ctx *Context) error {
	path, err := ctx.Backups().CreateBackup()
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(ctx.out(), "No saved tips to back up")
		return nil
	}
	fmt.Fprintf(ctx.out(), "✓ Backup written to %s\n", path)
	return nil
}

type TipsBackupsCmd struct{}

func (c *TipsBackupsCmd) Run(ctx *Context) error {
	mgr := ctx.Backups()
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Fprintf(ctx.out(), "No backups in %s\n", mgr.GetBackupDir())
		return nil
	}
	fmt.Fprintln(ctx.out(), "Backups:")
	for _, b := range backups {
		fmt.Fprintf(ctx.out(), "  %s  %s (%d tips)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), b.Count)
	}
	return nil
}

type TipsRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore (see 'tips backups')."`
}

func (c *TipsRestoreCmd) Run(ctx *Context) error {
	path := c.Path
	if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		// Bare names resolve inside the backup directory
		candidate := filepath.Join(ctx.Backups().GetBackupDir(), path)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	result, err := ctx.Backups().RestoreBackup(path)
	if err != nil {
		return err
	}
	out := ctx.out()
	if result.Previous != "" {
		fmt.Fprintf(out, "Created backup of current tips: %s\n", filepath.Base(result.Previous))
	}
	fmt.Fprintf(out, "✓ Restored %d tips from %s\n", result.Restored, filepath.Base(path))
	if result.Dropped > 0 {
		fmt.Fprintf(out, "  %d older tip(s) beyond the limit of %d were not restored\n", result.Dropped, constants.MaxSavedTips)
	}
	return nil
}
