package main

import (
	"fmt"

	"github.com/mark3labs/mindtask/internal/state"
	"github.com/mark3labs/mindtask/internal/theme"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "List themes, or choose the theme used for previews and exports",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ui := state.Load(cfg.DataDir)

		if len(args) == 0 {
			current := ui.ThemeOr(cfg.Theme)
			for _, name := range theme.Names() {
				th := theme.Get(name)
				mark := " "
				if name == current {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, th.S().Title.Render(fmt.Sprintf("%-6s %s", name, th.Label)))
			}
			return nil
		}

		th, err := activeTheme(args[0])
		if err != nil {
			return err
		}
		ui.Theme = th.Name
		if err := state.Save(cfg.DataDir, ui); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", th.Name)
		return nil
	},
}
