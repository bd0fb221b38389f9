package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/mindtask/internal/export"
	"github.com/mark3labs/mindtask/internal/mindmap"
	"github.com/mark3labs/mindtask/internal/preview"
	"github.com/mark3labs/mindtask/internal/theme"
	"github.com/mark3labs/mindtask/internal/workspace"
	"github.com/spf13/cobra"
)

var outlineFlags struct {
	render bool
}

var diagramFlags struct {
	tree  bool
	theme string
}

var parseFlags struct {
	edit bool
}

var exportFlags struct {
	dir   string
	theme string
}

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Print the selected project's outline",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, false, func(ws *workspace.Workspace) error {
			if _, err := selectedProject(ws.Store()); err != nil {
				return err
			}
			text := ws.Store().Outline()
			if !outlineFlags.render {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			th, err := activeTheme("")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), preview.Outline(text, preview.Width(), th))
			return nil
		})
	},
}

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Print the selected project's mindmap markup",
	Long: `Print the selected project's mindmap markup.

Without a selected project the placeholder diagram is printed. With --theme
the markup is prefixed by an init directive carrying the theme; with --tree
the diagram is drawn in the terminal instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, false, func(ws *workspace.Workspace) error {
			d := mindmap.Build(ws.Store().Outline())

			if diagramFlags.tree {
				th, err := activeTheme(diagramFlags.theme)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), preview.Tree(d, th))
				return nil
			}

			markup := d.Markup()
			if diagramFlags.theme != "" {
				th, err := activeTheme(diagramFlags.theme)
				if err != nil {
					return err
				}
				if markup, err = theme.Document(markup, th); err != nil {
					return err
				}
			}
			printBlock(cmd.OutOrStdout(), markup)
			return nil
		})
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Convert outline text to mindmap markup",
	Long: `Convert outline text to mindmap markup.

The outline is read from the named file, or from stdin when the argument is
"-" or missing. With --edit the text is opened in $EDITOR first, starting
from the selected project's outline when no input is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		switch {
		case len(args) == 1 && args[0] != "-":
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading outline: %w", err)
			}
			text = string(data)
		case parseFlags.edit:
			err := withWorkspace(cmd, false, func(ws *workspace.Workspace) error {
				text = ws.Store().Outline()
				return nil
			})
			if err != nil {
				return err
			}
		default:
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			text = string(data)
		}

		if parseFlags.edit {
			edited, err := editText(text)
			if err != nil {
				return err
			}
			text = edited
		}

		printBlock(cmd.OutOrStdout(), mindmap.Parse(text))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the selected project's diagram to a .mmd file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, false, func(ws *workspace.Workspace) error {
			p, err := selectedProject(ws.Store())
			if err != nil {
				return err
			}
			th, err := activeTheme(exportFlags.theme)
			if err != nil {
				return err
			}
			doc, err := theme.Document(mindmap.Parse(ws.Store().Outline()), th)
			if err != nil {
				return err
			}
			path, err := export.Write(exportFlags.dir, p.Name, doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Diagram written to: %s\n", path)
			return nil
		})
	},
}

// printBlock writes s and terminates it with exactly one newline.
func printBlock(w io.Writer, s string) {
	fmt.Fprint(w, s)
	if !strings.HasSuffix(s, "\n") {
		fmt.Fprintln(w)
	}
}

// editText opens text in the user's editor and returns the saved result.
func editText(text string) (string, error) {
	tmp, err := os.CreateTemp("", "mindtask_outline_*.md")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	_ = tmp.Close()

	c, err := editor.Command("mindtask", tmp.Name())
	if err != nil {
		return "", fmt.Errorf("preparing editor: %w", err)
	}
	if err := runInteractive(c); err != nil {
		return "", fmt.Errorf("running editor: %w", err)
	}

	data, err := os.ReadFile(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("reading edited outline: %w", err)
	}
	return string(data), nil
}

func runInteractive(c *exec.Cmd) error {
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func init() {
	outlineCmd.Flags().BoolVarP(&outlineFlags.render, "render", "r", false, "Render the outline as styled markdown")

	diagramCmd.Flags().BoolVar(&diagramFlags.tree, "tree", false, "Draw the diagram as a terminal tree")
	diagramCmd.Flags().StringVar(&diagramFlags.theme, "theme", "", "Theme to apply (see 'mindtask theme')")

	parseCmd.Flags().BoolVarP(&parseFlags.edit, "edit", "e", false, "Edit the outline in $EDITOR before parsing")

	exportCmd.Flags().StringVarP(&exportFlags.dir, "dir", "d", "diagrams", "Output directory")
	exportCmd.Flags().StringVar(&exportFlags.theme, "theme", "", "Theme to apply (defaults to the saved theme)")
}
