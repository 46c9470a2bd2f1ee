package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/quill/internal/data/docfile"
	"github.com/colonyops/quill/pkg/iojson"
)

// LsCmd lists annotatable documents under a directory.
type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List documents matching the configured patterns",
		UsageText: "quill ls [dir] [--json]",
		Description: `Walks the directory (default: current) and lists files matching the
documents.patterns globs from the config, newest first.

Use --json for JSON-lines output.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	root := c.Args().First()
	if root == "" {
		root = "."
	}

	entries, err := docfile.Discover(root, cmd.flags.Config.Documents.Patterns)
	if err != nil {
		return fmt.Errorf("discover documents: %w", err)
	}

	if len(entries) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No documents found\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, e := range entries {
			if err := iojson.WriteLine(out, e); err != nil {
				return fmt.Errorf("encode entry: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tSIZE\tMODIFIED")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", e.RelPath, e.Size, e.ModTime.Format("2006-01-02 15:04"))
	}
	_ = w.Flush()

	return nil
}
