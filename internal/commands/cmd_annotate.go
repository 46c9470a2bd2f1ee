package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/quill/internal/core/annotate"
	"github.com/colonyops/quill/internal/core/logging"
	"github.com/colonyops/quill/internal/data/docfile"
	"github.com/colonyops/quill/internal/tui"
)

// AnnotateCmd opens the interactive annotation TUI. It is also the
// default action when quill runs without a subcommand.
type AnnotateCmd struct {
	flags *Flags
}

// NewAnnotateCmd creates a new annotate command
func NewAnnotateCmd(flags *Flags) *AnnotateCmd {
	return &AnnotateCmd{flags: flags}
}

// Register adds the annotate command to the application
func (cmd *AnnotateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "annotate",
		Usage:     "Open the annotation editor",
		UsageText: "quill annotate [file]",
		Description: `Opens the interactive editor. With a file argument the document is
loaded immediately; plain text files start a fresh annotation session
and .json files resume a previously exported one.`,
		Action: cmd.Run,
	})

	return app
}

// Run starts the TUI, loading the positional file argument when given.
func (cmd *AnnotateCmd) Run(ctx context.Context, c *cli.Command) error {
	app := annotate.NewApp()

	if path := c.Args().First(); path != "" {
		doc, err := docfile.Load(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		app.LoadDocument(doc)
	}

	return tui.Run(tui.Options{
		App:    app,
		Config: cmd.flags.Config,
		Logger: logging.Component("tui"),
	})
}
