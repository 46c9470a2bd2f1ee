package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/quill/internal/data/docfile"
	"github.com/colonyops/quill/pkg/iojson"
)

// ExportCmd writes the JSON snapshot of a document without opening the
// TUI.
type ExportCmd struct {
	flags *Flags

	// flags
	output string
	stdout bool
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export a document as a JSON snapshot",
		UsageText: "quill export <file> [--output path | --stdout]",
		Description: `Loads the document and writes the export snapshot: the document, its
annotations and the rendered report as a ready-to-use prompt.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output path (defaults to <data-dir>/document.json)",
				Destination: &cmd.output,
			},
			&cli.BoolFlag{
				Name:        "stdout",
				Usage:       "write the snapshot to stdout instead of a file",
				Destination: &cmd.stdout,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("export requires a document file argument")
	}

	doc, err := docfile.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	if cmd.stdout {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, docfile.NewExportDocument(doc))
	}

	out := cmd.output
	if out == "" {
		out = filepath.Join(cmd.flags.Config.DataDir, "document.json")
	}

	if err := docfile.Export(doc, out); err != nil {
		return fmt.Errorf("export document: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Exported to %s\n", out)
	return nil
}
