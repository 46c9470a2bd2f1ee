package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/quill/internal/core/annotate"
	"github.com/colonyops/quill/internal/data/docfile"
	"github.com/colonyops/quill/pkg/iojson"
)

// ReportCmd renders the markdown report for a previously exported
// document snapshot.
type ReportCmd struct {
	flags  *Flags
	reader iojson.FileReader[annotate.Document]

	// flags
	output string
}

// NewReportCmd creates a new report command
func NewReportCmd(flags *Flags) *ReportCmd {
	return &ReportCmd{flags: flags}
}

// Register adds the report command to the application
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Render the annotation report for a document",
		UsageText: "quill report -f doc.json [--output path]",
		Description: `Reads a document JSON snapshot from a file or stdin and renders the
severity-grouped markdown report. Resolved annotations are omitted.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write the report to a file instead of stdout",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ReportCmd) run(ctx context.Context, c *cli.Command) error {
	doc, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	if cmd.output != "" {
		if err := docfile.WriteReport(&doc, cmd.output); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(c.Root().Writer, "Report written to %s\n", cmd.output)
		return nil
	}

	fmt.Fprint(c.Root().Writer, annotate.GenerateReport(&doc))
	return nil
}
