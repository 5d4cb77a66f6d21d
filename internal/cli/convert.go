package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pieforge/pieforge/pkg/dataset"
	boardio "github.com/pieforge/pieforge/pkg/io"
)

// convertCommand creates the convert command: raw data in, board document out.
func (c *CLI) convertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Turn a raw data file into a board document",
		Long: `Convert reads a CSV, XLSX, or JSON data file and writes a board
document with default config and theme. The document is the editable,
self-contained form of a chart: render it, tweak overrides, re-render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			ds, err := dataset.LoadFile(input)
			if err != nil {
				return err
			}

			doc := boardio.New(ds)
			path := output
			if path == "" {
				path = strings.TrimSuffix(input, filepath.Ext(input)) + ".board.json"
			}
			if err := boardio.ExportDocument(doc, path); err != nil {
				return err
			}

			printSuccess("Converted %s", filepath.Base(input))
			printDetail("%d rows, %d dimensions, %d measures",
				len(ds.Rows), len(ds.Dimensions), len(ds.Measures))
			printFile(path)
			printNextStep("Render it", appName+" render "+path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output document path")
	return cmd
}
