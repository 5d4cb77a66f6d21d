package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pieforge/pieforge/pkg/errors"
	boardio "github.com/pieforge/pieforge/pkg/io"
	"github.com/pieforge/pieforge/pkg/pipeline"
)

// validateCommand creates the validate command for checking board documents.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a board document without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := boardio.ImportDocument(path)
			if err != nil {
				printError("Invalid document: %s", errors.UserMessage(err))
				return err
			}

			opts := pipeline.Options{
				Dataset:   doc.Dataset,
				Mapping:   doc.Mapping,
				Config:    doc.Config,
				Overrides: doc.Overrides,
				Theme:     doc.Theme,
				Logger:    c.Logger,
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				printError("Invalid options: %s", errors.UserMessage(err))
				return err
			}

			printSuccess("%s is valid", filepath.Base(path))
			printDetail("%d rows, %d slice overrides, %d annotations",
				len(doc.Dataset.Rows), len(doc.Overrides.Slices), len(doc.Overrides.Annotations))
			return nil
		},
	}
}
