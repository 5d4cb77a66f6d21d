package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pieforge/pieforge/pkg/pipeline"
	"github.com/pieforge/pieforge/pkg/scene"
)

// inspectCommand creates the inspect command: compute and print the slice
// breakdown without writing artifacts.
func (c *CLI) inspectCommand() *cobra.Command {
	var showNodes bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the computed slice breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
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
				return err
			}
			result := pipeline.Compute(opts)

			fmt.Println(StyleTitle.Render("Slices"))
			for _, s := range result.Data.Slices {
				fmt.Printf("  %s %s %s\n",
					StyleValue.Render(fmt.Sprintf("%-24s", s.Label)),
					StyleNumber.Render(fmt.Sprintf("%12.2f", s.RawValue)),
					StyleDim.Render(scene.FormatPercent(s.Percentage)))
			}
			printDetail("total %.2f across %d slices", result.Data.Total, len(result.Data.Slices))
			printStats(result.Stats.SliceCount, result.Stats.NodeCount, false)

			if showNodes {
				fmt.Println(StyleTitle.Render("Scene"))
				printTree(result.Scene.Root, 0)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showNodes, "nodes", false, "print the scene graph tree")
	return cmd
}

func printTree(n *scene.Node, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Printf("  %s%s %s\n", indent, StyleValue.Render(n.ID), StyleDim.Render(string(n.Kind)))
	for _, child := range n.Children {
		printTree(child, depth+1)
	}
}
