package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pieforge/pieforge/pkg/dataset"
	"github.com/pieforge/pieforge/pkg/geom"
	"github.com/pieforge/pieforge/pkg/pipeline"
	"github.com/pieforge/pieforge/pkg/style"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple formats)
	formats  []string // output formats: "svg", "json"
	theme    string   // theme file (.toml or .json)
	category string   // category field override
	value    string   // value field override
	agg      string   // aggregation override: sum, avg, min, max, count
	inner    float64  // inner radius (> 0 makes a donut)
	outer    float64  // outer radius
	pad      float64  // pad angle between slices (radians)
	corner   float64  // corner radius
	labels   string   // label anchor mode: centroid, edge, outside
	noCache  bool     // disable the result cache
	refresh  bool     // bypass the cache and recompute
	redisURL string   // redis cache backend URL
}

// renderCommand creates the render command for computing and writing charts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Compute a chart and write SVG or JSON artifacts",
		Long: `Render computes the full chart pipeline for a board document or raw
data file (CSV, XLSX, or JSON) and writes the requested artifacts.

A board document carries its own config, overrides, and theme; flags
override the corresponding document settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme file (.toml or .json)")
	cmd.Flags().StringVar(&opts.category, "category", "", "category field id")
	cmd.Flags().StringVar(&opts.value, "value", "", "value field id")
	cmd.Flags().StringVar(&opts.agg, "agg", "", "aggregation: sum (default), avg, min, max, count")
	cmd.Flags().Float64Var(&opts.inner, "inner", -1, "inner radius (> 0 renders a donut)")
	cmd.Flags().Float64Var(&opts.outer, "outer", -1, "outer radius")
	cmd.Flags().Float64Var(&opts.pad, "pad", -1, "pad angle between slices in radians")
	cmd.Flags().Float64Var(&opts.corner, "corner", -1, "corner radius")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "label anchor mode: centroid (default), edge, outside")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "redis cache URL (redis://host:port/db)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	pipeOpts, err := c.buildOptions(input, opts)
	if err != nil {
		return err
	}
	pipeOpts.Formats = opts.formats
	pipeOpts.Refresh = opts.refresh

	runner, err := c.newRunner(ctx, opts.noCache, opts.redisURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", filepath.Base(input))
	printStats(result.Stats.SliceCount, result.Stats.NodeCount, result.CacheInfo.ResultHit)

	for _, format := range opts.formats {
		path := outputPath(input, opts.output, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	return nil
}

// buildOptions assembles pipeline options from the input file and flags.
// Flags override the document's own settings.
func (c *CLI) buildOptions(input string, opts *renderOpts) (pipeline.Options, error) {
	doc, err := loadDocument(input)
	if err != nil {
		return pipeline.Options{}, err
	}

	pipeOpts := pipeline.Options{
		Dataset:   doc.Dataset,
		Mapping:   doc.Mapping,
		Config:    doc.Config,
		Overrides: doc.Overrides,
		Theme:     doc.Theme,
		Logger:    c.Logger,
	}

	if opts.category != "" {
		pipeOpts.Mapping.CategoryField = opts.category
	}
	if opts.value != "" {
		pipeOpts.Mapping.ValueField = opts.value
	}
	if opts.agg != "" {
		pipeOpts.Mapping.Aggregation = dataset.Aggregation(opts.agg)
	}

	if pipeOpts.Config == (geom.Config{}) {
		pipeOpts.Config = geom.DefaultConfig()
	}
	if opts.inner >= 0 {
		pipeOpts.Config.InnerRadius = opts.inner
	}
	if opts.outer >= 0 {
		pipeOpts.Config.OuterRadius = opts.outer
	}
	if opts.pad >= 0 {
		pipeOpts.Config.PadAngle = opts.pad
	}
	if opts.corner >= 0 {
		pipeOpts.Config.CornerRadius = opts.corner
	}
	if opts.labels != "" {
		pipeOpts.Config.LabelAnchorMode = geom.AnchorMode(opts.labels)
	}

	if opts.theme != "" {
		th, err := style.LoadTheme(opts.theme)
		if err != nil {
			return pipeline.Options{}, err
		}
		pipeOpts.Theme = th
	}

	return pipeOpts, nil
}

// outputPath resolves the output file for one format.
func outputPath(input, output, format string, multi bool) string {
	if output != "" {
		if !multi {
			return output
		}
		return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return base + "." + format
}
