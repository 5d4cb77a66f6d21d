// Package cli implements the pieforge command-line interface.
//
// This package provides commands for rendering pie and donut charts from
// board documents or raw data files, validating and inspecting documents,
// and serving the pipeline over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Compute a chart and write SVG or JSON artifacts
//   - convert: Turn a raw data file into a board document
//   - validate: Check a board document without rendering
//   - inspect: Print the computed slice breakdown
//   - serve: Expose the pipeline over HTTP
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pieforge/pieforge/pkg/buildinfo"
	"github.com/pieforge/pieforge/pkg/cache"
	boardio "github.com/pieforge/pieforge/pkg/io"
	"github.com/pieforge/pieforge/pkg/dataset"
	"github.com/pieforge/pieforge/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "pieforge"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Pieforge computes pie and donut charts",
		Long:         `Pieforge turns tabular data into fully computed pie and donut charts: aggregated slices, arc geometry, label placement, an addressable scene graph, and resolved styles, rendered to SVG or exported as JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. A non-empty redisURL
// selects the Redis backend, otherwise the XDG file cache is used.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisURL string) (*pipeline.Runner, error) {
	store, err := newCache(ctx, noCache, redisURL)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/pieforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// loadDocument loads a board input: a board document JSON, or a raw data
// file (CSV, XLSX, or bare JSON rows) wrapped in a fresh document.
func loadDocument(path string) (boardio.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if doc, err := boardio.ImportDocument(path); err == nil {
			return doc, nil
		}
		// Fall through: plain JSON data files are also accepted.
	}
	ds, err := dataset.LoadFile(path)
	if err != nil {
		return boardio.Document{}, err
	}
	return boardio.New(ds), nil
}
