// Package cli implements the gridpdf command-line interface.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gompdf/gridpdf/internal/config"
	"github.com/gompdf/gridpdf/internal/logging"
	"github.com/gompdf/gridpdf/pkg/api"
)

// CLI holds the streams and clock shared by the commands.
type CLI struct {
	// Out receives the run summary.
	Out io.Writer
	// Err receives console log output.
	Err io.Writer
	Now func() time.Time
}

// New creates a CLI writing its summary to out and its log echo to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{Out: out, Err: errOut, Now: time.Now}
}

type rootFlags struct {
	input   string
	output  string
	config  string
	verbose bool
}

// RootCommand creates the gridpdf command.
func (c *CLI) RootCommand() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "gridpdf",
		Short: "Lay out a folder of images as a captioned grid PDF",
		Long: `gridpdf collects the images in a directory, sorts them by name and places
them six to a page in a 2x3 grid, scaled to fit and captioned with their file name.

Settings are read from built-in defaults, then an optional TOML or YAML file,
then GRIDPDF_* environment variables (a .env file is loaded if present), then flags.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadDotEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", ".", "directory containing the images")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory (default <input>/pdf_output)")
	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "TOML or YAML settings file")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level")

	return cmd
}

// run resolves settings and converts one directory. Failures of the batch
// itself are logged and printed but do not fail the command.
func (c *CLI) run(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if cmd.Flags().Changed("input") {
		cfg.Input = flags.input
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = flags.output
	}
	if flags.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	session, err := logging.Open(logging.Options{
		Dir:     cfg.LogDir,
		Level:   level,
		Console: c.Err,
		Now:     c.Now,
	})
	if err != nil {
		return err
	}
	defer session.Close()
	logger := session.Logger

	fmt.Fprintf(c.Out, "Log file: %s\n", session.Path)

	options, err := buildOptions(cfg, logger, c.Now)
	if err != nil {
		logging.Fatal(logger, "invalid configuration", "err", err)
		fmt.Fprintf(c.Out, "Error: %v\n", err)
		return nil
	}

	logger.Info("starting conversion", "input", cfg.Input, "output", cfg.Output)
	result, err := api.NewWithOptions(options).ConvertDir(cfg.Input, cfg.Output)
	if err != nil {
		if api.IsCode(err, api.ErrCodeNoImages) {
			fmt.Fprintf(c.Out, "No images found in %s\n", cfg.Input)
			return nil
		}
		logging.Fatal(logger, "conversion failed", "err", err)
		fmt.Fprintf(c.Out, "Error: %v\n", err)
		return nil
	}

	fmt.Fprintf(c.Out, "PDF created: %s\n", result.OutputPath)
	fmt.Fprintf(c.Out, "Pages: %d, images placed: %d, skipped: %d\n", result.Pages, result.Placed, result.Skipped)
	return nil
}

// buildOptions maps resolved settings onto converter options.
func buildOptions(cfg config.Config, logger *log.Logger, now func() time.Time) (api.Options, error) {
	width, height, err := api.PageSizeByName(cfg.Page.Size)
	if err != nil {
		return api.Options{}, err
	}

	options := api.DefaultOptions()
	options.PageWidth = width
	options.PageHeight = height
	options.PageOrientation = api.PageOrientation(strings.ToLower(cfg.Page.Orientation))
	options.Margin = cfg.Page.Margin
	options.InnerMargin = cfg.Page.InnerMargin
	options.Columns = cfg.Page.Columns
	options.Rows = cfg.Page.Rows

	options.CaptionFont = cfg.Caption.Font
	options.CaptionFontSize = cfg.Caption.FontSize
	options.CaptionOffset = cfg.Caption.Offset

	options.Patterns = cfg.Images.Patterns
	options.AutoOrient = cfg.Images.AutoOrient
	options.JPEGQuality = cfg.Images.JPEGQuality
	options.SVGDPI = cfg.Images.SVGDPI

	options.OutputSubdir = cfg.Doc.OutputSubdir
	options.FilePrefix = cfg.Doc.FilePrefix
	options.TimestampFormat = cfg.Doc.TimestampFormat
	options.Title = cfg.Doc.Title
	options.Author = cfg.Doc.Author
	options.Subject = cfg.Doc.Subject
	options.Keywords = cfg.Doc.Keywords

	options.DebugDrawBoxes = cfg.Page.DebugBoxes
	options.Logger = logger
	options.Now = now
	return options, nil
}
