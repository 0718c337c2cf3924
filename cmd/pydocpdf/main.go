package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"pydocpdf/internal/config"
	"pydocpdf/internal/extractor"
	"pydocpdf/internal/layout"
	"pydocpdf/internal/pipeline"
	"pydocpdf/internal/resolver"

	"github.com/spf13/cobra"
)

const lookupHelp = "No such module, class or function. Read help."

type cliFlags struct {
	configPath string
	outputDir  string
	format     string
	verify     bool
	logLevel   string
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the root command and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		reportError(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:   "pydocpdf <path/to/module[.Class[.method]]>",
		Short: "Get Python docstrings as a PDF file",
		Long: `pydocpdf reads a Python module without running it and renders the
docstrings of the module, one of its classes, or a single function or
method as a paginated PDF.

Examples:
  pydocpdf /d1/module
  pydocpdf /d1/module.Class
  pydocpdf /d1/module.Class.func
  pydocpdf /d1/module.func --to docs/`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return run(ctx, cmd, flags, args[0], stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "pydocpdf.yaml", "Path to an optional YAML config file")
	f.StringVar(&flags.outputDir, "to", config.DefaultOutputDir, "Directory to save the document in")
	f.StringVar(&flags.format, "format", pipeline.FormatPDF, "Output format: pdf or text")
	f.BoolVar(&flags.verify, "verify", false, "Re-open the written PDF and check its page count")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, flags cliFlags, target string, stdout, stderr io.Writer) error {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Explicit flags win over the config file.
	if cmd.Flags().Changed("to") {
		cfg.Output.Dir = flags.outputDir
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = flags.format
	}
	if cmd.Flags().Changed("verify") {
		cfg.Output.Verify = flags.verify
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	logger := newLogger(cfg.Log.Level, cfg.Log.Format, stderr)

	p := pipeline.New(logger, pipeline.Options{
		Format:    cfg.Output.Format,
		TextWidth: cfg.Page.TextWidth,
		Layout: layout.Options{
			PageWidth:  cfg.Page.Width,
			PageHeight: cfg.Page.Height,
			Margin:     cfg.Page.Margin,
			Indent:     cfg.Page.Indent,
		},
	})

	artifact, err := p.Build(ctx, target)
	if err != nil {
		return err
	}

	path, err := pipeline.Save(cfg.Output.Dir, artifact)
	if err != nil {
		return err
	}
	logger.Info("document written", "path", path, "pages", artifact.Pages)

	if cfg.Output.Verify && cfg.Output.Format == pipeline.FormatPDF {
		if err := pipeline.VerifyPDF(path, artifact.Pages); err != nil {
			return err
		}
		logger.Info("document verified", "path", path)
	}

	fmt.Fprintf(stdout, "📄 %s -> %s\n", artifact.Title, path)
	return nil
}

// reportError prints the user-facing message for err on stderr.
func reportError(stderr io.Writer, err error) {
	var se *extractor.SyntaxError
	switch {
	case errors.Is(err, resolver.ErrSourceNotFound),
		errors.Is(err, resolver.ErrLookupFailure),
		errors.As(err, &se):
		fmt.Fprintln(stderr, lookupHelp)
		fmt.Fprintf(stderr, "  %v\n", err)
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
}
