package cli

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/propdoc/internal/adapter/presenter"
	"github.com/YoshitsuguKoike/propdoc/internal/application/dto"
	"github.com/YoshitsuguKoike/propdoc/internal/application/usecase/extract"
	"github.com/YoshitsuguKoike/propdoc/internal/infra/config"
	"github.com/YoshitsuguKoike/propdoc/internal/infra/persistence/file"
	"github.com/YoshitsuguKoike/propdoc/internal/interface/cli/version"
)

// ErrReported marks errors that have already been shown to the operator
var ErrReported = errors.New("error already reported")

type rootOptions struct {
	input      string
	output     string
	configPath string
	logLevel   string
	dryRun     bool
}

// NewRoot builds the propdoc command tree on the real filesystem
func NewRoot() *cobra.Command {
	return newRoot(afero.NewOsFs())
}

func newRoot(fs afero.Fs) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "propdoc",
		Short: "Extract component prop references from documentation",
		Long: `propdoc reads a documentation corpus made of frontmatter-delimited
markdown documents, collects every <PropListing> tag under the component
section it belongs to, and writes the result as JSON.

Examples:
  # Read docs.txt and write props.json
  propdoc

  # Print the JSON instead of writing it
  propdoc --dry-run -i docs/all.mdx`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, _ []string) error {
			return runExtract(c, fs, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "docs.txt", "Documentation corpus to read")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "props.json", "JSON artifact to write")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the JSON to stdout instead of writing it")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level for stderr (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultSettingsFile, "Settings file")

	cmd.AddCommand(newInitCmd(fs, opts))
	cmd.AddCommand(version.NewCommand())
	return cmd
}

func runExtract(c *cobra.Command, fs afero.Fs, opts *rootOptions) error {
	report := presenter.NewCLIReportPresenter(c.OutOrStdout(), c.ErrOrStderr())

	settings, err := config.LoadSettings(fs, opts.configPath, c.Flags().Changed("config"))
	if err != nil {
		return reported(report.PresentError(err))
	}
	applyFlagOverrides(c, opts, settings)

	level, err := ParseLogLevel(settings.LogLevel)
	if err != nil {
		return reported(report.PresentError(err))
	}
	logger := GetLogger()
	logger.SetOutput(c.ErrOrStderr())
	logger.SetLevel(level)
	InitializeLoggers(logger)

	runID := newRunID()
	logger.Debug("run %s: settings source=%s, log level %s, %d excluded titles", runID, settings.Source, level, len(settings.ExcludedComponents))
	if settings.SettingPath != "" {
		logger.Info("using settings from %s", settings.SettingPath)
	}

	uc := extract.NewExtractPropsUseCase(file.NewStore(fs), settings.ExcludedComponents)
	out, err := uc.Execute(c.Context(), &dto.ExtractInput{
		RunID:      runID,
		InputPath:  settings.InputPath,
		OutputPath: settings.OutputPath,
		DryRun:     opts.dryRun,
	})
	if err != nil {
		if opts.dryRun {
			// stdout consumers of a dry run still get a JSON document
			if jerr := presenter.NewJSONPresenter(c.OutOrStdout()).PresentError(err); jerr != nil {
				logger.Error("failed to write error document: %v", jerr)
			}
		}
		return reported(report.PresentError(err))
	}

	if opts.dryRun {
		// stdout carries only the JSON
		if err := presenter.NewCLIReportPresenter(c.ErrOrStderr(), c.ErrOrStderr()).PresentResult(out); err != nil {
			return err
		}
		return presenter.NewJSONPresenter(c.OutOrStdout()).PresentResult(out)
	}
	return report.PresentResult(out)
}

// applyFlagOverrides lets explicit flags win over the settings file
func applyFlagOverrides(c *cobra.Command, opts *rootOptions, settings *config.Settings) {
	if c.Flags().Changed("input") {
		settings.InputPath = opts.input
	}
	if c.Flags().Changed("output") {
		settings.OutputPath = opts.output
	}
	if c.Flags().Changed("log-level") {
		settings.LogLevel = opts.logLevel
	}
}

func newRunID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

func reported(err error) error {
	return fmt.Errorf("%w: %w", ErrReported, err)
}
