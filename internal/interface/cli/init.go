package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/propdoc/internal/infra/config"
	"github.com/YoshitsuguKoike/propdoc/internal/infra/persistence/file"
)

func newInitCmd(fs afero.Fs, opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file holding the default values",
		Long: `Init writes the default settings, including the list of excluded
section titles, to the settings file so they can be edited.

Examples:
  propdoc init
  propdoc init --config build/propdoc.yaml --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			path := opts.configPath
			exists, err := afero.Exists(fs, path)
			if err != nil {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}
			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := file.WriteFileAtomic(fs, path, config.CreateDefaultSettings(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing settings file")
	return cmd
}
