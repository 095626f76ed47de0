package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/internal/logger"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage scene configuration files",
	}
	cmd.AddCommand(newConfigInitCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path] [asset...]",
		Short: "Write the effective configuration to a file",
		Long: `Write the effective configuration (defaults, the loaded config file and
flags) to path, scanline.yaml by default. Assets after the path become the
scene objects.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) > 0 {
				path, args = args[0], args[1:]
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			cfg, err := opts.setup(opts.overrides(args), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Sync()

			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			logger.Named("config").Debug("config written")

			fmt.Fprintln(cmd.OutOrStdout(), section(path,
				field("surface", fmt.Sprintf("%dx%d", cfg.Surface.Width, cfg.Surface.Height)),
				field("objects", len(cfg.Objects)),
			))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
