package main

import (
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/internal/logger"
	"github.com/taigrr/scanline/internal/window"
	"github.com/taigrr/scanline/pkg/render"
)

func newWindowCmd(opts *options) *cobra.Command {
	var scale int

	cmd := &cobra.Command{
		Use:   "window [asset...]",
		Short: "Open the scene in a desktop window",
		Long: `Open the scene in a desktop window.

Controls:
  W/S      Move forward/back
  A/D      Move left/right
  E/Q      Move up/down
  X        Toggle wireframe
  Esc      Quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ov := opts.overrides(args)
			ov.ViewScale = scale

			cfg, err := opts.setup(ov, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Sync()

			log := logger.Named("window")
			s, err := buildScene(cfg, opts.framing(args), cfg.Surface.Aspect(), log)
			if err != nil {
				return err
			}

			fb := render.NewFramebuffer(cfg.Surface.Width, cfg.Surface.Height)
			return window.Run(s, fb, windowOptions(cfg), log)
		},
	}

	cmd.Flags().IntVar(&scale, "scale", 0, "window pixels per framebuffer pixel")
	return cmd
}

func windowOptions(cfg *config.Config) window.Options {
	return window.Options{
		Scale:     cfg.Viewer.Scale,
		TPS:       cfg.Viewer.FPS,
		MoveSpeed: cfg.Viewer.MoveSpeed,
		Wireframe: cfg.Viewer.Wireframe,
	}
}
