package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/internal/logger"
	"github.com/taigrr/scanline/pkg/render"
)

// wireColor is the wireframe overlay color.
var wireColor = render.RGB(0, 255, 128)

func newRenderCmd(opts *options) *cobra.Command {
	var (
		out   string
		scale int
		at    float64
	)

	cmd := &cobra.Command{
		Use:   "render [asset...]",
		Short: "Render one frame to a PNG file",
		Example: `  scanline render -o frame.png
  scanline render --time 2.5 --scale 4 ./models/cube`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ov := opts.overrides(args)
			ov.Output = out
			ov.Scale = scale
			ov.Time = at

			cfg, err := opts.setup(ov, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Sync()

			return renderFrame(cmd.OutOrStdout(), cfg, opts.framing(args))
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output PNG path (default frame.png)")
	cmd.Flags().IntVar(&scale, "scale", 0, "nearest-neighbour upscale factor")
	cmd.Flags().Float64Var(&at, "time", 0, "advance object spin by this many seconds")
	return cmd
}

// renderFrame draws the configured scene once and writes it to
// cfg.Output.Path. Objects that fail to render are reported after the image
// is written.
func renderFrame(w io.Writer, cfg *config.Config, frame bool) error {
	log := logger.Named("render")

	s, err := buildScene(cfg, frame, cfg.Surface.Aspect(), log)
	if err != nil {
		return err
	}
	s.Update(cfg.Output.Time)

	fb := render.NewFramebuffer(cfg.Surface.Width, cfg.Surface.Height)
	r := render.NewRasterizer(log)

	start := time.Now()
	drawErr := s.Draw(fb, r)
	if cfg.Viewer.Wireframe {
		s.DrawWireframe(fb, wireColor)
	}
	elapsed := time.Since(start)

	if err := fb.SavePNG(cfg.Output.Path, cfg.Output.Scale); err != nil {
		return fmt.Errorf("save %s: %w", cfg.Output.Path, err)
	}
	log.Info("frame written",
		zap.String("path", cfg.Output.Path),
		zap.Duration("elapsed", elapsed),
	)

	fmt.Fprintln(w, renderSummary(cfg, r.Stats, elapsed))
	return drawErr
}

func renderSummary(cfg *config.Config, st render.Stats, elapsed time.Duration) string {
	w, h := cfg.Surface.Width, cfg.Surface.Height
	scale := max(cfg.Output.Scale, 1)
	return section(cfg.Output.Path,
		field("size", fmt.Sprintf("%dx%d (x%d)", w, h, scale)),
		field("objects", st.Objects),
		field("triangles", st.Triangles),
		field("drawn", st.Drawn),
		field("hidden", st.Hidden),
		field("degenerate", st.Degenerate),
		field("pixels", st.Pixels),
		field("time", elapsed.Round(time.Microsecond)),
	)
}
