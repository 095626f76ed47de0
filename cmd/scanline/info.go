package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/internal/logger"
	"github.com/taigrr/scanline/internal/scene"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

func newInfoCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "info <asset>...",
		Short: "Print vertex, triangle and material counts of assets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.setup(opts.overrides(nil), cmd.ErrOrStderr()); err != nil {
				return err
			}
			defer logger.Sync()

			loader := newLoader()
			for _, path := range args {
				mesh, err := scene.LoadAsset(loader, config.ObjectConfig{Path: path, Format: format})
				if err != nil {
					return err
				}
				printInfo(cmd.OutOrStdout(), path, mesh)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "asset format: folder or glb (default from extension)")
	return cmd
}

func printInfo(w io.Writer, path string, m *models.Mesh) {
	m.CalculateBounds()

	rows := []string{
		field("name", m.Name),
		field("vertices", m.VertexCount()),
		field("triangles", m.TriangleCount()),
	}
	if m.VertexCount() > 0 {
		rows = append(rows,
			field("min", formatVec(m.BoundsMin)),
			field("max", formatVec(m.BoundsMax)),
			field("size", formatVec(m.Size())),
		)
	}

	materials := m.Materials()
	rows = append(rows, field("materials", len(materials)))
	for _, mat := range materials {
		c := mat.Color
		rows = append(rows, fmt.Sprintf("  %s %s #%02x%02x%02x", swatch(c), mat.Name, c.R, c.G, c.B))
	}

	fmt.Fprintln(w, section(path, rows...))
}

func formatVec(v math3d.Vec3) string {
	return fmt.Sprintf("(%.3g, %.3g, %.3g)", v.X, v.Y, v.Z)
}
