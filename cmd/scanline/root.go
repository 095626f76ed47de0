package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/internal/logger"
	"github.com/taigrr/scanline/internal/scene"
	"github.com/taigrr/scanline/pkg/models"
)

// options holds the flags shared by every command.
type options struct {
	configPath string
	logLevel   string
	logFile    string
	width      int
	height     int
	clear      string
	fps        int
	wireframe  bool
	frame      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "scanline",
		Short: "Software scanline renderer for flat-colored meshes",
		Long: `scanline draws triangle meshes (object.obj folders or .glb files) with an
oblique perspective camera and a per-pixel depth buffer, entirely on the CPU.

Scenes are described in scanline.yaml; asset arguments replace the
configured objects and frame the camera around them.`,
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "scene config file (default ./scanline.yaml)")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.StringVar(&opts.logFile, "log-file", "", "also write logs to this file")
	f.IntVar(&opts.width, "width", 0, "surface width in pixels")
	f.IntVar(&opts.height, "height", 0, "surface height in pixels")
	f.StringVar(&opts.clear, "clear", "", "clear color as hex, e.g. #87ceeb")
	f.IntVar(&opts.fps, "fps", 0, "target frames per second for interactive views")
	f.BoolVarP(&opts.wireframe, "wireframe", "x", false, "overlay triangle edges")
	f.BoolVar(&opts.frame, "frame", false, "point the camera at the scene bounds")

	root.AddCommand(
		newRenderCmd(opts),
		newViewCmd(opts),
		newWindowCmd(opts),
		newInfoCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// overrides converts the shared flags. Asset arguments replace the
// configured objects.
func (o *options) overrides(assets []string) config.Overrides {
	return config.Overrides{
		Width:     o.width,
		Height:    o.height,
		Clear:     o.clear,
		FPS:       o.fps,
		Wireframe: o.wireframe,
		LogLevel:  o.logLevel,
		LogFile:   o.logFile,
		Assets:    assets,
	}
}

// setup loads the configuration and initializes logging. A nil console
// sends logs to the log file only.
func (o *options) setup(ov config.Overrides, console io.Writer) (*config.Config, error) {
	cfg, err := config.Load(o.configPath, ov)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Logging.Level, logger.DefaultFileConfig(cfg.Logging.LogFile), console); err != nil {
		return nil, err
	}
	return cfg, nil
}

// framing reports whether the camera should be fitted to the scene.
func (o *options) framing(args []string) bool {
	return o.frame || len(args) > 0
}

func newLoader() *models.Loader {
	return &models.Loader{Log: logger.Named("models")}
}

// buildScene loads the configured objects and optionally fits the camera
// to them.
func buildScene(cfg *config.Config, frame bool, aspect float64, log *zap.Logger) (*scene.Scene, error) {
	s, err := scene.Build(cfg, newLoader(), logger.Named("scene"))
	if err != nil {
		return nil, err
	}
	if frame {
		if err := s.Frame(aspect); err != nil {
			log.Warn("camera not framed", zap.Error(err))
		}
	}
	return s, nil
}
