//go:build cgo

// Package window shows a scene in a desktop window.
package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/taigrr/scanline/internal/scene"
	"github.com/taigrr/scanline/pkg/render"
)

// Run opens a window showing s and blocks until it is closed or Escape is
// pressed. WASD moves the camera, Q and E lower and raise it, X toggles
// the wireframe overlay.
func Run(s *scene.Scene, fb *render.Framebuffer, opts Options, log *zap.Logger) error {
	opts = opts.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}

	g := &game{
		scene:      s,
		fb:         fb,
		rasterizer: render.NewRasterizer(log.Named("render")),
		opts:       opts,
		wireframe:  opts.Wireframe,
		log:        log,
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(fb.Width*opts.Scale, fb.Height*opts.Scale)
	ebiten.SetTPS(opts.TPS)
	log.Info("window opened",
		zap.Int("width", fb.Width),
		zap.Int("height", fb.Height),
		zap.Int("scale", opts.Scale),
	)
	return ebiten.RunGame(g)
}

type game struct {
	scene      *scene.Scene
	fb         *render.Framebuffer
	rasterizer *render.Rasterizer
	opts       Options
	wireframe  bool
	img        *ebiten.Image
	failed     bool
	log        *zap.Logger
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.wireframe = !g.wireframe
	}

	dt := 1 / float64(ebiten.TPS())
	g.scene.Update(dt)
	g.scene.MoveCamera(scene.Motion{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD),
		Up:      ebiten.IsKeyPressed(ebiten.KeyE),
		Down:    ebiten.IsKeyPressed(ebiten.KeyQ),
	}, g.opts.MoveSpeed*dt)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if err := g.scene.Draw(g.fb, g.rasterizer); err != nil && !g.failed {
		// Reported once; the same objects fail every frame.
		g.log.Error("frame incomplete", zap.Error(err))
		g.failed = true
	}
	if g.wireframe {
		g.scene.DrawWireframe(g.fb, render.ColorWhite)
	}

	if g.img == nil || g.img.Bounds().Dx() != g.fb.Width || g.img.Bounds().Dy() != g.fb.Height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(g.fb.Width, g.fb.Height)
	}
	g.img.WritePixels(g.fb.ToImage().Pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}
