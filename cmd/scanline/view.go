package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"sync"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/internal/logger"
	"github.com/taigrr/scanline/internal/scene"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

const (
	keyStep      = 0.1  // Seconds of camera movement per key press
	spinImpulse  = 0.02 // Radians per frame added per key press
	shakeImpulse = 0.15
)

func newViewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "view [asset...]",
		Short: "Interactive viewer in the terminal",
		Long: `Render the scene into the terminal with half-block characters.

Controls:
  W/S         Move forward/back
  A/D         Move left/right
  E/Q         Move up/down
  Arrows      Spin objects
  [ / ]       Roll objects
  Space       Random spin
  R           Reset view
  X           Toggle wireframe
  ?           Toggle HUD
  Esc         Quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The viewer owns the terminal; logs go to --log-file only
			cfg, err := opts.setup(opts.overrides(args), nil)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return runViewer(cmd.Context(), cfg, opts.framing(args))
		},
	}
}

// action is what a key does in the viewer.
type action int

const (
	actNone action = iota
	actQuit
	actReset
	actWireframe
	actHUD
	actShake
	actSpinUp
	actSpinDown
	actSpinLeft
	actSpinRight
	actRollLeft
	actRollRight
	actForward
	actBack
	actLeft
	actRight
	actUp
	actDown
)

var keymap = []struct {
	keys []string
	act  action
}{
	{[]string{"escape", "ctrl+c"}, actQuit},
	{[]string{"r"}, actReset},
	{[]string{"x"}, actWireframe},
	{[]string{"?", "shift+/"}, actHUD},
	{[]string{"space"}, actShake},
	{[]string{"up"}, actSpinUp},
	{[]string{"down"}, actSpinDown},
	{[]string{"left"}, actSpinLeft},
	{[]string{"right"}, actSpinRight},
	{[]string{"["}, actRollLeft},
	{[]string{"]"}, actRollRight},
	{[]string{"w"}, actForward},
	{[]string{"s"}, actBack},
	{[]string{"a"}, actLeft},
	{[]string{"d"}, actRight},
	{[]string{"e"}, actUp},
	{[]string{"q"}, actDown},
}

// viewer is the state shared by the event goroutine and the frame loop.
// Every field is guarded by mu.
type viewer struct {
	mu sync.Mutex

	scene  *scene.Scene
	home   render.Camera
	fb     *render.Framebuffer
	raster *render.Rasterizer
	spin   *spin
	log    *zap.Logger

	moveSpeed  float64
	frame      bool
	framed     bool
	wireframe  bool
	hud        bool
	cols, rows int
	lastErr    string
}

func newViewer(s *scene.Scene, cfg *config.Config, frame bool, log *zap.Logger) *viewer {
	return &viewer{
		scene:     s,
		home:      s.Camera,
		fb:        render.NewFramebuffer(0, 0),
		raster:    render.NewRasterizer(log),
		spin:      newSpin(max(cfg.Viewer.FPS, 1)),
		log:       log,
		moveSpeed: cfg.Viewer.MoveSpeed,
		frame:     frame,
		wireframe: cfg.Viewer.Wireframe,
		hud:       true,
	}
}

// resize fits the framebuffer to a terminal of cols x rows cells. With
// framing on, the first non-empty size frames the camera; later resizes
// keep the camera where the user moved it. Callers hold mu.
func (v *viewer) resize(cols, rows int) {
	v.cols, v.rows = cols, rows
	w, h := render.CellsToPixels(cols, rows)
	v.fb.Resize(w, h)

	if v.frame && !v.framed && w > 0 && h > 0 {
		v.framed = true
		if err := v.scene.Frame(float64(w) / float64(h)); err != nil {
			v.log.Warn("camera not framed", zap.Error(err))
			return
		}
		v.home = v.scene.Camera
	}
}

// apply performs a key action and reports whether the viewer keeps
// running. Callers hold mu.
func (v *viewer) apply(act action) bool {
	dist := v.moveSpeed * keyStep

	switch act {
	case actQuit:
		return false
	case actReset:
		v.scene.Rotate(v.spin.reset())
		v.scene.Camera = v.home
	case actWireframe:
		v.wireframe = !v.wireframe
	case actHUD:
		v.hud = !v.hud
	case actShake:
		v.spin.impulse(math3d.V3(
			(rand.Float64()*2-1)*shakeImpulse,
			(rand.Float64()*2-1)*shakeImpulse,
			(rand.Float64()*2-1)*shakeImpulse,
		))
	case actSpinUp:
		v.spin.impulse(math3d.V3(0, -spinImpulse, 0))
	case actSpinDown:
		v.spin.impulse(math3d.V3(0, spinImpulse, 0))
	case actSpinLeft:
		v.spin.impulse(math3d.V3(0, 0, -spinImpulse))
	case actSpinRight:
		v.spin.impulse(math3d.V3(0, 0, spinImpulse))
	case actRollLeft:
		v.spin.impulse(math3d.V3(-spinImpulse, 0, 0))
	case actRollRight:
		v.spin.impulse(math3d.V3(spinImpulse, 0, 0))
	case actForward:
		v.scene.MoveCamera(scene.Motion{Forward: true}, dist)
	case actBack:
		v.scene.MoveCamera(scene.Motion{Back: true}, dist)
	case actLeft:
		v.scene.MoveCamera(scene.Motion{Left: true}, dist)
	case actRight:
		v.scene.MoveCamera(scene.Motion{Right: true}, dist)
	case actUp:
		v.scene.MoveCamera(scene.Motion{Up: true}, dist)
	case actDown:
		v.scene.MoveCamera(scene.Motion{Down: true}, dist)
	}
	return true
}

func keyAction(ev uv.KeyPressEvent) action {
	for _, b := range keymap {
		if ev.MatchString(b.keys...) {
			return b.act
		}
	}
	return actNone
}

// step advances the scene by dt seconds and renders it into the
// framebuffer. Callers hold mu.
func (v *viewer) step(dt float64) {
	v.scene.Update(dt)
	if v.spin.moving() {
		v.scene.Rotate(v.spin.step())
	}

	if err := v.scene.Draw(v.fb, v.raster); err != nil {
		// Invalid objects fail the same way every frame
		if msg := err.Error(); msg != v.lastErr {
			v.log.Warn("render failed", zap.Error(err))
			v.lastErr = msg
		}
	}
	if v.wireframe {
		v.scene.DrawWireframe(v.fb, wireColor)
	}
}

func (v *viewer) hudText(fps float64) string {
	wire := "[ ]"
	if v.wireframe {
		wire = "[✓]"
	}
	return fmt.Sprintf(" %.0f FPS  %d/%d tris  %s wireframe ",
		fps, v.raster.Stats.Drawn, v.raster.Stats.Triangles, wire)
}

// cellSetter is the part of uv.Screen that drawText needs.
type cellSetter interface {
	SetCell(x, y int, c *uv.Cell)
}

// drawText writes single-width text into row y starting at column x,
// clipped to cols.
func drawText(scr cellSetter, x, y, cols int, text string, fg, bg color.Color) {
	for _, r := range text {
		if x >= cols {
			return
		}
		scr.SetCell(x, y, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style:   uv.Style{Fg: fg, Bg: bg},
		})
		x++
	}
}

// fpsMeter counts frames over one second windows.
type fpsMeter struct {
	fps    float64
	frames int
	since  time.Time
}

func (m *fpsMeter) tick() {
	m.frames++
	elapsed := time.Since(m.since)
	if elapsed >= time.Second {
		m.fps = float64(m.frames) / elapsed.Seconds()
		m.frames = 0
		m.since = time.Now()
	}
}

func runViewer(ctx context.Context, cfg *config.Config, frame bool) error {
	log := logger.Named("view")

	// Framing waits for the terminal size
	s, err := buildScene(cfg, false, 1, log)
	if err != nil {
		return err
	}
	v := newViewer(s, cfg, frame, log)

	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	v.resize(cols, rows)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for ev := range term.Events() {
			v.mu.Lock()
			running := true
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				term.Erase()
				term.Resize(ev.Width, ev.Height)
				v.resize(ev.Width, ev.Height)
			case uv.KeyPressEvent:
				running = v.apply(keyAction(ev))
			}
			v.mu.Unlock()

			if !running {
				cancel()
				return
			}
		}
	}()

	log.Info("viewer started",
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Int("objects", len(s.Objects())),
	)

	target := time.Second / time.Duration(max(cfg.Viewer.FPS, 1))
	meter := &fpsMeter{since: time.Now()}
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()
		dt := min(now.Sub(last).Seconds(), 0.1)
		last = now

		v.mu.Lock()
		v.step(dt)
		v.fb.Draw(term, uv.Rectangle(image.Rect(0, 0, v.cols, v.rows)))
		if v.hud && v.rows > 0 {
			drawText(term, 0, 0, v.cols, v.hudText(meter.fps), hudStyle.GetForeground(), hudStyle.GetBackground())
		}
		err := term.Display()
		v.mu.Unlock()
		if err != nil {
			return fmt.Errorf("display: %w", err)
		}
		meter.tick()

		if elapsed := time.Since(now); elapsed < target {
			time.Sleep(target - elapsed)
		}
	}
}
