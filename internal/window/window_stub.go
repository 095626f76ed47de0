//go:build !cgo

package window

import (
	"errors"

	"go.uber.org/zap"

	"github.com/taigrr/scanline/internal/scene"
	"github.com/taigrr/scanline/pkg/render"
)

// ErrUnsupported is returned by Run in builds without cgo.
var ErrUnsupported = errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")

// Run always fails without cgo.
func Run(_ *scene.Scene, _ *render.Framebuffer, _ Options, _ *zap.Logger) error {
	return ErrUnsupported
}
