package window

// Options configures the desktop window.
type Options struct {
	Title     string
	Scale     int     // Window pixels per framebuffer pixel
	TPS       int     // Updates per second
	MoveSpeed float64 // Camera speed in world units per second
	Wireframe bool    // Start with the wireframe overlay on
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "scanline"
	}
	if o.Scale < 1 {
		o.Scale = 1
	}
	if o.TPS <= 0 {
		o.TPS = 60
	}
	if o.MoveSpeed <= 0 {
		o.MoveSpeed = 10
	}
	return o
}
