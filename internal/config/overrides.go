package config

// Overrides holds command line values that take priority over the config
// file. Zero values leave the config untouched.
type Overrides struct {
	Width     int
	Height    int
	Clear     string
	Output    string
	Scale     int
	Time      float64
	FPS       int
	ViewScale int // Window pixels per surface pixel
	Wireframe bool
	LogLevel  string
	LogFile   string
	Assets    []string // Replace the configured objects, one per asset
}

// Apply writes the set overrides into cfg.
func (o Overrides) Apply(cfg *Config) {
	if o.Width > 0 {
		cfg.Surface.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Surface.Height = o.Height
	}
	if o.Clear != "" {
		cfg.Surface.Clear = o.Clear
	}
	if o.Output != "" {
		cfg.Output.Path = o.Output
	}
	if o.Scale > 0 {
		cfg.Output.Scale = o.Scale
	}
	if o.Time > 0 {
		cfg.Output.Time = o.Time
	}
	if o.FPS > 0 {
		cfg.Viewer.FPS = o.FPS
	}
	if o.ViewScale > 0 {
		cfg.Viewer.Scale = o.ViewScale
	}
	if o.Wireframe {
		cfg.Viewer.Wireframe = true
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
	if len(o.Assets) > 0 {
		cfg.Objects = make([]ObjectConfig, 0, len(o.Assets))
		for _, path := range o.Assets {
			cfg.Objects = append(cfg.Objects, ObjectConfig{Path: path})
		}
	}
}
