package core

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	Samples    int        // MSAA sample count, 0 disables
	ClearColor [4]float32 // RGBA
	GLDebug    bool       // install a GL debug message callback

	// Shadow defaults, overridable per light.
	ShadowResolution int32
	ShadowDistance   float32
}

// DefaultConfig returns sensible windowed defaults.
func DefaultConfig(title string) Config {
	return Config{
		Title:            title,
		Width:            1280,
		Height:           720,
		VSync:            true,
		Samples:          8,
		ClearColor:       [4]float32{0.08, 0.10, 0.12, 1},
		ShadowResolution: 4096,
		ShadowDistance:   100,
	}
}
