package core

// Input is the per-frame input snapshot fed by window events. Mouse deltas
// accumulate between EndFrame calls so behaviors see one delta per frame.
type Input struct {
	keys             map[Key]bool
	buttons          map[int]bool
	mouseX, mouseY   float64
	deltaX, deltaY   float64
	scrollX, scrollY float64
	hasLast          bool
}

func NewInput() *Input {
	return &Input{keys: map[Key]bool{}, buttons: map[int]bool{}}
}

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		if in.hasLast {
			in.deltaX += e.X - in.mouseX
			in.deltaY += e.Y - in.mouseY
		}
		in.mouseX, in.mouseY = e.X, e.Y
		in.hasLast = true
	case EventMouseButton:
		in.buttons[e.Button] = e.Down
	case EventScroll:
		in.scrollX += e.Xoff
		in.scrollY += e.Yoff
	}
}

// EndFrame clears the per-frame accumulators. Called once per frame after
// behavior dispatch.
func (in *Input) EndFrame() {
	in.deltaX, in.deltaY = 0, 0
	in.scrollX, in.scrollY = 0, 0
}

// ResetMouseDelta drops any pending delta, used when the cursor is
// locked/unlocked so the first captured move does not jump.
func (in *Input) ResetMouseDelta() {
	in.deltaX, in.deltaY = 0, 0
	in.hasLast = false
}

func (in *Input) IsKeyDown(k Key) bool          { return in.keys[k] }
func (in *Input) IsMouseButtonDown(b int) bool  { return in.buttons[b] }
func (in *Input) Mouse() (float64, float64)     { return in.mouseX, in.mouseY }
func (in *Input) MouseDelta() (float32, float32) {
	return float32(in.deltaX), float32(in.deltaY)
}
func (in *Input) Scroll() (float32, float32) {
	return float32(in.scrollX), float32(in.scrollY)
}
