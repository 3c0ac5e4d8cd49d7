package server

// ProtocolVersion is bumped on any wire-incompatible change.
const ProtocolVersion = 1

// Message types on the wire.
const (
	TypeHello  = "HELLO"
	TypeFrame  = "FRAME"
	TypeTarget = "TARGET"
)

// HelloMsg is sent once per connection before any frames.
type HelloMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion int     `json:"protocol_version"`
	Nx              int     `json:"nx"`
	Ny              int     `json:"ny"`
	Lx              float64 `json:"lx"`
	Ly              float64 `json:"ly"`
	Dt              float64 `json:"dt"`
	TickRateHz      float64 `json:"tick_rate_hz"`
	StepsPerTick    int     `json:"steps_per_tick"`
}

// FrameMsg is a state snapshot taken between step batches.
type FrameMsg struct {
	Type    string    `json:"type"`
	Time    float64   `json:"time"`
	Density []float64 `json:"density"` // row-major, Nx*Ny values
	Tracers []float64 `json:"tracers"` // interleaved x0,y0,x1,y1,...
	FingerX float64   `json:"finger_x"`
	FingerY float64   `json:"finger_y"`
	TargetX float64   `json:"target_x"`
	TargetY float64   `json:"target_y"`
}

// TargetMsg steers the finger potential toward a new target point.
type TargetMsg struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}
