package simulation

// Screen geometry defines the camera viewport, not a window: rendering
// itself is an out-of-scope external collaborator.
const (
	ScreenWidth  float32 = 800
	ScreenHeight float32 = 600
)

// TimeStep is the fixed simulation tick duration in seconds.
const TimeStep float32 = 0.05

// MaxFrameTime bounds how far a client will extrapolate/interpolate past the
// last received snapshot before presenting it unsmoothed.
const MaxFrameTime float32 = 0.25
