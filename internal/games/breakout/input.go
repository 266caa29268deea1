package breakout

// Input is the per-frame control snapshot. Launch is edge-triggered: the
// caller sets it for the single frame in which launch was requested.
type Input struct {
	Left   bool
	Right  bool
	Launch bool
}
