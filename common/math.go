package common

// Base resolution and shared physics constants.
const (
	BaseWidth  = 1280
	BaseHeight = 720

	Gravity = 1400.0

	// TicksPerSecond is the fixed simulation rate; ebiten's default TPS.
	TicksPerSecond = 60
	FixedDelta     = 1.0 / TicksPerSecond
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
