package component

// BladeTuning holds the numbers the mode graph runs on. Values come from
// prefabs/blade.yaml and may be hot-reloaded while the game runs.
type BladeTuning struct {
	HoverOffsetX  float64
	HoverOffsetY  float64
	HoverBobAmp   float64
	HoverBobTicks int
	FollowRate    float64

	HandOffsetX float64
	HandOffsetY float64
	BackOffsetX float64
	BackOffsetY float64

	ThrowSpeed  float64
	ThrowLift   float64
	RecallSpeed float64
	ReturnSpeed float64
	LungeSpeed  float64

	QuickSwingTicks int
	HeavySwingTicks int

	// Arrival detection: after ArrivalGraceTicks, the proxy counts as
	// arrived once consecutive position samples stay within
	// ArrivalEpsilon of each other for ArrivalStillTicks ticks.
	ArrivalGraceTicks int
	ArrivalStillTicks int
	ArrivalEpsilon    float64

	// A resting blade is picked back up within PickupDistance, returns on
	// its own past WaitDistance or after WaitIdleTicks, and rests in
	// between.
	PickupDistance float64
	WaitDistance   float64
	WaitIdleTicks  int

	LungeMaxTicks int
	RepairTicks   int
}

// DefaultBladeTuning mirrors prefabs/blade.yaml for tests and for running
// without the prefab file.
func DefaultBladeTuning() *BladeTuning {
	return &BladeTuning{
		HoverOffsetX:      -28,
		HoverOffsetY:      -40,
		HoverBobAmp:       4,
		HoverBobTicks:     90,
		FollowRate:        8,
		HandOffsetX:       18,
		HandOffsetY:       -12,
		BackOffsetX:       -6,
		BackOffsetY:       -24,
		ThrowSpeed:        900,
		ThrowLift:         0.15,
		RecallSpeed:       700,
		ReturnSpeed:       420,
		LungeSpeed:        1100,
		QuickSwingTicks:   14,
		HeavySwingTicks:   32,
		ArrivalGraceTicks: 10,
		ArrivalStillTicks: 3,
		ArrivalEpsilon:    0.75,
		PickupDistance:    64,
		WaitDistance:      320,
		WaitIdleTicks:     300,
		LungeMaxTicks:     24,
		RepairTicks:       45,
	}
}
