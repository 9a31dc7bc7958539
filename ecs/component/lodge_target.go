package component

// LodgeTarget is a destructible dummy the blade can stick into.
type LodgeTarget struct {
	HP int
}

var LodgeTargetComponent = NewComponent[LodgeTarget]()
