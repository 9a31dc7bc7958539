package component

// PlayerTag marks the single player-controlled entity.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Player holds movement tuning and facing for the blade's owner.
type Player struct {
	MoveSpeed  float64
	JumpSpeed  float64
	FacingLeft bool
}

var PlayerComponent = NewComponent[Player]()
