package component

// Input stores per-frame input state for the player entity. Button edges
// (the *Pressed fields) are true only on the frame the button went down.
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool

	TogglePressed      bool
	WieldPressed       bool
	ThrowPressed       bool
	RecallPressed      bool
	LungePressed       bool
	SheathePressed     bool
	AttackQuickPressed bool
	AttackHeavyPressed bool

	// Debug toggles for the universal transitions.
	DeactivatePressed    bool
	ReactivatePressed    bool
	BreakProxyPressed    bool
	DamageTargetPressed  bool
	ToggleOwnerAvailable bool
}

var InputComponent = NewComponent[Input]()
