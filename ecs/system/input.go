package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/relicblade/ecs"
	"github.com/milk9111/relicblade/ecs/component"
)

// InputSystem samples the keyboard/gamepad once per tick and writes the
// player's Input component. Request-style actions use just-pressed edges
// so holding a key down never repeats a push.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) error {
	const stickDeadzone = 0.2

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)
	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)

	moveX := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}

	toggle := inpututil.IsKeyJustPressed(ebiten.KeyTab)
	wield := inpututil.IsKeyJustPressed(ebiten.KeyF)
	throw := inpututil.IsKeyJustPressed(ebiten.KeyQ)
	recall := inpututil.IsKeyJustPressed(ebiten.KeyR)
	lunge := inpututil.IsKeyJustPressed(ebiten.KeyE)
	sheathe := inpututil.IsKeyJustPressed(ebiten.KeyC)
	attackQuick := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	attackHeavy := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}

		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		attackQuick = attackQuick || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		attackHeavy = attackHeavy || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
		throw = throw || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		recall = recall || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopLeft)
	}

	// Debug keys exercising the universal transitions.
	deactivate := inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
	reactivate := inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	breakProxy := inpututil.IsKeyJustPressed(ebiten.KeyK)
	damageTarget := inpututil.IsKeyJustPressed(ebiten.KeyX)
	toggleOwner := inpututil.IsKeyJustPressed(ebiten.KeyO)

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.Jump = jump
		input.JumpPressed = jumpPressed
		input.TogglePressed = toggle
		input.WieldPressed = wield
		input.ThrowPressed = throw
		input.RecallPressed = recall
		input.LungePressed = lunge
		input.SheathePressed = sheathe
		input.AttackQuickPressed = attackQuick
		input.AttackHeavyPressed = attackHeavy
		input.DeactivatePressed = deactivate
		input.ReactivatePressed = reactivate
		input.BreakProxyPressed = breakProxy
		input.DamageTargetPressed = damageTarget
		input.ToggleOwnerAvailable = toggleOwner
	})
	return nil
}
