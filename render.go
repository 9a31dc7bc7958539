package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/relicblade/common"
	"github.com/milk9111/relicblade/ecs"
	"github.com/milk9111/relicblade/ecs/component"
)

// Placeholder rendering: boxes for the actors, a line for the floor. The
// real art pipeline is out of scope for this build.

var (
	colorPlayer = color.RGBA{0x4d, 0x90, 0xd9, 0xff}
	colorBlade  = color.RGBA{0xd9, 0xc8, 0x4d, 0xff}
	colorBroken = color.RGBA{0x8a, 0x3a, 0x3a, 0xff}
	colorTarget = color.RGBA{0x6d, 0x4d, 0x2e, 0xff}
	colorFloor  = color.RGBA{0x3c, 0x3c, 0x3c, 0xff}
)

func drawWorld(screen *ebiten.Image, w *ecs.World) {
	screen.Fill(color.RGBA{0x16, 0x16, 0x1e, 0xff})
	vector.StrokeLine(screen, 0, common.BaseHeight-40, common.BaseWidth, common.BaseHeight-40, 3, colorFloor, false)

	for _, e := range w.Query(component.TransformComponent.ID(), component.PhysicsBodyComponent.ID()) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}

		c := colorTarget
		switch {
		case ecs.Has(w, e, component.PlayerTagComponent):
			c = colorPlayer
		case ecs.Has(w, e, component.BladeComponent):
			c = colorBlade
			if blade, ok := ecs.Get(w, e, component.BladeComponent); ok && !blade.ProxyValid {
				c = colorBroken
			}
		}

		x := float32(t.X - body.Width/2)
		y := float32(t.Y - body.Height/2)
		vector.DrawFilledRect(screen, x, y, float32(body.Width), float32(body.Height), c, false)
	}
}
