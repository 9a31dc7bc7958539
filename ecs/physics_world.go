package ecs

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/relicblade/common"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeBlade
	collisionTypeTarget
)

// bladeContacts holds what the blade's shape touched during the last
// space step. The blade system consumes and clears it each tick.
type bladeContacts struct {
	ground bool
	target bool
	hitEnt Entity
}

// PhysicsWorld owns the Chipmunk space, the arena's static geometry, and
// the contact bookkeeping the mode graph's level-triggered guards poll.
type PhysicsWorld struct {
	space *cp.Space

	bladeShape    *cp.Shape
	targetShapes  map[*cp.Shape]Entity
	contacts      bladeContacts
	handlersReady bool
}

// NewPhysicsWorld creates a space with the demo arena: a floor and two
// walls sized to the base resolution.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	pw := &PhysicsWorld{
		space:        space,
		targetShapes: make(map[*cp.Shape]Entity),
	}
	pw.buildArena()
	return pw
}

func (pw *PhysicsWorld) buildArena() {
	static := pw.space.StaticBody
	segments := [][4]float64{
		{0, common.BaseHeight - 40, common.BaseWidth, common.BaseHeight - 40}, // floor
		{0, 0, 0, common.BaseHeight},                                         // left wall
		{common.BaseWidth, 0, common.BaseWidth, common.BaseHeight},           // right wall
	}
	for _, s := range segments {
		seg := cp.NewSegment(static, cp.Vector{X: s[0], Y: s[1]}, cp.Vector{X: s[2], Y: s[3]}, 4)
		seg.SetFriction(1)
		seg.SetElasticity(0)
		seg.SetCollisionType(collisionTypeSolid)
		pw.space.AddShape(seg)
	}
}

// Space exposes the raw space for systems that step or inspect it.
func (pw *PhysicsWorld) Space() *cp.Space {
	return pw.space
}

// AddPlayerBody creates the owner's dynamic box body.
func (pw *PhysicsWorld) AddPlayerBody(x, y, w, h, mass float64) (*cp.Body, *cp.Shape) {
	body := pw.space.AddBody(cp.NewBody(mass, cp.INFINITY))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := pw.space.AddShape(cp.NewBox(body, w, h, 0))
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypePlayer)
	return body, shape
}

// AddBladeBody creates the blade proxy's dynamic body and registers the
// contact handlers the flying and lunging guards rely on.
func (pw *PhysicsWorld) AddBladeBody(x, y, w, h, mass float64) (*cp.Body, *cp.Shape) {
	body := pw.space.AddBody(cp.NewBody(mass, cp.MomentForBox(mass, w, h)))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := pw.space.AddShape(cp.NewBox(body, w, h, 0))
	shape.SetFriction(0.6)
	shape.SetCollisionType(collisionTypeBlade)
	pw.bladeShape = shape
	pw.setupHandlers()
	return body, shape
}

// AddTargetBody creates a static destructible dummy the blade can lodge in.
func (pw *PhysicsWorld) AddTargetBody(e Entity, x, y, w, h float64) (*cp.Body, *cp.Shape) {
	body := pw.space.AddBody(cp.NewStaticBody())
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := pw.space.AddShape(cp.NewBox(body, w, h, 0))
	shape.SetCollisionType(collisionTypeTarget)
	pw.targetShapes[shape] = e
	return body, shape
}

// RemoveTargetBody tears down a destroyed dummy.
func (pw *PhysicsWorld) RemoveTargetBody(body *cp.Body, shape *cp.Shape) {
	delete(pw.targetShapes, shape)
	pw.space.RemoveShape(shape)
	pw.space.RemoveBody(body)
}

func (pw *PhysicsWorld) setupHandlers() {
	if pw.handlersReady {
		return
	}
	pw.handlersReady = true

	ground := pw.space.NewCollisionHandler(collisionTypeBlade, collisionTypeSolid)
	ground.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, _ interface{}) bool {
		pw.contacts.ground = true
		return true
	}

	target := pw.space.NewCollisionHandler(collisionTypeBlade, collisionTypeTarget)
	target.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, _ interface{}) bool {
		_, b := arb.Shapes()
		if e, ok := pw.targetShapes[b]; ok {
			pw.contacts.target = true
			pw.contacts.hitEnt = e
		}
		return true
	}
}

// Step advances the simulation one fixed tick.
func (pw *PhysicsWorld) Step(dt float64) {
	pw.space.Step(dt)
}

// BladeHitTarget reports (without clearing) whether the blade struck a
// dummy during the last step, and which entity it was.
func (pw *PhysicsWorld) BladeHitTarget() (Entity, bool) {
	return pw.contacts.hitEnt, pw.contacts.target
}

// BladeLanded reports whether the blade touched static geometry during
// the last step.
func (pw *PhysicsWorld) BladeLanded() bool {
	return pw.contacts.ground
}

// ClearBladeContacts resets the per-step contact flags. The blade system
// calls this after the engine tick consumed them.
func (pw *PhysicsWorld) ClearBladeContacts() {
	pw.contacts = bladeContacts{}
}

// PinBlade freezes the blade proxy at its current position by switching
// the body kinematic; used while lodged.
func (pw *PhysicsWorld) PinBlade(body *cp.Body) {
	body.SetVelocity(0, 0)
	body.SetAngularVelocity(0)
	body.SetType(cp.BODY_KINEMATIC)
}

// UnpinBlade restores the proxy to a dynamic body.
func (pw *PhysicsWorld) UnpinBlade(body *cp.Body, mass, w, h float64) {
	body.SetType(cp.BODY_DYNAMIC)
	body.SetMass(mass)
	body.SetMoment(cp.MomentForBox(mass, w, h))
}
