package simulation

import (
	"math"

	"github.com/dogfights/broker/internal/geometry"
	"github.com/dogfights/broker/internal/input"
	"github.com/dogfights/broker/internal/physics"
	"github.com/dogfights/broker/internal/worldspec"
)

// Ship is a player-controlled actor: transform, velocity, time since last
// shot, current control intent, and its own tracking camera.
type Ship struct {
	Spec            worldspec.SpecId
	Trans           geometry.Transform
	Vel             geometry.Vec2
	CooldownElapsed float32
	Accel           bool
	Rotating        input.Rotating
	Camera          Camera
}

// shipAcceleration builds the RK4 acceleration function for a single tick:
// thrust if accelerating (negated sine because screen Y grows downward),
// plus gravity, minus velocity-proportional friction. Rotation is fixed for
// the whole step; only velocity varies across RK4 stages.
func shipAcceleration(spec worldspec.ShipSpec, rotation float32, accelerating bool) physics.Acceleration {
	return func(state physics.State) geometry.Vec2 {
		thrust := geometry.Vec2{}
		if accelerating {
			sin, cos := math.Sincos(float64(rotation))
			thrust = geometry.Vec2{X: float32(cos) * spec.Accel, Y: -float32(sin) * spec.Accel}
		}
		gravity := geometry.Vec2{X: 0, Y: spec.Gravity}
		friction := state.Vel.Scale(spec.Friction)
		return thrust.Add(gravity).Sub(friction)
	}
}

// Advance resolves control intent, integrates motion, fires if due, and
// advances the ship's own camera. It always survives the tick: ships never
// self-destruct in the core design.
func (s Ship) Advance(gspec *worldspec.GameSpec, next *Actors, in *input.Input, dt float32) (Actor, bool) {
	accel := s.Accel
	rotating := s.Rotating
	firing := false
	if in != nil {
		accel = in.Accel
		rotating = in.Rotating
		firing = in.Firing
	}

	spec := gspec.GetSpec(s.Spec).AsShip()

	rotationVel := spec.RotationVel
	if accel {
		rotationVel += spec.RotationVelAccel
	}
	rotation := s.Trans.Rotation
	switch rotating {
	case input.RotatingLeft:
		rotation += dt * rotationVel
	case input.RotatingRight:
		rotation -= dt * rotationVel
	}

	state := physics.State{Pos: s.Trans.Pos, Vel: s.Vel}
	integrated := physics.Integrate(state, dt, shipAcceleration(spec, rotation, accel))
	newTrans := geometry.Transform{Pos: gspec.Map.Bound(integrated.Pos), Rotation: rotation}

	camera := s.Camera.Advance(gspec.Camera, integrated.Vel, newTrans, gspec.Map, dt)

	cooldown := s.CooldownElapsed + dt
	if firing && cooldown >= spec.FiringInterval {
		cooldown = 0
		bulletTrans := geometry.Transform{
			Pos:      newTrans.Pos.Add(spec.ShootFrom.Rotate(newTrans.Rotation)),
			Rotation: newTrans.Rotation,
		}
		next.Add(Actor{Kind: ActorKindBullet, Bullet: &Bullet{Spec: spec.BulletSpec, Trans: bulletTrans}})
	}

	newShip := Ship{
		Spec:            s.Spec,
		Trans:           newTrans,
		Vel:             integrated.Vel,
		CooldownElapsed: cooldown,
		Accel:           accel,
		Rotating:        rotating,
		Camera:          camera,
	}
	return Actor{Kind: ActorKindShip, Ship: &newShip}, true
}
