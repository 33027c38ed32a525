// Package physics implements the fixed-timestep numeric integration used by
// the simulation tick: a 4th-order Runge-Kutta integrator for ship motion,
// driven by a caller-supplied acceleration function.
package physics

import "github.com/dogfights/broker/internal/geometry"

// State is the {position, velocity} pair integrated by RK4.
type State struct {
	Pos geometry.Vec2
	Vel geometry.Vec2
}

// Derivative is the {d(pos)/dt, d(vel)/dt} pair evaluated at a trial state.
type Derivative struct {
	DPos geometry.Vec2
	DVel geometry.Vec2
}

// Acceleration computes the instantaneous acceleration for a trial state.
// Implementations re-derive thrust/gravity/friction from the trial state,
// not the state at the start of the step.
type Acceleration func(state State) geometry.Vec2

// evaluate advances x by dt using the derivative d sampled at the start of
// the step, then resamples the derivative at the resulting trial state.
func evaluate(x State, dt float32, d Derivative, accel Acceleration) Derivative {
	trial := State{
		Pos: x.Pos.Add(d.DPos.Scale(dt)),
		Vel: x.Vel.Add(d.DVel.Scale(dt)),
	}
	return Derivative{
		DPos: trial.Vel,
		DVel: accel(trial),
	}
}

// Integrate advances state x by dt using 4th-order Runge-Kutta: the
// derivative is evaluated four times (at 0, dt/2, dt/2, dt), each evaluation
// re-computing acceleration at its trial state, then averaged with weights
// (1, 2, 2, 1)/6.
func Integrate(x State, dt float32, accel Acceleration) State {
	a := evaluate(x, 0, Derivative{}, accel)
	b := evaluate(x, dt*0.5, a, accel)
	c := evaluate(x, dt*0.5, b, accel)
	d := evaluate(x, dt, c, accel)

	dposdt := a.DPos.Add(b.DPos.Scale(2)).Add(c.DPos.Scale(2)).Add(d.DPos).Scale(1.0 / 6.0)
	dveldt := a.DVel.Add(b.DVel.Scale(2)).Add(c.DVel.Scale(2)).Add(d.DVel).Scale(1.0 / 6.0)

	return State{
		Pos: x.Pos.Add(dposdt.Scale(dt)),
		Vel: x.Vel.Add(dveldt.Scale(dt)),
	}
}
