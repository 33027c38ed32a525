// Package worldspec holds the immutable world catalog: the map extent,
// camera tuning, and the indexed table of ship/bullet/shooter specs that
// every Actor's SpecId resolves against. The catalog is loaded once at
// process start and shared read-only afterward.
package worldspec

import "github.com/dogfights/broker/internal/geometry"

// TextureId references a renderer-owned texture; the renderer is an
// out-of-scope external collaborator, so this package only carries the id.
type TextureId uint32

// SpecId indexes a single entry in a GameSpec's catalog.
type SpecId uint32

// Map describes the world extent and background presentation.
type Map struct {
	W                  float32
	H                  float32
	BackgroundColor    uint32
	BackgroundTexture  TextureId
}

// Bound clamps a point into [0, W] x [0, H].
func (m Map) Bound(p geometry.Vec2) geometry.Vec2 {
	return geometry.Vec2{X: clamp(p.X, m.W), Y: clamp(p.Y, m.H)}
}

// BoundRect clamps a rectangle's top-left origin so that a w x h rectangle
// placed there fits entirely inside the map.
func (m Map) BoundRect(p geometry.Vec2, w, h float32) geometry.Vec2 {
	return geometry.Vec2{X: clamp(p.X, m.W-w), Y: clamp(p.Y, m.H-h)}
}

func clamp(n, max float32) float32 {
	switch {
	case n < 0:
		return 0
	case n > max:
		return max
	default:
		return n
	}
}

// CameraSpec tunes how aggressively a ship's camera chases its velocity and
// how close to the viewport edge it is allowed to travel before snapping.
type CameraSpec struct {
	Accel float32
	HPad  float32
	VPad  float32
}

// ShipSpec tunes the motion, weaponry, and presentation of a ship actor.
type ShipSpec struct {
	RotationVel      float32
	RotationVelAccel float32
	Accel            float32
	Friction         float32
	Gravity          float32
	Sprite           TextureId
	SpriteAccel      TextureId
	BulletSpec       SpecId
	FiringInterval   float32
	ShootFrom        geometry.Vec2
	BBox             geometry.BBox
}

// BulletSpec tunes the motion and lifetime of a bullet actor.
type BulletSpec struct {
	Vel      float32
	Lifetime float32
	Sprite   TextureId
	BBox     geometry.BBox
}

// ShooterSpec tunes a stationary turret actor.
type ShooterSpec struct {
	Trans      geometry.Transform
	BulletSpec SpecId
	FiringRate float32
	Sprite     TextureId
}

// Kind tags which variant a Spec carries.
type Kind int

const (
	KindShip Kind = iota
	KindBullet
	KindShooter
)

// Spec is a tagged variant of {ShipSpec, BulletSpec, ShooterSpec}. Exactly
// one of Ship/Bullet/Shooter is populated, matching Kind.
type Spec struct {
	Kind    Kind
	Ship    *ShipSpec
	Bullet  *BulletSpec
	Shooter *ShooterSpec
}

// IsShip reports whether the spec is a ShipSpec.
func (s Spec) IsShip() bool { return s.Kind == KindShip }

// IsBullet reports whether the spec is a BulletSpec.
func (s Spec) IsBullet() bool { return s.Kind == KindBullet }

// IsShooter reports whether the spec is a ShooterSpec.
func (s Spec) IsShooter() bool { return s.Kind == KindShooter }

// AsShip returns the ShipSpec payload. Calling it on a non-ship Spec is a
// programmer error: the caller already knows the Actor's variant from its
// own tag, so a mismatch means the catalog was built incorrectly.
func (s Spec) AsShip() ShipSpec {
	if s.Kind != KindShip || s.Ship == nil {
		panic("worldspec: Spec is not a ShipSpec")
	}
	return *s.Ship
}

// AsBullet returns the BulletSpec payload, panicking on a variant mismatch.
func (s Spec) AsBullet() BulletSpec {
	if s.Kind != KindBullet || s.Bullet == nil {
		panic("worldspec: Spec is not a BulletSpec")
	}
	return *s.Bullet
}

// AsShooter returns the ShooterSpec payload, panicking on a variant mismatch.
func (s Spec) AsShooter() ShooterSpec {
	if s.Kind != KindShooter || s.Shooter == nil {
		panic("worldspec: Spec is not a ShooterSpec")
	}
	return *s.Shooter
}

// GameSpec is the immutable, process-wide world catalog.
type GameSpec struct {
	Map          Map
	Camera       CameraSpec
	ShipSpecId   SpecId
	ShooterSpecId SpecId
	Specs        []Spec
}

// GetSpec resolves a SpecId to its catalog entry. An out-of-range id is a
// programmer error (an Actor was built against the wrong catalog) and
// crashes the process rather than returning a recoverable error.
func (g *GameSpec) GetSpec(id SpecId) Spec {
	if int(id) >= len(g.Specs) {
		panic("worldspec: SpecId out of range")
	}
	return g.Specs[id]
}
