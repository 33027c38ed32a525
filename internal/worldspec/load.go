package worldspec

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/dogfights/broker/internal/geometry"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalogYAML []byte

var (
	defaultOnce sync.Once
	defaultSpec *GameSpec
	defaultErr  error
)

// Default returns the embedded world catalog, parsing it exactly once no
// matter how many callers request it.
func Default() (*GameSpec, error) {
	defaultOnce.Do(func() {
		defaultSpec, defaultErr = Parse(defaultCatalogYAML)
	})
	return defaultSpec, defaultErr
}

// LoadFile parses a world catalog from a YAML file on disk, for operators
// who want to retune the world without recompiling the server.
func LoadFile(path string) (*GameSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("worldspec: read %s: %w", path, err)
	}
	return Parse(data)
}

// documents mirror the YAML wire shape; they exist only so yaml.v3 has a
// concrete decode target before values are copied into the exported,
// game-ready types.
type vec2Doc struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

type transformDoc struct {
	Pos      vec2Doc `yaml:"pos"`
	Rotation float32 `yaml:"rotation"`
}

type rectDoc struct {
	Pos vec2Doc `yaml:"pos"`
	W   float32 `yaml:"w"`
	H   float32 `yaml:"h"`
}

type bboxDoc struct {
	Rects []rectDoc `yaml:"rects"`
}

type specDoc struct {
	Kind string `yaml:"kind"`

	// ship fields
	RotationVel      float32 `yaml:"rotation_vel"`
	RotationVelAccel float32 `yaml:"rotation_vel_accel"`
	Accel            float32 `yaml:"accel"`
	Friction         float32 `yaml:"friction"`
	Gravity          float32 `yaml:"gravity"`
	Sprite           uint32  `yaml:"sprite"`
	SpriteAccel      uint32  `yaml:"sprite_accel"`
	FiringInterval   float32 `yaml:"firing_interval"`
	ShootFrom        vec2Doc `yaml:"shoot_from"`

	// bullet fields
	Vel      float32 `yaml:"vel"`
	Lifetime float32 `yaml:"lifetime"`

	// shooter fields
	Trans      transformDoc `yaml:"trans"`
	FiringRate float32      `yaml:"firing_rate"`

	BulletSpec uint32  `yaml:"bullet_spec"`
	BBox       bboxDoc `yaml:"bbox"`
}

type catalogDoc struct {
	Map struct {
		W                 float32 `yaml:"w"`
		H                 float32 `yaml:"h"`
		BackgroundColor   uint32  `yaml:"background_color"`
		BackgroundTexture uint32  `yaml:"background_texture"`
	} `yaml:"map"`
	Camera struct {
		Accel float32 `yaml:"accel"`
		HPad  float32 `yaml:"h_pad"`
		VPad  float32 `yaml:"v_pad"`
	} `yaml:"camera"`
	ShipSpecId    uint32    `yaml:"ship_spec_id"`
	ShooterSpecId uint32    `yaml:"shooter_spec_id"`
	Specs         []specDoc `yaml:"specs"`
}

func (v vec2Doc) vec2() geometry.Vec2 { return geometry.Vec2{X: v.X, Y: v.Y} }

func (t transformDoc) transform() geometry.Transform {
	return geometry.Transform{Pos: t.Pos.vec2(), Rotation: t.Rotation}
}

func (b bboxDoc) bbox() geometry.BBox {
	rects := make([]geometry.Rect, 0, len(b.Rects))
	for _, r := range b.Rects {
		rects = append(rects, geometry.Rect{Pos: r.Pos.vec2(), W: r.W, H: r.H})
	}
	return geometry.BBox{Rects: rects}
}

// Parse decodes a YAML world catalog document into a ready-to-use GameSpec.
func Parse(data []byte) (*GameSpec, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("worldspec: parse catalog: %w", err)
	}

	specs := make([]Spec, 0, len(doc.Specs))
	for i, sd := range doc.Specs {
		spec, err := sd.toSpec()
		if err != nil {
			return nil, fmt.Errorf("worldspec: spec %d: %w", i, err)
		}
		specs = append(specs, spec)
	}

	return &GameSpec{
		Map: Map{
			W:                 doc.Map.W,
			H:                 doc.Map.H,
			BackgroundColor:   doc.Map.BackgroundColor,
			BackgroundTexture: TextureId(doc.Map.BackgroundTexture),
		},
		Camera: CameraSpec{
			Accel: doc.Camera.Accel,
			HPad:  doc.Camera.HPad,
			VPad:  doc.Camera.VPad,
		},
		ShipSpecId:    SpecId(doc.ShipSpecId),
		ShooterSpecId: SpecId(doc.ShooterSpecId),
		Specs:         specs,
	}, nil
}

func (sd specDoc) toSpec() (Spec, error) {
	switch sd.Kind {
	case "ship":
		return Spec{Kind: KindShip, Ship: &ShipSpec{
			RotationVel:      sd.RotationVel,
			RotationVelAccel: sd.RotationVelAccel,
			Accel:            sd.Accel,
			Friction:         sd.Friction,
			Gravity:          sd.Gravity,
			Sprite:           TextureId(sd.Sprite),
			SpriteAccel:      TextureId(sd.SpriteAccel),
			BulletSpec:       SpecId(sd.BulletSpec),
			FiringInterval:   sd.FiringInterval,
			ShootFrom:        sd.ShootFrom.vec2(),
			BBox:             sd.BBox.bbox(),
		}}, nil
	case "bullet":
		return Spec{Kind: KindBullet, Bullet: &BulletSpec{
			Vel:      sd.Vel,
			Lifetime: sd.Lifetime,
			Sprite:   TextureId(sd.Sprite),
			BBox:     sd.BBox.bbox(),
		}}, nil
	case "shooter":
		return Spec{Kind: KindShooter, Shooter: &ShooterSpec{
			Trans:      sd.Trans.transform(),
			BulletSpec: SpecId(sd.BulletSpec),
			FiringRate: sd.FiringRate,
			Sprite:     TextureId(sd.Sprite),
		}}, nil
	default:
		return Spec{}, fmt.Errorf("unknown spec kind %q", sd.Kind)
	}
}
