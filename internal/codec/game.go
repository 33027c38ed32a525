// Package codec implements the wire encoding for game snapshots: the same
// fixed-width, declaration-order layout internal/input uses for control
// frames, extended to cover Vec2/Transform, the Ship/Bullet/Shooter
// variants, the Actors registry, and the PlayerGame envelope broadcast to
// each client.
package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/dogfights/broker/internal/geometry"
	"github.com/dogfights/broker/internal/input"
	"github.com/dogfights/broker/internal/simulation"
	"github.com/dogfights/broker/internal/worldspec"
)

func encodeF32(w io.Writer, v float32) error {
	return binary.Write(w, binary.BigEndian, v)
}

func decodeF32(r io.Reader) (float32, error) {
	var v float32
	err := binary.Read(r, binary.BigEndian, &v)
	return v, err
}

func encodeBool(w io.Writer, b bool) error {
	var v byte
	if b {
		v = 1
	}
	_, err := w.Write([]byte{v})
	return err
}

func decodeBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, err
	}
	switch buf[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("codec: invalid bool byte %d", buf[0])
	}
}

// EncodeVec2 writes v's wire representation to w.
func EncodeVec2(w io.Writer, v geometry.Vec2) error {
	if err := encodeF32(w, v.X); err != nil {
		return err
	}
	return encodeF32(w, v.Y)
}

// DecodeVec2 reads a Vec2 from r.
func DecodeVec2(r io.Reader) (geometry.Vec2, error) {
	x, err := decodeF32(r)
	if err != nil {
		return geometry.Vec2{}, err
	}
	y, err := decodeF32(r)
	if err != nil {
		return geometry.Vec2{}, err
	}
	return geometry.Vec2{X: x, Y: y}, nil
}

// EncodeTransform writes t's wire representation to w.
func EncodeTransform(w io.Writer, t geometry.Transform) error {
	if err := EncodeVec2(w, t.Pos); err != nil {
		return err
	}
	return encodeF32(w, t.Rotation)
}

// DecodeTransform reads a Transform from r.
func DecodeTransform(r io.Reader) (geometry.Transform, error) {
	pos, err := DecodeVec2(r)
	if err != nil {
		return geometry.Transform{}, err
	}
	rotation, err := decodeF32(r)
	if err != nil {
		return geometry.Transform{}, err
	}
	return geometry.Transform{Pos: pos, Rotation: rotation}, nil
}

// EncodeCamera writes c's wire representation to w.
func EncodeCamera(w io.Writer, c simulation.Camera) error {
	if err := EncodeVec2(w, c.Pos); err != nil {
		return err
	}
	return EncodeVec2(w, c.Vel)
}

// DecodeCamera reads a Camera from r.
func DecodeCamera(r io.Reader) (simulation.Camera, error) {
	pos, err := DecodeVec2(r)
	if err != nil {
		return simulation.Camera{}, err
	}
	vel, err := DecodeVec2(r)
	if err != nil {
		return simulation.Camera{}, err
	}
	return simulation.Camera{Pos: pos, Vel: vel}, nil
}

// EncodeShip writes s's wire representation to w, in declaration order.
func EncodeShip(w io.Writer, s simulation.Ship) error {
	if err := binary.Write(w, binary.BigEndian, uint32(s.Spec)); err != nil {
		return err
	}
	if err := EncodeTransform(w, s.Trans); err != nil {
		return err
	}
	if err := EncodeVec2(w, s.Vel); err != nil {
		return err
	}
	if err := encodeF32(w, s.CooldownElapsed); err != nil {
		return err
	}
	if err := encodeBool(w, s.Accel); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint8(s.Rotating)); err != nil {
		return err
	}
	return EncodeCamera(w, s.Camera)
}

// DecodeShip reads a Ship from r, rejecting an out-of-range rotating tag.
func DecodeShip(r io.Reader) (simulation.Ship, error) {
	var specID uint32
	if err := binary.Read(r, binary.BigEndian, &specID); err != nil {
		return simulation.Ship{}, err
	}
	trans, err := DecodeTransform(r)
	if err != nil {
		return simulation.Ship{}, err
	}
	vel, err := DecodeVec2(r)
	if err != nil {
		return simulation.Ship{}, err
	}
	cooldown, err := decodeF32(r)
	if err != nil {
		return simulation.Ship{}, err
	}
	accel, err := decodeBool(r)
	if err != nil {
		return simulation.Ship{}, err
	}
	var rotating uint8
	if err := binary.Read(r, binary.BigEndian, &rotating); err != nil {
		return simulation.Ship{}, err
	}
	if rotating > uint8(input.RotatingRight) {
		return simulation.Ship{}, fmt.Errorf("codec: invalid rotating tag %d", rotating)
	}
	camera, err := DecodeCamera(r)
	if err != nil {
		return simulation.Ship{}, err
	}
	return simulation.Ship{
		Spec:            worldspec.SpecId(specID),
		Trans:           trans,
		Vel:             vel,
		CooldownElapsed: cooldown,
		Accel:           accel,
		Rotating:        input.Rotating(rotating),
		Camera:          camera,
	}, nil
}

// EncodeBullet writes b's wire representation to w.
func EncodeBullet(w io.Writer, b simulation.Bullet) error {
	if err := binary.Write(w, binary.BigEndian, uint32(b.Spec)); err != nil {
		return err
	}
	if err := EncodeTransform(w, b.Trans); err != nil {
		return err
	}
	return encodeF32(w, b.Age)
}

// DecodeBullet reads a Bullet from r.
func DecodeBullet(r io.Reader) (simulation.Bullet, error) {
	var specID uint32
	if err := binary.Read(r, binary.BigEndian, &specID); err != nil {
		return simulation.Bullet{}, err
	}
	trans, err := DecodeTransform(r)
	if err != nil {
		return simulation.Bullet{}, err
	}
	age, err := decodeF32(r)
	if err != nil {
		return simulation.Bullet{}, err
	}
	return simulation.Bullet{Spec: worldspec.SpecId(specID), Trans: trans, Age: age}, nil
}

// EncodeShooter writes s's wire representation to w.
func EncodeShooter(w io.Writer, s simulation.Shooter) error {
	if err := binary.Write(w, binary.BigEndian, uint32(s.Spec)); err != nil {
		return err
	}
	return encodeF32(w, s.TimeSinceFire)
}

// DecodeShooter reads a Shooter from r.
func DecodeShooter(r io.Reader) (simulation.Shooter, error) {
	var specID uint32
	if err := binary.Read(r, binary.BigEndian, &specID); err != nil {
		return simulation.Shooter{}, err
	}
	tsf, err := decodeF32(r)
	if err != nil {
		return simulation.Shooter{}, err
	}
	return simulation.Shooter{Spec: worldspec.SpecId(specID), TimeSinceFire: tsf}, nil
}

// EncodeActor writes a's tagged-variant wire representation to w: a one-byte
// kind discriminant followed by that variant's fields.
func EncodeActor(w io.Writer, a simulation.Actor) error {
	if err := binary.Write(w, binary.BigEndian, uint8(a.Kind)); err != nil {
		return err
	}
	switch a.Kind {
	case simulation.ActorKindShip:
		return EncodeShip(w, *a.Ship)
	case simulation.ActorKindBullet:
		return EncodeBullet(w, *a.Bullet)
	case simulation.ActorKindShooter:
		return EncodeShooter(w, *a.Shooter)
	default:
		return fmt.Errorf("codec: cannot encode actor with unknown kind %d", a.Kind)
	}
}

// DecodeActor reads an Actor from r, rejecting an out-of-range kind tag.
func DecodeActor(r io.Reader) (simulation.Actor, error) {
	var kind uint8
	if err := binary.Read(r, binary.BigEndian, &kind); err != nil {
		return simulation.Actor{}, err
	}
	switch simulation.ActorKind(kind) {
	case simulation.ActorKindShip:
		ship, err := DecodeShip(r)
		if err != nil {
			return simulation.Actor{}, err
		}
		return simulation.Actor{Kind: simulation.ActorKindShip, Ship: &ship}, nil
	case simulation.ActorKindBullet:
		bullet, err := DecodeBullet(r)
		if err != nil {
			return simulation.Actor{}, err
		}
		return simulation.Actor{Kind: simulation.ActorKindBullet, Bullet: &bullet}, nil
	case simulation.ActorKindShooter:
		shooter, err := DecodeShooter(r)
		if err != nil {
			return simulation.Actor{}, err
		}
		return simulation.Actor{Kind: simulation.ActorKindShooter, Shooter: &shooter}, nil
	default:
		return simulation.Actor{}, fmt.Errorf("codec: invalid actor kind tag %d", kind)
	}
}

// EncodeActors writes a's wire representation to w: the id counter, a u64
// mapping length prefix, then that many (id, actor) pairs in ascending id
// order so the encoding is deterministic regardless of map iteration order.
func EncodeActors(w io.Writer, a *simulation.Actors) error {
	if err := binary.Write(w, binary.BigEndian, uint32(a.Count())); err != nil {
		return err
	}
	ids := a.Keys()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if err := binary.Write(w, binary.BigEndian, uint64(len(ids))); err != nil {
		return err
	}
	for _, id := range ids {
		actor, _ := a.Get(id)
		if err := binary.Write(w, binary.BigEndian, id); err != nil {
			return err
		}
		if err := EncodeActor(w, actor); err != nil {
			return err
		}
	}
	return nil
}

// DecodeActors reads an Actors registry from r.
func DecodeActors(r io.Reader) (*simulation.Actors, error) {
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	var n uint64
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	actors := simulation.NewActorsWithCount(count)
	for i := uint64(0); i < n; i++ {
		var id uint32
		if err := binary.Read(r, binary.BigEndian, &id); err != nil {
			return nil, err
		}
		actor, err := DecodeActor(r)
		if err != nil {
			return nil, err
		}
		actors.Insert(id, actor)
	}
	return actors, nil
}

// EncodeGame writes g's wire representation to w.
func EncodeGame(w io.Writer, g *simulation.Game) error {
	if err := EncodeActors(w, g.Actors); err != nil {
		return err
	}
	return encodeF32(w, g.Time)
}

// DecodeGame reads a Game from r.
func DecodeGame(r io.Reader) (*simulation.Game, error) {
	actors, err := DecodeActors(r)
	if err != nil {
		return nil, err
	}
	elapsed, err := decodeF32(r)
	if err != nil {
		return nil, err
	}
	return &simulation.Game{Actors: actors, Time: elapsed}, nil
}

// EncodePlayerGame writes pg's wire representation to w: the addressed
// player id followed by the Game snapshot.
func EncodePlayerGame(w io.Writer, pg *simulation.PlayerGame) error {
	if err := binary.Write(w, binary.BigEndian, pg.Player); err != nil {
		return err
	}
	return EncodeGame(w, pg.Game)
}

// DecodePlayerGame reads a PlayerGame from r.
func DecodePlayerGame(r io.Reader) (*simulation.PlayerGame, error) {
	var player uint32
	if err := binary.Read(r, binary.BigEndian, &player); err != nil {
		return nil, err
	}
	game, err := DecodeGame(r)
	if err != nil {
		return nil, err
	}
	return &simulation.PlayerGame{Player: player, Game: game}, nil
}
