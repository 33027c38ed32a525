package replay

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/dogfights/broker/internal/codec"
	"github.com/dogfights/broker/internal/simulation"
)

// DumpZstd writes every Game currently held by the ring, oldest first, to w
// as a zstd-compressed stream, for offline debugging. The live 1400-byte UDP
// datagram has no room for a compression codec negotiation, so this is an
// explicitly offline-only path: a ring is never compressed on the hot tick
// loop.
func DumpZstd(w io.Writer, r *Ring) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("replay: new zstd writer: %w", err)
	}
	defer enc.Close()

	count := r.Len()
	if err := binary.Write(enc, binary.BigEndian, uint32(count)); err != nil {
		return fmt.Errorf("replay: write count: %w", err)
	}
	for depth := count - 1; depth >= 0; depth-- {
		game, ok := r.At(depth)
		if !ok {
			continue
		}
		if err := codec.EncodeGame(enc, game); err != nil {
			return fmt.Errorf("replay: encode game at depth %d: %w", depth, err)
		}
	}
	return nil
}

// LoadZstd reads a dump produced by DumpZstd back into a slice of Games,
// oldest first.
func LoadZstd(r io.Reader) ([]*simulation.Game, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("replay: new zstd reader: %w", err)
	}
	defer dec.Close()

	var count uint32
	if err := binary.Read(dec, binary.BigEndian, &count); err != nil {
		return nil, fmt.Errorf("replay: read count: %w", err)
	}
	games := make([]*simulation.Game, 0, count)
	for i := uint32(0); i < count; i++ {
		game, err := codec.DecodeGame(dec)
		if err != nil {
			return nil, fmt.Errorf("replay: decode game %d: %w", i, err)
		}
		games = append(games, game)
	}
	return games, nil
}
