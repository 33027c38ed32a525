// Command snapshot_dump prints a summary of a replay dump written by the
// dedicated server's --dump-path flag (internal/replay.DumpZstd): snapshot
// count, then the newest snapshot's time, actor count, and per-actor
// positions for its ships and bullets (other actors print only their kind).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dogfights/broker/internal/replay"
	"github.com/dogfights/broker/internal/simulation"
)

func main() {
	path := flag.String("path", "", "path to a zstd replay dump")
	flag.Parse()
	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: snapshot_dump -path <dump file>")
		os.Exit(2)
	}

	f, err := os.Open(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	games, err := replay.LoadZstd(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("%d snapshots\n", len(games))
	if len(games) == 0 {
		return
	}
	newest := games[len(games)-1]
	fmt.Printf("newest: time=%.3f actors=%d\n", newest.Time, newest.Actors.Len())
	for _, id := range newest.Actors.Keys() {
		actor, ok := newest.Actors.Get(id)
		if !ok {
			continue
		}
		switch actor.Kind {
		case simulation.ActorKindShip:
			if actor.Ship != nil {
				fmt.Printf("  ship   %d pos=(%.1f,%.1f)\n", id, actor.Ship.Trans.Pos.X, actor.Ship.Trans.Pos.Y)
			}
		case simulation.ActorKindBullet:
			if actor.Bullet != nil {
				fmt.Printf("  bullet %d pos=(%.1f,%.1f)\n", id, actor.Bullet.Trans.Pos.X, actor.Bullet.Trans.Pos.Y)
			}
		default:
			fmt.Printf("  actor  %d kind=%d\n", id, actor.Kind)
		}
	}
}
