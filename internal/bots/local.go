package bots

import (
	"context"
	"sync"

	"github.com/dogfights/broker/internal/ai"
	"github.com/dogfights/broker/internal/logging"
	"github.com/dogfights/broker/internal/match"
	"github.com/dogfights/broker/internal/simulation"
)

// LocalLauncher spawns AI-driven players directly into an in-process
// match, replacing the teacher's HTTP call to a remote bot fleet. Each bot
// is a goroutine running the standard AI driver loop (recv snapshot, call
// the strategy, send input) against the match's own Join/Send, exactly
// like a remote AI client would, minus the network hop.
type LocalLauncher struct {
	handle match.Handle
	spec   string
	log    *logging.Logger

	mu     sync.Mutex
	active []context.CancelFunc
}

// NewLocalLauncher returns a Launcher that spawns bots running the AI
// strategy named by spec (e.g. "follower") against handle.
func NewLocalLauncher(handle match.Handle, spec string, log *logging.Logger) *LocalLauncher {
	if log == nil {
		log = logging.L()
	}
	return &LocalLauncher{handle: handle, spec: spec, log: log}
}

// Scale adjusts the number of running bots to target, spawning or
// cancelling sessions as needed, and returns the confirmed count.
func (l *LocalLauncher) Scale(ctx context.Context, target int) (int, error) {
	if target < 0 {
		target = 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for len(l.active) < target {
		botCtx, cancel := context.WithCancel(ctx)
		l.active = append(l.active, cancel)
		go l.run(botCtx)
	}
	for len(l.active) > target {
		n := len(l.active) - 1
		l.active[n]()
		l.active = l.active[:n]
	}
	return len(l.active), nil
}

// run drives one bot's lifetime: join, parse the strategy fresh per bot
// (a Follower specifier may name a distinct actor to track), then loop
// recv->Move->Send until ctx is cancelled or the subscriber channel closes.
func (l *LocalLauncher) run(ctx context.Context) {
	driver, err := ai.Parse(l.spec)
	if err != nil {
		l.log.Error("bot: invalid AI specifier", logging.String("spec", l.spec), logging.Error(err))
		return
	}
	player, snapshots := l.handle.Join()
	l.log.Info("bot joined", logging.Int("player", int(player)))
	defer l.handle.Leave(player)

	for {
		select {
		case <-ctx.Done():
			return
		case game, ok := <-snapshots:
			if !ok {
				return
			}
			in := driver.Move(&simulation.PlayerGame{Player: player, Game: game})
			if err := l.handle.Send(player, in); err != nil {
				return
			}
			if in.Quit {
				return
			}
		}
	}
}
