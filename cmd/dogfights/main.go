// Command dogfights is the CLI surface for the authoritative dogfighting
// server: a local in-process match for development, a dedicated UDP
// server, and a remote AI client. Subcommand shapes mirror the original
// dogfights-local/-server/-remote-ai binaries (original_source/dogfights/).
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dogfights/broker/internal/ai"
	"github.com/dogfights/broker/internal/bots"
	"github.com/dogfights/broker/internal/client"
	"github.com/dogfights/broker/internal/config"
	"github.com/dogfights/broker/internal/logging"
	"github.com/dogfights/broker/internal/match"
	"github.com/dogfights/broker/internal/replay"
	"github.com/dogfights/broker/internal/server"
	"github.com/dogfights/broker/internal/simulation"
	"github.com/dogfights/broker/internal/spectate"
	"github.com/dogfights/broker/internal/worldspec"
)

// stringList accumulates repeated flag occurrences, mirroring the
// original's optmulti("ai", ...).
type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "local":
		err = runLocal(os.Args[2:])
	case "server":
		err = runServer(os.Args[2:])
	case "remote":
		err = runRemote(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dogfights <local|server|remote> [flags]")
}

func loadWorldSpec(path string) (*worldspec.GameSpec, error) {
	if path == "" {
		return worldspec.Default()
	}
	return worldspec.LoadFile(path)
}

// runLocal runs a server and N AI drivers (plus a human, if one is ever
// wired through a Display) all in-process with no UDP, exactly like the
// original's run_local(ais: Vec<String>).
func runLocal(args []string) error {
	fs := flag.NewFlagSet("local", flag.ExitOnError)
	var ais stringList
	fs.Var(&ais, "ai", "AI specifier to add (e.g. follower, follower:3); repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	spec, err := loadWorldSpec(cfg.WorldSpecPath)
	if err != nil {
		return fmt.Errorf("load world spec: %w", err)
	}

	m := match.New(spec, cfg.RingCapacity, cfg.TimeStep(), logger)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	loop := m.Run(ctx, float64(cfg.TickRate))
	defer loop.Stop()

	for _, specifier := range ais {
		driver, err := ai.Parse(specifier)
		if err != nil {
			return fmt.Errorf("parse AI specifier %q: %w", specifier, err)
		}
		go runInProcessAI(ctx, m.Handle(), driver, logger)
	}

	logger.Info("local match running", logging.Int("ai_count", len(ais)))
	<-ctx.Done()
	return nil
}

// runInProcessAI drives an AI directly against an in-process match handle,
// without a network hop, for local mode.
func runInProcessAI(ctx context.Context, handle match.Handle, driver ai.Driver, log *logging.Logger) {
	player, snapshots := handle.Join()
	defer handle.Leave(player)
	for {
		select {
		case <-ctx.Done():
			return
		case game, ok := <-snapshots:
			if !ok {
				return
			}
			in := driver.Move(&simulation.PlayerGame{Player: player, Game: game})
			if err := handle.Send(player, in); err != nil {
				return
			}
			if in.Quit {
				log.Info("local AI quit", logging.Int("player", int(player)))
				return
			}
		}
	}
}

// runServer binds a UDP socket and runs the dedicated, headless
// authoritative server, reconciling a bot population against connected
// humans as they join and leave.
func runServer(args []string) error {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	addr := fs.String("addr", "", "UDP address to bind (overrides DOGFIGHTS_LISTEN_ADDR)")
	botAI := fs.String("bot-ai", "follower", "AI specifier used for reconciled bot players")
	spectateAddr := fs.String("spectate-addr", "", "HTTP address to serve a read-only websocket spectator feed on (disabled if empty)")
	dumpPath := fs.String("dump-path", "", "write a zstd-compressed snapshot history here on shutdown (disabled if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	spec, err := loadWorldSpec(cfg.WorldSpecPath)
	if err != nil {
		return fmt.Errorf("load world spec: %w", err)
	}

	m := match.New(spec, cfg.RingCapacity, cfg.TimeStep(), logger)
	bridge, err := server.New(cfg.ListenAddr, m.Handle(), logger)
	if err != nil {
		return fmt.Errorf("bind udp: %w", err)
	}
	defer bridge.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	loop := m.Run(ctx, float64(cfg.TickRate))
	defer loop.Stop()

	launcher := bots.NewLocalLauncher(m.Handle(), *botAI, logger)
	controller := bots.NewController(bots.ControllerConfig{TargetPopulation: cfg.BotTargetPopulation, Launcher: launcher})
	if err := controller.SetTargetPopulation(ctx, cfg.BotTargetPopulation); err != nil {
		return fmt.Errorf("seed bot population: %w", err)
	}
	go reconcileBotPopulation(ctx, bridge, controller)

	if *spectateAddr != "" {
		spectateSrv := &http.Server{Addr: *spectateAddr, Handler: spectate.NewHandler(m.Handle(), logger)}
		go func() {
			if err := spectateSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("spectate server stopped", logging.Error(err))
			}
		}()
		go func() {
			<-ctx.Done()
			spectateSrv.Close()
		}()
		logger.Info("spectator feed listening", logging.String("addr", *spectateAddr))
	}

	logger.Info("server listening", logging.String("addr", bridge.LocalAddr().String()))
	go func() {
		if err := bridge.Serve(); err != nil {
			logger.Warn("bridge stopped", logging.Error(err))
			cancel()
		}
	}()
	<-ctx.Done()

	if *dumpPath != "" {
		if err := dumpSnapshotHistory(*dumpPath, m.Ring()); err != nil {
			logger.Warn("snapshot dump failed", logging.Error(err))
		} else {
			logger.Info("snapshot history dumped", logging.String("path", *dumpPath))
		}
	}
	return nil
}

// dumpSnapshotHistory writes ring's current history to path as a
// zstd-compressed dump, readable by tools/snapshot_dump.
func dumpSnapshotHistory(path string, ring *replay.Ring) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return replay.DumpZstd(f, ring)
}

// reconcileBotPopulation polls the bridge's connected-peer count and feeds
// it to the controller, since the UDP path has no explicit join/leave
// callback the way an in-process Join/Leave call does.
func reconcileBotPopulation(ctx context.Context, bridge *server.Bridge, controller *bots.Controller) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	last := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			humans := bridge.PeerCount()
			for ; last < humans; last++ {
				if err := controller.HumanConnected(ctx); err != nil {
					return
				}
			}
			for ; last > humans; last-- {
				if err := controller.HumanDisconnected(ctx); err != nil {
					return
				}
			}
		}
	}
}

// runRemote connects to a dedicated server as an AI-driven client. A
// human driver needs a Display backend (spec §1's out-of-scope
// renderer/input-capture collaborator) this binary does not provide.
func runRemote(args []string) error {
	fs := flag.NewFlagSet("remote", flag.ExitOnError)
	serverAddr := fs.String("server", "", "server address to connect to (host:port)")
	port := fs.Int("port", 0, "local UDP port to bind")
	aiSpec := fs.String("ai", "", "AI specifier to drive this connection (required; e.g. follower)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *serverAddr == "" || *aiSpec == "" {
		fs.Usage()
		return fmt.Errorf("remote: --server and --ai are required")
	}

	logger := logging.L()
	driver, err := ai.Parse(*aiSpec)
	if err != nil {
		return fmt.Errorf("parse AI specifier %q: %w", *aiSpec, err)
	}
	localAddr := "127.0.0.1:" + strconv.Itoa(*port)
	return client.RunAI(localAddr, *serverAddr, driver, logger)
}
