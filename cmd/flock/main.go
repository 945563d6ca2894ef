// Command flock runs the simulation without graphics and writes per flock telemetry.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to a .json, .yaml or .toml config (empty = use defaults)")
	schemaPath := flag.String("schema", "", "Path to the config JSON schema (empty = embedded)")
	ticks := flag.Int("ticks", 0, "Ticks to run (0 = use config)")
	seed := flag.Uint64("seed", 0, "Spawn seed (0 = use config)")
	output := flag.String("output", "", "Telemetry CSV file (empty = use config)")
	flag.Parse()

	logger := golog.New(golog.InfoLevel, os.Stdout)

	cfg := simulation.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configPath, *schemaPath); err != nil {
			logger.Fatalf("failed to load config: %v", err)
		}
	}
	if *ticks > 0 {
		cfg.Ticks = *ticks
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *output != "" {
		cfg.Telemetry.Output = *output
	}

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, cfg *simulation.Config, logger golog.Logger) (err error) {
	world, err := simulation.NewWorld(cfg)
	if err != nil {
		return err
	}

	var out *telemetry.Writer
	if cfg.Telemetry.Output != "" {
		if out, err = telemetry.Create(cfg.Telemetry.Output); err != nil {
			return err
		}
		defer func() {
			if cerr := out.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing telemetry: %w", cerr)
			}
		}()
	}

	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return err
	}
	if err := system.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = system.Stop(ctx) }()

	snapshotCh := make(chan *simulation.Snapshot, 1)
	pid, err := system.Spawn(ctx, "world", simulation.NewWorldActor(snapshotCh, world))
	if err != nil {
		return err
	}

	logger.Infof("starting headless simulation: seed=%d ticks=%d dt=%.4f agents=%d",
		cfg.Seed, cfg.Ticks, cfg.Dt, world.AgentCount())

	tick := simulation.Tick(simulation.Seconds(cfg.Dt))
	start := time.Now()
	for i := 0; i < cfg.Ticks; i++ {
		reply, err := actor.Ask(ctx, pid, tick, 5*time.Second)
		if err != nil {
			return err
		}
		snap := <-snapshotCh

		n := reply.(*wrapperspb.UInt64Value).GetValue()
		if out != nil && n%uint64(cfg.Telemetry.Every) == 0 {
			if err := out.WriteSnapshot(snap); err != nil {
				return err
			}
		}
	}

	logger.Infof("max ticks reached: tick=%d simulated=%.2fs wall=%s", world.Tick(), world.Time(), time.Since(start))
	return nil
}
