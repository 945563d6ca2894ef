// Command viewer renders the simulation in a window, with a panel to orbit the camera.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

func main() {
	configPath := flag.String("config", "", "Path to a .json, .yaml or .toml config (empty = use defaults)")
	schemaPath := flag.String("schema", "", "Path to the config JSON schema (empty = embedded)")
	flag.Parse()

	ctx := context.Background()

	cfg := simulation.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configPath, *schemaPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	world, err := simulation.NewWorld(cfg)
	if err != nil {
		log.Fatalf("Failed to build world: %v", err)
	}

	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(golog.DiscardLogger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		log.Fatal(err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer system.Stop(ctx)

	game, err := NewGame(ctx, cfg, world, system)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.Viewer.Width, cfg.Viewer.Height)
	ebiten.SetWindowTitle("Flock")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
