package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

func TestRun_WritesTelemetry(t *testing.T) {
	cfg := simulation.DefaultConfig()
	cfg.Flocks[0].Count = 8
	cfg.Flocks[1].Count = 4
	cfg.Ticks = 6
	cfg.Telemetry.Every = 3
	cfg.Telemetry.Output = filepath.Join(t.TempDir(), "telemetry.csv")

	if err := run(context.Background(), cfg, golog.DiscardLogger); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	b, err := os.ReadFile(cfg.Telemetry.Output)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	// header + 2 sampled ticks x 2 flocks
	if lines := bytes.Count(b, []byte("\n")); lines != 5 {
		t.Errorf("telemetry has %d lines, want 5:\n%s", lines, b)
	}
}

func TestRun_BadWorld(t *testing.T) {
	cfg := simulation.DefaultConfig()
	cfg.Templates[0].Behavior = "rock"
	if err := run(context.Background(), cfg, golog.DiscardLogger); err == nil {
		t.Error("run() error = nil, want missing behaviour")
	}
}
