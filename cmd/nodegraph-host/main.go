// Command nodegraph-host loads a serialized node graph and runs it
// headless, block by block, with every loaded node registered as a sink,
// logging start-up, load and shutdown. A UI or a live PortAudio-backed runner
// (see the device package) drives the same schema/group API this command
// does.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"zikichombo.org/sound"
	"zikichombo.org/sound/freq"

	"github.com/wiresound/nodegraph/device"
	"github.com/wiresound/nodegraph/group"
	"github.com/wiresound/nodegraph/ops"
	"github.com/wiresound/nodegraph/schema"
	"github.com/wiresound/nodegraph/serialize"
)

func main() {
	if err := run(); err != nil {
		log.Fatal("nodegraph-host exiting", "err", err)
	}
}

func run() error {
	var (
		configPath = pflag.StringP("config", "c", "", "path to a YAML config file")
		graphPath  = pflag.StringP("graph", "g", "", "path to a serialized graph JSON file (overrides config)")
		sampleRate = pflag.Int("sample-rate", 0, "sample rate in Hz (overrides config)")
		blockSize  = pflag.Int32("block-size", 0, "samples per process block (overrides config)")
		logLevel   = pflag.String("log-level", "", "debug|info|warn|error (overrides config)")
		blocks     = pflag.Int("blocks", 0, "number of blocks to run, 0 = run until interrupted")
	)
	pflag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *graphPath != "" {
		cfg.GraphFile = *graphPath
	}
	if *sampleRate != 0 {
		cfg.SampleRate = *sampleRate
	}
	if *blockSize != 0 {
		cfg.BlockSize = *blockSize
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	logger.SetLevel(parseLevel(cfg.LogLevel))
	log.SetDefault(logger)

	runID := uuid.New()
	log.Info("starting nodegraph-host", "runId", runID, "sampleRate", cfg.SampleRate, "blockSize", cfg.BlockSize)

	s := schema.New()
	s.RegisterDefaults()

	g := group.New("root")

	if cfg.GraphFile != "" {
		data, err := os.ReadFile(cfg.GraphFile)
		if err != nil {
			return fmt.Errorf("read graph file: %w", err)
		}
		archive, err := serialize.Unmarshal(data)
		if err != nil {
			return fmt.Errorf("parse graph file: %w", err)
		}
		idMap, err := serialize.Load(s, archive)
		if err != nil {
			return fmt.Errorf("load graph: %w", err)
		}
		log.Info("loaded graph", "nodes", len(idMap))
		for _, n := range s.Nodes() {
			g.AddNode(n)
			g.AddSink(n)
		}
	} else {
		log.Warn("no --graph specified; running a small demo graph")
		demo(s, g, cfg.SampleRate)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ticker := time.NewTicker(time.Second / time.Duration(max1(cfg.UpdateRateHz)))
	defer ticker.Stop()

	var block int
	var tickCount uint64
	for {
		select {
		case <-ctx.Done():
			log.Info("interrupted, shutting down", "blocksProcessed", block)
			return nil
		case <-ticker.C:
			tickCount++
			g.Tick(tickCount, 1.0/float32(cfg.UpdateRateHz))
			g.ProcessSubgraph(cfg.BlockSize)
			block++
			if *blocks > 0 && block >= *blocks {
				log.Info("reached requested block count, exiting", "blocks", block)
				return nil
			}
		}
	}
}

func max1(v int) int {
	if v <= 0 {
		return 1
	}
	return v
}

func parseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// demo builds a tiny Lowpass-filtered Sine2 graph terminating in a Speaker
// bound to a mono ring at the configured sample rate, so the host has
// something to run when invoked without --graph.
func demo(s *schema.Schema, g *group.Group, sampleRateHz int) {
	form := sound.NewForm(freq.T(sampleRateHz)*freq.Hertz, 1)
	ring := device.NewRing(form, 4096)

	sine, _ := s.NewNode(ops.TypeSine2)
	lp, _ := s.NewNode(ops.TypeLowpass)
	lp.SetInputNode(1, sine, 0)

	speaker := ops.NewSpeaker(0, ring)
	speaker.SetInputNode(0, lp, 0)

	g.AddNode(sine)
	g.AddNode(lp)
	g.AddNode(speaker)
	g.AddSink(speaker)
}
