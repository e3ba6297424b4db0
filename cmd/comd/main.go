// comd runs a descriptor table on a fixed-rate scheduler over an in-process
// loopback bus: transmitted PDUs are routed back as reception indications by
// lower-layer id. It exists to exercise a table end to end without real bus
// hardware.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autosoc/comstack/internal/com"
	"github.com/autosoc/comstack/internal/config"
	"github.com/autosoc/comstack/internal/logging"
	"github.com/autosoc/comstack/internal/transport"
)

func main() {
	configPath := flag.String("config", "cmd/comd/config.toml", "descriptor table path")
	period := flag.Duration("period", 10*time.Millisecond, "scheduler tick period")
	flag.Parse()

	logger := logging.New("comd")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load descriptor table")
	}
	logger.Info().Str("path", *configPath).Int("pdus", len(cfg.PDUs)).
		Int("signals", len(cfg.Signals)).Msg("loaded descriptor table")

	bus := transport.NewLoopback(256)
	stack := com.New(cfg, com.WithTransport(bus), com.WithLogger(logger))

	// Lower-layer routing: deliver loopback frames to the inbound PDU
	// declaring the matching id.
	routes := make(map[uint32]com.PDUID)
	for i := range cfg.PDUs {
		if cfg.PDUs[i].Rx != nil {
			routes[cfg.PDUs[i].Rx.LowerID] = com.PDUID(i)
		}
	}

	for g := 0; g < cfg.NumGroups; g++ {
		if err := stack.GroupStart(com.GroupID(g), true); err != nil {
			logger.Fatal().Err(err).Int("group", g).Msg("failed to start group")
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for f := range bus.Frames() {
			id, ok := routes[f.ID]
			if !ok {
				logger.Debug().Uint32("id", f.ID).Msg("no inbound route, frame dropped")
				continue
			}
			stack.RxIndication(id, f.Payload)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*period)
	defer ticker.Stop()
	logger.Info().Dur("period", *period).Msg("scheduler running")

	for {
		select {
		case <-ticker.C:
			stack.Tick()
		case sig := <-stop:
			logger.Info().Str("signal", sig.String()).Msg("shutting down")
			bus.Close()
			<-done
			return
		}
	}
}
