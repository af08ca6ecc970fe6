package command

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/synchro-systems/synchro/adapter"
	"github.com/synchro-systems/synchro/clock"
	"github.com/synchro-systems/synchro/config"
	"github.com/synchro-systems/synchro/interpreter"
	"github.com/synchro-systems/synchro/logging"
	"github.com/synchro-systems/synchro/rpc"
	"github.com/synchro-systems/synchro/value"
)

func wallNow() clock.Wall {
	return clock.NewWall(time.Now())
}

func newRunCommand() *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "run <config>",
		Short: "run the interpreter against configured platform adapters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMain(cmd.Context(), args[0], metricsAddr)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "address to serve Prometheus metrics on")
	return cmd
}

func runMain(ctx context.Context, configPath, metricsAddr string) error {
	root, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logging.New()
	if err != nil {
		return fmt.Errorf("synchrod: building logger: %w", err)
	}
	defer log.Sync()

	reg := prometheus.NewRegistry()

	interp := interpreter.New[clock.Wall](interpreter.Config{
		SeedValue:                  root.SeedValue(),
		Horizon:                    root.PruneHorizon,
		ObservationChannelCapacity: root.ObservationChannelCapacity,
	}, log, reg, "synchro", wallNow)

	var g run.Group

	runCtx, cancel := context.WithCancel(ctx)
	g.Add(func() error {
		return interp.Run(runCtx)
	}, func(error) {
		cancel()
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	listener, err := net.Listen("tcp", metricsAddr)
	if err != nil {
		return fmt.Errorf("synchrod: binding metrics listener: %w", err)
	}
	server := &http.Server{Handler: mux}
	g.Add(func() error {
		return server.Serve(listener)
	}, func(error) {
		_ = server.Close()
	})

	for _, a := range root.Adapters {
		a := a
		adp, err := buildAdapter(a, interp, log)
		if err != nil {
			return fmt.Errorf("synchrod: building adapter %q: %w", a.SourceID, err)
		}
		adapterCtx, adapterCancel := context.WithCancel(runCtx)
		g.Add(func() error {
			return adp.Run(adapterCtx)
		}, func(error) {
			adapterCancel()
		})
	}

	log.Infow("synchrod starting", "adapters", len(root.Adapters), "metrics_addr", metricsAddr)
	return g.Run()
}

// buildAdapter connects to the remote platform named by a.Platform["target"]
// over gRPC and wraps it as an adapter.Adapter. Every configured adapter
// speaks the safe-polling contract of spec §6 over rpc.SafePollingClient;
// platforms with other wire shapes get their own adapter.Source/Writer
// implementations wired in here the same way.
func buildAdapter(a config.AdapterConfig, interp *interpreter.Interpreter[clock.Wall], log logging.Logger) (*adapter.Adapter, error) {
	target, _ := a.Platform["target"].(string)
	if target == "" {
		return nil, fmt.Errorf("adapter %q missing platform.target", a.SourceID)
	}

	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", target, err)
	}

	client := &rpc.ClientAdapter{SourceID: a.SourceID, Client: rpc.NewSafePollingClient(conn)}

	interpretation, err := a.ParseInterpretation()
	if err != nil {
		return nil, err
	}
	writeMode, err := a.WriteModeValue()
	if err != nil {
		return nil, err
	}

	pollInterval := a.PollInterval
	if pollInterval <= 0 {
		pollInterval = time.Second
	}

	var guard adapter.GuardedWriter
	if writeMode == adapter.WriteModeGuarded {
		guard = client
	}

	return adapter.New(adapter.Config{
		SourceID:       a.SourceID,
		Interpretation: interpretation,
		WriteMode:      writeMode,
		PollInterval:   pollInterval,
	}, client, nil, guard, interp, log, value.Zero), nil
}
