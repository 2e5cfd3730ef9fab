package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/getregsim/regsim/pkg/config"
	"github.com/getregsim/regsim/pkg/logging"
	"github.com/getregsim/regsim/pkg/sim"
	"github.com/spf13/cobra"
)

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	configPath string
	port       int
	reflection bool
	delayScale float64
	logLevel   string
	logFormat  string
}

var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the registration lifecycle simulator",
	Long: `Start the registration lifecycle simulator.

The simulator binds its own port, distinct from the declarative mock
engine, and runs in the foreground until SIGTERM/SIGINT. On shutdown,
in-flight registration streams are terminated with an explicit error
within the configured grace period.`,
	Example: `  # Start with defaults
  regsim serve

  # Start from a config file on a custom port
  regsim serve --config regsim.yaml --port 51000

  # Compress script delays for fast CI runs
  regsim serve --delay-scale 0.1

  # JSON logs for CI parsing
  regsim serve --log-format json`,
	RunE: runServe,
}

func init() {
	f := &serveFlagVals

	serveCmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to config file (YAML or JSON)")
	serveCmd.Flags().IntVarP(&f.port, "port", "p", sim.DefaultPort, "Simulator port (0 = OS auto-assign)")
	serveCmd.Flags().BoolVar(&f.reflection, "reflection", true, "Enable gRPC server reflection")
	serveCmd.Flags().Float64Var(&f.delayScale, "delay-scale", 1.0, "Scale factor for inter-phase delays")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	f := &serveFlagVals

	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.LoadFromFile(f.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags override the config file when set explicitly.
	if cmd.Flags().Changed("port") {
		cfg.Sim.Port = f.port
	}
	if cmd.Flags().Changed("reflection") {
		cfg.Sim.Reflection = f.reflection
	}
	if cmd.Flags().Changed("delay-scale") {
		cfg.Sim.DelayScale = f.delayScale
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	grace, err := cfg.ParseShutdownGrace()
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: logging.ParseFormat(cfg.Log.Format),
	})

	srv, err := sim.NewServer(&cfg.Sim)
	if err != nil {
		return fmt.Errorf("failed to create simulator: %w", err)
	}
	srv.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start simulator: %w", err)
	}

	log.Info("simulator serving",
		"addr", srv.Address(),
		"delayScale", cfg.Sim.DelayScale,
		"shutdownGrace", grace.String(),
	)

	<-ctx.Done()
	log.Info("shutting down simulator", "grace", grace.String())

	return srv.Stop(context.Background(), grace)
}
