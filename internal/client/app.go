package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/fav-sync/internal/adapter"
	"github.com/MKhiriev/fav-sync/internal/config"
	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/utils"
)

// AdapterFactory builds the daemon adapter once the configuration is known.
type AdapterFactory func(cfg config.ClientConfig, log *logger.Logger) (adapter.ServerAdapter, error)

// App is the favsyncctl command tree bound to an adapter.
type App struct {
	newAdapter AdapterFactory
	adapter    adapter.ServerAdapter

	in  io.Reader
	out io.Writer

	logger *logger.Logger

	address    string
	timeout    time.Duration
	configPath string
	asJSON     bool
}

// NewApp creates the CLI. log may be nil, in which case a file logger is
// opened at the configured LogFile before the first command runs.
func NewApp(newAdapter AdapterFactory, in io.Reader, out io.Writer, log *logger.Logger) (*App, error) {
	if newAdapter == nil {
		return nil, ErrNoAdapterFactory
	}
	if out == nil {
		return nil, ErrNoOutput
	}

	return &App{
		newAdapter: newAdapter,
		in:         in,
		out:        out,
		logger:     log,
	}, nil
}

// Run executes args (without the program name). Every invocation gets its
// own trace id, sent to the daemon with each request.
func (a *App) Run(ctx context.Context, args []string) error {
	if _, ok := utils.GetTraceIDFromContext(ctx); !ok {
		ctx = utils.WithTraceID(ctx, utils.NewUUIDGenerator().Generate())
	}

	root := a.command()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.out)

	return root.ExecuteContext(ctx)
}

func (a *App) command() *cobra.Command {
	root := &cobra.Command{
		Use:               "favsyncctl",
		Short:             "Control the favsync daemon",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.connect,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.address, "address", "", "daemon address (default "+config.DefaultAdapterAddress+")")
	flags.DurationVar(&a.timeout, "timeout", 0, "request timeout")
	flags.StringVarP(&a.configPath, "config", "c", "", "config file path (JSON or YAML)")
	flags.BoolVar(&a.asJSON, "json", false, "print results as JSON")

	root.AddCommand(
		a.listCommand(),
		a.usageCommand(),
		a.pagesCommand(),
		a.openCommand(),
		a.closeCommand(),
		a.focusCommand(),
		a.favoritesCommand(),
		a.replaceCommand(),
		a.starCommand(),
		a.uploadCommand(),
		a.versionCommand(),
	)

	return root
}

// connect resolves the configuration and builds the adapter.
func (a *App) connect(cmd *cobra.Command, _ []string) error {
	cfg, err := config.GetClientConfig(&config.StructuredConfig{
		Adapter: config.Adapter{
			HTTPAddress:    a.address,
			RequestTimeout: a.timeout,
		},
		FilePath: a.configPath,
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.SetLevel(cfg.LogLevel)
	if a.logger == nil {
		a.logger = logger.NewFileLogger("favsyncctl", cfg.LogFile)
	}

	a.adapter, err = a.newAdapter(*cfg, a.logger)
	if err != nil {
		return fmt.Errorf("create adapter: %w", err)
	}

	traceID, _ := utils.GetTraceIDFromContext(cmd.Context())
	a.logger.Debug().
		Str("func", "App.connect").
		Str("trace_id", traceID).
		Str("command", cmd.Name()).
		Str("address", cfg.HTTPAddress).
		Msg("adapter ready")
	return nil
}
