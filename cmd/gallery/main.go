package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harrylevesque/gallery/internal/api"
	"github.com/harrylevesque/gallery/internal/certs"
	"github.com/harrylevesque/gallery/internal/config"
	"github.com/harrylevesque/gallery/internal/utils"
)

// app carries state shared by all subcommands.
type app struct {
	configPath string
	server     string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// errReported marks failures that were already logged or shown.
var errReported = errors.New("reported")

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gallery",
		Short: "Browse, upload and delete images on a gallery service",
		Long: `gallery is a client for an image gallery service.

It lists the images the service holds, deletes them by id, uploads new
images after checking their type and size locally, and can cycle a
folder of images as a slideshow.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", utils.GetConfigPath(), "Path to the YAML config file")
	root.PersistentFlags().StringVarP(&a.server, "server", "s", "", "Override server base URL (e.g. https://gallery.example.com)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newListCmd(a),
		newDeleteCmd(a),
		newUploadCmd(a),
		newSlideshowCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.server != "" {
		cfg.Server = a.server
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	level := cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	logger, err := utils.NewLogger(level, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) client() (*api.Client, error) {
	opts := []api.Option{
		api.WithTimeout(a.cfg.HTTP.Timeout),
		api.WithRateLimit(a.cfg.HTTP.RequestsPerSecond),
		api.WithLogger(a.logger.Named("api")),
	}
	if a.cfg.HTTP.CADir != "" {
		pool, expired, err := certs.NewCertManager(a.cfg.HTTP.CADir).Pool()
		if err != nil {
			return nil, fmt.Errorf("load ca certificates: %w", err)
		}
		for _, c := range expired {
			a.logger.Warn("skipping expired ca certificate",
				zap.String("subject", c.Subject.String()),
				zap.Time("not_after", c.NotAfter))
		}
		opts = append(opts, api.WithRootCAs(pool))
	}
	return api.NewClient(a.cfg.Server, opts...), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
