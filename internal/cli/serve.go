package cli

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/aerolab/skewt/internal/server"
	"github.com/aerolab/skewt/pkg/archive"
	"github.com/aerolab/skewt/pkg/cache"
	"github.com/aerolab/skewt/pkg/config"
	"github.com/aerolab/skewt/pkg/pipeline"
)

// serveCommand creates the serve command: run the HTTP rendering API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	cch, err := buildCache(ctx, cfg)
	if err != nil {
		return err
	}

	store, err := buildArchive(ctx, cfg)
	if err != nil {
		cch.Close()
		return err
	}

	// Server entries live in their own namespace, so a shared backend
	// (redis, or the CLI's file cache dir) never mixes them with ad-hoc
	// command-line runs.
	keyer := cache.NewScopedKeyer(nil, "server:")
	runner := pipeline.NewRunner(cch, keyer, c.Logger)
	defer runner.Close()
	defer store.Close(context.Background())

	srv := server.NewServer(cfg, runner, store, c.Logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout.Duration)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildCache constructs the cache backend selected by the configuration.
func buildCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		return cache.DialRedis(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	case config.CacheNone:
		return cache.NewNullCache(), nil
	default:
		return cache.NewFileCache(cfg.Cache.Dir)
	}
}

// buildArchive constructs the archive backend selected by the configuration.
func buildArchive(ctx context.Context, cfg *config.Config) (archive.Store, error) {
	if cfg.Archive.Backend == config.ArchiveMongo {
		return archive.NewMongoStore(ctx, archive.MongoConfig{
			URI:        cfg.Archive.MongoURI,
			Database:   cfg.Archive.Database,
			Collection: cfg.Archive.Collection,
		})
	}
	return archive.NewMemoryStore(), nil
}
