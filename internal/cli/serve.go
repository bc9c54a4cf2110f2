package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadnet/internal/api"
	"github.com/matzehuels/roadnet/pkg/cache"
	"github.com/matzehuels/roadnet/pkg/pipeline"
	"github.com/matzehuels/roadnet/pkg/store"
)

// serveFlags holds flags for the serve command.
type serveFlags struct {
	cache    cacheFlags
	addr     string
	mongoURI string
	database string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	flags := serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the network generation API.

Generated networks are kept in MongoDB when --mongo-uri (or ROADNET_MONGO_URI)
is set and in memory otherwise. Generation results are cached in Redis when
--redis-url (or ROADNET_REDIS_URL) is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&flags.mongoURI, "mongo-uri", "", "MongoDB URI for persistent storage (env "+envMongoURI+")")
	cmd.Flags().StringVar(&flags.database, "database", store.DefaultDatabase, "MongoDB database name")
	flags.cache.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags serveFlags) error {
	var runner *pipeline.Runner
	err := withSpinner(ctx, "Connecting cache...", func() error {
		r, err := c.newRunner(ctx, flags.cache, cache.NewScopedKeyer(nil, "api:"))
		runner = r
		return err
	})
	if err != nil {
		return err
	}
	defer runner.Close()

	st, err := c.newStore(ctx, flags)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}()

	handler := api.NewHandler(runner, st, c.Logger)
	return api.ListenAndServe(ctx, flags.addr, handler.Router(), c.Logger)
}

// newStore connects to MongoDB when configured, else returns a MemoryStore.
func (c *CLI) newStore(ctx context.Context, flags serveFlags) (store.Store, error) {
	uri := flags.mongoURI
	if uri == "" {
		uri = os.Getenv(envMongoURI)
	}
	if uri == "" {
		c.Logger.Warn("no MongoDB configured, networks are kept in memory")
		return store.NewMemoryStore(), nil
	}

	var st store.Store
	err := withSpinner(ctx, "Connecting to MongoDB...", func() error {
		ms, err := store.NewMongoStore(ctx, uri, flags.database)
		if err != nil {
			return err
		}
		st = ms
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using MongoDB store", "database", flags.database)
	return st, nil
}
