package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/roadnet/pkg/cache"
	"github.com/matzehuels/roadnet/pkg/export"
	"github.com/matzehuels/roadnet/pkg/observability"
)

// Runner wraps generation and rendering with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means DefaultKeyer, a nil cache
// disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// GenerateWithCacheInfo generates a network, consulting the cache first
// unless opts.Refresh is set, and reports whether the result was cached.
// A cached result gets a fresh ID and CreatedAt.
// Cache failures are logged and never fail the request.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Cache()
	key := r.Keyer.NetworkKey(opts.KeyOpts())

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		if hit {
			if res, err := UnmarshalRecord(data); err == nil {
				hooks.OnCacheHit(ctx, "network")
				// The network is shared; the run is new.
				res.ID, res.CreatedAt = uuid.New(), time.Now().UTC()
				res.Options.Logger = opts.Logger
				return res, true, nil
			}
			r.Logger.Debug("discarding undecodable cache entry", "key", key)
		}
		hooks.OnCacheMiss(ctx, "network")
	}

	res, err := Generate(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := MarshalRecord(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLNetwork); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, "network", len(data))
		}
	}

	r.Logger.Info("generated network",
		"seed", res.Options.Seed,
		"boxes", res.Stats.Boxes,
		"roads", res.Stats.Roads,
		"cities", res.Stats.Cities)
	return res, false, nil
}

// Generate calls GenerateWithCacheInfo and discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	res, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return res, err
}

// RenderWithCacheInfo renders the topology of res as "dot" or "svg",
// caching by network hash.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, format string) ([]byte, bool, error) {
	if err := export.ValidateFormat(format); err != nil {
		return nil, false, err
	}

	hooks := observability.Cache()
	key := r.Keyer.RenderKey(res.Hash, format)
	if res.Hash != "" {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, "render")
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, "render")
	}

	data, err := export.Render(ctx, res.Network, format)
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", format, err)
	}

	if res.Hash != "" {
		if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err == nil {
			hooks.OnCacheSet(ctx, "render", len(data))
		}
	}
	return data, false, nil
}

// Render calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *Result, format string) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, res, format)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
