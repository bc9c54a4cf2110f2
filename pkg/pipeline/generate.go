package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/roadnet/pkg/cache"
	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/footprint"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/network"
	"github.com/matzehuels/roadnet/pkg/observability"
	"github.com/matzehuels/roadnet/pkg/random"
	"github.com/matzehuels/roadnet/pkg/route"
)

// Generate runs the full pipeline. The same options always produce the same
// network; only Result.ID and the timings differ between runs.
//
// ctx is checked between stages. Any stage failure fails the whole run and
// no partial network is returned.
func Generate(ctx context.Context, opts Options) (result *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	hooks := observability.Generation()

	began := time.Now()
	hooks.OnGenerateStart(ctx, opts.Seed)
	defer func() {
		var roads, cities int
		if result != nil {
			roads, cities = result.Stats.Roads, result.Stats.Cities
		}
		hooks.OnGenerateComplete(ctx, opts.Seed, roads, cities, time.Since(began), err)
	}()

	src := random.NewPCG(opts.Seed)
	result = &Result{ID: uuid.New(), Options: opts, CreatedAt: time.Now().UTC()}

	// Stage 1: Footprint
	stageStart := time.Now()
	f, err := buildFootprint(src, opts)
	if err != nil {
		return nil, fmt.Errorf("footprint: %w", err)
	}
	result.Footprint = f
	result.Stats.Boxes = f.Len()
	result.Stats.FootprintTime = time.Since(stageStart)
	hooks.OnStageComplete(ctx, "footprint", result.Stats.FootprintTime)
	logger.Debug("built footprint", "boxes", f.Len(), "bounds", f.Bounds(), "duration", result.Stats.FootprintTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Routes
	stageStart = time.Now()
	boundary := f.Boundary()
	start, ok := route.FindCorner(boundary, startCandidates(f)...)
	if !ok {
		return nil, errors.New(errors.ErrCodeNoBoundary, "no corner on the outline of the top box")
	}
	roads, err := route.Extract(boundary, start, logger)
	if err != nil {
		return nil, fmt.Errorf("routes: %w", err)
	}
	result.Start = start
	result.Stats.RouteTime = time.Since(stageStart)
	hooks.OnStageComplete(ctx, "routes", result.Stats.RouteTime)
	logger.Debug("extracted routes", "start", start, "boundary", boundary.Len(), "roads", len(roads), "duration", result.Stats.RouteTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Cities
	stageStart = time.Now()
	net := network.New(roads)
	if err := placeCities(src, net, opts, logger); err != nil {
		return nil, fmt.Errorf("cities: %w", err)
	}
	if err := net.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "generated network is inconsistent")
	}
	result.Network = net
	result.Stats.CityTime = time.Since(stageStart)
	hooks.OnStageComplete(ctx, "cities", result.Stats.CityTime)

	result.Stats.Stats = net.Stats()
	if data, err := json.Marshal(net); err == nil {
		result.Hash = cache.Hash(data)
	}

	logger.Debug("placed cities", "cities", len(net.Cities), "roads", len(net.Roads), "duration", result.Stats.CityTime)
	return result, nil
}

func buildFootprint(src random.Source, opts Options) (footprint.Footprint, error) {
	if len(opts.Stack) > 0 {
		return footprint.New(opts.StackBoxes()...), nil
	}

	seed := geom.BoxFromTopLeft(geom.Pt(0, 0), opts.Width, opts.Height, opts.YUp)
	return footprint.Grow(src, footprint.New(seed), opts.Boxes-1,
		footprint.ScaledSize(opts.Width, opts.Height, opts.MinScale, opts.MaxScale),
		footprint.PlaceOptions{MaxAttempts: opts.MaxAttempts, YUp: opts.YUp, Logger: opts.Logger})
}

// startCandidates lists the top box's corners followed by the rest of its
// outer edge points in row-major order. Only the top box is consulted; the
// routing boundary comes from the whole stack.
func startCandidates(f footprint.Footprint) []geom.Point {
	top, ok := f.Top()
	if !ok {
		return nil
	}
	corners := top.Corners()
	out := corners[:]
	for _, p := range geom.OuterEdgePoints([]geom.Box{top}).Sorted() {
		if !slices.Contains(corners[:], p) {
			out = append(out, p)
		}
	}
	return out
}

// cityCandidates returns the Start and End of every road with at least three
// points, deduplicated and row-major sorted.
func cityCandidates(roads []route.Road) []geom.Point {
	set := geom.NewPointSet()
	for _, r := range roads {
		if r.Len() >= 3 {
			set.Add(r.Start())
			set.Add(r.End())
		}
	}
	return set.Sorted()
}

// placeCities adds up to opts.Cities cities at random candidates that keep
// opts.MinCitySpacing from every existing city. Running out of candidates
// ends placement early; it is not an error.
func placeCities(src random.Source, net *network.Network, opts Options, logger *log.Logger) error {
	for len(net.Cities) < opts.Cities {
		eligible := slices.DeleteFunc(cityCandidates(net.Roads), func(p geom.Point) bool {
			return tooClose(net.Cities, p, opts.MinCitySpacing)
		})
		if len(eligible) == 0 {
			logger.Warn("ran out of city candidates", "placed", len(net.Cities), "requested", opts.Cities)
			return nil
		}
		p := random.Pick(src, eligible)
		if _, err := net.AddCity(p, logger); err != nil {
			return err
		}
	}
	return nil
}

func tooClose(cities []*network.City, p geom.Point, spacing int) bool {
	for _, c := range cities {
		if c.Point.Manhattan(p) < spacing {
			return true
		}
	}
	return false
}
