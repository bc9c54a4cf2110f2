// Package pipeline runs road network generation end to end.
//
// This package implements the footprint → routes → cities pipeline used by
// the CLI and the HTTP API. By centralizing it, both entry points produce
// byte-identical networks for the same options.
//
// # Architecture
//
// Generation runs in three stages, all driven by one seeded random source:
//
//  1. Footprint: start from a seed box and grow a stack of overlapping boxes
//     (or take an explicit stack from the options)
//  2. Routes: extract the layered boundary and decompose it into roads
//  3. Cities: splice junctions into the roads at spaced road ends
//
// # Usage
//
// One-shot generation:
//
//	result, err := pipeline.Generate(ctx, pipeline.Options{Seed: 7, Cities: 5})
//
// With caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, hit, err := runner.GenerateWithCacheInfo(ctx, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/roadnet/pkg/cache"
	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/footprint"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/network"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultBoxes is the number of boxes in a generated footprint.
	DefaultBoxes = 4

	// DefaultWidth and DefaultHeight are the seed box dimensions.
	DefaultWidth  = 20
	DefaultHeight = 12

	// DefaultMinScale and DefaultMaxScale bound the size of grown boxes
	// relative to the seed box.
	DefaultMinScale = 0.5
	DefaultMaxScale = 1.0

	// DefaultCities is the number of cities to place.
	DefaultCities = 4

	// DefaultMinCitySpacing is the minimum Manhattan distance between cities.
	DefaultMinCitySpacing = 3

	// MaxBoxes caps Boxes; the boundary computation is quadratic in it.
	MaxBoxes = 64

	// MaxDimension caps Width and Height.
	MaxDimension = 1000
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// BoxSpec is a box given by two opposite corners.
type BoxSpec struct {
	Left   int `json:"left" toml:"left" bson:"left"`
	Top    int `json:"top" toml:"top" bson:"top"`
	Right  int `json:"right" toml:"right" bson:"right"`
	Bottom int `json:"bottom" toml:"bottom" bson:"bottom"`
}

// Box returns the normalized box for these corners.
func (s BoxSpec) Box(yUp bool) geom.Box {
	return geom.NewBox(geom.Pt(s.Left, s.Top), geom.Pt(s.Right, s.Bottom), yUp)
}

// SpecOf is the inverse of [BoxSpec.Box].
func SpecOf(b geom.Box) BoxSpec {
	return BoxSpec{Left: b.Left, Top: b.Top, Right: b.Right, Bottom: b.Bottom}
}

// Options contains all configuration for a generation run. It supports JSON
// for API requests and TOML for config files.
type Options struct {
	Seed           uint64  `json:"seed,omitempty" toml:"seed" bson:"seed"`
	Boxes          int     `json:"boxes,omitempty" toml:"boxes" bson:"boxes"`
	Width          int     `json:"width,omitempty" toml:"width" bson:"width"`
	Height         int     `json:"height,omitempty" toml:"height" bson:"height"`
	MinScale       float64 `json:"min_scale,omitempty" toml:"min_scale" bson:"min_scale"`
	MaxScale       float64 `json:"max_scale,omitempty" toml:"max_scale" bson:"max_scale"`
	Cities         int     `json:"cities,omitempty" toml:"cities" bson:"cities"`
	MinCitySpacing int     `json:"min_city_spacing,omitempty" toml:"min_city_spacing" bson:"min_city_spacing"`
	YUp            bool    `json:"y_up,omitempty" toml:"y_up" bson:"y_up"`
	MaxAttempts    int     `json:"max_attempts,omitempty" toml:"max_attempts" bson:"max_attempts"`

	// Stack is an explicit footprint, topmost first. When set, Boxes,
	// Width, Height and the scales are ignored.
	Stack []BoxSpec `json:"stack,omitempty" toml:"box" bson:"stack,omitempty"`

	// NoCities disables city placement even though Cities is zero-defaulted.
	NoCities bool `json:"no_cities,omitempty" toml:"no_cities" bson:"no_cities,omitempty"`

	// Runtime options (not serialized)
	Refresh bool        `json:"-" toml:"-" bson:"-"`
	Logger  *log.Logger `json:"-" toml:"-" bson:"-"`

	validated bool
}

// Result is the output of a generation run.
type Result struct {
	// ID identifies this run; it is random, unlike everything else here.
	ID uuid.UUID

	// Options are the options after defaults were applied.
	Options Options

	Footprint footprint.Footprint
	Network   *network.Network

	// Start is the corner route extraction began at.
	Start geom.Point

	// Hash is the content hash of the serialized network.
	Hash string

	Stats Stats

	CreatedAt time.Time
}

// Stats contains generation statistics.
type Stats struct {
	network.Stats
	Boxes         int
	FootprintTime time.Duration
	RouteTime     time.Duration
	CityTime      time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero fields with defaults.
func (o *Options) SetDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Boxes == 0 {
		o.Boxes = DefaultBoxes
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	// One-sided scale bounds widen the default range to stay ordered.
	if o.MaxScale == 0 {
		o.MaxScale = max(DefaultMaxScale, o.MinScale)
	}
	if o.MinScale == 0 {
		o.MinScale = min(DefaultMinScale, o.MaxScale)
	}
	if o.Cities == 0 && !o.NoCities {
		o.Cities = DefaultCities
	}
	if o.MinCitySpacing == 0 {
		o.MinCitySpacing = DefaultMinCitySpacing
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = footprint.DefaultMaxAttempts
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks ranges. Call SetDefaults first.
func (o *Options) Validate() error {
	checks := []error{
		errors.ValidateRange("boxes", o.Boxes, 1, MaxBoxes),
		errors.ValidateRange("width", o.Width, 1, MaxDimension),
		errors.ValidateRange("height", o.Height, 1, MaxDimension),
		errors.ValidateScale("scale", o.MinScale, o.MaxScale),
		errors.ValidateNonNegative("cities", o.Cities),
		errors.ValidateNonNegative("min_city_spacing", o.MinCitySpacing),
		errors.ValidatePositive("max_attempts", o.MaxAttempts),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if len(o.Stack) > MaxBoxes {
		return errors.New(errors.ErrCodeInvalidInput, "stack has %d boxes, max %d", len(o.Stack), MaxBoxes)
	}
	for i, s := range o.Stack {
		if s.Left == s.Right || s.Top == s.Bottom {
			return errors.New(errors.ErrCodeInvalidInput, "stack box %d has zero width or height", i)
		}
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// StackBoxes returns the explicit stack as boxes.
func (o *Options) StackBoxes() []geom.Box {
	boxes := make([]geom.Box, len(o.Stack))
	for i, s := range o.Stack {
		boxes[i] = s.Box(o.YUp)
	}
	return boxes
}

// KeyOpts returns cache key options.
func (o *Options) KeyOpts() cache.NetworkKeyOpts {
	k := cache.NetworkKeyOpts{
		Seed:           o.Seed,
		Boxes:          o.Boxes,
		Width:          o.Width,
		Height:         o.Height,
		MinScale:       o.MinScale,
		MaxScale:       o.MaxScale,
		Cities:         o.Cities,
		MinCitySpacing: o.MinCitySpacing,
		YUp:            o.YUp,
		MaxAttempts:    o.MaxAttempts,
	}
	for _, s := range o.Stack {
		k.Stack = append(k.Stack, [4]int{s.Left, s.Top, s.Right, s.Bottom})
	}
	return k
}
