package footprint

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/random"
)

// DefaultMaxAttempts bounds the candidate draws per placed box.
const DefaultMaxAttempts = 100

// PlaceOptions tunes box placement.
type PlaceOptions struct {
	// MaxAttempts is the retry budget per box (default DefaultMaxAttempts).
	MaxAttempts int
	// YUp is the orientation flag given to placed boxes.
	YUp bool
	// Logger receives debug output; nil discards it.
	Logger *log.Logger
}

func (o PlaceOptions) attempts() int {
	if o.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return o.MaxAttempts
}

// Place returns a w×h box centered on a random point of the stack's outer
// boundary. A candidate is rejected when it would sit exactly one unit away
// from an existing box; overlapping and edge-sharing candidates are fine.
//
// An empty outline fails with ErrCodeNoBoundary and an exhausted retry budget
// with ErrCodePlacementExhausted. There is no fallback placement.
func Place(src random.Source, f Footprint, w, h int, opts PlaceOptions) (geom.Box, error) {
	logger := loggerOrDiscard(opts.Logger)

	anchors := f.Outline().Sorted()
	if len(anchors) == 0 {
		return geom.Box{}, errors.New(errors.ErrCodeNoBoundary, "footprint of %d boxes has no outer edge points", f.Len())
	}

	for attempt := 1; attempt <= opts.attempts(); attempt++ {
		center := random.Pick(src, anchors)
		candidate := geom.BoxFromCenter(center, w, h, opts.YUp)
		if !touchesAny(candidate, f.boxes) {
			logger.Debug("placed box", "box", candidate, "attempt", attempt)
			return candidate, nil
		}
	}
	return geom.Box{}, errors.New(errors.ErrCodePlacementExhausted,
		"no %dx%d placement found after %d attempts", w, h, opts.attempts())
}

func touchesAny(candidate geom.Box, boxes []geom.Box) bool {
	for _, b := range boxes {
		if candidate.IsEdgeTouching(b) {
			return true
		}
	}
	return false
}

// Sizer picks the dimensions of the next box to place.
type Sizer func(src random.Source) (w, h int)

// FixedSize returns a Sizer that always yields w×h.
func FixedSize(w, h int) Sizer {
	return func(random.Source) (int, int) { return w, h }
}

// ScaledSize returns a Sizer that scales w×h by a uniform factor in
// [lo, hi), never going below 1.
func ScaledSize(w, h int, lo, hi float64) Sizer {
	return func(src random.Source) (int, int) {
		s := src.FloatRange(lo, hi)
		return max(1, int(float64(w)*s)), max(1, int(float64(h)*s))
	}
}

// Grow places count additional boxes beneath f, one at a time, each anchored
// on the outline of the stack so far. The first failure aborts the whole
// growth; no partial footprint is returned.
func Grow(src random.Source, f Footprint, count int, size Sizer, opts PlaceOptions) (Footprint, error) {
	for i := 0; i < count; i++ {
		w, h := size(src)
		b, err := Place(src, f, w, h, opts)
		if err != nil {
			return Footprint{}, err
		}
		f = f.With(b)
	}
	return f, nil
}

var discardLogger = log.New(io.Discard)

func loggerOrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return discardLogger
	}
	return l
}
