package network

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/route"
)

type portAssignment struct {
	dir  geom.Direction
	road route.Road
}

// InsertCity splices city into roads and returns the new road list. Each
// road falls into exactly one case:
//
//   - The city point is not on the road: the road is kept.
//   - The city point is the road's Start or End: the road is replaced by a
//     copy without that point, and the port facing the remaining neighbor
//     receives it. A single-point road equal to the city is dropped.
//   - The city point is strictly inside the road: the road is replaced by
//     two roads running from the city's neighbors out to the original Start
//     and End, on opposite ports. A road shorter than three points is kept
//     as is with a warning.
//
// Ports are checked before any is written, so a port conflict
// (ErrCodePortConflict) leaves city untouched. roads is never modified.
func InsertCity(city *City, roads []route.Road, logger *log.Logger) ([]route.Road, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	out := make([]route.Road, 0, len(roads)+1)
	var pending []portAssignment

	for _, r := range roads {
		i := r.Index(city.Point)
		n := r.Len()

		switch {
		case i < 0:
			out = append(out, r)

		case n == 1:
			logger.Warn("dropping single-point road under city", "city", city.Point)

		case i == 0 || i == n-1:
			var rest route.Road
			var next geom.Point
			if i == 0 {
				rest, next = r.Slice(1, n), r.At(1)
			} else {
				rest, next = r.Slice(0, n-1), r.At(n-2)
			}
			d, ok := geom.DirectionTo(city.Point, next)
			if !ok {
				return nil, errors.New(errors.ErrCodeInternal, "road %v is not a lattice path at %v", r, city.Point)
			}
			pending = append(pending, portAssignment{dir: d, road: rest})
			out = append(out, rest)

		default:
			// Strictly interior, so n >= 3 and both halves are non-empty.
			before := r.Slice(0, i).Reversed()
			after := r.Slice(i+1, n)
			dBefore, ok1 := geom.DirectionTo(city.Point, before.Start())
			dAfter, ok2 := geom.DirectionTo(city.Point, after.Start())
			if !ok1 || !ok2 {
				return nil, errors.New(errors.ErrCodeInternal, "road %v is not a lattice path at %v", r, city.Point)
			}
			pending = append(pending,
				portAssignment{dir: dBefore, road: before},
				portAssignment{dir: dAfter, road: after})
			out = append(out, before, after)
		}
	}

	if err := checkPorts(city, pending); err != nil {
		logger.Error("port conflict", "city", city.Point, "err", err)
		return nil, err
	}
	for _, a := range pending {
		// checkPorts guarantees this succeeds.
		_ = city.Occupy(a.dir, a.road)
	}
	logger.Debug("inserted city", "city", city.Point, "ports", len(pending), "roads", len(out))
	return out, nil
}

func checkPorts(city *City, pending []portAssignment) error {
	staged := *city
	for _, a := range pending {
		if err := staged.Occupy(a.dir, a.road); err != nil {
			return err
		}
	}
	return nil
}
