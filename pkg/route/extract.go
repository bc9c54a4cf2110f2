package route

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
)

// walk is a frontier entry: start at p and head in dir.
type walk struct {
	p   geom.Point
	dir geom.Direction
}

// Extract decomposes the connected component of points containing start into
// roads.
//
// start must be a corner: a member of points with exactly two orthogonal
// neighbors. Otherwise Extract logs the problem and returns no roads and an
// ErrCodeInvalidStart error.
//
// Walks are processed first-in first-out and share one claimed set, so the
// first walk to reach a point owns it. A walk runs straight until it leaves
// the set or meets a claimed point; every side branch it passes is queued as
// a new walk. The result covers every reachable point exactly once, every
// road is a straight run with at least one point, and the decomposition
// depends only on the set and start. Components not reachable from start
// are ignored.
func Extract(points geom.PointSet, start geom.Point, logger *log.Logger) ([]Road, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if !points.Has(start) {
		logger.Error("route extraction start is not a boundary point", "start", start, "points", points.Len())
		return nil, errors.New(errors.ErrCodeInvalidStart, "start %v is not in the point set", start)
	}
	dirs := points.Neighbors(start)
	if len(dirs) != 2 {
		logger.Error("route extraction start is not a corner", "start", start, "neighbors", len(dirs))
		return nil, errors.New(errors.ErrCodeInvalidStart,
			"start %v has %d orthogonal neighbors, want 2", start, len(dirs))
	}

	frontier := []walk{
		{p: start, dir: dirs[0]},
		{p: start.Step(dirs[1]), dir: dirs[1]},
	}
	claimed := make(geom.PointSet, points.Len())

	var roads []Road
	for len(frontier) > 0 {
		w := frontier[0]
		frontier = frontier[1:]

		var run []geom.Point
		for cur := w.p; points.Has(cur) && !claimed.Has(cur); cur = cur.Step(w.dir) {
			claimed.Add(cur)
			run = append(run, cur)
			for _, o := range w.dir.Orthogonal() {
				if next := cur.Step(o); points.Has(next) {
					frontier = append(frontier, walk{p: next, dir: o})
				}
			}
		}
		if len(run) == 0 {
			continue
		}
		roads = append(roads, Road{points: run})
	}

	logger.Debug("extracted roads", "roads", len(roads), "claimed", claimed.Len(), "points", points.Len())
	return roads, nil
}

// FindCorner returns the first candidate that is a valid [Extract] start:
// a member of points with exactly two orthogonal neighbors. ok is false when
// no candidate qualifies.
func FindCorner(points geom.PointSet, candidates ...geom.Point) (p geom.Point, ok bool) {
	for _, c := range candidates {
		if points.Has(c) && len(points.Neighbors(c)) == 2 {
			return c, true
		}
	}
	return geom.Point{}, false
}
