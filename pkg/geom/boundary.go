package geom

// OuterEdgePoints returns the silhouette of the union of boxes: a boundary
// point of box i survives only if no other box j != i contains it. The
// result does not depend on the order of boxes.
func OuterEdgePoints(boxes []Box) PointSet {
	out := make(PointSet)
	for i, b := range boxes {
		for _, p := range b.AllEdgePoints() {
			if !coveredByOther(boxes, i, p) {
				out.Add(p)
			}
		}
	}
	return out
}

func coveredByOther(boxes []Box, skip int, p Point) bool {
	for j, other := range boxes {
		if j != skip && other.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// EdgePoints returns the boundary points of under that no box in existing
// contains.
func EdgePoints(existing []Box, under Box) PointSet {
	out := make(PointSet)
	for _, p := range under.AllEdgePoints() {
		if !coveredByAny(existing, p) {
			out.Add(p)
		}
	}
	return out
}

func coveredByAny(boxes []Box, p Point) bool {
	for _, b := range boxes {
		if b.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// EdgePointsTopToBottom merges the boundaries of a layered stack, topmost
// first. Box i contributes EdgePoints(ordered[:i], ordered[i]), so a higher
// box's boundary is never trimmed by a lower one.
func EdgePointsTopToBottom(ordered []Box) PointSet {
	out := make(PointSet)
	for i, b := range ordered {
		out.Union(EdgePoints(ordered[:i], b))
	}
	return out
}
