package network

import (
	"encoding/json"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/route"
)

// Document is the serialized form of a Network. Roads are point lists and
// city ports refer to roads by index.
type Document struct {
	Roads  [][][2]int     `json:"roads" bson:"roads"`
	Cities []CityDocument `json:"cities" bson:"cities"`
}

// CityDocument is the serialized form of a City. Ports maps direction names
// ("north", "east", ...) to indices into Document.Roads.
type CityDocument struct {
	X     int            `json:"x" bson:"x"`
	Y     int            `json:"y" bson:"y"`
	Ports map[string]int `json:"ports,omitempty" bson:"ports,omitempty"`
}

// Document converts n to its serialized form. Ports holding a road that is
// not in n.Roads are omitted.
func (n *Network) Document() Document {
	doc := Document{
		Roads:  make([][][2]int, len(n.Roads)),
		Cities: make([]CityDocument, len(n.Cities)),
	}
	for i, r := range n.Roads {
		pts := make([][2]int, r.Len())
		for j := range pts {
			p := r.At(j)
			pts[j] = [2]int{p.X, p.Y}
		}
		doc.Roads[i] = pts
	}
	for i, c := range n.Cities {
		cd := CityDocument{X: c.Point.X, Y: c.Point.Y}
		for _, d := range c.OccupiedPorts() {
			r, _ := c.Port(d)
			idx := indexOf(n.Roads, r)
			if idx < 0 {
				continue
			}
			if cd.Ports == nil {
				cd.Ports = make(map[string]int, 4)
			}
			cd.Ports[d.String()] = idx
		}
		doc.Cities[i] = cd
	}
	return doc
}

// FromDocument rebuilds a network. It fails with ErrCodeInvalidInput on
// unknown directions or out-of-range road indices; it does not run Validate.
func FromDocument(doc Document) (*Network, error) {
	n := &Network{Roads: make([]route.Road, len(doc.Roads))}
	for i, pts := range doc.Roads {
		if len(pts) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "road %d has no points", i)
		}
		ps := make([]geom.Point, len(pts))
		for j, xy := range pts {
			ps[j] = geom.Pt(xy[0], xy[1])
		}
		n.Roads[i] = route.NewRoad(ps...)
	}
	for _, cd := range doc.Cities {
		c := NewCity(geom.Pt(cd.X, cd.Y))
		for name, idx := range cd.Ports {
			d, ok := geom.ParseDirection(name)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "city %v: unknown port %q", c.Point, name)
			}
			if idx < 0 || idx >= len(n.Roads) {
				return nil, errors.New(errors.ErrCodeInvalidInput, "city %v: road index %d out of range", c.Point, idx)
			}
			if err := c.Occupy(d, n.Roads[idx]); err != nil {
				return nil, err
			}
		}
		n.Cities = append(n.Cities, c)
	}
	return n, nil
}

// MarshalJSON encodes the network as a Document.
func (n *Network) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Document())
}

// UnmarshalJSON decodes a Document into n.
func (n *Network) UnmarshalJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	decoded, err := FromDocument(doc)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

func indexOf(roads []route.Road, r route.Road) int {
	for i, x := range roads {
		if x.Equal(r) {
			return i
		}
	}
	return -1
}
