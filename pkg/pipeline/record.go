package pipeline

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/footprint"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/network"
)

// Record is the serialized form of a Result, shared by the cache, the store
// and the HTTP API.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	Options   Options          `json:"options" bson:"options"`
	Boxes     []BoxSpec        `json:"boxes" bson:"boxes"`
	Start     [2]int           `json:"start" bson:"start"`
	Network   network.Document `json:"network" bson:"network"`
	Stats     network.Stats    `json:"stats" bson:"stats"`
	Hash      string           `json:"hash" bson:"hash"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}

// Record converts r to its serialized form.
func (r *Result) Record() *Record {
	boxes := r.Footprint.Boxes()
	specs := make([]BoxSpec, len(boxes))
	for i, b := range boxes {
		specs[i] = SpecOf(b)
	}
	opts := r.Options
	opts.Logger = nil
	return &Record{
		ID:        r.ID.String(),
		Options:   opts,
		Boxes:     specs,
		Start:     [2]int{r.Start.X, r.Start.Y},
		Network:   r.Network.Document(),
		Stats:     r.Stats.Stats,
		Hash:      r.Hash,
		CreatedAt: r.CreatedAt,
	}
}

// Result rebuilds a Result. Timings are not part of a record and come back
// zero.
func (rec *Record) Result() (*Result, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "record id %q", rec.ID)
	}
	net, err := network.FromDocument(rec.Network)
	if err != nil {
		return nil, err
	}
	boxes := make([]geom.Box, len(rec.Boxes))
	for i, s := range rec.Boxes {
		boxes[i] = s.Box(rec.Options.YUp)
	}
	return &Result{
		ID:        id,
		Options:   rec.Options,
		Footprint: footprint.New(boxes...),
		Network:   net,
		Start:     geom.Pt(rec.Start[0], rec.Start[1]),
		Hash:      rec.Hash,
		Stats:     Stats{Stats: rec.Stats, Boxes: len(boxes)},
		CreatedAt: rec.CreatedAt,
	}, nil
}

// MarshalRecord encodes a result as record JSON.
func MarshalRecord(r *Result) ([]byte, error) {
	return json.Marshal(r.Record())
}

// UnmarshalRecord decodes record JSON into a result.
func UnmarshalRecord(data []byte) (*Result, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec.Result()
}
