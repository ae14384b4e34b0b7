package trainsdata

import "encoding/json"

// FeatureCollection is the decrypted TrainsDataResponse. Features stay raw so
// they can be emitted exactly as the feed produced them.
type FeatureCollection struct {
	Type     string            `json:"type,omitempty"`
	Features []json.RawMessage `json:"features"`

	Raw json.RawMessage `json:"-"`
}

type document struct {
	TrainsDataResponse json.RawMessage `json:"TrainsDataResponse"`
}

// First returns the first feature of the collection.
func (fc *FeatureCollection) First() (json.RawMessage, error) {
	if fc == nil || len(fc.Features) == 0 {
		return nil, ErrNoFeatures
	}
	return fc.Features[0], nil
}
