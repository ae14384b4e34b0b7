package trains

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mirzahilmi/amtrak-trains/internal/trainsdata"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

const (
	mphToMPS    = 0.44704
	maxStations = 100
)

var ErrNotPoint = errors.New("trains: feature geometry is not a point")

var bearings = map[string]float64{
	"N":  0,
	"NE": 45,
	"E":  90,
	"SE": 135,
	"S":  180,
	"SW": 225,
	"W":  270,
	"NW": 315,
}

// FromCollection converts every feature it can. Features that fail are
// skipped and reported in the joined error.
func FromCollection(fc *trainsdata.FeatureCollection) ([]Train, error) {
	out := make([]Train, 0, len(fc.Features))
	var errs []error
	for i, raw := range fc.Features {
		t, err := FromFeature(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("feature %d: %w", i, err))
			continue
		}
		out = append(out, t)
	}
	return out, errors.Join(errs...)
}

func FromFeature(raw json.RawMessage) (Train, error) {
	f, err := geojson.UnmarshalFeature(raw)
	if err != nil {
		return Train{}, fmt.Errorf("trains: parse feature: %w", err)
	}
	point, ok := f.Geometry.(orb.Point)
	if !ok {
		return Train{}, ErrNotPoint
	}
	props := f.Properties

	t := Train{
		ID:          featureID(f),
		Number:      stringProp(props, "TrainNum"),
		Route:       stringProp(props, "RouteName"),
		Origin:      stringProp(props, "OrigCode"),
		Destination: stringProp(props, "DestCode"),
		State:       stringProp(props, "TrainState"),
		Latitude:    point.Lat(),
		Longitude:   point.Lon(),
		SpeedMPS:    speed(props),
		Bearing:     bearing(props),
		Stops:       stops(props),
	}

	if s := stringProp(props, "updated_at"); s != "" {
		if ts, err := parseClock(s, "E"); err == nil {
			t.UpdatedAt = &ts
		} else {
			log.Warn().Str("train", t.Number).Str("updated_at", s).Msg("unparseable timestamp")
		}
	}
	if s := stringProp(props, "OrigSchDep"); s != "" {
		if ts, err := parseClock(s, stringProp(props, "OriginTZ")); err == nil {
			t.OriginDeparture = &ts
		}
	}
	return t, nil
}

func featureID(f *geojson.Feature) string {
	if id := formatValue(f.ID); id != "" {
		return id
	}
	return stringProp(f.Properties, "ID")
}

func stringProp(props geojson.Properties, key string) string {
	return formatValue(props[key])
}

// formatValue keeps numeric ids and train numbers out of exponent form.
func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func speed(props geojson.Properties) *float64 {
	var mph float64
	switch v := props["Velocity"].(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		mph = f
	case float64:
		mph = v
	default:
		return nil
	}
	mps := mph * mphToMPS
	return &mps
}

func bearing(props geojson.Properties) *float64 {
	b, ok := bearings[stringProp(props, "Heading")]
	if !ok {
		return nil
	}
	return &b
}

func stops(props geojson.Properties) []Stop {
	out := []Stop{}
	for i := 0; i < maxStations; i++ {
		key := "Station" + strconv.Itoa(i)
		text, ok := props[key].(string)
		if !ok {
			continue
		}
		var s Stop
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("skipping station")
			continue
		}
		out = append(out, s)
	}
	return out
}
