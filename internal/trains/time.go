package trains

import (
	"time"
	_ "time/tzdata"
)

const (
	// updated_at and OrigSchDep, e.g. "11/18/2023 4:58:09 PM"
	clockLayout = "1/2/2006 3:04:05 PM"
	// station times, e.g. "12/11/2023 17:36:00"; no AM/PM marker
	stationLayout = "01/02/2006 15:04:05"
)

var zones = map[string]string{
	"E": "America/New_York",
	"C": "America/Chicago",
	"M": "America/Denver",
	"P": "America/Los_Angeles",
	"A": "America/Phoenix",
}

// Location maps the single letter zone codes used by the feed. Unknown codes
// fall back to Eastern.
func Location(code string) *time.Location {
	name, ok := zones[code]
	if !ok {
		name = zones["E"]
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseClock(s, zone string) (time.Time, error) {
	return time.ParseInLocation(clockLayout, s, Location(zone))
}

func parseStation(s, zone string) (time.Time, error) {
	return time.ParseInLocation(stationLayout, s, Location(zone))
}

// Arrival returns the posted arrival time when the train has already
// arrived, otherwise the estimate.
func (s Stop) Arrival() (time.Time, bool) {
	return s.firstTime(s.PostedArrival, s.EstimatedArrival)
}

func (s Stop) Departure() (time.Time, bool) {
	return s.firstTime(s.PostedDeparture, s.EstimatedDeparture)
}

func (s Stop) firstTime(candidates ...string) (time.Time, bool) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		t, err := parseStation(c, s.TZ)
		if err != nil {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}
