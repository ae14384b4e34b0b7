package trains

import "time"

// Train is a typed view over one feature of the trains data collection.
type Train struct {
	ID              string     `json:"id"`
	Number          string     `json:"number,omitempty"`
	Route           string     `json:"route,omitempty"`
	Origin          string     `json:"origin,omitempty"`
	Destination     string     `json:"destination,omitempty"`
	State           string     `json:"state,omitempty"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	SpeedMPS        *float64   `json:"speed_mps,omitempty"`
	Bearing         *float64   `json:"bearing,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	OriginDeparture *time.Time `json:"origin_departure,omitempty"`
	Stops           []Stop     `json:"stops"`
}

// Stop mirrors the JSON encoded StationN properties.
type Stop struct {
	Code                      string `json:"code"`
	TZ                        string `json:"tz"`
	Bus                       bool   `json:"bus"`
	ScheduledArrival          string `json:"scharr,omitempty"`
	ScheduledDeparture        string `json:"schdep,omitempty"`
	ScheduleComment           string `json:"schcmnt,omitempty"`
	AutoArrival               bool   `json:"autoarr"`
	AutoDeparture             bool   `json:"autodep"`
	EstimatedArrival          string `json:"estarr,omitempty"`
	EstimatedDeparture        string `json:"estdep,omitempty"`
	PostedArrival             string `json:"postarr,omitempty"`
	PostedDeparture           string `json:"postdep,omitempty"`
	EstimatedArrivalComment   string `json:"estarrcmnt,omitempty"`
	EstimatedDepartureComment string `json:"estdepcmnt,omitempty"`
}
