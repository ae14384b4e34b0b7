package constant

import "time"

const (
	FEED_URL          = "https://maps.amtrak.com/services/MapDataService/trains/getTrainsData"
	FEED_TIMEOUT      = 30 * time.Second
	FEED_RESPONSE_KEY = "TrainsDataResponse"
	FEED_USER_AGENT   = "amtrak-trains/1.0"
)

const (
	ARCHIVE_CONTENT_TYPE = "application/geo+json"
	ARCHIVE_EXTENSION    = ".geojson"
)
