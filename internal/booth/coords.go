package booth

import (
	"regexp"
	"strconv"
)

var (
	atPattern    = regexp.MustCompile(`/@([-\d.]+),([-\d.]+)`)
	queryPattern = regexp.MustCompile(`[?&](?:q|ll)=([-\d.]+),([-\d.]+)`)
)

// ParseCoords extracts latitude and longitude from a map URL.
//
// Two shapes are recognised, in order: a "/@lat,lng" path segment as in
// google.com/maps/place/.../@lat,lng,zoom, and a "q=lat,lng" or "ll=lat,lng"
// query parameter. Short links such as maps.app.goo.gl/... carry no
// coordinates and report ok=false.
func ParseCoords(locationURL string) (lat, lng float64, ok bool) {
	if locationURL == "" {
		return 0, 0, false
	}
	for _, re := range []*regexp.Regexp{atPattern, queryPattern} {
		m := re.FindStringSubmatch(locationURL)
		if m == nil {
			continue
		}
		lat, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, 0, false
		}
		lng, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, 0, false
		}
		return lat, lng, true
	}
	return 0, 0, false
}
