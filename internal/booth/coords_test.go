package booth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"edufair/internal/booth"
)

func TestParseCoords(t *testing.T) {
	cases := []struct {
		name     string
		url      string
		lat, lng float64
		ok       bool
	}{
		{"place at", "https://www.google.com/maps/place/Umma+University/@-1.2921,36.8219,15z", -1.2921, 36.8219, true},
		{"query q", "https://maps.google.com/?q=-1.30,36.78", -1.30, 36.78, true},
		{"query ll", "https://maps.google.com/maps?z=10&ll=0.5,35.27", 0.5, 35.27, true},
		{"at wins over query", "https://maps.google.com/@1,2?q=3,4", 1, 2, true},
		{"short link", "https://maps.app.goo.gl/UmmaUni", 0, 0, false},
		{"empty", "", 0, 0, false},
		{"not a number", "https://maps.google.com/@-.-,1", 0, 0, false},
		{"q inside word", "https://example.com/faq=1,2", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, lng, ok := booth.ParseCoords(tc.url)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.lat, lat, 1e-9)
			assert.InDelta(t, tc.lng, lng, 1e-9)
		})
	}
}
