// Package booth lays out exhibitor booths and exports them as an interactive
// Leaflet map.
//
// Coordinates are recovered from map-location URLs by ParseCoords. Rows whose
// location does not carry coordinates are listed in the text layout but left
// off the map.
package booth
