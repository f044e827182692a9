package booth

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"os"
	"strings"

	"edufair/internal/contacts"
	"edufair/internal/domain"
)

// MapOptions controls the exported page.
type MapOptions struct {
	Title string
	Lat   float64
	Lng   float64
	Zoom  int
}

// DefaultMapOptions centres the map on Nairobi.
func DefaultMapOptions() MapOptions {
	return MapOptions{
		Title: "Islamic Edu Fair Booth Map",
		Lat:   -1.286389,
		Lng:   36.817223,
		Zoom:  12,
	}
}

// Markers returns the rows that carry coordinates, in row order.
func Markers(rows []contacts.Row) []domain.Marker {
	var out []domain.Marker
	for _, row := range rows {
		lat, lng, ok := ParseCoords(row.Get("Map Location"))
		if !ok {
			continue
		}
		name := row.First("Institution", "School", "Name")
		if name == "" {
			name = "Booth"
		}
		out = append(out, domain.Marker{
			Name: name,
			Lat:  lat,
			Lng:  lng,
			Link: webLink(row.Get("Website")),
		})
	}
	return out
}

// webLink keeps absolute http(s) URLs and drops anything else.
func webLink(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return raw
	}
	return ""
}

var pageTmpl = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <meta charset="utf-8" />
    <link rel="stylesheet" href="https://unpkg.com/leaflet/dist/leaflet.css" />
    <style>#map { height: 600px; }</style>
</head>
<body>
<h2>Interactive Booth Map</h2>
<div id="map"></div>
<script src="https://unpkg.com/leaflet/dist/leaflet.js"></script>
<script>
var map = L.map('map').setView([{{.Lat}}, {{.Lng}}], {{.Zoom}});
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
    attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

var booths = {{.Markers}};
booths.forEach(function (booth) {
    var popup = document.createElement('div');
    var name = document.createElement('b');
    name.textContent = booth.name;
    popup.appendChild(name);
    if (booth.link) {
        var link = document.createElement('a');
        link.href = booth.link;
        link.target = '_blank';
        link.textContent = 'Website';
        popup.appendChild(document.createElement('br'));
        popup.appendChild(link);
    }
    L.marker([booth.lat, booth.lng]).addTo(map).bindPopup(popup);
});
</script>
</body>
</html>
`))

// ExportHTML renders the Leaflet page for markers.
func ExportHTML(w io.Writer, markers []domain.Marker, opts MapOptions) error {
	if markers == nil {
		markers = []domain.Marker{}
	}
	return pageTmpl.Execute(w, struct {
		MapOptions
		Markers []domain.Marker
	}{opts, markers})
}

// ExportFile writes the page to path.
func ExportFile(path string, markers []domain.Marker, opts MapOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ExportHTML(f, markers, opts); err != nil {
		_ = f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}
