package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"patrolx/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func buildExportGraph() (*datastructure.StreetGraph, []int32) {
	g := datastructure.NewStreetGraph()
	a := g.AddNode(-7.7829, 110.3670)
	b := g.AddNode(-7.7840, 110.3675)
	c := g.AddNode(-7.7851, 110.3690)
	g.AddEdge(a, b, 130, "Jalan Satu")
	g.AddEdge(b, c, 210, "Jalan Dua")
	g.AddEdge(c, a, 340, "Jalan Tiga")
	return g, []int32{a, b, c, a}
}

func TestWriteCSV(t *testing.T) {
	g, route := buildExportGraph()

	var buf bytes.Buffer
	err := WriteCSV(&buf, g, RouteSheet{Name: "downtown patrol", Route: route, Distance: 680})
	assert.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 5) // header + 4 stops

	assert.Equal(t, []string{"step", "node_id", "lat", "lon", "street", "leg_meters"}, records[0])
	// the first stop has no incoming leg
	assert.Equal(t, "", records[1][4])
	assert.Equal(t, "0.00", records[1][5])
	assert.Equal(t, "Jalan Satu", records[2][4])
	assert.Equal(t, "130.00", records[2][5])
	assert.Equal(t, "Jalan Tiga", records[4][4])
}

func TestWriteGeoJSON(t *testing.T) {
	g, route := buildExportGraph()

	var buf bytes.Buffer
	err := WriteGeoJSON(&buf, g, RouteSheet{Name: "downtown patrol", Route: route, Distance: 680})
	assert.NoError(t, err)

	var collection map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &collection))
	assert.Equal(t, "FeatureCollection", collection["type"])

	features := collection["features"].([]any)
	assert.Len(t, features, 1)
	feature := features[0].(map[string]any)
	geometry := feature["geometry"].(map[string]any)
	assert.Equal(t, "LineString", geometry["type"])

	coords := geometry["coordinates"].([]any)
	assert.GreaterOrEqual(t, len(coords), 2)
	first := coords[0].([]any)
	// geojson is lon first
	assert.InDelta(t, 110.3670, first[0].(float64), 1e-6)
	assert.InDelta(t, -7.7829, first[1].(float64), 1e-6)

	props := feature["properties"].(map[string]any)
	assert.Equal(t, "downtown patrol", props["name"])
	assert.InDelta(t, 680, props["distance_meters"].(float64), 1e-9)
}
