package zone

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"patrolx/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

const testConfig = `{
  "zones": [
    {
      "name": "downtown",
      "color": "#ff0000",
      "boundary": [
        {"lat": -7.80, "lon": 110.36},
        {"lat": -7.80, "lon": 110.38},
        {"lat": -7.78, "lon": 110.38},
        {"lat": -7.78, "lon": 110.36}
      ],
      "schedule_start": "08:00",
      "schedule_end": "18:00",
      "weekdays": ["monday", "tuesday", "wednesday", "thursday", "friday"],
      "prohibited_streets": ["Jalan Tertutup"]
    },
    {
      "name": "nightlife",
      "boundary": [
        {"lat": -7.82, "lon": 110.36},
        {"lat": -7.82, "lon": 110.38},
        {"lat": -7.81, "lon": 110.38},
        {"lat": -7.81, "lon": 110.36}
      ],
      "schedule_start": "22:00",
      "schedule_end": "04:00"
    }
  ]
}`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.json")
	assert.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))
	return path
}

func TestLoadZones(t *testing.T) {
	zones, err := LoadZones(writeTestConfig(t))
	assert.NoError(t, err)
	assert.Len(t, zones, 2)
	assert.Equal(t, "downtown", zones[0].Name)
	assert.Equal(t, []string{"Jalan Tertutup"}, zones[0].ProhibitedStreets)
}

func TestLoadZonesRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.json")
	assert.NoError(t, os.WriteFile(path, []byte(`{"zones":[{"name":"x","boundary":[{"lat":1,"lon":1}]}]}`), 0644))

	_, err := LoadZones(path)
	assert.Error(t, err)
}

func TestZoneContains(t *testing.T) {
	zones, err := LoadZones(writeTestConfig(t))
	assert.NoError(t, err)

	downtown := zones[0]
	assert.True(t, downtown.Contains(-7.79, 110.37))
	assert.False(t, downtown.Contains(-7.75, 110.37))

	found, ok := FindZone(zones, -7.815, 110.37)
	assert.True(t, ok)
	assert.Equal(t, "nightlife", found.Name)

	_, ok = FindZone(zones, 0, 0)
	assert.False(t, ok)
}

func TestZoneActiveAt(t *testing.T) {
	zones, err := LoadZones(writeTestConfig(t))
	assert.NoError(t, err)
	downtown, nightlife := zones[0], zones[1]

	// monday noon
	monNoon := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	assert.True(t, downtown.ActiveAt(monNoon))
	assert.False(t, nightlife.ActiveAt(monNoon))

	// saturday noon is outside downtown weekdays
	satNoon := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.False(t, downtown.ActiveAt(satNoon))

	// the nightlife window wraps past midnight
	monLate := time.Date(2025, 3, 3, 23, 30, 0, 0, time.UTC)
	tueEarly := time.Date(2025, 3, 4, 2, 0, 0, 0, time.UTC)
	assert.True(t, nightlife.ActiveAt(monLate))
	assert.True(t, nightlife.ActiveAt(tueEarly))
}

func TestZoneFilterGraph(t *testing.T) {
	zones, err := LoadZones(writeTestConfig(t))
	assert.NoError(t, err)
	downtown := zones[0]

	g := datastructure.NewStreetGraph()
	inA := g.AddNode(-7.790, 110.370)
	inB := g.AddNode(-7.791, 110.371)
	out := g.AddNode(-7.700, 110.370)
	g.AddEdge(inA, inB, 100, "Jalan Malioboro")
	g.AddEdge(inB, inA, 100, "Jalan Malioboro")
	g.AddEdge(inA, inB, 80, "Jalan Tertutup")
	g.AddEdge(inA, out, 500, "Jalan Keluar")

	sub := downtown.FilterGraph(g)

	assert.Equal(t, 2, sub.NumNodes())
	assert.False(t, sub.HasNode(out))
	// the prohibited street is gone, the open pair stays
	assert.Equal(t, 2, sub.NumEdges())
	length, ok := sub.MinEdgeLength(inA, inB)
	assert.True(t, ok)
	assert.InDelta(t, 100, length, 1e-9)
}
