package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"patrolx/pkg/export"
	"patrolx/pkg/osmparser"
	"patrolx/pkg/snap"
	"patrolx/pkg/solver"
	"patrolx/pkg/zone"
)

var (
	mapFile   = flag.String("f", "solo_jogja.osm.pbf", "openstreetmap pbf file for the street network")
	zoneFile  = flag.String("zones", "zones.json", "patrol zone config file")
	zoneName  = flag.String("zone", "", "zone to patrol (chinese postman mode)")
	algorithm = flag.String("algo", "cpp", "cpp (cover every street) or tsp (visit stops)")
	startLat  = flag.Float64("lat", 0, "start latitude")
	startLon  = flag.Float64("lon", 0, "start longitude")
	stopsArg  = flag.String("stops", "", "delivery stops as lat,lon;lat,lon (tsp mode)")
	outCSV    = flag.String("csv", "", "write the route sheet to this csv file")
	outGeo    = flag.String("geojson", "", "write the route to this geojson file")
)

func main() {
	flag.Parse()

	parser := osmparser.NewOsmParser()
	graph, err := parser.Parse(*mapFile)
	if err != nil {
		log.Fatal(err)
	}

	routeName := "delivery route"
	solveGraph := graph
	if *zoneName != "" {
		zones, err := zone.LoadZones(*zoneFile)
		if err != nil {
			log.Fatal(err)
		}
		z, ok := zone.FindZoneByName(zones, *zoneName)
		if !ok {
			log.Fatalf("unknown zone %q", *zoneName)
		}
		solveGraph = z.FilterGraph(graph)
		routeName = z.Name + " patrol"
		log.Printf("zone %s: %d nodes, %d edges", z.Name, solveGraph.NumNodes(), solveGraph.NumEdges())
	}

	snapper := snap.NewNodeSnapper(solveGraph)
	startNode, ok := snapper.SnapToNetwork(*startLat, *startLon)
	if !ok {
		log.Fatalf("no street node near (%f, %f)", *startLat, *startLon)
	}

	algo := solver.ChinesePostman
	var targets []int32
	if *algorithm == "tsp" {
		algo = solver.TravelingSalesman
		targets = append(parseStops(snapper, *stopsArg), startNode)
	}

	s, err := solver.New(algo, solveGraph, startNode, targets)
	if err != nil {
		log.Fatal(err)
	}
	route, distance, err := s.Solve()
	if err != nil {
		log.Fatal(err)
	}

	stats := s.Stats()
	log.Printf("route: %d stops, %.2f meters", len(route), distance)
	if stats.StartRelocated {
		log.Printf("start was relocated into the main street component")
	}
	if stats.ResidualImbalance > 0 {
		log.Printf("%d nodes left unbalanced, some streets may repeat", stats.ResidualImbalance)
	}
	if stats.NonAdjacentJumps > 0 {
		log.Printf("%d non-adjacent jumps in the route", stats.NonAdjacentJumps)
	}

	sheet := export.RouteSheet{Name: routeName, Route: route, Distance: distance}
	if *outCSV != "" {
		writeExport(*outCSV, func(f *os.File) error {
			return export.WriteCSV(f, solveGraph, sheet)
		})
		log.Printf("route sheet written to %s", *outCSV)
	}
	if *outGeo != "" {
		writeExport(*outGeo, func(f *os.File) error {
			return export.WriteGeoJSON(f, solveGraph, sheet)
		})
		log.Printf("route geojson written to %s", *outGeo)
	}
}

func parseStops(snapper *snap.NodeSnapper, arg string) []int32 {
	if arg == "" {
		return nil
	}
	stops := make([]int32, 0)
	for _, pair := range strings.Split(arg, ";") {
		parts := strings.SplitN(strings.TrimSpace(pair), ",", 2)
		if len(parts) != 2 {
			log.Fatalf("bad stop %q, want lat,lon", pair)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			log.Fatalf("bad stop %q: %v", pair, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			log.Fatalf("bad stop %q: %v", pair, err)
		}

		nodeID, ok := snapper.SnapToNetwork(lat, lon)
		if !ok {
			log.Fatalf("no street node near stop %q", pair)
		}
		stops = append(stops, nodeID)
	}
	return stops
}

func writeExport(path string, write func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		log.Fatal(err)
	}
}
