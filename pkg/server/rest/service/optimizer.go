package service

import (
	"context"
	"errors"
	"log"
	"time"

	"patrolx/pkg/datastructure"
	"patrolx/pkg/geo"
	"patrolx/pkg/kv"
	"patrolx/pkg/server"
	"patrolx/pkg/solver"
	"patrolx/pkg/zone"
)

type OptimizerService struct {
	graph *datastructure.StreetGraph
	zones []*zone.Zone
	kv    KVDB
}

func NewOptimizerService(graph *datastructure.StreetGraph, zones []*zone.Zone, kvDB KVDB) *OptimizerService {
	return &OptimizerService{graph: graph, zones: zones, kv: kvDB}
}

func (uc *OptimizerService) Zones() []*zone.Zone {
	return uc.zones
}

// SnapLocToStreetNode snaps a coordinate to the nearest street node of the
// given graph via the h3 index. Candidates outside the graph (filtered out
// by a zone) are skipped.
func (uc *OptimizerService) SnapLocToStreetNode(graph *datastructure.StreetGraph, lat, lon float64) (int32, error) {
	candidates, err := uc.kv.GetNearestNodesFromPointCoord(lat, lon)
	if err != nil {
		return 0, server.WrapErrorf(err, server.ErrNotFound, "the location you entered is not covered on the map")
	}

	bestID := int32(-1)
	bestDist := -1.0
	for _, candidate := range candidates {
		if !graph.HasNode(candidate.NodeID) {
			continue
		}
		dist := geo.CalculateHaversineDistance(lat, lon, candidate.Lat, candidate.Lon)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestID = candidate.NodeID
		}
	}
	if bestID < 0 {
		return 0, server.NewErrorf(server.ErrNotFound, "no street node near (%f, %f) inside the requested area", lat, lon)
	}
	return bestID, nil
}

func (uc *OptimizerService) findZone(zoneName string) (*zone.Zone, error) {
	z, ok := zone.FindZoneByName(uc.zones, zoneName)
	if !ok {
		return nil, server.NewErrorf(server.ErrNotFound, "unknown zone %q", zoneName)
	}
	return z, nil
}

// SolvePatrolRoute computes a full edge-coverage patrol route of the zone,
// starting from the street node nearest to the given coordinate. Solved
// routes are cached per (zone, start node).
func (uc *OptimizerService) SolvePatrolRoute(ctx context.Context, zoneName string,
	startLat, startLon float64, when time.Time) (RouteResult, error) {
	z, err := uc.findZone(zoneName)
	if err != nil {
		return RouteResult{}, err
	}
	if !when.IsZero() && !z.ActiveAt(when) {
		return RouteResult{}, server.NewErrorf(server.ErrInvalidInput, "zone %q is not enforced at %s", zoneName, when.Format(time.RFC3339))
	}

	zoneGraph := z.FilterGraph(uc.graph)
	startNode, err := uc.SnapLocToStreetNode(zoneGraph, startLat, startLon)
	if err != nil {
		return RouteResult{}, err
	}

	if cached, err := uc.kv.GetRoute(solver.ChinesePostman.String(), zoneName, startNode); err == nil {
		return RouteResult{
			Polyline: cached.Polyline,
			Route:    cached.Route,
			Distance: cached.Distance,
			Cached:   true,
		}, nil
	} else if !errors.Is(err, kv.ErrRouteNotFound) {
		log.Printf("route cache lookup failed: %v", err)
	}

	s, err := solver.New(solver.ChinesePostman, zoneGraph, startNode, nil)
	if err != nil {
		return RouteResult{}, err
	}
	route, distance, err := s.Solve()
	if err != nil {
		return RouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "patrol route solve failed for zone %q", zoneName)
	}

	polyline := datastructure.CreatePolyline(datastructure.RouteCoordinates(zoneGraph, route))
	result := RouteResult{
		Polyline: polyline,
		Route:    route,
		Distance: distance,
		Stats:    s.Stats(),
	}

	if err := uc.kv.SaveRoute(solver.ChinesePostman.String(), zoneName, startNode, datastructure.CachedRoute{
		Route:    route,
		Polyline: polyline,
		Distance: distance,
	}); err != nil {
		log.Printf("route cache save failed: %v", err)
	}
	return result, nil
}

// SolveDeliveryRoute computes a closed tour visiting every stop once,
// starting and ending at the street node nearest to the start coordinate.
func (uc *OptimizerService) SolveDeliveryRoute(ctx context.Context,
	startLat, startLon float64, stops []datastructure.Coordinate) (RouteResult, error) {
	startNode, err := uc.SnapLocToStreetNode(uc.graph, startLat, startLon)
	if err != nil {
		return RouteResult{}, err
	}

	seen := map[int32]struct{}{startNode: {}}
	targets := []int32{startNode}
	for _, stop := range stops {
		stopNode, err := uc.SnapLocToStreetNode(uc.graph, stop.Lat, stop.Lon)
		if err != nil {
			return RouteResult{}, err
		}
		if _, ok := seen[stopNode]; ok {
			continue
		}
		seen[stopNode] = struct{}{}
		targets = append(targets, stopNode)
	}

	s, err := solver.New(solver.TravelingSalesman, uc.graph, startNode, targets)
	if err != nil {
		return RouteResult{}, err
	}
	route, distance, err := s.Solve()
	if err != nil {
		if errors.As(err, new(*server.Error)) {
			return RouteResult{}, err
		}
		return RouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "delivery route solve failed")
	}

	return RouteResult{
		Polyline: datastructure.CreatePolyline(datastructure.RouteCoordinates(uc.graph, route)),
		Route:    route,
		Distance: distance,
		Stats:    s.Stats(),
	}, nil
}
