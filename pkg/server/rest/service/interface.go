package service

import (
	"patrolx/pkg/datastructure"
	"patrolx/pkg/solver"
)

type KVDB interface {
	GetNearestNodesFromPointCoord(lat, lon float64) ([]datastructure.KVNode, error)
	GetRoute(algorithm, zoneName string, startNodeID int32) (datastructure.CachedRoute, error)
	SaveRoute(algorithm, zoneName string, startNodeID int32, route datastructure.CachedRoute) error
}

// RouteResult is one solved route, ready for the transport layer.
type RouteResult struct {
	Polyline string
	Route    []int32
	Distance float64
	Stats    solver.Stats
	Cached   bool
}
