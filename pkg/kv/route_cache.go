package kv

import (
	"errors"
	"fmt"

	"patrolx/pkg/datastructure"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrRouteNotFound = errors.New("route not found")
)

func routeCacheKey(algorithm string, zoneName string, startNodeID int32) []byte {
	return []byte(fmt.Sprintf("route/%s/%s/%d", algorithm, zoneName, startNodeID))
}

// SaveRoute caches a solved route under (algorithm, zone, start node).
func (k *KVDB) SaveRoute(algorithm, zoneName string, startNodeID int32,
	route datastructure.CachedRoute) error {
	val, err := encodeRoute(route)
	if err != nil {
		return err
	}
	return k.db.Update(func(txn *badger.Txn) error {
		return txn.Set(routeCacheKey(algorithm, zoneName, startNodeID), val)
	})
}

// GetRoute returns the cached route for (algorithm, zone, start node), or
// ErrRouteNotFound.
func (k *KVDB) GetRoute(algorithm, zoneName string, startNodeID int32) (datastructure.CachedRoute, error) {
	val, err := k.get(routeCacheKey(algorithm, zoneName, startNodeID))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return datastructure.CachedRoute{}, ErrRouteNotFound
		}
		return datastructure.CachedRoute{}, err
	}
	return loadRoute(val)
}
