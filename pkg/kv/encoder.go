package kv

import (
	"patrolx/pkg/datastructure"

	"github.com/kelindar/binary"
)

func encodeNodes(nodes []datastructure.KVNode) ([]byte, error) {
	encoded, err := binary.Marshal(nodes)
	if err != nil {
		return nil, err
	}
	return compress(encoded)
}

func loadNodes(buf []byte) ([]datastructure.KVNode, error) {
	decompressed, err := decompress(buf)
	if err != nil {
		return nil, err
	}
	var nodes []datastructure.KVNode
	err = binary.Unmarshal(decompressed, &nodes)
	return nodes, err
}

func encodeRoute(route datastructure.CachedRoute) ([]byte, error) {
	encoded, err := binary.Marshal(route)
	if err != nil {
		return nil, err
	}
	return compress(encoded)
}

func loadRoute(buf []byte) (datastructure.CachedRoute, error) {
	var route datastructure.CachedRoute
	decompressed, err := decompress(buf)
	if err != nil {
		return route, err
	}
	err = binary.Unmarshal(decompressed, &route)
	return route, err
}
