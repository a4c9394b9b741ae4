package kv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"patrolx/pkg/datastructure"

	"github.com/dgraph-io/badger/v4"
	"github.com/uber/h3-go/v4"
)

var (
	ErrNodesNotFound = errors.New("nodes not found")
)

const h3IndexResolution = 9

type KVDB struct {
	db *badger.DB
}

func NewKVDB(db *badger.DB) *KVDB {
	return &KVDB{db}
}

// BuildH3IndexedNodes saves every street node under its h3 cell so a start
// coordinate can be snapped to the network with a grid-disk lookup.
func (k *KVDB) BuildH3IndexedNodes(ctx context.Context, graph *datastructure.StreetGraph) error {
	log.Printf("creating & saving h3 indexed street nodes to key-value db...")

	kvMap := make(map[string][]datastructure.KVNode)
	for _, nodeID := range graph.Nodes() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled")
		default:
		}

		node := graph.GetNode(nodeID)
		cell := h3.LatLngToCell(h3.NewLatLng(node.Lat, node.Lon), h3IndexResolution)
		kvMap[cell.String()] = append(kvMap[cell.String()], datastructure.KVNode{
			Lat:    node.Lat,
			Lon:    node.Lon,
			NodeID: node.ID,
		})
	}

	batchSize := 1000
	batches := make([]batchData, 0, batchSize)
	for key, value := range kvMap {
		batches = append(batches, batchData{
			key:   key,
			value: value,
		})
		if len(batches) == batchSize {
			if err := k.saveBatchNodes(ctx, batches); err != nil {
				return err
			}
			batches = make([]batchData, 0, batchSize)
		}
	}
	if len(batches) > 0 {
		if err := k.saveBatchNodes(ctx, batches); err != nil {
			return err
		}
	}

	log.Printf("creating & saving h3 indexed street nodes done...")
	return nil
}

type batchData struct {
	key   string
	value []datastructure.KVNode
}

func (k *KVDB) saveBatchNodes(ctx context.Context, batches []batchData) error {
	batch := k.db.NewWriteBatch()
	defer batch.Cancel()

	for _, data := range batches {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled")
		default:
		}

		val, err := encodeNodes(data.value)
		if err != nil {
			return err
		}
		if err := batch.Set([]byte(data.key), val); err != nil {
			return err
		}
	}

	if err := batch.Flush(); err != nil {
		log.Printf("error saving nodes: %v", err)
		return err
	}
	return nil
}

func (k *KVDB) get(key []byte) ([]byte, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

// GetNearestNodesFromPointCoord returns the street nodes around the
// coordinate, growing the h3 grid disk until something is found.
func (k *KVDB) GetNearestNodesFromPointCoord(lat, lon float64) ([]datastructure.KVNode, error) {
	nodes := []datastructure.KVNode{}

	cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3IndexResolution)

	val, err := k.get([]byte(cell.String()))
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}
	if err == nil {
		found, err := loadNodes(val)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, found...)
	}

	if len(nodes) == 0 {
		for _, currCell := range kRingIndexesArea(lat, lon, 1) {
			if currCell == cell {
				continue
			}
			val, err := k.get([]byte(currCell.String()))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return nil, err
			}
			found, err := loadNodes(val)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, found...)
		}
	}

	for lev := 1; lev <= 10 && len(nodes) == 0; lev++ {
		for _, currCell := range h3.GridDisk(cell, lev) {
			if currCell == cell {
				continue
			}
			val, err := k.get([]byte(currCell.String()))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return nil, err
			}
			found, err := loadNodes(val)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, found...)
		}
	}

	if len(nodes) == 0 {
		return nil, ErrNodesNotFound
	}
	return nodes, nil
}

func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	origin := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3IndexResolution)
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea
	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	return h3.GridDisk(origin, radius)
}

func (k *KVDB) Close() {
	k.db.Close()
}
