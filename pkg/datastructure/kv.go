package datastructure

// KVNode is the compact street-node record stored in the h3 index.
type KVNode struct {
	Lat    float64
	Lon    float64
	NodeID int32
}

// CachedRoute is one solved route kept in the key-value store so repeated
// requests skip the solver.
type CachedRoute struct {
	Route    []int32
	Polyline string
	Distance float64
}
