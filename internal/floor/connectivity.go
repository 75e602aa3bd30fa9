package floor

import "github.com/zyedidia/generic/mapset"

// ReachableAvailable returns the connected component of available tiles
// reachable from the seed over cardinal neighbor links, excluding the
// seed itself. The seed's own state does not gate the fill, so the
// component around a just-removed tile is still reachable from it.
func ReachableAvailable(from *Tile) []*Tile {
	return reachable(from, func(t *Tile) bool { return t.Available() })
}

// ReachableUnavailable is the symmetric fill restricted to unavailable
// tiles. The collapse engine uses it to measure the footprint of a
// just-destroyed cluster.
func ReachableUnavailable(from *Tile) []*Tile {
	return reachable(from, func(t *Tile) bool { return !t.Available() })
}

// reachable runs an iterative breadth-first fill from the seed, visiting
// a neighbor only when include accepts it and it has not been seen. The
// explicit queue keeps stack depth independent of region size and the
// visited set guarantees termination on the cyclic grid graph. The seed
// is marked visited up front and never appears in the result; result
// order follows the fill.
func reachable(from *Tile, include func(*Tile) bool) []*Tile {
	if from == nil {
		return nil
	}
	visited := mapset.New[*Tile]()
	visited.Put(from)
	queue := []*Tile{from}
	var out []*Tile
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if visited.Has(n) || !include(n) {
				continue
			}
			visited.Put(n)
			out = append(out, n)
			queue = append(queue, n)
		}
	}
	return out
}
