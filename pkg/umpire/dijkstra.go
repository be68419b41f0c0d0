package umpire

import "container/heap"

// Source supplies the value at a location for the Dijkstra search to
// consult and pass to a Filter. T is either Tile (full-information search
// over the live map) or Observation (search restricted to what a player
// has seen).
type Source[T any] interface {
	At(loc Location) T
}

// Filter decides whether a unit may enter a location given T, the value
// the Source returned for it.
type Filter[T any] interface {
	Passable(loc Location, value T) bool
}

// TileSource adapts a MapData to Source[Tile].
type TileSource struct {
	Map *MapData
}

func (s TileSource) At(loc Location) Tile { return s.Map.TileAt(loc) }

// ObsSource adapts a PlayerObsTracker to Source[Observation].
type ObsSource struct {
	Tracker *PlayerObsTracker
}

func (s ObsSource) At(loc Location) Observation { return s.Tracker.Get(loc) }

// DijkstraResult is the output of a bounded Dijkstra search: for every
// reached location, the distance from the source and the predecessor on
// the cheapest path.
type DijkstraResult struct {
	dims Dims
	dist map[Location]uint16
	prev map[Location]Location
}

// Dist returns the distance to loc and whether it was reached at all.
func (r *DijkstraResult) Dist(loc Location) (uint16, bool) {
	d, ok := r.dist[loc]
	return d, ok
}

// Prev returns the predecessor of loc on the cheapest discovered path.
func (r *DijkstraResult) Prev(loc Location) (Location, bool) {
	p, ok := r.prev[loc]
	return p, ok
}

// PathTo reconstructs the sequence of locations from source to dest,
// inclusive, or returns ok=false if dest was never reached.
func (r *DijkstraResult) PathTo(dest Location) ([]Location, bool) {
	if _, ok := r.dist[dest]; !ok {
		return nil, false
	}
	path := []Location{dest}
	cur := dest
	for {
		p, ok := r.prev[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

type heapEntry struct {
	loc  Location
	dist uint16
	seq  int // insertion sequence, used to break distance ties stably
}

type pqueue []heapEntry

func (q pqueue) Len() int { return len(q) }
func (q pqueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}
func (q pqueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *pqueue) Push(x any)        { *q = append(*q, x.(heapEntry)) }
func (q *pqueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// Dijkstra runs a cost-bounded shortest-path search from src over every
// tile reachable within maxDist steps, using filter to decide which
// neighbors are passable. Every one of the eight neighbor directions is
// attempted at each node; filter alone determines passability.
func Dijkstra[T any](src Location, maxDist uint16, source Source[T], filter Filter[T], dims Dims, wrap Wrap2d) *DijkstraResult {
	result := &DijkstraResult{dims: dims, dist: map[Location]uint16{src: 0}, prev: map[Location]Location{}}

	pq := &pqueue{{loc: src, dist: 0, seq: 0}}
	heap.Init(pq)
	seq := 1

	for pq.Len() > 0 {
		entry := heap.Pop(pq).(heapEntry)
		if d, ok := result.dist[entry.loc]; ok && d < entry.dist {
			continue // stale entry
		}
		if entry.dist >= maxDist {
			continue
		}
		for _, n := range Neighbors(entry.loc, dims, wrap) {
			val := source.At(n)
			if !filter.Passable(n, val) {
				continue
			}
			nd := entry.dist + 1
			if existing, ok := result.dist[n]; !ok || nd < existing {
				result.dist[n] = nd
				result.prev[n] = entry.loc
				heap.Push(pq, heapEntry{loc: n, dist: nd, seq: seq})
				seq++
			}
		}
	}
	return result
}
