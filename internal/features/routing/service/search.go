package service

import (
	"math"

	netdomain "chainflow-engine/internal/features/network/domain"
	"chainflow-engine/internal/features/routing/domain"
)

// search is one shortest-path query over the graph.
type search struct {
	origin, destination string
	weigher             *weigher
	// banned edge ids are skipped during relaxation.
	banned map[string]bool
}

type step struct {
	from string
	edge netdomain.Edge
}

// dijkstra scans every location for the closest unvisited node and stops
// once the destination is settled.
func (o *Optimizer) dijkstra(s search) ([]domain.Segment, error) {
	ids := o.graph.LocationIDs()
	dist := make(map[string]float64, len(ids))
	unvisited := make(map[string]bool, len(ids))
	for _, id := range ids {
		dist[id] = math.Inf(1)
		unvisited[id] = true
	}
	dist[s.origin] = 0
	prev := map[string]step{}

	for len(unvisited) > 0 {
		current := ""
		best := math.Inf(1)
		// Iterate ids rather than the map so ties resolve deterministically.
		for _, id := range ids {
			if unvisited[id] && dist[id] < best {
				best, current = dist[id], id
			}
		}
		if current == "" || current == s.destination {
			break
		}
		delete(unvisited, current)

		for _, e := range o.graph.Outgoing(current) {
			if s.banned[e.ID] || !unvisited[e.DestinationID] {
				continue
			}
			if d := dist[current] + s.weigher.edge(e); d < dist[e.DestinationID] {
				dist[e.DestinationID] = d
				prev[e.DestinationID] = step{from: current, edge: e}
			}
		}
	}
	return reconstruct(prev, s.origin, s.destination)
}

// astar expands the open node with the lowest weight plus great-circle lower bound.
func (o *Optimizer) astar(s search) ([]domain.Segment, error) {
	target, ok := o.graph.Location(s.destination)
	if !ok {
		return nil, domain.ErrNoPath
	}
	h := func(id string) float64 {
		loc, ok := o.graph.Location(id)
		if !ok {
			return 0
		}
		return s.weigher.lowerBound(loc.DistanceTo(target))
	}

	ids := o.graph.LocationIDs()
	g := map[string]float64{s.origin: 0}
	f := map[string]float64{s.origin: h(s.origin)}
	open := map[string]bool{s.origin: true}
	closed := map[string]bool{}
	prev := map[string]step{}

	for len(open) > 0 {
		current := ""
		best := math.Inf(1)
		for _, id := range ids {
			if open[id] && f[id] < best {
				best, current = f[id], id
			}
		}
		if current == "" {
			break
		}
		if current == s.destination {
			return reconstruct(prev, s.origin, s.destination)
		}
		delete(open, current)
		closed[current] = true

		for _, e := range o.graph.Outgoing(current) {
			next := e.DestinationID
			if s.banned[e.ID] || closed[next] {
				continue
			}
			tentative := g[current] + s.weigher.edge(e)
			if old, seen := g[next]; !seen || tentative < old {
				g[next] = tentative
				f[next] = tentative + h(next)
				prev[next] = step{from: current, edge: e}
				open[next] = true
			}
		}
	}
	return nil, domain.ErrNoPath
}

func reconstruct(prev map[string]step, origin, destination string) ([]domain.Segment, error) {
	var path []domain.Segment
	for current := destination; current != origin; {
		st, ok := prev[current]
		if !ok {
			return nil, domain.ErrNoPath
		}
		path = append(path, domain.Segment{From: st.from, To: current, Edge: st.edge})
		current = st.from
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// cheapestEdge returns the lowest-weight direct edge between two locations.
func (o *Optimizer) cheapestEdge(from, to string, w *weigher) (netdomain.Edge, float64, bool) {
	var (
		best   netdomain.Edge
		weight = math.Inf(1)
		found  bool
	)
	for _, e := range o.graph.Outgoing(from) {
		if e.DestinationID != to {
			continue
		}
		if v := w.edge(e); v < weight {
			best, weight, found = e, v, true
		}
	}
	return best, weight, found
}

// resolve turns a waypoint sequence into a path over the cheapest hops.
func (o *Optimizer) resolve(nodes []string, w *weigher) ([]domain.Segment, float64, bool) {
	if len(nodes) < 2 {
		return nil, 0, false
	}
	path := make([]domain.Segment, 0, len(nodes)-1)
	var total float64
	for i := 1; i < len(nodes); i++ {
		e, v, ok := o.cheapestEdge(nodes[i-1], nodes[i], w)
		if !ok {
			return nil, 0, false
		}
		path = append(path, domain.Segment{From: nodes[i-1], To: nodes[i], Edge: e})
		total += v
	}
	return path, total, true
}
