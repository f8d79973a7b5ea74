package service

import (
	"context"
	"slices"
	"strings"

	"chainflow-engine/internal/core/random"
	"chainflow-engine/internal/features/routing/domain"
)

// individual is a waypoint sequence from origin to destination.
type individual struct {
	nodes   []string
	path    []domain.Segment
	route   domain.Route
	fitness float64
}

// genetic evolves random waypoint sequences and returns the fittest feasible
// route followed by the next-best distinct ones.
func (o *Optimizer) genetic(ctx context.Context, s search) ([]domain.Route, error) {
	population := make([]individual, o.cfg.Population)
	for i := range population {
		population[i] = o.evaluate(o.randomRoute(s.origin, s.destination), s.weigher)
	}

	for range o.cfg.Generations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := make([]individual, len(population))
		for i := range next {
			a := o.selectParent(population)
			b := o.selectParent(population)
			child := crossover(a.nodes, b.nodes, o.rng)
			if random.Chance(o.rng, o.cfg.MutationRate) {
				child = o.mutate(child)
			}
			next[i] = o.evaluate(child, s.weigher)
		}
		population = next
	}

	slices.SortStableFunc(population, func(a, b individual) int {
		switch {
		case a.fitness > b.fitness:
			return -1
		case a.fitness < b.fitness:
			return 1
		default:
			return 0
		}
	})

	var routes []domain.Route
	seen := map[string]bool{}
	for _, ind := range population {
		if ind.fitness == 0 || len(routes) == maxAlternatives+1 {
			break
		}
		key := strings.Join(ind.nodes, ">")
		if seen[key] {
			continue
		}
		seen[key] = true
		routes = append(routes, ind.route)
	}
	if len(routes) == 0 {
		return nil, domain.ErrNoPath
	}
	return routes, nil
}

// randomRoute is origin, up to two distinct random intermediates, destination.
func (o *Optimizer) randomRoute(origin, destination string) []string {
	var pool []string
	for _, id := range o.graph.LocationIDs() {
		if id != origin && id != destination {
			pool = append(pool, id)
		}
	}
	n := min(o.rng.IntN(3), len(pool))
	nodes := make([]string, 0, n+2)
	nodes = append(nodes, origin)
	for range n {
		i := o.rng.IntN(len(pool))
		nodes = append(nodes, pool[i])
		pool = slices.Delete(pool, i, i+1)
	}
	return append(nodes, destination)
}

// evaluate resolves an individual. Infeasible sequences get zero fitness.
func (o *Optimizer) evaluate(nodes []string, w *weigher) individual {
	ind := individual{nodes: nodes}
	path, _, ok := o.resolve(nodes, w)
	if !ok {
		return ind
	}
	ind.path = path
	ind.route = routeMetrics(domain.Genetic, path, w)
	if denom := ind.route.TotalCost + ind.route.TotalTime + ind.route.RiskScore; denom > 0 {
		ind.fitness = 1 / denom
	}
	return ind
}

// selectParent is roulette-wheel selection; uniform when nothing is feasible.
func (o *Optimizer) selectParent(population []individual) individual {
	var total float64
	for _, ind := range population {
		total += ind.fitness
	}
	if total == 0 {
		return random.Pick(o.rng, population)
	}
	r := o.rng.Float64() * total
	for _, ind := range population {
		r -= ind.fitness
		if r <= 0 {
			return ind
		}
	}
	return population[len(population)-1]
}

// crossover joins a prefix of a with the suffix of b at one point.
// Both parents start at the origin and end at the destination, and so does the child.
func crossover(a, b []string, rng random.Source) []string {
	point := rng.IntN(min(len(a), len(b)))
	child := make([]string, 0, len(b))
	child = append(child, a[:point]...)
	return append(child, b[point:]...)
}

// mutate replaces one intermediate waypoint with a random location.
func (o *Optimizer) mutate(nodes []string) []string {
	if len(nodes) <= 2 {
		return nodes
	}
	out := slices.Clone(nodes)
	ids := o.graph.LocationIDs()
	out[1+o.rng.IntN(len(nodes)-2)] = random.Pick(o.rng, ids)
	return out
}
