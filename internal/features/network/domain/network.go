package domain

import "time"

// Summary describes a generated network.
type Summary struct {
	GeneratedAt    time.Time `json:"generated_at"`
	TotalLocations int       `json:"total_locations"`
	TotalSuppliers int       `json:"total_suppliers"`
	TotalProducts  int       `json:"total_products"`
	TotalRoutes    int       `json:"total_routes"`
	Seed           uint64    `json:"seed"`
}

// Network is the synthetic logistics world. It is read-only once built.
type Network struct {
	Locations  []Location `json:"locations"`
	Suppliers  []Supplier `json:"suppliers"`
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
	Edges      []Edge     `json:"routes"`
	Summary    Summary    `json:"metadata"`

	locationIdx map[string]int
	supplierIdx map[string]int
	productIdx  map[string]int
	categoryIdx map[string]int
	outgoing    map[string][]int
}

// NewNetwork indexes the given collections.
func NewNetwork(locations []Location, suppliers []Supplier, products []Product, categories []Category, edges []Edge) *Network {
	n := &Network{
		Locations:   locations,
		Suppliers:   suppliers,
		Products:    products,
		Categories:  categories,
		Edges:       edges,
		locationIdx: make(map[string]int, len(locations)),
		supplierIdx: make(map[string]int, len(suppliers)),
		productIdx:  make(map[string]int, len(products)),
		categoryIdx: make(map[string]int, len(categories)),
		outgoing:    make(map[string][]int, len(locations)),
	}
	for i, l := range locations {
		n.locationIdx[l.ID] = i
	}
	for i, s := range suppliers {
		n.supplierIdx[s.ID] = i
	}
	for i, p := range products {
		n.productIdx[p.ID] = i
	}
	for i, c := range categories {
		n.categoryIdx[c.Name] = i
	}
	for i, e := range edges {
		n.outgoing[e.OriginID] = append(n.outgoing[e.OriginID], i)
	}

	n.Summary = Summary{
		TotalLocations: len(locations),
		TotalSuppliers: len(suppliers),
		TotalProducts:  len(products),
		TotalRoutes:    len(edges),
	}
	return n
}

// LocationIDs returns every location id in generation order.
func (n *Network) LocationIDs() []string {
	ids := make([]string, len(n.Locations))
	for i, l := range n.Locations {
		ids[i] = l.ID
	}
	return ids
}

// Location looks up a location by id.
func (n *Network) Location(id string) (Location, bool) {
	i, ok := n.locationIdx[id]
	if !ok {
		return Location{}, false
	}
	return n.Locations[i], true
}

// Outgoing returns the edges leaving a location.
func (n *Network) Outgoing(id string) []Edge {
	idx := n.outgoing[id]
	out := make([]Edge, len(idx))
	for i, j := range idx {
		out[i] = n.Edges[j]
	}
	return out
}

// EdgesBetween returns every direct edge from origin to destination.
func (n *Network) EdgesBetween(origin, destination string) []Edge {
	var out []Edge
	for _, j := range n.outgoing[origin] {
		if n.Edges[j].DestinationID == destination {
			out = append(out, n.Edges[j])
		}
	}
	return out
}

// Supplier looks up a supplier by id.
func (n *Network) Supplier(id string) (Supplier, bool) {
	i, ok := n.supplierIdx[id]
	if !ok {
		return Supplier{}, false
	}
	return n.Suppliers[i], true
}

// Product looks up a product by id.
func (n *Network) Product(id string) (Product, bool) {
	i, ok := n.productIdx[id]
	if !ok {
		return Product{}, false
	}
	return n.Products[i], true
}

// Category looks up a category by name.
func (n *Network) Category(name string) (Category, bool) {
	i, ok := n.categoryIdx[name]
	if !ok {
		return Category{}, false
	}
	return n.Categories[i], true
}
