package dag

// Graph holds learning units keyed by ID and the prerequisite edges between
// them. It is built and queried by a single goroutine.
type Graph struct {
	nodes map[string]*node
}

// node is one unit. An edge from a prerequisite to a unit is stored on both
// ends so cycle search can walk forwards and ordering can count inbound edges.
type node struct {
	id string
	// deps are the unit's prerequisites.
	deps map[string]*node
	// dependents are the units that list this one as a prerequisite.
	dependents map[string]*node
}
