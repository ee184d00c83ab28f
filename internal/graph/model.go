package graph

import "fmt"

// Node is a labelled vertex placed at a graph position.
type Node struct {
	ID       string
	Label    string
	Position Point
}

// Edge connects two nodes by ID.
type Edge struct {
	Source string
	Target string
}

// AddNode adds a node. IDs must be unique.
func (g *Graph) AddNode(n Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodeIndex[n.ID]; ok {
		return fmt.Errorf("add node %q: %w", n.ID, ErrDuplicateNode)
	}
	g.nodeIndex[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

// AddEdge connects two existing nodes.
func (g *Graph) AddEdge(e Edge) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range []string{e.Source, e.Target} {
		if _, ok := g.nodeIndex[id]; !ok {
			return fmt.Errorf("add edge %s->%s: node %q: %w", e.Source, e.Target, id, ErrUnknownNode)
		}
	}
	g.edges = append(g.edges, e)
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	i, ok := g.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Nodes returns a copy of the nodes in insertion order.
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Node(nil), g.nodes...)
}

// Edges returns a copy of the edges in insertion order.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Edge(nil), g.edges...)
}
