package scene

import "product-viewer/internal/material"

// Graph is the scene: a root node, the lights, and an optional background environment.
type Graph struct {
	Root        *Node
	Lights      Lights
	Environment *material.Texture
}

// NewGraph returns a graph with an empty root and default lights.
func NewGraph() *Graph {
	return &Graph{
		Root:   NewGroup("scene"),
		Lights: DefaultLights(),
	}
}

// Add attaches nodes to the root.
func (g *Graph) Add(nodes ...*Node) {
	g.Root.Add(nodes...)
}

// Children returns the root's direct children (the set picking starts from).
func (g *Graph) Children() []*Node {
	return g.Root.Children()
}

// Traverse visits every node depth first, parents before children.
func (g *Graph) Traverse(fn func(*Node)) {
	g.Root.Traverse(fn)
}

// FindByName returns the first node named name in depth-first order, or nil.
func (g *Graph) FindByName(name string) *Node {
	var found *Node
	g.Root.Traverse(func(n *Node) {
		if found == nil && n.Name == name {
			found = n
		}
	})
	return found
}

// Meshes returns every mesh node in depth-first order.
func (g *Graph) Meshes() []*Node {
	var out []*Node
	g.Root.Traverse(func(n *Node) {
		if n.IsMesh() {
			out = append(out, n)
		}
	})
	return out
}
