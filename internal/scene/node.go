package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/material"
)

// Kind is what a node renders as. Only Mesh nodes can become the selection.
type Kind int

const (
	KindGroup Kind = iota
	KindMesh
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindLine:
		return "line"
	default:
		return "group"
	}
}

// Node is one element of the scene graph. Its local transform is position, rotation and scale
// (applied as T*R*S) unless an explicit matrix was set with SetMatrix.
// Invisible nodes and their subtrees are neither drawn nor picked. Pickable=false excludes
// only the node itself from picking; its children are still tested.
type Node struct {
	Name     string
	Kind     Kind
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Geometry *Geometry
	Material *material.Material

	Visible       bool
	Pickable      bool
	CastShadow    bool
	ReceiveShadow bool

	matrix   *mgl32.Mat4
	parent   *Node
	children []*Node
}

// NewGroup returns an empty transform node.
func NewGroup(name string) *Node {
	return &Node{
		Name:     name,
		Kind:     KindGroup,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Visible:  true,
		Pickable: true,
	}
}

// NewMesh returns a mesh node drawing geo with mat.
func NewMesh(name string, geo *Geometry, mat *material.Material) *Node {
	n := NewGroup(name)
	n.Kind = KindMesh
	n.Geometry = geo
	n.Material = mat
	return n
}

// NewLine returns a line node (e.g. a helper); it is picked by its bounds only.
func NewLine(name string, geo *Geometry) *Node {
	n := NewGroup(name)
	n.Kind = KindLine
	n.Geometry = geo
	return n
}

// IsMesh reports whether n is a mesh with geometry.
func (n *Node) IsMesh() bool {
	return n != nil && n.Kind == KindMesh && n.Geometry != nil
}

// Add attaches children to n, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches child from n. It is a no-op if child is not a direct child.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Parent returns the parent node or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// SetRotationY sets the rotation to angle radians about +Y.
func (n *Node) SetRotationY(angle float32) {
	n.Rotation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0})
}

// SetMatrix overrides the TRS fields with an explicit local matrix (glTF "matrix" nodes).
func (n *Node) SetMatrix(m mgl32.Mat4) {
	n.matrix = &m
}

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	if n.matrix != nil {
		return *n.matrix
	}
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(n.Rotation.Mat4()).Mul4(s)
}

// WorldMatrix composes local matrices from the root down to n.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Traverse visits n and its descendants depth first, parents before children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// TraverseVisible is Traverse that skips invisible subtrees.
func (n *Node) TraverseVisible(fn func(*Node)) {
	if !n.Visible {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.TraverseVisible(fn)
	}
}

// WorldBounds returns the world-space AABB of n's own geometry.
func (n *Node) WorldBounds() (AABB, bool) {
	if n.Geometry == nil || len(n.Geometry.Positions) == 0 {
		return AABB{}, false
	}
	return n.Geometry.Bounds().Transform(n.WorldMatrix()), true
}

// SubtreeBounds returns the union of world bounds of every node with geometry under n.
func (n *Node) SubtreeBounds() (AABB, bool) {
	box := EmptyAABB()
	found := false
	n.Traverse(func(c *Node) {
		if b, ok := c.WorldBounds(); ok {
			box = box.Union(b)
			found = true
		}
	})
	return box, found
}
