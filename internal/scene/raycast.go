package scene

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/material"
)

// Intersection is one ray hit. Distance is measured in world units from the ray origin.
// Face is the triangle index for meshes and -1 for bounds-only hits.
type Intersection struct {
	Distance float32
	Point    mgl32.Vec3
	Node     *Node
	Face     int
}

// Raycaster picks nodes along a world-space ray. Hits closer than Near or farther than Far are dropped.
type Raycaster struct {
	Ray  Ray
	Near float32
	Far  float32
}

// NewRaycaster returns a raycaster with an unbounded range.
func NewRaycaster() *Raycaster {
	return &Raycaster{Far: math32.Inf(1)}
}

// SetFromCamera aims the ray from the camera through normalized device coordinates (x, y in [-1, 1]).
func (rc *Raycaster) SetFromCamera(x, y float32, cam *Camera) {
	rc.Ray = cam.RayFromNDC(x, y)
}

// IntersectObjects tests every node in nodes (and, when recursive, their descendants)
// and returns hits sorted nearest first.
func (rc *Raycaster) IntersectObjects(nodes []*Node, recursive bool) []Intersection {
	var hits []Intersection
	for _, n := range nodes {
		hits = rc.intersect(n, recursive, hits)
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// IntersectObject is IntersectObjects for a single root.
func (rc *Raycaster) IntersectObject(n *Node, recursive bool) []Intersection {
	return rc.IntersectObjects([]*Node{n}, recursive)
}

func (rc *Raycaster) intersect(n *Node, recursive bool, dst []Intersection) []Intersection {
	if !n.Visible {
		return dst
	}
	if n.Pickable {
		if hit, ok := rc.intersectNode(n); ok {
			dst = append(dst, hit)
		}
	}
	if recursive {
		for _, c := range n.children {
			dst = rc.intersect(c, true, dst)
		}
	}
	return dst
}

func (rc *Raycaster) intersectNode(n *Node) (Intersection, bool) {
	if n.Geometry == nil || len(n.Geometry.Positions) == 0 {
		return Intersection{}, false
	}
	world := n.WorldMatrix()
	local := rc.Ray.Transform(world.Inv())

	tBox, ok := n.Geometry.Bounds().IntersectRay(local)
	if !ok {
		return Intersection{}, false
	}
	t, face := tBox, -1
	if n.Kind == KindMesh {
		side := material.FrontSide
		if n.Material != nil {
			side = n.Material.Side
		}
		var hit bool
		t, face, hit = intersectGeometry(local, n.Geometry, side)
		if !hit {
			return Intersection{}, false
		}
	}
	point := mgl32.TransformCoordinate(local.At(t), world)
	dist := point.Sub(rc.Ray.Origin).Len()
	if dist < rc.Near || dist > rc.Far {
		return Intersection{}, false
	}
	return Intersection{Distance: dist, Point: point, Node: n, Face: face}, true
}
