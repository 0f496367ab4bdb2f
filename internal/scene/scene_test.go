package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/material"
)

const eps = 1e-3

func near(a, b float32) bool {
	return math32.Abs(a-b) < eps
}

func nearVec(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < eps
}

func lookingAtOrigin(z float32) *Camera {
	cam := NewPerspective(75, 800.0/600.0, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, z}
	cam.LookAt(mgl32.Vec3{0, 0, 0})
	return cam
}

func box(name string) *Node {
	return NewMesh(name, NewBox(2, 2, 2), material.NewStandard(material.MustParseColor("white")))
}

func TestNDC(t *testing.T) {
	tests := []struct {
		px, py float32
		wx, wy float32
	}{
		{400, 300, 0, 0},
		{0, 0, -1, 1},
		{800, 600, 1, -1},
		{200, 450, -0.5, -0.5},
	}
	for _, tt := range tests {
		x, y := NDC(tt.px, tt.py, 800, 600)
		if !near(x, tt.wx) || !near(y, tt.wy) {
			t.Errorf("NDC(%v, %v) = (%v, %v), want (%v, %v)", tt.px, tt.py, x, y, tt.wx, tt.wy)
		}
	}
}

func TestRayFromCenterPointsAtTarget(t *testing.T) {
	cam := lookingAtOrigin(10)
	r := cam.RayFromNDC(0, 0)
	if !nearVec(r.Origin, cam.Position) {
		t.Errorf("origin = %v", r.Origin)
	}
	if !nearVec(r.Direction, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("direction = %v", r.Direction)
	}
}

func TestRayCornerDiverges(t *testing.T) {
	cam := lookingAtOrigin(10)
	r := cam.RayFromNDC(-1, 1)
	if r.Direction.X() >= 0 || r.Direction.Y() <= 0 {
		t.Errorf("top-left ray direction = %v", r.Direction)
	}
	// Vertical half angle of a 75 degree fov.
	want := math32.Tan(mgl32.DegToRad(37.5))
	got := r.Direction.Y() / -r.Direction.Z()
	if !near(got, want) {
		t.Errorf("vertical slope = %v, want %v", got, want)
	}
}

func TestIntersectBoxAtCenter(t *testing.T) {
	g := NewGraph()
	b := box("shoe")
	g.Add(b)

	rc := NewRaycaster()
	rc.SetFromCamera(0, 0, lookingAtOrigin(10))
	hits := rc.IntersectObjects(g.Children(), true)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].Node != b {
		t.Errorf("hit %q", hits[0].Node.Name)
	}
	if !near(hits[0].Distance, 9) {
		t.Errorf("distance = %v, want 9", hits[0].Distance)
	}
	if !nearVec(hits[0].Point, mgl32.Vec3{0, 0, 1}) {
		t.Errorf("point = %v", hits[0].Point)
	}
}

func TestIntersectMissInCorner(t *testing.T) {
	g := NewGraph()
	g.Add(box("shoe"))
	rc := NewRaycaster()
	rc.SetFromCamera(-1, 1, lookingAtOrigin(10))
	if hits := rc.IntersectObjects(g.Children(), true); len(hits) != 0 {
		t.Errorf("corner ray hit %d nodes", len(hits))
	}
}

func TestIntersectSortsNearestFirst(t *testing.T) {
	g := NewGraph()
	far := box("far")
	far.Position = mgl32.Vec3{0, 0, -5}
	nearer := box("near")
	nearer.Position = mgl32.Vec3{0, 0, 2}
	g.Add(far, nearer)

	rc := NewRaycaster()
	rc.SetFromCamera(0, 0, lookingAtOrigin(10))
	hits := rc.IntersectObjects(g.Children(), true)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Node != nearer || hits[1].Node != far {
		t.Errorf("order = %q, %q", hits[0].Node.Name, hits[1].Node.Name)
	}
}

func TestIntersectRecursiveUsesWorldTransform(t *testing.T) {
	g := NewGraph()
	model := NewGroup("model")
	model.Scale = mgl32.Vec3{50, 50, 50}
	child := NewMesh("sole", NewBox(0.04, 0.04, 0.04), material.NewStandard(material.MustParseColor("white")))
	child.Position = mgl32.Vec3{0, 0, 0}
	model.Add(child)
	g.Add(model)

	rc := NewRaycaster()
	rc.SetFromCamera(0, 0, lookingAtOrigin(10))

	if hits := rc.IntersectObjects(g.Children(), false); len(hits) != 0 {
		t.Errorf("non-recursive test hit %d nodes", len(hits))
	}
	hits := rc.IntersectObjects(g.Children(), true)
	if len(hits) != 1 || hits[0].Node != child {
		t.Fatalf("recursive hits = %v", hits)
	}
	// Scaled box spans z in [-1, 1].
	if !near(hits[0].Distance, 9) {
		t.Errorf("distance = %v, want 9", hits[0].Distance)
	}
}

func TestIntersectSkipsInvisibleAndUnpickable(t *testing.T) {
	g := NewGraph()
	hidden := box("hidden")
	hidden.Visible = false
	hidden.Add(box("hidden-child"))

	env := NewMesh("environment", NewSphere(500, 15, 7), material.NewStandard(material.MustParseColor("white")))
	env.Material.Side = material.BackSide
	env.Pickable = false
	g.Add(hidden, env)

	rc := NewRaycaster()
	rc.SetFromCamera(0, 0, lookingAtOrigin(10))
	if hits := rc.IntersectObjects(g.Children(), true); len(hits) != 0 {
		t.Errorf("got hits %v", hits)
	}

	env.Pickable = true
	hits := rc.IntersectObjects(g.Children(), true)
	if len(hits) != 1 || hits[0].Node != env {
		t.Fatalf("back-side sphere from inside: hits = %v", hits)
	}
}

func TestMaterialSideCulling(t *testing.T) {
	a := mgl32.Vec3{-1, -1, 0}
	b := mgl32.Vec3{1, -1, 0}
	c := mgl32.Vec3{0, 1, 0}
	front := Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	back := Ray{Origin: mgl32.Vec3{0, 0, -5}, Direction: mgl32.Vec3{0, 0, 1}}

	if _, ok := front.IntersectTriangle(a, b, c, true); !ok {
		t.Error("front face missed with culling")
	}
	if _, ok := back.IntersectTriangle(a, b, c, true); ok {
		t.Error("back face hit with culling")
	}
	if tt, ok := back.IntersectTriangle(a, b, c, false); !ok || !near(tt, 5) {
		t.Errorf("back face without culling: t=%v ok=%v", tt, ok)
	}

	geo := &Geometry{Positions: []mgl32.Vec3{a, b, c}}
	for _, tt := range []struct {
		side      material.Side
		ray       Ray
		wantHit   bool
		direction string
	}{
		{material.FrontSide, front, true, "front"},
		{material.FrontSide, back, false, "back"},
		{material.BackSide, front, false, "front"},
		{material.BackSide, back, true, "back"},
		{material.DoubleSide, back, true, "back"},
	} {
		_, _, hit := intersectGeometry(tt.ray, geo, tt.side)
		if hit != tt.wantHit {
			t.Errorf("side %v from %s: hit=%v, want %v", tt.side, tt.direction, hit, tt.wantHit)
		}
	}
}

func TestLineNodePickedByBounds(t *testing.T) {
	g := NewGraph()
	line := NewLine("axis", &Geometry{Positions: []mgl32.Vec3{{-5, -0.1, -0.1}, {5, 0.1, 0.1}}})
	g.Add(line)
	rc := NewRaycaster()
	rc.SetFromCamera(0, 0, lookingAtOrigin(10))
	hits := rc.IntersectObjects(g.Children(), true)
	if len(hits) != 1 || hits[0].Face != -1 || hits[0].Node.IsMesh() {
		t.Fatalf("hits = %+v", hits)
	}
}

func TestRaycasterRange(t *testing.T) {
	g := NewGraph()
	g.Add(box("shoe"))
	rc := NewRaycaster()
	rc.SetFromCamera(0, 0, lookingAtOrigin(10))
	rc.Far = 5
	if hits := rc.IntersectObjects(g.Children(), true); len(hits) != 0 {
		t.Errorf("hit beyond Far: %v", hits)
	}
}

func TestNodeHierarchy(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	b := NewGroup("b")
	root.Add(a)
	a.Add(b)
	root.Add(b)
	if b.Parent() != root || len(a.Children()) != 0 || len(root.Children()) != 2 {
		t.Error("re-adding did not reparent")
	}

	a.Position = mgl32.Vec3{1, 2, 3}
	a.SetRotationY(math32.Pi / 2)
	c := NewGroup("c")
	c.Position = mgl32.Vec3{1, 0, 0}
	a.Add(c)
	p := mgl32.TransformCoordinate(mgl32.Vec3{}, c.WorldMatrix())
	if !nearVec(p, mgl32.Vec3{1, 2, 2}) {
		t.Errorf("world position = %v, want (1, 2, 2)", p)
	}

	var names []string
	root.Traverse(func(n *Node) { names = append(names, n.Name) })
	if len(names) != 4 || names[0] != "root" || names[1] != "a" || names[2] != "c" || names[3] != "b" {
		t.Errorf("traversal order = %v", names)
	}
}

func TestSetMatrixOverridesTRS(t *testing.T) {
	n := NewGroup("n")
	n.Position = mgl32.Vec3{5, 5, 5}
	n.SetMatrix(mgl32.Translate3D(1, 0, 0))
	p := mgl32.TransformCoordinate(mgl32.Vec3{}, n.WorldMatrix())
	if !nearVec(p, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("position = %v", p)
	}
}

func TestGraphLookups(t *testing.T) {
	g := NewGraph()
	model := NewGroup("model")
	sole := box("sole")
	lace := box("lace")
	model.Add(sole, lace)
	g.Add(model)

	if g.FindByName("lace") != lace {
		t.Error("FindByName(lace)")
	}
	if g.FindByName("tongue") != nil {
		t.Error("FindByName(tongue) should be nil")
	}
	if m := g.Meshes(); len(m) != 2 || m[0] != sole || m[1] != lace {
		t.Errorf("Meshes = %v", m)
	}

	var order []string
	g.Traverse(func(n *Node) { order = append(order, n.Name) })
	want := []string{"scene", "model", "sole", "lace"}
	if len(order) != len(want) {
		t.Fatalf("Traverse = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Traverse = %v, want %v", order, want)
		}
	}
}

func TestBounds(t *testing.T) {
	n := box("b")
	n.Position = mgl32.Vec3{10, 0, 0}
	n.Scale = mgl32.Vec3{2, 1, 1}
	wb, ok := n.WorldBounds()
	if !ok {
		t.Fatal("no bounds")
	}
	if !nearVec(wb.Min, mgl32.Vec3{8, -1, -1}) || !nearVec(wb.Max, mgl32.Vec3{12, 1, 1}) {
		t.Errorf("world bounds = %+v", wb)
	}
	if !nearVec(wb.Center(), mgl32.Vec3{10, 0, 0}) || !nearVec(wb.Size(), mgl32.Vec3{4, 2, 2}) {
		t.Errorf("center %v size %v", wb.Center(), wb.Size())
	}

	root := NewGroup("root")
	other := box("o")
	other.Position = mgl32.Vec3{-10, 0, 0}
	root.Add(n, other)
	sb, ok := root.SubtreeBounds()
	if !ok || !near(sb.Min.X(), -11) || !near(sb.Max.X(), 12) {
		t.Errorf("subtree bounds = %+v", sb)
	}
	if _, ok := NewGroup("empty").SubtreeBounds(); ok {
		t.Error("empty subtree reported bounds")
	}
}

func TestAABBRayInside(t *testing.T) {
	b := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	tt, ok := b.IntersectRay(Ray{Direction: mgl32.Vec3{1, 0, 0}})
	if !ok || tt != 0 {
		t.Errorf("inside: t=%v ok=%v", tt, ok)
	}
	if _, ok := b.IntersectRay(Ray{Origin: mgl32.Vec3{5, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}}); ok {
		t.Error("box behind ray was hit")
	}
}

func TestGeometryGenerators(t *testing.T) {
	bx := NewBox(1, 2, 3)
	if bx.TriangleCount() != 12 || len(bx.Normals) != 24 {
		t.Errorf("box: %d triangles, %d normals", bx.TriangleCount(), len(bx.Normals))
	}
	s := NewSphere(1, 8, 4)
	for _, p := range s.Positions {
		if !near(p.Len(), 1) {
			t.Fatalf("sphere vertex %v not on radius", p)
		}
	}
	// Every sphere triangle faces outward.
	for i := 0; i < s.TriangleCount(); i++ {
		a, b, c := s.Triangle(i)
		pa, pb, pc := s.Positions[a], s.Positions[b], s.Positions[c]
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		if n.Dot(pa.Add(pb).Add(pc)) <= 0 {
			t.Fatalf("sphere triangle %d faces inward", i)
		}
	}
	p := NewPlane(4, 4)
	p.Normals = nil
	p.ComputeNormals()
	for _, n := range p.Normals {
		if !nearVec(n, mgl32.Vec3{0, 1, 0}) {
			t.Errorf("plane normal = %v", n)
		}
	}
}

func TestOrbitDampingConverges(t *testing.T) {
	cam := lookingAtOrigin(30)
	o := NewOrbitControls(cam)
	o.EnableDamping = true
	o.RotateBy(math32.Pi/2, 0)
	for i := 0; i < 400; i++ {
		o.Update()
	}
	if !nearVec(cam.Position, mgl32.Vec3{30, 0, 0}) {
		t.Errorf("position after damped quarter turn = %v", cam.Position)
	}
	if o.Update() {
		t.Error("camera still moving after damping settled")
	}
}

func TestOrbitWithoutDampingAppliesAtOnce(t *testing.T) {
	cam := lookingAtOrigin(30)
	o := NewOrbitControls(cam)
	o.RotateBy(math32.Pi/2, 0)
	if !o.Update() {
		t.Fatal("Update reported no movement")
	}
	if !nearVec(cam.Position, mgl32.Vec3{30, 0, 0}) {
		t.Errorf("position = %v", cam.Position)
	}
}

func TestOrbitClamps(t *testing.T) {
	cam := lookingAtOrigin(30)
	o := NewOrbitControls(cam)
	o.MinDistance = 10
	o.MaxDistance = 40

	o.RotateBy(0, -10)
	o.Update()
	if cam.Position.Y() <= 29 || math32.IsNaN(cam.Position.X()) {
		t.Errorf("polar clamp: position = %v", cam.Position)
	}

	for i := 0; i < 100; i++ {
		o.Dolly(1)
		o.Update()
	}
	if d := cam.Position.Len(); !near(d, 10) {
		t.Errorf("min distance clamp: %v", d)
	}
	for i := 0; i < 100; i++ {
		o.Dolly(-1)
		o.Update()
	}
	if d := cam.Position.Len(); !near(d, 40) {
		t.Errorf("max distance clamp: %v", d)
	}
}

func TestDirectionalToLight(t *testing.T) {
	l := DefaultLights().Directional
	want := mgl32.Vec3{1, 1, 1}.Normalize()
	if !nearVec(l.ToLight(), want) {
		t.Errorf("ToLight = %v", l.ToLight())
	}
}
