package assets

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"product-viewer/internal/material"
	"product-viewer/internal/scene"
)

// ErrNoScene is returned for documents without any node to show.
var ErrNoScene = errors.New("gltf: document has no scene")

// DecodeModel parses a glTF or GLB document into a node subtree rooted at a group named name.
// Only triangle primitives are kept; each becomes a mesh with its own white standard material.
// Buffers must be embedded (GLB binary chunk or data URIs).
func DecodeModel(name string, data []byte) (*scene.Node, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("gltf: decode: %w", err)
	}
	roots, err := sceneRoots(doc)
	if err != nil {
		return nil, err
	}
	b := &modelBuilder{doc: doc, meshes: make(map[int][]*scene.Geometry)}
	root := scene.NewGroup(name)
	for _, i := range roots {
		n, err := b.node(i, 0)
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}
	return root, nil
}

// sceneRoots returns the root node indices of the default scene, falling back to the first
// scene and then to every parentless node.
func sceneRoots(doc *gltf.Document) ([]int, error) {
	if len(doc.Scenes) > 0 {
		i := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			i = *doc.Scene
		}
		if len(doc.Scenes[i].Nodes) > 0 {
			return doc.Scenes[i].Nodes, nil
		}
	}
	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	if len(roots) == 0 {
		return nil, ErrNoScene
	}
	return roots, nil
}

// maxDepth guards against cyclic node references in malformed files.
const maxDepth = 64

type modelBuilder struct {
	doc    *gltf.Document
	meshes map[int][]*scene.Geometry
}

func (b *modelBuilder) node(i, depth int) (*scene.Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("gltf: node hierarchy deeper than %d", maxDepth)
	}
	if i < 0 || i >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("gltf: node index %d out of range", i)
	}
	src := b.doc.Nodes[i]
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("node%d", i)
	}

	var n *scene.Node
	if src.Mesh != nil {
		geos, err := b.mesh(*src.Mesh)
		if err != nil {
			return nil, err
		}
		switch len(geos) {
		case 0:
			n = scene.NewGroup(name)
		case 1:
			n = newMesh(name, geos[0])
		default:
			n = scene.NewGroup(name)
			for j, g := range geos {
				n.Add(newMesh(fmt.Sprintf("%s_%d", name, j), g))
			}
		}
	} else {
		n = scene.NewGroup(name)
	}
	applyTransform(n, src)

	for _, c := range src.Children {
		child, err := b.node(c, depth+1)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func newMesh(name string, g *scene.Geometry) *scene.Node {
	return scene.NewMesh(name, g, material.NewStandard(material.MustParseColor("white")))
}

func applyTransform(n *scene.Node, src *gltf.Node) {
	if src.Matrix != [16]float64{} && src.Matrix != gltf.DefaultMatrix {
		var m mgl32.Mat4
		for i, v := range src.Matrix {
			m[i] = float32(v)
		}
		n.SetMatrix(m)
		return
	}
	t := src.TranslationOrDefault()
	r := src.RotationOrDefault()
	s := src.ScaleOrDefault()
	n.Position = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
	n.Rotation = mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}.Normalize()
	n.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
}

// mesh decodes the triangle primitives of mesh i. Results are cached since several nodes
// may instance the same mesh.
func (b *modelBuilder) mesh(i int) ([]*scene.Geometry, error) {
	if geos, ok := b.meshes[i]; ok {
		return geos, nil
	}
	if i < 0 || i >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("gltf: mesh index %d out of range", i)
	}
	var geos []*scene.Geometry
	for j, p := range b.doc.Meshes[i].Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		g, err := b.primitive(p)
		if err != nil {
			return nil, fmt.Errorf("gltf: mesh %d primitive %d: %w", i, j, err)
		}
		geos = append(geos, g)
	}
	b.meshes[i] = geos
	return geos, nil
}

func (b *modelBuilder) primitive(p *gltf.Primitive) (*scene.Geometry, error) {
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("missing POSITION attribute")
	}
	acr, err := b.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(b.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	g := &scene.Geometry{Positions: make([]mgl32.Vec3, len(positions))}
	for i, v := range positions {
		g.Positions[i] = mgl32.Vec3(v)
	}

	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		acr, err := b.accessor(idx)
		if err != nil {
			return nil, err
		}
		normals, err := modeler.ReadNormal(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		if len(normals) == len(positions) {
			g.Normals = make([]mgl32.Vec3, len(normals))
			for i, v := range normals {
				g.Normals[i] = mgl32.Vec3(v)
			}
		}
	}
	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := b.accessor(idx)
		if err != nil {
			return nil, err
		}
		uvs, err := modeler.ReadTextureCoord(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("uvs: %w", err)
		}
		if len(uvs) == len(positions) {
			g.UVs = make([]mgl32.Vec2, len(uvs))
			for i, v := range uvs {
				g.UVs[i] = mgl32.Vec2(v)
			}
		}
	}

	if p.Indices != nil {
		acr, err := b.accessor(*p.Indices)
		if err != nil {
			return nil, err
		}
		indices, err := modeler.ReadIndices(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		for _, ix := range indices {
			if int(ix) >= len(positions) {
				return nil, fmt.Errorf("index %d out of range", ix)
			}
		}
		g.Indices = indices
	} else {
		g.Indices = make([]uint32, len(positions)-len(positions)%3)
		for i := range g.Indices {
			g.Indices[i] = uint32(i)
		}
	}
	if g.Normals == nil {
		g.ComputeNormals()
	}
	return g, nil
}

func (b *modelBuilder) accessor(i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", i)
	}
	return b.doc.Accessors[i], nil
}
