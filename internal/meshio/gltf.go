package meshio

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Named is a mesh with the node name it gets in a glTF file.
type Named struct {
	Name string
	Mesh *Mesh
}

// ReadGLB loads every indexed triangle primitive of a glTF or binary glTF
// file, one Mesh per glTF mesh. Node transforms are ignored.
func ReadGLB(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var result []*Mesh
	for _, m := range doc.Meshes {
		mesh := &Mesh{}
		for _, p := range m.Primitives {
			if p.Indices == nil || p.Mode != gltf.PrimitiveTriangles {
				continue
			}
			a, ok := p.Attributes["POSITION"]
			if !ok {
				continue
			}
			pos, err := modeler.ReadPosition(doc, doc.Accessors[a], [][3]float32{})
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %q positions", m.Name)
			}
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*p.Indices], []uint32{})
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %q indices", m.Name)
			}
			offset := uint32(len(mesh.Vertices))
			for _, v := range pos {
				mesh.Vertices = append(mesh.Vertices, r3.Vector{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
			}
			for _, i := range indices {
				mesh.Triangles = append(mesh.Triangles, i+offset)
			}
		}
		result = append(result, mesh)
	}
	return result, nil
}

// WriteGLB saves meshes as a binary glTF file, one node per mesh.
func WriteGLB(path string, meshes ...Named) error {
	doc := gltf.NewDocument()
	for _, n := range meshes {
		positions := make([][3]float32, len(n.Mesh.Vertices))
		for i, v := range n.Mesh.Vertices {
			positions[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
		}
		attributes := map[string]uint32{
			"POSITION": modeler.WritePosition(doc, positions),
		}
		indices := modeler.WriteIndices(doc, n.Mesh.Triangles)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: n.Name,
			Primitives: []*gltf.Primitive{{
				Indices:    gltf.Index(indices),
				Attributes: attributes,
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: n.Name, Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}
	return errors.Wrapf(gltf.SaveBinary(doc, path), "write %s", path)
}
