// Package meshio reads and writes indexed triangle meshes as STL and binary
// glTF.
package meshio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Mesh is an indexed triangle mesh. Triangles holds three vertex indices per
// triangle, counterclockwise when seen from outside.
type Mesh struct {
	Vertices  []r3.Vector
	Triangles []uint32
}

// NumTriangles is the number of triangles in the index buffer.
func (m *Mesh) NumTriangles() int {
	return len(m.Triangles) / 3
}

// FromTriangles builds an indexed mesh from a triangle soup. Corners with
// exactly equal coordinates become one vertex, so a closed STL surface becomes
// a closed indexed mesh.
func FromTriangles(tris []*model3d.Triangle) *Mesh {
	m := &Mesh{}
	index := map[model3d.Coord3D]uint32{}
	for _, t := range tris {
		for _, c := range t {
			i, ok := index[c]
			if !ok {
				i = uint32(len(m.Vertices))
				index[c] = i
				m.Vertices = append(m.Vertices, r3.Vector{X: c.X, Y: c.Y, Z: c.Z})
			}
			m.Triangles = append(m.Triangles, i)
		}
	}
	return m
}

// ToTriangles expands the mesh into a triangle soup.
func (m *Mesh) ToTriangles() []*model3d.Triangle {
	tris := make([]*model3d.Triangle, 0, m.NumTriangles())
	coord := func(i uint32) model3d.Coord3D {
		v := m.Vertices[i]
		return model3d.XYZ(v.X, v.Y, v.Z)
	}
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		tris = append(tris, &model3d.Triangle{
			coord(m.Triangles[i]),
			coord(m.Triangles[i+1]),
			coord(m.Triangles[i+2]),
		})
	}
	return tris
}

// ReadSTL loads an STL file, binary or ASCII.
func ReadSTL(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tris, err := model3d.ReadSTL(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return FromTriangles(tris), nil
}

// WriteSTL saves the mesh as a binary STL file.
func WriteSTL(path string, m *Mesh) error {
	mesh := model3d.NewMeshTriangles(m.ToTriangles())
	return errors.Wrapf(mesh.SaveGroupedSTL(path), "write %s", path)
}

// Load reads a mesh, choosing the format by file extension. Every mesh of a
// glTF file is merged into one.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return ReadSTL(path)
	case ".glb", ".gltf":
		meshes, err := ReadGLB(path)
		if err != nil {
			return nil, err
		}
		return Merge(meshes...), nil
	}
	return nil, errors.Errorf("unsupported mesh format: %s", path)
}

// Save writes named meshes. STL has no notion of separate meshes, so they
// are merged; glTF keeps one node per mesh.
func Save(path string, meshes ...Named) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		parts := make([]*Mesh, len(meshes))
		for i, n := range meshes {
			parts[i] = n.Mesh
		}
		return WriteSTL(path, Merge(parts...))
	case ".glb":
		return WriteGLB(path, meshes...)
	}
	return errors.Errorf("unsupported mesh format: %s", path)
}

// Merge concatenates meshes without welding.
func Merge(meshes ...*Mesh) *Mesh {
	result := &Mesh{}
	for _, m := range meshes {
		offset := uint32(len(result.Vertices))
		result.Vertices = append(result.Vertices, m.Vertices...)
		for _, i := range m.Triangles {
			result.Triangles = append(result.Triangles, i+offset)
		}
	}
	return result
}
