package meshio

import (
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
)

func tetrahedron() *Mesh {
	return &Mesh{
		Vertices:  []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}},
		Triangles: []uint32{0, 2, 1, 0, 1, 3, 1, 2, 3, 2, 0, 3},
	}
}

func TestFromTrianglesWelds(t *testing.T) {
	sphere := model3d.NewMeshIcosphere(model3d.Origin, 1, 2)
	mesh := FromTriangles(sphere.TriangleSlice())
	assert.Equal(t, len(sphere.TriangleSlice()), mesh.NumTriangles())
	assert.Len(t, mesh.Vertices, len(sphere.VertexSlice()))

	// Welded, every directed edge has its reverse
	edges := map[[2]uint32]int{}
	for i := 0; i < len(mesh.Triangles); i += 3 {
		for k := 0; k < 3; k++ {
			edges[[2]uint32{mesh.Triangles[i+k], mesh.Triangles[i+(k+1)%3]}]++
		}
	}
	for e, n := range edges {
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, edges[[2]uint32{e[1], e[0]}], "edge %v has no twin", e)
	}
}

func TestSTLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.stl")
	require.NoError(t, Save(path, Named{Name: "tetra", Mesh: tetrahedron()}))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.NumTriangles())
	assert.Len(t, loaded.Vertices, 4)
}

func TestGLBRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.glb")
	require.NoError(t, Save(path,
		Named{Name: "top", Mesh: tetrahedron()},
		Named{Name: "bottom", Mesh: tetrahedron()},
	))

	meshes, err := ReadGLB(path)
	require.NoError(t, err)
	require.Len(t, meshes, 2)
	for _, m := range meshes {
		assert.Equal(t, tetrahedron().Triangles, m.Triangles)
		assert.Equal(t, tetrahedron().Vertices, m.Vertices)
	}

	merged, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, merged.NumTriangles())
	assert.Len(t, merged.Vertices, 8)
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := Load("mesh.obj")
	assert.Error(t, err)
	assert.Error(t, Save("mesh.obj", Named{Mesh: tetrahedron()}))
}
