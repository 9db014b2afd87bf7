package mesh

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"labelmesh/pkg/palette"
)

// fan builds a mesh of n vertices on a circle-ish strip with n-2 triangles.
func fan(n int) *Mesh {
	m := &Mesh{}
	for i := 0; i < n; i++ {
		m.Vertices = append(m.Vertices, r3.Vec{X: float64(i), Y: float64(i * i), Z: 1})
	}
	for i := 2; i < n; i++ {
		m.Faces = append(m.Faces, Face{1, i, i + 1})
	}
	return m
}

func TestMergeOffsetsAndFaceRanges(t *testing.T) {
	counts := []int{3, 7, 4, 12, 5}
	model := NewModel()

	total := 0
	for i, n := range counts {
		offset, err := model.Merge(string(rune('a'+i)), fan(n), palette.UV{U: float64(i) / 10})
		require.NoError(t, err)
		total += n
		assert.Equal(t, total, offset)
		assert.Equal(t, total, model.Offset())
	}

	require.Len(t, model.Objects(), len(counts))
	assert.Len(t, model.Vertices, total)
	assert.Len(t, model.TexCoords, total)

	start := 0
	for i, obj := range model.Objects() {
		assert.Equal(t, start, obj.VertexStart)
		assert.Equal(t, counts[i], obj.VertexCount)
		for _, f := range model.Faces[obj.FaceStart : obj.FaceStart+obj.FaceCount] {
			for _, idx := range f {
				assert.GreaterOrEqual(t, idx, start+1)
				assert.LessOrEqual(t, idx, start+counts[i])
			}
		}
		for _, uv := range model.TexCoords[obj.VertexStart : obj.VertexStart+obj.VertexCount] {
			assert.Equal(t, obj.UV, uv)
		}
		start += counts[i]
	}
}

func TestMergeSkipsEmptyMesh(t *testing.T) {
	model := NewModel()
	_, err := model.Merge("first", fan(4), palette.UV{})
	require.NoError(t, err)

	offset, err := model.Merge("empty", &Mesh{}, palette.UV{U: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 4, offset)

	// vertices without triangles contribute nothing either
	offset, err = model.Merge("points", &Mesh{Vertices: []r3.Vec{{X: 1}}}, palette.UV{})
	require.NoError(t, err)
	assert.Equal(t, 4, offset)

	offset, err = model.Merge("nil", nil, palette.UV{})
	require.NoError(t, err)
	assert.Equal(t, 4, offset)

	assert.Len(t, model.Objects(), 1)
	assert.Len(t, model.Vertices, 4)
}

func TestMergeRejectsDanglingIndices(t *testing.T) {
	model := NewModel()
	_, err := model.Merge("ok", fan(3), palette.UV{})
	require.NoError(t, err)

	bad := fan(3)
	bad.Faces = append(bad.Faces, Face{1, 2, 4})
	offset, err := model.Merge("bad", bad, palette.UV{})
	require.Error(t, err)

	var merr *MalformedMeshError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "bad", merr.Label)
	assert.Equal(t, 2, merr.Face)

	// the model is untouched
	assert.Equal(t, 3, offset)
	assert.Equal(t, 3, model.Offset())
	assert.Len(t, model.Objects(), 1)
	assert.Len(t, model.Faces, 1)

	zero := fan(3)
	zero.Faces[0][1] = 0
	_, err = model.Merge("zero", zero, palette.UV{})
	assert.True(t, errors.As(err, &merr))
}

func TestMergeThreeLabelScenario(t *testing.T) {
	enc, err := palette.NewEncoder(palette.Indexed, make(palette.Table, 5))
	require.NoError(t, err)

	labels := []struct {
		name  string
		mesh  *Mesh
		index int
	}{
		{"a", fan(4), 1},
		{"b", &Mesh{}, 2},
		{"c", fan(6), 3},
	}

	model := NewModel()
	offset := 0
	for _, l := range labels {
		uv, err := enc.Encode(palette.Index(l.index))
		require.NoError(t, err)
		offset, err = model.Merge(l.name, l.mesh, uv)
		require.NoError(t, err)
	}

	assert.Equal(t, 10, offset)
	objs := model.Objects()
	require.Len(t, objs, 2)
	assert.Equal(t, "a", objs[0].Name)
	assert.Equal(t, "c", objs[1].Name)
	assert.InDelta(t, 1.5/5, objs[0].UV.U, 1e-12)
	assert.InDelta(t, 3.5/5, objs[1].UV.U, 1e-12)
	assert.Equal(t, 0.0, objs[0].UV.V)
	assert.Equal(t, 0.0, objs[1].UV.V)
}

func TestObjectSummary(t *testing.T) {
	m := &Mesh{
		Vertices: []r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: 4, Z: 6}},
		Faces:    []Face{{1, 2, 3}},
	}
	model := NewModel()
	_, err := model.Merge("tri", m, palette.UV{})
	require.NoError(t, err)

	obj := model.Objects()[0]
	assert.Equal(t, r3.Vec{X: 0, Y: 0, Z: 0}, obj.Bounds.Min)
	assert.Equal(t, r3.Vec{X: 2, Y: 4, Z: 6}, obj.Bounds.Max)
	assert.InDelta(t, 2.0/3, obj.Centroid.X, 1e-12)
	assert.InDelta(t, 4.0/3, obj.Centroid.Y, 1e-12)
	assert.InDelta(t, 2.0, obj.Centroid.Z, 1e-12)
}

func TestWriteOBJ(t *testing.T) {
	model := NewModel()
	a := &Mesh{
		Vertices: []r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1.5, Z: 0}},
		Faces:    []Face{{1, 2, 3}},
	}
	b := &Mesh{
		Vertices: []r3.Vec{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}},
		Faces:    []Face{{3, 2, 1}},
	}
	_, err := model.Merge("liver.nii.gz", a, palette.UV{U: 0.25, V: 0.5})
	require.NoError(t, err)
	_, err = model.Merge("spleen.nii.gz", b, palette.UV{U: 0.75, V: 0.005})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := model.WriteOBJ(&buf, "material.mtl")
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	want := strings.Join([]string{
		"mtllib material.mtl",
		"usemtl default",
		"o liver.nii.gz",
		"v 0 0 0", "vt 0.25 0.5",
		"v 1 0 0", "vt 0.25 0.5",
		"v 0 1.5 0", "vt 0.25 0.5",
		"f 1/1 2/2 3/3",
		"o spleen.nii.gz",
		"v 0 0 1", "vt 0.75 0.005",
		"v 1 0 1", "vt 0.75 0.005",
		"v 0 1 1", "vt 0.75 0.005",
		"f 6/6 5/5 4/4",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())

	// the written model parses back with the same geometry
	parsed, err := ReadOBJ(&buf, "composite")
	require.NoError(t, err)
	assert.Equal(t, model.Vertices, parsed.Vertices)
	assert.Equal(t, model.Faces, parsed.Faces)
}

func TestWriteOBJObjectMaterials(t *testing.T) {
	model := NewModel()
	tri := &Mesh{
		Vertices: []r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		Faces:    []Face{{1, 2, 3}},
	}
	_, err := model.Merge("heart", tri, palette.UV{U: 0, V: 0.995})
	require.NoError(t, err)
	_, err = model.Merge("liver", tri, palette.UV{U: 1.0 / 3, V: 0.995})
	require.NoError(t, err)
	model.AssignMaterials(func(obj Object) string { return obj.Name })

	var buf bytes.Buffer
	_, err = model.WriteOBJ(&buf, "material.mtl")
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "mtllib material.mtl\nusemtl default\n"))
	assert.Contains(t, out, "o heart\nusemtl heart\nv ")
	assert.Contains(t, out, "o liver\nusemtl liver\nv ")
	for _, obj := range model.Objects() {
		assert.Equal(t, obj.Name, obj.Material)
	}

	// usemtl records do not disturb parsing
	parsed, err := ReadOBJ(&buf, "composite")
	require.NoError(t, err)
	assert.Equal(t, model.Faces, parsed.Faces)
}

func TestWriteMTL(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMTL(&buf, []Material{
		{Name: DefaultMaterial, Diffuse: colorWhite, Texture: "palette.png"},
		{Name: "heart.nii.gz", Diffuse: colorRed},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "newmtl default\n")
	assert.Contains(t, out, "Kd 1.000000 1.000000 1.000000\n")
	assert.Contains(t, out, "map_Kd palette.png\n")
	assert.Contains(t, out, "newmtl heart.nii.gz\nKa 0.000000 0.000000 0.000000\nKd 1.000000 0.000000 0.000000\n")
	assert.Equal(t, 1, strings.Count(out, "map_Kd"))
}
