package mesh

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"labelmesh/pkg/palette"
)

// Object is the group of vertices and faces one label contributed to a Model.
type Object struct {
	Name string

	// VertexStart is the vertex offset captured before the label was merged.
	// The object owns vertices VertexStart+1 .. VertexStart+VertexCount.
	VertexStart int
	VertexCount int

	// FaceStart indexes the object's first face in Model.Faces.
	FaceStart int
	FaceCount int

	// UV is the texture coordinate shared by every vertex of the object.
	UV palette.UV

	// Material, if set, is selected with usemtl right after the object
	// record. Otherwise the object uses the header's default material.
	Material string

	Bounds   r3.Box
	Centroid r3.Vec
}

// Model is the composite model being assembled. Vertices, texture
// coordinates and faces only ever grow; the vertex offset always equals
// len(Vertices).
type Model struct {
	Vertices  []r3.Vec
	TexCoords []palette.UV
	Faces     []Face

	objects []Object
}

// NewModel returns an empty composite model.
func NewModel() *Model {
	return &Model{}
}

// Offset returns the running vertex offset: the number of vertices merged so far.
func (m *Model) Offset() int {
	return len(m.Vertices)
}

// Objects returns the merged objects in merge order.
func (m *Model) Objects() []Object {
	return m.objects
}

// AssignMaterials sets the material of every merged object to the name fn
// returns for it.
func (m *Model) AssignMaterials(fn func(Object) string) {
	for i := range m.objects {
		m.objects[i].Material = fn(m.objects[i])
	}
}

// Merge appends lm to the model as an object called name, tagging each of its
// vertices with uv, and returns the new vertex offset.
//
// Face indices are shifted by the offset captured before the merge. A mesh
// without faces is skipped: no object is recorded and the offset is returned
// unchanged. A mesh whose faces reference missing vertices is rejected with a
// *MalformedMeshError and the model is left untouched.
func (m *Model) Merge(name string, lm *Mesh, uv palette.UV) (int, error) {
	offset := m.Offset()
	if lm.Empty() {
		return offset, nil
	}
	if err := lm.Validate(name); err != nil {
		return offset, err
	}

	obj := Object{
		Name:        name,
		VertexStart: offset,
		VertexCount: len(lm.Vertices),
		FaceStart:   len(m.Faces),
		FaceCount:   len(lm.Faces),
		UV:          uv,
	}
	obj.Bounds, obj.Centroid = summarize(lm.Vertices)

	for _, v := range lm.Vertices {
		m.Vertices = append(m.Vertices, v)
		m.TexCoords = append(m.TexCoords, uv)
	}
	for _, f := range lm.Faces {
		m.Faces = append(m.Faces, Face{f[0] + offset, f[1] + offset, f[2] + offset})
	}
	m.objects = append(m.objects, obj)

	return offset + len(lm.Vertices), nil
}

// summarize returns the bounding box and centroid of a vertex set.
func summarize(vs []r3.Vec) (r3.Box, r3.Vec) {
	if len(vs) == 0 {
		return r3.Box{}, r3.Vec{}
	}
	xs := make([]float64, len(vs))
	ys := make([]float64, len(vs))
	zs := make([]float64, len(vs))
	for i, v := range vs {
		xs[i], ys[i], zs[i] = v.X, v.Y, v.Z
	}
	box := r3.Box{
		Min: r3.Vec{X: floats.Min(xs), Y: floats.Min(ys), Z: floats.Min(zs)},
		Max: r3.Vec{X: floats.Max(xs), Y: floats.Max(ys), Z: floats.Max(zs)},
	}
	centroid := r3.Vec{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil), Z: stat.Mean(zs, nil)}
	return box, centroid
}
