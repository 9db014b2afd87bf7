// Package mesh merges per-label triangle meshes into one indexed,
// texture-mapped composite model and serializes it as Wavefront OBJ.
package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Face is a triangle given as three 1-based indices into a vertex list.
type Face [3]int

// Mesh is a single label's surface as produced by an extraction stage.
type Mesh struct {
	Vertices []r3.Vec
	Faces    []Face
}

// Empty reports whether the mesh contributes no triangles.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Faces) == 0
}

// Validate checks that every face references a vertex of this mesh.
func (m *Mesh) Validate(name string) error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 1 || idx > n {
				return &MalformedMeshError{
					Label:  name,
					Face:   i + 1,
					Reason: fmt.Sprintf("index %d outside [1, %d]", idx, n),
				}
			}
		}
	}
	return nil
}

// MalformedMeshError reports a mesh that cannot be merged: a face that
// references a missing vertex, or a record that cannot be parsed.
type MalformedMeshError struct {
	Label string

	// Line is the 1-based source line for parsed meshes, 0 otherwise.
	Line int

	// Face is the 1-based face number for in-memory meshes, 0 otherwise.
	Face int

	Reason string
}

func (e *MalformedMeshError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("malformed mesh %q: line %d: %s", e.Label, e.Line, e.Reason)
	case e.Face > 0:
		return fmt.Sprintf("malformed mesh %q: face %d: %s", e.Label, e.Face, e.Reason)
	default:
		return fmt.Sprintf("malformed mesh %q: %s", e.Label, e.Reason)
	}
}
