// Package surface extracts label surfaces from voxel volumes.
package surface

import (
	"context"
	"math"
	"sort"

	"github.com/unixpickle/model3d/model3d"
	"gonum.org/v1/gonum/spatial/r3"

	"labelmesh/internal/models"
	"labelmesh/pkg/mesh"
)

// MarchingCubes extracts the boundary of every voxel carrying the iso label
// using model3d's marching cubes search.
type MarchingCubes struct {
	// Delta is the sampling step in voxels. Zero means 1.
	Delta float64

	// SearchIters is the number of bisection steps used to refine each
	// vertex onto the voxel boundary.
	SearchIters int

	// SmoothIters runs area-minimizing smoothing on the result when positive.
	SmoothIters int

	// Spacing scales voxel coordinates into model coordinates. A zero
	// component means 1.
	Spacing r3.Vec
}

// Extract returns the surface as an indexed mesh. A volume without any
// voxel of the iso label yields an empty mesh.
func (m *MarchingCubes) Extract(ctx context.Context, vol *models.Volume, iso uint8) (*mesh.Mesh, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := vol.Validate(); err != nil {
		return nil, err
	}
	if vol.Count(iso) == 0 {
		return &mesh.Mesh{}, nil
	}

	delta := m.Delta
	if delta <= 0 {
		delta = 1
	}
	solid := &labelSolid{vol: vol, iso: iso}
	surf := model3d.MarchingCubesSearch(solid, delta, m.SearchIters)
	if m.SmoothIters > 0 {
		surf = surf.SmoothAreas(0.1, m.SmoothIters)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return indexMesh(surf.TriangleSlice(), m.scale()), nil
}

func (m *MarchingCubes) scale() r3.Vec {
	s := m.Spacing
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	if s.Z == 0 {
		s.Z = 1
	}
	return s
}

// labelSolid is a model3d.Solid covering the unit cubes of the voxels that
// carry the iso label. Voxel (x, y, z) spans [x, x+1) on each axis.
type labelSolid struct {
	vol *models.Volume
	iso uint8
}

// Min pads the volume by one voxel so the surface closes at the border.
func (l *labelSolid) Min() model3d.Coord3D {
	return model3d.Coord3D{X: -1, Y: -1, Z: -1}
}

func (l *labelSolid) Max() model3d.Coord3D {
	return model3d.Coord3D{
		X: float64(l.vol.Width + 1),
		Y: float64(l.vol.Height + 1),
		Z: float64(l.vol.Depth + 1),
	}
}

func (l *labelSolid) Contains(c model3d.Coord3D) bool {
	x := int(math.Floor(c.X))
	y := int(math.Floor(c.Y))
	z := int(math.Floor(c.Z))
	return l.vol.At(x, y, z) == l.iso
}

// indexMesh converts a triangle soup into an indexed mesh, sharing
// vertices with identical coordinates. Triangles are sorted first so the
// output does not depend on model3d's internal ordering.
func indexMesh(tris []*model3d.Triangle, scale r3.Vec) *mesh.Mesh {
	sort.Slice(tris, func(i, j int) bool {
		return triangleLess(tris[i], tris[j])
	})

	out := &mesh.Mesh{}
	index := map[model3d.Coord3D]int{}
	for _, t := range tris {
		var f mesh.Face
		for i, c := range t {
			idx, ok := index[c]
			if !ok {
				out.Vertices = append(out.Vertices, r3.Vec{
					X: c.X * scale.X,
					Y: c.Y * scale.Y,
					Z: c.Z * scale.Z,
				})
				idx = len(out.Vertices)
				index[c] = idx
			}
			f[i] = idx
		}
		out.Faces = append(out.Faces, f)
	}
	return out
}

func triangleLess(a, b *model3d.Triangle) bool {
	for i := range a {
		if a[i] != b[i] {
			return coordLess(a[i], b[i])
		}
	}
	return false
}

func coordLess(a, b model3d.Coord3D) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
