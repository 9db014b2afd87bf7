package surface

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
	"gonum.org/v1/gonum/spatial/r3"

	"labelmesh/internal/models"
	"labelmesh/pkg/mesh"
)

func blockVolume() *models.Volume {
	vol := models.NewVolume("block", 6, 6, 6)
	for z := 2; z < 4; z++ {
		for y := 2; y < 4; y++ {
			for x := 2; x < 4; x++ {
				vol.Set(x, y, z, 1)
			}
		}
	}
	// a different label that must not be picked up
	vol.Set(0, 0, 0, 2)
	return vol
}

func TestExtractBlock(t *testing.T) {
	mc := &MarchingCubes{Delta: 0.5, SearchIters: 4}
	m, err := mc.Extract(context.Background(), blockVolume(), 1)
	require.NoError(t, err)
	require.False(t, m.Empty())
	require.NoError(t, m.Validate("block"))

	for _, v := range m.Vertices {
		assert.True(t, v.X > 1 && v.X < 5, "vertex %v outside the block", v)
		assert.True(t, v.Y > 1 && v.Y < 5, "vertex %v outside the block", v)
		assert.True(t, v.Z > 1 && v.Z < 5, "vertex %v outside the block", v)
	}

	// extraction is deterministic
	again, err := mc.Extract(context.Background(), blockVolume(), 1)
	require.NoError(t, err)
	assert.Equal(t, m, again)
}

func TestExtractMissingLabel(t *testing.T) {
	mc := &MarchingCubes{}
	m, err := mc.Extract(context.Background(), blockVolume(), 9)
	require.NoError(t, err)
	assert.True(t, m.Empty())
}

func TestExtractCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&MarchingCubes{}).Extract(ctx, blockVolume(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractInvalidVolume(t *testing.T) {
	vol := &models.Volume{Name: "broken", Width: 2, Height: 2, Depth: 2, Data: make([]uint8, 3)}
	_, err := (&MarchingCubes{}).Extract(context.Background(), vol, 1)
	assert.Error(t, err)
}

func TestIndexMeshSharesVertices(t *testing.T) {
	a := model3d.Coord3D{X: 0, Y: 0, Z: 0}
	b := model3d.Coord3D{X: 1, Y: 0, Z: 0}
	c := model3d.Coord3D{X: 0, Y: 1, Z: 0}
	d := model3d.Coord3D{X: 1, Y: 1, Z: 0}
	tris := []*model3d.Triangle{{b, d, c}, {a, b, c}}

	m := indexMesh(tris, r3.Vec{X: 2, Y: 1, Z: 1})
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []mesh.Face{{1, 2, 3}, {2, 4, 3}}, m.Faces)
	assert.Equal(t, r3.Vec{X: 2, Y: 1}, m.Vertices[3])
	assert.NoError(t, m.Validate("quad"))
}

func TestSpacingDefaults(t *testing.T) {
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, (&MarchingCubes{}).scale())
	assert.Equal(t, r3.Vec{X: 1, Y: 2.5, Z: 1}, (&MarchingCubes{Spacing: r3.Vec{Y: 2.5}}).scale())
}
