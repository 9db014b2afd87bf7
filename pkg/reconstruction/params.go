package reconstruction

import (
	"context"
	"image"
	"time"

	"labelmesh/internal/models"
	"labelmesh/pkg/atlas"
	"labelmesh/pkg/catalog"
	"labelmesh/pkg/mesh"
)

// SurfaceExtractor turns a label volume into a triangle mesh. Meshes are
// handed to the merge step in memory and never persisted on their own.
type SurfaceExtractor interface {
	Extract(ctx context.Context, vol *models.Volume, iso uint8) (*mesh.Mesh, error)
}

// SliceExtractor cuts a label volume into per-slice binary masks along its
// resolved slice axis.
type SliceExtractor interface {
	Slices(vol *models.Volume, iso uint8) (atlas.Orientation, []*image.Gray, error)
}

// VolumeLoader reads the label volume stored at path.
type VolumeLoader func(path string) (*models.Volume, error)

// Params holds the run configuration of a Reconstructor.
type Params struct {
	// InputDir holds one entry per label: a directory of slice images, or a
	// pre-extracted .obj (or .obj.gz) mesh. Other files are ignored.
	InputDir string

	// Inputs lists additional label entries by path.
	Inputs []string

	// OutputFile is the path of the composite OBJ model.
	OutputFile string

	// MaterialFile is the path of the MTL library. The model references it
	// by base name, so both usually share a directory.
	MaterialFile string

	// PaletteFile is the path of the palette image written for indexed
	// palettes.
	PaletteFile string

	// Compress writes the model as a gzip stream and appends ".gz" to
	// OutputFile when missing.
	Compress bool

	// AtlasDir enables atlas mode. Slice images are written there.
	AtlasDir string

	// AtlasFormat is the image format of atlas slices.
	AtlasFormat atlas.Format

	// AtlasReverse stores mask slice k in atlas slice n-1-k.
	AtlasReverse bool

	// BackgroundDir optionally holds greyscale slices painted under the labels.
	BackgroundDir string

	// NumWorkers bounds concurrent extraction. Zero or less means one.
	NumWorkers int

	// IsoLabel is the voxel value that marks label membership.
	IsoLabel uint8

	// Catalog assigns color identities. Nil means catalog.DefaultHSV().
	Catalog *catalog.Catalog
}

// Summary describes a finished run.
type Summary struct {
	// Labels is the number of label inputs processed.
	Labels int

	// Objects is the number of labels that contributed geometry.
	Objects  int
	Vertices int
	Faces    int

	// Empty lists labels whose mesh had no triangles.
	Empty []string

	// Fallbacks lists labels colored with the catalog fallback.
	Fallbacks []string

	// AtlasSlices is the number of atlas images written.
	AtlasSlices int

	// BytesWritten counts the model bytes before compression.
	BytesWritten int64

	Duration time.Duration
}
