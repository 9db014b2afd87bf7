// Package reconstruction runs the labelmesh pipeline: it turns a set of
// per-label volumes or meshes into one composite, palette-colored OBJ model
// and, optionally, a colorized slice atlas.
package reconstruction

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"labelmesh/internal/logger"
	"labelmesh/internal/models"
	"labelmesh/pkg/atlas"
	"labelmesh/pkg/catalog"
	"labelmesh/pkg/mesh"
	"labelmesh/pkg/palette"
	"labelmesh/pkg/surface"
	"labelmesh/pkg/volume"
)

type inputKind int

const (
	stackInput inputKind = iota
	meshInput
)

// label is one input of the run and, after extraction, its results.
type label struct {
	name string
	path string
	kind inputKind

	res   catalog.Resolution
	uv    palette.UV
	color color.RGBA

	mesh        *mesh.Mesh
	orientation atlas.Orientation
	masks       []*image.Gray
}

// Reconstructor handles the composite model build.
//
// The process consists of these steps:
// 1. Discovering label inputs and sorting them by name
// 2. Resolving each label's color identity through the catalog
// 3. Extracting surfaces (and atlas masks) concurrently
// 4. Merging meshes into the composite model in label order, and folding
// masks into the atlas
// 5. Writing the model, material library, palette image and atlas
//
// Nothing is written until every label has been merged, so a failed run
// leaves no partial output behind.
type Reconstructor struct {
	params *Params

	// Surface, Slicer and Loader are the extraction collaborators. They
	// default to the marching cubes extractor, the axis slicer and the
	// slice stack loader.
	Surface SurfaceExtractor
	Slicer  SliceExtractor
	Loader  VolumeLoader

	labels  []*label
	encoder *palette.Encoder
	model   *mesh.Model
	atlas   *atlas.Atlas
	summary Summary
}

// NewReconstructor creates a new reconstructor instance with the provided parameters.
func NewReconstructor(params *Params) *Reconstructor {
	return &Reconstructor{
		params:  params,
		Surface: &surface.MarchingCubes{Delta: 1, SearchIters: 8},
		Slicer:  volume.Slicer{},
		Loader:  volume.LoadStack,
	}
}

// Process runs the complete pipeline and returns a summary of the run. The
// first error aborts the run.
func (r *Reconstructor) Process(ctx context.Context) (*Summary, error) {
	start := time.Now()
	r.summary = Summary{}

	// Step 1: Discover label inputs
	logger.Info("Step 1: Discovering label inputs...")
	if err := r.discoverLabels(); err != nil {
		return nil, errors.Wrap(err, "failed to discover labels")
	}

	// Step 2: Resolve colors
	logger.Info("Step 2: Resolving label colors...")
	if err := r.resolveColors(); err != nil {
		return nil, errors.Wrap(err, "failed to resolve label colors")
	}

	// Step 3: Extract surfaces in parallel
	logger.Info("Step 3: Extracting label surfaces...",
		zap.Int("labels", len(r.labels)),
		zap.Int("workers", r.workers()))
	if err := r.extract(ctx); err != nil {
		return nil, err
	}

	// Step 4: Merge in label order
	logger.Info("Step 4: Merging labels into the composite model...")
	if err := r.merge(); err != nil {
		return nil, err
	}

	// Step 5: Write outputs
	logger.Info("Step 5: Writing outputs...")
	if err := r.writeOutputs(); err != nil {
		return nil, errors.Wrap(err, "failed to write outputs")
	}

	r.summary.Duration = time.Since(start)
	logger.Info("Reconstruction complete",
		zap.Int("objects", r.summary.Objects),
		zap.String("vertices", humanize.Comma(int64(r.summary.Vertices))),
		zap.String("faces", humanize.Comma(int64(r.summary.Faces))),
		zap.String("model", humanize.Bytes(uint64(r.summary.BytesWritten))),
		zap.Duration("elapsed", r.summary.Duration))

	summary := r.summary
	return &summary, nil
}

// Model returns the composite model of the last run.
func (r *Reconstructor) Model() *mesh.Model {
	return r.model
}

func (r *Reconstructor) workers() int {
	if r.params.NumWorkers < 1 {
		return 1
	}
	return r.params.NumWorkers
}

func (r *Reconstructor) atlasEnabled() bool {
	return r.params.AtlasDir != ""
}

// discoverLabels collects the label inputs. Labels are named by their entry
// name, minus a trailing ".obj" or ".obj.gz" for meshes, and sorted by name.
func (r *Reconstructor) discoverLabels() error {
	var paths []string
	if r.params.InputDir != "" {
		entries, err := os.ReadDir(r.params.InputDir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			paths = append(paths, filepath.Join(r.params.InputDir, e.Name()))
		}
	}
	paths = append(paths, r.params.Inputs...)

	r.labels = nil
	seen := map[string]string{}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return err
		}

		l := &label{path: p, name: filepath.Base(p)}
		switch {
		case info.IsDir():
			l.kind = stackInput
		case isMeshFile(l.name):
			l.kind = meshInput
			l.name = meshLabel(l.name)
		default:
			logger.Debug("Ignoring input", zap.String("path", p))
			continue
		}

		if prev, ok := seen[l.name]; ok {
			return errors.Errorf("label %q is provided by both %s and %s", l.name, prev, p)
		}
		seen[l.name] = p
		r.labels = append(r.labels, l)
	}

	if len(r.labels) == 0 {
		return errors.New("no label inputs found")
	}
	sort.Slice(r.labels, func(i, j int) bool {
		return r.labels[i].name < r.labels[j].name
	})
	r.summary.Labels = len(r.labels)
	logger.Info("Found label inputs", zap.Int("count", len(r.labels)))
	return nil
}

func isMeshFile(name string) bool {
	name = strings.ToLower(name)
	return strings.HasSuffix(name, ".obj") || strings.HasSuffix(name, ".obj.gz")
}

// meshLabel strips the mesh extension from a file name, in any letter case.
func meshLabel(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range []string{".obj.gz", ".obj"} {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// resolveColors assigns every label its identity, texture coordinate and
// color. Unknown labels get the catalog fallback and a warning.
func (r *Reconstructor) resolveColors() error {
	cat := r.params.Catalog
	if cat == nil {
		cat = catalog.DefaultHSV()
	}
	enc, err := cat.Encoder()
	if err != nil {
		return err
	}
	r.encoder = enc

	for _, l := range r.labels {
		l.res = cat.Resolve(l.name)
		if l.res.Fallback {
			logger.Warn("Label not in catalog, using fallback color",
				zap.String("label", l.name),
				zap.Stringer("identity", l.res.Identity))
			r.summary.Fallbacks = append(r.summary.Fallbacks, l.name)
		}
		if l.uv, err = enc.Encode(l.res.Identity); err != nil {
			return errors.Wrapf(err, "label %s", l.name)
		}
		if l.color, err = enc.Color(l.res.Identity); err != nil {
			return errors.Wrapf(err, "label %s", l.name)
		}
	}
	return nil
}

// extract runs the collaborators for every label on a bounded worker pool.
// Results are stored on the label, so the merge order does not depend on
// completion order.
func (r *Reconstructor) extract(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())

	for _, l := range r.labels {
		l := l
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.extractLabel(ctx, l); err != nil {
				return errors.Wrapf(err, "label %s", l.name)
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *Reconstructor) extractLabel(ctx context.Context, l *label) error {
	if l.kind == meshInput {
		m, err := readMesh(l.path, l.name)
		if err != nil {
			return err
		}
		l.mesh = m
		if r.atlasEnabled() {
			logger.Warn("Mesh input has no volume, skipping it in the atlas", zap.String("label", l.name))
		}
		return nil
	}

	vol, err := r.Loader(l.path)
	if err != nil {
		return errors.Wrap(err, "load volume")
	}
	vol.Name = l.name

	l.mesh, err = r.Surface.Extract(ctx, vol, r.params.IsoLabel)
	if err != nil {
		return errors.Wrap(err, "extract surface")
	}

	if r.atlasEnabled() {
		l.orientation, l.masks, err = r.Slicer.Slices(vol, r.params.IsoLabel)
		if err != nil {
			return errors.Wrap(err, "extract slices")
		}
	}

	logger.Debug("Extracted label",
		zap.String("label", l.name),
		zap.String("shape", volumeShape(vol)),
		zap.Int("vertices", vertexCount(l.mesh)),
		zap.Int("slices", len(l.masks)))
	return nil
}

func vertexCount(m *mesh.Mesh) int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

func readMesh(path, name string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return mesh.ReadOBJ(f, name)
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "open gzip mesh")
	}
	defer zr.Close()
	return mesh.ReadOBJ(zr, name)
}

// merge appends every label to the composite model in sorted order and
// composites its masks into the atlas.
func (r *Reconstructor) merge() error {
	r.model = mesh.NewModel()
	if r.atlasEnabled() {
		r.atlas = atlas.New(r.params.AtlasReverse)
		if r.params.BackgroundDir != "" {
			bg, err := volume.LoadSlices(r.params.BackgroundDir)
			if err != nil {
				return errors.Wrap(err, "load atlas background")
			}
			if err := r.atlas.Seed(models.Images(bg)); err != nil {
				return err
			}
		}
	} else {
		r.atlas = nil
	}

	for _, l := range r.labels {
		if l.mesh.Empty() {
			logger.Info("Label has no surface, skipping", zap.String("label", l.name))
			r.summary.Empty = append(r.summary.Empty, l.name)
		} else {
			offset, err := r.model.Merge(l.name, l.mesh, l.uv)
			if err != nil {
				return err
			}
			logger.Debug("Merged label", zap.String("label", l.name), zap.Int("offset", offset))
		}
		// the mesh is no longer needed once merged
		l.mesh = nil

		if r.atlas != nil && l.masks != nil {
			if err := r.atlas.Composite(l.name, l.masks, l.color, l.orientation); err != nil {
				return err
			}
			l.masks = nil
		}
	}

	r.summary.Objects = len(r.model.Objects())
	r.summary.Vertices = len(r.model.Vertices)
	r.summary.Faces = len(r.model.Faces)
	return nil
}

func volumeShape(v *models.Volume) string {
	s := v.Shape()
	return humanize.Comma(int64(s[0])) + "x" + humanize.Comma(int64(s[1])) + "x" + humanize.Comma(int64(s[2]))
}
