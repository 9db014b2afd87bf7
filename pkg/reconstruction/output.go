package reconstruction

import (
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"labelmesh/internal/fsutil"
	"labelmesh/internal/logger"
	"labelmesh/pkg/atlas"
	"labelmesh/pkg/mesh"
	"labelmesh/pkg/palette"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// ModelPath returns the path the model is written to.
func (p *Params) ModelPath() string {
	if p.Compress && !strings.HasSuffix(p.OutputFile, ".gz") {
		return p.OutputFile + ".gz"
	}
	return p.OutputFile
}

// writeOutputs flushes everything built in memory. Every file is first
// staged beside its destination, and the whole set is renamed into place
// only once all of them encoded successfully.
func (r *Reconstructor) writeOutputs() (err error) {
	if r.encoder.Scheme != palette.Indexed {
		r.model.AssignMaterials(func(obj mesh.Object) string { return obj.Name })
	}

	var stage fsutil.Stage
	defer func() {
		if err != nil {
			stage.Abort()
		}
	}()

	if err := r.writeModel(&stage); err != nil {
		return err
	}
	mats, err := r.writeMaterial(&stage)
	if err != nil {
		return err
	}
	entries, err := r.writePalette(&stage)
	if err != nil {
		return err
	}
	if err := r.writeAtlas(&stage); err != nil {
		return err
	}
	if err := stage.Commit(); err != nil {
		return err
	}

	logger.Info("Model written",
		zap.String("path", r.params.ModelPath()),
		zap.String("size", humanize.Bytes(uint64(r.summary.BytesWritten))))
	logger.Info("Material library written",
		zap.String("path", r.params.MaterialFile),
		zap.Int("materials", mats))
	if entries > 0 {
		logger.Info("Palette image written",
			zap.String("path", r.params.PaletteFile),
			zap.Int("entries", entries))
	}
	if r.summary.AtlasSlices > 0 {
		size := r.atlas.Size()
		logger.Info("Atlas written",
			zap.String("dir", r.params.AtlasDir),
			zap.Int("slices", r.summary.AtlasSlices),
			zap.Int("width", size.X),
			zap.Int("height", size.Y))
	}
	return nil
}

func (r *Reconstructor) writeModel(stage *fsutil.Stage) error {
	mtllib := filepath.Base(r.params.MaterialFile)
	return stage.WriteFile(r.params.ModelPath(), func(w io.Writer) error {
		if !r.params.Compress {
			n, err := r.model.WriteOBJ(w, mtllib)
			r.summary.BytesWritten = n
			return err
		}
		zw := gzip.NewWriter(w)
		n, err := r.model.WriteOBJ(zw, mtllib)
		r.summary.BytesWritten = n
		if err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	})
}

// materials returns the shared default material and, for the HSV ramp, one
// material per object carrying its analytic color. Each object selects its
// own material by name.
func (r *Reconstructor) materials() []mesh.Material {
	def := mesh.Material{Name: mesh.DefaultMaterial, Diffuse: white}
	if r.encoder.Scheme == palette.Indexed {
		def.Texture = filepath.Base(r.params.PaletteFile)
		return []mesh.Material{def}
	}

	colors := map[string]color.RGBA{}
	for _, l := range r.labels {
		colors[l.name] = l.color
	}
	mats := []mesh.Material{def}
	for _, obj := range r.model.Objects() {
		mats = append(mats, mesh.Material{Name: obj.Material, Diffuse: colors[obj.Name]})
	}
	return mats
}

func (r *Reconstructor) writeMaterial(stage *fsutil.Stage) (int, error) {
	mats := r.materials()
	err := stage.WriteFile(r.params.MaterialFile, func(w io.Writer) error {
		return mesh.WriteMTL(w, mats)
	})
	return len(mats), err
}

// writePalette stages the palette image and returns its entry count, or 0
// when the scheme has no palette image.
func (r *Reconstructor) writePalette(stage *fsutil.Stage) (int, error) {
	img, err := r.encoder.Build()
	if errors.Is(err, palette.ErrNoPaletteImage) {
		logger.Debug("HSV palette needs no palette image")
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	err = stage.WriteFile(r.params.PaletteFile, func(w io.Writer) error {
		return palette.WriteImage(w, img)
	})
	if err != nil {
		return 0, err
	}
	return img.Bounds().Dx(), nil
}

func (r *Reconstructor) writeAtlas(stage *fsutil.Stage) error {
	if r.atlas == nil {
		return nil
	}
	if r.atlas.Len() == 0 {
		logger.Warn("Atlas mode is on but no label produced slices")
		return nil
	}

	format := r.params.AtlasFormat
	if format == "" {
		format = atlas.PNG
	}
	images := r.atlas.Images()
	if err := atlas.StageSequence(stage, r.params.AtlasDir, images, format); err != nil {
		return err
	}
	r.summary.AtlasSlices = len(images)
	return nil
}
