package mesh

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
)

// DefaultMaterial is the shared material every object of a model uses.
const DefaultMaterial = "default"

// WriteOBJ serializes the model as Wavefront OBJ and returns the number of
// bytes written.
//
// The header references mtllib and selects the shared default material. Each
// object is written as an "o" record, followed by "usemtl" when the object
// has its own material, then its vertices each followed by their
// "vt" record, and its faces as "f a/a b/b c/c" with 1-based global indices.
func (m *Model) WriteOBJ(w io.Writer, mtllib string) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	fmt.Fprintf(bw, "mtllib %s\n", mtllib)
	fmt.Fprintf(bw, "usemtl %s\n", DefaultMaterial)

	var buf []byte
	for _, obj := range m.objects {
		fmt.Fprintf(bw, "o %s\n", obj.Name)
		if obj.Material != "" {
			fmt.Fprintf(bw, "usemtl %s\n", obj.Material)
		}
		for i := obj.VertexStart; i < obj.VertexStart+obj.VertexCount; i++ {
			v, uv := m.Vertices[i], m.TexCoords[i]
			buf = append(buf[:0], "v "...)
			buf = appendFloats(buf, v.X, v.Y, v.Z)
			buf = append(buf, "\nvt "...)
			buf = appendFloats(buf, uv.U, uv.V)
			buf = append(buf, '\n')
			bw.Write(buf)
		}
		for _, f := range m.Faces[obj.FaceStart : obj.FaceStart+obj.FaceCount] {
			buf = append(buf[:0], 'f')
			for _, idx := range f {
				buf = append(buf, ' ')
				buf = strconv.AppendInt(buf, int64(idx), 10)
				buf = append(buf, '/')
				buf = strconv.AppendInt(buf, int64(idx), 10)
			}
			buf = append(buf, '\n')
			bw.Write(buf)
		}
	}

	err := bw.Flush()
	return cw.n, err
}

func appendFloats(buf []byte, vals ...float64) []byte {
	for i, v := range vals {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendFloat(buf, v, 'f', -1, 64)
	}
	return buf
}

// Material is one entry of an MTL material library.
type Material struct {
	Name string

	// Diffuse is written as the Kd color.
	Diffuse color.RGBA

	// Texture, if set, is written as the map_Kd diffuse texture.
	Texture string
}

// WriteMTL writes a material library.
func WriteMTL(w io.Writer, materials []Material) error {
	bw := bufio.NewWriter(w)
	for i, mat := range materials {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "newmtl %s\n", mat.Name)
		fmt.Fprintf(bw, "Ka 0.000000 0.000000 0.000000\n")
		fmt.Fprintf(bw, "Kd %.6f %.6f %.6f\n",
			float64(mat.Diffuse.R)/255, float64(mat.Diffuse.G)/255, float64(mat.Diffuse.B)/255)
		fmt.Fprintf(bw, "illum 1\n")
		if mat.Texture != "" {
			fmt.Fprintf(bw, "map_Kd %s\n", mat.Texture)
		}
	}
	return bw.Flush()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
