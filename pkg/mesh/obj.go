package mesh

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadOBJ parses a single-label Wavefront OBJ mesh, as written by external
// surface extraction tools, into a Mesh.
//
// Only vertex (v) and face (f) records are used; texture, normal, grouping
// and material records and comments are skipped. Faces with more than three
// corners are fanned into triangles, and faces must follow the vertices they
// reference. Any record that cannot be parsed into
// the expected fields yields a *MalformedMeshError naming the line.
func ReadOBJ(r io.Reader, name string) (*Mesh, error) {
	p := objParser{name: name, mesh: &Mesh{}}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read mesh %q", name)
	}
	return p.mesh, nil
}

type objParser struct {
	name string
	line int
	mesh *Mesh
}

func (p *objParser) malformed(reason string) error {
	return &MalformedMeshError{Label: p.name, Line: p.line, Reason: reason}
}

func (p *objParser) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "v":
		return p.parseVertex(fields[1:])
	case "f":
		return p.parseFace(fields[1:])
	}
	return nil
}

// parseVertex parses: v <x> <y> <z> [w]
func (p *objParser) parseVertex(fields []string) error {
	if len(fields) < 3 {
		return p.malformed("vertex record with fewer than 3 coordinates")
	}
	var c [3]float64
	for i := range c {
		val, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return p.malformed("vertex coordinate " + strconv.Quote(fields[i]) + " is not a number")
		}
		c[i] = val
	}
	p.mesh.Vertices = append(p.mesh.Vertices, r3.Vec{X: c[0], Y: c[1], Z: c[2]})
	return nil
}

// parseFace parses: f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (p *objParser) parseFace(fields []string) error {
	if len(fields) < 3 {
		return p.malformed("face record with fewer than 3 indices")
	}
	idx := make([]int, len(fields))
	for i, f := range fields {
		part := f
		if slash := strings.IndexByte(f, '/'); slash >= 0 {
			part = f[:slash]
		}
		val, err := strconv.Atoi(part)
		if err != nil {
			return p.malformed("face index " + strconv.Quote(f) + " is not an integer")
		}
		n := len(p.mesh.Vertices)
		switch {
		case val > 0:
			idx[i] = val
		case val < 0:
			// relative to the last vertex parsed so far
			idx[i] = n + val + 1
		default:
			return p.malformed("face index 0")
		}
		if idx[i] < 1 || idx[i] > n {
			return p.malformed("face index " + strconv.Itoa(val) + " references a missing vertex")
		}
	}
	for i := 1; i+1 < len(idx); i++ {
		p.mesh.Faces = append(p.mesh.Faces, Face{idx[0], idx[i], idx[i+1]})
	}
	return nil
}
