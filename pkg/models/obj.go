package models

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/taigrr/scanline/pkg/math3d"
)

// GeometryFile is the geometry description file name inside an asset folder.
const GeometryFile = "object.obj"

// LoadFolder loads dir/object.obj with the materials from dir/object.mtl.
func LoadFolder(dir string) (*Mesh, error) {
	return NewLoader().LoadFolder(dir)
}

// LoadFolder loads dir/object.obj with the materials from dir/object.mtl.
// The mesh is returned with an identity transform. A missing geometry file
// yields an empty mesh.
func (l *Loader) LoadFolder(dir string) (*Mesh, error) {
	log := l.log().With(zap.String("dir", dir))

	materials, err := l.LoadMaterials(dir)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(dir)
	path := filepath.Join(dir, GeometryFile)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("no geometry file")
			mesh := NewMesh(name)
			return mesh, nil
		}
		return nil, fmt.Errorf("open geometry: %w", err)
	}
	defer f.Close()

	mesh, err := ParseMesh(f, path, materials)
	if err != nil {
		return nil, err
	}
	mesh.Name = name

	log.Debug("mesh loaded",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("materials", len(materials)),
	)
	return mesh, nil
}

// ParseMesh parses a geometry description. name is used for the mesh name
// and in errors.
//
// Vertex lines "v a b c" are stored as (a, c, b): the description's second
// and third coordinates are swapped. Face lines hold 1-based indices and
// capture the material selected by the latest usemtl line.
func ParseMesh(r io.Reader, name string, materials MaterialTable) (*Mesh, error) {
	mesh := NewMesh(name)
	active := DefaultMaterial()

	// Faces are checked once every vertex has been read.
	faceLines := make([]int, 0)

	scanner := newScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields, ok := splitLine(scanner.Text())
		if !ok {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields)
			if err != nil {
				return nil, &ParseError{File: name, Line: lineNo, Err: err}
			}
			mesh.Vertices = append(mesh.Vertices, v)
		case "f":
			idx, err := parseFace(fields)
			if err != nil {
				return nil, &ParseError{File: name, Line: lineNo, Err: err}
			}
			mesh.Triangles = append(mesh.Triangles, Triangle{V: idx, Material: active})
			faceLines = append(faceLines, lineNo)
		case "usemtl":
			if len(fields) < 2 {
				return nil, &ParseError{File: name, Line: lineNo, Err: errMissingFields}
			}
			active = materials.Lookup(fields[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	n := len(mesh.Vertices)
	for i, t := range mesh.Triangles {
		for _, idx := range t.V {
			if idx < 0 || idx >= n {
				return nil, &ParseError{
					File: name,
					Line: faceLines[i],
					Err:  fmt.Errorf("index %d of %d vertices: %w", idx+1, n, ErrVertexIndex),
				}
			}
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func parseVertex(fields []string) (math3d.Vec3, error) {
	if len(fields) < 4 {
		return math3d.Vec3{}, errMissingFields
	}
	var c [3]float64
	for i := range 3 {
		f, err := parseFloat(fields[i+1])
		if err != nil {
			return math3d.Vec3{}, err
		}
		c[i] = f
	}
	return math3d.V3(c[0], c[2], c[1]), nil
}

func parseFace(fields []string) ([3]int, error) {
	var idx [3]int
	if len(fields) < 4 {
		return idx, errMissingFields
	}
	for i := range 3 {
		n, err := parseIndex(fields[i+1])
		if err != nil {
			return idx, err
		}
		idx[i] = n
	}
	return idx, nil
}
