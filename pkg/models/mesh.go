// Package models provides mesh assets and their loaders for scanline.
package models

import (
	"fmt"
	"image/color"
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// RotationMode selects how Mesh.Rotation is applied to vertices.
type RotationMode int

const (
	// RotationChained applies the X, Y and Z rotations as in-place updates
	// on the same working values, each axis reading coordinates already
	// updated earlier in the same step. This is the default and matches
	// existing assets and scenes.
	RotationChained RotationMode = iota
	// RotationMatrix applies three independent axis rotations (X, then Y,
	// then Z) as proper rotation matrices.
	RotationMatrix
)

func (m RotationMode) String() string {
	switch m {
	case RotationChained:
		return "chained"
	case RotationMatrix:
		return "matrix"
	default:
		return fmt.Sprintf("RotationMode(%d)", int(m))
	}
}

// ParseRotationMode parses "chained" or "matrix". The empty string selects
// RotationChained.
func ParseRotationMode(s string) (RotationMode, error) {
	switch s {
	case "", "chained":
		return RotationChained, nil
	case "matrix":
		return RotationMatrix, nil
	default:
		return 0, fmt.Errorf("unknown rotation mode %q", s)
	}
}

// Triangle is an indexed face with the material that was active when it was
// declared.
type Triangle struct {
	V        [3]int // Indices into Mesh.Vertices
	Material Material
}

// Mesh represents a flat-colored triangle mesh with a local transform.
// Vertex and triangle data are fixed after loading; only the transform is
// expected to change between frames.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Triangles []Triangle

	Position     math3d.Vec3
	Rotation     math3d.Vec3 // Euler angles in radians
	Scale        math3d.Vec3
	RotationMode RotationMode

	// Bounding box of the local vertices (see CalculateBounds)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh with an identity transform.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Vertices:  make([]math3d.Vec3, 0),
		Triangles: make([]Triangle, 0),
		Scale:     math3d.One3(),
	}
}

// SetPosition sets the translation.
func (m *Mesh) SetPosition(pos math3d.Vec3) {
	m.Position = pos
}

// SetRotation sets the Euler rotation in radians.
func (m *Mesh) SetRotation(rot math3d.Vec3) {
	m.Rotation = rot
}

// SetScale sets the per-axis scale.
func (m *Mesh) SetScale(scale math3d.Vec3) {
	m.Scale = scale
}

// Move translates the mesh by offset.
func (m *Mesh) Move(offset math3d.Vec3) {
	m.Position = m.Position.Add(offset)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// GetFace returns the vertex indices and color of triangle i.
// Implements render.Object.
func (m *Mesh) GetFace(i int) ([3]int, color.RGBA) {
	t := m.Triangles[i]
	return t.V, t.Material.Color
}

// WorldPoints returns every vertex transformed to world space, in vertex
// order. Rotation is applied first, then scale, then translation. Nothing is
// cached.
func (m *Mesh) WorldPoints() []math3d.Vec3 {
	points := make([]math3d.Vec3, len(m.Vertices))

	if m.RotationMode == RotationMatrix {
		transform := math3d.TRS(m.Position, m.Rotation, m.Scale)
		for i, v := range m.Vertices {
			points[i] = transform.MulVec3(v)
		}
		return points
	}

	cosX, sinX := math.Cos(m.Rotation.X), math.Sin(m.Rotation.X)
	cosY, sinY := math.Cos(m.Rotation.Y), math.Sin(m.Rotation.Y)
	cosZ, sinZ := math.Cos(m.Rotation.Z), math.Sin(m.Rotation.Z)

	for i, v := range m.Vertices {
		x, y, z := v.X, v.Y, v.Z

		// Each assignment reads the value written just before it.
		y = y*cosX - z*sinX
		z = y*sinX + z*cosX

		z = z*cosY - x*sinY
		x = z*sinY + x*cosY

		x = x*cosZ - y*sinZ
		y = x*sinZ + y*cosZ

		points[i] = math3d.Vec3{
			X: x*m.Scale.X + m.Position.X,
			Y: y*m.Scale.Y + m.Position.Y,
			Z: z*m.Scale.Z + m.Position.Z,
		}
	}
	return points
}

// Validate checks that every triangle references an existing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, t := range m.Triangles {
		for _, idx := range t.V {
			if idx < 0 || idx >= n {
				return fmt.Errorf("triangle %d: index %d of %d vertices: %w", i, idx, n, ErrVertexIndex)
			}
		}
	}
	return nil
}

// Clone creates a deep copy of the vertex and triangle data with the same
// transform. Materials are copied by value.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Vertices = make([]math3d.Vec3, len(m.Vertices))
	clone.Triangles = make([]Triangle, len(m.Triangles))
	copy(clone.Vertices, m.Vertices)
	copy(clone.Triangles, m.Triangles)
	return &clone
}

// Materials returns the distinct materials used by the triangles, in order of
// first use.
func (m *Mesh) Materials() []Material {
	seen := make(map[string]bool)
	var out []Material
	for _, t := range m.Triangles {
		if seen[t.Material.Name] {
			continue
		}
		seen[t.Material.Name] = true
		out = append(out, t.Material)
	}
	return out
}

// CalculateBounds computes the axis-aligned bounding box of the local
// vertices.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin = math3d.Zero3()
		m.BoundsMax = math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}
