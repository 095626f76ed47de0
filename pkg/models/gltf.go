package models

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/taigrr/scanline/pkg/math3d"
)

// LoadGLB loads a binary GLTF (.glb) or GLTF file as a flat-colored mesh.
func LoadGLB(path string) (*Mesh, error) {
	return NewLoader().LoadGLB(path)
}

// LoadGLB loads a GLTF or GLB file. Every triangle primitive contributes its
// vertices and faces; the primitive's PBR base color becomes the face
// material. Positions are converted from the Y-up GLTF frame by swapping the
// Y and Z coordinates, the same swap the folder format applies.
func (l *Loader) LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	mesh.CalculateBounds()

	l.log().Debug("gltf loaded",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return mesh, nil
}

// processMesh appends the triangle primitives of m to mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for pi, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Lines and points have no faces
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		material := primitiveMaterial(doc, prim, fmt.Sprintf("%s_%d", m.Name, pi))
		base := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.Triangles = append(mesh.Triangles, Triangle{
					V:        [3]int{base + indices[i], base + indices[i+1], base + indices[i+2]},
					Material: material,
				})
			}
			continue
		}

		// No indices: sequential triangles
		for i := 0; i+2 < len(positions); i += 3 {
			mesh.Triangles = append(mesh.Triangles, Triangle{
				V:        [3]int{base + i, base + i + 1, base + i + 2},
				Material: material,
			})
		}
	}
	return nil
}

// primitiveMaterial converts the primitive's PBR base color factor into a
// flat material. Primitives without a material use the default material.
func primitiveMaterial(doc *gltf.Document, prim *gltf.Primitive, fallback string) Material {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return DefaultMaterial()
	}
	src := doc.Materials[*prim.Material]

	name := src.Name
	if name == "" {
		name = fallback
	}

	// GLTF's default base color is white
	factor := [4]float64{1, 1, 1, 1}
	if pbr := src.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		factor = *pbr.BaseColorFactor
	}
	return Material{
		Name:  name,
		Color: color.RGBA{channel(factor[0]), channel(factor[1]), channel(factor[2]), 255},
	}
}

// readPositions reads a float VEC3 accessor, swapping Y and Z.
func readPositions(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range accessor.Count {
		offset := i * stride
		x := readFloat32(data[offset:])
		y := readFloat32(data[offset+4:])
		z := readFloat32(data[offset+8:])
		result[i] = math3d.V3(float64(x), float64(z), float64(y))
	}
	return result, nil
}

// readIndices reads an unsigned SCALAR accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range accessor.Count {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

// accessorBytes returns the accessor's bytes starting at its first element
// and the effective element stride. The returned slice is bounds-checked
// against the accessor count.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}

	data := doc.Buffers[bufferView.Buffer].Data
	if data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	if accessor.Count == 0 {
		return nil, stride, nil
	}
	end := start + (accessor.Count-1)*stride + elemSize
	if start < 0 || end > len(data) {
		return nil, 0, fmt.Errorf("accessor data out of bounds")
	}
	return data[start:end], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
