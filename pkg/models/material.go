package models

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// MaterialFile is the material description file name inside an asset folder.
const MaterialFile = "object.mtl"

// DefaultMaterialName names the material used by faces declared before any
// usemtl line, or that reference an unknown material.
const DefaultMaterialName = "default_material"

// Material is a named flat color. Triangles capture materials by value.
type Material struct {
	Name  string
	Color color.RGBA
}

// DefaultMaterial returns the black fallback material.
func DefaultMaterial() Material {
	return Material{
		Name:  DefaultMaterialName,
		Color: color.RGBA{0, 0, 0, 255},
	}
}

// MaterialTable maps material names to materials.
type MaterialTable map[string]Material

// Lookup returns the named material, or the default material when the name
// is empty or unknown.
func (t MaterialTable) Lookup(name string) Material {
	if name == "" {
		return DefaultMaterial()
	}
	if m, ok := t[name]; ok {
		return m
	}
	return DefaultMaterial()
}

// LoadMaterials reads dir/object.mtl. A missing file yields an empty table.
func LoadMaterials(dir string) (MaterialTable, error) {
	return NewLoader().LoadMaterials(dir)
}

// LoadMaterials reads dir/object.mtl. A missing file yields an empty table.
func (l *Loader) LoadMaterials(dir string) (MaterialTable, error) {
	path := filepath.Join(dir, MaterialFile)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.log().Debug("no material file")
			return MaterialTable{}, nil
		}
		return nil, fmt.Errorf("open materials: %w", err)
	}
	defer f.Close()

	table, err := ParseMaterials(f, path)
	if err != nil {
		return nil, err
	}
	l.log().Debug("materials loaded")
	return table, nil
}

// ParseMaterials parses a material description. name is used in errors only.
//
// A material started by newmtl is committed when the next newmtl line or the
// end of input is reached. The first definition of a name wins. A material
// without its own Kd line keeps the color of the previous one.
func ParseMaterials(r io.Reader, name string) (MaterialTable, error) {
	table := MaterialTable{}

	var (
		current Material
		started bool
	)
	current.Color = color.RGBA{0, 0, 0, 255}

	commit := func() {
		if _, exists := table[current.Name]; !exists {
			table[current.Name] = current
		}
	}

	scanner := newScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields, ok := splitLine(scanner.Text())
		if !ok {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				return nil, &ParseError{File: name, Line: lineNo, Err: errMissingFields}
			}
			if started {
				commit()
			}
			current.Name = fields[1]
			started = true
		case "Kd":
			c, err := parseKd(fields)
			if err != nil {
				return nil, &ParseError{File: name, Line: lineNo, Err: err}
			}
			current.Color = c
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	if started {
		commit()
	}
	return table, nil
}

// parseKd converts "Kd r g b" (0-1 floats) into 0-255 channels by truncation.
func parseKd(fields []string) (color.RGBA, error) {
	if len(fields) < 4 {
		return color.RGBA{}, errMissingFields
	}
	var ch [3]uint8
	for i := range 3 {
		f, err := parseFloat(fields[i+1])
		if err != nil {
			return color.RGBA{}, err
		}
		ch[i] = channel(f)
	}
	return color.RGBA{ch[0], ch[1], ch[2], 255}, nil
}

// channel scales a 0-1 intensity to 0-255, truncating and clamping.
func channel(f float64) uint8 {
	v := int(f * 255)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
