package models

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseMaterials(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]color.RGBA
	}{
		{
			name:  "empty",
			input: "",
			want:  map[string]color.RGBA{},
		},
		{
			name:  "single",
			input: "newmtl red\nKd 1 0 0\n",
			want:  map[string]color.RGBA{"red": {255, 0, 0, 255}},
		},
		{
			name:  "truncates channels",
			input: "newmtl grey\nKd 0.5 0.999 0.001\n",
			want:  map[string]color.RGBA{"grey": {127, 254, 0, 255}},
		},
		{
			name:  "clamps out of range",
			input: "newmtl hot\nKd 2 -1 1\n",
			want:  map[string]color.RGBA{"hot": {255, 0, 255, 255}},
		},
		{
			name: "last material committed at end",
			input: "newmtl a\nKd 0 1 0\n" +
				"newmtl b\nKd 0 0 1\n",
			want: map[string]color.RGBA{
				"a": {0, 255, 0, 255},
				"b": {0, 0, 255, 255},
			},
		},
		{
			name:  "color carries over",
			input: "newmtl a\nKd 1 0 0\nnewmtl b\n",
			want: map[string]color.RGBA{
				"a": {255, 0, 0, 255},
				"b": {255, 0, 0, 255},
			},
		},
		{
			name:  "first definition wins",
			input: "newmtl a\nKd 1 0 0\nnewmtl a\nKd 0 0 1\n",
			want:  map[string]color.RGBA{"a": {255, 0, 0, 255}},
		},
		{
			name:  "comments and unknown keys",
			input: "# exported\n\nnewmtl a\nNs 10\nKa 1 1 1\nKd 0 0 1\nillum 2\n",
			want:  map[string]color.RGBA{"a": {0, 0, 255, 255}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseMaterials(strings.NewReader(tt.input), "test.mtl")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(table) != len(tt.want) {
				t.Fatalf("expected %d materials, got %d", len(tt.want), len(table))
			}
			for name, c := range tt.want {
				m, ok := table[name]
				if !ok {
					t.Errorf("missing material %q", name)
					continue
				}
				if m.Name != name {
					t.Errorf("expected name %q, got %q", name, m.Name)
				}
				if m.Color != c {
					t.Errorf("%s: expected %v, got %v", name, c, m.Color)
				}
			}
		})
	}
}

func TestParseMaterialsLongLines(t *testing.T) {
	input := "# " + strings.Repeat("x", 70000) + "\nnewmtl red\nKd 1 0 0\n"
	table, err := ParseMaterials(strings.NewReader(input), "test.mtl")
	if err != nil {
		t.Fatalf("ParseMaterials failed: %v", err)
	}
	if got := table.Lookup("red").Color; got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("expected red, got %v", got)
	}
}

func TestParseMaterialsErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"missing name", "newmtl\n", 1},
		{"short Kd", "newmtl a\nKd 1 0\n", 2},
		{"bad float", "newmtl a\n# c\nKd 1 x 0\n", 3},
		{"nan", "newmtl a\nKd NaN 0 0\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMaterials(strings.NewReader(tt.input), "test.mtl")
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if perr.Line != tt.wantLine {
				t.Errorf("expected line %d, got %d", tt.wantLine, perr.Line)
			}
			if perr.File != "test.mtl" {
				t.Errorf("expected file test.mtl, got %q", perr.File)
			}
		})
	}
}

func TestMaterialTableLookup(t *testing.T) {
	table := MaterialTable{"red": {Name: "red", Color: color.RGBA{255, 0, 0, 255}}}

	if got := table.Lookup("red"); got.Color.R != 255 {
		t.Errorf("expected red, got %v", got)
	}
	if got := table.Lookup("missing"); got != DefaultMaterial() {
		t.Errorf("expected default material for unknown name, got %v", got)
	}
	if got := table.Lookup(""); got.Name != DefaultMaterialName {
		t.Errorf("expected default material for empty name, got %v", got)
	}

	var empty MaterialTable
	if got := empty.Lookup("red"); got != DefaultMaterial() {
		t.Errorf("expected default material from nil table, got %v", got)
	}
}

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial()
	if m.Name != "default_material" {
		t.Errorf("expected default_material, got %q", m.Name)
	}
	if m.Color != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("expected opaque black, got %v", m.Color)
	}
}

func TestLoadMaterialsMissingFile(t *testing.T) {
	table, err := LoadMaterials(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 0 {
		t.Errorf("expected empty table, got %d entries", len(table))
	}
}

func TestLoadMaterialsFromFolder(t *testing.T) {
	dir := t.TempDir()
	data := "newmtl red\nKd 1 0 0\nnewmtl blue\nKd 0 0 1\n"
	if err := os.WriteFile(filepath.Join(dir, MaterialFile), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadMaterials(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(table))
	}
	if table["blue"].Color != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("expected blue, got %v", table["blue"].Color)
	}
}
