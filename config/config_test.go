package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/Akodiat/treeCultivator/genome"
	"github.com/Akodiat/treeCultivator/params"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Grid.PopulationSize != 9 {
		t.Errorf("population_size = %d, want 9", cfg.Grid.PopulationSize)
	}
	if cfg.Render.RotationSpeed != 0.0005 {
		t.Errorf("rotation_speed = %v, want 0.0005", cfg.Render.RotationSpeed)
	}
	if cfg.Derived.Mutation != (genome.Gaussian{Mean: 0, StdDev: 0.02}) {
		t.Errorf("mutation = %+v", cfg.Derived.Mutation)
	}
	if cfg.Derived.Background != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("background = %+v", cfg.Derived.Background)
	}
	if cfg.Derived.Cell != (color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}) {
		t.Errorf("cell = %+v", cfg.Derived.Cell)
	}
	if cfg.Variant != "grid" || cfg.Derived.Variant.DisplayRegion != "grid" {
		t.Errorf("default variant = %q", cfg.Variant)
	}
}

func TestVariantsDifferOnlyInDepth(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a, b := cfg.Variants["grid"], cfg.Variants["grid2"]

	if a.Values["levels"] != 2 || b.Values["levels"] != 5 {
		t.Errorf("levels: grid=%v grid2=%v", a.Values["levels"], b.Values["levels"])
	}
	for k, v := range a.Values {
		if k == "levels" {
			continue
		}
		if b.Values[k] != v {
			t.Errorf("%s differs: %v vs %v", k, v, b.Values[k])
		}
	}
}

func TestVariantTemplatesAreValid(t *testing.T) {
	cfg, _ := Load("")
	for name, v := range cfg.Variants {
		tmpl := v.Template()
		if len(tmpl.Values) != params.Count {
			t.Errorf("%s: %d values, want %d", name, len(tmpl.Values), params.Count)
		}
		for k := range tmpl.Values {
			if _, err := params.RangeOf(k); err != nil {
				t.Errorf("%s: %v", name, err)
			}
		}
		if tmpl.Seed != 262 || tmpl.Segments != 6 {
			t.Errorf("%s: seed=%d segments=%d", name, tmpl.Seed, tmpl.Segments)
		}
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("grid:\n  population_size: 4\n  columns: 2\nvariant: grid2\nrender:\n  cell_color: \"#102030\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.PopulationSize != 4 || cfg.Grid.Columns != 2 {
		t.Errorf("grid = %+v", cfg.Grid)
	}
	// Untouched fields keep their defaults
	if cfg.Grid.CellSize != 240 {
		t.Errorf("cell_size = %v, want default 240", cfg.Grid.CellSize)
	}
	if cfg.Derived.Variant.Values["levels"] != 5 {
		t.Errorf("variant grid2 not selected")
	}
	if cfg.Derived.Cell != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Errorf("cell color = %+v", cfg.Derived.Cell)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"unknown variant", "variant: forest\n"},
		{"empty population", "grid:\n  population_size: 0\n"},
		{"bad color", "render:\n  cell_color: \"grey\"\n"},
		{"camera limits", "camera:\n  min_distance: 30\n"},
		{"malformed yaml", "grid: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSelectVariant(t *testing.T) {
	cfg, _ := Load("")
	if err := cfg.SelectVariant("grid2"); err != nil {
		t.Fatalf("SelectVariant: %v", err)
	}
	if cfg.Derived.Variant.DisplayRegion != "grid2" {
		t.Errorf("display region = %q", cfg.Derived.Variant.DisplayRegion)
	}
	if err := cfg.SelectVariant("nope"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}, false},
		{"e0e0e0", color.RGBA{0xe0, 0xe0, 0xe0, 255}, false},
		{" #6b4a2b ", color.RGBA{0x6b, 0x4a, 0x2b, 255}, false},
		{"#fff", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, _ := Load("")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if back.Grid != cfg.Grid || back.Camera != cfg.Camera {
		t.Error("written config does not reload to the same values")
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() should panic before Init")
		}
	}()
	Cfg()
}
