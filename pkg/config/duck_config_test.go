package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultDuckConfigIsValid(t *testing.T) {
	cfg := DefaultDuckConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	// 与原版数值保持一致
	if cfg.Duck.StartX != 160 || cfg.Duck.StartY != 510 {
		t.Errorf("duck start = (%.0f, %.0f), want (160, 510)", cfg.Duck.StartX, cfg.Duck.StartY)
	}
	if cfg.Slingshot.MaxPull != 220 || cfg.Slingshot.Power != 4.8 {
		t.Errorf("slingshot = %+v, want maxPull 220 power 4.8", cfg.Slingshot)
	}
	if cfg.Round.MaxShots != 12 {
		t.Errorf("maxShots = %d, want 12", cfg.Round.MaxShots)
	}

	x, y := cfg.Tub.Origin()
	if x != 460 || y != 165 {
		t.Errorf("tub origin = (%.0f, %.0f), want (460, 165)", x, y)
	}
}

func TestSolidMaterialDefaults(t *testing.T) {
	s := SolidConfig{Name: "plain", Rect: RectConfig{W: 1, H: 1}}
	m := s.Material()
	if m.Restitution != DefaultSolidRestitution || m.Friction != DefaultSolidFriction {
		t.Errorf("material = %+v, want defaults", m)
	}

	zero := 0.0
	s.Restitution = &zero
	if got := s.Material().Restitution; got != 0 {
		t.Errorf("explicit zero restitution should be kept, got %.2f", got)
	}
}

func TestParseDuckConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *DuckConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
physics:
  gravity: 900
round:
  maxShots: 5
`,
			validate: func(t *testing.T, cfg *DuckConfig) {
				if cfg.Physics.Gravity != 900 {
					t.Errorf("gravity = %.0f, want 900", cfg.Physics.Gravity)
				}
				if cfg.Physics.Substeps != 3 {
					t.Errorf("substeps = %d, want default 3", cfg.Physics.Substeps)
				}
				if cfg.Round.MaxShots != 5 {
					t.Errorf("maxShots = %d, want 5", cfg.Round.MaxShots)
				}
				if len(cfg.Tub.Solids) != 5 {
					t.Errorf("solids = %d, want default 5", len(cfg.Tub.Solids))
				}
			},
		},
		{
			name: "solids list replaced",
			yamlContent: `
tub:
  solids:
    - name: rim
      rect: { x: 70, y: 82, w: 380, h: 18 }
      restitution: 0.62
      friction: 0.95
    - name: block
      rect: { x: 0, y: 0, w: 10, h: 10 }
`,
			validate: func(t *testing.T, cfg *DuckConfig) {
				if len(cfg.Tub.Solids) != 2 {
					t.Fatalf("solids = %d, want 2", len(cfg.Tub.Solids))
				}
				if cfg.Tub.Solids[0].Rect.W != 380 {
					t.Errorf("rim width = %.0f, want 380", cfg.Tub.Solids[0].Rect.W)
				}
				if m := cfg.Tub.Solids[1].Material(); m.Restitution != DefaultSolidRestitution {
					t.Errorf("block restitution = %.2f, want default", m.Restitution)
				}
			},
		},
		{
			name:        "zero substeps",
			yamlContent: "physics:\n  substeps: 0\n",
			wantErr:     true,
			errContains: "substeps",
		},
		{
			name:        "restitution above one",
			yamlContent: "bounds:\n  restitution: 1.5\n  friction: 0.9\n",
			wantErr:     true,
			errContains: "bounds restitution",
		},
		{
			name:        "min pull not below max pull",
			yamlContent: "slingshot:\n  maxPull: 10\n  minPull: 10\n",
			wantErr:     true,
			errContains: "minPull",
		},
		{
			name:        "duck outside screen",
			yamlContent: "duck:\n  startX: 5\n",
			wantErr:     true,
			errContains: "outside the screen",
		},
		{
			name:        "empty water rect",
			yamlContent: "tub:\n  water: { x: 0, y: 0, w: 0, h: 10 }\n",
			wantErr:     true,
			errContains: "water rect",
		},
		{
			name:        "malformed yaml",
			yamlContent: "physics: [",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseDuckConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadDuckConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(path, []byte("preview:\n  steps: 10\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadDuckConfig(path)
	if err != nil {
		t.Fatalf("LoadDuckConfig failed: %v", err)
	}
	if cfg.Preview.Steps != 10 {
		t.Errorf("preview steps = %d, want 10", cfg.Preview.Steps)
	}

	if _, err := LoadDuckConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestShippedLevelMatchesDefaults 确保 data/duck_bathtub.yaml 与内置默认值一致
func TestShippedLevelMatchesDefaults(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", DefaultDuckConfigPath))
	if err != nil {
		t.Skipf("shipped level not found: %v", err)
	}

	cfg, err := ParseDuckConfig(data)
	if err != nil {
		t.Fatalf("shipped level invalid: %v", err)
	}

	def := DefaultDuckConfig()
	if cfg.Physics != def.Physics || cfg.Slingshot != def.Slingshot || cfg.Preview != def.Preview ||
		cfg.Duck != def.Duck || cfg.Bounds != def.Bounds || cfg.Round != def.Round {
		t.Errorf("shipped level scalars differ from defaults:\n got %+v\nwant %+v", cfg, def)
	}
	if len(cfg.Tub.Solids) != len(def.Tub.Solids) {
		t.Fatalf("solids = %d, want %d", len(cfg.Tub.Solids), len(def.Tub.Solids))
	}
	for i := range def.Tub.Solids {
		if cfg.Tub.Solids[i].Rect != def.Tub.Solids[i].Rect ||
			cfg.Tub.Solids[i].Material() != def.Tub.Solids[i].Material() {
			t.Errorf("solid %s differs from default", def.Tub.Solids[i].Name)
		}
	}
	if cfg.Tub.Water != def.Tub.Water {
		t.Errorf("water = %+v, want %+v", cfg.Tub.Water, def.Tub.Water)
	}
}

func TestLoadEmbeddedDuckConfigFallback(t *testing.T) {
	cfg, err := LoadEmbeddedDuckConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil || cfg.Round.MaxShots != 12 {
		t.Errorf("expected default config when embedded data is absent, got %+v", cfg)
	}
}
