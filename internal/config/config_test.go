package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/dancesim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Alphabet != "abcdefghijklmnop" {
		t.Errorf("expected 16-token alphabet, got %s", cfg.Alphabet)
	}
	if cfg.Rounds != 1 {
		t.Errorf("expected 1 round, got %d", cfg.Rounds)
	}
	if cfg.MaxHistory != sim.DefaultMaxHistory {
		t.Errorf("expected max history %d, got %d", sim.DefaultMaxHistory, cfg.MaxHistory)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("billion")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Rounds != 1_000_000_000 {
		t.Errorf("expected 1e9 rounds, got %d", cfg.Rounds)
	}

	cfg.Rounds = 3
	if Presets["billion"].Rounds != 1_000_000_000 {
		t.Error("GetPreset returned a shared config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dance.yaml")
	data := "alphabet: abcde\nrounds: 2\nmoves_file: example.txt\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Alphabet != "abcde" || cfg.Rounds != 2 || cfg.MovesFile != "example.txt" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.MaxHistory != DefaultMaxHistory {
		t.Errorf("missing field lost its default: %d", cfg.MaxHistory)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dance.toml")
	data := "alphabet = \"abcdefgh\"\nrounds = 1000000000\nmax_history = 64\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Alphabet != "abcdefgh" || cfg.Rounds != 1_000_000_000 || cfg.MaxHistory != 64 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestSaveLoad(t *testing.T) {
	for _, name := range []string{"dance.yaml", "dance.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := DefaultConfig()
			want.Rounds = 42
			want.Alphabet = "xyz"

			if err := Save(path, want); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got.Rounds != 42 || got.Alphabet != "xyz" || len(got.Metrics) != len(want.Metrics) {
				t.Errorf("round trip mismatch: %+v", got)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
