package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	manifest := `output: anim.gif
loop_count: 3
frames:
  - source: one.png
    delay: 40
  - source: https://example.com/two.gif
    delay: 80
`
	path := filepath.Join(t.TempDir(), "build.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output != "anim.gif" {
		t.Errorf("Output = %q, want %q", cfg.Output, "anim.gif")
	}
	if cfg.LoopCount != 3 {
		t.Errorf("LoopCount = %d, want 3", cfg.LoopCount)
	}
	if len(cfg.Frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(cfg.Frames))
	}
	if cfg.Frames[1].Source != "https://example.com/two.gif" || cfg.Frames[1].Delay != 80 {
		t.Errorf("frame 1 = %+v", cfg.Frames[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing manifest")
	}
}
