package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedSpecsParse(t *testing.T) {
	SetDir("")
	t.Cleanup(func() { SetDir("prefabs") })

	terrain, err := LoadTerrainSpec()
	if err != nil {
		t.Fatalf("LoadTerrainSpec: %v", err)
	}
	if len(terrain.Templates) == 0 {
		t.Fatalf("expected at least one template")
	}
	for _, tmpl := range terrain.Templates {
		if tmpl.Width <= 0 || tmpl.Height <= 0 || tmpl.PixelsPerUnit <= 0 {
			t.Fatalf("template %q has invalid size or ppu", tmpl.Name)
		}
	}

	scene, err := LoadSceneSpec()
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	for _, b := range scene.Bodies {
		if _, ok := terrain.Find(b.Template); !ok {
			t.Fatalf("scene references unknown template %q", b.Template)
		}
	}

	brushes, err := LoadBrushSpec()
	if err != nil {
		t.Fatalf("LoadBrushSpec: %v", err)
	}
	for _, b := range brushes.Brushes {
		if b.Kind != BrushScript {
			continue
		}
		if _, err := LoadScript(b.Script); err != nil {
			t.Fatalf("brush %q script: %v", b.Name, err)
		}
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb", `c: "#102030"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"rgba", `c: "10203080"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}, false},
		{"short", `c: "#fff"`, color.NRGBA{}, true},
		{"not_hex", `c: "#zz0000"`, color.NRGBA{}, true},
		{"list", `c: [1, 2, 3]`, color.NRGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var v struct {
				C *YAMLColor `yaml:"c"`
			}
			err := yaml.Unmarshal([]byte(c.in), &v)
			if (err != nil) != c.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if err == nil && v.C.NRGBA(color.NRGBA{}) != c.want {
				t.Fatalf("got %v, want %v", v.C.NRGBA(color.NRGBA{}), c.want)
			}
		})
	}

	var unset *YAMLColor
	fallback := color.NRGBA{R: 1, A: 255}
	if unset.NRGBA(fallback) != fallback {
		t.Fatalf("nil colour should use the fallback")
	}
}

func TestCleanScriptPath(t *testing.T) {
	cases := map[string]string{
		"star.tengo":                 "scripts/star.tengo",
		"scripts/star.tengo":         "scripts/star.tengo",
		"prefabs/scripts/star.tengo": "scripts/star.tengo",
	}
	for in, want := range cases {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	SetDir(dir)
	t.Cleanup(func() { SetDir("prefabs") })

	override := "name: override\nbodies: []\n"
	if err := os.WriteFile(filepath.Join(dir, SceneFile), []byte(override), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	scene, err := LoadSceneSpec()
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	if scene.Name != "override" {
		t.Fatalf("disk copy should win, got %q", scene.Name)
	}
	if _, ok := ModTime(SceneFile); !ok {
		t.Fatalf("ModTime should see the disk copy")
	}

	if _, err := LoadTerrainSpec(); err != nil {
		t.Fatalf("missing disk file should fall back to the embedded copy: %v", err)
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scripts", "star.tengo"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if name != "scripts/star.tengo" {
			t.Fatalf("unexpected event %q", name)
		}
		if !IsScript(name) {
			t.Fatalf("expected a script event")
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for a watcher event")
	}
}
