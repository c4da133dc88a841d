package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"pgml/shape"
)

func TestExportRoundTrip(t *testing.T) {
	g := shape.NewGroup()
	g.Bounds = shape.Bounds{X: 10, Y: 20, W: 100, H: 50}
	rr := shape.NewRRect(10, 20, 30, 30)
	rr.Radius = 5
	g.Append(rr)
	text := shape.NewText(12, 22, 90, 12)
	text.Text = "Customer"
	g.Append(text)

	d := &shape.Diagram{Name: "d1", Contents: []shape.Shape{g}}

	out := filepath.Join(t.TempDir(), "d1.bin")
	if err := writeExport(out, d); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var payload exportPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		t.Fatal(err)
	}

	if payload.Schema != exportSchemaVersion {
		t.Errorf("schema = %d, want %d", payload.Schema, exportSchemaVersion)
	}
	if payload.Name != "d1" || len(payload.Shapes) != 1 {
		t.Fatalf("payload = %+v", payload)
	}
	group := payload.Shapes[0]
	if group.Kind != "group" || group.Bounds != [4]int32{10, 20, 100, 50} {
		t.Errorf("group = %+v", group)
	}
	if len(group.Children) != 2 {
		t.Fatalf("group has %d children, want 2", len(group.Children))
	}
	if group.Children[0].Kind != "rrect" || group.Children[0].Radius != 5 {
		t.Errorf("rrect child = %+v", group.Children[0])
	}
	if group.Children[1].Text != "Customer" {
		t.Errorf("text child = %+v", group.Children[1])
	}
}

func TestLoadTranslations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gef.toml")
	manifest := `[translations]
"org.tigris.gef.presentation.FigGroup" = "group"
"org.tigris.gef.presentation.FigRect" = "rect"
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := loadTranslations(path)
	if err != nil {
		t.Fatal(err)
	}
	if m["org.tigris.gef.presentation.FigGroup"] != "group" {
		t.Errorf("translations = %+v", m)
	}
	if m2, err := loadTranslations(""); err != nil || m2 != nil {
		t.Errorf("empty path: %+v, %v", m2, err)
	}
}
