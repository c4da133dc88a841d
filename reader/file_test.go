package reader

import (
	"testing"

	"pgml/shape"
)

// gefTranslations maps the legacy class names found in GEF era files onto
// the canonical registry keys.
func gefTranslations(p *Parser) {
	p.AddTranslation("org.tigris.gef.presentation.FigGroup", "group")
	p.AddTranslation("org.tigris.gef.presentation.FigEdgeLine", "edge")
	p.AddTranslation("org.tigris.gef.presentation.FigText", "text")
	p.AddTranslation("org.tigris.gef.presentation.FigLine", "line")
	p.AddTranslation("org.tigris.gef.presentation.FigPoly", "polygon")
	p.AddTranslation("org.tigris.gef.presentation.FigRect", "rect")
	p.AddTranslation("org.tigris.gef.presentation.FigRRect", "rrect")
	p.AddTranslation("org.tigris.gef.presentation.FigCircle", "ellipse")
}

func TestReadClassDiagramFile(t *testing.T) {
	type element struct{ id string }
	owners := map[string]any{
		"cls-1": &element{"cls-1"},
		"cls-2": &element{"cls-2"},
		"asc-1": &element{"asc-1"},
	}
	p := newTestParser(owners)
	gefTranslations(p)

	d, err := p.ReadFile("testdata/classdiagram.pgml")
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "class diagram 1" {
		t.Errorf("diagram name = %q", d.Name)
	}
	if len(d.Contents) != 3 {
		t.Fatalf("got %d top-level shapes, want 3", len(d.Contents))
	}

	cls, ok := d.Contents[0].(*shape.Group)
	if !ok {
		t.Fatalf("first shape is %T, want *shape.Group", d.Contents[0])
	}
	if cls.Bounds != (shape.Bounds{X: 10, Y: 10, W: 120, H: 60}) {
		t.Errorf("class bounds = %+v", cls.Bounds)
	}
	if cls.Owner != owners["cls-1"] {
		t.Errorf("class owner = %+v", cls.Owner)
	}
	if len(cls.Children) != 2 {
		t.Fatalf("class group has %d children, want 2", len(cls.Children))
	}
	if text, ok := cls.Children[1].(*shape.Text); !ok || text.Text != "Customer" {
		t.Errorf("class name label = %+v", cls.Children[1])
	}

	edge, ok := d.Contents[2].(*shape.Edge)
	if !ok {
		t.Fatalf("third shape is %T, want *shape.Edge", d.Contents[2])
	}
	if edge.SourceNode != d.Contents[0] || edge.DestNode != d.Contents[1] {
		t.Error("edge endpoints not connected to the class groups")
	}
	if edge.Owner != owners["asc-1"] {
		t.Errorf("edge owner = %+v", edge.Owner)
	}
}

func TestReadFileMissing(t *testing.T) {
	p := newTestParser(nil)
	if _, err := p.ReadFile("testdata/does-not-exist.pgml"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
