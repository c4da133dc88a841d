package reader

import (
	"testing"

	"pgml/shape"
)

func TestTextContent(t *testing.T) {
	p := newTestParser(nil)
	d := readString(t, p, `<pgml><text x="4" y="5" font="dialog" textsize="9">
		Name : string
	</text></pgml>`)
	text, ok := d.Contents[0].(*shape.Text)
	if !ok {
		t.Fatalf("got %T, want *shape.Text", d.Contents[0])
	}
	if text.Text != "Name : string" {
		t.Errorf("text = %q", text.Text)
	}
	if text.FontFamily != "dialog" || text.FontSize != 9 {
		t.Errorf("font = %q/%d, want dialog/9", text.FontFamily, text.FontSize)
	}
}

func TestTextDefaultFont(t *testing.T) {
	p := newTestParser(nil)
	d := readString(t, p, `<pgml><text>hi</text></pgml>`)
	text := d.Contents[0].(*shape.Text)
	if text.FontFamily != "" || text.FontSize != 0 {
		t.Errorf("empty font attributes must be left alone, got %q/%d", text.FontFamily, text.FontSize)
	}
}

func TestLinePoints(t *testing.T) {
	p := newTestParser(nil)
	p.AddTranslation("FigLine", "line")
	d := readString(t, p, `<pgml>
		<path description="FigLine">
			<moveto x="3" y="4"/>
			<lineto x="30" y="40"/>
		</path>
	</pgml>`)
	line, ok := d.Contents[0].(*shape.Line)
	if !ok {
		t.Fatalf("got %T, want *shape.Line", d.Contents[0])
	}
	if line.X1 != 3 || line.Y1 != 4 || line.X2 != 30 || line.Y2 != 40 {
		t.Errorf("line = (%d,%d)-(%d,%d)", line.X1, line.Y1, line.X2, line.Y2)
	}
}

func TestPolyPoints(t *testing.T) {
	p := newTestParser(nil)
	d := readString(t, p, `<pgml>
		<path>
			<moveto x="0" y="0"/>
			<lineto x="10" y="0"/>
			<lineto x="10" y="10"/>
		</path>
	</pgml>`)
	poly, ok := d.Contents[0].(*shape.Poly)
	if !ok {
		t.Fatalf("got %T, want *shape.Poly", d.Contents[0])
	}
	want := []shape.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	if len(poly.Points) != len(want) {
		t.Fatalf("got %d points, want %d", len(poly.Points), len(want))
	}
	for i, pt := range want {
		if poly.Points[i] != pt {
			t.Errorf("point %d = %+v, want %+v", i, poly.Points[i], pt)
		}
	}
	if poly.Bounds != (shape.Bounds{X: 0, Y: 0, W: 10, H: 10}) {
		t.Errorf("bounds = %+v", poly.Bounds)
	}
}

func TestEdgeConnection(t *testing.T) {
	p := newTestParser(nil)
	p.AddTranslation("FigEdgeLine", "edge")
	d := readString(t, p, `<pgml>
		<rectangle name="srcPort" x="0" y="0"/>
		<rectangle name="dstPort" x="50" y="0"/>
		<group name="e1" description="FigEdgeLine">
			<path>
				<moveto x="10" y="10"/>
				<lineto x="50" y="10"/>
			</path>
			<private>sourcePortFig="srcPort" destPortFig="dstPort"</private>
		</group>
	</pgml>`)
	edge, ok := d.Contents[2].(*shape.Edge)
	if !ok {
		t.Fatalf("got %T, want *shape.Edge", d.Contents[2])
	}
	if edge.SourcePort != p.FindShape("srcPort") {
		t.Error("source port not resolved through the shape registry")
	}
	if edge.DestPort != p.FindShape("dstPort") {
		t.Error("dest port not resolved through the shape registry")
	}
	if edge.Spline == nil || len(edge.Spline.Points) != 2 {
		t.Fatalf("edge spline = %+v", edge.Spline)
	}
}

func TestEdgeUnknownReferenceIsLenient(t *testing.T) {
	p := newTestParser(nil)
	p.AddTranslation("FigEdgeLine", "edge")
	d := readString(t, p, `<pgml>
		<group description="FigEdgeLine">
			<private>sourcePortFig="nowhere"</private>
		</group>
	</pgml>`)
	edge := d.Contents[0].(*shape.Edge)
	if edge.SourcePort != nil {
		t.Errorf("unresolved reference must stay nil, got %+v", edge.SourcePort)
	}
}

func TestPrivateIsPassThrough(t *testing.T) {
	p := newTestParser(nil)
	p.AddTranslation("FigGroup", "group")
	d := readString(t, p, `<pgml>
		<group description="FigGroup, 0, 0, 50, 50">
			<private>
				<rectangle x="1" y="1" width="2" height="2"/>
			</private>
		</group>
	</pgml>`)
	g := d.Contents[0].(*shape.Group)
	if len(g.Children) != 1 {
		t.Fatalf("group has %d children, want 1 (private adds no grouping level)", len(g.Children))
	}
	if _, ok := g.Children[0].(*shape.Rect); !ok {
		t.Errorf("got %T, want *shape.Rect", g.Children[0])
	}
}

func TestPrivateUnderDiagram(t *testing.T) {
	p := newTestParser(nil)
	d := readString(t, p, `<pgml><private><rectangle x="1"/></private></pgml>`)
	if len(d.Contents) != 1 {
		t.Fatalf("got %d shapes, want 1", len(d.Contents))
	}
}
