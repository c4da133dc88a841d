// Package shape defines the in-memory scene graph produced by reading a
// PGML diagram description. Shapes are plain data objects: rendering,
// editing and hit-testing are left to consumers.
package shape

import "image/color"

// Bounds is an integer bounding rectangle.
type Bounds struct{ X, Y, W, H int }

// Point is an integer coordinate pair.
type Point struct{ X, Y int }

// Base holds the presentation attributes shared by every shape variant.
type Base struct {
	Bounds    Bounds
	LineWidth int
	LineColor color.RGBA
	Filled    bool
	FillColor color.RGBA
	Dashed    bool
	Visible   bool
	Context   string
	Single    string

	// Owner is the external model object this shape is associated with,
	// resolved from the document's href attribute.
	Owner any
}

func newBase(x, y, w, h int) Base {
	return Base{
		Bounds:    Bounds{x, y, w, h},
		LineWidth: 1,
		LineColor: color.RGBA{A: 0xff},
		FillColor: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Filled:    true,
		Visible:   true,
	}
}

// Shape is implemented by every scene graph node.
type Shape interface {
	// Common returns the attribute block shared by all variants.
	Common() *Base
}

// Container is the capability of accepting child shapes.
// Group and Diagram implement it.
type Container interface {
	Append(Shape)
}

func (b *Base) Common() *Base { return b }

// Rect is an axis-aligned rectangle.
type Rect struct{ Base }

func NewRect(x, y, w, h int) *Rect { return &Rect{newBase(x, y, w, h)} }

// RRect is a rectangle with rounded corners.
type RRect struct {
	Base
	Radius int // corner radius
}

func NewRRect(x, y, w, h int) *RRect { return &RRect{Base: newBase(x, y, w, h)} }

// Ellipse is an ellipse inscribed in its bounds.
type Ellipse struct{ Base }

func NewEllipse(x, y, w, h int) *Ellipse { return &Ellipse{newBase(x, y, w, h)} }

// Line is a straight segment between two points.
type Line struct {
	Base
	X1, Y1, X2, Y2 int
}

func NewLine(x1, y1, x2, y2 int) *Line {
	l := &Line{Base: newBase(min(x1, x2), min(y1, y2), abs(x2-x1), abs(y2-y1))}
	l.X1, l.Y1, l.X2, l.Y2 = x1, y1, x2, y2
	return l
}

// Poly is an open or closed polyline.
type Poly struct {
	Base
	Points []Point
	Closed bool
}

func NewPoly() *Poly { return &Poly{Base: newBase(0, 0, 0, 0)} }

// AddPoint appends a vertex and grows the bounds to cover it.
func (p *Poly) AddPoint(x, y int) {
	p.Points = append(p.Points, Point{x, y})
	if len(p.Points) == 1 {
		p.Bounds = Bounds{x, y, 0, 0}
		return
	}
	p.Bounds = p.Bounds.union(Bounds{x, y, 0, 0})
}

// Text is a positioned text label.
type Text struct {
	Base
	Text       string
	FontFamily string
	FontSize   int
}

func NewText(x, y, w, h int) *Text { return &Text{Base: newBase(x, y, w, h)} }

// Group is a container of child shapes.
type Group struct {
	Base
	Children []Shape
}

func NewGroup() *Group { return &Group{Base: newBase(0, 0, 0, 0)} }

func (g *Group) Append(s Shape) { g.Children = append(g.Children, s) }

// FitBounds recomputes the group's bounds as the union of its children.
// A group with no children keeps its current bounds.
func (g *Group) FitBounds() {
	if len(g.Children) == 0 {
		return
	}
	b := g.Children[0].Common().Bounds
	for _, c := range g.Children[1:] {
		b = b.union(c.Common().Bounds)
	}
	g.Bounds = b
}

// Edge is a connector between two shapes. Its endpoints are resolved
// from same-document references carried in the edge's private content.
type Edge struct {
	Base
	Spline *Poly // drawn route of the edge, may be nil

	SourcePort, DestPort Shape
	SourceNode, DestNode Shape
}

func NewEdge() *Edge { return &Edge{Base: newBase(0, 0, 0, 0)} }

// Diagram is the root accumulator of a parsed document.
type Diagram struct {
	Name        string
	Description string
	Contents    []Shape
}

func (d *Diagram) Append(s Shape) { d.Contents = append(d.Contents, s) }

func (b Bounds) union(o Bounds) Bounds {
	x0, y0 := min(b.X, o.X), min(b.Y, o.Y)
	x1 := max(b.X+b.W, o.X+o.W)
	y1 := max(b.Y+b.H, o.Y+o.H)
	return Bounds{x0, y0, x1 - x0, y1 - y0}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
