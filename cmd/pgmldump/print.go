package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pgml/shape"
)

var (
	kindColor = color.New(color.FgCyan, color.Bold)
	nameColor = color.New(color.FgYellow)
	dimColor  = color.New(color.Faint)
)

func printDiagram(w io.Writer, d *shape.Diagram) {
	fmt.Fprintf(w, "%s %s\n", kindColor.Sprint("diagram"), nameColor.Sprint(d.Name))
	for _, s := range d.Contents {
		printShape(w, s, 1)
	}
}

func printShape(w io.Writer, s shape.Shape, depth int) {
	indent := strings.Repeat("  ", depth)
	b := s.Common()
	fmt.Fprintf(w, "%s%s %s\n", indent, kindColor.Sprint(kindOf(s)), describe(s))
	if !b.Visible {
		fmt.Fprintf(w, "%s  %s\n", indent, dimColor.Sprint("(hidden)"))
	}
	if g, ok := s.(*shape.Group); ok {
		for _, c := range g.Children {
			printShape(w, c, depth+1)
		}
	}
}

func kindOf(s shape.Shape) string {
	switch s.(type) {
	case *shape.Group:
		return "group"
	case *shape.Edge:
		return "edge"
	case *shape.Text:
		return "text"
	case *shape.Line:
		return "line"
	case *shape.Poly:
		return "poly"
	case *shape.Rect:
		return "rect"
	case *shape.RRect:
		return "rrect"
	case *shape.Ellipse:
		return "ellipse"
	}
	return fmt.Sprintf("%T", s)
}

func describe(s shape.Shape) string {
	b := s.Common().Bounds
	base := fmt.Sprintf("(%d,%d %dx%d)", b.X, b.Y, b.W, b.H)
	switch v := s.(type) {
	case *shape.Text:
		return base + " " + fmt.Sprintf("%q", v.Text)
	case *shape.Edge:
		if v.Spline != nil {
			return base + dimColor.Sprintf(" %d route points", len(v.Spline.Points))
		}
	case *shape.Poly:
		return base + dimColor.Sprintf(" %d points", len(v.Points))
	}
	return base
}
