package main

import (
	"os"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"pgml/shape"
)

// Bump when the payload layout changes, so stale exports are detectable.
const exportSchemaVersion uint16 = 1

type exportPayload struct {
	Schema      uint16
	Name        string
	Description string
	Shapes      []exportShape
}

type exportShape struct {
	Kind      string
	Bounds    [4]int32
	LineWidth int32
	Filled    bool
	Dashed    bool
	Visible   bool
	Context   string `msgpack:",omitempty"`
	Text      string `msgpack:",omitempty"`
	Radius    int32  `msgpack:",omitempty"`
	Points    [][2]int32
	Children  []exportShape
}

func writeExport(path string, d *shape.Diagram) error {
	payload := exportPayload{
		Schema:      exportSchemaVersion,
		Name:        d.Name,
		Description: d.Description,
	}
	for _, s := range d.Contents {
		es, err := flatten(s)
		if err != nil {
			return err
		}
		payload.Shapes = append(payload.Shapes, es)
	}

	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func flatten(s shape.Shape) (exportShape, error) {
	b := s.Common()
	es := exportShape{
		Kind:    kindOf(s),
		Filled:  b.Filled,
		Dashed:  b.Dashed,
		Visible: b.Visible,
		Context: b.Context,
	}

	var err error
	for i, v := range []int{b.Bounds.X, b.Bounds.Y, b.Bounds.W, b.Bounds.H} {
		if es.Bounds[i], err = safecast.Conv[int32](v); err != nil {
			return es, err
		}
	}
	if es.LineWidth, err = safecast.Conv[int32](b.LineWidth); err != nil {
		return es, err
	}

	switch v := s.(type) {
	case *shape.Text:
		es.Text = v.Text
	case *shape.RRect:
		if es.Radius, err = safecast.Conv[int32](v.Radius); err != nil {
			return es, err
		}
	case *shape.Poly:
		if es.Points, err = flattenPoints(v.Points); err != nil {
			return es, err
		}
	case *shape.Edge:
		if v.Spline != nil {
			if es.Points, err = flattenPoints(v.Spline.Points); err != nil {
				return es, err
			}
		}
	case *shape.Group:
		for _, c := range v.Children {
			ec, err := flatten(c)
			if err != nil {
				return es, err
			}
			es.Children = append(es.Children, ec)
		}
	}
	return es, nil
}

func flattenPoints(pts []shape.Point) ([][2]int32, error) {
	out := make([][2]int32, len(pts))
	for i, pt := range pts {
		x, err := safecast.Conv[int32](pt.X)
		if err != nil {
			return nil, err
		}
		y, err := safecast.Conv[int32](pt.Y)
		if err != nil {
			return nil, err
		}
		out[i] = [2]int32{x, y}
	}
	return out, nil
}
