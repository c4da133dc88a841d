package reader

import (
	"bytes"
	"strings"

	"pgml/shape"
)

// initialHandler is the default top-level handler. It waits for a pgml
// root element, builds the diagram from its attributes, records it on the
// parser and pushes the handler that routes the document's contents.
// Any other root element leaves the diagram unset.
type initialHandler struct {
	baseHandler
}

func (initialHandler) Open(p *Parser, name string, attrs Attrs) error {
	if name != "pgml" {
		p.logger.Printf("pgml: unexpected root element %q", name)
		return nil
	}
	d := &shape.Diagram{
		Name:        attrs.Get("name"),
		Description: attrs.Get("description"),
	}
	p.SetDiagram(d)
	p.PushHandler(&contentsHandler{diagram: d})
	return nil
}

// contentsHandler routes top-level elements with the diagram as their
// container.
type contentsHandler struct {
	baseHandler
	diagram *shape.Diagram
}

func (h *contentsHandler) Open(p *Parser, name string, attrs Attrs) error {
	return dispatch(p, h.diagram, name, attrs)
}

// groupHandler routes nested elements into its group. When the group
// element carried no geometry of its own, the bounds are computed from
// the children once they are all known.
type groupHandler struct {
	baseHandler
	group    *shape.Group
	explicit bool
}

func (h *groupHandler) Open(p *Parser, name string, attrs Attrs) error {
	return dispatch(p, h.group, name, attrs)
}

func (h *groupHandler) Close(*Parser, string) error {
	if !h.explicit {
		h.group.FitBounds()
	}
	return nil
}

// textHandler accumulates the character data of a text element.
type textHandler struct {
	baseHandler
	text *shape.Text
	buf  bytes.Buffer
}

func (h *textHandler) Text(_ *Parser, data []byte) error {
	h.buf.Write(data)
	return nil
}

func (h *textHandler) Close(*Parser, string) error {
	h.text.Text = strings.TrimSpace(h.buf.String())
	return nil
}

// lineHandler consumes the moveto/lineto leaves giving a line's two
// endpoints.
type lineHandler struct {
	baseHandler
	line *shape.Line
}

func (h *lineHandler) Open(_ *Parser, name string, attrs Attrs) error {
	switch name {
	case "moveto":
		x, err := attrs.Int("x", 0)
		if err != nil {
			return err
		}
		y, err := attrs.Int("y", 0)
		if err != nil {
			return err
		}
		h.line.X1, h.line.Y1 = x, y
	case "lineto":
		x, err := attrs.Int("x", 0)
		if err != nil {
			return err
		}
		y, err := attrs.Int("y", 0)
		if err != nil {
			return err
		}
		h.line.X2, h.line.Y2 = x, y
	}
	return nil
}

// polyHandler consumes moveto/lineto leaves as the vertices of a
// polyline.
type polyHandler struct {
	baseHandler
	poly *shape.Poly
}

func (h *polyHandler) Open(_ *Parser, name string, attrs Attrs) error {
	switch name {
	case "moveto", "lineto":
		x, err := attrs.Int("x", 0)
		if err != nil {
			return err
		}
		y, err := attrs.Int("y", 0)
		if err != nil {
			return err
		}
		h.poly.AddPoint(x, y)
	}
	return nil
}

// edgeHandler owns the subtree of an edge element: a nested path becomes
// the edge's spline, and the nested private content carries the
// references that connect the edge to previously read shapes.
type edgeHandler struct {
	baseHandler
	edge *shape.Edge
}

func (h *edgeHandler) Open(p *Parser, name string, attrs Attrs) error {
	switch name {
	case "path":
		spline := shape.NewPoly()
		if err := SetCommonAttrs(spline, attrs); err != nil {
			return err
		}
		h.edge.Spline = spline
		p.PushHandler(&polyHandler{poly: spline})
	case "private":
		p.PushHandler(&privateHandler{container: h.edge})
	}
	return nil
}

// privateHandler relays nested elements directly into the current
// container, contributing no level of grouping. When the container is an
// edge, its character data holds name="value" assignments resolved
// against the per-document shape registry to connect the edge.
type privateHandler struct {
	baseHandler
	container any
	buf       bytes.Buffer
}

func (h *privateHandler) Open(p *Parser, name string, attrs Attrs) error {
	return dispatch(p, h.container, name, attrs)
}

func (h *privateHandler) Text(_ *Parser, data []byte) error {
	h.buf.Write(data)
	return nil
}

func (h *privateHandler) Close(p *Parser, _ string) error {
	edge, ok := h.container.(*shape.Edge)
	if !ok {
		return nil
	}
	for _, field := range strings.Fields(h.buf.String()) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		target := p.FindShape(value)
		if target == nil {
			p.logger.Printf("pgml: edge references unknown shape %q", value)
			continue
		}
		switch key {
		case "sourcePortFig":
			edge.SourcePort = target
		case "destPortFig":
			edge.DestPort = target
		case "sourceFigNode":
			edge.SourceNode = target
		case "destFigNode":
			edge.DestNode = target
		}
	}
	return nil
}

// dispatch runs the factory for a nested element and pushes the returned
// handler, if any, so it receives the element's subtree.
func dispatch(p *Parser, container any, name string, attrs Attrs) error {
	h, err := p.HandlerFor(container, name, attrs)
	if err != nil {
		return err
	}
	if h != nil {
		p.PushHandler(h)
	}
	return nil
}
