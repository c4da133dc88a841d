package reader

import (
	"fmt"
	"strconv"

	"pgml/shape"
)

// HandlerFor decides what happens to an opened element, given the object
// currently acting as its container.
//
// The description attribute is checked first for a type hint; if its
// first token, passed through the translation table, names a registered
// constructor, an instance of that type is built. An unknown type name is
// deliberately not fatal: unknown custom types from other code bases are
// logged and the element falls through to the built-in rules. If the
// constructed instance itself implements HandlerFactory, the whole
// decision is delegated to it.
//
// Otherwise the element name is matched against the built-in vocabulary.
// A match either processes the element immediately and returns a nil
// handler, or returns the handler that will own the element's subtree.
// An unrecognized element with a hinted instance is still attached to the
// container as a best-effort default; its nested structure is not
// interpreted further.
func (p *Parser) HandlerFor(container any, name string, attrs Attrs) (Handler, error) {
	var instance shape.Shape
	if desc := attrs.Get("description"); desc != "" {
		tokens := splitTokens(desc)
		if len(tokens) > 0 {
			typeName := p.TranslateType(tokens[0])
			if ctor, ok := p.constructors[typeName]; ok {
				instance = ctor()
			} else {
				p.logger.Printf("pgml: description %q does not name a registered shape type", desc)
			}
		}
		if instance != nil {
			if hf, ok := instance.(HandlerFactory); ok {
				return hf.HandlerFor(p, container, name, attrs)
			}
		}
	}

	if name == "group" {
		if g, ok := instance.(*shape.Group); ok {
			return p.groupHandlerFor(container, g, attrs)
		}
		if e, ok := instance.(*shape.Edge); ok {
			if err := p.SetAttrs(e, attrs); err != nil {
				return nil, err
			}
			attach(container, e)
			return &edgeHandler{edge: e}, nil
		}
	}

	if name == "text" {
		if instance == nil {
			instance = shape.NewText(0, 0, 100, 100)
		}
		if t, ok := instance.(*shape.Text); ok {
			if err := p.SetAttrs(t, attrs); err != nil {
				return nil, err
			}
			attach(container, t)
			if font := attrs.Get("font"); font != "" {
				t.FontFamily = font
			}
			if attrs.Get("textsize") != "" {
				size, err := attrs.Int("textsize", 0)
				if err != nil {
					return nil, err
				}
				t.FontSize = size
			}
			return &textHandler{text: t}, nil
		}
	}

	if name == "path" || name == "line" {
		if instance == nil {
			instance = shape.NewPoly()
		}
		if l, ok := instance.(*shape.Line); ok {
			if err := p.SetAttrs(l, attrs); err != nil {
				return nil, err
			}
			attach(container, l)
			return &lineHandler{line: l}, nil
		}
		if poly, ok := instance.(*shape.Poly); ok {
			if err := p.SetAttrs(poly, attrs); err != nil {
				return nil, err
			}
			attach(container, poly)
			return &polyHandler{poly: poly}, nil
		}
	}

	if name == "private" {
		if instance != nil {
			p.logger.Printf("pgml: private element unexpectedly carried a shape: %T", instance)
		}
		if c, ok := container.(shape.Container); ok {
			return &privateHandler{container: c}, nil
		}
		p.logger.Printf("pgml: private element with inappropriate container: %T", container)
	}

	if name == "rectangle" {
		radius := -1
		if attrs.Get("rounding") != "" {
			r, err := attrs.Int("rounding", -1)
			if err != nil {
				return nil, err
			}
			radius = r
		}
		if instance == nil {
			if radius >= 0 {
				instance = shape.NewRRect(0, 0, 80, 80)
			} else {
				instance = shape.NewRect(0, 0, 80, 80)
			}
		}
		if rr, ok := instance.(*shape.RRect); ok && radius >= 0 {
			rr.Radius = radius
		}
		if err := p.SetAttrs(instance, attrs); err != nil {
			return nil, err
		}
		attach(container, instance)
		return nil, nil
	}

	if name == "ellipse" {
		if instance == nil {
			instance = shape.NewEllipse(0, 0, 50, 50)
		}
		if e, ok := instance.(*shape.Ellipse); ok {
			if err := p.SetAttrs(e, attrs); err != nil {
				return nil, err
			}
			rx, err := attrs.Int("rx", 10)
			if err != nil {
				return nil, err
			}
			ry, err := attrs.Int("ry", 10)
			if err != nil {
				return nil, err
			}
			// x/y give the center; recompute the bounds around it.
			b := e.Common()
			b.Bounds = shape.Bounds{X: b.Bounds.X - rx, Y: b.Bounds.Y - ry, W: rx * 2, H: ry * 2}
			return nil, nil
		}
	}

	// Unknown element: usually sub-elements end up ignored.
	p.logger.Printf("pgml: unrecognized element %q", name)
	if instance != nil {
		if err := p.SetAttrs(instance, attrs); err != nil {
			return nil, err
		}
		attach(container, instance)
	}
	return nil, nil
}

// groupHandlerFor attaches a hinted group to its container and applies
// the legacy positional geometry carried in the description token list:
// after the type name, four integers give x, y, width and height,
// overriding any bounds set from the ordinary geometry attributes.
func (p *Parser) groupHandlerFor(container any, g *shape.Group, attrs Attrs) (Handler, error) {
	attach(container, g)
	if err := p.SetAttrs(g, attrs); err != nil {
		return nil, err
	}

	explicit := attrs.Get("x") != ""
	tokens := splitTokens(attrs.Get("description"))
	if len(tokens) > 1 {
		if len(tokens) < 5 {
			return nil, &MalformedDocumentError{
				Cause: fmt.Errorf("incomplete geometry in description %q", attrs.Get("description")),
			}
		}
		var geom [4]int
		for i, tok := range tokens[1:5] {
			n, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &MalformedDocumentError{Cause: err}
			}
			geom[i] = n
		}
		g.Bounds = shape.Bounds{X: geom[0], Y: geom[1], W: geom[2], H: geom[3]}
		explicit = true
	}
	return &groupHandler{group: g, explicit: explicit}, nil
}

// attach appends s to the container when it has the container capability.
func attach(container any, s shape.Shape) {
	if c, ok := container.(shape.Container); ok {
		c.Append(s)
	}
}
