package reader

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"pgml/shape"
)

// Attrs wraps the attribute list of an element. A missing attribute and
// an empty one are equivalent, as they are in PGML files.
type Attrs []xml.Attr

// Get returns the value of the named attribute, or "" if absent.
func (a Attrs) Get(name string) string {
	for _, attr := range a {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// Int parses the named attribute as an integer, returning fallback when
// it is absent or empty. A present but unparsable value is a malformed
// document.
func (a Attrs) Int(name string, fallback int) (int, error) {
	v := a.Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &MalformedDocumentError{Cause: fmt.Errorf("attribute %s: %w", name, err)}
	}
	return n, nil
}

// splitTokens splits a description attribute into its token list.
// The first token is a type identifier; for groups the remaining four
// are a legacy positional geometry encoding.
func splitTokens(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ';' || r == '[' || r == ']' || r == ' '
	})
}

// SetCommonAttrs maps the common presentation attributes onto s.
func SetCommonAttrs(s shape.Shape, attrs Attrs) error {
	b := s.Common()

	if attrs.Get("x") != "" {
		x, err := attrs.Int("x", 0)
		if err != nil {
			return err
		}
		y, err := attrs.Int("y", 0)
		if err != nil {
			return err
		}
		w, err := attrs.Int("width", 20)
		if err != nil {
			return err
		}
		h, err := attrs.Int("height", 20)
		if err != nil {
			return err
		}
		b.Bounds = shape.Bounds{X: x, Y: y, W: w, H: h}
	}

	if attrs.Get("stroke") != "" {
		n, err := attrs.Int("stroke", 0)
		if err != nil {
			return err
		}
		b.LineWidth = n
	}

	if v := attrs.Get("strokecolor"); v != "" {
		b.LineColor = shape.LookupColor(v, colornames.Blue)
	}

	if v := attrs.Get("fill"); v != "" {
		b.Filled = v == "1" || strings.HasPrefix(v, "t")
	}

	if v := attrs.Get("fillcolor"); v != "" {
		b.FillColor = shape.LookupColor(v, colornames.White)
	}

	if v := attrs.Get("dasharray"); v != "" && v != "solid" {
		b.Dashed = true
	}

	if v := attrs.Get("context"); v != "" {
		b.Context = v
	}

	if attrs.Get("shown") != "" {
		n, err := attrs.Int("shown", 0)
		if err != nil {
			return err
		}
		b.Visible = n != 0
	}

	if v := attrs.Get("single"); v != "" {
		b.Single = v
	}

	return nil
}

// SetAttrs is the superset mapping: it registers the shape under its name
// attribute, applies the common attributes, and resolves the href owner
// reference. An href with no registry entry fails the parse.
func (p *Parser) SetAttrs(s shape.Shape, attrs Attrs) error {
	if name := attrs.Get("name"); name != "" {
		p.RegisterShape(name, s)
	}

	if err := SetCommonAttrs(s, attrs); err != nil {
		return err
	}

	if owner := attrs.Get("href"); owner != "" {
		m := p.FindOwner(owner)
		if m == nil {
			return &OwnerError{ID: owner}
		}
		s.Common().Owner = m
	}
	return nil
}
