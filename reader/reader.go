// Package reader reconstructs a shape scene graph from a PGML diagram
// description, streaming through the document exactly once.
//
// A Parser routes every XML event to the handler on top of an explicit
// stack, so nested markup always reaches the in-progress builder for the
// enclosing element. Class-name-driven construction from the original
// format is replaced by a registry of constructors keyed by canonical
// type names, with a translation table mapping legacy aliases onto them.
package reader

import (
	"encoding/xml"
	"errors"
	"io"
	"log"
	"os"
	"sync"

	"golang.org/x/net/html/charset"

	"pgml/shape"
)

// Parser reads PGML documents into shape.Diagram values.
//
// The owner registry and the translation table live for the lifetime of
// the Parser and are shared across parses; the handler stack and the name
// registry are reset at the start of every parse. A Parser may be reused
// for sequential parses but a single parse is a critical section: Read
// serializes internally.
type Parser struct {
	logger *log.Logger

	constructors map[string]func() shape.Shape
	translations map[string]string
	owners       map[string]any

	mu      sync.Mutex
	stack   []stackEntry
	depth   int
	shapes  map[string]shape.Shape
	diagram *shape.Diagram
}

type stackEntry struct {
	handler Handler
	depth   int // element depth that created the handler
}

// New builds a Parser with the given external-id to model-object mapping.
// Shapes in a PGML file may be owned by elements of an external model,
// represented in the file by unique strings; the mapping lets those
// associations be rebuilt. It may be nil if no document uses href.
func New(owners map[string]any) *Parser {
	p := &Parser{
		logger:       log.Default(),
		translations: make(map[string]string),
		owners:       owners,
	}
	p.constructors = map[string]func() shape.Shape{
		"group":   func() shape.Shape { return shape.NewGroup() },
		"edge":    func() shape.Shape { return shape.NewEdge() },
		"text":    func() shape.Shape { return shape.NewText(0, 0, 100, 100) },
		"line":    func() shape.Shape { return shape.NewLine(0, 0, 10, 10) },
		"polygon": func() shape.Shape { return shape.NewPoly() },
		"rect":    func() shape.Shape { return shape.NewRect(0, 0, 80, 80) },
		"rrect":   func() shape.Shape { return shape.NewRRect(0, 0, 80, 80) },
		"ellipse": func() shape.Shape { return shape.NewEllipse(0, 0, 50, 50) },
	}
	return p
}

// SetLogger redirects the warnings emitted for non-fatal conditions.
func (p *Parser) SetLogger(l *log.Logger) { p.logger = l }

// RegisterType adds a constructor for a canonical type name, extending
// the vocabulary of description type hints. Built-in names may be
// overridden. Must not be called during a parse.
func (p *Parser) RegisterType(name string, fn func() shape.Shape) {
	p.constructors[name] = fn
}

// AddTranslation replaces occurrences of a legacy type name with a
// canonical one before constructor lookup. Must not be called during a
// parse.
func (p *Parser) AddTranslation(from, to string) {
	p.translations[from] = to
}

// TranslateType passes a type name through the translation table,
// returning it unchanged when no mapping exists.
func (p *Parser) TranslateType(name string) string {
	if t, ok := p.translations[name]; ok {
		return t
	}
	return name
}

// FindOwner looks up an external model object by its unique string id.
func (p *Parser) FindOwner(id string) any { return p.owners[id] }

// RegisterShape associates a name with a shape so later elements of the
// same document can reference it. A second registration under the same
// name overwrites the first.
func (p *Parser) RegisterShape(name string, s shape.Shape) { p.shapes[name] = s }

// FindShape returns the shape registered under name in the current
// parse, or nil.
func (p *Parser) FindShape(name string) shape.Shape { return p.shapes[name] }

// SetDiagram records the parse result. The handler that recognizes the
// document's root element calls this exactly once per parse.
func (p *Parser) SetDiagram(d *shape.Diagram) { p.diagram = d }

// PushHandler makes h the exclusive recipient of subsequent events, until
// the element currently being opened closes.
func (p *Parser) PushHandler(h Handler) {
	p.stack = append(p.stack, stackEntry{handler: h, depth: p.depth})
}

// PopHandler restores the previous stack top as the event sink.
func (p *Parser) PopHandler() {
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *Parser) top() *stackEntry {
	if len(p.stack) == 0 {
		return nil
	}
	return &p.stack[len(p.stack)-1]
}

// Read consumes one whole document from r and returns the accumulated
// diagram. The result is nil without error when the document's root
// element is not recognized by the initial handler.
func (p *Parser) Read(r io.Reader) (*shape.Diagram, error) {
	return p.ReadWith(r, initialHandler{})
}

// ReadFile reads the diagram from the named file.
func (p *Parser) ReadFile(path string) (*shape.Diagram, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return p.Read(fin)
}

// ReadWith is Read with a caller-supplied initial handler, giving the
// caller complete control over processing. For the returned diagram to
// be non-nil the handler must call SetDiagram.
func (p *Parser) ReadWith(r io.Reader, initial Handler) (*shape.Diagram, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stack = p.stack[:0]
	p.shapes = make(map[string]shape.Shape)
	p.diagram = nil
	p.depth = 0

	// The initial handler owns the root element: it is popped, along
	// with anything pushed for the root, when that element closes.
	p.stack = append(p.stack, stackEntry{handler: initial, depth: 1})

	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, &MalformedDocumentError{Cause: errors.New("document holds no elements")}
				}
				break
			}
			return nil, &MalformedDocumentError{Cause: err}
		}
		switch tok := t.(type) {
		case xml.StartElement:
			seenTag = true
			p.depth++
			if top := p.top(); top != nil {
				if err := top.handler.Open(p, tok.Name.Local, Attrs(tok.Attr)); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			for {
				top := p.top()
				if top == nil || top.depth != p.depth {
					break
				}
				if err := top.handler.Close(p, tok.Name.Local); err != nil {
					return nil, err
				}
				p.PopHandler()
			}
			p.depth--
		case xml.CharData:
			if top := p.top(); top != nil {
				if err := top.handler.Text(p, tok); err != nil {
					return nil, err
				}
			}
		}
	}
	return p.diagram, nil
}
