package reader

// Handler consumes the events of exactly one element's subtree while it
// sits on top of the parser's handler stack. Open runs for every element
// opened below the owning element, including ones the handler chooses to
// process immediately instead of delegating; Close runs once, when the
// owning element closes.
type Handler interface {
	Open(p *Parser, name string, attrs Attrs) error
	Close(p *Parser, name string) error
	Text(p *Parser, data []byte) error
}

// HandlerFactory is the element-dispatch capability. A shape constructed
// from a type hint that implements it owns its own sub-element grammar:
// the parser delegates the whole dispatch decision to it, with the same
// arguments the built-in factory received.
type HandlerFactory interface {
	HandlerFor(p *Parser, container any, name string, attrs Attrs) (Handler, error)
}

// baseHandler supplies no-op event methods for embedding.
type baseHandler struct{}

func (baseHandler) Open(*Parser, string, Attrs) error { return nil }
func (baseHandler) Close(*Parser, string) error       { return nil }
func (baseHandler) Text(*Parser, []byte) error        { return nil }
