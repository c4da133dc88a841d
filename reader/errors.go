package reader

import "fmt"

// MalformedDocumentError reports a structural or encoding problem in the
// document, including a numeric attribute that fails to parse. It aborts
// the parse; no partial diagram is returned.
type MalformedDocumentError struct {
	Cause error
}

func (e *MalformedDocumentError) Error() string {
	return "pgml: malformed document: " + e.Cause.Error()
}

func (e *MalformedDocumentError) Unwrap() error { return e.Cause }

// OwnerError reports an href value with no entry in the owner registry.
// The registry supplied at construction must cover every href that will
// appear in a document, so this is a caller contract violation.
type OwnerError struct {
	ID string
}

func (e *OwnerError) Error() string {
	return fmt.Sprintf("pgml: no model element registered for href %q", e.ID)
}
