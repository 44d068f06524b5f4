package schematic

import "fmt"

// DuplicateReferenceError is returned when a component is added with a
// reference that already exists in the same instance scope. References
// are case-sensitive; adding never silently overwrites.
type DuplicateReferenceError struct {
	Reference string
	Path      string // instance scope, "/" for the root sheet
}

func (e *DuplicateReferenceError) Error() string {
	return fmt.Sprintf("duplicate reference %q in scope %q", e.Reference, e.Path)
}

// NotFoundError is returned by lookups and removals whose target must
// exist. Kind names the entity kind ("component", "wire", "pin", ...)
// and Key is the identifier or secondary key that missed.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// SymbolNotFoundError is returned when a library identifier cannot be
// resolved to pin definitions. The core propagates it rather than
// synthesizing placeholder pins.
type SymbolNotFoundError struct {
	LibID string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol %q not found", e.LibID)
}

// ValidationError is one structural defect found by Validate. Validate
// collects every finding into a list instead of failing on the first,
// so a caller can act on all of them in one pass.
type ValidationError struct {
	Code    string // stable machine code, e.g. "invalid-reference"
	Message string
	UUID    string // entity identifier, "" for document-level findings
}

func (e ValidationError) Error() string {
	if e.UUID != "" {
		return fmt.Sprintf("%s: %s (entity %s)", e.Code, e.Message, e.UUID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
