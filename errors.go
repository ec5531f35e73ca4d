package typeschema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/typeschema/typeschema/i18n"
)

// Error codes, usable as i18n catalog keys.
const (
	CodeUnsupportedType = "unsupported_type"
	CodeCyclicType      = "cyclic_type"
)

// UnsupportedTypeError reports that no eligible recognizer matched an
// annotation under the active strictness mode. Path is the chain of
// enclosing field names from the resolution root.
type UnsupportedTypeError struct {
	Ident any
	Name  string
	Path  []string
}

func (e *UnsupportedTypeError) Error() string {
	what := e.Name
	if what == "" {
		what = fmt.Sprintf("%v", e.Ident)
	}
	return fmt.Sprintf("typeschema: %s at %s: %s",
		i18n.T(CodeUnsupportedType, nil), pathString(e.Path), what)
}

// CyclicTypeError reports a structural annotation that refers back to an
// ancestor on the current resolution path. Chain holds the identity chain
// from the outermost enclosure down to the repeated identity.
type CyclicTypeError struct {
	Chain []any
	Path  []string
}

func (e *CyclicTypeError) Error() string {
	return fmt.Sprintf("typeschema: %s at %s (chain length %d)",
		i18n.T(CodeCyclicType, nil), pathString(e.Path), len(e.Chain))
}

// AsUnsupported extracts an *UnsupportedTypeError via errors.As.
func AsUnsupported(err error) (*UnsupportedTypeError, bool) {
	var e *UnsupportedTypeError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AsCyclic extracts a *CyclicTypeError via errors.As.
func AsCyclic(err error) (*CyclicTypeError, bool) {
	var e *CyclicTypeError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// pathString formats a field-name chain as a JSON Pointer, e.g. /items/price.
func pathString(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	return "/" + strings.Join(path, "/")
}

func clonePath(path []string) []string {
	return append([]string(nil), path...)
}
