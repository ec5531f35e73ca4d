package jsonschema

import (
	"fmt"

	"github.com/typeschema/typeschema/i18n"
)

const codeInvalidNode = "invalid_node"

// InvalidNodeError reports an attempt to build a schema node with attributes
// invalid for its variant, such as numeric bounds on a string node. It is a
// programming error in the caller or in a custom recognizer, not a data
// error.
type InvalidNodeError struct {
	Node    string // variant name, e.g. "string"
	Keyword string // offending keyword
	Reason  string
}

func (e *InvalidNodeError) Error() string {
	return fmt.Sprintf("jsonschema: %s: %q on %s node: %s",
		i18n.T(codeInvalidNode, nil), e.Keyword, e.Node, e.Reason)
}

func newInvalid(node, keyword, reason string) error {
	return &InvalidNodeError{Node: node, Keyword: keyword, Reason: reason}
}
