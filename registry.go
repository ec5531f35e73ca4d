package typeschema

import (
	"errors"

	js "github.com/typeschema/typeschema/jsonschema"
)

// Recognizer converts one class of annotation shapes into a schema node. It
// is a plain (match-test, builder) pair; no subclassing is involved, so any
// caller can supply one.
type Recognizer struct {
	// Name identifies the entry in diagnostics and registry snapshots.
	Name string

	// Match reports whether this entry handles the annotation. It must be a
	// pure function of the annotation.
	Match func(a *Annotation) bool

	// Build produces the node. It may recurse into nested annotations
	// through the Resolution handle.
	Build func(rs *Resolution, a *Annotation) (js.Node, error)

	// Attrs are default attribute overrides applied to the built node,
	// e.g. {"format": "email"}. Caller-supplied overrides take precedence.
	Attrs map[string]any

	// StrictOnly marks the entry eligible only when the resolver runs in
	// strict mode.
	StrictOnly bool
}

// ErrNilRecognizer is returned by Register for entries missing Match or Build.
var ErrNilRecognizer = errors.New("typeschema: recognizer needs both Match and Build")

// Registry is an ordered sequence of recognizers. Order is semantically
// significant: the earliest matching entry wins, and registering an entry
// whose pattern overlaps an earlier one leaves it permanently shadowed. The
// supported extension mechanism is inserting more specific entries ahead of
// general ones.
//
// A Registry must be fully configured before resolution begins; it provides
// no synchronization of its own.
type Registry struct {
	entries []Recognizer
}

// NewRegistry returns a registry holding the given entries in order. Use
// DefaultRegistry for the built-in set.
func NewRegistry(entries ...Recognizer) *Registry {
	g := &Registry{}
	g.entries = append(g.entries, entries...)
	return g
}

// RegisterOption adjusts a single Register call.
type RegisterOption func(*registerOpts)

type registerOpts struct {
	index    int
	hasIndex bool
}

// At places the entry at position i instead of appending it. Indexes are
// clamped to the current bounds.
func At(i int) RegisterOption {
	return func(o *registerOpts) {
		o.index = i
		o.hasIndex = true
	}
}

// Register adds an entry, by default at the end. Entries are immutable once
// registered; there is no de-duplication.
func (g *Registry) Register(r Recognizer, opts ...RegisterOption) error {
	if r.Match == nil || r.Build == nil {
		return ErrNilRecognizer
	}
	var o registerOpts
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasIndex || o.index >= len(g.entries) {
		g.entries = append(g.entries, r)
		return nil
	}
	i := o.index
	if i < 0 {
		i = 0
	}
	g.entries = append(g.entries, Recognizer{})
	copy(g.entries[i+1:], g.entries[i:])
	g.entries[i] = r
	return nil
}

// Entries returns a snapshot copy of the ordered entries for diagnostics and
// tests.
func (g *Registry) Entries() []Recognizer {
	out := make([]Recognizer, len(g.entries))
	copy(out, g.entries)
	return out
}

// Len returns the number of registered entries.
func (g *Registry) Len() int { return len(g.entries) }
