package typeschema

import (
	js "github.com/typeschema/typeschema/jsonschema"
)

// Resolver maps annotation descriptors to schema nodes by consulting its
// registry in order. A Resolver is immutable after New and safe for
// concurrent use as long as its registry is no longer being mutated
// (configure-then-freeze); all per-call state lives in the Resolution.
type Resolver struct {
	strict     bool
	reg        *Registry
	positional PositionalPolicy
}

// Option configures a Resolver.
type Option func(*Resolver)

// Strict enables strict mode: no silent fallback to the unconstrained
// schema, and strict-only recognizers become eligible.
func Strict() Option {
	return func(r *Resolver) { r.strict = true }
}

// WithRegistry replaces the default registry.
func WithRegistry(g *Registry) Option {
	return func(r *Resolver) { r.reg = g }
}

// WithPositionalPolicy sets how Bind treats positional-only parameters.
func WithPositionalPolicy(p PositionalPolicy) Option {
	return func(r *Resolver) { r.positional = p }
}

// New returns a Resolver over the built-in registry unless WithRegistry
// overrides it.
func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.reg == nil {
		r.reg = DefaultRegistry()
	}
	return r
}

// Strict reports whether the resolver runs in strict mode.
func (r *Resolver) Strict() bool { return r.strict }

// Registry returns the resolver's registry.
func (r *Resolver) Registry() *Registry { return r.reg }

// ResolveOption adjusts a single Resolve call.
type ResolveOption func(*resolveOpts)

type resolveOpts struct {
	overrides  map[string]any
	def        any
	hasDefault bool
}

// Overrides supplies attribute overrides for the outermost node, taking
// precedence over the matching recognizer's defaults.
func Overrides(m map[string]any) ResolveOption {
	return func(o *resolveOpts) { o.overrides = m }
}

// Default attaches a default value to the outermost node.
func Default(v any) ResolveOption {
	return func(o *resolveOpts) { o.def = v; o.hasDefault = true }
}

// Resolve converts one annotation into a schema node, or fails with
// *UnsupportedTypeError, *CyclicTypeError, or *jsonschema.InvalidNodeError.
// No partial schema is ever returned.
func (r *Resolver) Resolve(a *Annotation, opts ...ResolveOption) (js.Node, error) {
	var o resolveOpts
	for _, opt := range opts {
		opt(&o)
	}
	rs := r.newResolution()
	n, err := rs.Resolve(a, o.overrides)
	if err != nil {
		return nil, err
	}
	if o.hasDefault {
		if err := js.Apply(n, map[string]any{"default": o.def}); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (r *Resolver) newResolution() *Resolution {
	return &Resolution{r: r, visiting: make(map[any]struct{})}
}

// Resolution is the call-scoped state of one resolve or bind invocation:
// the visiting stack for cycle detection and the field path for
// diagnostics. Recognizer builders recurse through it so nested resolution
// shares strictness, registry, and cycle state.
type Resolution struct {
	r        *Resolver
	visiting map[any]struct{}
	chain    []any
	path     []string
}

// Strict reports the enclosing resolver's strictness mode.
func (rs *Resolution) Strict() bool { return rs.r.strict }

// Path returns a copy of the current field-name chain.
func (rs *Resolution) Path() []string { return clonePath(rs.path) }

// Resolve resolves a nested annotation with optional attribute overrides.
// overrides take precedence over the matched recognizer's defaults.
func (rs *Resolution) Resolve(a *Annotation, overrides map[string]any) (js.Node, error) {
	if a == nil {
		a = &Annotation{Origin: OriginAny}
	}

	// Visiting is a stack, not a visited-ever set: the same identity may
	// appear in sibling branches, only ancestor repeats are cycles.
	if a.Ident != nil {
		if _, ok := rs.visiting[a.Ident]; ok {
			return nil, &CyclicTypeError{
				Chain: append(append([]any(nil), rs.chain...), a.Ident),
				Path:  clonePath(rs.path),
			}
		}
		rs.visiting[a.Ident] = struct{}{}
		rs.chain = append(rs.chain, a.Ident)
		defer func() {
			delete(rs.visiting, a.Ident)
			rs.chain = rs.chain[:len(rs.chain)-1]
		}()
	}

	for _, rec := range rs.r.reg.entries {
		if rec.StrictOnly && !rs.r.strict {
			continue
		}
		if !rec.Match(a) {
			continue
		}
		n, err := rec.Build(rs, a)
		if err != nil {
			return nil, err
		}
		if err := js.Apply(n, mergeAttrs(rec.Attrs, overrides)); err != nil {
			return nil, err
		}
		if err := n.Validate(); err != nil {
			return nil, err
		}
		return n, nil
	}

	if rs.r.strict {
		return nil, &UnsupportedTypeError{Ident: a.Ident, Name: a.Name, Path: clonePath(rs.path)}
	}
	// Lenient fallback: degrade to the unconstrained schema instead of
	// aborting generation.
	n := &js.Any{}
	n.Title = a.Name
	if err := js.Apply(n, overrides); err != nil {
		return nil, err
	}
	return n, nil
}

// ResolveField resolves a record field or parameter, recording its name on
// the diagnostic path for the duration of the nested resolution.
func (rs *Resolution) ResolveField(name string, a *Annotation, overrides map[string]any) (js.Node, error) {
	rs.path = append(rs.path, name)
	defer func() { rs.path = rs.path[:len(rs.path)-1] }()
	return rs.Resolve(a, overrides)
}

// mergeAttrs layers caller overrides on top of recognizer defaults.
func mergeAttrs(defaults, overrides map[string]any) map[string]any {
	if len(defaults) == 0 {
		return overrides
	}
	merged := make(map[string]any, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
