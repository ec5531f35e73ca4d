package typeschema

import (
	"sort"

	js "github.com/typeschema/typeschema/jsonschema"
)

// ParamKind classifies a callable parameter.
type ParamKind int

const (
	// ParamPositionalOrKeyword is the ordinary parameter kind.
	ParamPositionalOrKeyword ParamKind = iota
	// ParamPositionalOnly cannot be addressed by name; see PositionalPolicy.
	ParamPositionalOnly
	// ParamKeywordOnly can only be addressed by name.
	ParamKeywordOnly
	// ParamVarPositional is a variadic positional catch-all; it has no
	// object representation and is ignored.
	ParamVarPositional
	// ParamVarKeyword is a keyword catch-all; it opens the kwargs object's
	// additionalProperties.
	ParamVarKeyword
)

// PositionalPolicy decides what Bind does with positional-only parameters,
// which have no named-property representation in an object schema. Whatever
// the policy, they are never silently dropped.
type PositionalPolicy int

const (
	// PositionalError fails the bind with *UnsupportedTypeError.
	PositionalError PositionalPolicy = iota
	// PositionalOmit leaves them out of the kwargs object and records their
	// names in FunctionAnnotation.Omitted.
	PositionalOmit
	// PositionalPrefix collects them, in order, into an array schema with
	// prefixItems on FunctionAnnotation.Args.
	PositionalPrefix
)

// Param is one parameter of a callable signature.
type Param struct {
	Name       string
	Annotation *Annotation // nil means unannotated, resolved as Any
	HasDefault bool
	Default    any
	Kind       ParamKind
}

// Signature is the annotation-level view of a callable: ordered parameters
// plus the return annotation (nil when absent).
type Signature struct {
	Params  []Param
	Returns *Annotation
}

// FunctionAnnotation pairs the request schema for a callable's parameters
// with its response schema. It is immutable after Bind returns it.
type FunctionAnnotation struct {
	// Kwargs is the object schema over named parameters; nil when the
	// signature has none and no keyword catch-all.
	Kwargs *js.Object
	// Returns is the schema of the return annotation; the unconstrained
	// node when the annotation is absent.
	Returns js.Node
	// Args holds positional-only parameters under PositionalPrefix.
	Args *js.Array
	// Omitted lists positional-only parameter names dropped under
	// PositionalOmit.
	Omitted []string
}

// Bind turns a callable signature into a FunctionAnnotation. Parameters with
// defaults become optional properties carrying the default; a keyword
// catch-all opens additionalProperties; variadic positional parameters are
// ignored. Failures are atomic.
func (r *Resolver) Bind(sig Signature) (FunctionAnnotation, error) {
	var fa FunctionAnnotation
	rs := r.newResolution()

	props := make(map[string]js.Node)
	var required []string
	var prefix []js.Node
	additional := false

	for _, p := range sig.Params {
		switch p.Kind {
		case ParamVarPositional:
			continue
		case ParamVarKeyword:
			additional = true
			continue
		case ParamPositionalOnly:
			switch r.positional {
			case PositionalOmit:
				fa.Omitted = append(fa.Omitted, p.Name)
				continue
			case PositionalPrefix:
				n, err := r.bindParam(rs, p)
				if err != nil {
					return FunctionAnnotation{}, err
				}
				prefix = append(prefix, n)
				continue
			default:
				return FunctionAnnotation{}, &UnsupportedTypeError{
					Ident: paramIdent(p),
					Name:  p.Name,
					Path:  []string{p.Name},
				}
			}
		}

		n, err := r.bindParam(rs, p)
		if err != nil {
			return FunctionAnnotation{}, err
		}
		props[p.Name] = n
		if !p.HasDefault {
			required = append(required, p.Name)
		}
	}

	if len(props) > 0 || additional {
		fa.Kwargs = &js.Object{
			Properties:           props,
			Required:             required,
			AdditionalProperties: &additional,
		}
	}
	if len(prefix) > 0 {
		fa.Args = &js.Array{PrefixItems: prefix}
	}

	returns, err := rs.ResolveField("returns", sig.Returns, nil)
	if err != nil {
		return FunctionAnnotation{}, err
	}
	fa.Returns = returns
	return fa, nil
}

func (r *Resolver) bindParam(rs *Resolution, p Param) (js.Node, error) {
	n, err := rs.ResolveField(p.Name, p.Annotation, nil)
	if err != nil {
		return nil, err
	}
	if p.HasDefault {
		if err := js.Apply(n, map[string]any{"default": p.Default}); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func paramIdent(p Param) any {
	if p.Annotation == nil {
		return nil
	}
	return p.Annotation.Ident
}

// BindAll binds a set of named signatures, typically a type's method set.
// Names are processed in sorted order; the first failure aborts the whole
// call with the method name prepended to the error path.
func (r *Resolver) BindAll(sigs map[string]Signature) (map[string]FunctionAnnotation, error) {
	names := make([]string, 0, len(sigs))
	for name := range sigs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]FunctionAnnotation, len(sigs))
	for _, name := range names {
		fa, err := r.Bind(sigs[name])
		if err != nil {
			return nil, prefixPath(err, name)
		}
		out[name] = fa
	}
	return out, nil
}

// prefixPath rebases an error's field path under an outer segment.
func prefixPath(err error, seg string) error {
	if e, ok := AsUnsupported(err); ok {
		e.Path = append([]string{seg}, e.Path...)
		return e
	}
	if e, ok := AsCyclic(err); ok {
		e.Path = append([]string{seg}, e.Path...)
		return e
	}
	return err
}
