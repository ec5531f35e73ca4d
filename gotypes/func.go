package gotypes

import (
	"fmt"
	"reflect"

	ts "github.com/typeschema/typeschema"
)

// FromFunc builds a signature from a Go func value. Go reflection exposes no
// parameter names, so they are synthesized as arg0, arg1, ... unless names
// are supplied. A leading context.Context input and a trailing error output
// are dropped; the first remaining output becomes the return annotation. A
// variadic final parameter maps to the variadic-positional kind.
func FromFunc(fn any, names ...string) (ts.Signature, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return ts.Signature{}, fmt.Errorf("gotypes: FromFunc wants a func, got %T", fn)
	}
	return fromFuncType(t, names)
}

func fromFuncType(t reflect.Type, names []string) (ts.Signature, error) {
	b := &builder{seen: make(map[reflect.Type]*ts.Annotation)}
	var sig ts.Signature

	start := 0
	if t.NumIn() > 0 && t.In(0).Implements(ctxType) {
		start = 1
	}
	for i := start; i < t.NumIn(); i++ {
		idx := i - start
		name := fmt.Sprintf("arg%d", idx)
		if idx < len(names) {
			name = names[idx]
		}
		kind := ts.ParamPositionalOrKeyword
		in := t.In(i)
		if t.IsVariadic() && i == t.NumIn()-1 {
			kind = ts.ParamVarPositional
			in = in.Elem()
		}
		sig.Params = append(sig.Params, ts.Param{
			Name:       name,
			Annotation: b.fromType(in),
			Kind:       kind,
		})
	}

	for i := 0; i < t.NumOut(); i++ {
		if t.Out(i) == errType {
			continue
		}
		sig.Returns = b.fromType(t.Out(i))
		break
	}
	return sig, nil
}

// Methods builds signatures for the exported method set of v, keyed by
// method name with the receiver dropped. It mirrors binding a whole class at
// once; feed the result to Resolver.BindAll.
func Methods(v any, names map[string][]string) (map[string]ts.Signature, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, fmt.Errorf("gotypes: Methods wants a value, got nil")
	}
	out := make(map[string]ts.Signature, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		sig, err := fromFuncType(receiverless(m.Type), names[m.Name])
		if err != nil {
			return nil, fmt.Errorf("gotypes: method %s: %w", m.Name, err)
		}
		out[m.Name] = sig
	}
	return out, nil
}

// receiverless rebuilds a method func type without its receiver input.
func receiverless(t reflect.Type) reflect.Type {
	in := make([]reflect.Type, 0, t.NumIn()-1)
	for i := 1; i < t.NumIn(); i++ {
		in = append(in, t.In(i))
	}
	out := make([]reflect.Type, 0, t.NumOut())
	for i := 0; i < t.NumOut(); i++ {
		out = append(out, t.Out(i))
	}
	return reflect.FuncOf(in, out, t.IsVariadic())
}
