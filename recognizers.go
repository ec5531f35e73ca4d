package typeschema

import (
	js "github.com/typeschema/typeschema/jsonschema"
)

// DefaultRegistry returns a fresh registry holding the built-in recognizers
// in their canonical order. Callers extend it by inserting custom entries
// ahead of the built-in ones they mean to shadow.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Recognizer{Name: "any", Match: matchOrigin(OriginAny), Build: buildAny},
		Recognizer{Name: "string", Match: matchOrigin(OriginString, OriginBytes), Build: buildString},
		Recognizer{Name: "uuid", Match: matchOrigin(OriginUUID), Build: buildGUID, StrictOnly: true},
		Recognizer{Name: "date", Match: matchOrigin(OriginDate), Build: buildDate, StrictOnly: true},
		Recognizer{Name: "datetime", Match: matchOrigin(OriginDateTime), Build: buildDateTime, StrictOnly: true},
		Recognizer{Name: "email", Match: matchOrigin(OriginEmail), Build: buildEmail, StrictOnly: true},
		Recognizer{Name: "integer", Match: matchOrigin(OriginInt), Build: buildInteger},
		Recognizer{Name: "number", Match: matchOrigin(OriginFloat), Build: buildNumber},
		Recognizer{Name: "boolean", Match: matchOrigin(OriginBool), Build: buildBoolean},
		Recognizer{Name: "null", Match: matchOrigin(OriginNull), Build: buildNull},
		Recognizer{Name: "alias", Match: matchAlias, Build: buildAlias},
		Recognizer{Name: "literal", Match: matchOrigin(OriginLiteral), Build: buildValueSet},
		Recognizer{Name: "union", Match: matchOrigin(OriginUnion), Build: buildUnion},
		Recognizer{Name: "list", Match: matchOrigin(OriginList), Build: buildList},
		Recognizer{Name: "set", Match: matchOrigin(OriginSet), Build: buildSet},
		Recognizer{Name: "tuple", Match: matchOrigin(OriginTuple), Build: buildTuple},
		Recognizer{Name: "map", Match: matchOrigin(OriginMap), Build: buildMap},
		Recognizer{Name: "struct", Match: matchOrigin(OriginStruct), Build: buildStruct},
		Recognizer{Name: "enum", Match: matchOrigin(OriginEnum), Build: buildValueSet},
	)
}

func matchOrigin(origins ...Origin) func(*Annotation) bool {
	return func(a *Annotation) bool {
		got, ok := a.Origin.(Origin)
		if !ok {
			return false
		}
		for _, o := range origins {
			if got == o {
				return true
			}
		}
		return false
	}
}

// matchAlias accepts named type variables and aliases; they resolve by
// substituting the bound annotation, so substitution logic stays in one
// place regardless of the alias construct.
func matchAlias(a *Annotation) bool { return a.Bound != nil }

func buildAny(_ *Resolution, a *Annotation) (js.Node, error) {
	n := &js.Any{}
	n.Title = a.Name
	return n, nil
}

func buildString(_ *Resolution, _ *Annotation) (js.Node, error) {
	return &js.String{}, nil
}

func buildGUID(_ *Resolution, _ *Annotation) (js.Node, error) {
	return js.GUID(), nil
}

func buildDate(_ *Resolution, _ *Annotation) (js.Node, error) {
	return js.Date(), nil
}

func buildDateTime(_ *Resolution, _ *Annotation) (js.Node, error) {
	return js.DateTime(), nil
}

func buildEmail(_ *Resolution, _ *Annotation) (js.Node, error) {
	return js.Email(), nil
}

func buildInteger(_ *Resolution, _ *Annotation) (js.Node, error) {
	return &js.Integer{}, nil
}

func buildNumber(_ *Resolution, _ *Annotation) (js.Node, error) {
	return &js.Number{}, nil
}

func buildBoolean(_ *Resolution, _ *Annotation) (js.Node, error) {
	return &js.Boolean{}, nil
}

func buildNull(_ *Resolution, _ *Annotation) (js.Node, error) {
	return &js.Null{}, nil
}

func buildAlias(rs *Resolution, a *Annotation) (js.Node, error) {
	n, err := rs.Resolve(a.Bound, nil)
	if err != nil {
		return nil, err
	}
	if a.Name != "" {
		if err := js.Apply(n, map[string]any{"title": a.Name}); err != nil {
			return nil, err
		}
	}
	if a.Description != "" {
		if err := js.Apply(n, map[string]any{"description": a.Description}); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// buildValueSet covers literal and enum-like annotations: one value is a
// Const, two or more are an Enum. An empty value set fails node validation.
func buildValueSet(_ *Resolution, a *Annotation) (js.Node, error) {
	if len(a.Values) == 1 {
		n := &js.Const{Const: a.Values[0]}
		n.Title = a.Name
		n.Description = a.Description
		return n, nil
	}
	n := &js.Enum{Enum: append([]any(nil), a.Values...)}
	n.Title = a.Name
	n.Description = a.Description
	return n, nil
}

func buildUnion(rs *Resolution, a *Annotation) (js.Node, error) {
	// A two-member union with null is the nullable composition.
	if len(a.Args) == 2 {
		if other, ok := nullableOther(a.Args[0], a.Args[1]); ok {
			item, err := rs.Resolve(other, nil)
			if err != nil {
				return nil, err
			}
			return &js.Nullable{Item: item}, nil
		}
	}
	items := make([]js.Node, 0, len(a.Args))
	for _, arg := range a.Args {
		n, err := rs.Resolve(arg, nil)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return &js.AnyOf{Items: items}, nil
}

func nullableOther(a, b *Annotation) (*Annotation, bool) {
	if isNullAnnotation(a) && !isNullAnnotation(b) {
		return b, true
	}
	if isNullAnnotation(b) && !isNullAnnotation(a) {
		return a, true
	}
	return nil, false
}

func isNullAnnotation(a *Annotation) bool {
	if a == nil {
		return false
	}
	o, ok := a.Origin.(Origin)
	return ok && o == OriginNull
}

func buildList(rs *Resolution, a *Annotation) (js.Node, error) {
	if len(a.Args) == 0 {
		return &js.Array{}, nil
	}
	items, err := rs.Resolve(a.Args[0], nil)
	if err != nil {
		return nil, err
	}
	return &js.Array{Items: items}, nil
}

func buildSet(rs *Resolution, a *Annotation) (js.Node, error) {
	n, err := buildList(rs, a)
	if err != nil {
		return nil, err
	}
	n.(*js.Array).UniqueItems = true
	return n, nil
}

func buildTuple(rs *Resolution, a *Annotation) (js.Node, error) {
	if len(a.Args) == 0 {
		return &js.Array{}, nil
	}
	prefix := make([]js.Node, 0, len(a.Args))
	for _, arg := range a.Args {
		n, err := rs.Resolve(arg, nil)
		if err != nil {
			return nil, err
		}
		prefix = append(prefix, n)
	}
	return &js.Array{PrefixItems: prefix}, nil
}

func buildMap(rs *Resolution, a *Annotation) (js.Node, error) {
	if len(a.Args) < 2 {
		return &js.Object{}, nil
	}
	key, val := a.Args[0], a.Args[1]
	if rs.Strict() && !isStringish(key) {
		return nil, &UnsupportedTypeError{Ident: keyIdent(key), Name: keyName(key), Path: rs.Path()}
	}
	if val == nil || isAnyAnnotation(val) {
		return &js.Object{}, nil
	}
	vn, err := rs.Resolve(val, nil)
	if err != nil {
		return nil, err
	}
	return &js.Object{PatternProperties: map[string]js.Node{"^.+$": vn}}, nil
}

// isStringish accepts string-keyed maps, chasing alias bounds: JSON object
// property names are always strings.
func isStringish(a *Annotation) bool {
	for a != nil {
		if o, ok := a.Origin.(Origin); ok && (o == OriginString || o == OriginBytes) {
			return true
		}
		a = a.Bound
	}
	return false
}

func isAnyAnnotation(a *Annotation) bool {
	o, ok := a.Origin.(Origin)
	return ok && o == OriginAny
}

func keyIdent(a *Annotation) any {
	if a == nil {
		return nil
	}
	return a.Ident
}

func keyName(a *Annotation) string {
	if a == nil {
		return ""
	}
	return a.Name
}

func buildStruct(rs *Resolution, a *Annotation) (js.Node, error) {
	props := make(map[string]js.Node, len(a.Fields))
	var required []string
	for _, f := range a.Fields {
		n, err := rs.ResolveField(f.Name, f.Annotation, nil)
		if err != nil {
			return nil, err
		}
		if f.HasDefault {
			if err := js.Apply(n, map[string]any{"default": f.Default}); err != nil {
				return nil, err
			}
		}
		props[f.Name] = n
		if f.required() {
			required = append(required, f.Name)
		}
	}
	closed := false
	obj := &js.Object{
		Properties:           props,
		Required:             required,
		AdditionalProperties: &closed,
	}
	obj.Title = a.Name
	obj.Description = a.Description
	return obj, nil
}
