// Package gotypes adapts Go reflection to annotation descriptors. It is the
// host-language reflection layer the core resolver stays independent of:
// everything it knows about a type is flattened into the descriptor before
// resolution begins.
package gotypes

import (
	"context"
	"reflect"
	"strings"
	"time"

	ts "github.com/typeschema/typeschema"
)

var (
	timeType = reflect.TypeOf(time.Time{})
	ctxType  = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType  = reflect.TypeOf((*error)(nil)).Elem()
)

// FromType builds an annotation descriptor for a Go type. Structs carry
// their reflect.Type as identity, so self-referential types terminate with
// CyclicTypeError at resolution time instead of looping here: recursive
// occurrences reuse the descriptor already under construction.
func FromType(t reflect.Type) *ts.Annotation {
	b := &builder{seen: make(map[reflect.Type]*ts.Annotation)}
	return b.fromType(t)
}

type builder struct {
	seen map[reflect.Type]*ts.Annotation
}

func (b *builder) fromType(t reflect.Type) *ts.Annotation {
	if t == nil {
		return &ts.Annotation{Origin: ts.OriginAny}
	}
	if a, ok := b.seen[t]; ok {
		return a
	}
	if t == timeType {
		return &ts.Annotation{Name: "Time", Origin: ts.OriginDateTime, Ident: t}
	}

	switch t.Kind() {
	case reflect.Pointer:
		return &ts.Annotation{
			Origin: ts.OriginUnion,
			Args:   []*ts.Annotation{b.fromType(t.Elem()), {Origin: ts.OriginNull}},
		}
	case reflect.String:
		return &ts.Annotation{Name: named(t), Origin: ts.OriginString}
	case reflect.Bool:
		return &ts.Annotation{Name: named(t), Origin: ts.OriginBool}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &ts.Annotation{Name: named(t), Origin: ts.OriginInt}
	case reflect.Float32, reflect.Float64:
		return &ts.Annotation{Name: named(t), Origin: ts.OriginFloat}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			// []byte carries string-encoded payloads on the wire.
			return &ts.Annotation{Name: named(t), Origin: ts.OriginBytes}
		}
		return &ts.Annotation{
			Name:   named(t),
			Origin: ts.OriginList,
			Args:   []*ts.Annotation{b.fromType(t.Elem())},
		}
	case reflect.Map:
		return &ts.Annotation{
			Name:   named(t),
			Origin: ts.OriginMap,
			Args:   []*ts.Annotation{b.fromType(t.Key()), b.fromType(t.Elem())},
		}
	case reflect.Interface:
		return &ts.Annotation{Origin: ts.OriginAny}
	case reflect.Struct:
		return b.fromStruct(t)
	default:
		// Funcs, channels and the like stay opaque: the lenient resolver
		// degrades them to the unconstrained schema, the strict one fails.
		return &ts.Annotation{Name: t.String(), Origin: t, Ident: t}
	}
}

func (b *builder) fromStruct(t reflect.Type) *ts.Annotation {
	a := &ts.Annotation{Name: t.Name(), Origin: ts.OriginStruct, Ident: t}
	b.seen[t] = a

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, opts := jsonName(sf)
		if name == "-" {
			continue
		}
		a.Fields = append(a.Fields, ts.Field{
			Name:       name,
			Annotation: b.fromType(sf.Type),
			Optional:   opts["omitempty"] || opts["omitzero"],
		})
	}
	return a
}

func jsonName(sf reflect.StructField) (string, map[string]bool) {
	tag := sf.Tag.Get("json")
	opts := map[string]bool{}
	if tag == "" {
		return sf.Name, opts
	}
	parts := strings.Split(tag, ",")
	for _, p := range parts[1:] {
		opts[p] = true
	}
	if parts[0] == "" {
		return sf.Name, opts
	}
	return parts[0], opts
}

// named returns the declared type name, or "" for unnamed types; primitives
// do not surface it as a title, but aliases and diagnostics use it.
func named(t reflect.Type) string {
	if t.PkgPath() == "" {
		return ""
	}
	return t.Name()
}
