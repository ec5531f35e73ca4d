package jsonschema

import (
	"math"
	"reflect"
	"sort"
	"strings"
)

// Apply sets schema keywords on a node by their JSON Schema name. It is the
// mechanism behind recognizer attribute defaults and caller-supplied
// per-field overrides: keys are matched against the node struct's json tags,
// so a keyword that does not belong to the node's variant fails with
// *InvalidNodeError instead of leaking into the document. The node is
// re-validated after the last keyword is applied.
func Apply(n Node, attrs map[string]any) error {
	if len(attrs) == 0 {
		return nil
	}
	rv := reflect.ValueOf(n)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return newInvalid(variantName(n), "", "node must be a non-nil pointer to a struct")
	}
	variant := variantName(n)

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := attrs[key]
		if key == "default" {
			d, ok := n.(interface{ SetDefault(any) })
			if !ok {
				return newInvalid(variant, key, "keyword not valid for this variant")
			}
			d.SetDefault(val)
			continue
		}
		field, ok := fieldByKeyword(rv.Elem(), key)
		if !ok {
			return newInvalid(variant, key, "keyword not valid for this variant")
		}
		if err := assign(variant, key, field, val); err != nil {
			return err
		}
	}
	return n.Validate()
}

// fieldByKeyword finds the struct field whose json tag matches the keyword,
// descending into embedded structs.
func fieldByKeyword(v reflect.Value, key string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous {
			if f, ok := fieldByKeyword(v.Field(i), key); ok {
				return f, true
			}
			continue
		}
		tag := sf.Tag.Get("json")
		if idx := strings.IndexByte(tag, ','); idx >= 0 {
			tag = tag[:idx]
		}
		if tag == key {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func assign(variant, key string, field reflect.Value, val any) error {
	if val == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	vv := reflect.ValueOf(val)
	ft := field.Type()

	switch {
	case vv.Type().AssignableTo(ft):
		field.Set(vv)
	case ft.Kind() == reflect.Pointer && vv.Type().AssignableTo(ft.Elem()):
		p := reflect.New(ft.Elem())
		p.Elem().Set(vv)
		field.Set(p)
	case ft.Kind() == reflect.Pointer && convertibleScalar(vv, ft.Elem()):
		p := reflect.New(ft.Elem())
		p.Elem().Set(vv.Convert(ft.Elem()))
		field.Set(p)
	case convertibleScalar(vv, ft):
		field.Set(vv.Convert(ft))
	default:
		return newInvalid(variant, key, "incompatible value of type "+vv.Type().String())
	}
	return nil
}

// convertibleScalar limits reflect conversions to numeric-to-numeric so that
// surprises like int-to-string rune conversion cannot happen. A float source
// converting to an integer kind must carry a whole number; truncating a
// fractional bound would change its meaning.
func convertibleScalar(vv reflect.Value, to reflect.Type) bool {
	from := vv.Type()
	if !isNumeric(from.Kind()) || !isNumeric(to.Kind()) || !from.ConvertibleTo(to) {
		return false
	}
	if isFloatKind(from.Kind()) && !isFloatKind(to.Kind()) {
		f := vv.Float()
		return f == math.Trunc(f)
	}
	return true
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
