package jsonschema_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	js "github.com/typeschema/typeschema/jsonschema"
)

// normalize marshals v to JSON and unmarshals back into interface{} to remove
// Go-level type differences (int vs float64, []any vs []string).
func normalize(t *testing.T, v any) any {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("normalize marshal: %v", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("normalize unmarshal: %v", err)
	}
	return out
}

func assertRender(t *testing.T, n js.Node, want map[string]any) {
	t.Helper()
	if err := n.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	got := normalize(t, n.Render())
	if !reflect.DeepEqual(got, normalize(t, want)) {
		t.Fatalf("render mismatch\n got=%v\nwant=%v", got, normalize(t, want))
	}
}

func intp(i int) *int { return &i }

func TestRender_Primitives(t *testing.T) {
	assertRender(t, &js.Any{}, map[string]any{})
	assertRender(t, &js.Boolean{}, map[string]any{"type": "boolean"})
	assertRender(t, &js.Null{}, map[string]any{"type": "null"})
	assertRender(t, &js.String{}, map[string]any{"type": "string"})
	assertRender(t, &js.Integer{}, map[string]any{"type": "integer"})
	assertRender(t, &js.Number{}, map[string]any{"type": "number"})
}

func TestRender_FormatStrings(t *testing.T) {
	assertRender(t, js.Date(), map[string]any{"type": "string", "format": "date"})
	assertRender(t, js.DateTime(), map[string]any{"type": "string", "format": "date-time"})
	assertRender(t, js.Email(), map[string]any{"type": "string", "format": "email"})
	assertRender(t, js.GUID(), map[string]any{"type": "string", "format": "uuid"})
}

func TestRender_Array(t *testing.T) {
	assertRender(t, &js.Array{Items: &js.String{}}, map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	})
	assertRender(t, &js.Array{Items: &js.Integer{}, UniqueItems: true}, map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "integer"},
		"uniqueItems": true,
	})
	assertRender(t, &js.Array{PrefixItems: []js.Node{&js.String{}, &js.Integer{}}}, map[string]any{
		"type": "array",
		"prefixItems": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "integer"},
		},
	})
}

func TestRender_Object(t *testing.T) {
	closed := false
	n := &js.Object{
		Properties: map[string]js.Node{"name": &js.String{}},
		Required:   []string{"name"},

		AdditionalProperties: &closed,
	}
	assertRender(t, n, map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"name": map[string]any{"type": "string"}},
		"required":             []any{"name"},
		"additionalProperties": false,
	})
}

func TestRender_Combinators(t *testing.T) {
	assertRender(t, &js.AnyOf{Items: []js.Node{&js.String{}, &js.Integer{}}}, map[string]any{
		"anyOf": []any{map[string]any{"type": "string"}, map[string]any{"type": "integer"}},
	})
	assertRender(t, &js.OneOf{Items: []js.Node{&js.String{}, &js.Integer{}}}, map[string]any{
		"oneOf": []any{map[string]any{"type": "string"}, map[string]any{"type": "integer"}},
	})
	assertRender(t, &js.AllOf{Items: []js.Node{&js.String{}, &js.Integer{}}}, map[string]any{
		"allOf": []any{map[string]any{"type": "string"}, map[string]any{"type": "integer"}},
	})
	assertRender(t, &js.Not{Item: &js.Boolean{}}, map[string]any{
		"not": map[string]any{"type": "boolean"},
	})
}

func TestRender_NullableComposition(t *testing.T) {
	assertRender(t, &js.Nullable{Item: &js.String{}}, map[string]any{
		"anyOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "null"},
		},
	})
}

func TestRender_EnumAndConst(t *testing.T) {
	assertRender(t, &js.Enum{Enum: []any{"a", "b"}}, map[string]any{"enum": []any{"a", "b"}})
	assertRender(t, &js.Const{Const: "a"}, map[string]any{"const": "a"})

	// nil is a legal const value
	assertRender(t, &js.Const{Const: nil}, map[string]any{"const": nil})
}

func TestRender_DefaultPresence(t *testing.T) {
	n := &js.Integer{}
	n.SetDefault(0)
	assertRender(t, n, map[string]any{"type": "integer", "default": 0})

	s := &js.String{}
	s.SetDefault(nil)
	assertRender(t, s, map[string]any{"type": "string", "default": nil})
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name string
		node js.Node
	}{
		{"enum with one value", &js.Enum{Enum: []any{"only"}}},
		{"negative minLength", &js.String{MinLength: intp(-1)}},
		{"minLength over maxLength", &js.String{MinLength: intp(5), MaxLength: intp(2)}},
		{"items with prefixItems", &js.Array{Items: &js.String{}, PrefixItems: []js.Node{&js.Integer{}}}},
		{"minItems over maxItems", &js.Array{MinItems: intp(3), MaxItems: intp(1)}},
		{"required without property", &js.Object{Required: []string{"ghost"}}},
		{"empty anyOf", &js.AnyOf{}},
		{"nullable without item", &js.Nullable{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.node.Validate()
			var ie *js.InvalidNodeError
			if !errors.As(err, &ie) {
				t.Fatalf("expected InvalidNodeError, got %v", err)
			}
		})
	}
}

func TestValidate_Recurses(t *testing.T) {
	n := &js.Array{Items: &js.Enum{Enum: []any{"only"}}}
	var ie *js.InvalidNodeError
	if !errors.As(n.Validate(), &ie) {
		t.Fatalf("expected nested InvalidNodeError")
	}
}
