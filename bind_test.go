package typeschema_test

import (
	"reflect"
	"testing"

	ts "github.com/typeschema/typeschema"
	js "github.com/typeschema/typeschema/jsonschema"
)

func TestBind_Standard(t *testing.T) {
	sig := ts.Signature{
		Params: []ts.Param{
			{Name: "value", Annotation: &ts.Annotation{Origin: ts.OriginString}},
			{Name: "age", Annotation: &ts.Annotation{Origin: ts.OriginInt}, HasDefault: true, Default: 0},
		},
		Returns: &ts.Annotation{Origin: ts.OriginInt},
	}
	fa, err := ts.New().Bind(sig)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	got := normalize(t, fa.Kwargs.Render())
	want := normalize(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value": map[string]any{"type": "string"},
			"age":   map[string]any{"type": "integer", "default": 0},
		},
		"required":             []any{"value"},
		"additionalProperties": false,
	})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("kwargs mismatch\n got=%v\nwant=%v", got, want)
	}
	if _, ok := fa.Returns.(*js.Integer); !ok {
		t.Fatalf("expected integer return node, got %T", fa.Returns)
	}
}

func TestBind_VariadicKinds(t *testing.T) {
	sig := ts.Signature{
		Params: []ts.Param{
			{Name: "name", Annotation: &ts.Annotation{Origin: ts.OriginString}},
			{Name: "args", Kind: ts.ParamVarPositional},
			{Name: "extra", Kind: ts.ParamVarKeyword},
		},
	}
	fa, err := ts.New().Bind(sig)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	doc := fa.Kwargs.Render()
	if doc["additionalProperties"] != true {
		t.Fatalf("keyword catch-all should open additionalProperties: %v", doc)
	}
	props := doc["properties"].(map[string]any)
	if len(props) != 1 {
		t.Fatalf("variadic positional must not appear as a property: %v", props)
	}
}

func TestBind_PositionalOnlyPolicies(t *testing.T) {
	sig := ts.Signature{
		Params: []ts.Param{
			{Name: "key", Annotation: &ts.Annotation{Origin: ts.OriginString}, Kind: ts.ParamPositionalOnly},
			{Name: "verbose", Annotation: &ts.Annotation{Origin: ts.OriginBool}},
		},
	}

	// default: terminal error, nothing silently dropped
	_, err := ts.New().Bind(sig)
	ue, ok := ts.AsUnsupported(err)
	if !ok {
		t.Fatalf("expected UnsupportedTypeError, got %v", err)
	}
	if ue.Name != "key" {
		t.Fatalf("error should name the parameter, got %q", ue.Name)
	}

	// omit: excluded but recorded
	fa, err := ts.New(ts.WithPositionalPolicy(ts.PositionalOmit)).Bind(sig)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !reflect.DeepEqual(fa.Omitted, []string{"key"}) {
		t.Fatalf("expected omitted names, got %v", fa.Omitted)
	}
	if _, ok := fa.Kwargs.Properties["key"]; ok {
		t.Fatalf("omitted parameter leaked into kwargs")
	}

	// prefix: collected positionally
	fa, err = ts.New(ts.WithPositionalPolicy(ts.PositionalPrefix)).Bind(sig)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if fa.Args == nil || len(fa.Args.PrefixItems) != 1 {
		t.Fatalf("expected one prefix item, got %+v", fa.Args)
	}
}

func TestBind_EmptySignature(t *testing.T) {
	fa, err := ts.New().Bind(ts.Signature{})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if fa.Kwargs != nil {
		t.Fatalf("expected nil kwargs for empty signature, got %+v", fa.Kwargs)
	}
	// absent return annotation resolves to the unconstrained node
	if _, ok := fa.Returns.(*js.Any); !ok {
		t.Fatalf("expected Any return node, got %T", fa.Returns)
	}
}

func TestBind_UnannotatedParam(t *testing.T) {
	fa, err := ts.New().Bind(ts.Signature{
		Params: []ts.Param{{Name: "blob"}},
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if _, ok := fa.Kwargs.Properties["blob"].(*js.Any); !ok {
		t.Fatalf("unannotated parameter should resolve to Any")
	}
}

func TestBindAll_SortedAndPathed(t *testing.T) {
	good := ts.Signature{
		Params: []ts.Param{{Name: "id", Annotation: &ts.Annotation{Origin: ts.OriginInt}}},
	}
	bad := ts.Signature{
		Params: []ts.Param{{Name: "conn", Annotation: &ts.Annotation{Name: "net.Conn", Origin: struct{}{}}}},
	}

	out, err := ts.New().BindAll(map[string]ts.Signature{"Get": good, "List": good})
	if err != nil {
		t.Fatalf("bindall: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected two annotations, got %d", len(out))
	}

	_, err = ts.New(ts.Strict()).BindAll(map[string]ts.Signature{"Get": good, "Open": bad})
	ue, ok := ts.AsUnsupported(err)
	if !ok {
		t.Fatalf("expected UnsupportedTypeError, got %v", err)
	}
	if !reflect.DeepEqual(ue.Path, []string{"Open", "conn"}) {
		t.Fatalf("expected method-qualified path, got %v", ue.Path)
	}
}
