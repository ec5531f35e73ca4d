// Package jsonschema holds the schema node model: a closed set of variant
// node types, each rendering to a plain key/value JSON Schema document.
// Rendering is pure and deterministic; invalid attribute combinations are
// rejected at construction time via Validate, never at render time.
package jsonschema

// Node is one JSON Schema fragment. Render emits exactly the keywords valid
// for the node's variant; it never fails. Validate reports invalid attribute
// combinations as *InvalidNodeError.
type Node interface {
	Render() map[string]any
	Validate() error
}

// String format names used by the format-specialized constructors.
const (
	FormatDate     = "date"
	FormatDateTime = "date-time"
	FormatEmail    = "email"
	FormatUUID     = "uuid"
)

// Meta carries the annotation keywords shared by every node variant.
// HasDefault distinguishes an absent default from an explicit null default.
type Meta struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Examples    []any  `json:"examples,omitempty"`
	Default     any    `json:"default,omitempty"`
	HasDefault  bool   `json:"-"`
}

// SetDefault records v as the node's default value, including v == nil.
func (m *Meta) SetDefault(v any) {
	m.Default = v
	m.HasDefault = true
}

func (m Meta) renderInto(doc map[string]any) {
	if m.Title != "" {
		doc["title"] = m.Title
	}
	if m.Description != "" {
		doc["description"] = m.Description
	}
	if len(m.Examples) > 0 {
		doc["examples"] = m.Examples
	}
	if m.HasDefault {
		doc["default"] = m.Default
	}
}

// Any is the unconstrained schema; a bare Any renders as {} and accepts any
// value. It is also the lenient-mode fallback for unrecognized annotations.
type Any struct {
	Meta
}

func (n *Any) Render() map[string]any {
	doc := map[string]any{}
	n.Meta.renderInto(doc)
	return doc
}

func (n *Any) Validate() error { return nil }

// Boolean is the JSON boolean type.
type Boolean struct {
	Meta
}

func (n *Boolean) Render() map[string]any {
	doc := map[string]any{"type": "boolean"}
	n.Meta.renderInto(doc)
	return doc
}

func (n *Boolean) Validate() error { return nil }

// Null matches only the JSON null value.
type Null struct {
	Meta
}

func (n *Null) Render() map[string]any {
	doc := map[string]any{"type": "null"}
	n.Meta.renderInto(doc)
	return doc
}

func (n *Null) Validate() error { return nil }

// String is the JSON string type with optional length, pattern and format
// constraints.
type String struct {
	Meta
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	Format    string `json:"format,omitempty"`
}

// Date returns a string node specialized to the "date" format.
func Date() *String { return &String{Format: FormatDate} }

// DateTime returns a string node specialized to the "date-time" format.
func DateTime() *String { return &String{Format: FormatDateTime} }

// Email returns a string node specialized to the "email" format.
func Email() *String { return &String{Format: FormatEmail} }

// GUID returns a string node specialized to the "uuid" format.
func GUID() *String { return &String{Format: FormatUUID} }

func (n *String) Render() map[string]any {
	doc := map[string]any{"type": "string"}
	if n.MinLength != nil {
		doc["minLength"] = *n.MinLength
	}
	if n.MaxLength != nil {
		doc["maxLength"] = *n.MaxLength
	}
	if n.Pattern != "" {
		doc["pattern"] = n.Pattern
	}
	if n.Format != "" {
		doc["format"] = n.Format
	}
	n.Meta.renderInto(doc)
	return doc
}

func (n *String) Validate() error {
	if n.MinLength != nil && *n.MinLength < 0 {
		return newInvalid("string", "minLength", "must not be negative")
	}
	if n.MaxLength != nil && *n.MaxLength < 0 {
		return newInvalid("string", "maxLength", "must not be negative")
	}
	if n.MinLength != nil && n.MaxLength != nil && *n.MinLength > *n.MaxLength {
		return newInvalid("string", "minLength", "exceeds maxLength")
	}
	return nil
}

// Integer is the JSON integer type with optional numeric bounds.
type Integer struct {
	Meta
	MultipleOf       *int `json:"multipleOf,omitempty"`
	Minimum          *int `json:"minimum,omitempty"`
	Maximum          *int `json:"maximum,omitempty"`
	ExclusiveMinimum *int `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *int `json:"exclusiveMaximum,omitempty"`
}

func (n *Integer) Render() map[string]any {
	doc := map[string]any{"type": "integer"}
	if n.MultipleOf != nil {
		doc["multipleOf"] = *n.MultipleOf
	}
	if n.Minimum != nil {
		doc["minimum"] = *n.Minimum
	}
	if n.Maximum != nil {
		doc["maximum"] = *n.Maximum
	}
	if n.ExclusiveMinimum != nil {
		doc["exclusiveMinimum"] = *n.ExclusiveMinimum
	}
	if n.ExclusiveMaximum != nil {
		doc["exclusiveMaximum"] = *n.ExclusiveMaximum
	}
	n.Meta.renderInto(doc)
	return doc
}

func (n *Integer) Validate() error {
	if n.MultipleOf != nil && *n.MultipleOf <= 0 {
		return newInvalid("integer", "multipleOf", "must be positive")
	}
	if n.Minimum != nil && n.Maximum != nil && *n.Minimum > *n.Maximum {
		return newInvalid("integer", "minimum", "exceeds maximum")
	}
	return nil
}

// Number is the JSON number type with optional numeric bounds.
type Number struct {
	Meta
	MultipleOf       *float64 `json:"multipleOf,omitempty"`
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
}

func (n *Number) Render() map[string]any {
	doc := map[string]any{"type": "number"}
	if n.MultipleOf != nil {
		doc["multipleOf"] = *n.MultipleOf
	}
	if n.Minimum != nil {
		doc["minimum"] = *n.Minimum
	}
	if n.Maximum != nil {
		doc["maximum"] = *n.Maximum
	}
	if n.ExclusiveMinimum != nil {
		doc["exclusiveMinimum"] = *n.ExclusiveMinimum
	}
	if n.ExclusiveMaximum != nil {
		doc["exclusiveMaximum"] = *n.ExclusiveMaximum
	}
	n.Meta.renderInto(doc)
	return doc
}

func (n *Number) Validate() error {
	if n.MultipleOf != nil && *n.MultipleOf <= 0 {
		return newInvalid("number", "multipleOf", "must be positive")
	}
	if n.Minimum != nil && n.Maximum != nil && *n.Minimum > *n.Maximum {
		return newInvalid("number", "minimum", "exceeds maximum")
	}
	return nil
}

// Array is the JSON array type. Items constrains a homogeneous array;
// PrefixItems describes a fixed-arity heterogeneous one. The two are
// mutually exclusive.
type Array struct {
	Meta
	Items       Node   `json:"items,omitempty"`
	PrefixItems []Node `json:"prefixItems,omitempty"`
	Contains    Node   `json:"contains,omitempty"`
	UniqueItems bool   `json:"uniqueItems,omitempty"`
	MinItems    *int   `json:"minItems,omitempty"`
	MaxItems    *int   `json:"maxItems,omitempty"`
}

func (n *Array) Render() map[string]any {
	doc := map[string]any{"type": "array"}
	if n.Items != nil {
		doc["items"] = n.Items.Render()
	}
	if len(n.PrefixItems) > 0 {
		doc["prefixItems"] = renderAll(n.PrefixItems)
	}
	if n.Contains != nil {
		doc["contains"] = n.Contains.Render()
	}
	if n.UniqueItems {
		doc["uniqueItems"] = true
	}
	if n.MinItems != nil {
		doc["minItems"] = *n.MinItems
	}
	if n.MaxItems != nil {
		doc["maxItems"] = *n.MaxItems
	}
	n.Meta.renderInto(doc)
	return doc
}

func (n *Array) Validate() error {
	if n.Items != nil && len(n.PrefixItems) > 0 {
		return newInvalid("array", "prefixItems", "mutually exclusive with items")
	}
	if n.MinItems != nil && *n.MinItems < 0 {
		return newInvalid("array", "minItems", "must not be negative")
	}
	if n.MinItems != nil && n.MaxItems != nil && *n.MinItems > *n.MaxItems {
		return newInvalid("array", "minItems", "exceeds maxItems")
	}
	if n.Items != nil {
		if err := n.Items.Validate(); err != nil {
			return err
		}
	}
	for _, it := range n.PrefixItems {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	if n.Contains != nil {
		if err := n.Contains.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Object is the JSON object type. Required must reference declared
// properties; AdditionalProperties left nil is omitted from the rendering.
type Object struct {
	Meta
	Properties           map[string]Node `json:"properties,omitempty"`
	PatternProperties    map[string]Node `json:"patternProperties,omitempty"`
	AdditionalProperties *bool           `json:"additionalProperties,omitempty"`
	Required             []string        `json:"required,omitempty"`
	MinProperties        *int            `json:"minProperties,omitempty"`
	MaxProperties        *int            `json:"maxProperties,omitempty"`
}

func (n *Object) Render() map[string]any {
	doc := map[string]any{"type": "object"}
	if len(n.Properties) > 0 {
		props := make(map[string]any, len(n.Properties))
		for name, p := range n.Properties {
			props[name] = p.Render()
		}
		doc["properties"] = props
	}
	if len(n.PatternProperties) > 0 {
		props := make(map[string]any, len(n.PatternProperties))
		for pattern, p := range n.PatternProperties {
			props[pattern] = p.Render()
		}
		doc["patternProperties"] = props
	}
	if n.AdditionalProperties != nil {
		doc["additionalProperties"] = *n.AdditionalProperties
	}
	if len(n.Required) > 0 {
		doc["required"] = n.Required
	}
	if n.MinProperties != nil {
		doc["minProperties"] = *n.MinProperties
	}
	if n.MaxProperties != nil {
		doc["maxProperties"] = *n.MaxProperties
	}
	n.Meta.renderInto(doc)
	return doc
}

func (n *Object) Validate() error {
	for _, name := range n.Required {
		if _, ok := n.Properties[name]; !ok {
			return newInvalid("object", "required", "references undeclared property "+name)
		}
	}
	if n.MinProperties != nil && *n.MinProperties < 0 {
		return newInvalid("object", "minProperties", "must not be negative")
	}
	if n.MinProperties != nil && n.MaxProperties != nil && *n.MinProperties > *n.MaxProperties {
		return newInvalid("object", "minProperties", "exceeds maxProperties")
	}
	for _, p := range n.Properties {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, p := range n.PatternProperties {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Enum lists an allowed set of two or more values. A single fixed value is a
// Const, not a one-element Enum.
type Enum struct {
	Meta
	Enum []any `json:"enum"`
}

func (n *Enum) Render() map[string]any {
	doc := map[string]any{"enum": n.Enum}
	n.Meta.renderInto(doc)
	return doc
}

func (n *Enum) Validate() error {
	if len(n.Enum) < 2 {
		return newInvalid("enum", "enum", "requires at least two values; use Const for one")
	}
	return nil
}

// Const fixes exactly one allowed value.
type Const struct {
	Meta
	Const any `json:"const"`
}

func (n *Const) Render() map[string]any {
	doc := map[string]any{"const": n.Const}
	n.Meta.renderInto(doc)
	return doc
}

func (n *Const) Validate() error { return nil }

// AnyOf matches when at least one member schema matches.
type AnyOf struct {
	Meta
	Items []Node `json:"anyOf"`
}

func (n *AnyOf) Render() map[string]any {
	doc := map[string]any{"anyOf": renderAll(n.Items)}
	n.Meta.renderInto(doc)
	return doc
}

func (n *AnyOf) Validate() error { return validateCombinator("anyOf", n.Items) }

// OneOf matches when exactly one member schema matches.
type OneOf struct {
	Meta
	Items []Node `json:"oneOf"`
}

func (n *OneOf) Render() map[string]any {
	doc := map[string]any{"oneOf": renderAll(n.Items)}
	n.Meta.renderInto(doc)
	return doc
}

func (n *OneOf) Validate() error { return validateCombinator("oneOf", n.Items) }

// AllOf matches when every member schema matches.
type AllOf struct {
	Meta
	Items []Node `json:"allOf"`
}

func (n *AllOf) Render() map[string]any {
	doc := map[string]any{"allOf": renderAll(n.Items)}
	n.Meta.renderInto(doc)
	return doc
}

func (n *AllOf) Validate() error { return validateCombinator("allOf", n.Items) }

// Not inverts the wrapped schema.
type Not struct {
	Meta
	Item Node `json:"not"`
}

func (n *Not) Render() map[string]any {
	doc := map[string]any{"not": n.Item.Render()}
	n.Meta.renderInto(doc)
	return doc
}

func (n *Not) Validate() error {
	if n.Item == nil {
		return newInvalid("not", "not", "missing wrapped schema")
	}
	return n.Item.Validate()
}

// Nullable admits the wrapped schema or null. It is a thin composition, not a
// primitive: it renders as the anyOf of the item's rendering and the null
// type.
type Nullable struct {
	Meta
	Item Node `json:"-"`
}

func (n *Nullable) Render() map[string]any {
	doc := map[string]any{
		"anyOf": []any{n.Item.Render(), map[string]any{"type": "null"}},
	}
	n.Meta.renderInto(doc)
	return doc
}

func (n *Nullable) Validate() error {
	if n.Item == nil {
		return newInvalid("nullable", "anyOf", "missing wrapped schema")
	}
	return n.Item.Validate()
}

func renderAll(items []Node) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, it.Render())
	}
	return out
}

func validateCombinator(keyword string, items []Node) error {
	if len(items) == 0 {
		return newInvalid(keyword, keyword, "requires at least one member schema")
	}
	for _, it := range items {
		if it == nil {
			return newInvalid(keyword, keyword, "contains a nil member schema")
		}
		if err := it.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// variantName names a node's variant for diagnostics.
func variantName(n Node) string {
	switch n.(type) {
	case *Any:
		return "any"
	case *Boolean:
		return "boolean"
	case *Null:
		return "null"
	case *String:
		return "string"
	case *Integer:
		return "integer"
	case *Number:
		return "number"
	case *Array:
		return "array"
	case *Object:
		return "object"
	case *Enum:
		return "enum"
	case *Const:
		return "const"
	case *AnyOf:
		return "anyOf"
	case *OneOf:
		return "oneOf"
	case *AllOf:
		return "allOf"
	case *Not:
		return "not"
	case *Nullable:
		return "nullable"
	default:
		return "unknown"
	}
}
