package typeschema

// Origin identifies the base type behind an annotation. The constants below
// cover the built-in recognizer set; adapters may also place any comparable
// value (for example a reflect.Type) in Annotation.Origin and register a
// custom recognizer for it.
type Origin string

const (
	OriginAny      Origin = "any"
	OriginString   Origin = "string"
	OriginBytes    Origin = "bytes"
	OriginInt      Origin = "int"
	OriginFloat    Origin = "float"
	OriginBool     Origin = "bool"
	OriginNull     Origin = "null"
	OriginUUID     Origin = "uuid"
	OriginDate     Origin = "date"
	OriginDateTime Origin = "datetime"
	OriginEmail    Origin = "email"
	OriginList     Origin = "list"
	OriginSet      Origin = "set"
	OriginTuple    Origin = "tuple"
	OriginMap      Origin = "map"
	OriginUnion    Origin = "union"
	OriginLiteral  Origin = "literal"
	OriginEnum     Origin = "enum"
	OriginStruct   Origin = "struct"
)

// Annotation is the abstract description of one type hint, independent of
// any concrete reflection API. An adapter layer (see gotypes) fills it in;
// the resolver treats it as read-only.
type Annotation struct {
	// Name is the display name, rendered as the schema title where the
	// built-in recognizers carry it over (records, enums, aliases).
	Name string

	// Description is the documentation text attached to the annotation's
	// declaration, rendered as the schema description alongside Name.
	Description string

	// Origin is the base type marker: one of the Origin constants, or any
	// adapter-supplied comparable value.
	Origin any

	// Args holds ordered type arguments, e.g. the V in list[V] or the
	// members of a union.
	Args []*Annotation

	// Bound is the substituted annotation for named type variables and
	// aliases. An annotation with Bound set resolves by resolving Bound.
	Bound *Annotation

	// Fields describes a structured record, in declaration order.
	Fields []Field

	// Values holds the fixed value set of literal and enum-like
	// annotations.
	Values []any

	// Ident is a comparable identity used for cycle detection. nil opts the
	// annotation out; identity-free annotations cannot form cycles.
	Ident any
}

// Field is one member of a structured record annotation.
type Field struct {
	Name       string
	Annotation *Annotation
	HasDefault bool
	Default    any
	// Optional marks the field optional without a default value. A field is
	// required unless Optional is set or a default is present.
	Optional bool
}

// required reports whether the field lands in the object's required list.
func (f Field) required() bool { return !f.Optional && !f.HasDefault }
