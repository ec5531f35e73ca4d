package typeschema

// Package typeschema converts abstract type annotations into JSON Schema
// documents:
//
// - An annotation descriptor model independent of any reflection API
// - An ordered recognizer registry with first-match-wins semantics
// - A recursive resolver with strictness policy and cycle detection
// - A signature binder producing request/response schema pairs
//
// Design policy:
// - Keep only public APIs in the root package; the schema node model lives
//   under jsonschema/ and the reflection adapter under gotypes/.
// - Configure a Registry fully before resolving; resolution itself is pure
//   and call-local, so concurrent Resolve/Bind calls need no locking.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	r := typeschema.New()
//	node, err := r.Resolve(gotypes.FromType(reflect.TypeOf(Person{})))
//	doc := node.Render()
//
//	fa, err := r.Bind(sig)
//	body, err := jsonschema.Marshal(fa.Kwargs)
