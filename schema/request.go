package schema

import "fmt"

// FieldDef names one declared attribute of a schema.
type FieldDef struct {
	Name  string
	Field Field
}

// Schema is an ordered mapping from attribute name to Field descriptor.
// Schemas are assembled once at startup and never mutated afterwards.
type Schema []FieldDef

// Extend composes a child schema from the parent's fields plus defs.
// A def that re-declares a parent attribute replaces it in place, so the
// result never validates the same attribute twice.
func (s Schema) Extend(defs ...FieldDef) Schema {
	out := make(Schema, len(s), len(s)+len(defs))
	copy(out, s)
next:
	for _, def := range defs {
		for i := range out {
			if out[i].Name == def.Name {
				out[i] = def
				continue next
			}
		}
		out = append(out, def)
	}
	return out
}

// Request holds the raw values of one incoming call, bound to a schema.
// Construction performs no validation; Validate is a separate explicit step
// and has no side effects on the instance, so it may be repeated.
type Request struct {
	schema Schema
	values map[string]Value
}

// Bind reads each declared attribute out of the raw input mapping. An absent
// key binds as the unset sentinel; an explicit JSON null binds as a set value
// with nil content, so a required field may still be satisfied by null.
func Bind(s Schema, input map[string]any) *Request {
	values := make(map[string]Value, len(s))
	for _, def := range s {
		raw, ok := input[def.Name]
		if !ok {
			values[def.Name] = Value{}
			continue
		}
		values[def.Name] = Value{Set: true, Raw: raw}
	}
	return &Request{schema: s, values: values}
}

// Validate runs every declared descriptor against its bound value, in
// schema order, and returns the first violation wrapped with the field
// name. Validation is fail-fast; violations are never aggregated.
func (r *Request) Validate() error {
	for _, def := range r.schema {
		if err := def.Field.Validate(r.values[def.Name]); err != nil {
			return fmt.Errorf("%s: %w", def.Name, err)
		}
	}
	return nil
}

// Get returns the bound value of a declared attribute. Undeclared names
// return the unset sentinel.
func (r *Request) Get(name string) Value {
	return r.values[name]
}
