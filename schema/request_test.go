package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var personSchema = Schema{
	{Name: "first_name", Field: Char(Opts{Nullable: true})},
	{Name: "last_name", Field: Char(Opts{Nullable: true})},
	{Name: "email", Field: Email(Opts{Required: true})},
}

func TestBindDistinguishesAbsentAndNull(t *testing.T) {
	r := Bind(personSchema, map[string]any{
		"first_name": "Ada",
		"last_name":  nil,
	})

	assert.True(t, r.Get("first_name").Set)
	assert.Equal(t, "Ada", r.Get("first_name").Text())

	// Explicit null binds as a set, null value; only the key's absence
	// yields the unset sentinel.
	assert.True(t, r.Get("last_name").Set)
	assert.Nil(t, r.Get("last_name").Raw)
	assert.False(t, r.Get("email").Set)
	assert.False(t, r.Get("undeclared").Set)
}

func TestValidateNullSatisfiesRequiredOnlyIfNullable(t *testing.T) {
	s := Schema{
		{Name: "login", Field: Char(Opts{Required: true, Nullable: true})},
		{Name: "method", Field: Char(Opts{Required: true})},
	}

	r := Bind(s, map[string]any{"login": nil, "method": "online_score"})
	assert.NoError(t, r.Validate(), "required accepts a supplied null when nullable")

	r = Bind(s, map[string]any{"login": nil, "method": nil})
	err := r.Validate()
	require.ErrorIs(t, err, ErrEmpty)
	assert.Contains(t, err.Error(), "method:")

	r = Bind(s, map[string]any{"method": "online_score"})
	err = r.Validate()
	require.ErrorIs(t, err, ErrRequired, "an absent key is still missing")
	assert.Contains(t, err.Error(), "login:")
}

func TestValidateFailFastInSchemaOrder(t *testing.T) {
	r := Bind(personSchema, map[string]any{
		"first_name": 42,     // violates first
		"email":      "nope", // would violate later
	})

	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first_name:", "the first declared violation wins")
}

func TestValidateWrapsFieldName(t *testing.T) {
	r := Bind(personSchema, map[string]any{"first_name": "Ada"})

	err := r.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequired)
	assert.Contains(t, err.Error(), "email:")
}

func TestValidateIsIdempotent(t *testing.T) {
	r := Bind(personSchema, map[string]any{"email": "a@b.com"})
	require.NoError(t, r.Validate())
	require.NoError(t, r.Validate())

	bad := Bind(personSchema, map[string]any{"email": "ab.com"})
	first := bad.Validate()
	second := bad.Validate()
	require.Error(t, first)
	assert.Equal(t, first.Error(), second.Error())
}

func TestExtendComposesWithoutDuplicates(t *testing.T) {
	child := personSchema.Extend(
		FieldDef{Name: "phone", Field: Phone(Opts{Nullable: true})},
		FieldDef{Name: "email", Field: Email(Opts{Nullable: true})}, // overrides parent
	)

	require.Len(t, child, 4)
	assert.Equal(t, "first_name", child[0].Name)
	assert.Equal(t, "email", child[2].Name, "overridden field keeps its position")
	assert.Equal(t, "phone", child[3].Name)

	// Parent schema is untouched.
	require.Len(t, personSchema, 3)

	// The override is effective: email may now be omitted.
	r := Bind(child, map[string]any{})
	assert.NoError(t, r.Validate())
}
