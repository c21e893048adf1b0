package schema

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func set(raw any) Value { return Value{Set: true, Raw: raw} }

func TestRequiredContract(t *testing.T) {
	descriptors := map[string]func(Opts) Field{
		"char":       Char,
		"arguments":  Arguments,
		"email":      Email,
		"phone":      Phone,
		"date":       Date,
		"birthday":   BirthDay,
		"gender":     Gender,
		"client_ids": ClientIDs,
	}

	for name, make := range descriptors {
		t.Run(name, func(t *testing.T) {
			required := make(Opts{Required: true})
			assert.ErrorIs(t, required.Validate(Value{}), ErrRequired)

			optional := make(Opts{})
			assert.NoError(t, optional.Validate(Value{}))
		})
	}
}

func TestNullableContract(t *testing.T) {
	cases := []struct {
		name  string
		make  func(Opts) Field
		empty any
	}{
		{"char", Char, ""},
		{"email", Email, ""},
		{"phone", Phone, ""},
		{"date", Date, ""},
		{"birthday", BirthDay, ""},
		{"arguments", Arguments, map[string]any{}},
		{"client_ids", ClientIDs, []any{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			strict := tc.make(Opts{})
			assert.ErrorIs(t, strict.Validate(set(tc.empty)), ErrEmpty)

			nullable := tc.make(Opts{Nullable: true})
			assert.NoError(t, nullable.Validate(set(tc.empty)))
		})
	}
}

func TestNullValueContract(t *testing.T) {
	descriptors := map[string]func(Opts) Field{
		"char":       Char,
		"arguments":  Arguments,
		"email":      Email,
		"phone":      Phone,
		"date":       Date,
		"birthday":   BirthDay,
		"gender":     Gender,
		"client_ids": ClientIDs,
	}

	for name, make := range descriptors {
		t.Run(name, func(t *testing.T) {
			strict := make(Opts{Required: true})
			assert.ErrorIs(t, strict.Validate(set(nil)), ErrEmpty)

			nullable := make(Opts{Required: true, Nullable: true})
			assert.NoError(t, nullable.Validate(set(nil)),
				"a supplied null satisfies required when nullable")
		})
	}
}

func TestCharRejectsNonText(t *testing.T) {
	f := Char(Opts{})
	assert.Error(t, f.Validate(set(json.Number("1"))))
	assert.Error(t, f.Validate(set([]any{"x"})))
	assert.NoError(t, f.Validate(set("x")))
}

func TestArgumentsRejectsNonObject(t *testing.T) {
	f := Arguments(Opts{})
	assert.Error(t, f.Validate(set("not an object")))
	assert.NoError(t, f.Validate(set(map[string]any{"k": "v"})))
}

func TestEmailRule(t *testing.T) {
	f := Email(Opts{})
	assert.NoError(t, f.Validate(set("stupnikov@otus.ru")))
	assert.Error(t, f.Validate(set("not-an-email")))
	assert.Error(t, f.Validate(set(json.Number("7"))), "email must still be text")
}

func TestPhoneRule(t *testing.T) {
	f := Phone(Opts{})

	assert.NoError(t, f.Validate(set("79161234567")))
	assert.NoError(t, f.Validate(set(json.Number("79161234567"))), "integer form of the same digits")

	assert.Error(t, f.Validate(set("89161234567")), "leading 8")
	assert.Error(t, f.Validate(set(json.Number("89161234567"))))
	assert.Error(t, f.Validate(set("7916123456")), "10 characters")
	assert.Error(t, f.Validate(set("791612345678")), "12 characters")
	assert.Error(t, f.Validate(set(json.Number("7.9161234567"))), "fractional number")
	assert.Error(t, f.Validate(set([]any{})))
}

func TestDateRule(t *testing.T) {
	f := Date(Opts{})
	assert.NoError(t, f.Validate(set("01.01.2000")))
	assert.ErrorIs(t, f.Validate(set("2000-01-01")), ErrBadDateFormat)
	assert.ErrorIs(t, f.Validate(set("32.01.2000")), ErrBadDateFormat)
}

func TestBirthDayAgeBoundary(t *testing.T) {
	f := BirthDay(Opts{})
	now := time.Now().UTC()

	exactly70 := now.AddDate(-AgeLimit, 0, 0)
	assert.NoError(t, f.Validate(set(exactly70.Format(DateLayout))),
		"exactly %d years ago is still allowed", AgeLimit)

	dayOlder := exactly70.AddDate(0, 0, -1)
	assert.ErrorIs(t, f.Validate(set(dayOlder.Format(DateLayout))), ErrAgeLimit)

	young := now.AddDate(-30, 0, 0)
	assert.NoError(t, f.Validate(set(young.Format(DateLayout))))
}

func TestGenderRule(t *testing.T) {
	f := Gender(Opts{Nullable: true})

	for _, ok := range []int64{GenderUnknown, GenderMale, GenderFemale} {
		assert.NoError(t, f.Validate(set(json.Number(fmt.Sprint(ok)))))
	}
	assert.Error(t, f.Validate(set(json.Number("3"))))
	assert.Error(t, f.Validate(set(json.Number("-1"))))
	assert.Error(t, f.Validate(set("1")), "gender must be an integer, not text")
	assert.Error(t, f.Validate(set(json.Number("1.5"))))
}

func TestClientIDsRule(t *testing.T) {
	f := ClientIDs(Opts{Required: true})

	require.NoError(t, f.Validate(set([]any{json.Number("1"), json.Number("2")})))
	assert.ErrorIs(t, f.Validate(set([]any{json.Number("1"), "2"})), ErrListElement)
	assert.ErrorIs(t, f.Validate(set([]any{json.Number("1.5")})), ErrListElement)
	assert.Error(t, f.Validate(set("1,2,3")), "must be a list")
	assert.ErrorIs(t, f.Validate(set([]any{})), ErrEmpty)
}

func TestValidateIsPure(t *testing.T) {
	f := Phone(Opts{Required: true})
	v := set("79161234567")

	require.NoError(t, f.Validate(v))
	require.NoError(t, f.Validate(v), "second validation of the same value must agree")

	bad := set("89161234567")
	first := f.Validate(bad)
	second := f.Validate(bad)
	require.Error(t, first)
	assert.Equal(t, first.Error(), second.Error())
}

func TestValueInt(t *testing.T) {
	n, ok := set(json.Number("42")).Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok = set(json.Number("4.2")).Int()
	assert.False(t, ok)

	_, ok = set("42").Int()
	assert.False(t, ok)

	_, ok = (Value{}).Int()
	assert.False(t, ok)
}
