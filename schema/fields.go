package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Violations every descriptor can report, in the order they are checked.
var (
	// ErrRequired is returned when a required field is absent from the input.
	ErrRequired = errors.New("value is required")

	// ErrEmpty is returned when a non-nullable field carries null or the
	// canonical empty value for its kind (empty text, empty list, empty map).
	ErrEmpty = errors.New("value must not be empty")

	// ErrBadDateFormat is returned for date values not matching DD.MM.YYYY.
	ErrBadDateFormat = errors.New("value is not a date in DD.MM.YYYY format")

	// ErrAgeLimit is returned when a birthdate is further in the past than
	// the configured age limit allows.
	ErrAgeLimit = errors.New("birthday exceeds the age limit")

	// ErrListElement is returned when a list value holds a non-integer element.
	ErrListElement = errors.New("every list element must be an integer")
)

// Value is the raw, not-yet-validated content of a single declared field.
// The zero Value is the unset sentinel: the input carried no key for the
// field at all. An explicit JSON null is different: it binds as a set Value
// with nil Raw and is acceptable only for nullable fields.
type Value struct {
	Set bool
	Raw any
}

// Text returns the value as a string, or "" when it is unset or not text.
func (v Value) Text() string {
	s, _ := v.Raw.(string)
	return s
}

// Map returns the value as a keyed mapping, or nil.
func (v Value) Map() map[string]any {
	m, _ := v.Raw.(map[string]any)
	return m
}

// Int returns the value as an integer. JSON numbers are expected to be
// decoded with json.Decoder.UseNumber; fractional numbers do not qualify.
func (v Value) Int() (int64, bool) {
	if !v.Set {
		return 0, false
	}
	return intValue(v.Raw)
}

func intValue(raw any) (int64, bool) {
	switch t := raw.(type) {
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case int:
		return int64(t), true
	case int64:
		return t, true
	}
	return 0, false
}

// Opts is the presence contract shared by all field descriptors.
//
// Required means the input must supply the field's key, even with a null
// value. Nullable means null and the canonical empty value of the field's
// kind are acceptable; an allowed null or empty value short-circuits the
// type rules and validates as empty-present.
type Opts struct {
	Required bool
	Nullable bool
}

// Field validates one declared attribute. Validate is a pure function of
// the descriptor's configuration and the supplied value; it never mutates
// shared state and returns the first violated rule.
type Field interface {
	Validate(v Value) error
}

// rule is one link of a descriptor's type-specific validation chain.
// Rules run only for values that passed the presence and emptiness gate.
type rule func(raw any) error

// field is the concrete descriptor: presence contract, a per-kind canonical
// emptiness predicate, and an ordered rule chain. Derived descriptors
// (email from text, birthdate from date) extend the chain of their base.
type field struct {
	Opts
	empty func(raw any) bool
	rules []rule
}

func (f field) Validate(v Value) error {
	if !v.Set {
		if f.Required {
			return ErrRequired
		}
		return nil // valid-absent, no further checks
	}
	if v.Raw == nil || (f.empty != nil && f.empty(v.Raw)) {
		if !f.Nullable {
			return ErrEmpty
		}
		return nil // null and canonical empty are allowed, nothing left to verify
	}
	for _, r := range f.rules {
		if err := r(v.Raw); err != nil {
			return err
		}
	}
	return nil
}

// extend returns a copy of f with extra rules appended to its chain.
func (f field) extend(rules ...rule) field {
	chained := make([]rule, 0, len(f.rules)+len(rules))
	chained = append(chained, f.rules...)
	chained = append(chained, rules...)
	f.rules = chained
	return f
}

func emptyText(raw any) bool {
	s, ok := raw.(string)
	return ok && s == ""
}

func emptyList(raw any) bool {
	l, ok := raw.([]any)
	return ok && len(l) == 0
}

func emptyMap(raw any) bool {
	m, ok := raw.(map[string]any)
	return ok && len(m) == 0
}

func isText(raw any) error {
	if _, ok := raw.(string); !ok {
		return errors.New("value must be a string")
	}
	return nil
}

// Char describes a plain text field.
func Char(o Opts) Field {
	return field{Opts: o, empty: emptyText, rules: []rule{isText}}
}

// Arguments describes a nested keyed-mapping field (a parsed JSON object).
func Arguments(o Opts) Field {
	return field{Opts: o, empty: emptyMap, rules: []rule{func(raw any) error {
		if _, ok := raw.(map[string]any); !ok {
			return errors.New("value must be an object")
		}
		return nil
	}}}
}

// Email describes a text field that must contain an "@".
func Email(o Opts) Field {
	return Char(o).(field).extend(func(raw any) error {
		s, _ := raw.(string)
		for i := 0; i < len(s); i++ {
			if s[i] == '@' {
				return nil
			}
		}
		return errors.New("value must be a valid email address")
	})
}

// Phone describes a phone number supplied as text or as an integer. Its
// decimal form must be exactly 11 characters long and begin with "7".
func Phone(o Opts) Field {
	return field{Opts: o, empty: emptyText, rules: []rule{func(raw any) error {
		var s string
		switch t := raw.(type) {
		case string:
			s = t
		case json.Number:
			if _, err := t.Int64(); err != nil {
				return errors.New("value must be a string or an integer")
			}
			s = t.String()
		case int:
			s = strconv.Itoa(t)
		case int64:
			s = strconv.FormatInt(t, 10)
		default:
			return errors.New("value must be a string or an integer")
		}
		if len(s) != 11 {
			return errors.New("phone number must consist of 11 digits")
		}
		if s[0] != '7' {
			return errors.New("phone number must start with 7")
		}
		return nil
	}}}
}

// DateLayout is the only accepted wire format for dates.
const DateLayout = "02.01.2006"

func isDate(raw any) error {
	s, _ := raw.(string)
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ErrBadDateFormat
	}
	return nil
}

// Date describes a text field holding a DD.MM.YYYY date.
func Date(o Opts) Field {
	return Char(o).(field).extend(isDate)
}

// AgeLimit is the maximum allowed age, in years, for a BirthDay value.
const AgeLimit = 70

// BirthDay describes a date field whose value must be no more than AgeLimit
// years before the current date. A birthdate exactly AgeLimit years ago is
// still accepted; one day older is not.
func BirthDay(o Opts) Field {
	return Date(o).(field).extend(func(raw any) error {
		s, _ := raw.(string)
		birthday, err := time.Parse(DateLayout, s)
		if err != nil {
			return ErrBadDateFormat
		}
		now := time.Now().UTC()
		cutoff := now.AddDate(-AgeLimit, 0, 0)
		cutoff = time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)
		if birthday.Before(cutoff) {
			return fmt.Errorf("%w of %d years", ErrAgeLimit, AgeLimit)
		}
		return nil
	})
}

// Gender enumeration shared with the scoring collaborator.
const (
	GenderUnknown int64 = 0
	GenderMale    int64 = 1
	GenderFemale  int64 = 2
)

// KnownGender reports whether n is one of the enumerated gender values.
func KnownGender(n int64) bool {
	return n == GenderUnknown || n == GenderMale || n == GenderFemale
}

// Gender describes an integer field restricted to the values 0, 1 and 2.
func Gender(o Opts) Field {
	return field{Opts: o, rules: []rule{func(raw any) error {
		n, ok := intValue(raw)
		if !ok || !KnownGender(n) {
			return errors.New("gender must be 0, 1 or 2")
		}
		return nil
	}}}
}

// ClientIDs describes a list field whose every element is an integer.
func ClientIDs(o Opts) Field {
	return field{Opts: o, empty: emptyList, rules: []rule{func(raw any) error {
		list, ok := raw.([]any)
		if !ok {
			return errors.New("value must be a list")
		}
		for _, el := range list {
			if _, ok := intValue(el); !ok {
				return ErrListElement
			}
		}
		return nil
	}}}
}
