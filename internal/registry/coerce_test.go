package registry

import (
	"errors"
	"reflect"
	"testing"
)

func mustField(t *testing.T, name string) Field {
	t.Helper()
	f, ok := Lookup(name)
	if !ok {
		t.Fatalf("Lookup(%q) failed", name)
	}
	return f
}

func TestCoerce_String(t *testing.T) {
	f := mustField(t, "category")

	coerced, omit, err := Coerce(f, "  rock  ")
	if err != nil {
		t.Errorf("Coerce() failed: %v", err)
	}
	if omit {
		t.Error("Coerce() omitted a present value")
	}
	if coerced != "rock" {
		t.Errorf("Coerce() = %v, want trimmed %q", coerced, "rock")
	}
}

func TestCoerce_StringRejectsNumber(t *testing.T) {
	f := mustField(t, "category")

	_, _, err := Coerce(f, 42.0)
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Coerce() error = %v, want ErrInvalidValue", err)
	}
}

func TestCoerce_NilOmits(t *testing.T) {
	for _, name := range []string{"category", "collectionYear", "sampleType"} {
		f := mustField(t, name)
		_, omit, err := Coerce(f, nil)
		if err != nil {
			t.Errorf("Coerce(%s, nil) failed: %v", name, err)
		}
		if !omit {
			t.Errorf("Coerce(%s, nil) should omit", name)
		}
	}
}

func TestCoerce_Number(t *testing.T) {
	f := mustField(t, "collectionYear")

	tests := []struct {
		name  string
		input interface{}
		want  float64
	}{
		{"float64", 1998.0, 1998},
		{"int", 1998, 1998},
		{"numeric string", "1998", 1998},
		{"numeric string with spaces", " 1998.5 ", 1998.5},
	}
	for _, tt := range tests {
		coerced, omit, err := Coerce(f, tt.input)
		if err != nil {
			t.Errorf("%s: Coerce() failed: %v", tt.name, err)
			continue
		}
		if omit {
			t.Errorf("%s: Coerce() omitted a present value", tt.name)
		}
		if coerced != tt.want {
			t.Errorf("%s: Coerce() = %v, want %v", tt.name, coerced, tt.want)
		}
	}

	if _, _, err := Coerce(f, "not a year"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Coerce(non-numeric string) error = %v, want ErrInvalidValue", err)
	}
}

func TestCoerce_StringArray(t *testing.T) {
	f := mustField(t, "sampleType")

	tests := []struct {
		name  string
		input interface{}
		want  []string
	}{
		{"string slice", []string{"igneous", "volcanic"}, []string{"igneous", "volcanic"}},
		{"interface slice", []interface{}{"igneous", "volcanic"}, []string{"igneous", "volcanic"}},
		{"comma separated", "igneous, volcanic ,plutonic", []string{"igneous", "volcanic", "plutonic"}},
		{"single value string", "igneous", []string{"igneous"}},
	}
	for _, tt := range tests {
		coerced, omit, err := Coerce(f, tt.input)
		if err != nil {
			t.Errorf("%s: Coerce() failed: %v", tt.name, err)
			continue
		}
		if omit {
			t.Errorf("%s: Coerce() omitted a present value", tt.name)
		}
		if !reflect.DeepEqual(coerced, tt.want) {
			t.Errorf("%s: Coerce() = %v, want %v", tt.name, coerced, tt.want)
		}
	}

	if _, _, err := Coerce(f, []interface{}{"igneous", 7}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Coerce(mixed array) error = %v, want ErrInvalidValue", err)
	}
}

func TestRegistry_LookupRoundTrip(t *testing.T) {
	for _, f := range Fields() {
		got, ok := Lookup(f.ExternalName)
		if !ok {
			t.Errorf("Lookup(%q) failed", f.ExternalName)
			continue
		}
		if got != f {
			t.Errorf("Lookup(%q) = %+v, want %+v", f.ExternalName, got, f)
		}
	}

	if _, ok := Lookup("notAField"); ok {
		t.Error("Lookup(notAField) should miss")
	}
	if _, err := MustLookup("notAField"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("MustLookup(notAField) error = %v, want ErrUnknownField", err)
	}
}

func TestTextualFields(t *testing.T) {
	textual := TextualFields()
	if len(textual) != 20 {
		t.Errorf("TextualFields() returned %d fields, want 20", len(textual))
	}
	for _, f := range textual {
		if f.Type == Number {
			t.Errorf("TextualFields() included numeric field %s", f.ExternalName)
		}
	}
}
