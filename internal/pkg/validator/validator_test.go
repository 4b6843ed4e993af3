package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	valid := []string{"2022-01", "2024-12", "2032-09"}
	invalid := []string{"2024-13", "2024-00", "2024-1", "24-01", "2024/01", ""}
	for _, s := range valid {
		if !IsValidMonth(s) {
			t.Errorf("IsValidMonth(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidMonth(s) {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}
}

func TestIsValidYear(t *testing.T) {
	assert.True(t, IsValidYear("2024"))
	assert.False(t, IsValidYear("all"))
	assert.False(t, IsValidYear("202"))
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Error("IsInSlice(\"a\") = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Error("IsInSlice(\"d\") = true, want false")
	}
}

type structSample struct {
	Kind  string `json:"kind" validate:"required,oneof=bar line pie"`
	Start string `json:"start" validate:"omitempty,month"`
	Size  int    `json:"page_size" validate:"min=1,max=100"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(structSample{Kind: "bar", Start: "2024-01", Size: 10})
	assert.NoError(t, err)
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	// Act
	err := Struct(structSample{Kind: "donut", Start: "2024-13", Size: 0})

	// Assert
	require.Error(t, err)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	details := errs.ToMap()
	assert.Equal(t, "kind must be one of: bar, line, pie", details["kind"])
	assert.Equal(t, "start must be in YYYY-MM format", details["start"])
	assert.Equal(t, "page_size must be at least 1", details["page_size"])
}
