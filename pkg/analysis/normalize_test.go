package analysis

import (
	"encoding/json"
	"testing"
)

func TestNumberOrDefault(t *testing.T) {
	cases := []struct {
		name   string
		values map[string]interface{}
		keys   []string
		want   float64
	}{
		{"missing key", map[string]interface{}{}, []string{"wbc"}, 7.5},
		{"float value", map[string]interface{}{"wbc": 12.3}, []string{"wbc"}, 12.3},
		{"int value", map[string]interface{}{"wbc": 12}, []string{"wbc"}, 12},
		{"string value", map[string]interface{}{"wbc": " 9.8 "}, []string{"wbc"}, 9.8},
		{"json number", map[string]interface{}{"wbc": json.Number("6.1")}, []string{"wbc"}, 6.1},
		{"unparseable string", map[string]interface{}{"wbc": "pending"}, []string{"wbc"}, 7.5},
		{"nil value", map[string]interface{}{"wbc": nil}, []string{"wbc"}, 7.5},
		{"second alias", map[string]interface{}{"whiteBloodCells": 5.5}, []string{"wbc", "whiteBloodCells"}, 5.5},
		{"first alias wins", map[string]interface{}{"wbc": 4.0, "whiteBloodCells": 9.0}, []string{"wbc", "whiteBloodCells"}, 4.0},
	}
	for _, tc := range cases {
		if got := numberOrDefault(tc.values, 7.5, tc.keys...); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLooseNumberOrDefault(t *testing.T) {
	cases := []struct {
		value interface{}
		want  float64
	}{
		{"positive", 1},
		{"Trace", 1},
		{"NEGATIVE", 0},
		{"none", 0},
		{"nil", 0},
		{"3+", 0.5}, // not a sentinel and not a number: default
		{"2.5", 2.5},
		{7, 7},
	}
	for _, tc := range cases {
		got := looseNumberOrDefault(map[string]interface{}{"glucose": tc.value}, 0.5, "glucose")
		if got != tc.want {
			t.Fatalf("looseNumberOrDefault(%v): got %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestTextOrDefault(t *testing.T) {
	if got := textOrDefault(map[string]interface{}{}, "clear", "clarity"); got != "clear" {
		t.Fatalf("missing key: got %q", got)
	}
	if got := textOrDefault(map[string]interface{}{"clarity": "  Turbid "}, "clear", "clarity"); got != "turbid" {
		t.Fatalf("string value: got %q", got)
	}
	if got := textOrDefault(map[string]interface{}{"clarity": "   "}, "clear", "clarity"); got != "clear" {
		t.Fatalf("blank string: got %q", got)
	}
}

func TestDisplayValuePreservesRawText(t *testing.T) {
	values := map[string]interface{}{"platelets": "Adequate"}
	if got := displayValue(values, 250, "platelets"); got != "Adequate" {
		t.Fatalf("raw text lost: got %q", got)
	}
	if got := displayValue(map[string]interface{}{}, 250, "platelets"); got != "250" {
		t.Fatalf("missing value should show the default: got %q", got)
	}
	if got := displayValue(map[string]interface{}{"wbc": 4.5}, 4.5, "wbc"); got != "4.5" {
		t.Fatalf("numeric formatting: got %q", got)
	}
}
