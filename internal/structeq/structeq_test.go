package structeq

import (
	"encoding/json"
	"testing"
)

func TestEqual(t *testing.T) {
	nested := map[string]any{
		"user": "ada",
		"meta": map[string]any{"logins": 12, "tags": []any{"a", "b"}},
	}

	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil_nil", nil, nil, true},
		{"primitives", "x", "x", true},
		{"primitive_mismatch", "x", "y", false},
		{"bool", true, true, true},
		{"reflexive_nested", nested, nested, true},
		{
			"same_content_rebuilt",
			map[string]any{"a": 1, "b": map[string]any{"c": []any{1, 2}}},
			map[string]any{"b": map[string]any{"c": []any{1, 2}}, "a": 1},
			true,
		},
		{
			"leaf_changed",
			map[string]any{"a": map[string]any{"b": 1}},
			map[string]any{"a": map[string]any{"b": 2}},
			false,
		},
		{
			"extra_key_in_b",
			map[string]any{"a": 1},
			map[string]any{"a": 1, "b": 2},
			false,
		},
		{
			"missing_key_in_b",
			map[string]any{"a": 1, "b": 2},
			map[string]any{"a": 1},
			false,
		},
		{
			"numeric_cross_type",
			map[string]any{"n": 12},
			map[string]any{"n": float64(12)},
			true,
		},
		{"int64_vs_int", int64(7), 7, true},
		{"uint64_vs_float", uint64(3), float64(3), true},
		{"json_number", json.Number("42"), 42, true},
		{"numeric_mismatch", 12, 12.5, false},
		{"number_vs_string", 12, "12", false},
		{"slice_order_matters", []any{1, 2}, []any{2, 1}, false},
		{"slice_length", []any{1}, []any{1, 1}, false},
		{"map_vs_slice", map[string]any{}, []any{}, false},
		{"nil_vs_empty_map", nil, map[string]any{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Equal(tc.a, tc.b); got != tc.want {
				t.Fatalf("Equal(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			// Equality is symmetric.
			if got := Equal(tc.b, tc.a); got != tc.want {
				t.Fatalf("Equal(%v, %v) = %v, want %v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}
