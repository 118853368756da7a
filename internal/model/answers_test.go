package model

import "testing"

func TestAnswerMapIsSet(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"missing key", nil, false},
		{"empty string", "", false},
		{"non-empty string", "always", true},
		{"false", false, false},
		{"true", true, true},
		{"empty string slice", []string{}, false},
		{"string slice", []string{"transport"}, true},
		{"empty any slice", []any{}, false},
		{"any slice", []any{"transport"}, true},
		{"zero int", 0, false},
		{"zero float", float64(0), false},
		{"non-zero float", float64(3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := AnswerMap{}
			if tt.name != "missing key" {
				m["q"] = tt.value
			}
			if got := m.IsSet("q"); got != tt.want {
				t.Errorf("IsSet() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("explicit nil value", func(t *testing.T) {
		m := AnswerMap{"q": nil}
		if m.IsSet("q") {
			t.Error("IsSet() = true for nil value")
		}
	})
}

func TestAnswerMapList(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"string slice", []string{"a", "b"}, []string{"a", "b"}},
		{"decoded JSON slice", []any{"a", "b"}, []string{"a", "b"}},
		{"mixed slice keeps strings only", []any{"a", 3, "b"}, []string{"a", "b"}},
		{"scalar value", "a", nil},
		{"missing", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := AnswerMap{"q": tt.value}
			got := m.List("q")
			if len(got) != len(tt.want) {
				t.Fatalf("List() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("List()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAnswerMapContains(t *testing.T) {
	m := AnswerMap{
		"blockers": []any{"transport", "noResources"},
	}

	if !m.Contains("blockers", "transport") {
		t.Error("Contains() = false for present value")
	}
	if m.Contains("blockers", "bullying") {
		t.Error("Contains() = true for absent value")
	}
	if m.Contains("missing", "anything") {
		t.Error("Contains() = true for missing question")
	}
}

func TestAnswerMapBool(t *testing.T) {
	m := AnswerMap{"consent": true, "text": "yes"}

	if !m.Bool("consent") {
		t.Error("Bool() = false for true value")
	}
	if m.Bool("text") {
		t.Error("Bool() = true for non-bool value")
	}
	if m.Bool("missing") {
		t.Error("Bool() = true for missing value")
	}
}
