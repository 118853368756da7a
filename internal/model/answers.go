package model

// AnswerMap maps question ids to answer values. Value shape depends on the
// question type: string for single-choice and text answers, []string (or
// []any over the wire) for multi-choice, bool for consent.
type AnswerMap map[string]any

// IsSet reports whether a question has a usable answer. Empty strings,
// empty selections, explicit false and nil all count as unset - a gated
// question must never show before its gate carries a real value.
func (m AnswerMap) IsSet(id string) bool {
	v, ok := m[id]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case bool:
		return t
	case []string:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case int:
		return t != 0
	case float64:
		return t != 0
	}
	return true
}

// String returns the answer as a string, or "" when unset or not a string.
func (m AnswerMap) String(id string) string {
	if s, ok := m[id].(string); ok {
		return s
	}
	return ""
}

// List returns a multi-choice selection. JSON decoding produces []any, so
// both representations are accepted.
func (m AnswerMap) List(id string) []string {
	switch t := m[id].(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Bool returns the answer as a bool, or false when unset or not a bool.
func (m AnswerMap) Bool(id string) bool {
	b, ok := m[id].(bool)
	return ok && b
}

// Contains reports whether a multi-choice answer includes the given value.
func (m AnswerMap) Contains(id, value string) bool {
	for _, v := range m.List(id) {
		if v == value {
			return true
		}
	}
	return false
}
