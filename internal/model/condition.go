package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TermKind identifies the shape of a single condition term.
type TermKind int

const (
	// TermEquals matches when the looked-up value equals a literal.
	TermEquals TermKind = iota
	// TermIn matches when the looked-up value is one of a list.
	TermIn
	// TermRange matches when a dimension score falls within min/max bounds.
	TermRange
)

// Term is one entry of a condition set, keyed by a question id (visibility
// conditions) or a dimension name (score conditions).
type Term struct {
	Kind   TermKind `json:"kind"`
	Equals string   `json:"equals,omitempty"`
	In     []string `json:"in,omitempty"`
	Min    *int     `json:"min,omitempty"`
	Max    *int     `json:"max,omitempty"`
}

// ConditionSet is the parsed form of a declarative condition object.
//
// Evaluation is conjunctive across Terms. When AnyOf is present the set
// matches if any branch matches. Always short-circuits to true (the
// "default" marker). An empty set is vacuously true.
type ConditionSet struct {
	Always bool            `json:"always,omitempty"`
	AnyOf  []ConditionSet  `json:"anyOf,omitempty"`
	Terms  map[string]Term `json:"terms,omitempty"`
}

// IsEmpty reports whether the set carries no constraints at all.
func (c *ConditionSet) IsEmpty() bool {
	return !c.Always && len(c.AnyOf) == 0 && len(c.Terms) == 0
}

// UnmarshalYAML resolves the duck-typed condition grammar into the
// discriminated union once, at load time, so malformed shapes fail the
// configuration load instead of surfacing mid-evaluation.
func (c *ConditionSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("condition: expected mapping, got %s", nodeKind(node))
	}

	c.Terms = make(map[string]Term)

	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("condition: bad key: %w", err)
		}

		switch key {
		case "default":
			var marker bool
			if err := valNode.Decode(&marker); err != nil || !marker {
				return fmt.Errorf("condition: default marker must be true")
			}
			c.Always = true

		case "OR":
			var branches []ConditionSet
			if err := valNode.Decode(&branches); err != nil {
				return fmt.Errorf("condition: OR must hold a list of condition sets: %w", err)
			}
			if len(branches) == 0 {
				return fmt.Errorf("condition: OR must not be empty")
			}
			c.AnyOf = branches

		default:
			term, err := parseTerm(valNode)
			if err != nil {
				return fmt.Errorf("condition %q: %w", key, err)
			}
			c.Terms[key] = term
		}
	}

	return nil
}

func parseTerm(node *yaml.Node) (Term, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var lit string
		if err := node.Decode(&lit); err != nil {
			return Term{}, fmt.Errorf("bad literal: %w", err)
		}
		return Term{Kind: TermEquals, Equals: lit}, nil

	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return Term{}, fmt.Errorf("bad value list: %w", err)
		}
		if len(values) == 0 {
			return Term{}, fmt.Errorf("value list must not be empty")
		}
		return Term{Kind: TermIn, In: values}, nil

	case yaml.MappingNode:
		var bounds struct {
			Min *int `yaml:"min"`
			Max *int `yaml:"max"`
		}
		if err := node.Decode(&bounds); err != nil {
			return Term{}, fmt.Errorf("bad min/max bounds: %w", err)
		}
		if bounds.Min == nil && bounds.Max == nil {
			return Term{}, fmt.Errorf("bounds need at least one of min, max")
		}
		return Term{Kind: TermRange, Min: bounds.Min, Max: bounds.Max}, nil
	}

	return Term{}, fmt.Errorf("unsupported condition shape (%s)", nodeKind(node))
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	default:
		return "unknown node"
	}
}
