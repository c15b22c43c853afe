package feature

import "github.com/siherrmann/coref/model"

// AttributeValuePair is one computed feature
type AttributeValuePair struct {
	Extractor string
	Key       string
	Value     Value
}

// NewAttributeValuePair creates a feature of extractor under key
func NewAttributeValuePair(extractor string, key string, value Value) AttributeValuePair {
	return AttributeValuePair{Extractor: extractor, Key: key, Value: value}
}

// Name returns the feature name the pair is stored under
func (a AttributeValuePair) Name() string {
	return FeatureName(a.Extractor, a.Key)
}

// Equals compares extractor, key and value
func (a AttributeValuePair) Equals(other AttributeValuePair) bool {
	return a.Extractor == other.Extractor && a.Key == other.Key && a.Value.Equal(other.Value)
}

// ValueEquals compares values only, ignoring extractor and key
func (a AttributeValuePair) ValueEquals(other AttributeValuePair) bool {
	return a.Value.Equal(other.Value)
}

// FeatureName joins extractor and key into the table key
func FeatureName(extractor string, key string) string {
	return extractor + ":" + key
}

// MentionPair is a canonical (ascending id) pair of mentions
type MentionPair struct {
	First  model.MentionID
	Second model.MentionID
}

// NewMentionPair orders the two ids ascending
func NewMentionPair(a, b model.MentionID) MentionPair {
	if b < a {
		a, b = b, a
	}
	return MentionPair{First: a, Second: b}
}

// AnyValueEquals reports whether any value of left equals any value of right
func AnyValueEquals(left, right []AttributeValuePair) bool {
	for _, l := range left {
		for _, r := range right {
			if l.ValueEquals(r) {
				return true
			}
		}
	}
	return false
}

// Strings returns the distinct string values in first-seen order, skipping other kinds
func Strings(pairs []AttributeValuePair) []string {
	seen := make(map[string]bool, len(pairs))
	var out []string
	for _, p := range pairs {
		if p.Value.Kind() != KindString {
			continue
		}
		s := p.Value.AsString()
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
