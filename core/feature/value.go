package feature

import (
	"fmt"
	"strconv"
	"unique"

	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
)

// Kind is the tag of a feature value
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindMention
	KindSyntaxNode
	KindProposition
	KindCustom
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindMention:
		return "mention"
	case KindSyntaxNode:
		return "syntax-node"
	case KindProposition:
		return "proposition"
	case KindCustom:
		return "custom"
	default:
		return "invalid"
	}
}

// CustomValue is a structured value compared by its key
type CustomValue interface {
	Key() string
}

// Value is a tagged feature value.
// Reference kinds hold the id of the referenced object, so two values
// referring to the same mention are equal regardless of where they came from.
type Value struct {
	kind   Kind
	num    int64
	float  float64
	str    unique.Handle[string]
	custom CustomValue
}

// Bool creates a boolean value
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.num = 1
	}
	return v
}

// Int creates an integer value
func Int(i int64) Value {
	return Value{kind: KindInt, num: i}
}

// Float creates a floating point value
func Float(f float64) Value {
	return Value{kind: KindFloat, float: f}
}

// String creates an interned string value
func String(s string) Value {
	return Value{kind: KindString, str: unique.Make(s)}
}

// MentionRef creates a reference to a mention
func MentionRef(id model.MentionID) Value {
	return Value{kind: KindMention, num: int64(id)}
}

// SyntaxNodeRef creates a reference to a syntax node
func SyntaxNodeRef(id int) Value {
	return Value{kind: KindSyntaxNode, num: int64(id)}
}

// PropositionRef creates a reference to a proposition
func PropositionRef(id int) Value {
	return Value{kind: KindProposition, num: int64(id)}
}

// Custom wraps a structured value
func Custom(c CustomValue) Value {
	return Value{kind: KindCustom, custom: c}
}

// Kind returns the tag of the value
func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) mustBe(kind Kind) {
	if v.kind != kind {
		panic(helper.InvariantViolation("feature value of kind %s read as %s", v.kind, kind))
	}
}

// AsBool returns the boolean, panicking when the value is of another kind
func (v Value) AsBool() bool {
	v.mustBe(KindBool)
	return v.num == 1
}

// AsInt returns the integer, panicking when the value is of another kind
func (v Value) AsInt() int64 {
	v.mustBe(KindInt)
	return v.num
}

// AsFloat returns the float, panicking when the value is of another kind
func (v Value) AsFloat() float64 {
	v.mustBe(KindFloat)
	return v.float
}

// AsString returns the string, panicking when the value is of another kind
func (v Value) AsString() string {
	v.mustBe(KindString)
	return v.str.Value()
}

// AsMention returns the referenced mention id, panicking when the value is of another kind
func (v Value) AsMention() model.MentionID {
	v.mustBe(KindMention)
	return model.MentionID(v.num)
}

// AsSyntaxNode returns the referenced node id, panicking when the value is of another kind
func (v Value) AsSyntaxNode() int {
	v.mustBe(KindSyntaxNode)
	return int(v.num)
}

// AsProposition returns the referenced proposition id, panicking when the value is of another kind
func (v Value) AsProposition() int {
	v.mustBe(KindProposition)
	return int(v.num)
}

// AsCustom returns the structured value, panicking when the value is of another kind
func (v Value) AsCustom() CustomValue {
	v.mustBe(KindCustom)
	return v.custom
}

// Equal compares kind and underlying value, references by id
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindFloat:
		return v.float == other.float
	case KindString:
		return v.str == other.str
	case KindCustom:
		if v.custom == nil || other.custom == nil {
			return v.custom == other.custom
		}
		return v.custom.Key() == other.custom.Key()
	default:
		return v.num == other.num
	}
}

// String renders the value for logs and debugging
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.num == 1)
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.float, 'g', -1, 64)
	case KindString:
		return v.str.Value()
	case KindMention:
		return fmt.Sprintf("mention#%d", v.num)
	case KindSyntaxNode:
		return fmt.Sprintf("node#%d", v.num)
	case KindProposition:
		return fmt.Sprintf("prop#%d", v.num)
	case KindCustom:
		if v.custom == nil {
			return "custom(nil)"
		}
		return "custom(" + v.custom.Key() + ")"
	default:
		return "invalid"
	}
}
