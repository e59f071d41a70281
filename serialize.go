package quotient

import "encoding/json"

// maxSafeInteger is the largest magnitude a host's native number type is
// assumed to represent exactly (JavaScript's Number.MAX_SAFE_INTEGER),
// used to decide when a Number must be serialized as a string (spec §6).
const maxSafeInteger = int64(1)<<53 - 1

// SerializedValue is the tagged-record wire form of spec §6's get_stack /
// get_register: {type, value}, with Vector's value a nested sequence of
// the same shape. Plain encoding/json handles this cleanly (no library in
// the example pack offers a better fit for a closed, hand-specified wire
// format — see DESIGN.md).
type SerializedValue struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

func serializeValue(v Value) SerializedValue {
	switch v.Kind {
	case KindNumber:
		return SerializedValue{Type: "number", Value: serializeNumber(v.Number)}
	case KindString:
		return SerializedValue{Type: "string", Value: v.Str}
	case KindBoolean:
		return SerializedValue{Type: "boolean", Value: v.Bool}
	case KindSymbol:
		return SerializedValue{Type: "symbol", Value: v.Sym}
	case KindNil:
		return SerializedValue{Type: "nil", Value: nil}
	case KindVector:
		items := make([]SerializedValue, len(v.Vector))
		for i, e := range v.Vector {
			items[i] = serializeValue(e)
		}
		return SerializedValue{Type: "vector", Value: items}
	default:
		return SerializedValue{Type: "nil", Value: nil}
	}
}

// serializeNumber returns r's numerator as a native integer when it fits
// safely (denominator 1, magnitude within maxSafeInteger), else r's "n" or
// "n/d" text form, per spec §6's note on number serialization.
func serializeNumber(r Rational) interface{} {
	if r.Denominator != 1 || r.Numerator > maxSafeInteger || r.Numerator < -maxSafeInteger {
		return r.String()
	}
	return r.Numerator
}

func serializeStack(stack []Value) []SerializedValue {
	out := make([]SerializedValue, len(stack))
	for i, v := range stack {
		out[i] = serializeValue(v)
	}
	return out
}

// customWordInfoTriple renders a CustomWordInfo as spec §6's
// get_custom_words_info row shape: [name, description-or-null, protected].
type customWordInfoTriple CustomWordInfo

func (c customWordInfoTriple) MarshalJSON() ([]byte, error) {
	var desc interface{}
	if c.Description != nil {
		desc = *c.Description
	}
	return json.Marshal([]interface{}{c.Name, desc, c.Protected})
}

func serializeCustomWordsInfo(infos []CustomWordInfo) []customWordInfoTriple {
	out := make([]customWordInfoTriple, len(infos))
	for i, info := range infos {
		out[i] = customWordInfoTriple(info)
	}
	return out
}
