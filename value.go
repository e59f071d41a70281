package quotient

import "strings"

// ValueKind tags the variant held by a Value (spec §3).
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindString
	KindBoolean
	KindSymbol
	KindNil
	KindVector
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindSymbol:
		return "symbol"
	case KindNil:
		return "nil"
	case KindVector:
		return "vector"
	default:
		return "unknown"
	}
}

// Value is the language's tagged-union datum: Number, String, Boolean,
// Symbol, Nil, or Vector (spec §3). Values are immutable from the
// language's perspective — CONS/APPEND/REVERSE/etc. always return a fresh
// Vector (spec §9, "Sharing of Vector values").
type Value struct {
	Kind ValueKind

	Number Rational
	Str    string
	Bool   bool
	Sym    string
	Vector []Value

	// identLike marks a Symbol captured from a bare identifier token inside
	// a vector literal (spec §4.5.2's note on identifiers inside vectors):
	// when the enclosing Vector is later executed as a word body or IF
	// branch, such a Symbol is re-resolved against the dictionary instead
	// of being pushed literally. Symbols written sym:NAME never set this,
	// so they stay literal even when the containing sequence runs. Not
	// part of the value's public identity: Equal, Format and Inspect all
	// ignore it.
	identLike bool
}

// Num constructs a Number value.
func Num(r Rational) Value { return Value{Kind: KindNumber, Number: r} }

// Str constructs a String value.
func Str(s string) Value { return Value{Kind: KindString, Str: s} }

// Bool constructs a Boolean value.
func Bool(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// Sym constructs a literal Symbol value (spec's sym:NAME form — never
// re-resolved against the dictionary, even inside an executed body).
func Sym(name string) Value { return Value{Kind: KindSymbol, Sym: name} }

// identSym constructs the Symbol placeholder captured for a bare identifier
// token found inside a vector literal (see Value.identLike).
func identSym(name string) Value { return Value{Kind: KindSymbol, Sym: name, identLike: true} }

// NilValue is the singleton Nil value.
var NilValue = Value{Kind: KindNil}

// Vec constructs a Vector value from elems (copied, so the caller's slice
// may be reused).
func Vec(elems ...Value) Value {
	v := make([]Value, len(elems))
	copy(v, elems)
	return Value{Kind: KindVector, Vector: v}
}

// VecFrom constructs a Vector value taking ownership of elems without
// copying; callers must not mutate elems afterward.
func VecFrom(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Kind: KindVector, Vector: elems}
}

// IsVector reports whether v holds a Vector.
func (v Value) IsVector() bool { return v.Kind == KindVector }

// Truthy implements the IF truthiness table of spec §4.5.4: false for
// Boolean(false), Number(0), Nil, empty String, empty Vector; true for
// everything else.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBoolean:
		return v.Bool
	case KindNumber:
		return !v.Number.IsZero()
	case KindNil:
		return false
	case KindString:
		return v.Str != ""
	case KindVector:
		return len(v.Vector) != 0
	case KindSymbol:
		return true
	default:
		return true
	}
}

// Equal implements structural equality for the `=` primitive.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Number.Equal(other.Number)
	case KindString:
		return v.Str == other.Str
	case KindBoolean:
		return v.Bool == other.Bool
	case KindSymbol:
		return v.Sym == other.Sym
	case KindNil:
		return true
	case KindVector:
		if len(v.Vector) != len(other.Vector) {
			return false
		}
		for i := range v.Vector {
			if !v.Vector[i].Equal(other.Vector[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Format renders v the way `.`/`PRINT` do: strings without surrounding
// quotes (spec §4.2).
func (v Value) Format() string {
	var b strings.Builder
	v.format(&b, false)
	return b.String()
}

// Inspect renders v the way get_stack/get_register do: strings with
// surrounding quotes (spec §4.2).
func (v Value) Inspect() string {
	var b strings.Builder
	v.format(&b, true)
	return b.String()
}

func (v Value) format(b *strings.Builder, quoteStrings bool) {
	switch v.Kind {
	case KindNumber:
		b.WriteString(v.Number.String())
	case KindString:
		if quoteStrings {
			b.WriteByte('"')
			b.WriteString(v.Str)
			b.WriteByte('"')
		} else {
			b.WriteString(v.Str)
		}
	case KindSymbol:
		b.WriteString(v.Sym)
	case KindBoolean:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNil:
		b.WriteString("nil")
	case KindVector:
		// Mirrors original_source/rust/src/types.rs's Display impl
		// exactly: "[ " + elements joined by " " + " ]", so an empty
		// vector renders as "[  ]" (two spaces), not "[ ]".
		b.WriteString("[ ")
		for i, e := range v.Vector {
			if i > 0 {
				b.WriteByte(' ')
			}
			e.format(b, quoteStrings)
		}
		b.WriteString(" ]")
	}
}

// TypeName returns the serialized/TYPE-primitive type tag for v.
func (v Value) TypeName() string { return v.Kind.String() }
