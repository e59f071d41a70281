package quotient

// binaryScalar applies a scalar binary operator; it is the leaf called by
// iterateBinary once neither operand is a Vector.
type binaryScalar func(a, b Value) (Value, error)

// unaryScalar applies a scalar unary operator; the leaf called by
// iterateUnary once the operand is not a Vector.
type unaryScalar func(a Value) (Value, error)

// iterateBinary implements spec §4.5.5's implicit iteration for a binary
// operator: scalar/scalar applies directly, scalar/vector broadcasts the
// scalar, and vector/vector of equal length applies element-wise (unequal
// length fails LengthMismatch). Broadcasting recurses into nested Vectors.
func iterateBinary(a, b Value, scalar binaryScalar) (Value, error) {
	aVec, bVec := a.Kind == KindVector, b.Kind == KindVector

	switch {
	case aVec && bVec:
		if len(a.Vector) != len(b.Vector) {
			return Value{}, newErr(LengthMismatch, "%d vs %d", len(a.Vector), len(b.Vector))
		}
		out := make([]Value, len(a.Vector))
		for i := range a.Vector {
			v, err := iterateBinary(a.Vector[i], b.Vector[i], scalar)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return VecFrom(out), nil

	case aVec:
		out := make([]Value, len(a.Vector))
		for i, e := range a.Vector {
			v, err := iterateBinary(e, b, scalar)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return VecFrom(out), nil

	case bVec:
		out := make([]Value, len(b.Vector))
		for i, e := range b.Vector {
			v, err := iterateBinary(a, e, scalar)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return VecFrom(out), nil

	default:
		return scalar(a, b)
	}
}

// iterateUnary implements the same broadcasting rule for NOT: a Vector
// operand applies the operator element-wise, recursing into nested
// Vectors; a non-Vector operand applies directly.
func iterateUnary(a Value, scalar unaryScalar) (Value, error) {
	if a.Kind != KindVector {
		return scalar(a)
	}
	out := make([]Value, len(a.Vector))
	for i, e := range a.Vector {
		v, err := iterateUnary(e, scalar)
		if err != nil {
			return Value{}, err
		}
		out[i] = v
	}
	return VecFrom(out), nil
}
