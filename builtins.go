package quotient

// installBuiltins registers every Builtin primitive of spec §4.5.3, plus
// DEF/DEL/IF as reserved (protected, never user-redefinable) names — see
// the note on reservedWord — and the small set of primitives this
// implementation supplements beyond spec.md (SPEC_FULL.md §12): TYPE,
// CLEAR, NIL, TRUE, FALSE.
func installBuiltins(d *Dictionary) {
	d.RegisterBuiltin("+", biArith((Rational).Add))
	d.RegisterBuiltin("-", biArith((Rational).Sub))
	d.RegisterBuiltin("*", biArith((Rational).Mul))
	d.RegisterBuiltin("/", biArith((Rational).Div))

	d.RegisterBuiltin("=", biEqual)
	d.RegisterBuiltin("<", biCompare(func(a, b Rational) (bool, error) { return a.Less(b) }))
	d.RegisterBuiltin("<=", biCompare(func(a, b Rational) (bool, error) { return a.LessEqual(b) }))
	d.RegisterBuiltin(">", biCompare(func(a, b Rational) (bool, error) { return a.Greater(b) }))
	d.RegisterBuiltin(">=", biCompare(func(a, b Rational) (bool, error) { return a.GreaterEqual(b) }))
	d.RegisterBuiltin("NOT", biNot)

	d.RegisterBuiltin("DUP", biDup)
	d.RegisterBuiltin("DROP", biDrop)
	d.RegisterBuiltin("SWAP", biSwap)
	d.RegisterBuiltin("OVER", biOver)
	d.RegisterBuiltin("ROT", biRot)
	d.RegisterBuiltin("NIP", biNip)

	d.RegisterBuiltin(">R", biToRegister)
	d.RegisterBuiltin("R>", biFromRegister)
	d.RegisterBuiltin("R@", biCopyRegister)

	d.RegisterBuiltin("LENGTH", biLength)
	d.RegisterBuiltin("HEAD", biHead)
	d.RegisterBuiltin("TAIL", biTail)
	d.RegisterBuiltin("CONS", biCons)
	d.RegisterBuiltin("APPEND", biAppend)
	d.RegisterBuiltin("REVERSE", biReverse)
	d.RegisterBuiltin("NTH", biNth)
	d.RegisterBuiltin("UNCONS", biUncons)
	d.RegisterBuiltin("EMPTY?", biEmpty)

	d.RegisterBuiltin(".", biDot)
	d.RegisterBuiltin("PRINT", biPrint)
	d.RegisterBuiltin("CR", biCR)
	d.RegisterBuiltin("SPACE", biSpace)
	d.RegisterBuiltin("SPACES", biSpaces)
	d.RegisterBuiltin("EMIT", biEmit)

	d.RegisterBuiltin("TYPE", biType)
	d.RegisterBuiltin("CLEAR", biClear)
	d.RegisterBuiltin("NIL", biNil)
	d.RegisterBuiltin("TRUE", biTrue)
	d.RegisterBuiltin("FALSE", biFalse)

	// DEF/DEL/IF are handled directly by Evaluator.advance before a
	// dictionary lookup ever happens; these entries exist only so the
	// names themselves are protected (a Builtin can never be DEF'd over
	// or DEL'd) and so the dictionary stays the single source of truth
	// for "is this name taken".
	d.RegisterBuiltin("DEF", reservedWord)
	d.RegisterBuiltin("DEL", reservedWord)
	d.RegisterBuiltin("IF", reservedWord)
}

func reservedWord(ev *Evaluator) error {
	return newErr(Internal, "reserved word dispatched as a builtin")
}

// --- arithmetic & comparison (implicit iteration, spec §4.5.5) -----------

func biArith(op func(Rational, Rational) (Rational, error)) BuiltinFunc {
	return func(ev *Evaluator) error {
		vs, err := ev.peekN(2)
		if err != nil {
			return err
		}
		a, b := vs[0], vs[1]
		result, err := iterateBinary(a, b, func(a, b Value) (Value, error) {
			if a.Kind != KindNumber || b.Kind != KindNumber {
				return Value{}, newErr(TypeError, "expected numbers")
			}
			r, err := op(a.Number, b.Number)
			if err != nil {
				return Value{}, err
			}
			return Num(r), nil
		})
		if err != nil {
			return err
		}
		ev.popN(2)
		ev.push(result)
		return nil
	}
}

func biCompare(op func(Rational, Rational) (bool, error)) BuiltinFunc {
	return func(ev *Evaluator) error {
		vs, err := ev.peekN(2)
		if err != nil {
			return err
		}
		a, b := vs[0], vs[1]
		result, err := iterateBinary(a, b, func(a, b Value) (Value, error) {
			if a.Kind != KindNumber || b.Kind != KindNumber {
				return Value{}, newErr(TypeError, "expected numbers")
			}
			ok, err := op(a.Number, b.Number)
			if err != nil {
				return Value{}, err
			}
			return Bool(ok), nil
		})
		if err != nil {
			return err
		}
		ev.popN(2)
		ev.push(result)
		return nil
	}
}

func biEqual(ev *Evaluator) error {
	vs, err := ev.peekN(2)
	if err != nil {
		return err
	}
	a, b := vs[0], vs[1]
	ev.popN(2)
	ev.push(Bool(a.Equal(b)))
	return nil
}

func biNot(ev *Evaluator) error {
	vs, err := ev.peekN(1)
	if err != nil {
		return err
	}
	result, err := iterateUnary(vs[0], func(a Value) (Value, error) {
		if a.Kind != KindBoolean {
			return Value{}, newErr(TypeError, "expected boolean")
		}
		return Bool(!a.Bool), nil
	})
	if err != nil {
		return err
	}
	ev.popN(1)
	ev.push(result)
	return nil
}

// --- stack shuffling -------------------------------------------------------

func biDup(ev *Evaluator) error {
	vs, err := ev.peekN(1)
	if err != nil {
		return err
	}
	ev.push(vs[0])
	return nil
}

func biDrop(ev *Evaluator) error {
	_, err := ev.pop1()
	return err
}

func biSwap(ev *Evaluator) error {
	vs, err := ev.peekN(2)
	if err != nil {
		return err
	}
	a, b := vs[0], vs[1]
	ev.popN(2)
	ev.push(b)
	ev.push(a)
	return nil
}

func biOver(ev *Evaluator) error {
	vs, err := ev.peekN(2)
	if err != nil {
		return err
	}
	ev.push(vs[0])
	return nil
}

func biRot(ev *Evaluator) error {
	vs, err := ev.peekN(3)
	if err != nil {
		return err
	}
	a, b, c := vs[0], vs[1], vs[2]
	ev.popN(3)
	ev.push(b)
	ev.push(c)
	ev.push(a)
	return nil
}

func biNip(ev *Evaluator) error {
	vs, err := ev.peekN(2)
	if err != nil {
		return err
	}
	b := vs[1]
	ev.popN(2)
	ev.push(b)
	return nil
}

// --- register ---------------------------------------------------------------

func biToRegister(ev *Evaluator) error {
	if _, occupied := ev.registerGet(); occupied {
		return newErr(RegisterOccupied, "")
	}
	v, err := ev.pop1()
	if err != nil {
		return err
	}
	ev.registerSet(v)
	return nil
}

func biFromRegister(ev *Evaluator) error {
	v, occupied := ev.registerGet()
	if !occupied {
		return newErr(RegisterEmpty, "")
	}
	ev.registerClear()
	ev.push(v)
	return nil
}

func biCopyRegister(ev *Evaluator) error {
	v, occupied := ev.registerGet()
	if !occupied {
		return newErr(RegisterEmpty, "")
	}
	ev.push(v)
	return nil
}

// --- vectors -----------------------------------------------------------------

func biLength(ev *Evaluator) error {
	vs, err := ev.peekN(1)
	if err != nil {
		return err
	}
	if !vs[0].IsVector() {
		return newErr(TypeError, "LENGTH requires a vector")
	}
	ev.popN(1)
	ev.push(Num(IntRational(int64(len(vs[0].Vector)))))
	return nil
}

func biHead(ev *Evaluator) error {
	vs, err := ev.peekN(1)
	if err != nil {
		return err
	}
	if !vs[0].IsVector() {
		return newErr(TypeError, "HEAD requires a vector")
	}
	if len(vs[0].Vector) == 0 {
		return newErr(EmptyVector, "HEAD")
	}
	ev.popN(1)
	ev.push(vs[0].Vector[0])
	return nil
}

func biTail(ev *Evaluator) error {
	vs, err := ev.peekN(1)
	if err != nil {
		return err
	}
	if !vs[0].IsVector() {
		return newErr(TypeError, "TAIL requires a vector")
	}
	if len(vs[0].Vector) == 0 {
		return newErr(EmptyVector, "TAIL")
	}
	rest := append([]Value(nil), vs[0].Vector[1:]...)
	ev.popN(1)
	ev.push(VecFrom(rest))
	return nil
}

// biCons implements CONS: ( e vec -- vec' ), prepend.
func biCons(ev *Evaluator) error {
	vs, err := ev.peekN(2)
	if err != nil {
		return err
	}
	e, vec := vs[0], vs[1]
	if !vec.IsVector() {
		return newErr(TypeError, "CONS requires a vector")
	}
	out := make([]Value, 0, len(vec.Vector)+1)
	out = append(out, e)
	out = append(out, vec.Vector...)
	ev.popN(2)
	ev.push(VecFrom(out))
	return nil
}

// biAppend implements APPEND: ( vec e -- vec' ), append.
func biAppend(ev *Evaluator) error {
	vs, err := ev.peekN(2)
	if err != nil {
		return err
	}
	vec, e := vs[0], vs[1]
	if !vec.IsVector() {
		return newErr(TypeError, "APPEND requires a vector")
	}
	out := make([]Value, 0, len(vec.Vector)+1)
	out = append(out, vec.Vector...)
	out = append(out, e)
	ev.popN(2)
	ev.push(VecFrom(out))
	return nil
}

func biReverse(ev *Evaluator) error {
	vs, err := ev.peekN(1)
	if err != nil {
		return err
	}
	if !vs[0].IsVector() {
		return newErr(TypeError, "REVERSE requires a vector")
	}
	src := vs[0].Vector
	out := make([]Value, len(src))
	for i, v := range src {
		out[len(src)-1-i] = v
	}
	ev.popN(1)
	ev.push(VecFrom(out))
	return nil
}

// biNth implements NTH: ( n vec -- e ); negative n counts from the end.
func biNth(ev *Evaluator) error {
	vs, err := ev.peekN(2)
	if err != nil {
		return err
	}
	n, vec := vs[0], vs[1]
	if n.Kind != KindNumber {
		return newErr(TypeError, "NTH requires a number index")
	}
	if !vec.IsVector() {
		return newErr(TypeError, "NTH requires a vector")
	}
	idx, ok := asInt(n.Number)
	if !ok {
		return newErr(TypeError, "NTH requires an integer index")
	}
	if idx < 0 {
		idx += int64(len(vec.Vector))
	}
	if idx < 0 || idx >= int64(len(vec.Vector)) {
		return newErr(IndexOutOfRange, "%d", idx)
	}
	ev.popN(2)
	ev.push(vec.Vector[idx])
	return nil
}

// biUncons implements UNCONS: ( vec -- e vec' ), HEAD and TAIL as one step.
func biUncons(ev *Evaluator) error {
	vs, err := ev.peekN(1)
	if err != nil {
		return err
	}
	if !vs[0].IsVector() {
		return newErr(TypeError, "UNCONS requires a vector")
	}
	if len(vs[0].Vector) == 0 {
		return newErr(EmptyVector, "UNCONS")
	}
	head := vs[0].Vector[0]
	rest := append([]Value(nil), vs[0].Vector[1:]...)
	ev.popN(1)
	ev.push(head)
	ev.push(VecFrom(rest))
	return nil
}

func biEmpty(ev *Evaluator) error {
	vs, err := ev.peekN(1)
	if err != nil {
		return err
	}
	if !vs[0].IsVector() {
		return newErr(TypeError, "EMPTY? requires a vector")
	}
	ev.popN(1)
	ev.push(Bool(len(vs[0].Vector) == 0))
	return nil
}

// --- output -------------------------------------------------------------

func biDot(ev *Evaluator) error {
	v, err := ev.pop1()
	if err != nil {
		return err
	}
	ev.writeOutput(v.Format())
	return nil
}

func biPrint(ev *Evaluator) error {
	vs, err := ev.peekN(1)
	if err != nil {
		return err
	}
	ev.writeOutput(vs[0].Format())
	return nil
}

func biCR(ev *Evaluator) error {
	ev.writeOutput("\n")
	return nil
}

func biSpace(ev *Evaluator) error {
	ev.writeOutput(" ")
	return nil
}

func biSpaces(ev *Evaluator) error {
	vs, err := ev.peekN(1)
	if err != nil {
		return err
	}
	v := vs[0]
	if v.Kind != KindNumber {
		return newErr(TypeError, "SPACES requires a number")
	}
	n, ok := asInt(v.Number)
	if !ok {
		return newErr(TypeError, "SPACES requires an integer")
	}
	ev.popN(1)
	if n > 0 {
		ev.writeOutput(spacesOf(n))
	}
	return nil
}

func biEmit(ev *Evaluator) error {
	vs, err := ev.peekN(1)
	if err != nil {
		return err
	}
	v := vs[0]
	if v.Kind != KindNumber {
		return newErr(TypeError, "EMIT requires a number")
	}
	n, ok := asInt(v.Number)
	if !ok {
		return newErr(TypeError, "EMIT requires an integer code point")
	}
	ev.popN(1)
	ev.writeOutput(string(rune(n)))
	return nil
}

// --- supplemented primitives (SPEC_FULL.md §12) ---------------------------

// biType implements TYPE: ( a -- a string ), pushing the value's type name
// without consuming it.
func biType(ev *Evaluator) error {
	vs, err := ev.peekN(1)
	if err != nil {
		return err
	}
	ev.push(Str(vs[0].TypeName()))
	return nil
}

// biClear implements CLEAR: ( ... -- ), emptying the data stack.
func biClear(ev *Evaluator) error {
	ev.Stack = ev.Stack[:0]
	return nil
}

func biNil(ev *Evaluator) error {
	ev.push(NilValue)
	return nil
}

func biTrue(ev *Evaluator) error {
	ev.push(Bool(true))
	return nil
}

func biFalse(ev *Evaluator) error {
	ev.push(Bool(false))
	return nil
}

// asInt reports r as an int64 when it is integer-valued (denominator 1).
func asInt(r Rational) (int64, bool) {
	if r.Denominator != 1 {
		return 0, false
	}
	return r.Numerator, true
}

func spacesOf(n int64) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
